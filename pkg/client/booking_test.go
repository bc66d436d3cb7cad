package client

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"hotelbooking/pkg/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBookingClient_Requests(t *testing.T) {
	var gotMethod, gotPath, gotQuery, gotBody, gotContentType string
	status := http.StatusOK
	response := `{"data":[{"id":"1","name":"Alice","startDate":"2025-05-02","endDate":"2025-05-04"}]}`

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		gotMethod, gotPath, gotQuery = r.Method, r.URL.Path, r.URL.RawQuery
		gotBody, gotContentType = string(body), r.Header.Get("Content-Type")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(response))
	}))
	defer srv.Close()

	c := NewBookingClient(srv.URL)
	ctx := context.Background()

	t.Run("search", func(t *testing.T) {
		bookings, err := c.Search(ctx, model.NewDate(2025, time.May, 1), model.NewDate(2025, time.May, 3))
		require.NoError(t, err)
		require.Len(t, bookings, 1)
		assert.Equal(t, "Alice", bookings[0].Name)
		assert.Equal(t, http.MethodGet, gotMethod)
		assert.Equal(t, "/booking", gotPath)
		assert.Equal(t, "endDate=2025-05-03&startDate=2025-05-01", gotQuery)
	})

	t.Run("create", func(t *testing.T) {
		status = http.StatusCreated
		response = `{"data":{"id":"9","name":"Bob","startDate":"2025-05-02","endDate":"2025-05-04"}}`

		booking, err := c.Create(ctx, &model.Booking{
			Name:      "Bob",
			StartDate: model.DatePtr(model.NewDate(2025, time.May, 2)),
			EndDate:   model.DatePtr(model.NewDate(2025, time.May, 4)),
		})
		require.NoError(t, err)
		assert.Equal(t, "9", booking.ID)
		assert.Equal(t, "/booking/new", gotPath)
		assert.Equal(t, "application/json", gotContentType)
		assert.JSONEq(t, `{"name":"Bob","startDate":"2025-05-02","endDate":"2025-05-04"}`, gotBody)
	})

	t.Run("cancel sends no body", func(t *testing.T) {
		status = http.StatusAccepted
		response = ``

		require.NoError(t, c.Cancel(ctx, "9"))
		assert.Equal(t, http.MethodPost, gotMethod)
		assert.Equal(t, "/booking/cancel/9", gotPath)
		assert.Empty(t, gotBody)
		assert.Empty(t, gotContentType)
	})

	t.Run("error status", func(t *testing.T) {
		status = http.StatusConflict
		response = `{"code":"CONFLICT","message":"Dates chosen conflict with existing bookings for this room"}`

		_, err := c.Update(ctx, "9", &model.BookingPatch{StartDate: model.DatePtr(model.NewDate(2025, time.May, 3))})
		var statusErr *StatusError
		require.True(t, errors.As(err, &statusErr))
		assert.Equal(t, http.StatusConflict, statusErr.StatusCode)
		assert.Contains(t, statusErr.Message, "conflict")
		assert.Equal(t, "/booking/update/9", gotPath)
		assert.JSONEq(t, `{"startDate":"2025-05-03"}`, gotBody)
	})
}
