package main

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"hotelbooking/internal/bookings/handler"
	"hotelbooking/internal/bookings/repository"
	"hotelbooking/internal/bookings/service"
	"hotelbooking/internal/bookings/validator"
	"hotelbooking/pkg/config"
	"hotelbooking/pkg/logger"
	"hotelbooking/pkg/model"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	cfg := &config.Config{Log: logger.Discard(), BookingLockTTL: time.Second}
	svc := service.NewBookingService(
		repository.NewMemoryBookingRepository(),
		repository.NewMemoryBookingLockRepository(),
		validator.NewBookingValidator(cfg.Log, validator.DefaultPolicy()),
		nil,
		cfg,
	)

	router := httprouter.New()
	handler.NewBookingHandler(svc, cfg.Log).RegisterRoutes(router)
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv
}

func run(t *testing.T, addr string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(append([]string{"--addr", addr}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestBookingctl_Lifecycle(t *testing.T) {
	srv := newTestServer(t)
	today := model.DateOf(time.Now().UTC())
	from := today.AddDays(2).String()
	to := today.AddDays(4).String()

	out, err := run(t, srv.URL, "create", "--name", "Alice", "--from", from, "--to", to)
	require.NoError(t, err)
	var created model.Booking
	require.NoError(t, json.Unmarshal([]byte(out), &created))
	require.NotEmpty(t, created.ID)
	assert.Equal(t, "Alice", created.Name)

	_, err = run(t, srv.URL, "create", "--name", "Bob", "--from", to, "--to", today.AddDays(6).String())
	assert.Error(t, err, "overlapping stay must be rejected")

	out, err = run(t, srv.URL, "search", "--from", to, "--to", to)
	require.NoError(t, err)
	var found []*model.Booking
	require.NoError(t, json.Unmarshal([]byte(out), &found))
	require.Len(t, found, 1)
	assert.Equal(t, created.ID, found[0].ID)

	out, err = run(t, srv.URL, "update", created.ID, "--name", "Alicia")
	require.NoError(t, err)
	var updated model.Booking
	require.NoError(t, json.Unmarshal([]byte(out), &updated))
	assert.Equal(t, "Alicia", updated.Name)
	assert.Equal(t, from, updated.StartDate.String())

	out, err = run(t, srv.URL, "cancel", created.ID)
	require.NoError(t, err)
	assert.Contains(t, out, "cancelled")

	out, err = run(t, srv.URL, "list")
	require.NoError(t, err)
	var all []*model.Booking
	require.NoError(t, json.Unmarshal([]byte(out), &all))
	assert.Empty(t, all)
}

func TestBookingctl_RejectsBadInput(t *testing.T) {
	srv := newTestServer(t)

	_, err := run(t, srv.URL, "search", "--from", "tomorrow", "--to", "2030-01-01")
	assert.ErrorContains(t, err, "--from")

	_, err = run(t, srv.URL, "create", "--name", "Alice", "--from", "2030-01-01")
	assert.Error(t, err)

	_, err = run(t, srv.URL, "cancel")
	assert.Error(t, err)
}
