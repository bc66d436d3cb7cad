package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"hotelbooking/pkg/model"
)

// BookingClient talks to the bookings HTTP API.
type BookingClient struct {
	httpClient *HttpClient
}

func NewBookingClient(baseUrl string) *BookingClient {
	return &BookingClient{
		httpClient: NewHttpClient(baseUrl),
	}
}

// StatusError is returned when the API answers with a non-2xx status.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("bookings api returned %d: %s", e.StatusCode, e.Message)
}

func (c *BookingClient) Search(ctx context.Context, from, to model.Date) ([]*model.Booking, error) {
	q := url.Values{}
	q.Set("startDate", from.String())
	q.Set("endDate", to.String())

	resp, err := c.httpClient.GET(ctx, "/booking?"+q.Encode())
	if err != nil {
		return nil, err
	}
	return decodeBookings(resp)
}

func (c *BookingClient) GetAll(ctx context.Context) ([]*model.Booking, error) {
	resp, err := c.httpClient.GET(ctx, "/booking/all")
	if err != nil {
		return nil, err
	}
	return decodeBookings(resp)
}

func (c *BookingClient) GetByID(ctx context.Context, id string) (*model.Booking, error) {
	resp, err := c.httpClient.GET(ctx, "/booking/id/"+url.PathEscape(id))
	if err != nil {
		return nil, err
	}
	return decodeBooking(resp, http.StatusOK)
}

func (c *BookingClient) Create(ctx context.Context, booking *model.Booking) (*model.Booking, error) {
	resp, err := c.httpClient.POST(ctx, "/booking/new", booking)
	if err != nil {
		return nil, err
	}
	return decodeBooking(resp, http.StatusCreated)
}

func (c *BookingClient) Cancel(ctx context.Context, id string) error {
	resp, err := c.httpClient.POST(ctx, "/booking/cancel/"+url.PathEscape(id), nil)
	if err != nil {
		return err
	}
	return expectStatus(resp, http.StatusAccepted)
}

func (c *BookingClient) Update(ctx context.Context, id string, patch *model.BookingPatch) (*model.Booking, error) {
	resp, err := c.httpClient.POST(ctx, "/booking/update/"+url.PathEscape(id), patch)
	if err != nil {
		return nil, err
	}
	return decodeBooking(resp, http.StatusAccepted)
}

func expectStatus(resp *Response, status int) error {
	if resp.StatusCode != status {
		return &StatusError{StatusCode: resp.StatusCode, Message: GetErrorMessage(resp)}
	}
	return nil
}

func decodeBooking(resp *Response, status int) (*model.Booking, error) {
	if err := expectStatus(resp, status); err != nil {
		return nil, err
	}

	var wrapper struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(resp.Body, &wrapper); err != nil {
		return nil, fmt.Errorf("could not decode booking wrapper: %s: %w", resp.ToString(), err)
	}

	var booking model.Booking
	if err := json.Unmarshal(wrapper.Data, &booking); err != nil {
		return nil, fmt.Errorf("could not decode booking json: %s: %w", resp.ToString(), err)
	}
	return &booking, nil
}

func decodeBookings(resp *Response) ([]*model.Booking, error) {
	if err := expectStatus(resp, http.StatusOK); err != nil {
		return nil, err
	}

	var wrapper struct {
		Data []*model.Booking `json:"data"`
	}
	if err := json.Unmarshal(resp.Body, &wrapper); err != nil {
		return nil, fmt.Errorf("could not decode booking list: %s: %w", resp.ToString(), err)
	}
	return wrapper.Data, nil
}
