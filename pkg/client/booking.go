package client

import (
	"context"
	"fmt"

	"glamora/pkg/model"
)

type BookingClient struct {
	http *Client
}

func NewBookingClient(http *Client) *BookingClient {
	return &BookingClient{http: http}
}

func (c *BookingClient) Create(ctx context.Context, req *model.BookingRequest) (*Response, error) {
	return c.http.POST(ctx, "/api/bookings/", req)
}

func (c *BookingClient) DecodeConfirmation(resp *Response) (*model.BookingConfirmation, error) {
	var confirmation model.BookingConfirmation
	if err := resp.DecodeJSON(&confirmation); err != nil {
		return nil, fmt.Errorf("could not decode booking confirmation: %w", err)
	}
	return &confirmation, nil
}
