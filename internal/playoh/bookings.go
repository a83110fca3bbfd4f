package playoh

import (
	"context"
	"fmt"

	"playoh/internal/domain/bookings"
)

func (c *Client) JoinSchedule(ctx context.Context, req bookings.JoinRequest) (*bookings.Booking, error) {
	var out bookings.Booking
	if err := c.post(ctx, "/Bookings/join", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) MyBookings(ctx context.Context, f bookings.Filter) ([]bookings.View, error) {
	q, err := c.query(f)
	if err != nil {
		return nil, err
	}
	var out []bookings.View
	if err := c.get(ctx, "/Bookings/my-bookings", q, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetBooking(ctx context.Context, id int64) (*bookings.Booking, error) {
	var out bookings.Booking
	if err := c.get(ctx, fmt.Sprintf("/Bookings/%d", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CancelBooking(ctx context.Context, id int64) error {
	return c.delete(ctx, fmt.Sprintf("/Bookings/%d", id), nil)
}

func (c *Client) ScheduleBookings(ctx context.Context, scheduleID int64) ([]bookings.Booking, error) {
	var out []bookings.Booking
	if err := c.get(ctx, fmt.Sprintf("/Bookings/schedule/%d", scheduleID), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
