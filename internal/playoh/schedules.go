package playoh

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"playoh/internal/domain/schedules"
	"playoh/internal/domain/venues"
)

func (c *Client) ListSchedules(ctx context.Context, f schedules.Filter) ([]schedules.Schedule, error) {
	q, err := c.query(f)
	if err != nil {
		return nil, err
	}
	var out []schedules.Schedule
	if err := c.get(ctx, "/Schedules", q, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetSchedule fetches one schedule. tzOffset may be nil to let the backend
// use its default.
func (c *Client) GetSchedule(ctx context.Context, id int64, tzOffset *int, includeParticipants bool) (*schedules.Schedule, error) {
	q := url.Values{}
	q.Set("includeParticipants", strconv.FormatBool(includeParticipants))
	if tzOffset != nil {
		q.Set("timezoneOffsetMinutes", strconv.Itoa(*tzOffset))
	}
	var out schedules.Schedule
	if err := c.get(ctx, fmt.Sprintf("/Schedules/%d", id), q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateSchedule returns every schedule the backend generated, more than one
// for a recurring request.
func (c *Client) CreateSchedule(ctx context.Context, req schedules.CreateRequest) ([]schedules.Schedule, error) {
	var out []schedules.Schedule
	if err := c.post(ctx, "/Schedules", req, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) UpdateSchedule(ctx context.Context, id int64, req schedules.UpdateRequest) error {
	return c.put(ctx, fmt.Sprintf("/Schedules/%d", id), req, nil)
}

func (c *Client) DeleteSchedule(ctx context.Context, id int64) error {
	return c.delete(ctx, fmt.Sprintf("/Schedules/%d", id), nil)
}

// DeleteMySchedules removes every schedule created by the signed-in admin.
func (c *Client) DeleteMySchedules(ctx context.Context) error {
	return c.delete(ctx, "/Schedules/my-schedules", nil)
}

func (c *Client) ListVenues(ctx context.Context, tzOffset *int) ([]venues.Venue, error) {
	q := url.Values{}
	if tzOffset != nil {
		q.Set("timezoneOffsetMinutes", strconv.Itoa(*tzOffset))
	}
	var out []venues.Venue
	if err := c.get(ctx, "/Schedules/venues", q, &out); err != nil {
		return nil, err
	}
	return out, nil
}
