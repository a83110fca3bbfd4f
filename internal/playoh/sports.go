package playoh

import (
	"context"
	"fmt"

	"playoh/internal/domain/sports"
)

func (c *Client) ListSports(ctx context.Context) ([]sports.Sport, error) {
	var out []sports.Sport
	if err := c.get(ctx, "/Sports", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetSport(ctx context.Context, id int64) (*sports.Sport, error) {
	var out sports.Sport
	if err := c.get(ctx, fmt.Sprintf("/Sports/%d", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateSport(ctx context.Context, req sports.CreateSportRequest) (*sports.Sport, error) {
	var out sports.Sport
	if err := c.post(ctx, "/Sports", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateSport(ctx context.Context, id int64, req sports.UpdateSportRequest) error {
	return c.put(ctx, fmt.Sprintf("/Sports/%d", id), req, nil)
}

func (c *Client) DeleteSport(ctx context.Context, id int64) error {
	return c.delete(ctx, fmt.Sprintf("/Sports/%d", id), nil)
}
