package playoh

import (
	"context"
	"net/url"

	"playoh/internal/domain/venues"
)

func (c *Client) VenueSuggestions(ctx context.Context) ([]string, error) {
	var out []string
	if err := c.get(ctx, "/Venues/suggestions", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) VenueStatistics(ctx context.Context) ([]venues.Statistics, error) {
	var out []venues.Statistics
	if err := c.get(ctx, "/Venues/statistics", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) RenameVenue(ctx context.Context, req venues.RenameRequest) (*venues.RenameResult, error) {
	var out venues.RenameResult
	if err := c.put(ctx, "/Venues/rename", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) MergeVenues(ctx context.Context, req venues.MergeRequest) (*venues.MergeResult, error) {
	var out venues.MergeResult
	if err := c.post(ctx, "/Venues/merge", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteVenue removes every schedule at the named venue.
func (c *Client) DeleteVenue(ctx context.Context, name string) (*venues.DeleteResult, error) {
	var out venues.DeleteResult
	if err := c.delete(ctx, "/Venues/"+url.PathEscape(name), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ValidateVenue(ctx context.Context, name string) (*venues.Validation, error) {
	var out venues.Validation
	if err := c.post(ctx, "/Venues/validate", venues.ValidateRequest{VenueName: name}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
