package playoh

import (
	"context"
	"fmt"

	"playoh/internal/domain/users"
)

// Login exchanges credentials for a token. The token and the profile are
// stored in the session before Login returns.
func (c *Client) Login(ctx context.Context, req users.LoginRequest) (*users.AuthResponse, error) {
	var resp users.AuthResponse
	if err := c.post(ctx, "/Auth/login", req, &resp); err != nil {
		return nil, err
	}
	if err := c.persist(ctx, resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Register creates an account and signs the device in as that account.
func (c *Client) Register(ctx context.Context, req users.RegisterRequest) (*users.AuthResponse, error) {
	var resp users.AuthResponse
	if err := c.post(ctx, "/Auth/register", req, &resp); err != nil {
		return nil, err
	}
	if err := c.persist(ctx, resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// CreateUser registers another account on behalf of an admin. The admin's
// own session is left untouched.
func (c *Client) CreateUser(ctx context.Context, req users.RegisterRequest) (*users.AuthResponse, error) {
	var resp users.AuthResponse
	if err := c.post(ctx, "/Auth/register", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) persist(ctx context.Context, resp users.AuthResponse) error {
	if c.session == nil {
		return nil
	}
	token, snap := resp.Split()
	if err := c.session.SetSession(ctx, token, snap); err != nil {
		return fmt.Errorf("persist session: %w", err)
	}
	return nil
}

func (c *Client) CurrentUser(ctx context.Context) (*users.User, error) {
	var u users.User
	if err := c.get(ctx, "/Auth/me", nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// Logout revokes the token remotely when it can and always clears the local
// session. Only a failure to clear the session is returned.
func (c *Client) Logout(ctx context.Context) error {
	if err := c.post(ctx, "/Auth/logout", nil, nil); err != nil {
		c.logger.Warnw("logout revoke failed, clearing local session anyway", "error", err)
	}
	if c.session == nil {
		return nil
	}
	return c.session.Clear(ctx)
}
