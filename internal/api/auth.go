package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/tgienger/taskflow/internal/models"
)

// Register creates an account. Only 201 Created counts as success.
func (c *Client) Register(ctx context.Context, req models.RegisterRequest) error {
	code, err := c.do(ctx, http.MethodPost, "/auth/register", req, nil)
	if err != nil {
		return err
	}
	if code != http.StatusCreated {
		return &StatusError{StatusCode: code}
	}
	return nil
}

// Login signs in and stores the session cookie in the jar
func (c *Client) Login(ctx context.Context, req models.LoginRequest) (models.LoginResponse, error) {
	var resp models.LoginResponse
	if _, err := c.do(ctx, http.MethodPost, "/auth/login", req, &resp); err != nil {
		return models.LoginResponse{}, err
	}
	if resp.Username == "" {
		resp.Username = req.Username
	}
	return resp, nil
}

// Logout ends the server session. Any HTTP response counts as logged out and
// the stored cookies are dropped; only a transport failure is returned.
func (c *Client) Logout(ctx context.Context) error {
	_, err := c.do(ctx, http.MethodGet, "/auth/logout", nil, nil)
	var se *StatusError
	if err != nil && !errors.As(err, &se) {
		return err
	}
	return c.clearCookies()
}

// Status probes the session cookie. A 401 is reported as signed out.
func (c *Client) Status(ctx context.Context) (models.AuthStatus, error) {
	var st models.AuthStatus
	if _, err := c.do(ctx, http.MethodGet, "/auth/status", nil, &st); err != nil {
		if IsStatus(err, http.StatusUnauthorized) {
			return models.AuthStatus{}, nil
		}
		return models.AuthStatus{}, err
	}
	return st, nil
}
