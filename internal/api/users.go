package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/tgienger/taskflow/internal/models"
)

// UserProfile fetches a user with their created and assigned tasks
func (c *Client) UserProfile(ctx context.Context, userID int64) (models.UserProfile, error) {
	var p models.UserProfile
	if _, err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/users/%d/profile", userID), nil, &p); err != nil {
		return models.UserProfile{}, err
	}
	return p, nil
}
