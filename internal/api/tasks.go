package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/tgienger/taskflow/internal/models"
)

// CreateTask adds a task to a project. The caller re-fetches the task list.
func (c *Client) CreateTask(ctx context.Context, projectID int64, in models.TaskInput) error {
	_, err := c.do(ctx, http.MethodPost, fmt.Sprintf("/api/projects/%d/tasks", projectID), in, nil)
	return err
}

// UpdateTask replaces the editable fields of a task
func (c *Client) UpdateTask(ctx context.Context, projectID, taskID int64, in models.TaskInput) error {
	_, err := c.do(ctx, http.MethodPut, fmt.Sprintf("/api/projects/%d/tasks/%d", projectID, taskID), in, nil)
	return err
}

// DeleteTask removes a task
func (c *Client) DeleteTask(ctx context.Context, taskID int64) error {
	_, err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/tasks/%d", taskID), nil, nil)
	return err
}
