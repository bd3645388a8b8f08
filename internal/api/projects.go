package api

import (
	"context"
	"fmt"
	"net/http"

	"golang.org/x/sync/errgroup"

	"github.com/tgienger/taskflow/internal/models"
)

// Projects lists the active projects the user belongs to
func (c *Client) Projects(ctx context.Context) ([]models.Project, error) {
	var ps []models.Project
	if _, err := c.do(ctx, http.MethodGet, "/api/projects", nil, &ps); err != nil {
		return nil, err
	}
	return ps, nil
}

// CompletedProjects lists the user's completed projects
func (c *Client) CompletedProjects(ctx context.Context) ([]models.Project, error) {
	var ps []models.Project
	if _, err := c.do(ctx, http.MethodGet, "/api/projects/completed", nil, &ps); err != nil {
		return nil, err
	}
	for i := range ps {
		ps[i].Completed = true
	}
	return ps, nil
}

// CreateProject creates a project owned by the user
func (c *Client) CreateProject(ctx context.Context, req models.CreateProjectRequest) (models.Project, error) {
	var p models.Project
	if _, err := c.do(ctx, http.MethodPost, "/api/projects", req, &p); err != nil {
		return models.Project{}, err
	}
	if p.Title == "" {
		p.Title = req.Title
	}
	return p, nil
}

// JoinProject returns the server's confirmation message
func (c *Client) JoinProject(ctx context.Context, req models.JoinProjectRequest) (string, error) {
	var resp models.MessageResponse
	if _, err := c.do(ctx, http.MethodPost, "/api/projects/join", req, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}

// CompleteProject marks a project completed
func (c *Client) CompleteProject(ctx context.Context, projectID int64) error {
	_, err := c.do(ctx, http.MethodPut, fmt.Sprintf("/api/projects/%d/complete", projectID), nil, nil)
	return err
}

// Tasks lists the tasks of a project
func (c *Client) Tasks(ctx context.Context, projectID int64) ([]models.Task, error) {
	var ts []models.Task
	if _, err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/projects/%d/tasks", projectID), nil, &ts); err != nil {
		return nil, err
	}
	return ts, nil
}

// Members lists the members of a project
func (c *Client) Members(ctx context.Context, projectID int64) ([]models.Member, error) {
	var ms []models.Member
	if _, err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/projects/%d/members", projectID), nil, &ms); err != nil {
		return nil, err
	}
	return ms, nil
}

// ProjectData is the tasks and member roster of one project
type ProjectData struct {
	Tasks   []models.Task
	Members []models.Member
}

// ProjectData fetches tasks and members concurrently. Both must succeed.
func (c *Client) ProjectData(ctx context.Context, projectID int64) (ProjectData, error) {
	var data ProjectData
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		ts, err := c.Tasks(gctx, projectID)
		data.Tasks = ts
		return err
	})
	g.Go(func() error {
		ms, err := c.Members(gctx, projectID)
		data.Members = ms
		return err
	})
	if err := g.Wait(); err != nil {
		return ProjectData{}, err
	}
	return data, nil
}
