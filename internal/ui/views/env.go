package views

import (
	"context"

	"github.com/tgienger/taskflow/internal/api"
	"github.com/tgienger/taskflow/internal/config"
	"github.com/tgienger/taskflow/internal/logging"
	"github.com/tgienger/taskflow/internal/models"
	"github.com/tgienger/taskflow/internal/state"
	"github.com/tgienger/taskflow/internal/ui/keys"
	"github.com/tgienger/taskflow/internal/ui/styles"
)

// Backend is the part of the API client the screens talk to. *api.Client
// implements it.
type Backend interface {
	Register(ctx context.Context, req models.RegisterRequest) error
	Login(ctx context.Context, req models.LoginRequest) (models.LoginResponse, error)
	Logout(ctx context.Context) error
	Status(ctx context.Context) (models.AuthStatus, error)

	Projects(ctx context.Context) ([]models.Project, error)
	CompletedProjects(ctx context.Context) ([]models.Project, error)
	CreateProject(ctx context.Context, req models.CreateProjectRequest) (models.Project, error)
	JoinProject(ctx context.Context, req models.JoinProjectRequest) (string, error)
	CompleteProject(ctx context.Context, projectID int64) error
	ProjectData(ctx context.Context, projectID int64) (api.ProjectData, error)

	CreateTask(ctx context.Context, projectID int64, in models.TaskInput) error
	UpdateTask(ctx context.Context, projectID, taskID int64, in models.TaskInput) error
	DeleteTask(ctx context.Context, taskID int64) error

	UserProfile(ctx context.Context, userID int64) (models.UserProfile, error)
}

var _ Backend = (*api.Client)(nil)

// Env is shared by the root model and every screen. Screens read State and
// Notices for rendering; only the root model mutates them.
type Env struct {
	Ctx     context.Context
	Backend Backend
	State   *state.State
	Notices *state.Notifier
	Styles  *styles.Styles
	Keys    keys.KeyMap
	UI      config.UIConfig
	Log     *logging.Logger

	// Clipboard copies text to the system clipboard
	Clipboard func(string) error
}

func (e *Env) ctx() context.Context {
	if e.Ctx == nil {
		return context.Background()
	}
	return e.Ctx
}

// FormatDate renders a due date with the configured layout
func (e *Env) FormatDate(t models.Task) string {
	due, ok := t.Due()
	if !ok {
		return "N/A"
	}
	layout := e.UI.DateFormat
	if layout == "" {
		layout = models.DateLayout
	}
	return due.Format(layout)
}
