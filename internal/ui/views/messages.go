package views

import (
	"github.com/tgienger/taskflow/internal/api"
	"github.com/tgienger/taskflow/internal/config"
	"github.com/tgienger/taskflow/internal/models"
	"github.com/tgienger/taskflow/internal/state"
)

// Results of backend calls. The root model applies them to the state and
// then forwards them to the active screen.

type StatusResultMsg struct {
	Status models.AuthStatus
	Err    error
}

type LoginResultMsg struct {
	Username string
	Err      error
}

type RegisterResultMsg struct {
	Err error
}

type LogoutResultMsg struct {
	Err error
}

type ProjectsLoadedMsg struct {
	Token    state.Token
	Projects []models.Project
	Err      error
}

type CompletedProjectsLoadedMsg struct {
	Token    state.Token
	Projects []models.Project
	Err      error
}

type ProjectDataMsg struct {
	Token state.Token
	Data  api.ProjectData
	Err   error
}

type ProjectCreatedMsg struct {
	Project models.Project
	Err     error
}

type ProjectJoinedMsg struct {
	Message string
	Err     error
}

type ProjectCompletedMsg struct {
	ProjectID int64
	Title     string
	Err       error
}

// TaskSavedMsg is the result of a create or update. EditorID names the
// dialog that sent it.
type TaskSavedMsg struct {
	EditorID uint64
	Editing  bool
	Err      error
}

type TaskDeletedMsg struct {
	TaskID int64
	Err    error
}

type ProfileLoadedMsg struct {
	Token   state.Token
	Profile models.UserProfile
	Err     error
}

type JoinCodeCopiedMsg struct {
	Code string
	Err  error
}

// Requests from a screen that change the state; handled by the root model.

type SelectProjectMsg struct {
	Project models.Project
}

type BackToProjectsMsg struct{}

// ReloadMsg re-fetches whatever the current screen shows
type ReloadMsg struct{}

type LogoutRequestedMsg struct{}

type CloseProfileMsg struct{}

type SetFilterMsg struct {
	Filter state.Filter
}

type SetSortMsg struct {
	Order state.SortOrder
}

// ConfigReloadedMsg carries the [ui] section after the config file changed
type ConfigReloadedMsg struct {
	UI config.UIConfig
}
