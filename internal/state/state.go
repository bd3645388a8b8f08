// Package state holds the client-side application state: the session, the
// screen the user is on, the last fetched snapshots and the derived task list.
//
// State is not safe for concurrent use. It is owned by the Bubble Tea model and
// only touched from Update.
package state

import (
	"fmt"

	"github.com/tgienger/taskflow/internal/models"
)

// Screen is the top-level view shown to the user
type Screen int

const (
	ScreenUnauthenticated Screen = iota
	ScreenProjectSelection
	ScreenTaskManager
)

func (s Screen) String() string {
	switch s {
	case ScreenUnauthenticated:
		return "unauthenticated"
	case ScreenProjectSelection:
		return "project-selection"
	case ScreenTaskManager:
		return "task-manager"
	}
	return fmt.Sprintf("screen(%d)", int(s))
}

// Session is the authenticated user, as reported by the backend
type Session struct {
	Authenticated bool
	Username      string
}

// Token identifies the state a fetch was issued against. A response is only
// applied when its token is still current.
type Token struct {
	Epoch     uint64
	ProjectID int64
	Seq       uint64
}

// State is the whole client state
type State struct {
	screen  Screen
	session Session

	projects  []models.Project
	completed []models.Project
	current   *models.Project
	tasks     []models.Task
	members   []models.Member
	profile   *models.UserProfile

	filter Filter
	order  SortOrder

	// epoch changes on login/logout, seq on every project data fetch,
	// visit every time a project is opened
	epoch uint64
	seq   uint64
	visit uint64
}

// New returns an unauthenticated state
func New() *State {
	return &State{
		screen: ScreenUnauthenticated,
		filter: FilterAll,
		order:  SortAscending,
	}
}

// Screen returns the current top-level view
func (s *State) Screen() Screen {
	return s.screen
}

// Session returns the signed in user
func (s *State) Session() Session {
	return s.session
}

// Username is the signed in user's name, or ""
func (s *State) Username() string {
	return s.session.Username
}

// Filter returns the task list filter
func (s *State) Filter() Filter {
	return s.filter
}

// SortOrder returns the due date sort order
func (s *State) SortOrder() SortOrder {
	return s.order
}

// Projects returns the active projects snapshot
func (s *State) Projects() []models.Project {
	return s.projects
}

// CompletedProjects returns the completed projects snapshot
func (s *State) CompletedProjects() []models.Project {
	return s.completed
}

// Tasks returns the open project's tasks in server order
func (s *State) Tasks() []models.Task {
	return s.tasks
}

// Members returns the open project's members
func (s *State) Members() []models.Member {
	return s.members
}

// CurrentProject returns the selected project
func (s *State) CurrentProject() (models.Project, bool) {
	if s.current == nil {
		return models.Project{}, false
	}
	return *s.current, true
}

// Profile returns the profile being viewed, if any
func (s *State) Profile() (models.UserProfile, bool) {
	if s.profile == nil {
		return models.UserProfile{}, false
	}
	return *s.profile, true
}

// Task looks up a task of the current project by id
func (s *State) Task(id int64) (models.Task, bool) {
	for _, t := range s.tasks {
		if t.ID == id {
			return t, true
		}
	}
	return models.Task{}, false
}

// VisibleTasks is the filtered and ordered task list for the current inputs
func (s *State) VisibleTasks() []models.Task {
	return VisibleTasks(s.tasks, s.session.Username, s.filter, s.order)
}

// SetFilter changes which tasks VisibleTasks returns
func (s *State) SetFilter(f Filter) {
	s.filter = f
}

// SetSortOrder changes the due date sort direction
func (s *State) SetSortOrder(o SortOrder) {
	s.order = o
}

// Authenticate records a logged in user. From the auth screen it moves to
// project selection; when already signed in it only refreshes the username.
func (s *State) Authenticate(username string) Token {
	if !s.session.Authenticated {
		s.epoch++
		s.screen = ScreenProjectSelection
	}
	s.session = Session{Authenticated: true, Username: username}
	return s.ProjectsToken()
}

// Logout clears the session and every snapshot. Fetches issued before the
// logout are discarded when they resolve.
func (s *State) Logout() {
	s.epoch++
	s.seq++
	s.screen = ScreenUnauthenticated
	s.session = Session{}
	s.projects = nil
	s.completed = nil
	s.current = nil
	s.tasks = nil
	s.members = nil
	s.profile = nil
}

// ProjectsToken is the token for a project list fetch
func (s *State) ProjectsToken() Token {
	return Token{Epoch: s.epoch}
}

// SelectProject opens the task manager for p and returns the token for its
// tasks and members fetch.
func (s *State) SelectProject(p models.Project) (Token, error) {
	if s.screen != ScreenProjectSelection {
		return Token{}, fmt.Errorf("select project from %s: %w", s.screen, ErrInvalidTransition)
	}
	selected := p
	s.current = &selected
	s.tasks = nil
	s.members = nil
	s.screen = ScreenTaskManager
	s.visit++
	return s.nextProjectToken(), nil
}

// RefreshProject returns a fresh token for re-fetching the current project
func (s *State) RefreshProject() (Token, error) {
	if s.screen != ScreenTaskManager || s.current == nil {
		return Token{}, fmt.Errorf("refresh project from %s: %w", s.screen, ErrInvalidTransition)
	}
	return s.nextProjectToken(), nil
}

func (s *State) nextProjectToken() Token {
	s.seq++
	return Token{Epoch: s.epoch, ProjectID: s.current.ID, Seq: s.seq}
}

// LeaveProject goes back to the project list
func (s *State) LeaveProject() error {
	if s.screen != ScreenTaskManager {
		return fmt.Errorf("leave project from %s: %w", s.screen, ErrInvalidTransition)
	}
	s.seq++
	s.current = nil
	s.tasks = nil
	s.members = nil
	s.profile = nil
	s.screen = ScreenProjectSelection
	return nil
}

// ProjectCompleted handles a successful completion of project id. If it is
// the open project the user is returned to the project list. Both project
// lists still have to be re-fetched by the caller.
func (s *State) ProjectCompleted(id int64) {
	if s.current != nil && s.current.ID == id {
		_ = s.LeaveProject()
	}
}

// ApplyProjects stores the active project list if tok is still current
func (s *State) ApplyProjects(tok Token, projects []models.Project) bool {
	if !s.session.Authenticated || tok.Epoch != s.epoch {
		return false
	}
	s.projects = projects
	if s.current != nil {
		for _, p := range projects {
			if p.ID == s.current.ID {
				updated := p
				s.current = &updated
				break
			}
		}
	}
	return true
}

// ApplyCompletedProjects stores the completed project list if tok is still current
func (s *State) ApplyCompletedProjects(tok Token, projects []models.Project) bool {
	if !s.session.Authenticated || tok.Epoch != s.epoch {
		return false
	}
	s.completed = projects
	return true
}

// ApplyProjectData stores the tasks and members of the current project. It
// reports false when the response belongs to a project the user has left, a
// previous session, or a fetch that has since been superseded.
func (s *State) ApplyProjectData(tok Token, tasks []models.Task, members []models.Member) bool {
	if !s.IsCurrent(tok) {
		return false
	}
	s.tasks = tasks
	s.members = members
	return true
}

// IsCurrent reports whether a project data token is still the latest one
func (s *State) IsCurrent(tok Token) bool {
	return s.session.Authenticated &&
		s.current != nil &&
		tok.Epoch == s.epoch &&
		tok.ProjectID == s.current.ID &&
		tok.Seq == s.seq
}

// ProfileToken is the token for a profile fetch from the open project. It
// stays valid across refreshes of that project but not across leaving it.
func (s *State) ProfileToken() Token {
	if s.current == nil {
		return Token{Epoch: s.epoch}
	}
	return Token{Epoch: s.epoch, ProjectID: s.current.ID, Seq: s.visit}
}

// ProfileCurrent reports whether a profile fetch may still be shown
func (s *State) ProfileCurrent(tok Token) bool {
	return s.session.Authenticated &&
		s.screen == ScreenTaskManager &&
		s.current != nil &&
		tok == s.ProfileToken()
}

// ShowProfile opens a user profile fetched under tok. The overlay belongs to
// the task manager of the project the fetch was issued from.
func (s *State) ShowProfile(tok Token, p models.UserProfile) bool {
	if !s.ProfileCurrent(tok) {
		return false
	}
	s.profile = &p
	return true
}

// CloseProfile discards the viewed profile
func (s *State) CloseProfile() {
	s.profile = nil
}
