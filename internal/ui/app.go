package ui

import (
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tgienger/taskflow/internal/api"
	"github.com/tgienger/taskflow/internal/db"
	"github.com/tgienger/taskflow/internal/state"
	"github.com/tgienger/taskflow/internal/ui/styles"
	"github.com/tgienger/taskflow/internal/ui/views"
)

const defaultNoticeTTL = 5 * time.Second

// Settings persists small user preferences between runs. *db.DB implements it.
type Settings interface {
	GetSetting(key string) (string, error)
	SetSetting(key, value string) error
	DeleteSetting(key string) error
}

var _ Settings = (*db.DB)(nil)

type noticeExpiredMsg struct {
	handle state.Handle
}

// App is the root model. It applies backend results to the state, owns the
// notification banners, and routes input to the screen the state is on.
type App struct {
	env      *views.Env
	settings Settings

	auth     *views.AuthView
	projects *views.ProjectListView
	tasks    *views.TaskListView
	profile  *views.ProfileView

	width    int
	height   int
	checking bool
}

// NewApp creates the application. Stored filter, sort order and last username
// win over the configured defaults.
func NewApp(env *views.Env, settings Settings) *App {
	a := &App{env: env, settings: settings}

	env.State.SetFilter(env.UI.Filter())
	env.State.SetSortOrder(env.UI.SortOrder())
	if v := a.setting(db.SettingFilter); v != "" {
		if f, err := state.ParseFilter(v); err == nil {
			env.State.SetFilter(f)
		} else {
			a.dropSetting(db.SettingFilter, err)
		}
	}
	if v := a.setting(db.SettingSortOrder); v != "" {
		if o, err := state.ParseSortOrder(v); err == nil {
			env.State.SetSortOrder(o)
		} else {
			a.dropSetting(db.SettingSortOrder, err)
		}
	}

	a.auth = views.NewAuthView(env, a.setting(db.SettingLastUsername))
	a.projects = views.NewProjectListView(env)
	a.tasks = views.NewTaskListView(env)
	a.profile = views.NewProfileView(env)
	return a
}

func (a *App) Init() tea.Cmd {
	a.checking = true
	return tea.Batch(
		tea.SetWindowTitle("TaskFlow"),
		views.StatusCmd(a.env),
		a.auth.Init(),
	)
}

func (a *App) setting(key string) string {
	if a.settings == nil {
		return ""
	}
	v, err := a.settings.GetSetting(key)
	if err != nil {
		a.env.Log.Warn("read setting failed", "key", key, "err", err)
		return ""
	}
	return v
}

func (a *App) saveSetting(key, value string) {
	if a.settings == nil {
		return
	}
	if err := a.settings.SetSetting(key, value); err != nil {
		a.env.Log.Warn("save setting failed", "key", key, "err", err)
	}
}

// dropSetting forgets a stored value that no longer parses
func (a *App) dropSetting(key string, cause error) {
	a.env.Log.Warn("discarding stored setting", "key", key, "err", cause)
	if err := a.settings.DeleteSetting(key); err != nil {
		a.env.Log.Warn("delete setting failed", "key", key, "err", err)
	}
}

// notify shows text on ch and schedules its expiry
func (a *App) notify(ch state.Channel, text string) tea.Cmd {
	if text == "" {
		return nil
	}
	h := a.env.Notices.Set(ch, text)
	ttl := a.env.UI.NotificationTTL()
	if ttl <= 0 {
		ttl = defaultNoticeTTL
	}
	return tea.Tick(ttl, func(time.Time) tea.Msg {
		return noticeExpiredMsg{handle: h}
	})
}

func (a *App) signedIn(username string) tea.Cmd {
	tok := a.env.State.Authenticate(username)
	a.saveSetting(db.SettingLastUsername, username)
	a.env.Log.Info("signed in", "user", username)
	return tea.Batch(a.projects.Loading(), views.FetchProjectsCmd(a.env, tok))
}

func (a *App) fetchProjects() tea.Cmd {
	return views.FetchProjectsCmd(a.env, a.env.State.ProjectsToken())
}

func (a *App) refreshProject() tea.Cmd {
	tok, err := a.env.State.RefreshProject()
	if err != nil {
		return nil
	}
	return views.FetchProjectDataCmd(a.env, tok)
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	st := a.env.State

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		// every screen keeps its size, not only the active one
		a.auth.Update(msg)
		a.projects.Update(msg)
		a.tasks.Update(msg)
		a.profile.Update(msg)
		return a, nil

	case noticeExpiredMsg:
		a.env.Notices.Expire(msg.handle)
		return a, nil

	case views.ConfigReloadedMsg:
		a.env.UI = msg.UI
		a.env.Log.Info("ui config reloaded")
		return a, nil

	case views.StatusResultMsg:
		a.checking = false
		if msg.Err != nil {
			a.env.Log.Warn("session probe failed", "err", msg.Err)
			return a, nil
		}
		if !msg.Status.IsAuthenticated {
			return a, nil
		}
		return a, a.signedIn(msg.Status.Username)

	case views.LoginResultMsg:
		a.auth.Update(msg)
		if msg.Err != nil {
			return a, a.notify(state.ChannelTask, api.Message(msg.Err, "Network error during login."))
		}
		return a, tea.Batch(a.signedIn(msg.Username), a.notify(state.ChannelTask, "Login successful!"))

	case views.RegisterResultMsg:
		a.auth.Update(msg)
		if msg.Err != nil {
			return a, a.notify(state.ChannelTask, api.Message(msg.Err, "Network error during registration."))
		}
		return a, a.notify(state.ChannelTask, "Registration successful! You can now log in.")

	case views.LogoutRequestedMsg:
		return a, views.LogoutCmd(a.env)

	case views.LogoutResultMsg:
		if msg.Err != nil {
			a.env.Log.Warn("logout failed", "err", msg.Err)
			return a, a.notify(state.ChannelTask, api.Message(msg.Err, "Network error during logout."))
		}
		st.Logout()
		a.env.Notices.Clear()
		a.auth.Reset(a.setting(db.SettingLastUsername))
		a.projects.Reset()
		a.tasks.Reset()
		a.env.Log.Info("signed out")
		return a, a.notify(state.ChannelTask, "Logged out successfully.")

	case views.ProjectsLoadedMsg:
		if msg.Err != nil {
			a.env.Log.Error("fetch projects failed", "err", msg.Err)
			a.projects.Sync()
			return a, nil
		}
		if st.ApplyProjects(msg.Token, msg.Projects) {
			a.projects.Sync()
		} else {
			a.env.Log.Debug("discarded stale project list")
		}
		return a, nil

	case views.CompletedProjectsLoadedMsg:
		if msg.Err != nil {
			a.env.Log.Error("fetch completed projects failed", "err", msg.Err)
			return a, nil
		}
		if st.ApplyCompletedProjects(msg.Token, msg.Projects) {
			a.projects.Sync()
		}
		return a, nil

	case views.SelectProjectMsg:
		tok, err := st.SelectProject(msg.Project)
		if err != nil {
			a.env.Log.Warn("select project", "err", err)
			return a, nil
		}
		a.tasks.Reset()
		return a, tea.Batch(a.tasks.Loading(), views.FetchProjectDataCmd(a.env, tok))

	case views.BackToProjectsMsg:
		if err := st.LeaveProject(); err != nil {
			a.env.Log.Warn("leave project", "err", err)
		}
		a.projects.Sync()
		return a, nil

	case views.ReloadMsg:
		switch st.Screen() {
		case state.ScreenProjectSelection:
			return a, a.fetchProjects()
		case state.ScreenTaskManager:
			cmd := a.refreshProject()
			if cmd == nil {
				return a, nil
			}
			return a, tea.Batch(a.tasks.Loading(), cmd)
		}
		return a, nil

	case views.ProjectDataMsg:
		if !st.IsCurrent(msg.Token) {
			a.env.Log.Debug("discarded stale project data", "project", msg.Token.ProjectID)
			return a, nil
		}
		var cmd tea.Cmd
		if msg.Err != nil {
			a.env.Log.Error("fetch project data failed", "project", msg.Token.ProjectID, "err", msg.Err)
			text := "Failed to load project data. Please try again."
			if errors.Is(msg.Err, api.ErrNetwork) {
				text = "Network error. Could not fetch project data."
			}
			cmd = a.notify(state.ChannelProject, text)
		} else {
			st.ApplyProjectData(msg.Token, msg.Data.Tasks, msg.Data.Members)
		}
		a.tasks.Update(msg)
		return a, cmd

	case views.ProjectCreatedMsg:
		a.projects.Update(msg)
		if msg.Err != nil {
			return a, a.notify(state.ChannelProject, api.Message(msg.Err, "Network error creating project."))
		}
		return a, tea.Batch(
			a.notify(state.ChannelProject, fmt.Sprintf("Project '%s' created successfully!", msg.Project.Title)),
			a.fetchProjects(),
		)

	case views.ProjectJoinedMsg:
		a.projects.Update(msg)
		if msg.Err != nil {
			return a, a.notify(state.ChannelProject, api.Message(msg.Err, "Network error joining project."))
		}
		return a, tea.Batch(a.notify(state.ChannelProject, msg.Message), a.fetchProjects())

	case views.ProjectCompletedMsg:
		a.tasks.Update(msg)
		if msg.Err != nil {
			return a, a.notify(state.ChannelProject, completeFailure(msg.Err))
		}
		st.ProjectCompleted(msg.ProjectID)
		a.projects.Sync()
		return a, tea.Batch(a.notify(state.ChannelProject, "Project marked completed!"), a.fetchProjects())

	case views.TaskSavedMsg:
		a.tasks.Update(msg)
		if msg.Err != nil {
			network := "Network error creating task."
			if msg.Editing {
				network = "Network error updating task."
			}
			return a, a.notify(state.ChannelTask, api.Message(msg.Err, network))
		}
		text := "Task created successfully!"
		if msg.Editing {
			text = "Task updated successfully!"
		}
		return a, tea.Batch(a.notify(state.ChannelTask, text), a.refreshProject())

	case views.TaskDeletedMsg:
		a.tasks.Update(msg)
		if msg.Err != nil {
			return a, a.notify(state.ChannelTask, api.Message(msg.Err, "Network error deleting task."))
		}
		return a, tea.Batch(a.notify(state.ChannelTask, "Task deleted successfully!"), a.refreshProject())

	case views.ProfileLoadedMsg:
		if !st.ProfileCurrent(msg.Token) {
			a.env.Log.Debug("discarded stale profile", "project", msg.Token.ProjectID)
			return a, nil
		}
		if msg.Err != nil {
			return a, a.notify(state.ChannelTask, api.Message(msg.Err, "Network error fetching user profile."))
		}
		if st.ShowProfile(msg.Token, msg.Profile) {
			a.profile.Show()
		}
		return a, nil

	case views.CloseProfileMsg:
		st.CloseProfile()
		return a, nil

	case views.SetFilterMsg:
		st.SetFilter(msg.Filter)
		a.saveSetting(db.SettingFilter, msg.Filter.String())
		a.tasks.Update(msg)
		return a, nil

	case views.SetSortMsg:
		st.SetSortOrder(msg.Order)
		a.saveSetting(db.SettingSortOrder, msg.Order.String())
		a.tasks.Update(msg)
		return a, nil

	case views.JoinCodeCopiedMsg:
		if msg.Err != nil {
			a.env.Log.Warn("copy join code failed", "err", msg.Err)
			return a, a.notify(state.ChannelTask, "Could not copy the join code.")
		}
		return a, a.notify(state.ChannelTask, fmt.Sprintf("Join code %s copied to clipboard.", msg.Code))
	}

	var cmd tea.Cmd
	if _, ok := st.Profile(); ok {
		if _, isKey := msg.(tea.KeyMsg); isKey {
			_, cmd = a.profile.Update(msg)
			return a, cmd
		}
	}
	switch st.Screen() {
	case state.ScreenUnauthenticated:
		_, cmd = a.auth.Update(msg)
	case state.ScreenProjectSelection:
		_, cmd = a.projects.Update(msg)
	case state.ScreenTaskManager:
		_, cmd = a.tasks.Update(msg)
	}
	return a, cmd
}

// completeFailure maps a failed completion to its banner text
func completeFailure(err error) string {
	var se *api.StatusError
	switch {
	case errors.As(err, &se) && se.Message != "":
		return se.Message
	case errors.Is(err, api.ErrNetwork):
		return "Network error."
	}
	return "Failed to complete project."
}

func (a *App) View() string {
	st := a.env.State
	if a.checking {
		s := a.env.Styles
		content := lipgloss.JoinVertical(lipgloss.Center,
			s.Title.Render("TaskFlow"),
			s.TitleMuted.Render("Checking session..."),
		)
		return styles.CenterView(lipgloss.Place(styles.ContentWidth(a.width), a.height,
			lipgloss.Center, lipgloss.Center, content), a.width, a.height)
	}
	if _, ok := st.Profile(); ok {
		return a.profile.View()
	}
	switch st.Screen() {
	case state.ScreenProjectSelection:
		return a.projects.View()
	case state.ScreenTaskManager:
		return a.tasks.View()
	}
	return a.auth.View()
}
