package views

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/tgienger/taskflow/internal/models"
	"github.com/tgienger/taskflow/internal/state"
)

func send(msg tea.Msg) tea.Cmd {
	return func() tea.Msg { return msg }
}

// StatusCmd probes the session once at startup
func StatusCmd(env *Env) tea.Cmd {
	return func() tea.Msg {
		st, err := env.Backend.Status(env.ctx())
		return StatusResultMsg{Status: st, Err: err}
	}
}

// LogoutCmd ends the server session
func LogoutCmd(env *Env) tea.Cmd {
	return func() tea.Msg {
		return LogoutResultMsg{Err: env.Backend.Logout(env.ctx())}
	}
}

// FetchProjectsCmd loads the active and the completed project lists
func FetchProjectsCmd(env *Env, tok state.Token) tea.Cmd {
	return tea.Batch(
		func() tea.Msg {
			projects, err := env.Backend.Projects(env.ctx())
			return ProjectsLoadedMsg{Token: tok, Projects: projects, Err: err}
		},
		func() tea.Msg {
			projects, err := env.Backend.CompletedProjects(env.ctx())
			return CompletedProjectsLoadedMsg{Token: tok, Projects: projects, Err: err}
		},
	)
}

// FetchProjectDataCmd loads tasks and members of the project tok was issued for
func FetchProjectDataCmd(env *Env, tok state.Token) tea.Cmd {
	return func() tea.Msg {
		data, err := env.Backend.ProjectData(env.ctx(), tok.ProjectID)
		return ProjectDataMsg{Token: tok, Data: data, Err: err}
	}
}

func loginCmd(env *Env, req models.LoginRequest) tea.Cmd {
	return func() tea.Msg {
		resp, err := env.Backend.Login(env.ctx(), req)
		return LoginResultMsg{Username: resp.Username, Err: err}
	}
}

func registerCmd(env *Env, req models.RegisterRequest) tea.Cmd {
	return func() tea.Msg {
		return RegisterResultMsg{Err: env.Backend.Register(env.ctx(), req)}
	}
}

func createProjectCmd(env *Env, req models.CreateProjectRequest) tea.Cmd {
	return func() tea.Msg {
		p, err := env.Backend.CreateProject(env.ctx(), req)
		return ProjectCreatedMsg{Project: p, Err: err}
	}
}

func joinProjectCmd(env *Env, req models.JoinProjectRequest) tea.Cmd {
	return func() tea.Msg {
		msg, err := env.Backend.JoinProject(env.ctx(), req)
		return ProjectJoinedMsg{Message: msg, Err: err}
	}
}

func completeProjectCmd(env *Env, p models.Project) tea.Cmd {
	return func() tea.Msg {
		err := env.Backend.CompleteProject(env.ctx(), p.ID)
		return ProjectCompletedMsg{ProjectID: p.ID, Title: p.Title, Err: err}
	}
}

func saveTaskCmd(env *Env, editorID uint64, projectID int64, form state.TaskForm, in models.TaskInput) tea.Cmd {
	return func() tea.Msg {
		var err error
		if form.Editing() {
			err = env.Backend.UpdateTask(env.ctx(), projectID, form.TaskID, in)
		} else {
			err = env.Backend.CreateTask(env.ctx(), projectID, in)
		}
		return TaskSavedMsg{EditorID: editorID, Editing: form.Editing(), Err: err}
	}
}

func deleteTaskCmd(env *Env, taskID int64) tea.Cmd {
	return func() tea.Msg {
		return TaskDeletedMsg{TaskID: taskID, Err: env.Backend.DeleteTask(env.ctx(), taskID)}
	}
}

func fetchProfileCmd(env *Env, userID int64) tea.Cmd {
	tok := env.State.ProfileToken()
	return func() tea.Msg {
		p, err := env.Backend.UserProfile(env.ctx(), userID)
		return ProfileLoadedMsg{Token: tok, Profile: p, Err: err}
	}
}

func copyJoinCodeCmd(env *Env, code string) tea.Cmd {
	return func() tea.Msg {
		if env.Clipboard == nil {
			return JoinCodeCopiedMsg{Code: code, Err: errNoClipboard}
		}
		return JoinCodeCopiedMsg{Code: code, Err: env.Clipboard(code)}
	}
}
