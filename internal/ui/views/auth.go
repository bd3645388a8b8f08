package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tgienger/taskflow/internal/models"
	"github.com/tgienger/taskflow/internal/state"
	"github.com/tgienger/taskflow/internal/ui/styles"
)

type authField int

const (
	fieldUsername authField = iota
	fieldEmail
	fieldPassword
	fieldSubmit
)

// AuthView is the login / register screen
type AuthView struct {
	env *Env

	width  int
	height int

	register bool
	username textinput.Model
	email    textinput.Model
	password textinput.Model
	focusIdx int // index into fields()

	pending bool
	err     error
}

// NewAuthView builds the login screen, prefilled with the last used username
func NewAuthView(env *Env, lastUsername string) *AuthView {
	password := newInput("Password", 128)
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'

	v := &AuthView{
		env:      env,
		username: newInput("Username", 64),
		email:    newInput("Email", 128),
		password: password,
	}
	v.Reset(lastUsername)
	return v
}

// Reset clears the form and switches back to login. The password gets focus
// when a username is already known.
func (v *AuthView) Reset(username string) {
	v.register = false
	v.pending = false
	v.err = nil
	v.username.SetValue(username)
	v.email.Reset()
	v.password.Reset()
	v.focusIdx = 0
	if username != "" {
		v.focusIdx = v.indexOf(fieldPassword)
	}
	v.updateFocus()
}

// Registering reports whether the register form is shown
func (v *AuthView) Registering() bool {
	return v.register
}

func (v *AuthView) fields() []authField {
	if v.register {
		return []authField{fieldUsername, fieldEmail, fieldPassword, fieldSubmit}
	}
	return []authField{fieldUsername, fieldPassword, fieldSubmit}
}

func (v *AuthView) indexOf(f authField) int {
	for i, field := range v.fields() {
		if field == f {
			return i
		}
	}
	return 0
}

func (v *AuthView) focused() authField {
	fields := v.fields()
	return fields[clamp(v.focusIdx, 0, len(fields)-1)]
}

func (v *AuthView) Init() tea.Cmd {
	return textinput.Blink
}

func (v *AuthView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		return v, nil

	case LoginResultMsg:
		v.pending = false
		if msg.Err == nil {
			v.password.Reset()
			v.err = nil
		}
		return v, nil

	case RegisterResultMsg:
		v.pending = false
		if msg.Err == nil {
			v.register = false
			v.email.Reset()
			v.password.Reset()
			v.focusIdx = v.indexOf(fieldPassword)
			v.updateFocus()
		}
		return v, nil

	case tea.KeyMsg:
		return v.updateKeys(msg)
	}

	return v, v.updateInput(msg)
}

func (v *AuthView) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := v.env.Keys
	n := len(v.fields())

	switch {
	case msg.Type == tea.KeyCtrlC:
		return v, tea.Quit

	case key.Matches(msg, k.Toggle):
		v.register = !v.register
		v.err = nil
		v.focusIdx = 0
		v.updateFocus()
		return v, textinput.Blink

	case key.Matches(msg, k.Tab):
		v.focusIdx = (v.focusIdx + 1) % n
		v.updateFocus()
		return v, nil

	case key.Matches(msg, k.ShiftTab):
		v.focusIdx = (v.focusIdx + n - 1) % n
		v.updateFocus()
		return v, nil

	case key.Matches(msg, k.Enter):
		// enter on the last input submits like the button does
		if v.focused() == fieldSubmit || v.focused() == fieldPassword {
			return v, v.submit()
		}
		v.focusIdx++
		v.updateFocus()
		return v, nil
	}

	return v, v.updateInput(msg)
}

func (v *AuthView) updateInput(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch v.focused() {
	case fieldUsername:
		v.username, cmd = v.username.Update(msg)
	case fieldEmail:
		v.email, cmd = v.email.Update(msg)
	case fieldPassword:
		v.password, cmd = v.password.Update(msg)
	}
	return cmd
}

func (v *AuthView) updateFocus() {
	v.username.Blur()
	v.email.Blur()
	v.password.Blur()
	switch v.focused() {
	case fieldUsername:
		v.username.Focus()
	case fieldEmail:
		v.email.Focus()
	case fieldPassword:
		v.password.Focus()
	}
}

func (v *AuthView) submit() tea.Cmd {
	if v.pending {
		return nil
	}
	username := strings.TrimSpace(v.username.Value())
	password := v.password.Value()

	if v.register {
		email := strings.TrimSpace(v.email.Value())
		if username == "" || email == "" || password == "" {
			v.err = errRegisterRequired
			return nil
		}
		v.err = nil
		v.pending = true
		return registerCmd(v.env, models.RegisterRequest{Username: username, Email: email, Password: password})
	}

	if username == "" || password == "" {
		v.err = errCredentialsRequired
		return nil
	}
	v.err = nil
	v.pending = true
	return loginCmd(v.env, models.LoginRequest{Username: username, Password: password})
}

func (v *AuthView) View() string {
	s := v.env.Styles
	contentWidth := styles.ContentWidth(v.width)
	inputWidth := clamp(contentWidth-10, 20, 40)

	inputStyle := func(f authField) lipgloss.Style {
		if v.focused() == f {
			return s.InputFocused.Width(inputWidth)
		}
		return s.Input.Width(inputWidth)
	}

	heading, button, toggle := "Login", " Login ", "No account yet? ctrl+t to register"
	if v.register {
		heading, button, toggle = "Register", " Register ", "Already have an account? ctrl+t to log in"
	}
	btnStyle := s.Button
	if v.focused() == fieldSubmit {
		btnStyle = s.ButtonFocused
	}

	rows := []string{s.Title.Render("TaskFlow"), ""}
	if banner := renderNotices(v.env, state.ChannelTask); banner != "" {
		rows = append(rows, banner, "")
	}
	rows = append(rows,
		s.Subtitle.Render(heading),
		"",
		s.Label.Render("Username:"),
		inputStyle(fieldUsername).Render(v.username.View()),
	)
	if v.register {
		rows = append(rows,
			s.Label.Render("Email:"),
			inputStyle(fieldEmail).Render(v.email.View()),
		)
	}
	rows = append(rows,
		s.Label.Render("Password:"),
		inputStyle(fieldPassword).Render(v.password.View()),
		"",
		btnStyle.Render(button),
	)
	if v.pending {
		rows = append(rows, "", s.TitleMuted.Render("Contacting server..."))
	}
	if v.err != nil {
		rows = append(rows, "", formError(s, v.err))
	}
	rows = append(rows, "", s.TitleMuted.Render(toggle), s.TitleMuted.Render("Tab: next • Enter: submit • Ctrl+C: quit"))

	form := lipgloss.JoinVertical(lipgloss.Left, rows...)
	centered := lipgloss.Place(contentWidth, v.height,
		lipgloss.Center, lipgloss.Center,
		form,
	)
	return styles.CenterView(centered, v.width, v.height)
}
