package views

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tgienger/taskflow/internal/models"
	"github.com/tgienger/taskflow/internal/ui/styles"
)

// ProfileView shows another user's profile over the task manager
type ProfileView struct {
	env      *Env
	viewport viewport.Model
	width    int
	height   int
}

// NewProfileView creates the profile overlay
func NewProfileView(env *Env) *ProfileView {
	return &ProfileView{
		env:      env,
		viewport: viewport.New(styles.MaxWidth-8, 16),
	}
}

// Show loads the profile held in the state
func (v *ProfileView) Show() {
	p, ok := v.env.State.Profile()
	if !ok {
		return
	}
	v.viewport.SetContent(v.renderBody(p))
	v.viewport.GotoTop()
}

func (v *ProfileView) Init() tea.Cmd {
	return nil
}

func (v *ProfileView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		v.viewport.Width = styles.ContentWidth(msg.Width) - 8
		v.viewport.Height = max(msg.Height-10, 5)
		v.Show()
		return v, nil

	case tea.KeyMsg:
		k := v.env.Keys
		switch {
		case msg.Type == tea.KeyCtrlC:
			return v, tea.Quit
		case key.Matches(msg, k.Back), key.Matches(msg, k.Quit), key.Matches(msg, k.Enter):
			return v, send(CloseProfileMsg{})
		}
	}

	var cmd tea.Cmd
	v.viewport, cmd = v.viewport.Update(msg)
	return v, cmd
}

func (v *ProfileView) renderBody(p models.UserProfile) string {
	s := v.env.Styles
	section := func(heading, empty string, tasks []models.TaskSummary) []string {
		rows := []string{s.Section.Render(heading)}
		if len(tasks) == 0 {
			return append(rows, s.Empty.Render(empty))
		}
		for _, t := range tasks {
			rows = append(rows, s.ListItem.Render(fmt.Sprintf("%s (Status: %s)",
				t.Title, s.StatusStyle(t.Status).Render(string(t.Status)))))
		}
		return rows
	}

	rows := []string{s.Label.Render("Email: ") + p.Email}
	rows = append(rows, section(fmt.Sprintf("Tasks Created by %s:", p.Username),
		"No tasks created by this user.", p.CreatedTasks)...)
	rows = append(rows, section(fmt.Sprintf("Tasks Assigned to %s:", p.Username),
		"No tasks assigned to this user.", p.AssignedTasks)...)
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (v *ProfileView) View() string {
	s := v.env.Styles
	p, ok := v.env.State.Profile()
	if !ok {
		return ""
	}
	content := lipgloss.JoinVertical(lipgloss.Left,
		s.ModalTitle.Render(fmt.Sprintf("%s's Profile", p.Username)),
		v.viewport.View(),
		"",
		s.TitleMuted.Render("↑/↓: scroll • Esc: close"),
	)
	return renderModal(s, v.width, v.height, content)
}
