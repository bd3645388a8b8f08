package views

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"

	"github.com/tgienger/taskflow/internal/state"
	"github.com/tgienger/taskflow/internal/ui/styles"
)

var (
	errNoClipboard         = errors.New("clipboard unavailable")
	errCredentialsRequired = errors.New("username and password are required")
	errRegisterRequired    = errors.New("username, email and password are required")
)

// clamp returns val clamped between minVal and maxVal
func clamp(val, minVal, maxVal int) int {
	if val < minVal {
		return minVal
	}
	if val > maxVal {
		return maxVal
	}
	return val
}

func newInput(placeholder string, limit int) textinput.Model {
	in := textinput.New()
	in.Placeholder = placeholder
	in.CharLimit = limit
	return in
}

// renderNotices renders the banners of the given channels, skipping empty ones
func renderNotices(env *Env, channels ...state.Channel) string {
	var lines []string
	for _, ch := range channels {
		text := env.Notices.Text(ch)
		if text == "" {
			continue
		}
		style := env.Styles.Notice
		if ch == state.ChannelProject {
			style = env.Styles.NoticeProject
		}
		lines = append(lines, style.Render(text))
	}
	return strings.Join(lines, "\n")
}

// renderModal centers a bordered box in the content area
func renderModal(s *styles.Styles, width, height int, content string) string {
	contentWidth := styles.ContentWidth(width)
	centered := lipgloss.Place(contentWidth, height,
		lipgloss.Center, lipgloss.Center,
		s.Modal.Render(content),
	)
	return styles.CenterView(centered, width, height)
}

// renderConfirm is a yes/no prompt
func renderConfirm(s *styles.Styles, width, height int, title, question string) string {
	contentWidth := styles.ContentWidth(width)
	content := lipgloss.JoinVertical(lipgloss.Center,
		s.Title.Foreground(s.Theme.Error).Render(title),
		"",
		lipgloss.NewStyle().Width(clamp(contentWidth-8, 20, 60)).Align(lipgloss.Center).Render(question),
		"",
		lipgloss.JoinHorizontal(lipgloss.Center,
			s.ButtonPrimary.Render(" Y - Yes "),
			"  ",
			s.Button.Render(" N - No "),
		),
	)
	centered := lipgloss.Place(contentWidth, height,
		lipgloss.Center, lipgloss.Center,
		content,
	)
	return styles.CenterView(centered, width, height)
}

func formError(s *styles.Styles, err error) string {
	if err == nil {
		return ""
	}
	return s.Error.Render(fmt.Sprintf("✗ %s", err))
}
