package keys

import (
	"testing"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestDefaultKeyMapMatches(t *testing.T) {
	k := DefaultKeyMap()

	assert.True(t, key.Matches(tea.KeyMsg{Type: tea.KeyCtrlC}, k.Quit))
	assert.True(t, key.Matches(runeKey('j'), k.Down))
	assert.True(t, key.Matches(tea.KeyMsg{Type: tea.KeyCtrlS}, k.Save))
	assert.True(t, key.Matches(runeKey('L'), k.Logout))
	assert.False(t, key.Matches(runeKey('l'), k.Logout), "logout is shifted so it is not hit by accident")
	assert.True(t, key.Matches(runeKey('C'), k.Complete))
	assert.False(t, key.Matches(runeKey('c'), k.Complete))
}

func TestHelpListsBoundKeys(t *testing.T) {
	k := DefaultKeyMap()
	for name, h := range map[string]interface {
		ShortHelp() []key.Binding
		FullHelp() [][]key.Binding
	}{
		"projects": ProjectHelp{k},
		"tasks":    TaskHelp{k},
	} {
		assert.NotEmpty(t, h.ShortHelp(), name)
		for _, group := range h.FullHelp() {
			for _, b := range group {
				assert.NotEmpty(t, b.Keys(), name)
				assert.NotEmpty(t, b.Help().Desc, name)
			}
		}
	}
}
