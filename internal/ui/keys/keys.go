package keys

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds every binding the screens use. Not every screen uses every key.
type KeyMap struct {
	Quit     key.Binding
	Back     key.Binding
	Enter    key.Binding
	Up       key.Binding
	Down     key.Binding
	Tab      key.Binding
	ShiftTab key.Binding
	Save     key.Binding
	Help     key.Binding

	New      key.Binding
	Join     key.Binding
	Edit     key.Binding
	Delete   key.Binding
	Filter   key.Binding
	Sort     key.Binding
	Reload   key.Binding
	Logout   key.Binding
	Complete key.Binding
	CopyCode key.Binding
	Creator  key.Binding
	Assignee key.Binding
	Toggle   key.Binding

	Left  key.Binding
	Right key.Binding
	Yes   key.Binding
	No    key.Binding
}

// DefaultKeyMap returns the default key bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("↵", "select"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Tab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next field"),
		),
		ShiftTab: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "previous field"),
		),
		Save: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "save"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		New: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "new"),
		),
		Join: key.NewBinding(
			key.WithKeys("J"),
			key.WithHelp("J", "join project"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "edit"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d", "delete"),
			key.WithHelp("d", "delete"),
		),
		Filter: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "filter"),
		),
		Sort: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "sort by due"),
		),
		Reload: key.NewBinding(
			key.WithKeys("r", "ctrl+r"),
			key.WithHelp("r", "reload"),
		),
		Logout: key.NewBinding(
			key.WithKeys("L"),
			key.WithHelp("L", "logout"),
		),
		Complete: key.NewBinding(
			key.WithKeys("C"),
			key.WithHelp("C", "complete project"),
		),
		CopyCode: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "copy join code"),
		),
		Creator: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "creator profile"),
		),
		Assignee: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "assignee profile"),
		),
		Toggle: key.NewBinding(
			key.WithKeys("ctrl+t"),
			key.WithHelp("ctrl+t", "login/register"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←", "previous"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→", "next"),
		),
		Yes: key.NewBinding(
			key.WithKeys("y", "Y"),
			key.WithHelp("y", "yes"),
		),
		No: key.NewBinding(
			key.WithKeys("n", "N", "esc"),
			key.WithHelp("n", "no"),
		),
	}
}

// ProjectHelp is the help.KeyMap of the project list
type ProjectHelp struct{ KeyMap }

func (k ProjectHelp) ShortHelp() []key.Binding {
	return []key.Binding{k.Enter, k.New, k.Join, k.Reload, k.Logout, k.Quit}
}

func (k ProjectHelp) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Enter},
		{k.New, k.Join, k.Reload},
		{k.Logout, k.Help, k.Quit},
	}
}

// TaskHelp is the help.KeyMap of the task manager
type TaskHelp struct{ KeyMap }

func (k TaskHelp) ShortHelp() []key.Binding {
	return []key.Binding{k.Enter, k.New, k.Edit, k.Delete, k.Filter, k.Sort, k.Back, k.Help}
}

func (k TaskHelp) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Enter, k.New, k.Edit, k.Delete},
		{k.Filter, k.Sort, k.Reload, k.Creator, k.Assignee},
		{k.CopyCode, k.Complete, k.Back, k.Logout, k.Quit},
	}
}
