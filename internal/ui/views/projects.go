package views

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tgienger/taskflow/internal/models"
	"github.com/tgienger/taskflow/internal/state"
	"github.com/tgienger/taskflow/internal/ui/keys"
	"github.com/tgienger/taskflow/internal/ui/styles"
)

type projectItem struct {
	project models.Project
}

func (i projectItem) Title() string       { return i.project.Title }
func (i projectItem) Description() string { return memberCount(i.project) }
func (i projectItem) FilterValue() string { return i.project.Title }

func memberCount(p models.Project) string {
	return fmt.Sprintf("Members: %d", len(p.Members))
}

type projectDelegate struct {
	styles *styles.Styles
	width  int
}

func (d projectDelegate) Height() int                               { return 2 }
func (d projectDelegate) Spacing() int                              { return 1 }
func (d projectDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }

func (d projectDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	p, ok := item.(projectItem)
	if !ok {
		return
	}

	width := max(d.width-4, 20)
	titleStyle := d.styles.ListItem.Width(width)
	descStyle := d.styles.ListItem.Foreground(d.styles.Theme.ForegroundDim).Width(width)
	if index == m.Index() {
		titleStyle = d.styles.ListSelected.Width(width)
		descStyle = d.styles.ListSelected.Foreground(d.styles.Theme.ForegroundDim).Width(width)
	}

	fmt.Fprintf(w, "%s\n%s", titleStyle.Render(p.Title()), descStyle.Render(p.Description()))
}

type projectMode int

const (
	projectBrowsing projectMode = iota
	projectCreating
	projectJoining
)

// ProjectListView is the project selection screen: active projects, the
// completed ones below them, and the create / join dialogs.
type ProjectListView struct {
	env      *Env
	list     list.Model
	delegate *projectDelegate
	spinner  spinner.Model
	help     help.Model

	width  int
	height int
	loaded bool

	mode       projectMode
	titleInput textinput.Model
	codeInput  textinput.Model
	pending    bool
	err        error

	showHelpPopup bool
}

// NewProjectListView creates the project selection screen
func NewProjectListView(env *Env) *ProjectListView {
	s := env.Styles
	delegate := &projectDelegate{styles: s, width: styles.MaxWidth}

	l := list.New([]list.Item{}, delegate, 0, 0)
	l.Title = "Your Projects"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)
	l.Styles.Title = s.Section

	sp := spinner.New()
	sp.Spinner = spinner.Ellipsis
	sp.Style = s.TitleMuted

	h := help.New()
	h.Styles.ShortKey = s.HelpKey
	h.Styles.ShortDesc = s.HelpDesc
	h.Styles.FullKey = s.HelpKey
	h.Styles.FullDesc = s.HelpDesc

	return &ProjectListView{
		env:        env,
		list:       l,
		delegate:   delegate,
		spinner:    sp,
		help:       h,
		titleInput: newInput("Project Title", 100),
		codeInput:  newInput("Enter Join Code", 32),
	}
}

func (v *ProjectListView) Init() tea.Cmd {
	return v.Loading()
}

// Loading shows the spinner until the next Sync
func (v *ProjectListView) Loading() tea.Cmd {
	v.loaded = false
	return v.spinner.Tick
}

// Sync rebuilds the list from the state snapshot
func (v *ProjectListView) Sync() {
	projects := v.env.State.Projects()
	items := make([]list.Item, len(projects))
	for i, p := range projects {
		items[i] = projectItem{project: p}
	}
	v.list.SetItems(items)
	v.loaded = true
	v.resize()
}

// Reset drops any open dialog and the list selection; used on logout
func (v *ProjectListView) Reset() {
	v.closeForm()
	v.showHelpPopup = false
	v.list.ResetFilter()
	v.list.ResetSelected()
	v.list.SetItems(nil)
	v.loaded = false
}

// Mode reports which dialog is open
func (v *ProjectListView) Creating() bool { return v.mode == projectCreating }
// Joining reports whether the join dialog is open
func (v *ProjectListView) Joining() bool  { return v.mode == projectJoining }

func (v *ProjectListView) resize() {
	contentWidth := styles.ContentWidth(v.width)
	v.delegate.width = contentWidth
	v.help.Width = contentWidth

	// header, banner, completed section and help bar
	completed := max(len(v.env.State.CompletedProjects()), 1)
	v.list.SetSize(contentWidth-4, max(v.height-completed-10, 6))
}

func (v *ProjectListView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		v.resize()
		return v, nil

	case spinner.TickMsg:
		if v.loaded {
			return v, nil
		}
		var cmd tea.Cmd
		v.spinner, cmd = v.spinner.Update(msg)
		return v, cmd

	case ProjectCreatedMsg:
		v.pending = false
		if msg.Err == nil && v.mode == projectCreating {
			v.closeForm()
		}
		return v, nil

	case ProjectJoinedMsg:
		v.pending = false
		if msg.Err == nil && v.mode == projectJoining {
			v.closeForm()
		}
		return v, nil

	case tea.KeyMsg:
		if v.showHelpPopup {
			v.showHelpPopup = false
			return v, nil
		}
		if v.mode != projectBrowsing {
			return v.updateForm(msg)
		}
		if v.list.FilterState() == list.Filtering {
			break
		}
		return v.updateBrowsing(msg)
	}

	var cmd tea.Cmd
	v.list, cmd = v.list.Update(msg)
	return v, cmd
}

func (v *ProjectListView) updateBrowsing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := v.env.Keys
	switch {
	case key.Matches(msg, k.Quit):
		return v, tea.Quit
	case key.Matches(msg, k.Help):
		v.showHelpPopup = true
		return v, nil
	case key.Matches(msg, k.Enter):
		if item, ok := v.list.SelectedItem().(projectItem); ok {
			return v, send(SelectProjectMsg{Project: item.project})
		}
		return v, nil
	case key.Matches(msg, k.New):
		return v, v.openForm(projectCreating)
	case key.Matches(msg, k.Join):
		return v, v.openForm(projectJoining)
	case key.Matches(msg, k.Reload):
		return v, send(ReloadMsg{})
	case key.Matches(msg, k.Logout):
		return v, send(LogoutRequestedMsg{})
	case key.Matches(msg, k.Back):
		// clears an applied filter; never leaves the screen
	}

	var cmd tea.Cmd
	v.list, cmd = v.list.Update(msg)
	return v, cmd
}

func (v *ProjectListView) openForm(mode projectMode) tea.Cmd {
	v.mode = mode
	v.err = nil
	v.titleInput.Reset()
	v.codeInput.Reset()
	v.titleInput.Blur()
	v.codeInput.Blur()
	if mode == projectCreating {
		v.titleInput.Focus()
	} else {
		v.codeInput.Focus()
	}
	return textinput.Blink
}

func (v *ProjectListView) closeForm() {
	v.mode = projectBrowsing
	v.pending = false
	v.err = nil
	v.titleInput.Reset()
	v.codeInput.Reset()
	v.titleInput.Blur()
	v.codeInput.Blur()
}

func (v *ProjectListView) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := v.env.Keys
	switch {
	case msg.Type == tea.KeyCtrlC:
		return v, tea.Quit
	case key.Matches(msg, k.Back):
		v.closeForm()
		return v, nil
	case key.Matches(msg, k.Enter), key.Matches(msg, k.Save):
		return v, v.submit()
	}

	var cmd tea.Cmd
	if v.mode == projectCreating {
		v.titleInput, cmd = v.titleInput.Update(msg)
	} else {
		v.codeInput, cmd = v.codeInput.Update(msg)
	}
	return v, cmd
}

func (v *ProjectListView) submit() tea.Cmd {
	if v.pending {
		return nil
	}
	switch v.mode {
	case projectCreating:
		req, err := state.ProjectForm{Title: v.titleInput.Value()}.Request()
		if err != nil {
			v.err = err
			return nil
		}
		v.err = nil
		v.pending = true
		return createProjectCmd(v.env, req)
	case projectJoining:
		req, err := state.JoinForm{Code: v.codeInput.Value()}.Request()
		if err != nil {
			v.err = err
			return nil
		}
		v.err = nil
		v.pending = true
		return joinProjectCmd(v.env, req)
	}
	return nil
}

// View renders the view
func (v *ProjectListView) View() string {
	if v.showHelpPopup {
		return v.renderHelpPopup()
	}
	if v.mode != projectBrowsing {
		return v.renderForm()
	}

	s := v.env.Styles
	var b strings.Builder

	b.WriteString(s.Title.Render(fmt.Sprintf("Welcome, %s!", v.env.State.Username())))
	b.WriteString("\n")
	if banner := renderNotices(v.env, state.ChannelProject); banner != "" {
		b.WriteString(banner)
		b.WriteString("\n")
	}

	switch {
	case !v.loaded:
		b.WriteString(s.Section.Render("Your Projects"))
		b.WriteString("\n")
		b.WriteString(s.TitleMuted.Render("Loading projects" + v.spinner.View()))
	case len(v.list.Items()) == 0:
		b.WriteString(s.Section.Render("Your Projects"))
		b.WriteString("\n")
		b.WriteString(s.Empty.Render("You are not a member of any projects yet."))
	default:
		b.WriteString(v.list.View())
	}
	b.WriteString("\n")

	b.WriteString(v.renderCompleted())
	b.WriteString("\n\n")
	b.WriteString(v.renderHelp())

	return styles.CenterView(b.String(), v.width, v.height)
}

func (v *ProjectListView) renderCompleted() string {
	s := v.env.Styles
	rows := []string{s.Section.Render("Completed Projects")}

	completed := v.env.State.CompletedProjects()
	if len(completed) == 0 {
		rows = append(rows, s.Empty.Render("You have no completed projects yet."))
	}
	for _, p := range completed {
		rows = append(rows, s.ListItem.Render(
			s.StatusStyle(models.StatusCompleted).Render("✓")+" "+p.Title+"  "+s.TitleMuted.Render(memberCount(p)),
		))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (v *ProjectListView) renderForm() string {
	s := v.env.Styles
	contentWidth := styles.ContentWidth(v.width)
	inputWidth := clamp(contentWidth-12, 20, 50)

	heading, input, button := "Create New Project", v.titleInput, " Create Project "
	if v.mode == projectJoining {
		heading, input, button = "Join a Project", v.codeInput, " Join Project "
	}

	rows := []string{
		s.ModalTitle.Render(heading),
		s.InputFocused.Width(inputWidth).Render(input.View()),
		"",
		s.ButtonPrimary.Render(button),
	}
	if banner := renderNotices(v.env, state.ChannelProject); banner != "" {
		rows = append(rows, "", banner)
	}
	if v.err != nil {
		rows = append(rows, "", formError(s, v.err))
	}
	rows = append(rows, "", s.TitleMuted.Render("Enter: submit • Esc: cancel"))

	return renderModal(s, v.width, v.height, lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (v *ProjectListView) renderHelp() string {
	s := v.env.Styles
	contentWidth := styles.ContentWidth(v.width)
	// at narrow widths only hint at the popup
	if contentWidth > 0 && contentWidth < 50 {
		return s.StatusBar.Render(s.HelpKey.Render("?") + " help")
	}
	return s.StatusBar.Render(v.help.View(keys.ProjectHelp{KeyMap: v.env.Keys}))
}

func (v *ProjectListView) renderHelpPopup() string {
	s := v.env.Styles
	content := lipgloss.JoinVertical(lipgloss.Left,
		s.ModalTitle.Render("Keyboard Shortcuts"),
		v.help.FullHelpView(keys.ProjectHelp{KeyMap: v.env.Keys}.FullHelp()),
		"",
		s.TitleMuted.Render("Press any key to close"),
	)
	return renderModal(s, v.width, v.height, content)
}
