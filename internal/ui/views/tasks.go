package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tgienger/taskflow/internal/models"
	"github.com/tgienger/taskflow/internal/state"
	"github.com/tgienger/taskflow/internal/ui/keys"
	"github.com/tgienger/taskflow/internal/ui/styles"
)

// TaskListView is the task manager of the open project
type TaskListView struct {
	env     *Env
	spinner spinner.Model
	help    help.Model
	detail  viewport.Model
	md      markdownRenderer

	width  int
	height int

	cursor  int
	scrollY int
	loading bool
	pending bool

	editor  *taskEditor
	editors uint64

	// read-only detail of one task
	viewingTask bool
	viewingID   int64

	confirmingDelete bool
	deleteTargetID   int64
	deleteTargetName string

	confirmingComplete bool

	showHelpPopup bool
}

// NewTaskListView creates the task manager screen
func NewTaskListView(env *Env) *TaskListView {
	s := env.Styles

	sp := spinner.New()
	sp.Spinner = spinner.Ellipsis
	sp.Style = s.TitleMuted

	h := help.New()
	h.Styles.ShortKey = s.HelpKey
	h.Styles.ShortDesc = s.HelpDesc
	h.Styles.FullKey = s.HelpKey
	h.Styles.FullDesc = s.HelpDesc

	return &TaskListView{
		env:     env,
		spinner: sp,
		help:    h,
		detail:  viewport.New(styles.MaxWidth-4, 20),
	}
}

func (v *TaskListView) Init() tea.Cmd {
	return v.Loading()
}

// Loading shows the spinner until project data arrives
func (v *TaskListView) Loading() tea.Cmd {
	v.loading = true
	return v.spinner.Tick
}

// Reset returns to the plain list; used when a project is opened
func (v *TaskListView) Reset() {
	v.cursor = 0
	v.scrollY = 0
	v.loading = false
	v.pending = false
	v.editor = nil
	v.viewingTask = false
	v.viewingID = 0
	v.confirmingDelete = false
	v.confirmingComplete = false
	v.showHelpPopup = false
}

// Editing reports whether the task dialog is open
func (v *TaskListView) Editing() bool {
	return v.editor != nil
}

// Selected returns the task under the cursor
func (v *TaskListView) Selected() (models.Task, bool) {
	tasks := v.env.State.VisibleTasks()
	if len(tasks) == 0 {
		return models.Task{}, false
	}
	return tasks[clamp(v.cursor, 0, len(tasks)-1)], true
}

func (v *TaskListView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		contentWidth := styles.ContentWidth(v.width)
		v.help.Width = contentWidth
		v.detail.Width = contentWidth - 4
		v.detail.Height = max(v.height-6, 5)
		if v.editor != nil {
			v.editor.setWidth(contentWidth)
		}
		if v.viewingTask {
			v.refreshDetail()
		}
		return v, nil

	case spinner.TickMsg:
		if !v.loading {
			return v, nil
		}
		var cmd tea.Cmd
		v.spinner, cmd = v.spinner.Update(msg)
		return v, cmd

	case ProjectDataMsg:
		v.loading = false
		v.clampCursor()
		if v.viewingTask {
			if _, ok := v.env.State.Task(v.viewingID); ok {
				v.refreshDetail()
			} else {
				v.viewingTask = false
			}
		}
		return v, nil

	case SetFilterMsg, SetSortMsg:
		v.cursor = 0
		v.scrollY = 0
		return v, nil

	case TaskSavedMsg:
		// a result from a dialog that was cancelled must not close a newer one
		if v.editor != nil && v.editor.id == msg.EditorID {
			v.editor.pending = false
			if msg.Err == nil {
				v.editor = nil
			}
		}
		return v, nil

	case TaskDeletedMsg:
		v.pending = false
		if msg.Err == nil && v.viewingTask && v.viewingID == msg.TaskID {
			v.viewingTask = false
		}
		return v, nil

	case ProjectCompletedMsg:
		v.pending = false
		return v, nil

	case tea.KeyMsg:
		if v.showHelpPopup {
			v.showHelpPopup = false
			return v, nil
		}
		if v.confirmingDelete {
			return v.updateConfirmDelete(msg)
		}
		if v.confirmingComplete {
			return v.updateConfirmComplete(msg)
		}
		if v.editor != nil {
			if msg.Type == tea.KeyCtrlC {
				return v, tea.Quit
			}
			cmd, closed := v.editor.update(msg)
			if closed {
				v.editor = nil
			}
			return v, cmd
		}
		if v.viewingTask {
			return v.updateViewingTask(msg)
		}
		return v.updateNormal(msg)
	}

	if v.editor != nil {
		// cursor blink and other input messages
		var cmd tea.Cmd
		switch v.editor.focused() {
		case taskFieldTitle:
			v.editor.title, cmd = v.editor.title.Update(msg)
		case taskFieldDescription:
			v.editor.desc, cmd = v.editor.desc.Update(msg)
		case taskFieldDue:
			v.editor.due, cmd = v.editor.due.Update(msg)
		case taskFieldTags:
			v.editor.tags, cmd = v.editor.tags.Update(msg)
		}
		return v, cmd
	}
	return v, nil
}

func (v *TaskListView) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := v.env.Keys
	tasks := v.env.State.VisibleTasks()

	switch {
	case key.Matches(msg, k.Quit):
		return v, tea.Quit

	case key.Matches(msg, k.Back):
		return v, send(BackToProjectsMsg{})

	case key.Matches(msg, k.Help):
		v.showHelpPopup = true
		return v, nil

	case key.Matches(msg, k.Up):
		if v.cursor > 0 {
			v.cursor--
			v.ensureVisible()
		}
		return v, nil

	case key.Matches(msg, k.Down):
		if v.cursor < len(tasks)-1 {
			v.cursor++
			v.ensureVisible()
		}
		return v, nil

	case key.Matches(msg, k.Enter):
		if task, ok := v.Selected(); ok {
			v.viewingTask = true
			v.viewingID = task.ID
			v.refreshDetail()
		}
		return v, nil

	case key.Matches(msg, k.New):
		return v, v.openEditor(state.NewTaskForm())

	case key.Matches(msg, k.Edit):
		if task, ok := v.Selected(); ok {
			return v, v.openEditor(state.PrimeTaskForm(task))
		}
		return v, nil

	case key.Matches(msg, k.Delete):
		if task, ok := v.Selected(); ok {
			v.askDelete(task)
		}
		return v, nil

	case key.Matches(msg, k.Filter):
		return v, send(SetFilterMsg{Filter: v.env.State.Filter().Next()})

	case key.Matches(msg, k.Sort):
		return v, send(SetSortMsg{Order: v.env.State.SortOrder().Toggle()})

	case key.Matches(msg, k.Reload):
		return v, send(ReloadMsg{})

	case key.Matches(msg, k.Creator), key.Matches(msg, k.Assignee):
		return v, v.openProfile(msg)

	case key.Matches(msg, k.CopyCode):
		if p, ok := v.env.State.CurrentProject(); ok && p.JoinCode != "" {
			return v, copyJoinCodeCmd(v.env, p.JoinCode)
		}
		return v, nil

	case key.Matches(msg, k.Complete):
		if _, ok := v.env.State.CurrentProject(); ok {
			v.confirmingComplete = true
		}
		return v, nil

	case key.Matches(msg, k.Logout):
		return v, send(LogoutRequestedMsg{})
	}

	return v, nil
}

func (v *TaskListView) updateViewingTask(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := v.env.Keys
	task, ok := v.env.State.Task(v.viewingID)
	if !ok {
		v.viewingTask = false
		return v, nil
	}

	switch {
	case key.Matches(msg, k.Back):
		v.viewingTask = false
		return v, nil
	case key.Matches(msg, k.Quit):
		return v, tea.Quit
	case key.Matches(msg, k.Edit):
		v.viewingTask = false
		return v, v.openEditor(state.PrimeTaskForm(task))
	case key.Matches(msg, k.Delete):
		v.askDelete(task)
		return v, nil
	case key.Matches(msg, k.Creator), key.Matches(msg, k.Assignee):
		return v, v.profileFor(task, msg)
	}

	var cmd tea.Cmd
	v.detail, cmd = v.detail.Update(msg)
	return v, cmd
}

func (v *TaskListView) updateConfirmDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := v.env.Keys
	switch {
	case key.Matches(msg, k.Yes):
		v.confirmingDelete = false
		v.pending = true
		return v, deleteTaskCmd(v.env, v.deleteTargetID)
	case key.Matches(msg, k.No):
		v.confirmingDelete = false
	}
	return v, nil
}

func (v *TaskListView) updateConfirmComplete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := v.env.Keys
	switch {
	case key.Matches(msg, k.Yes):
		v.confirmingComplete = false
		p, ok := v.env.State.CurrentProject()
		if !ok {
			return v, nil
		}
		v.pending = true
		return v, completeProjectCmd(v.env, p)
	case key.Matches(msg, k.No):
		v.confirmingComplete = false
	}
	return v, nil
}

func (v *TaskListView) askDelete(task models.Task) {
	v.confirmingDelete = true
	v.deleteTargetID = task.ID
	v.deleteTargetName = task.Title
}

func (v *TaskListView) openEditor(form state.TaskForm) tea.Cmd {
	p, ok := v.env.State.CurrentProject()
	if !ok {
		return nil
	}
	v.editors++
	v.editor = newTaskEditor(v.env, v.editors, p.ID, form, v.env.State.Members())
	v.editor.setWidth(styles.ContentWidth(v.width))
	return textinput.Blink
}

func (v *TaskListView) openProfile(msg tea.KeyMsg) tea.Cmd {
	task, ok := v.Selected()
	if !ok {
		return nil
	}
	return v.profileFor(task, msg)
}

// profileFor fetches the creator's profile, or the assignee's for the assignee key
func (v *TaskListView) profileFor(task models.Task, msg tea.KeyMsg) tea.Cmd {
	if key.Matches(msg, v.env.Keys.Assignee) {
		if !task.HasAssignee() {
			return nil
		}
		return fetchProfileCmd(v.env, *task.AssigneeID)
	}
	return fetchProfileCmd(v.env, task.CreatorID)
}

func (v *TaskListView) clampCursor() {
	n := len(v.env.State.VisibleTasks())
	if v.cursor >= n {
		v.cursor = max(0, n-1)
	}
	v.ensureVisible()
}

// each task row is 3 lines plus a blank line
const taskRowHeight = 4

func (v *TaskListView) visibleRows() int {
	return max((v.height-14)/taskRowHeight, 1)
}

func (v *TaskListView) ensureVisible() {
	rows := v.visibleRows()
	if v.cursor < v.scrollY {
		v.scrollY = v.cursor
	} else if v.cursor >= v.scrollY+rows {
		v.scrollY = v.cursor - rows + 1
	}
}

func (v *TaskListView) refreshDetail() {
	task, ok := v.env.State.Task(v.viewingID)
	if !ok {
		return
	}
	v.detail.SetContent(v.renderDetailBody(task))
	v.detail.GotoTop()
}

// View renders the view
func (v *TaskListView) View() string {
	s := v.env.Styles
	if v.showHelpPopup {
		return v.renderHelpPopup()
	}
	if v.confirmingDelete {
		return renderConfirm(s, v.width, v.height, "Delete Task?",
			fmt.Sprintf("Are you sure you want to delete %q?", v.deleteTargetName))
	}
	if v.confirmingComplete {
		p, _ := v.env.State.CurrentProject()
		return renderConfirm(s, v.width, v.height, "Complete Project?",
			fmt.Sprintf("Are you sure you want to mark %q as completed?", p.Title))
	}
	if v.editor != nil {
		return v.editor.view(v.width, v.height)
	}
	if v.viewingTask {
		return v.renderTaskView()
	}

	var b strings.Builder
	b.WriteString(v.renderHeader())
	b.WriteString("\n\n")
	b.WriteString(v.renderTaskList())
	b.WriteString("\n")
	b.WriteString(v.renderHelp())

	return styles.CenterView(b.String(), v.width, v.height)
}

func (v *TaskListView) renderHeader() string {
	s := v.env.Styles
	contentWidth := styles.ContentWidth(v.width)
	p, _ := v.env.State.CurrentProject()

	title := s.Title.Render(p.Title)
	user := s.TitleMuted.Render("Logged in as: " + v.env.State.Username())
	gap := max(contentWidth-lipgloss.Width(title)-lipgloss.Width(user), 2)
	top := title + strings.Repeat(" ", gap) + user

	code := s.Label.Render("Project Join Code: ") + s.Subtitle.Render(p.JoinCode)

	filter := s.Label.Render("Show: ")
	for _, f := range []state.Filter{state.FilterAll, state.FilterCreated, state.FilterAssigned} {
		if f == v.env.State.Filter() {
			filter += s.ChoiceActive.Render(f.Label())
		} else {
			filter += s.Choice.Render(f.Label())
		}
	}
	sort := s.Label.Render("Sort by Due Date: ") + s.ChoiceActive.Render(v.env.State.SortOrder().Label())

	rows := []string{top, code}
	if banner := renderNotices(v.env, state.ChannelTask, state.ChannelProject); banner != "" {
		rows = append(rows, banner)
	}
	rows = append(rows, "", filter, sort)
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (v *TaskListView) renderTaskList() string {
	s := v.env.Styles
	header := s.Section.Render("Task List")

	if v.loading && len(v.env.State.Tasks()) == 0 {
		return header + "\n" + s.TitleMuted.Render("Loading tasks"+v.spinner.View())
	}

	tasks := v.env.State.VisibleTasks()
	if len(tasks) == 0 {
		return header + "\n" + s.Empty.Render("No tasks to display for this filter.")
	}

	rows := v.visibleRows()
	end := min(v.scrollY+rows, len(tasks))
	items := []string{header}
	for i := v.scrollY; i < end; i++ {
		items = append(items, v.renderTaskItem(tasks[i], i == v.cursor))
	}
	if len(tasks) > rows {
		items = append(items, s.TitleMuted.Render(fmt.Sprintf("%d-%d of %d", v.scrollY+1, end, len(tasks))))
	}
	return lipgloss.JoinVertical(lipgloss.Left, items...)
}

func (v *TaskListView) renderTaskItem(task models.Task, selected bool) string {
	s := v.env.Styles
	width := max(styles.ContentWidth(v.width)-4, 20)

	status := s.StatusStyle(task.Status).Render("[" + string(task.Status) + "]")
	titleLine := task.Title + " " + status

	meta := []string{
		"Priority: " + s.PriorityStyle(task.Priority).Render(string(task.Priority)),
		"Due: " + v.env.FormatDate(task),
		"Created by: " + task.CreatorUsername,
	}
	if task.AssigneeUsername != "" {
		meta = append(meta, "Assigned to: "+task.AssigneeUsername)
	}
	metaLine := strings.Join(meta, " • ")

	tagsLine := s.TitleMuted.Render("no tags")
	if len(task.Tags) > 0 {
		tagsLine = "Tags: " + v.renderTags(task.Tags)
	}

	lineStyle := s.ListItem.Width(width)
	if selected {
		lineStyle = s.ListSelected.Width(width)
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		lineStyle.Render(titleLine),
		lineStyle.Render(metaLine),
		lineStyle.Render(tagsLine),
	) + "\n"
}

func (v *TaskListView) renderTags(tags []string) string {
	parts := make([]string, len(tags))
	for i, tag := range tags {
		parts[i] = v.env.Styles.Tag.Render(tag)
	}
	return strings.Join(parts, "")
}

func (v *TaskListView) renderDetailBody(task models.Task) string {
	s := v.env.Styles
	textWidth := clamp(styles.ContentWidth(v.width)-10, 20, 70)

	desc := v.md.render(task.Description, textWidth)
	if desc == "" {
		desc = s.TitleMuted.Render("No description")
	}
	assignee := task.AssigneeUsername
	if assignee == "" {
		assignee = s.TitleMuted.Render("nobody")
	}
	tags := s.TitleMuted.Render("None")
	if len(task.Tags) > 0 {
		tags = v.renderTags(task.Tags)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		s.Label.Render("Status")+"    "+s.StatusStyle(task.Status).Render(string(task.Status)),
		s.Label.Render("Priority")+"  "+s.PriorityStyle(task.Priority).Render(string(task.Priority)),
		s.Label.Render("Due")+"       "+v.env.FormatDate(task),
		s.Label.Render("Creator")+"   "+task.CreatorUsername,
		s.Label.Render("Assignee")+"  "+assignee,
		s.Label.Render("Tags")+"      "+tags,
		"",
		s.Label.Render("Description"),
		desc,
	)
}

func (v *TaskListView) renderTaskView() string {
	s := v.env.Styles
	task, ok := v.env.State.Task(v.viewingID)
	if !ok {
		return ""
	}

	helpText := s.StatusBar.Render(fmt.Sprintf("%s edit • %s delete • %s creator • %s assignee • %s back",
		s.HelpKey.Render("e"),
		s.HelpKey.Render("d"),
		s.HelpKey.Render("c"),
		s.HelpKey.Render("a"),
		s.HelpKey.Render("esc"),
	))

	rows := []string{s.Title.MarginBottom(1).Render(task.Title)}
	if banner := renderNotices(v.env, state.ChannelTask); banner != "" {
		rows = append(rows, banner)
	}
	rows = append(rows, v.detail.View(), "", helpText)

	padded := lipgloss.NewStyle().Padding(1, 2).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
	return styles.CenterView(padded, v.width, v.height)
}

func (v *TaskListView) renderHelp() string {
	s := v.env.Styles
	contentWidth := styles.ContentWidth(v.width)
	if contentWidth > 0 && contentWidth < 50 {
		return s.StatusBar.Render(s.HelpKey.Render("?") + " help")
	}
	return s.StatusBar.Render(v.help.View(keys.TaskHelp{KeyMap: v.env.Keys}))
}

func (v *TaskListView) renderHelpPopup() string {
	s := v.env.Styles
	content := lipgloss.JoinVertical(lipgloss.Left,
		s.ModalTitle.Render("Keyboard Shortcuts"),
		v.help.FullHelpView(keys.TaskHelp{KeyMap: v.env.Keys}.FullHelp()),
		"",
		s.TitleMuted.Render("Press any key to close"),
	)
	return renderModal(s, v.width, v.height, content)
}
