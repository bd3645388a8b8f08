package views

import (
	"strconv"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tgienger/taskflow/internal/models"
	"github.com/tgienger/taskflow/internal/state"
	"github.com/tgienger/taskflow/internal/ui/styles"
)

type taskField int

const (
	taskFieldTitle taskField = iota
	taskFieldDescription
	taskFieldDue
	taskFieldStatus
	taskFieldAssignee
	taskFieldPriority
	taskFieldTags
	taskFieldSave
)

// taskEditor is the add / edit task dialog. The choice fields (status,
// assignee, priority) cycle with left and right.
type taskEditor struct {
	env       *Env
	id        uint64
	projectID int64
	form      state.TaskForm
	members   []models.Member

	title textinput.Model
	desc  textarea.Model
	due   textinput.Model
	tags  textinput.Model

	focusIdx int
	pending  bool
	err      error
}

func newTaskEditor(env *Env, id uint64, projectID int64, form state.TaskForm, members []models.Member) *taskEditor {
	desc := textarea.New()
	desc.Placeholder = "Task Description"
	desc.CharLimit = 2000
	desc.SetWidth(50)
	desc.SetHeight(3)
	desc.ShowLineNumbers = false

	e := &taskEditor{
		env:       env,
		id:        id,
		projectID: projectID,
		form:      form,
		members:   members,
		title:     newInput("Task Title", 200),
		desc:      desc,
		due:       newInput("YYYY-MM-DD", 10),
		tags:      newInput("Tags (comma separated)", 300),
	}
	e.title.SetValue(form.Title)
	e.desc.SetValue(form.Description)
	e.due.SetValue(form.DueDate)
	e.tags.SetValue(form.Tags)
	e.updateFocus()
	return e
}

// fields lists the focusable fields; status only exists when editing
func (e *taskEditor) fields() []taskField {
	if e.form.Editing() {
		return []taskField{taskFieldTitle, taskFieldDescription, taskFieldDue, taskFieldStatus,
			taskFieldAssignee, taskFieldPriority, taskFieldTags, taskFieldSave}
	}
	return []taskField{taskFieldTitle, taskFieldDescription, taskFieldDue,
		taskFieldAssignee, taskFieldPriority, taskFieldTags, taskFieldSave}
}

func (e *taskEditor) focused() taskField {
	fields := e.fields()
	return fields[clamp(e.focusIdx, 0, len(fields)-1)]
}

func (e *taskEditor) setWidth(contentWidth int) {
	w := clamp(contentWidth-12, 20, 50)
	e.desc.SetWidth(w)
}

// value merges the inputs into the form
func (e *taskEditor) value() state.TaskForm {
	f := e.form
	f.Title = e.title.Value()
	f.Description = e.desc.Value()
	f.DueDate = e.due.Value()
	f.Tags = e.tags.Value()
	return f
}

// update handles a key press; closed is true when the dialog was cancelled
func (e *taskEditor) update(msg tea.KeyMsg) (cmd tea.Cmd, closed bool) {
	k := e.env.Keys
	n := len(e.fields())

	switch {
	case key.Matches(msg, k.Back):
		return nil, true

	case key.Matches(msg, k.Save):
		return e.save(), false

	case key.Matches(msg, k.Tab):
		e.focusIdx = (e.focusIdx + 1) % n
		e.updateFocus()
		return nil, false

	case key.Matches(msg, k.ShiftTab):
		e.focusIdx = (e.focusIdx + n - 1) % n
		e.updateFocus()
		return nil, false
	}

	switch e.focused() {
	case taskFieldStatus, taskFieldAssignee, taskFieldPriority:
		switch {
		case key.Matches(msg, k.Left):
			e.cycle(-1)
		case key.Matches(msg, k.Right), msg.String() == " ":
			e.cycle(1)
		case key.Matches(msg, k.Enter):
			e.focusIdx++
			e.updateFocus()
		}
		return nil, false

	case taskFieldSave:
		if key.Matches(msg, k.Enter) {
			return e.save(), false
		}
		return nil, false

	case taskFieldDescription:
		// enter inserts a newline
		e.desc, cmd = e.desc.Update(msg)
		return cmd, false
	}

	if key.Matches(msg, k.Enter) {
		e.focusIdx++
		e.updateFocus()
		return nil, false
	}

	switch e.focused() {
	case taskFieldTitle:
		e.title, cmd = e.title.Update(msg)
	case taskFieldDue:
		e.due, cmd = e.due.Update(msg)
	case taskFieldTags:
		e.tags, cmd = e.tags.Update(msg)
	}
	return cmd, false
}

func (e *taskEditor) cycle(step int) {
	switch e.focused() {
	case taskFieldStatus:
		if step > 0 {
			e.form.Status = e.form.Status.Next()
		} else {
			e.form.Status = e.form.Status.Prev()
		}
	case taskFieldPriority:
		if step > 0 {
			e.form.Priority = e.form.Priority.Next()
		} else {
			e.form.Priority = e.form.Priority.Prev()
		}
	case taskFieldAssignee:
		e.form.AssigneeID = e.nextAssignee(step)
	}
}

// nextAssignee steps through "" followed by every member id
func (e *taskEditor) nextAssignee(step int) string {
	options := make([]string, 0, len(e.members)+1)
	options = append(options, "")
	for _, m := range e.members {
		options = append(options, strconv.FormatInt(m.ID, 10))
	}

	idx := 0
	for i, id := range options {
		if id == e.form.AssigneeID {
			idx = i
			break
		}
	}
	n := len(options)
	return options[((idx+step)%n+n)%n]
}

func (e *taskEditor) assigneeLabel() string {
	if e.form.AssigneeID == "" {
		return "Assign to..."
	}
	for _, m := range e.members {
		if strconv.FormatInt(m.ID, 10) == e.form.AssigneeID {
			return m.Username
		}
	}
	return "#" + e.form.AssigneeID
}

func (e *taskEditor) updateFocus() {
	e.title.Blur()
	e.desc.Blur()
	e.due.Blur()
	e.tags.Blur()
	switch e.focused() {
	case taskFieldTitle:
		e.title.Focus()
	case taskFieldDescription:
		e.desc.Focus()
	case taskFieldDue:
		e.due.Focus()
	case taskFieldTags:
		e.tags.Focus()
	}
}

func (e *taskEditor) save() tea.Cmd {
	if e.pending {
		return nil
	}
	form := e.value()
	in, err := form.Input()
	if err != nil {
		e.err = err
		return nil
	}
	e.err = nil
	e.pending = true
	return saveTaskCmd(e.env, e.id, e.projectID, form, in)
}

func (e *taskEditor) view(width, height int) string {
	s := e.env.Styles
	contentWidth := styles.ContentWidth(width)
	inputWidth := clamp(contentWidth-12, 20, 50)

	style := func(f taskField) lipgloss.Style {
		if e.focused() == f {
			return s.InputFocused
		}
		return s.Input
	}
	choice := func(f taskField, label string) string {
		if e.focused() == f {
			return s.ChoiceActive.Render("‹ " + label + " ›")
		}
		return s.Choice.Render(label)
	}

	heading, button := "Add New Task", " Add Task "
	if e.form.Editing() {
		heading, button = "Edit Task", " Update Task "
	}
	btnStyle := s.Button
	if e.focused() == taskFieldSave {
		btnStyle = s.ButtonFocused
	}

	rows := []string{
		s.ModalTitle.Render(heading),
		s.Label.Render("Title:"),
		style(taskFieldTitle).Width(inputWidth).Render(e.title.View()),
		s.Label.Render("Description:"),
		style(taskFieldDescription).Render(e.desc.View()),
		s.Label.Render("Due date:"),
		style(taskFieldDue).Width(inputWidth).Render(e.due.View()),
	}
	if e.form.Editing() {
		rows = append(rows, s.Label.Render("Status: ")+choice(taskFieldStatus, string(e.form.Status)))
	}
	rows = append(rows,
		s.Label.Render("Assignee: ")+choice(taskFieldAssignee, e.assigneeLabel()),
		s.Label.Render("Priority: ")+choice(taskFieldPriority, string(e.form.Priority)),
		s.Label.Render("Tags:"),
		style(taskFieldTags).Width(inputWidth).Render(e.tags.View()),
		"",
		btnStyle.Render(button),
	)
	if banner := renderNotices(e.env, state.ChannelTask); banner != "" {
		rows = append(rows, "", banner)
	}
	if e.err != nil {
		rows = append(rows, "", formError(s, e.err))
	}
	rows = append(rows, "", s.TitleMuted.Render("Tab: next • ←/→: change • Ctrl+S: save • Esc: cancel"))

	return renderModal(s, width, height, lipgloss.JoinVertical(lipgloss.Left, rows...))
}
