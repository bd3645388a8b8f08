package state

import (
	"strconv"
	"strings"
	"time"

	"github.com/tgienger/taskflow/internal/models"
)

// SplitTags turns the comma separated tag field into a tag list. Entries are
// trimmed and empty entries dropped; order and duplicates are kept.
func SplitTags(s string) []string {
	tags := []string{}
	for _, part := range strings.Split(s, ",") {
		if tag := strings.TrimSpace(part); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

// JoinTags renders a tag list for editing. SplitTags(JoinTags(tags)) returns
// tags unchanged as long as no tag is blank or contains a comma.
func JoinTags(tags []string) string {
	return strings.Join(tags, ", ")
}

// ProjectForm collects the fields of a new project
type ProjectForm struct {
	Title string
}

// Request validates the title and builds the create request
func (f ProjectForm) Request() (models.CreateProjectRequest, error) {
	title := strings.TrimSpace(f.Title)
	if title == "" {
		return models.CreateProjectRequest{}, ErrTitleRequired
	}
	return models.CreateProjectRequest{Title: title}, nil
}

// JoinForm collects a project join code
type JoinForm struct {
	Code string
}

// Request validates the join code and builds the join request
func (f JoinForm) Request() (models.JoinProjectRequest, error) {
	code := strings.TrimSpace(f.Code)
	if code == "" {
		return models.JoinProjectRequest{}, ErrJoinCodeRequired
	}
	return models.JoinProjectRequest{JoinCode: code}, nil
}

// TaskForm holds the editable fields of a task. TaskID is zero while creating.
type TaskForm struct {
	TaskID      int64
	Title       string
	Description string
	DueDate     string // YYYY-MM-DD or empty
	Status      models.Status
	AssigneeID  string // decimal member id, empty for nobody
	Priority    models.Priority
	Tags        string // comma separated
}

// NewTaskForm returns the defaults of the create task form
func NewTaskForm() TaskForm {
	return TaskForm{
		Status:   models.StatusPending,
		Priority: models.PriorityMedium,
	}
}

// PrimeTaskForm copies a task into an edit form. The due date loses its time
// of day and the tags are joined into one editable string.
func PrimeTaskForm(t models.Task) TaskForm {
	f := TaskForm{
		TaskID:      t.ID,
		Title:       t.Title,
		Description: t.Description,
		Status:      t.Status,
		Priority:    t.Priority,
		Tags:        JoinTags(t.Tags),
	}
	if _, ok := t.Due(); ok {
		f.DueDate = t.DueDate.DateOnly()
	}
	if t.AssigneeID != nil {
		f.AssigneeID = strconv.FormatInt(*t.AssigneeID, 10)
	}
	return f
}

// Editing reports whether the form edits an existing task
func (f TaskForm) Editing() bool {
	return f.TaskID != 0
}

// Input builds the request body. The status is only sent when editing.
func (f TaskForm) Input() (models.TaskInput, error) {
	in := models.TaskInput{
		Title:       strings.TrimSpace(f.Title),
		Description: f.Description,
		DueDate:     strings.TrimSpace(f.DueDate),
		Priority:    f.Priority,
		Tags:        SplitTags(f.Tags),
	}
	if in.Title == "" {
		return models.TaskInput{}, ErrTitleRequired
	}
	if in.DueDate != "" {
		if _, err := time.Parse(models.DateLayout, in.DueDate); err != nil {
			return models.TaskInput{}, ErrInvalidDueDate
		}
	}
	if in.Priority == "" {
		in.Priority = models.PriorityMedium
	}
	if id := strings.TrimSpace(f.AssigneeID); id != "" {
		parsed, err := strconv.ParseInt(id, 10, 64)
		if err != nil || parsed <= 0 {
			return models.TaskInput{}, ErrInvalidAssignee
		}
		in.AssigneeID = &parsed
	}
	if f.Editing() {
		in.Status = f.Status
		if in.Status == "" {
			in.Status = models.StatusPending
		}
	}
	return in, nil
}
