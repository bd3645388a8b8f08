package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tgienger/taskflow/internal/models"
)

func TestSplitTags(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"urgent,  , work", []string{"urgent", "work"}},
		{"", []string{}},
		{" , ,", []string{}},
		{"a,a, b", []string{"a", "a", "b"}},
		{"  spaced tag  ,x", []string{"spaced tag", "x"}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, SplitTags(tt.in), tt.in)
	}
}

func TestTagsRoundTrip(t *testing.T) {
	for _, tags := range [][]string{
		{},
		{"one"},
		{"urgent", "work", "urgent"},
		{"with space", "x"},
	} {
		assert.Equal(t, tags, SplitTags(JoinTags(tags)))
	}
}

func TestPrimeTaskForm(t *testing.T) {
	assignee := int64(42)
	d, err := models.ParseDate("2024-05-06T17:30:00Z")
	require.NoError(t, err)
	task := models.Task{
		ID:               9,
		Title:            "Write docs",
		Description:      "all of them",
		DueDate:          &d,
		Status:           models.StatusInProgress,
		Priority:         models.PriorityHigh,
		Tags:             []string{"docs", "q2"},
		AssigneeID:       &assignee,
		AssigneeUsername: "zoe",
	}

	f := PrimeTaskForm(task)
	assert.True(t, f.Editing())
	assert.Equal(t, "Write docs", f.Title)
	assert.Equal(t, "all of them", f.Description)
	assert.Equal(t, "2024-05-06", f.DueDate)
	assert.Equal(t, models.StatusInProgress, f.Status)
	assert.Equal(t, models.PriorityHigh, f.Priority)
	assert.Equal(t, "42", f.AssigneeID)
	assert.Equal(t, "docs, q2", f.Tags)

	in, err := f.Input()
	require.NoError(t, err)
	assert.Equal(t, []string{"docs", "q2"}, in.Tags)
	assert.Equal(t, models.StatusInProgress, in.Status)
	require.NotNil(t, in.AssigneeID)
	assert.Equal(t, int64(42), *in.AssigneeID)
	assert.Equal(t, "2024-05-06", in.DueDate)
}

func TestPrimeTaskFormWithoutOptionalFields(t *testing.T) {
	f := PrimeTaskForm(models.Task{ID: 1, Title: "t", Status: models.StatusPending, Priority: models.PriorityLow})
	assert.Empty(t, f.DueDate)
	assert.Empty(t, f.AssigneeID)
	assert.Empty(t, f.Tags)
}

func TestNewTaskFormInput(t *testing.T) {
	f := NewTaskForm()
	f.Title = "Task"
	f.Tags = "urgent,  , work"

	in, err := f.Input()
	require.NoError(t, err)
	assert.Equal(t, []string{"urgent", "work"}, in.Tags)
	assert.Equal(t, models.PriorityMedium, in.Priority)
	assert.Nil(t, in.AssigneeID, "empty assignee is sent as null")
	assert.Empty(t, in.Status, "status is not part of task creation")
	assert.Empty(t, in.DueDate)
}

func TestTaskFormInputValidation(t *testing.T) {
	base := NewTaskForm()
	base.Title = "ok"

	noTitle := base
	noTitle.Title = "   "
	_, err := noTitle.Input()
	assert.ErrorIs(t, err, ErrTitleRequired)

	badDate := base
	badDate.DueDate = "06/05/2024"
	_, err = badDate.Input()
	assert.ErrorIs(t, err, ErrInvalidDueDate)

	badAssignee := base
	badAssignee.AssigneeID = "bob"
	_, err = badAssignee.Input()
	assert.ErrorIs(t, err, ErrInvalidAssignee)
}

func TestPrimeThenCancelLeavesTasksUntouched(t *testing.T) {
	s := signedIn(t, "alice")
	tok, err := s.SelectProject(models.Project{ID: 1, Title: "P"})
	require.NoError(t, err)
	tasks := []models.Task{{ID: 5, Title: "orig", Tags: []string{"a", "b"}}}
	require.True(t, s.ApplyProjectData(tok, tasks, nil))

	f := PrimeTaskForm(s.Tasks()[0])
	f.Title = "changed"
	f.Tags = "z"
	// cancelling drops f; nothing was written back

	got, ok := s.Task(5)
	require.True(t, ok)
	assert.Equal(t, "orig", got.Title)
	assert.Equal(t, []string{"a", "b"}, got.Tags)
}

func TestProjectAndJoinForms(t *testing.T) {
	_, err := ProjectForm{Title: " "}.Request()
	assert.ErrorIs(t, err, ErrTitleRequired)
	req, err := ProjectForm{Title: " Apollo "}.Request()
	require.NoError(t, err)
	assert.Equal(t, "Apollo", req.Title)

	_, err = JoinForm{}.Request()
	assert.ErrorIs(t, err, ErrJoinCodeRequired)
	join, err := JoinForm{Code: "AB12"}.Request()
	require.NoError(t, err)
	assert.Equal(t, "AB12", join.JoinCode)
}
