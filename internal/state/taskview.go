package state

import (
	"fmt"
	"slices"
	"strings"

	"github.com/tgienger/taskflow/internal/models"
)

// Filter selects which tasks of a project are shown
type Filter int

const (
	FilterAll Filter = iota
	FilterCreated
	FilterAssigned
)

var filterNames = map[Filter]string{
	FilterAll:      "all",
	FilterCreated:  "created",
	FilterAssigned: "assigned",
}

func (f Filter) String() string {
	if name, ok := filterNames[f]; ok {
		return name
	}
	return fmt.Sprintf("filter(%d)", int(f))
}

// Label is the human readable filter name
func (f Filter) Label() string {
	switch f {
	case FilterCreated:
		return "Created by Me"
	case FilterAssigned:
		return "Assigned to Me"
	}
	return "All"
}

// Next cycles all -> created -> assigned -> all
func (f Filter) Next() Filter {
	return (f + 1) % 3
}

// ParseFilter parses "all", "created" or "assigned"
func ParseFilter(s string) (Filter, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for f, name := range filterNames {
		if name == s {
			return f, nil
		}
	}
	return FilterAll, fmt.Errorf("%w: %q", ErrInvalidFilter, s)
}

// SortOrder orders tasks by due date
type SortOrder int

const (
	SortAscending SortOrder = iota
	SortDescending
)

func (o SortOrder) String() string {
	if o == SortDescending {
		return "desc"
	}
	return "asc"
}

// Label is the sort order as shown in the header
func (o SortOrder) Label() string {
	if o == SortDescending {
		return "Descending"
	}
	return "Ascending"
}

// Toggle flips the sort direction
func (o SortOrder) Toggle() SortOrder {
	if o == SortDescending {
		return SortAscending
	}
	return SortDescending
}

// ParseSortOrder parses "asc" or "desc"
func ParseSortOrder(s string) (SortOrder, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "asc", "ascending":
		return SortAscending, nil
	case "desc", "descending":
		return SortDescending, nil
	}
	return SortAscending, fmt.Errorf("%w: %q", ErrInvalidSortOrder, s)
}

// EffectiveDue is the sort key of a task: its due date in unix milliseconds,
// or zero when the task has no due date.
func EffectiveDue(t models.Task) int64 {
	due, ok := t.Due()
	if !ok {
		return 0
	}
	return due.UnixMilli()
}

// VisibleTasks filters tasks for username and orders them by due date. Tasks
// with equal keys keep their input order. The input slice is not modified.
func VisibleTasks(tasks []models.Task, username string, filter Filter, order SortOrder) []models.Task {
	out := make([]models.Task, 0, len(tasks))
	for _, t := range tasks {
		if keepTask(t, username, filter) {
			out = append(out, t)
		}
	}
	slices.SortStableFunc(out, func(a, b models.Task) int {
		da, db := EffectiveDue(a), EffectiveDue(b)
		if order == SortDescending {
			da, db = db, da
		}
		switch {
		case da < db:
			return -1
		case da > db:
			return 1
		}
		return 0
	})
	return out
}

func keepTask(t models.Task, username string, filter Filter) bool {
	switch filter {
	case FilterCreated:
		return t.CreatorUsername == username
	case FilterAssigned:
		return t.AssigneeUsername == username
	}
	return true
}
