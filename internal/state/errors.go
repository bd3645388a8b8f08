package state

import "errors"

var (
	ErrInvalidTransition = errors.New("invalid view transition")
	ErrTitleRequired     = errors.New("title is required")
	ErrJoinCodeRequired  = errors.New("join code is required")
	ErrInvalidDueDate    = errors.New("due date must be YYYY-MM-DD")
	ErrInvalidAssignee   = errors.New("invalid assignee")
	ErrInvalidFilter     = errors.New("invalid task filter")
	ErrInvalidSortOrder  = errors.New("invalid sort order")
)
