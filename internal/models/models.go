package models

import "time"

// Status is the workflow state of a task
type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in-progress"
	StatusCompleted  Status = "completed"
)

// Statuses lists every task status in display order
var Statuses = []Status{StatusPending, StatusInProgress, StatusCompleted}

// Next returns the status after s, wrapping around
func (s Status) Next() Status {
	return cycle(Statuses, s, 1)
}

// Prev returns the status before s, wrapping around
func (s Status) Prev() Status {
	return cycle(Statuses, s, -1)
}

// Priority is the importance of a task
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Priorities lists every priority from lowest to highest
var Priorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh}

func (p Priority) Next() Priority {
	return cycle(Priorities, p, 1)
}

func (p Priority) Prev() Priority {
	return cycle(Priorities, p, -1)
}

func cycle[T comparable](values []T, cur T, step int) T {
	idx := 0
	for i, v := range values {
		if v == cur {
			idx = i
			break
		}
	}
	n := len(values)
	return values[((idx+step)%n+n)%n]
}

// Member is a user on a project's roster
type Member struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

// Project is a shared project; members are eligible assignees
type Project struct {
	ID        int64    `json:"id"`
	Title     string   `json:"title"`
	JoinCode  string   `json:"join_code"`
	Members   []Member `json:"members"`
	Completed bool     `json:"completed"`
}

// Task represents a single task inside a project
type Task struct {
	ID               int64    `json:"id"`
	Title            string   `json:"title"`
	Description      string   `json:"description"`
	DueDate          *Date    `json:"due_date"`
	Status           Status   `json:"status"`
	Priority         Priority `json:"priority"`
	Tags             []string `json:"tags"`
	CreatorID        int64    `json:"creator_id"`
	CreatorUsername  string   `json:"creator_username"`
	AssigneeID       *int64   `json:"assignee_id"`
	AssigneeUsername string   `json:"assignee_username"`
}

// Due returns the due date, if the task has one
func (t Task) Due() (time.Time, bool) {
	if t.DueDate == nil || t.DueDate.IsZero() {
		return time.Time{}, false
	}
	return t.DueDate.Time, true
}

// HasAssignee reports whether the task is assigned to someone
func (t Task) HasAssignee() bool {
	return t.AssigneeID != nil
}

// TaskSummary is the short task form listed on a profile
type TaskSummary struct {
	ID     int64  `json:"id"`
	Title  string `json:"title"`
	Status Status `json:"status"`
}

// UserProfile is another user's public profile
type UserProfile struct {
	Username      string        `json:"username"`
	Email         string        `json:"email"`
	CreatedTasks  []TaskSummary `json:"created_tasks"`
	AssignedTasks []TaskSummary `json:"assigned_tasks"`
}

type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Username string `json:"username"`
}

// AuthStatus is the session probe result
type AuthStatus struct {
	IsAuthenticated bool   `json:"is_authenticated"`
	Username        string `json:"username"`
}

type CreateProjectRequest struct {
	Title string `json:"title"`
}

type JoinProjectRequest struct {
	JoinCode string `json:"join_code"`
}

// MessageResponse is the generic {message} body the backend returns
type MessageResponse struct {
	Message string `json:"message"`
}

// TaskInput is the body of task create and update calls.
// AssigneeID is always encoded; nil is sent as an explicit null.
type TaskInput struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	DueDate     string   `json:"due_date"`
	Status      Status   `json:"status,omitempty"`
	AssigneeID  *int64   `json:"assignee_id"`
	Priority    Priority `json:"priority"`
	Tags        []string `json:"tags"`
}
