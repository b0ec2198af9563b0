package domain

import "time"

// TaskStatus represents the workflow state of a task.
type TaskStatus string

const (
	TaskTodo       TaskStatus = "todo"
	TaskInProgress TaskStatus = "in_progress"
	TaskInReview   TaskStatus = "in_review"
	TaskCompleted  TaskStatus = "completed"
)

// AllTaskStatuses lists every task status in workflow order.
func AllTaskStatuses() []TaskStatus {
	return []TaskStatus{TaskTodo, TaskInProgress, TaskInReview, TaskCompleted}
}

// Valid reports whether s is a known task status.
func (s TaskStatus) Valid() bool {
	switch s {
	case TaskTodo, TaskInProgress, TaskInReview, TaskCompleted:
		return true
	}
	return false
}

// TaskPriority ranks tasks for the team.
type TaskPriority string

const (
	PriorityLow    TaskPriority = "low"
	PriorityMedium TaskPriority = "medium"
	PriorityHigh   TaskPriority = "high"
	PriorityUrgent TaskPriority = "urgent"
)

// AllTaskPriorities lists every priority from lowest to highest.
func AllTaskPriorities() []TaskPriority {
	return []TaskPriority{PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent}
}

// Valid reports whether p is a known priority.
func (p TaskPriority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

// Task is a unit of work inside a campaign.
type Task struct {
	ID             string       `json:"id"`
	Title          string       `json:"title"`
	Description    *string      `json:"description"`
	CampaignID     string       `json:"campaign_id"`
	AssigneeID     *string      `json:"assignee_id"`
	Status         TaskStatus   `json:"status"`
	Priority       TaskPriority `json:"priority"`
	DueDate        *time.Time   `json:"due_date"`
	EstimatedHours *float64     `json:"estimated_hours"`
	ActualHours    *float64     `json:"actual_hours"`
	Dependencies   []string     `json:"dependencies"`
	CreatedBy      string       `json:"created_by"`
	CreatedAt      time.Time    `json:"created_at"`
	UpdatedAt      time.Time    `json:"updated_at"`

	UnparsedTimestamps map[string]string `json:"unparsed_timestamps,omitempty"`
}

// TaskPatch carries a partial task update. Only non-nil fields are applied.
type TaskPatch struct {
	Title          *string
	Description    *string
	AssigneeID     *string
	Status         *TaskStatus
	Priority       *TaskPriority
	DueDate        *time.Time
	EstimatedHours *float64
	ActualHours    *float64
}
