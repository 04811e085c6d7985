package goal

import "time"

// Status values for a goal's lifecycle.
const (
	StatusNotStarted = "NOT_STARTED"
	StatusInProgress = "IN_PROGRESS"
	StatusCompleted  = "COMPLETED"
	StatusOnHold     = "ON_HOLD"
	StatusCancelled  = "CANCELLED"
)

// Statuses enumerates every valid goal status.
var Statuses = []string{
	StatusNotStarted, StatusInProgress, StatusCompleted, StatusOnHold, StatusCancelled,
}

// Categories enumerates the valid goal categories.
var Categories = []string{
	"PERSONAL", "FINANCIAL", "HEALTH", "CAREER", "LEARNING", "OTHER",
}

// Goal is a long-term objective. Progress is tracked either numerically
// (current/target value) or via subtasks, or both.
type Goal struct {
	ID           string     `json:"id"`
	UserID       string     `json:"userId"`
	Name         string     `json:"name"`
	Description  *string    `json:"description,omitempty"`
	Category     string     `json:"category"`
	Status       string     `json:"status"`
	TargetDate   *time.Time `json:"targetDate,omitempty"`
	CurrentValue *float64   `json:"currentValue,omitempty"`
	TargetValue  *float64   `json:"targetValue,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`

	SubTasks []SubTask `json:"subTasks"`
}

// SubTask is a checklist item under a goal.
type SubTask struct {
	ID        string    `json:"id"`
	GoalID    string    `json:"goalId"`
	Name      string    `json:"name"`
	Completed bool      `json:"completed"`
	CreatedAt time.Time `json:"createdAt"`
}
