package habit

import "time"

// Day progress status values.
const (
	StatusDone    = "DONE"
	StatusSkipped = "SKIPPED"
	StatusMissed  = "MISSED"
)

// Statuses enumerates every valid progress status.
var Statuses = []string{StatusDone, StatusSkipped, StatusMissed}

// Habit is a recurring behavior the user wants to build. The streak counts
// consecutive most-recent days marked DONE.
type Habit struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	Streak      int       `json:"streak"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`

	// Progress holds recent day entries, populated on reads.
	Progress []DayProgress `json:"progress,omitempty"`
}

// DayProgress records the outcome of one habit on one calendar day.
// (habit, date) is unique.
type DayProgress struct {
	ID      string    `json:"id"`
	HabitID string    `json:"habitId"`
	Date    time.Time `json:"date"`
	Status  string    `json:"status"`
}
