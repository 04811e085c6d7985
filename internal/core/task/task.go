// Copyright (c) 2026 Rotina. All rights reserved.
// Author: dev@rotina.app

// Package task implements the task management domain: one-off and recurring
// to-dos organized by Eisenhower priority and life category.
package task

import "time"

// Priority follows the Eisenhower matrix quadrants.
const (
	PriorityUrgentImportant       = "URGENT_IMPORTANT"
	PriorityImportantNotUrgent    = "IMPORTANT_NOT_URGENT"
	PriorityUrgentNotImportant    = "URGENT_NOT_IMPORTANT"
	PriorityNotUrgentNotImportant = "NOT_URGENT_NOT_IMPORTANT"
)

// Priorities enumerates every valid priority value.
var Priorities = []string{
	PriorityUrgentImportant,
	PriorityImportantNotUrgent,
	PriorityUrgentNotImportant,
	PriorityNotUrgentNotImportant,
}

// Categories enumerates the valid life-area categories.
var Categories = []string{
	"FINANCIAL", "HEALTH", "PERSONAL", "WORK", "LEARNING", "HOME", "OTHER",
}

// Recurrences enumerates the valid repetition schedules.
var Recurrences = []string{"NONE", "DAILY", "WEEKLY", "MONTHLY", "YEARLY"}

// Task is a unit of planned work. Completion is tracked as a counter so a
// recurring task can require several repetitions before it is done.
type Task struct {
	ID                   string     `json:"id"`
	UserID               string     `json:"userId"`
	Name                 string     `json:"name"`
	Description          *string    `json:"description,omitempty"`
	Priority             string     `json:"priority"`
	Category             string     `json:"category"`
	Recurrence           string     `json:"recurrence"`
	DueDate              *time.Time `json:"dueDate,omitempty"`
	RepetitionsRequired  int        `json:"repetitionsRequired"`
	RepetitionsCompleted int        `json:"repetitionsCompleted"`
	CreatedAt            time.Time  `json:"createdAt"`
	UpdatedAt            time.Time  `json:"updatedAt"`
}

// Completed reports whether the task has met its repetition target.
func (task *Task) Completed() bool {
	return task.RepetitionsCompleted >= task.RepetitionsRequired
}
