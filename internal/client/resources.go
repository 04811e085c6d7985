package client

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

// Habit mirrors the server's habit resource.
type Habit struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	Streak      int     `json:"streak"`
}

// HabitProgress mirrors one recorded day of a habit.
type HabitProgress struct {
	ID      string    `json:"id"`
	HabitID string    `json:"habitId"`
	Date    time.Time `json:"date"`
	Status  string    `json:"status"`
}

// Goal mirrors the server's goal resource.
type Goal struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Category     string     `json:"category"`
	Status       string     `json:"status"`
	TargetDate   *time.Time `json:"targetDate,omitempty"`
	CurrentValue *float64   `json:"currentValue,omitempty"`
	TargetValue  *float64   `json:"targetValue,omitempty"`
}

// ActiveHabits returns the user's strongest active habits.
func (client *Client) ActiveHabits(ctx context.Context, limit int) ([]*Habit, error) {
	path := "/api/habits/active"
	if limit > 0 {
		path = fmt.Sprintf("%s?limit=%d", path, limit)
	}

	var habits []*Habit
	err := client.do(ctx, requestSpec{
		method: http.MethodGet,
		path:   path,
	}, &habits)
	if err != nil {
		return nil, err
	}
	return habits, nil
}

// RecordHabitProgress records today's status for a habit.
func (client *Client) RecordHabitProgress(ctx context.Context, habitID, status string) (*HabitProgress, error) {
	var progress HabitProgress
	err := client.do(ctx, requestSpec{
		method: http.MethodPost,
		path:   "/api/habits/progress",
		body: map[string]string{
			"habitId": habitID,
			"date":    time.Now().UTC().Format("2006-01-02"),
			"status":  status,
		},
	}, &progress)
	if err != nil {
		return nil, err
	}
	return &progress, nil
}

// InProgressGoals returns goals still being worked toward.
func (client *Client) InProgressGoals(ctx context.Context, limit int) ([]*Goal, error) {
	path := "/api/goals/in-progress"
	if limit > 0 {
		path = fmt.Sprintf("%s?limit=%d", path, limit)
	}

	var goals []*Goal
	err := client.do(ctx, requestSpec{
		method: http.MethodGet,
		path:   path,
	}, &goals)
	if err != nil {
		return nil, err
	}
	return goals, nil
}

// UpdateGoalProgress sets a goal's current value.
func (client *Client) UpdateGoalProgress(ctx context.Context, goalID string, currentValue float64) (*Goal, error) {
	var goal Goal
	err := client.do(ctx, requestSpec{
		method: http.MethodPatch,
		path:   "/api/goals/" + goalID + "/progress",
		body:   map[string]float64{"currentValue": currentValue},
	}, &goal)
	if err != nil {
		return nil, err
	}
	return &goal, nil
}
