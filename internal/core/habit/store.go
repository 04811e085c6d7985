package habit

import (
	"context"
	"time"
)

type Repository interface {
	Create(context context.Context, habit *Habit) error
	FindByID(context context.Context, id, userID string) (*Habit, error)
	ListByUser(context context.Context, userID string, progressDays int) ([]*Habit, error)
	ListByStreak(context context.Context, userID string, limit int) ([]*Habit, error)
	Update(context context.Context, habit *Habit) error
	Delete(context context.Context, id, userID string) error

	// Progress
	UpsertProgress(context context.Context, progress *DayProgress) error
	ListProgress(context context.Context, habitID string, from, to time.Time) ([]DayProgress, error)
	ListAllProgress(context context.Context, habitID string) ([]DayProgress, error)
	SetStreak(context context.Context, habitID string, streak int) error
}
