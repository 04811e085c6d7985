package habit

import (
	"context"
	"log/slog"
	"time"

	"github.com/rotina-app/rotina/pkg/uuid"
)

const (
	defaultActiveLimit  = 10
	recentProgressDays  = 30
	activeProgressWeeks = 1
)

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

type CreateInput struct {
	Name        string
	Description *string
}

func (service *Service) Create(context context.Context, userID string, input CreateInput) (*Habit, error) {
	habit := &Habit{
		ID:          uuid.New(),
		UserID:      userID,
		Name:        input.Name,
		Description: input.Description,
	}

	if err := service.repo.Create(context, habit); err != nil {
		return nil, err
	}
	return habit, nil
}

// List returns all habits with their last 30 days of progress.
func (service *Service) List(context context.Context, userID string) ([]*Habit, error) {
	return service.repo.ListByUser(context, userID, recentProgressDays)
}

// ListActive returns the user's strongest habits, highest streak first.
func (service *Service) ListActive(context context.Context, userID string, limit int) ([]*Habit, error) {
	if limit < 1 {
		limit = defaultActiveLimit
	}
	return service.repo.ListByStreak(context, userID, limit)
}

func (service *Service) Get(context context.Context, id, userID string) (*Habit, error) {
	return service.repo.FindByID(context, id, userID)
}

type UpdateInput struct {
	Name        *string
	Description *string
	Streak      *int
}

func (service *Service) Update(context context.Context, id, userID string, input UpdateInput) (*Habit, error) {
	habit, err := service.repo.FindByID(context, id, userID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		habit.Name = *input.Name
	}
	if input.Description != nil {
		habit.Description = input.Description
	}
	if input.Streak != nil {
		habit.Streak = *input.Streak
	}

	if err := service.repo.Update(context, habit); err != nil {
		return nil, err
	}
	return habit, nil
}

func (service *Service) Delete(context context.Context, id, userID string) error {
	return service.repo.Delete(context, id, userID)
}

// # Progress Tracking

// RecordProgress upserts the outcome for one habit-day and recomputes the
// streak. The habit must belong to the calling user.
func (service *Service) RecordProgress(context context.Context, userID, habitID string, date time.Time, status string) (*DayProgress, error) {
	if _, err := service.repo.FindByID(context, habitID, userID); err != nil {
		return nil, err
	}

	progress := &DayProgress{
		ID:      uuid.New(),
		HabitID: habitID,
		Date:    truncateToDay(date),
		Status:  status,
	}

	if err := service.repo.UpsertProgress(context, progress); err != nil {
		return nil, err
	}

	if err := service.recalculateStreak(context, habitID); err != nil {
		service.logger.Warn("habit_streak_recalc_failed",
			slog.String("habit_id", habitID),
			slog.Any("error", err),
		)
	}

	return progress, nil
}

// ProgressRange returns day entries between from and to, oldest first.
func (service *Service) ProgressRange(context context.Context, userID, habitID string, from, to time.Time) ([]DayProgress, error) {
	if _, err := service.repo.FindByID(context, habitID, userID); err != nil {
		return nil, err
	}
	return service.repo.ListProgress(context, habitID, truncateToDay(from), truncateToDay(to))
}

// recalculateStreak counts consecutive DONE entries from the most recent day
// backwards and persists the result.
func (service *Service) recalculateStreak(context context.Context, habitID string) error {
	entries, err := service.repo.ListAllProgress(context, habitID)
	if err != nil {
		return err
	}

	streak := 0
	for _, entry := range entries {
		if entry.Status != StatusDone {
			break
		}
		streak++
	}

	return service.repo.SetStreak(context, habitID, streak)
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
