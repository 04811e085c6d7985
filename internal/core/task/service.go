// Copyright (c) 2026 Rotina. All rights reserved.
// Author: dev@rotina.app

package task

import (
	"context"
	"log/slog"
	"time"

	"github.com/rotina-app/rotina/pkg/uuid"
)

const defaultUpcomingLimit = 10

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

// CreateInput carries the fields accepted at task creation.
type CreateInput struct {
	Name                string
	Description         *string
	Priority            string
	Category            string
	Recurrence          string
	DueDate             *time.Time
	RepetitionsRequired int
}

func (service *Service) Create(context context.Context, userID string, input CreateInput) (*Task, error) {
	if input.Recurrence == "" {
		input.Recurrence = "NONE"
	}
	if input.RepetitionsRequired < 1 {
		input.RepetitionsRequired = 1
	}

	task := &Task{
		ID:                  uuid.New(),
		UserID:              userID,
		Name:                input.Name,
		Description:         input.Description,
		Priority:            input.Priority,
		Category:            input.Category,
		Recurrence:          input.Recurrence,
		DueDate:             input.DueDate,
		RepetitionsRequired: input.RepetitionsRequired,
	}

	if err := service.repo.Create(context, task); err != nil {
		return nil, err
	}

	return task, nil
}

func (service *Service) List(context context.Context, userID string) ([]*Task, error) {
	return service.repo.ListByUser(context, userID)
}

func (service *Service) Get(context context.Context, id, userID string) (*Task, error) {
	return service.repo.FindByID(context, id, userID)
}

func (service *Service) ListByCategory(context context.Context, userID, category string) ([]*Task, error) {
	return service.repo.ListByCategory(context, userID, category)
}

func (service *Service) ListByPriority(context context.Context, userID, priority string) ([]*Task, error) {
	return service.repo.ListByPriority(context, userID, priority)
}

// ListUpcoming returns tasks due from now on, soonest first.
func (service *Service) ListUpcoming(context context.Context, userID string, limit int) ([]*Task, error) {
	if limit < 1 {
		limit = defaultUpcomingLimit
	}
	return service.repo.ListUpcoming(context, userID, time.Now(), limit)
}

// UpdateInput carries the mutable fields. Nil means "leave as-is".
type UpdateInput struct {
	Name                 *string
	Description          *string
	Priority             *string
	Category             *string
	Recurrence           *string
	DueDate              *time.Time
	RepetitionsRequired  *int
	RepetitionsCompleted *int
}

func (service *Service) Update(context context.Context, id, userID string, input UpdateInput) (*Task, error) {
	task, err := service.repo.FindByID(context, id, userID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		task.Name = *input.Name
	}
	if input.Description != nil {
		task.Description = input.Description
	}
	if input.Priority != nil {
		task.Priority = *input.Priority
	}
	if input.Category != nil {
		task.Category = *input.Category
	}
	if input.Recurrence != nil {
		task.Recurrence = *input.Recurrence
	}
	if input.DueDate != nil {
		task.DueDate = input.DueDate
	}
	if input.RepetitionsRequired != nil {
		task.RepetitionsRequired = *input.RepetitionsRequired
	}
	if input.RepetitionsCompleted != nil {
		task.RepetitionsCompleted = *input.RepetitionsCompleted
	}

	if err := service.repo.Update(context, task); err != nil {
		return nil, err
	}

	return task, nil
}

// MarkCompleted records one more repetition of the task.
func (service *Service) MarkCompleted(context context.Context, id, userID string) (*Task, error) {
	task, err := service.repo.FindByID(context, id, userID)
	if err != nil {
		return nil, err
	}

	task.RepetitionsCompleted++

	if err := service.repo.Update(context, task); err != nil {
		return nil, err
	}

	return task, nil
}

func (service *Service) Delete(context context.Context, id, userID string) error {
	return service.repo.Delete(context, id, userID)
}
