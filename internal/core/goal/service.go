package goal

import (
	"context"
	"log/slog"
	"time"

	"github.com/rotina-app/rotina/internal/platform/apperr"
	"github.com/rotina-app/rotina/pkg/uuid"
)

const defaultInProgressLimit = 10

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
	Name         string
	Description  *string
	Category     string
	TargetDate   *time.Time
	CurrentValue *float64
	TargetValue  *float64
	SubTasks     []string
}

func (service *Service) Create(context context.Context, userID string, input CreateInput) (*Goal, error) {
	goal := &Goal{
		ID:           uuid.New(),
		UserID:       userID,
		Name:         input.Name,
		Description:  input.Description,
		Category:     input.Category,
		Status:       StatusNotStarted,
		TargetDate:   input.TargetDate,
		CurrentValue: input.CurrentValue,
		TargetValue:  input.TargetValue,
		SubTasks:     make([]SubTask, 0, len(input.SubTasks)),
	}

	for _, name := range input.SubTasks {
		goal.SubTasks = append(goal.SubTasks, SubTask{
			ID:     uuid.New(),
			GoalID: goal.ID,
			Name:   name,
		})
	}

	if err := service.repo.Create(context, goal); err != nil {
		return nil, err
	}
	return goal, nil
}

func (service *Service) List(context context.Context, userID string) ([]*Goal, error) {
	return service.repo.ListByUser(context, userID)
}

func (service *Service) Get(context context.Context, id, userID string) (*Goal, error) {
	return service.repo.FindByID(context, id, userID)
}

func (service *Service) ListByCategory(context context.Context, userID, category string) ([]*Goal, error) {
	return service.repo.ListByCategory(context, userID, category)
}

func (service *Service) ListByStatus(context context.Context, userID, status string) ([]*Goal, error) {
	return service.repo.ListByStatus(context, userID, status)
}

func (service *Service) ListInProgress(context context.Context, userID string, limit int) ([]*Goal, error) {
	if limit < 1 {
		limit = defaultInProgressLimit
	}
	return service.repo.ListInProgress(context, userID, limit)
}

type UpdateInput struct {
	Name         *string
	Description  *string
	Category     *string
	Status       *string
	TargetDate   *time.Time
	CurrentValue *float64
	TargetValue  *float64
}

func (service *Service) Update(context context.Context, id, userID string, input UpdateInput) (*Goal, error) {
	goal, err := service.repo.FindByID(context, id, userID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		goal.Name = *input.Name
	}
	if input.Description != nil {
		goal.Description = input.Description
	}
	if input.Category != nil {
		goal.Category = *input.Category
	}
	if input.Status != nil {
		goal.Status = *input.Status
	}
	if input.TargetDate != nil {
		goal.TargetDate = input.TargetDate
	}
	if input.CurrentValue != nil {
		goal.CurrentValue = input.CurrentValue
	}
	if input.TargetValue != nil {
		goal.TargetValue = input.TargetValue
	}

	if err := service.repo.Update(context, goal); err != nil {
		return nil, err
	}
	return goal, nil
}

// UpdateProgress sets the goal's current value and moves it to IN_PROGRESS.
// When the target value is reached the goal auto-completes.
func (service *Service) UpdateProgress(context context.Context, id, userID string, currentValue float64) (*Goal, error) {
	goal, err := service.repo.FindByID(context, id, userID)
	if err != nil {
		return nil, err
	}

	goal.CurrentValue = &currentValue
	goal.Status = StatusInProgress

	if goal.TargetValue != nil && currentValue >= *goal.TargetValue {
		goal.Status = StatusCompleted
	}

	if err := service.repo.Update(context, goal); err != nil {
		return nil, err
	}
	return goal, nil
}

func (service *Service) Delete(context context.Context, id, userID string) error {
	return service.repo.Delete(context, id, userID)
}

// # Subtasks

func (service *Service) AddSubTask(context context.Context, goalID, userID, name string) (*SubTask, error) {
	if _, err := service.repo.FindByID(context, goalID, userID); err != nil {
		return nil, err
	}

	subTask := &SubTask{
		ID:     uuid.New(),
		GoalID: goalID,
		Name:   name,
	}

	if err := service.repo.CreateSubTask(context, subTask); err != nil {
		return nil, err
	}
	return subTask, nil
}

func (service *Service) ToggleSubTask(context context.Context, subTaskID, userID string) (*SubTask, error) {
	subTask, ownerID, err := service.repo.FindSubTask(context, subTaskID)
	if err != nil {
		return nil, err
	}
	if ownerID != userID {
		return nil, apperr.NotFound("Subtask")
	}

	subTask.Completed = !subTask.Completed

	if err := service.repo.UpdateSubTask(context, subTask); err != nil {
		return nil, err
	}
	return subTask, nil
}

func (service *Service) RemoveSubTask(context context.Context, subTaskID, userID string) error {
	_, ownerID, err := service.repo.FindSubTask(context, subTaskID)
	if err != nil {
		return err
	}
	if ownerID != userID {
		return apperr.NotFound("Subtask")
	}

	return service.repo.DeleteSubTask(context, subTaskID)
}
