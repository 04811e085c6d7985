// Copyright (c) 2026 Rotina. All rights reserved.
// Author: dev@rotina.app

package health

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/rotina-app/rotina/internal/platform/apperr"
	"github.com/rotina-app/rotina/pkg/uuid"
)

const overviewRecentLimit = 10

type Service struct {
	measurements MeasurementRepository
	exercises    ExerciseRepository
	dietPlans    PlanRepository
	workoutPlans PlanRepository
	logger       *slog.Logger
}

func NewService(
	measurements MeasurementRepository,
	exercises ExerciseRepository,
	dietPlans PlanRepository,
	workoutPlans PlanRepository,
	logger *slog.Logger,
) *Service {
	return &Service{
		measurements: measurements,
		exercises:    exercises,
		dietPlans:    dietPlans,
		workoutPlans: workoutPlans,
		logger:       logger,
	}
}

/*
Overview assembles the wellness dashboard: the latest readings and
sessions plus the currently active plans. A missing current plan is not
an error; the field is simply nil.
*/
func (service *Service) Overview(context context.Context, userID string) (*Overview, error) {
	measurements, err := service.measurements.ListByUser(context, userID, overviewRecentLimit)
	if err != nil {
		return nil, err
	}

	exercises, err := service.exercises.ListByUser(context, userID, overviewRecentLimit)
	if err != nil {
		return nil, err
	}

	now := time.Now()

	dietPlan, err := service.dietPlans.FindCurrent(context, userID, now)
	if err != nil && !isNotFound(err) {
		return nil, err
	}

	workoutPlan, err := service.workoutPlans.FindCurrent(context, userID, now)
	if err != nil && !isNotFound(err) {
		return nil, err
	}

	return &Overview{
		Measurements:       measurements,
		Exercises:          exercises,
		CurrentDietPlan:    dietPlan,
		CurrentWorkoutPlan: workoutPlan,
	}, nil
}

func isNotFound(err error) bool {
	var appErr *apperr.AppError
	return errors.As(err, &appErr) && appErr.Code == "NOT_FOUND"
}

// # Measurements

type MeasurementInput struct {
	Type  string
	Value string
	Unit  *string
	Date  time.Time
	Notes *string
}

func (service *Service) CreateMeasurement(context context.Context, userID string, input MeasurementInput) (*Measurement, error) {
	measurement := &Measurement{
		ID:     uuid.New(),
		UserID: userID,
		Type:   input.Type,
		Value:  input.Value,
		Unit:   input.Unit,
		Date:   input.Date,
		Notes:  input.Notes,
	}

	if err := service.measurements.Create(context, measurement); err != nil {
		return nil, err
	}
	return measurement, nil
}

func (service *Service) ListMeasurements(context context.Context, userID string) ([]*Measurement, error) {
	return service.measurements.ListByUser(context, userID, 0)
}

func (service *Service) ListMeasurementsByType(context context.Context, userID, measurementType string) ([]*Measurement, error) {
	return service.measurements.ListByType(context, userID, measurementType)
}

type MeasurementUpdate struct {
	Type  *string
	Value *string
	Unit  *string
	Date  *time.Time
	Notes *string
}

func (service *Service) UpdateMeasurement(context context.Context, id, userID string, input MeasurementUpdate) (*Measurement, error) {
	measurement, err := service.measurements.FindByID(context, id, userID)
	if err != nil {
		return nil, err
	}

	if input.Type != nil {
		measurement.Type = *input.Type
	}
	if input.Value != nil {
		measurement.Value = *input.Value
	}
	if input.Unit != nil {
		measurement.Unit = input.Unit
	}
	if input.Date != nil {
		measurement.Date = *input.Date
	}
	if input.Notes != nil {
		measurement.Notes = input.Notes
	}

	if err := service.measurements.Update(context, measurement); err != nil {
		return nil, err
	}
	return measurement, nil
}

func (service *Service) DeleteMeasurement(context context.Context, id, userID string) error {
	return service.measurements.Delete(context, id, userID)
}

// # Exercises

type ExerciseInput struct {
	Name           string
	Duration       int
	CaloriesBurned *int
	Date           time.Time
	Notes          *string
}

func (service *Service) CreateExercise(context context.Context, userID string, input ExerciseInput) (*Exercise, error) {
	exercise := &Exercise{
		ID:             uuid.New(),
		UserID:         userID,
		Name:           input.Name,
		Duration:       input.Duration,
		CaloriesBurned: input.CaloriesBurned,
		Date:           input.Date,
		Notes:          input.Notes,
	}

	if err := service.exercises.Create(context, exercise); err != nil {
		return nil, err
	}
	return exercise, nil
}

func (service *Service) ListExercises(context context.Context, userID string) ([]*Exercise, error) {
	return service.exercises.ListByUser(context, userID, 0)
}

func (service *Service) ListExercisesByDateRange(context context.Context, userID string, start, end time.Time) ([]*Exercise, error) {
	return service.exercises.ListByDateRange(context, userID, start, end)
}

type ExerciseUpdate struct {
	Name           *string
	Duration       *int
	CaloriesBurned *int
	Date           *time.Time
	Notes          *string
}

func (service *Service) UpdateExercise(context context.Context, id, userID string, input ExerciseUpdate) (*Exercise, error) {
	exercise, err := service.exercises.FindByID(context, id, userID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		exercise.Name = *input.Name
	}
	if input.Duration != nil {
		exercise.Duration = *input.Duration
	}
	if input.CaloriesBurned != nil {
		exercise.CaloriesBurned = input.CaloriesBurned
	}
	if input.Date != nil {
		exercise.Date = *input.Date
	}
	if input.Notes != nil {
		exercise.Notes = input.Notes
	}

	if err := service.exercises.Update(context, exercise); err != nil {
		return nil, err
	}
	return exercise, nil
}

func (service *Service) DeleteExercise(context context.Context, id, userID string) error {
	return service.exercises.Delete(context, id, userID)
}

// # Plans

type PlanInput struct {
	Content   string
	StartDate time.Time
	EndDate   *time.Time
	Notes     *string
}

type PlanUpdate struct {
	Content   *string
	StartDate *time.Time
	EndDate   *time.Time
	Notes     *string
}

func (service *Service) CreateDietPlan(context context.Context, userID string, input PlanInput) (*Plan, error) {
	return service.createPlan(context, service.dietPlans, userID, input)
}

func (service *Service) ListDietPlans(context context.Context, userID string) ([]*Plan, error) {
	return service.dietPlans.ListByUser(context, userID)
}

func (service *Service) CurrentDietPlan(context context.Context, userID string) (*Plan, error) {
	return service.dietPlans.FindCurrent(context, userID, time.Now())
}

func (service *Service) UpdateDietPlan(context context.Context, id, userID string, input PlanUpdate) (*Plan, error) {
	return service.updatePlan(context, service.dietPlans, id, userID, input)
}

func (service *Service) DeleteDietPlan(context context.Context, id, userID string) error {
	return service.dietPlans.Delete(context, id, userID)
}

func (service *Service) CreateWorkoutPlan(context context.Context, userID string, input PlanInput) (*Plan, error) {
	return service.createPlan(context, service.workoutPlans, userID, input)
}

func (service *Service) ListWorkoutPlans(context context.Context, userID string) ([]*Plan, error) {
	return service.workoutPlans.ListByUser(context, userID)
}

func (service *Service) CurrentWorkoutPlan(context context.Context, userID string) (*Plan, error) {
	return service.workoutPlans.FindCurrent(context, userID, time.Now())
}

func (service *Service) UpdateWorkoutPlan(context context.Context, id, userID string, input PlanUpdate) (*Plan, error) {
	return service.updatePlan(context, service.workoutPlans, id, userID, input)
}

func (service *Service) DeleteWorkoutPlan(context context.Context, id, userID string) error {
	return service.workoutPlans.Delete(context, id, userID)
}

func (service *Service) createPlan(context context.Context, repo PlanRepository, userID string, input PlanInput) (*Plan, error) {
	plan := &Plan{
		ID:        uuid.New(),
		UserID:    userID,
		Content:   input.Content,
		StartDate: input.StartDate,
		EndDate:   input.EndDate,
		Notes:     input.Notes,
	}

	if err := repo.Create(context, plan); err != nil {
		return nil, err
	}
	return plan, nil
}

func (service *Service) updatePlan(context context.Context, repo PlanRepository, id, userID string, input PlanUpdate) (*Plan, error) {
	plan, err := repo.FindByID(context, id, userID)
	if err != nil {
		return nil, err
	}

	if input.Content != nil {
		plan.Content = *input.Content
	}
	if input.StartDate != nil {
		plan.StartDate = *input.StartDate
	}
	if input.EndDate != nil {
		plan.EndDate = input.EndDate
	}
	if input.Notes != nil {
		plan.Notes = input.Notes
	}

	if err := repo.Update(context, plan); err != nil {
		return nil, err
	}
	return plan, nil
}
