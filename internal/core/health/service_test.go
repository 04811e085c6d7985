// Copyright (c) 2026 Rotina. All rights reserved.
// Author: dev@rotina.app

package health_test

import (
	"context"
	"log/slog"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rotina-app/rotina/internal/core/health"
	"github.com/rotina-app/rotina/internal/platform/apperr"
	"github.com/rotina-app/rotina/pkg/pointer"
)

// # In-Memory Fakes

type fakeMeasurementRepository struct {
	measurements map[string]*health.Measurement
}

func (r *fakeMeasurementRepository) Create(_ context.Context, m *health.Measurement) error {
	r.measurements[m.ID] = m
	return nil
}

func (r *fakeMeasurementRepository) FindByID(_ context.Context, id, userID string) (*health.Measurement, error) {
	m, ok := r.measurements[id]
	if !ok || m.UserID != userID {
		return nil, apperr.NotFound("Measurement")
	}
	return m, nil
}

func (r *fakeMeasurementRepository) ListByUser(_ context.Context, userID string, limit int) ([]*health.Measurement, error) {
	var out []*health.Measurement
	for _, m := range r.measurements {
		if m.UserID == userID {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeMeasurementRepository) ListByType(_ context.Context, userID, measurementType string) ([]*health.Measurement, error) {
	var out []*health.Measurement
	for _, m := range r.measurements {
		if m.UserID == userID && m.Type == measurementType {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *fakeMeasurementRepository) Update(_ context.Context, m *health.Measurement) error {
	r.measurements[m.ID] = m
	return nil
}

func (r *fakeMeasurementRepository) Delete(_ context.Context, id, userID string) error {
	m, ok := r.measurements[id]
	if !ok || m.UserID != userID {
		return apperr.NotFound("Measurement")
	}
	delete(r.measurements, id)
	return nil
}

type fakeExerciseRepository struct {
	exercises map[string]*health.Exercise
}

func (r *fakeExerciseRepository) Create(_ context.Context, e *health.Exercise) error {
	r.exercises[e.ID] = e
	return nil
}

func (r *fakeExerciseRepository) FindByID(_ context.Context, id, userID string) (*health.Exercise, error) {
	e, ok := r.exercises[id]
	if !ok || e.UserID != userID {
		return nil, apperr.NotFound("Exercise")
	}
	return e, nil
}

func (r *fakeExerciseRepository) ListByUser(_ context.Context, userID string, limit int) ([]*health.Exercise, error) {
	var out []*health.Exercise
	for _, e := range r.exercises {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeExerciseRepository) ListByDateRange(_ context.Context, userID string, start, end time.Time) ([]*health.Exercise, error) {
	var out []*health.Exercise
	for _, e := range r.exercises {
		if e.UserID == userID && !e.Date.Before(start) && !e.Date.After(end) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *fakeExerciseRepository) Update(_ context.Context, e *health.Exercise) error {
	r.exercises[e.ID] = e
	return nil
}

func (r *fakeExerciseRepository) Delete(_ context.Context, id, userID string) error {
	e, ok := r.exercises[id]
	if !ok || e.UserID != userID {
		return apperr.NotFound("Exercise")
	}
	delete(r.exercises, id)
	return nil
}

type fakePlanRepository struct {
	label string
	plans map[string]*health.Plan
}

func (r *fakePlanRepository) Create(_ context.Context, p *health.Plan) error {
	r.plans[p.ID] = p
	return nil
}

func (r *fakePlanRepository) FindByID(_ context.Context, id, userID string) (*health.Plan, error) {
	p, ok := r.plans[id]
	if !ok || p.UserID != userID {
		return nil, apperr.NotFound(r.label)
	}
	return p, nil
}

func (r *fakePlanRepository) ListByUser(_ context.Context, userID string) ([]*health.Plan, error) {
	var out []*health.Plan
	for _, p := range r.plans {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakePlanRepository) FindCurrent(_ context.Context, userID string, now time.Time) (*health.Plan, error) {
	var current *health.Plan
	for _, p := range r.plans {
		if p.UserID != userID || p.StartDate.After(now) {
			continue
		}
		if p.EndDate != nil && p.EndDate.Before(now) {
			continue
		}
		if current == nil || p.StartDate.After(current.StartDate) {
			current = p
		}
	}
	if current == nil {
		return nil, apperr.NotFound(r.label)
	}
	return current, nil
}

func (r *fakePlanRepository) Update(_ context.Context, p *health.Plan) error {
	r.plans[p.ID] = p
	return nil
}

func (r *fakePlanRepository) Delete(_ context.Context, id, userID string) error {
	p, ok := r.plans[id]
	if !ok || p.UserID != userID {
		return apperr.NotFound(r.label)
	}
	delete(r.plans, id)
	return nil
}

func newTestService() *health.Service {
	return health.NewService(
		&fakeMeasurementRepository{measurements: make(map[string]*health.Measurement)},
		&fakeExerciseRepository{exercises: make(map[string]*health.Exercise)},
		&fakePlanRepository{label: "Diet plan", plans: make(map[string]*health.Plan)},
		&fakePlanRepository{label: "Workout plan", plans: make(map[string]*health.Plan)},
		slog.Default(),
	)
}

// # Tests

/*
TestService_Overview verifies the dashboard assembly: recent entries capped
at ten and the currently active plans resolved by date.
*/
func TestService_Overview(t *testing.T) {
	service := newTestService()
	now := time.Now()

	for i := 0; i < 12; i++ {
		_, err := service.CreateMeasurement(context.Background(), "user-1", health.MeasurementInput{
			Type:  health.MeasurementWeight,
			Value: "80.5",
			Date:  now.AddDate(0, 0, -i),
		})
		require.NoError(t, err)
	}

	_, err := service.CreateExercise(context.Background(), "user-1", health.ExerciseInput{
		Name:     "Morning run",
		Duration: 30,
		Date:     now,
	})
	require.NoError(t, err)

	// An active diet plan and an already-ended workout plan
	_, err = service.CreateDietPlan(context.Background(), "user-1", health.PlanInput{
		Content:   "High protein",
		StartDate: now.AddDate(0, 0, -7),
	})
	require.NoError(t, err)
	_, err = service.CreateWorkoutPlan(context.Background(), "user-1", health.PlanInput{
		Content:   "5x5 program",
		StartDate: now.AddDate(0, -2, 0),
		EndDate:   pointer.To(now.AddDate(0, -1, 0)),
	})
	require.NoError(t, err)

	overview, err := service.Overview(context.Background(), "user-1")
	require.NoError(t, err)

	// 1. Recent lists are capped
	assert.Len(t, overview.Measurements, 10)
	assert.Len(t, overview.Exercises, 1)

	// 2. Only the plan active today is surfaced
	require.NotNil(t, overview.CurrentDietPlan)
	assert.Equal(t, "High protein", overview.CurrentDietPlan.Content)
	assert.Nil(t, overview.CurrentWorkoutPlan)
}

/*
TestService_Overview_Empty verifies that a brand-new account gets an empty
dashboard, not an error.
*/
func TestService_Overview_Empty(t *testing.T) {
	service := newTestService()

	overview, err := service.Overview(context.Background(), "user-1")
	require.NoError(t, err)

	assert.Empty(t, overview.Measurements)
	assert.Empty(t, overview.Exercises)
	assert.Nil(t, overview.CurrentDietPlan)
	assert.Nil(t, overview.CurrentWorkoutPlan)
}

/*
TestService_CurrentPlan_PrefersLatestStart verifies that overlapping plans
resolve to the most recently started one.
*/
func TestService_CurrentPlan_PrefersLatestStart(t *testing.T) {
	service := newTestService()
	now := time.Now()

	_, err := service.CreateDietPlan(context.Background(), "user-1", health.PlanInput{
		Content:   "Old cut",
		StartDate: now.AddDate(0, -1, 0),
	})
	require.NoError(t, err)
	_, err = service.CreateDietPlan(context.Background(), "user-1", health.PlanInput{
		Content:   "New bulk",
		StartDate: now.AddDate(0, 0, -2),
	})
	require.NoError(t, err)

	current, err := service.CurrentDietPlan(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, "New bulk", current.Content)
}

/*
TestService_Measurements verifies the free-form value storage and type
filtering.
*/
func TestService_Measurements(t *testing.T) {
	service := newTestService()
	now := time.Now()

	_, err := service.CreateMeasurement(context.Background(), "user-1", health.MeasurementInput{
		Type:  health.MeasurementBloodPressure,
		Value: "120/80",
		Date:  now,
	})
	require.NoError(t, err)
	_, err = service.CreateMeasurement(context.Background(), "user-1", health.MeasurementInput{
		Type:  health.MeasurementWeight,
		Value: "80.5",
		Unit:  pointer.To("kg"),
		Date:  now,
	})
	require.NoError(t, err)

	byType, err := service.ListMeasurementsByType(context.Background(), "user-1", health.MeasurementBloodPressure)
	require.NoError(t, err)
	require.Len(t, byType, 1)
	assert.Equal(t, "120/80", byType[0].Value)
}
