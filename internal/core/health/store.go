// Copyright (c) 2026 Rotina. All rights reserved.
// Author: dev@rotina.app

package health

import (
	"context"
	"time"
)

// MeasurementRepository persists body metric readings, scoped to the owner.
type MeasurementRepository interface {
	Create(context context.Context, measurement *Measurement) error
	FindByID(context context.Context, id, userID string) (*Measurement, error)
	ListByUser(context context.Context, userID string, limit int) ([]*Measurement, error)
	ListByType(context context.Context, userID, measurementType string) ([]*Measurement, error)
	Update(context context.Context, measurement *Measurement) error
	Delete(context context.Context, id, userID string) error
}

// ExerciseRepository persists workout sessions, scoped to the owner.
type ExerciseRepository interface {
	Create(context context.Context, exercise *Exercise) error
	FindByID(context context.Context, id, userID string) (*Exercise, error)
	ListByUser(context context.Context, userID string, limit int) ([]*Exercise, error)
	ListByDateRange(context context.Context, userID string, start, end time.Time) ([]*Exercise, error)
	Update(context context.Context, exercise *Exercise) error
	Delete(context context.Context, id, userID string) error
}

/*
PlanRepository persists diet and workout plans. Both plan kinds share one
shape, so a single implementation parameterized by table backs each.
*/
type PlanRepository interface {
	Create(context context.Context, plan *Plan) error
	FindByID(context context.Context, id, userID string) (*Plan, error)
	ListByUser(context context.Context, userID string) ([]*Plan, error)
	FindCurrent(context context.Context, userID string, now time.Time) (*Plan, error)
	Update(context context.Context, plan *Plan) error
	Delete(context context.Context, id, userID string) error
}
