// Copyright (c) 2026 Rotina. All rights reserved.
// Author: dev@rotina.app

package health

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rotina-app/rotina/internal/platform/apperr"
	"github.com/rotina-app/rotina/internal/platform/dberr"
)

// # Measurements

const measurementColumns = `id, userid, type, value, unit, date, notes, createdat, updatedat`

type PostgresMeasurementRepository struct {
	db *pgxpool.Pool
}

func NewPostgresMeasurementRepository(db *pgxpool.Pool) *PostgresMeasurementRepository {
	return &PostgresMeasurementRepository{db: db}
}

func (repository *PostgresMeasurementRepository) Create(context context.Context, measurement *Measurement) error {
	const query = `
		INSERT INTO core.healthmeasurement (
			id, userid, type, value, unit, date, notes, createdat, updatedat
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	now := time.Now()
	measurement.CreatedAt = now
	measurement.UpdatedAt = now

	_, err := repository.db.Exec(context, query,
		measurement.ID, measurement.UserID, measurement.Type, measurement.Value,
		measurement.Unit, measurement.Date, measurement.Notes,
		measurement.CreatedAt, measurement.UpdatedAt,
	)
	if err != nil {
		return dberr.Wrap(err, "health measurement")
	}
	return nil
}

func (repository *PostgresMeasurementRepository) FindByID(context context.Context, id, userID string) (*Measurement, error) {
	query := `SELECT ` + measurementColumns + ` FROM core.healthmeasurement WHERE id = $1 AND userid = $2`

	measurement := &Measurement{}
	err := repository.db.QueryRow(context, query, id, userID).Scan(
		&measurement.ID, &measurement.UserID, &measurement.Type, &measurement.Value,
		&measurement.Unit, &measurement.Date, &measurement.Notes,
		&measurement.CreatedAt, &measurement.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Measurement")
		}
		return nil, dberr.Wrap(err, "health measurement")
	}
	return measurement, nil
}

// ListByUser returns readings newest first. A limit of zero means all.
func (repository *PostgresMeasurementRepository) ListByUser(context context.Context, userID string, limit int) ([]*Measurement, error) {
	query := `SELECT ` + measurementColumns + ` FROM core.healthmeasurement WHERE userid = $1 ORDER BY date DESC`
	if limit > 0 {
		return repository.list(context, query+` LIMIT $2`, userID, limit)
	}
	return repository.list(context, query, userID)
}

func (repository *PostgresMeasurementRepository) ListByType(context context.Context, userID, measurementType string) ([]*Measurement, error) {
	query := `SELECT ` + measurementColumns + ` FROM core.healthmeasurement WHERE userid = $1 AND type = $2 ORDER BY date DESC`
	return repository.list(context, query, userID, measurementType)
}

func (repository *PostgresMeasurementRepository) Update(context context.Context, measurement *Measurement) error {
	const query = `
		UPDATE core.healthmeasurement
		SET type = $3, value = $4, unit = $5, date = $6, notes = $7, updatedat = $8
		WHERE id = $1 AND userid = $2`

	measurement.UpdatedAt = time.Now()

	tag, err := repository.db.Exec(context, query,
		measurement.ID, measurement.UserID, measurement.Type, measurement.Value,
		measurement.Unit, measurement.Date, measurement.Notes, measurement.UpdatedAt,
	)
	if err != nil {
		return dberr.Wrap(err, "health measurement")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Measurement")
	}
	return nil
}

func (repository *PostgresMeasurementRepository) Delete(context context.Context, id, userID string) error {
	const query = `DELETE FROM core.healthmeasurement WHERE id = $1 AND userid = $2`

	tag, err := repository.db.Exec(context, query, id, userID)
	if err != nil {
		return dberr.Wrap(err, "health measurement")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Measurement")
	}
	return nil
}

func (repository *PostgresMeasurementRepository) list(context context.Context, query string, args ...any) ([]*Measurement, error) {
	rows, err := repository.db.Query(context, query, args...)
	if err != nil {
		return nil, dberr.Wrap(err, "health measurement")
	}
	defer rows.Close()

	measurements := make([]*Measurement, 0)
	for rows.Next() {
		measurement := &Measurement{}
		err := rows.Scan(
			&measurement.ID, &measurement.UserID, &measurement.Type, &measurement.Value,
			&measurement.Unit, &measurement.Date, &measurement.Notes,
			&measurement.CreatedAt, &measurement.UpdatedAt,
		)
		if err != nil {
			return nil, dberr.Wrap(err, "health measurement")
		}
		measurements = append(measurements, measurement)
	}
	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "health measurement")
	}
	return measurements, nil
}

// # Exercises

const exerciseColumns = `id, userid, name, duration, caloriesburned, date, notes, createdat, updatedat`

type PostgresExerciseRepository struct {
	db *pgxpool.Pool
}

func NewPostgresExerciseRepository(db *pgxpool.Pool) *PostgresExerciseRepository {
	return &PostgresExerciseRepository{db: db}
}

func (repository *PostgresExerciseRepository) Create(context context.Context, exercise *Exercise) error {
	const query = `
		INSERT INTO core.exercise (
			id, userid, name, duration, caloriesburned, date, notes, createdat, updatedat
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	now := time.Now()
	exercise.CreatedAt = now
	exercise.UpdatedAt = now

	_, err := repository.db.Exec(context, query,
		exercise.ID, exercise.UserID, exercise.Name, exercise.Duration,
		exercise.CaloriesBurned, exercise.Date, exercise.Notes,
		exercise.CreatedAt, exercise.UpdatedAt,
	)
	if err != nil {
		return dberr.Wrap(err, "exercise")
	}
	return nil
}

func (repository *PostgresExerciseRepository) FindByID(context context.Context, id, userID string) (*Exercise, error) {
	query := `SELECT ` + exerciseColumns + ` FROM core.exercise WHERE id = $1 AND userid = $2`

	exercise := &Exercise{}
	err := repository.db.QueryRow(context, query, id, userID).Scan(
		&exercise.ID, &exercise.UserID, &exercise.Name, &exercise.Duration,
		&exercise.CaloriesBurned, &exercise.Date, &exercise.Notes,
		&exercise.CreatedAt, &exercise.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Exercise")
		}
		return nil, dberr.Wrap(err, "exercise")
	}
	return exercise, nil
}

// ListByUser returns sessions newest first. A limit of zero means all.
func (repository *PostgresExerciseRepository) ListByUser(context context.Context, userID string, limit int) ([]*Exercise, error) {
	query := `SELECT ` + exerciseColumns + ` FROM core.exercise WHERE userid = $1 ORDER BY date DESC`
	if limit > 0 {
		return repository.list(context, query+` LIMIT $2`, userID, limit)
	}
	return repository.list(context, query, userID)
}

func (repository *PostgresExerciseRepository) ListByDateRange(context context.Context, userID string, start, end time.Time) ([]*Exercise, error) {
	query := `SELECT ` + exerciseColumns + ` FROM core.exercise
		WHERE userid = $1 AND date >= $2 AND date <= $3
		ORDER BY date DESC`
	return repository.list(context, query, userID, start, end)
}

func (repository *PostgresExerciseRepository) Update(context context.Context, exercise *Exercise) error {
	const query = `
		UPDATE core.exercise
		SET name = $3, duration = $4, caloriesburned = $5, date = $6, notes = $7, updatedat = $8
		WHERE id = $1 AND userid = $2`

	exercise.UpdatedAt = time.Now()

	tag, err := repository.db.Exec(context, query,
		exercise.ID, exercise.UserID, exercise.Name, exercise.Duration,
		exercise.CaloriesBurned, exercise.Date, exercise.Notes, exercise.UpdatedAt,
	)
	if err != nil {
		return dberr.Wrap(err, "exercise")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Exercise")
	}
	return nil
}

func (repository *PostgresExerciseRepository) Delete(context context.Context, id, userID string) error {
	const query = `DELETE FROM core.exercise WHERE id = $1 AND userid = $2`

	tag, err := repository.db.Exec(context, query, id, userID)
	if err != nil {
		return dberr.Wrap(err, "exercise")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Exercise")
	}
	return nil
}

func (repository *PostgresExerciseRepository) list(context context.Context, query string, args ...any) ([]*Exercise, error) {
	rows, err := repository.db.Query(context, query, args...)
	if err != nil {
		return nil, dberr.Wrap(err, "exercise")
	}
	defer rows.Close()

	exercises := make([]*Exercise, 0)
	for rows.Next() {
		exercise := &Exercise{}
		err := rows.Scan(
			&exercise.ID, &exercise.UserID, &exercise.Name, &exercise.Duration,
			&exercise.CaloriesBurned, &exercise.Date, &exercise.Notes,
			&exercise.CreatedAt, &exercise.UpdatedAt,
		)
		if err != nil {
			return nil, dberr.Wrap(err, "exercise")
		}
		exercises = append(exercises, exercise)
	}
	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "exercise")
	}
	return exercises, nil
}

// # Plans

const planColumns = `id, userid, content, startdate, enddate, notes, createdat, updatedat`

/*
PostgresPlanRepository backs both diet and workout plans; the table name
selects which. Only the two known plan tables are ever passed in, so the
name is interpolated, never user input.
*/
type PostgresPlanRepository struct {
	db    *pgxpool.Pool
	table string
	label string
}

func NewPostgresDietPlanRepository(db *pgxpool.Pool) *PostgresPlanRepository {
	return &PostgresPlanRepository{db: db, table: "core.dietplan", label: "Diet plan"}
}

func NewPostgresWorkoutPlanRepository(db *pgxpool.Pool) *PostgresPlanRepository {
	return &PostgresPlanRepository{db: db, table: "core.workoutplan", label: "Workout plan"}
}

func (repository *PostgresPlanRepository) Create(context context.Context, plan *Plan) error {
	query := `
		INSERT INTO ` + repository.table + ` (
			id, userid, content, startdate, enddate, notes, createdat, updatedat
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	now := time.Now()
	plan.CreatedAt = now
	plan.UpdatedAt = now

	_, err := repository.db.Exec(context, query,
		plan.ID, plan.UserID, plan.Content, plan.StartDate, plan.EndDate,
		plan.Notes, plan.CreatedAt, plan.UpdatedAt,
	)
	if err != nil {
		return dberr.Wrap(err, "plan")
	}
	return nil
}

func (repository *PostgresPlanRepository) FindByID(context context.Context, id, userID string) (*Plan, error) {
	query := `SELECT ` + planColumns + ` FROM ` + repository.table + ` WHERE id = $1 AND userid = $2`
	return repository.find(context, query, id, userID)
}

func (repository *PostgresPlanRepository) ListByUser(context context.Context, userID string) ([]*Plan, error) {
	query := `SELECT ` + planColumns + ` FROM ` + repository.table + ` WHERE userid = $1 ORDER BY startdate DESC`

	rows, err := repository.db.Query(context, query, userID)
	if err != nil {
		return nil, dberr.Wrap(err, "plan")
	}
	defer rows.Close()

	plans := make([]*Plan, 0)
	for rows.Next() {
		plan := &Plan{}
		err := rows.Scan(
			&plan.ID, &plan.UserID, &plan.Content, &plan.StartDate, &plan.EndDate,
			&plan.Notes, &plan.CreatedAt, &plan.UpdatedAt,
		)
		if err != nil {
			return nil, dberr.Wrap(err, "plan")
		}
		plans = append(plans, plan)
	}
	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "plan")
	}
	return plans, nil
}

// FindCurrent returns the newest plan whose window contains now.
func (repository *PostgresPlanRepository) FindCurrent(context context.Context, userID string, now time.Time) (*Plan, error) {
	query := `SELECT ` + planColumns + ` FROM ` + repository.table + `
		WHERE userid = $1 AND startdate <= $2 AND (enddate IS NULL OR enddate >= $2)
		ORDER BY startdate DESC LIMIT 1`
	return repository.find(context, query, userID, now)
}

func (repository *PostgresPlanRepository) Update(context context.Context, plan *Plan) error {
	query := `
		UPDATE ` + repository.table + `
		SET content = $3, startdate = $4, enddate = $5, notes = $6, updatedat = $7
		WHERE id = $1 AND userid = $2`

	plan.UpdatedAt = time.Now()

	tag, err := repository.db.Exec(context, query,
		plan.ID, plan.UserID, plan.Content, plan.StartDate, plan.EndDate,
		plan.Notes, plan.UpdatedAt,
	)
	if err != nil {
		return dberr.Wrap(err, "plan")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound(repository.label + " not found")
	}
	return nil
}

func (repository *PostgresPlanRepository) Delete(context context.Context, id, userID string) error {
	query := `DELETE FROM ` + repository.table + ` WHERE id = $1 AND userid = $2`

	tag, err := repository.db.Exec(context, query, id, userID)
	if err != nil {
		return dberr.Wrap(err, "plan")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound(repository.label + " not found")
	}
	return nil
}

func (repository *PostgresPlanRepository) find(context context.Context, query string, args ...any) (*Plan, error) {
	plan := &Plan{}
	err := repository.db.QueryRow(context, query, args...).Scan(
		&plan.ID, &plan.UserID, &plan.Content, &plan.StartDate, &plan.EndDate,
		&plan.Notes, &plan.CreatedAt, &plan.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound(repository.label + " not found")
		}
		return nil, dberr.Wrap(err, "plan")
	}
	return plan, nil
}
