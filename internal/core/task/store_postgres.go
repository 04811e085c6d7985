// Copyright (c) 2026 Rotina. All rights reserved.
// Author: dev@rotina.app

package task

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rotina-app/rotina/internal/platform/apperr"
	"github.com/rotina-app/rotina/internal/platform/dberr"
)

const taskColumns = `id, userid, name, description, priority, category, recurrence,
	duedate, repetitionsrequired, repetitionscompleted, createdat, updatedat`

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (repository *PostgresRepository) Create(context context.Context, task *Task) error {
	const query = `
		INSERT INTO core.task (
			id, userid, name, description, priority, category, recurrence,
			duedate, repetitionsrequired, repetitionscompleted, createdat, updatedat
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	now := time.Now()
	task.CreatedAt = now
	task.UpdatedAt = now

	_, err := repository.db.Exec(context, query,
		task.ID, task.UserID, task.Name, task.Description,
		task.Priority, task.Category, task.Recurrence,
		task.DueDate, task.RepetitionsRequired, task.RepetitionsCompleted,
		task.CreatedAt, task.UpdatedAt,
	)
	if err != nil {
		return dberr.Wrap(err, "task")
	}
	return nil
}

func (repository *PostgresRepository) FindByID(context context.Context, id, userID string) (*Task, error) {
	query := `SELECT ` + taskColumns + ` FROM core.task WHERE id = $1 AND userid = $2`

	task := &Task{}
	err := repository.db.QueryRow(context, query, id, userID).Scan(
		&task.ID, &task.UserID, &task.Name, &task.Description,
		&task.Priority, &task.Category, &task.Recurrence,
		&task.DueDate, &task.RepetitionsRequired, &task.RepetitionsCompleted,
		&task.CreatedAt, &task.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Task")
		}
		return nil, dberr.Wrap(err, "task")
	}
	return task, nil
}

func (repository *PostgresRepository) ListByUser(context context.Context, userID string) ([]*Task, error) {
	query := `SELECT ` + taskColumns + ` FROM core.task WHERE userid = $1 ORDER BY createdat DESC`
	return repository.list(context, query, userID)
}

func (repository *PostgresRepository) ListByCategory(context context.Context, userID, category string) ([]*Task, error) {
	query := `SELECT ` + taskColumns + ` FROM core.task WHERE userid = $1 AND category = $2 ORDER BY createdat DESC`
	return repository.list(context, query, userID, category)
}

func (repository *PostgresRepository) ListByPriority(context context.Context, userID, priority string) ([]*Task, error) {
	query := `SELECT ` + taskColumns + ` FROM core.task WHERE userid = $1 AND priority = $2 ORDER BY createdat DESC`
	return repository.list(context, query, userID, priority)
}

func (repository *PostgresRepository) ListUpcoming(context context.Context, userID string, after time.Time, limit int) ([]*Task, error) {
	query := `SELECT ` + taskColumns + ` FROM core.task
		WHERE userid = $1 AND duedate >= $2
		ORDER BY duedate ASC LIMIT $3`
	return repository.list(context, query, userID, after, limit)
}

func (repository *PostgresRepository) Update(context context.Context, task *Task) error {
	const query = `
		UPDATE core.task
		SET name = $3, description = $4, priority = $5, category = $6,
			recurrence = $7, duedate = $8, repetitionsrequired = $9,
			repetitionscompleted = $10, updatedat = $11
		WHERE id = $1 AND userid = $2`

	task.UpdatedAt = time.Now()

	tag, err := repository.db.Exec(context, query,
		task.ID, task.UserID, task.Name, task.Description,
		task.Priority, task.Category, task.Recurrence,
		task.DueDate, task.RepetitionsRequired, task.RepetitionsCompleted,
		task.UpdatedAt,
	)
	if err != nil {
		return dberr.Wrap(err, "task")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Task")
	}
	return nil
}

func (repository *PostgresRepository) Delete(context context.Context, id, userID string) error {
	const query = `DELETE FROM core.task WHERE id = $1 AND userid = $2`

	tag, err := repository.db.Exec(context, query, id, userID)
	if err != nil {
		return dberr.Wrap(err, "task")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Task")
	}
	return nil
}

func (repository *PostgresRepository) list(context context.Context, query string, args ...any) ([]*Task, error) {
	rows, err := repository.db.Query(context, query, args...)
	if err != nil {
		return nil, dberr.Wrap(err, "task")
	}
	defer rows.Close()

	tasks := make([]*Task, 0)
	for rows.Next() {
		task := &Task{}
		if err := rows.Scan(
			&task.ID, &task.UserID, &task.Name, &task.Description,
			&task.Priority, &task.Category, &task.Recurrence,
			&task.DueDate, &task.RepetitionsRequired, &task.RepetitionsCompleted,
			&task.CreatedAt, &task.UpdatedAt,
		); err != nil {
			return nil, dberr.Wrap(err, "task")
		}
		tasks = append(tasks, task)
	}
	return tasks, rows.Err()
}
