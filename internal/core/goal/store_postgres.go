package goal

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rotina-app/rotina/internal/platform/apperr"
	"github.com/rotina-app/rotina/internal/platform/dberr"
)

const goalColumns = `id, userid, name, description, category, status,
	targetdate, currentvalue, targetvalue, createdat, updatedat`

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (repository *PostgresRepository) Create(context context.Context, goal *Goal) error {
	const query = `
		INSERT INTO core.goal (
			id, userid, name, description, category, status,
			targetdate, currentvalue, targetvalue, createdat, updatedat
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	now := time.Now()
	goal.CreatedAt = now
	goal.UpdatedAt = now

	transaction, err := repository.db.Begin(context)
	if err != nil {
		return dberr.Wrap(err, "goal")
	}
	defer func() { _ = transaction.Rollback(context) }()

	_, err = transaction.Exec(context, query,
		goal.ID, goal.UserID, goal.Name, goal.Description, goal.Category, goal.Status,
		goal.TargetDate, goal.CurrentValue, goal.TargetValue,
		goal.CreatedAt, goal.UpdatedAt,
	)
	if err != nil {
		return dberr.Wrap(err, "goal")
	}

	for i := range goal.SubTasks {
		subTask := &goal.SubTasks[i]
		subTask.CreatedAt = now
		_, err = transaction.Exec(context,
			`INSERT INTO core.goalsubtask (id, goalid, name, completed, createdat)
			 VALUES ($1, $2, $3, $4, $5)`,
			subTask.ID, subTask.GoalID, subTask.Name, subTask.Completed, subTask.CreatedAt,
		)
		if err != nil {
			return dberr.Wrap(err, "goal subtask")
		}
	}

	if err := transaction.Commit(context); err != nil {
		return dberr.Wrap(err, "goal")
	}
	return nil
}

func (repository *PostgresRepository) FindByID(context context.Context, id, userID string) (*Goal, error) {
	query := `SELECT ` + goalColumns + ` FROM core.goal WHERE id = $1 AND userid = $2`

	goal := &Goal{}
	err := repository.db.QueryRow(context, query, id, userID).Scan(
		&goal.ID, &goal.UserID, &goal.Name, &goal.Description, &goal.Category, &goal.Status,
		&goal.TargetDate, &goal.CurrentValue, &goal.TargetValue,
		&goal.CreatedAt, &goal.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Goal")
		}
		return nil, dberr.Wrap(err, "goal")
	}

	if err := repository.attachSubTasks(context, []*Goal{goal}); err != nil {
		return nil, err
	}
	return goal, nil
}

func (repository *PostgresRepository) ListByUser(context context.Context, userID string) ([]*Goal, error) {
	query := `SELECT ` + goalColumns + ` FROM core.goal WHERE userid = $1 ORDER BY createdat DESC`
	return repository.list(context, query, userID)
}

func (repository *PostgresRepository) ListByCategory(context context.Context, userID, category string) ([]*Goal, error) {
	query := `SELECT ` + goalColumns + ` FROM core.goal WHERE userid = $1 AND category = $2 ORDER BY createdat DESC`
	return repository.list(context, query, userID, category)
}

func (repository *PostgresRepository) ListByStatus(context context.Context, userID, status string) ([]*Goal, error) {
	query := `SELECT ` + goalColumns + ` FROM core.goal WHERE userid = $1 AND status = $2 ORDER BY createdat DESC`
	return repository.list(context, query, userID, status)
}

func (repository *PostgresRepository) ListInProgress(context context.Context, userID string, limit int) ([]*Goal, error) {
	query := `SELECT ` + goalColumns + ` FROM core.goal
		WHERE userid = $1 AND status = 'IN_PROGRESS'
		ORDER BY updatedat DESC LIMIT $2`
	return repository.list(context, query, userID, limit)
}

func (repository *PostgresRepository) Update(context context.Context, goal *Goal) error {
	const query = `
		UPDATE core.goal
		SET name = $3, description = $4, category = $5, status = $6,
			targetdate = $7, currentvalue = $8, targetvalue = $9, updatedat = $10
		WHERE id = $1 AND userid = $2`

	goal.UpdatedAt = time.Now()

	tag, err := repository.db.Exec(context, query,
		goal.ID, goal.UserID, goal.Name, goal.Description, goal.Category, goal.Status,
		goal.TargetDate, goal.CurrentValue, goal.TargetValue, goal.UpdatedAt,
	)
	if err != nil {
		return dberr.Wrap(err, "goal")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Goal")
	}
	return nil
}

func (repository *PostgresRepository) Delete(context context.Context, id, userID string) error {
	// Subtasks are removed by ON DELETE CASCADE.
	const query = `DELETE FROM core.goal WHERE id = $1 AND userid = $2`

	tag, err := repository.db.Exec(context, query, id, userID)
	if err != nil {
		return dberr.Wrap(err, "goal")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Goal")
	}
	return nil
}

// # Subtasks

func (repository *PostgresRepository) CreateSubTask(context context.Context, subTask *SubTask) error {
	const query = `
		INSERT INTO core.goalsubtask (id, goalid, name, completed, createdat)
		VALUES ($1, $2, $3, $4, $5)`

	subTask.CreatedAt = time.Now()

	_, err := repository.db.Exec(context, query,
		subTask.ID, subTask.GoalID, subTask.Name, subTask.Completed, subTask.CreatedAt,
	)
	if err != nil {
		return dberr.Wrap(err, "goal subtask")
	}
	return nil
}

func (repository *PostgresRepository) FindSubTask(context context.Context, subTaskID string) (*SubTask, string, error) {
	const query = `
		SELECT s.id, s.goalid, s.name, s.completed, s.createdat, g.userid
		FROM core.goalsubtask s
		JOIN core.goal g ON s.goalid = g.id
		WHERE s.id = $1`

	subTask := &SubTask{}
	var ownerID string
	err := repository.db.QueryRow(context, query, subTaskID).Scan(
		&subTask.ID, &subTask.GoalID, &subTask.Name, &subTask.Completed, &subTask.CreatedAt,
		&ownerID,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, "", apperr.NotFound("Subtask")
		}
		return nil, "", dberr.Wrap(err, "goal subtask")
	}
	return subTask, ownerID, nil
}

func (repository *PostgresRepository) UpdateSubTask(context context.Context, subTask *SubTask) error {
	const query = `UPDATE core.goalsubtask SET name = $2, completed = $3 WHERE id = $1`

	tag, err := repository.db.Exec(context, query, subTask.ID, subTask.Name, subTask.Completed)
	if err != nil {
		return dberr.Wrap(err, "goal subtask")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Subtask")
	}
	return nil
}

func (repository *PostgresRepository) DeleteSubTask(context context.Context, subTaskID string) error {
	const query = `DELETE FROM core.goalsubtask WHERE id = $1`

	tag, err := repository.db.Exec(context, query, subTaskID)
	if err != nil {
		return dberr.Wrap(err, "goal subtask")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Subtask")
	}
	return nil
}

func (repository *PostgresRepository) list(context context.Context, query string, args ...any) ([]*Goal, error) {
	rows, err := repository.db.Query(context, query, args...)
	if err != nil {
		return nil, dberr.Wrap(err, "goal")
	}
	defer rows.Close()

	goals := make([]*Goal, 0)
	for rows.Next() {
		goal := &Goal{}
		if err := rows.Scan(
			&goal.ID, &goal.UserID, &goal.Name, &goal.Description, &goal.Category, &goal.Status,
			&goal.TargetDate, &goal.CurrentValue, &goal.TargetValue,
			&goal.CreatedAt, &goal.UpdatedAt,
		); err != nil {
			return nil, dberr.Wrap(err, "goal")
		}
		goals = append(goals, goal)
	}
	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "goal")
	}

	if err := repository.attachSubTasks(context, goals); err != nil {
		return nil, err
	}
	return goals, nil
}

// attachSubTasks bulk-loads subtasks for the given goals in one query.
func (repository *PostgresRepository) attachSubTasks(context context.Context, goals []*Goal) error {
	if len(goals) == 0 {
		return nil
	}

	index := make(map[string]*Goal, len(goals))
	ids := make([]string, 0, len(goals))
	for _, goal := range goals {
		goal.SubTasks = make([]SubTask, 0)
		index[goal.ID] = goal
		ids = append(ids, goal.ID)
	}

	const query = `
		SELECT id, goalid, name, completed, createdat
		FROM core.goalsubtask
		WHERE goalid = ANY($1)
		ORDER BY createdat ASC`

	rows, err := repository.db.Query(context, query, ids)
	if err != nil {
		return dberr.Wrap(err, "goal subtask")
	}
	defer rows.Close()

	for rows.Next() {
		subTask := SubTask{}
		if err := rows.Scan(&subTask.ID, &subTask.GoalID, &subTask.Name, &subTask.Completed, &subTask.CreatedAt); err != nil {
			return dberr.Wrap(err, "goal subtask")
		}
		if goal, ok := index[subTask.GoalID]; ok {
			goal.SubTasks = append(goal.SubTasks, subTask)
		}
	}
	return rows.Err()
}
