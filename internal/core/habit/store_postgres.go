package habit

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rotina-app/rotina/internal/platform/apperr"
	"github.com/rotina-app/rotina/internal/platform/dberr"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (repository *PostgresRepository) Create(context context.Context, habit *Habit) error {
	const query = `
		INSERT INTO core.habit (id, userid, name, description, streak, createdat, updatedat)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	now := time.Now()
	habit.CreatedAt = now
	habit.UpdatedAt = now

	_, err := repository.db.Exec(context, query,
		habit.ID, habit.UserID, habit.Name, habit.Description, habit.Streak,
		habit.CreatedAt, habit.UpdatedAt,
	)
	if err != nil {
		return dberr.Wrap(err, "habit")
	}
	return nil
}

func (repository *PostgresRepository) FindByID(context context.Context, id, userID string) (*Habit, error) {
	const query = `
		SELECT id, userid, name, description, streak, createdat, updatedat
		FROM core.habit WHERE id = $1 AND userid = $2`

	habit := &Habit{}
	err := repository.db.QueryRow(context, query, id, userID).Scan(
		&habit.ID, &habit.UserID, &habit.Name, &habit.Description, &habit.Streak,
		&habit.CreatedAt, &habit.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Habit")
		}
		return nil, dberr.Wrap(err, "habit")
	}

	progress, err := repository.ListAllProgress(context, habit.ID)
	if err != nil {
		return nil, err
	}
	habit.Progress = progress

	return habit, nil
}

func (repository *PostgresRepository) ListByUser(context context.Context, userID string, progressDays int) ([]*Habit, error) {
	const query = `
		SELECT id, userid, name, description, streak, createdat, updatedat
		FROM core.habit WHERE userid = $1 ORDER BY createdat DESC`

	habits, err := repository.listHabits(context, query, userID)
	if err != nil {
		return nil, err
	}

	since := time.Now().AddDate(0, 0, -progressDays)
	if err := repository.attachProgress(context, habits, since); err != nil {
		return nil, err
	}
	return habits, nil
}

func (repository *PostgresRepository) ListByStreak(context context.Context, userID string, limit int) ([]*Habit, error) {
	const query = `
		SELECT id, userid, name, description, streak, createdat, updatedat
		FROM core.habit WHERE userid = $1 ORDER BY streak DESC LIMIT $2`

	habits, err := repository.listHabits(context, query, userID, limit)
	if err != nil {
		return nil, err
	}

	// Last 7 days of context for the active view.
	since := time.Now().AddDate(0, 0, -7)
	if err := repository.attachProgress(context, habits, since); err != nil {
		return nil, err
	}
	return habits, nil
}

func (repository *PostgresRepository) Update(context context.Context, habit *Habit) error {
	const query = `
		UPDATE core.habit
		SET name = $3, description = $4, streak = $5, updatedat = $6
		WHERE id = $1 AND userid = $2`

	habit.UpdatedAt = time.Now()

	tag, err := repository.db.Exec(context, query,
		habit.ID, habit.UserID, habit.Name, habit.Description, habit.Streak,
		habit.UpdatedAt,
	)
	if err != nil {
		return dberr.Wrap(err, "habit")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Habit")
	}
	return nil
}

func (repository *PostgresRepository) Delete(context context.Context, id, userID string) error {
	const query = `DELETE FROM core.habit WHERE id = $1 AND userid = $2`

	tag, err := repository.db.Exec(context, query, id, userID)
	if err != nil {
		return dberr.Wrap(err, "habit")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Habit")
	}
	return nil
}

// # Progress

func (repository *PostgresRepository) UpsertProgress(context context.Context, progress *DayProgress) error {
	const query = `
		INSERT INTO core.habitprogress (id, habitid, date, status)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (habitid, date) DO UPDATE SET status = EXCLUDED.status`

	_, err := repository.db.Exec(context, query,
		progress.ID, progress.HabitID, progress.Date, progress.Status,
	)
	if err != nil {
		return dberr.Wrap(err, "habit progress")
	}
	return nil
}

func (repository *PostgresRepository) ListProgress(context context.Context, habitID string, from, to time.Time) ([]DayProgress, error) {
	const query = `
		SELECT id, habitid, date, status FROM core.habitprogress
		WHERE habitid = $1 AND date BETWEEN $2 AND $3
		ORDER BY date ASC`
	return repository.listProgress(context, query, habitID, from, to)
}

func (repository *PostgresRepository) ListAllProgress(context context.Context, habitID string) ([]DayProgress, error) {
	const query = `
		SELECT id, habitid, date, status FROM core.habitprogress
		WHERE habitid = $1 ORDER BY date DESC`
	return repository.listProgress(context, query, habitID)
}

func (repository *PostgresRepository) SetStreak(context context.Context, habitID string, streak int) error {
	const query = `UPDATE core.habit SET streak = $2, updatedat = $3 WHERE id = $1`

	_, err := repository.db.Exec(context, query, habitID, streak, time.Now())
	if err != nil {
		return dberr.Wrap(err, "habit")
	}
	return nil
}

func (repository *PostgresRepository) listHabits(context context.Context, query string, args ...any) ([]*Habit, error) {
	rows, err := repository.db.Query(context, query, args...)
	if err != nil {
		return nil, dberr.Wrap(err, "habit")
	}
	defer rows.Close()

	habits := make([]*Habit, 0)
	for rows.Next() {
		habit := &Habit{}
		if err := rows.Scan(
			&habit.ID, &habit.UserID, &habit.Name, &habit.Description, &habit.Streak,
			&habit.CreatedAt, &habit.UpdatedAt,
		); err != nil {
			return nil, dberr.Wrap(err, "habit")
		}
		habits = append(habits, habit)
	}
	return habits, rows.Err()
}

func (repository *PostgresRepository) listProgress(context context.Context, query string, args ...any) ([]DayProgress, error) {
	rows, err := repository.db.Query(context, query, args...)
	if err != nil {
		return nil, dberr.Wrap(err, "habit progress")
	}
	defer rows.Close()

	entries := make([]DayProgress, 0)
	for rows.Next() {
		entry := DayProgress{}
		if err := rows.Scan(&entry.ID, &entry.HabitID, &entry.Date, &entry.Status); err != nil {
			return nil, dberr.Wrap(err, "habit progress")
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// attachProgress bulk-loads recent progress for the given habits in one query.
func (repository *PostgresRepository) attachProgress(context context.Context, habits []*Habit, since time.Time) error {
	if len(habits) == 0 {
		return nil
	}

	index := make(map[string]*Habit, len(habits))
	ids := make([]string, 0, len(habits))
	for _, habit := range habits {
		index[habit.ID] = habit
		ids = append(ids, habit.ID)
	}

	const query = `
		SELECT id, habitid, date, status FROM core.habitprogress
		WHERE habitid = ANY($1) AND date >= $2
		ORDER BY date DESC`

	rows, err := repository.db.Query(context, query, ids, since)
	if err != nil {
		return dberr.Wrap(err, "habit progress")
	}
	defer rows.Close()

	for rows.Next() {
		entry := DayProgress{}
		if err := rows.Scan(&entry.ID, &entry.HabitID, &entry.Date, &entry.Status); err != nil {
			return dberr.Wrap(err, "habit progress")
		}
		if habit, ok := index[entry.HabitID]; ok {
			habit.Progress = append(habit.Progress, entry)
		}
	}
	return rows.Err()
}
