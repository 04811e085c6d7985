// Copyright (c) 2026 Rotina. All rights reserved.
// Author: dev@rotina.app

package transaction

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rotina-app/rotina/internal/platform/apperr"
	"github.com/rotina-app/rotina/internal/platform/dberr"
)

const transactionColumns = `id, userid, type, amount, date, description, category,
	isrecurring, recurrenceinterval, createdat, updatedat`

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (repository *PostgresRepository) Create(context context.Context, transaction *Transaction) error {
	const query = `
		INSERT INTO core.transaction (
			id, userid, type, amount, date, description, category,
			isrecurring, recurrenceinterval, createdat, updatedat
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	now := time.Now()
	transaction.CreatedAt = now
	transaction.UpdatedAt = now

	_, err := repository.db.Exec(context, query,
		transaction.ID, transaction.UserID, transaction.Type, transaction.Amount,
		transaction.Date, transaction.Description, transaction.Category,
		transaction.IsRecurring, transaction.RecurrenceInterval,
		transaction.CreatedAt, transaction.UpdatedAt,
	)
	if err != nil {
		return dberr.Wrap(err, "transaction")
	}
	return nil
}

func (repository *PostgresRepository) FindByID(context context.Context, id, userID string) (*Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM core.transaction WHERE id = $1 AND userid = $2`

	transaction := &Transaction{}
	err := repository.db.QueryRow(context, query, id, userID).Scan(
		&transaction.ID, &transaction.UserID, &transaction.Type, &transaction.Amount,
		&transaction.Date, &transaction.Description, &transaction.Category,
		&transaction.IsRecurring, &transaction.RecurrenceInterval,
		&transaction.CreatedAt, &transaction.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Transaction")
		}
		return nil, dberr.Wrap(err, "transaction")
	}
	return transaction, nil
}

func (repository *PostgresRepository) ListByUser(context context.Context, userID string, limit, offset int) ([]*Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM core.transaction
		WHERE userid = $1 ORDER BY date DESC LIMIT $2 OFFSET $3`
	return repository.list(context, query, userID, limit, offset)
}

func (repository *PostgresRepository) CountByUser(context context.Context, userID string) (int, error) {
	const query = `SELECT count(*) FROM core.transaction WHERE userid = $1`

	var total int
	if err := repository.db.QueryRow(context, query, userID).Scan(&total); err != nil {
		return 0, dberr.Wrap(err, "transaction")
	}
	return total, nil
}

func (repository *PostgresRepository) ListByType(context context.Context, userID, transactionType string) ([]*Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM core.transaction WHERE userid = $1 AND type = $2 ORDER BY date DESC`
	return repository.list(context, query, userID, transactionType)
}

func (repository *PostgresRepository) ListByCategory(context context.Context, userID, category string) ([]*Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM core.transaction WHERE userid = $1 AND category = $2 ORDER BY date DESC`
	return repository.list(context, query, userID, category)
}

func (repository *PostgresRepository) ListRecurring(context context.Context, userID string) ([]*Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM core.transaction WHERE userid = $1 AND isrecurring ORDER BY date DESC`
	return repository.list(context, query, userID)
}

func (repository *PostgresRepository) ListByDateRange(context context.Context, userID string, start, end time.Time) ([]*Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM core.transaction
		WHERE userid = $1 AND date >= $2 AND date <= $3
		ORDER BY date DESC`
	return repository.list(context, query, userID, start, end)
}

func (repository *PostgresRepository) ListSince(context context.Context, userID string, since time.Time) ([]*Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM core.transaction
		WHERE userid = $1 AND date >= $2
		ORDER BY date DESC`
	return repository.list(context, query, userID, since)
}

func (repository *PostgresRepository) Update(context context.Context, transaction *Transaction) error {
	const query = `
		UPDATE core.transaction
		SET type = $3, amount = $4, date = $5, description = $6, category = $7,
			isrecurring = $8, recurrenceinterval = $9, updatedat = $10
		WHERE id = $1 AND userid = $2`

	transaction.UpdatedAt = time.Now()

	tag, err := repository.db.Exec(context, query,
		transaction.ID, transaction.UserID, transaction.Type, transaction.Amount,
		transaction.Date, transaction.Description, transaction.Category,
		transaction.IsRecurring, transaction.RecurrenceInterval,
		transaction.UpdatedAt,
	)
	if err != nil {
		return dberr.Wrap(err, "transaction")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Transaction")
	}
	return nil
}

func (repository *PostgresRepository) Delete(context context.Context, id, userID string) error {
	const query = `DELETE FROM core.transaction WHERE id = $1 AND userid = $2`

	tag, err := repository.db.Exec(context, query, id, userID)
	if err != nil {
		return dberr.Wrap(err, "transaction")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Transaction")
	}
	return nil
}

func (repository *PostgresRepository) list(context context.Context, query string, args ...any) ([]*Transaction, error) {
	rows, err := repository.db.Query(context, query, args...)
	if err != nil {
		return nil, dberr.Wrap(err, "transaction")
	}
	defer rows.Close()

	transactions := make([]*Transaction, 0)
	for rows.Next() {
		transaction := &Transaction{}
		err := rows.Scan(
			&transaction.ID, &transaction.UserID, &transaction.Type, &transaction.Amount,
			&transaction.Date, &transaction.Description, &transaction.Category,
			&transaction.IsRecurring, &transaction.RecurrenceInterval,
			&transaction.CreatedAt, &transaction.UpdatedAt,
		)
		if err != nil {
			return nil, dberr.Wrap(err, "transaction")
		}
		transactions = append(transactions, transaction)
	}
	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "transaction")
	}
	return transactions, nil
}
