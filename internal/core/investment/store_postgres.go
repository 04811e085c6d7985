package investment

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rotina-app/rotina/internal/platform/apperr"
	"github.com/rotina-app/rotina/internal/platform/dberr"
)

const investmentColumns = `id, userid, name, type, quantity, purchaseprice,
	currentvalue, purchasedate, notes, createdat, updatedat`

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (repository *PostgresRepository) Create(context context.Context, investment *Investment) error {
	const query = `
		INSERT INTO core.investment (
			id, userid, name, type, quantity, purchaseprice,
			currentvalue, purchasedate, notes, createdat, updatedat
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	now := time.Now()
	investment.CreatedAt = now
	investment.UpdatedAt = now

	_, err := repository.db.Exec(context, query,
		investment.ID, investment.UserID, investment.Name, investment.Type,
		investment.Quantity, investment.PurchasePrice, investment.CurrentValue,
		investment.PurchaseDate, investment.Notes,
		investment.CreatedAt, investment.UpdatedAt,
	)
	if err != nil {
		return dberr.Wrap(err, "investment")
	}
	return nil
}

func (repository *PostgresRepository) FindByID(context context.Context, id, userID string) (*Investment, error) {
	query := `SELECT ` + investmentColumns + ` FROM core.investment WHERE id = $1 AND userid = $2`

	investment := &Investment{}
	err := repository.db.QueryRow(context, query, id, userID).Scan(
		&investment.ID, &investment.UserID, &investment.Name, &investment.Type,
		&investment.Quantity, &investment.PurchasePrice, &investment.CurrentValue,
		&investment.PurchaseDate, &investment.Notes,
		&investment.CreatedAt, &investment.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Investment")
		}
		return nil, dberr.Wrap(err, "investment")
	}
	return investment, nil
}

func (repository *PostgresRepository) ListByUser(context context.Context, userID string) ([]*Investment, error) {
	query := `SELECT ` + investmentColumns + ` FROM core.investment WHERE userid = $1 ORDER BY currentvalue DESC`
	return repository.list(context, query, userID)
}

func (repository *PostgresRepository) ListByType(context context.Context, userID, investmentType string) ([]*Investment, error) {
	query := `SELECT ` + investmentColumns + ` FROM core.investment WHERE userid = $1 AND type = $2 ORDER BY currentvalue DESC`
	return repository.list(context, query, userID, investmentType)
}

func (repository *PostgresRepository) Update(context context.Context, investment *Investment) error {
	const query = `
		UPDATE core.investment
		SET name = $3, type = $4, quantity = $5, purchaseprice = $6,
			currentvalue = $7, purchasedate = $8, notes = $9, updatedat = $10
		WHERE id = $1 AND userid = $2`

	investment.UpdatedAt = time.Now()

	tag, err := repository.db.Exec(context, query,
		investment.ID, investment.UserID, investment.Name, investment.Type,
		investment.Quantity, investment.PurchasePrice, investment.CurrentValue,
		investment.PurchaseDate, investment.Notes, investment.UpdatedAt,
	)
	if err != nil {
		return dberr.Wrap(err, "investment")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Investment")
	}
	return nil
}

func (repository *PostgresRepository) Delete(context context.Context, id, userID string) error {
	const query = `DELETE FROM core.investment WHERE id = $1 AND userid = $2`

	tag, err := repository.db.Exec(context, query, id, userID)
	if err != nil {
		return dberr.Wrap(err, "investment")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Investment")
	}
	return nil
}

func (repository *PostgresRepository) list(context context.Context, query string, args ...any) ([]*Investment, error) {
	rows, err := repository.db.Query(context, query, args...)
	if err != nil {
		return nil, dberr.Wrap(err, "investment")
	}
	defer rows.Close()

	investments := make([]*Investment, 0)
	for rows.Next() {
		investment := &Investment{}
		err := rows.Scan(
			&investment.ID, &investment.UserID, &investment.Name, &investment.Type,
			&investment.Quantity, &investment.PurchasePrice, &investment.CurrentValue,
			&investment.PurchaseDate, &investment.Notes,
			&investment.CreatedAt, &investment.UpdatedAt,
		)
		if err != nil {
			return nil, dberr.Wrap(err, "investment")
		}
		investments = append(investments, investment)
	}
	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "investment")
	}
	return investments, nil
}
