// Copyright (c) 2026 Rotina. All rights reserved.
// Author: dev@rotina.app

package account

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// # Dashboard Repository

// PostgresDashboardRepository implements DashboardRepository using pgx.
//
// The summary is computed entirely in SQL; only the final scalars cross the
// wire. Each aggregate tolerates an empty domain (COALESCE to zero).
type PostgresDashboardRepository struct {
	pool *pgxpool.Pool
}

// NewDashboardRepository creates a new PostgreSQL implementation of the DashboardRepository.
func NewDashboardRepository(pool *pgxpool.Pool) *PostgresDashboardRepository {
	return &PostgresDashboardRepository{pool: pool}
}

/*
Summarize aggregates the user's day across every domain.

Description: "Today" and "this month" are resolved against the supplied
reference instant so the query is reproducible in tests.

Parameters:
  - context: context.Context
  - userID: string
  - now: time.Time

Returns:
  - *DashboardSummary: Aggregated snapshot
  - error: Storage failures
*/
func (repository *PostgresDashboardRepository) Summarize(context context.Context, userID string, now time.Time) (*DashboardSummary, error) {
	const query = `
		SELECT
			(SELECT COUNT(*) FROM core.task
				WHERE userid = $1 AND repetitionscompleted < repetitionsrequired
				AND duedate::date = $2::date),
			(SELECT COUNT(*) FROM core.task
				WHERE userid = $1 AND repetitionscompleted >= repetitionsrequired),
			(SELECT COUNT(*) FROM core.habit
				WHERE userid = $1),
			(SELECT COUNT(*) FROM core.goal
				WHERE userid = $1 AND status = 'IN_PROGRESS'),
			(SELECT COALESCE(SUM(amount), 0) FROM core.transaction
				WHERE userid = $1 AND type = 'INCOME'
				AND date_trunc('month', date) = date_trunc('month', $2::timestamptz)),
			(SELECT COALESCE(SUM(amount), 0) FROM core.transaction
				WHERE userid = $1 AND type = 'EXPENSE'
				AND date_trunc('month', date) = date_trunc('month', $2::timestamptz)),
			(SELECT COALESCE(SUM(COALESCE(purchaseprice * quantity, currentvalue)), 0)
				FROM core.investment WHERE userid = $1),
			(SELECT COALESCE(SUM(currentvalue), 0) FROM core.investment
				WHERE userid = $1),
			(SELECT COALESCE(
				(SELECT value FROM core.healthmeasurement
					WHERE userid = $1 AND type = 'WEIGHT'
					ORDER BY date DESC LIMIT 1), '')),
			(SELECT COUNT(*) FROM core.workoutplan
				WHERE userid = $1 AND startdate <= $2
				AND (enddate IS NULL OR enddate >= $2))`

	summary := &DashboardSummary{}
	err := repository.pool.QueryRow(context, query, userID, now).Scan(
		&summary.TasksDueToday,
		&summary.TasksCompleted,
		&summary.ActiveHabits,
		&summary.GoalsInProgress,
		&summary.MonthIncome,
		&summary.MonthExpenses,
		&summary.PortfolioInvested,
		&summary.PortfolioCurrent,
		&summary.LatestWeight,
		&summary.ActiveWorkoutPlans,
	)

	if err != nil {
		return nil, fmt.Errorf("postgres_dashboard_repo_summarize_failed: %w", err)
	}

	return summary, nil
}
