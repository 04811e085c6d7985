// Copyright (c) 2026 Rotina. All rights reserved.
// Author: dev@rotina.app

/*
Package account handles user profile management and the aggregated dashboard.

It provides functionalities for users to view and update their private identity
data, delete their account, and fetch a cross-domain summary of their day.

# Architecture

  - Entities: DashboardSummary (DTO).
  - Domain: This package depends on the auth package for the User entity.
  - Aggregation: The dashboard is computed storage-side in a single round trip.
*/
package account

import (
	"context"
	"time"

	"github.com/rotina-app/rotina/internal/users/auth"
)

// # Domain Entities

// DashboardSummary is the cross-domain snapshot shown on the home screen.
type DashboardSummary struct {
	TasksDueToday      int     `json:"tasks_due_today"`
	TasksCompleted     int     `json:"tasks_completed"`
	ActiveHabits       int     `json:"active_habits"`
	GoalsInProgress    int     `json:"goals_in_progress"`
	MonthIncome        float64 `json:"month_income"`
	MonthExpenses      float64 `json:"month_expenses"`
	PortfolioInvested  float64 `json:"portfolio_invested"`
	PortfolioCurrent   float64 `json:"portfolio_current"`
	LatestWeight       string  `json:"latest_weight,omitempty"`
	ActiveWorkoutPlans int     `json:"active_workout_plans"`
}

// # Repository Contracts

// AccountRepository defines the persistence contract for user accounts.
//
// The auth package's user repository satisfies this contract; account does
// not maintain its own user storage.
type AccountRepository interface {
	/*
		FindByID retrieves a user record by their unique ID.

		Parameters:
		  - context: context.Context
		  - id: string (UUID)

		Returns:
		  - *auth.User: Loaded account entity
		  - error: apperr.NotFound or storage failures
	*/
	FindByID(context context.Context, id string) (*auth.User, error)

	/*
		Update modifies the mutable profile fields of an existing user.

		Parameters:
		  - context: context.Context
		  - user: *auth.User (Hydrated entity with changes)

		Returns:
		  - error: Storage or constraint failures
	*/
	Update(context context.Context, user *auth.User) error

	/*
		SoftDelete flags an account as logically deleted.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - error: Execution failures
	*/
	SoftDelete(context context.Context, id string) error
}

// SessionRevoker terminates every refresh session for a user.
// Used when the account itself is deleted.
type SessionRevoker interface {
	RevokeAll(context context.Context, userID string) error
}

// DashboardRepository computes the cross-domain summary for a user.
type DashboardRepository interface {
	/*
		Summarize aggregates today's tasks, active habits, in-progress goals,
		the current month's cash flow, and portfolio totals.

		Parameters:
		  - context: context.Context
		  - userID: string
		  - now: time.Time (Reference instant for "today" and "this month")

		Returns:
		  - *DashboardSummary: Aggregated snapshot
		  - error: Storage failures
	*/
	Summarize(context context.Context, userID string, now time.Time) (*DashboardSummary, error)
}
