// Copyright (c) 2026 Rotina. All rights reserved.
// Author: dev@rotina.app

package transaction_test

import (
	"context"
	"log/slog"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rotina-app/rotina/internal/core/transaction"
	"github.com/rotina-app/rotina/internal/platform/apperr"
	"github.com/rotina-app/rotina/pkg/pointer"
)

// fakeRepository is an in-memory ledger. List reads come back newest first,
// matching the Postgres implementation.
type fakeRepository struct {
	transactions map[string]*transaction.Transaction
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{transactions: make(map[string]*transaction.Transaction)}
}

func (r *fakeRepository) all(userID string) []*transaction.Transaction {
	var out []*transaction.Transaction
	for _, txn := range r.transactions {
		if txn.UserID == userID {
			out = append(out, txn)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out
}

func (r *fakeRepository) Create(_ context.Context, txn *transaction.Transaction) error {
	r.transactions[txn.ID] = txn
	return nil
}

func (r *fakeRepository) FindByID(_ context.Context, id, userID string) (*transaction.Transaction, error) {
	txn, ok := r.transactions[id]
	if !ok || txn.UserID != userID {
		return nil, apperr.NotFound("Transaction")
	}
	return txn, nil
}

func (r *fakeRepository) ListByUser(_ context.Context, userID string, limit, offset int) ([]*transaction.Transaction, error) {
	out := r.all(userID)
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeRepository) CountByUser(_ context.Context, userID string) (int, error) {
	return len(r.all(userID)), nil
}

func (r *fakeRepository) ListByType(_ context.Context, userID, transactionType string) ([]*transaction.Transaction, error) {
	var out []*transaction.Transaction
	for _, txn := range r.all(userID) {
		if txn.Type == transactionType {
			out = append(out, txn)
		}
	}
	return out, nil
}

func (r *fakeRepository) ListByCategory(_ context.Context, userID, category string) ([]*transaction.Transaction, error) {
	var out []*transaction.Transaction
	for _, txn := range r.all(userID) {
		if txn.Category != nil && *txn.Category == category {
			out = append(out, txn)
		}
	}
	return out, nil
}

func (r *fakeRepository) ListRecurring(_ context.Context, userID string) ([]*transaction.Transaction, error) {
	var out []*transaction.Transaction
	for _, txn := range r.all(userID) {
		if txn.IsRecurring {
			out = append(out, txn)
		}
	}
	return out, nil
}

func (r *fakeRepository) ListByDateRange(_ context.Context, userID string, start, end time.Time) ([]*transaction.Transaction, error) {
	var out []*transaction.Transaction
	for _, txn := range r.all(userID) {
		if !txn.Date.Before(start) && !txn.Date.After(end) {
			out = append(out, txn)
		}
	}
	return out, nil
}

func (r *fakeRepository) ListSince(_ context.Context, userID string, since time.Time) ([]*transaction.Transaction, error) {
	var out []*transaction.Transaction
	for _, txn := range r.all(userID) {
		if !txn.Date.Before(since) {
			out = append(out, txn)
		}
	}
	return out, nil
}

func (r *fakeRepository) Update(_ context.Context, txn *transaction.Transaction) error {
	r.transactions[txn.ID] = txn
	return nil
}

func (r *fakeRepository) Delete(_ context.Context, id, userID string) error {
	txn, ok := r.transactions[id]
	if !ok || txn.UserID != userID {
		return apperr.NotFound("Transaction")
	}
	delete(r.transactions, id)
	return nil
}

func newTestService() (*transaction.Service, *fakeRepository) {
	repo := newFakeRepository()
	return transaction.NewService(repo, slog.Default()), repo
}

// seed creates a transaction dated daysAgo days in the past.
func seed(t *testing.T, service *transaction.Service, txnType string, amount float64, category string, daysAgo int) *transaction.Transaction {
	t.Helper()

	input := transaction.CreateInput{
		Type:        txnType,
		Amount:      amount,
		Date:        time.Now().UTC().AddDate(0, 0, -daysAgo),
		Description: "seed",
	}
	if category != "" {
		input.Category = pointer.To(category)
	}

	txn, err := service.Create(context.Background(), "user-1", input)
	require.NoError(t, err)
	return txn
}

/*
TestService_Overview verifies the aggregated financial summary: totals,
balance, per-month buckets and the expense category breakdown.
*/
func TestService_Overview(t *testing.T) {
	service, _ := newTestService()

	seed(t, service, transaction.TypeIncome, 3000, "", 1)
	seed(t, service, transaction.TypeExpense, 1200, "Rent", 2)
	seed(t, service, transaction.TypeExpense, 300, "Groceries", 3)
	seed(t, service, transaction.TypeExpense, 50, "", 4) // uncategorized

	overview, err := service.Overview(context.Background(), "user-1", 1)
	require.NoError(t, err)

	// 1. Totals and balance
	assert.InDelta(t, 3000, overview.TotalIncome, 0.001)
	assert.InDelta(t, 1550, overview.TotalExpenses, 0.001)
	assert.InDelta(t, 1450, overview.Balance, 0.001)

	// 2. Expense categories, with nil category mapped to Uncategorized
	assert.InDelta(t, 1200, overview.ExpensesByCategory["Rent"], 0.001)
	assert.InDelta(t, 300, overview.ExpensesByCategory["Groceries"], 0.001)
	assert.InDelta(t, 50, overview.ExpensesByCategory["Uncategorized"], 0.001)

	// 3. Recent transactions come back newest first
	require.NotEmpty(t, overview.RecentTransactions)
	assert.InDelta(t, 3000, overview.RecentTransactions[0].Amount, 0.001)
}

/*
TestService_Overview_MonthlyBuckets verifies the month-key grouping over a
multi-month window.
*/
func TestService_Overview_MonthlyBuckets(t *testing.T) {
	service, repo := newTestService()

	now := time.Now().UTC()
	thisMonth := now.Format("2006-01")
	lastMonth := now.AddDate(0, -1, 0).Format("2006-01")

	seed(t, service, transaction.TypeIncome, 1000, "", 0)
	// Force one entry into the previous month regardless of today's date
	old := seed(t, service, transaction.TypeExpense, 400, "Rent", 0)
	repo.transactions[old.ID].Date = now.AddDate(0, -1, 0)

	overview, err := service.Overview(context.Background(), "user-1", 2)
	require.NoError(t, err)

	assert.InDelta(t, 1000, overview.MonthlyData[thisMonth].Income, 0.001)
	assert.InDelta(t, 400, overview.MonthlyData[lastMonth].Expenses, 0.001)
}

/*
TestService_Overview_WindowExcludesOldEntries verifies that transactions
before the requested window are ignored.
*/
func TestService_Overview_WindowExcludesOldEntries(t *testing.T) {
	service, repo := newTestService()

	seed(t, service, transaction.TypeIncome, 500, "", 0)
	stale := seed(t, service, transaction.TypeIncome, 9999, "", 0)
	repo.transactions[stale.ID].Date = time.Now().UTC().AddDate(0, -6, 0)

	overview, err := service.Overview(context.Background(), "user-1", 1)
	require.NoError(t, err)

	assert.InDelta(t, 500, overview.TotalIncome, 0.001)
}

/*
TestService_List verifies pagination and the total count.
*/
func TestService_List(t *testing.T) {
	service, _ := newTestService()

	for i := 0; i < 5; i++ {
		seed(t, service, transaction.TypeExpense, float64(10+i), "Misc", i)
	}

	page, total, err := service.List(context.Background(), "user-1", 2, 2)
	require.NoError(t, err)

	assert.Equal(t, 5, total)
	require.Len(t, page, 2)
	// Newest first: offset 2 skips the two most recent entries
	assert.InDelta(t, 12, page[0].Amount, 0.001)
}

/*
TestService_Update_RecurrenceConsistency verifies that turning off the
recurring flag clears the interval.
*/
func TestService_Update_RecurrenceConsistency(t *testing.T) {
	service, _ := newTestService()

	txn, err := service.Create(context.Background(), "user-1", transaction.CreateInput{
		Type:               transaction.TypeExpense,
		Amount:             15,
		Date:               time.Now().UTC(),
		Description:        "Streaming subscription",
		IsRecurring:        true,
		RecurrenceInterval: pointer.To(transaction.IntervalMonthly),
	})
	require.NoError(t, err)
	require.NotNil(t, txn.RecurrenceInterval)

	updated, err := service.Update(context.Background(), txn.ID, "user-1", transaction.UpdateInput{
		IsRecurring: pointer.To(false),
	})
	require.NoError(t, err)

	assert.False(t, updated.IsRecurring)
	assert.Nil(t, updated.RecurrenceInterval)
}

/*
TestService_OwnershipScoping verifies that one user can never read another
user's ledger entries.
*/
func TestService_OwnershipScoping(t *testing.T) {
	service, _ := newTestService()

	txn := seed(t, service, transaction.TypeExpense, 100, "Rent", 0)

	_, err := service.Get(context.Background(), txn.ID, "intruder")
	require.Error(t, err)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "NOT_FOUND", ae.Code)
}
