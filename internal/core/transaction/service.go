// Copyright (c) 2026 Rotina. All rights reserved.
// Author: dev@rotina.app

package transaction

import (
	"context"
	"log/slog"
	"time"

	"github.com/rotina-app/rotina/pkg/pointer"
	"github.com/rotina-app/rotina/pkg/uuid"
)

const (
	defaultOverviewMonths = 6
	recentOverviewLimit   = 10
)

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// CreateInput carries the fields accepted at transaction creation.
type CreateInput struct {
	Type               string
	Amount             float64
	Date               time.Time
	Description        string
	Category           *string
	IsRecurring        bool
	RecurrenceInterval *string
}

func (service *Service) Create(context context.Context, userID string, input CreateInput) (*Transaction, error) {
	transaction := &Transaction{
		ID:                 uuid.New(),
		UserID:             userID,
		Type:               input.Type,
		Amount:             input.Amount,
		Date:               input.Date,
		Description:        input.Description,
		Category:           input.Category,
		IsRecurring:        input.IsRecurring,
		RecurrenceInterval: input.RecurrenceInterval,
	}

	if err := service.repo.Create(context, transaction); err != nil {
		return nil, err
	}

	return transaction, nil
}

// List returns one page of the user's ledger, newest first, plus the total
// record count for pagination metadata.
func (service *Service) List(context context.Context, userID string, limit, offset int) ([]*Transaction, int, error) {
	transactions, err := service.repo.ListByUser(context, userID, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	total, err := service.repo.CountByUser(context, userID)
	if err != nil {
		return nil, 0, err
	}
	return transactions, total, nil
}

func (service *Service) Get(context context.Context, id, userID string) (*Transaction, error) {
	return service.repo.FindByID(context, id, userID)
}

func (service *Service) ListByType(context context.Context, userID, transactionType string) ([]*Transaction, error) {
	return service.repo.ListByType(context, userID, transactionType)
}

func (service *Service) ListByCategory(context context.Context, userID, category string) ([]*Transaction, error) {
	return service.repo.ListByCategory(context, userID, category)
}

func (service *Service) ListRecurring(context context.Context, userID string) ([]*Transaction, error) {
	return service.repo.ListRecurring(context, userID)
}

func (service *Service) ListByDateRange(context context.Context, userID string, start, end time.Time) ([]*Transaction, error) {
	return service.repo.ListByDateRange(context, userID, start, end)
}

/*
Overview builds the financial summary for the trailing monthsBack months.

The window starts at the first day of the month monthsBack-1 months ago,
so monthsBack=1 covers only the current month. Totals, per-month buckets
and the expense category breakdown are all computed from a single ledger
read.
*/
func (service *Service) Overview(context context.Context, userID string, monthsBack int) (*Overview, error) {
	if monthsBack < 1 {
		monthsBack = defaultOverviewMonths
	}

	now := time.Now().UTC()
	since := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -(monthsBack - 1), 0)

	transactions, err := service.repo.ListSince(context, userID, since)
	if err != nil {
		return nil, err
	}

	overview := &Overview{
		MonthlyData:        make(map[string]MonthSummary),
		ExpensesByCategory: make(map[string]float64),
		RecentTransactions: make([]*Transaction, 0, recentOverviewLimit),
	}

	for _, transaction := range transactions {
		month := transaction.Date.Format("2006-01")
		summary := overview.MonthlyData[month]

		switch transaction.Type {
		case TypeIncome:
			overview.TotalIncome += transaction.Amount
			summary.Income += transaction.Amount
		case TypeExpense:
			overview.TotalExpenses += transaction.Amount
			summary.Expenses += transaction.Amount

			category := pointer.Val(transaction.Category)
			if category == "" {
				category = "Uncategorized"
			}
			overview.ExpensesByCategory[category] += transaction.Amount
		}

		overview.MonthlyData[month] = summary

		if len(overview.RecentTransactions) < recentOverviewLimit {
			overview.RecentTransactions = append(overview.RecentTransactions, transaction)
		}
	}

	overview.Balance = overview.TotalIncome - overview.TotalExpenses

	return overview, nil
}

// UpdateInput carries the mutable fields. Nil means "leave as-is".
type UpdateInput struct {
	Type               *string
	Amount             *float64
	Date               *time.Time
	Description        *string
	Category           *string
	IsRecurring        *bool
	RecurrenceInterval *string
}

func (service *Service) Update(context context.Context, id, userID string, input UpdateInput) (*Transaction, error) {
	transaction, err := service.repo.FindByID(context, id, userID)
	if err != nil {
		return nil, err
	}

	if input.Type != nil {
		transaction.Type = *input.Type
	}
	if input.Amount != nil {
		transaction.Amount = *input.Amount
	}
	if input.Date != nil {
		transaction.Date = *input.Date
	}
	if input.Description != nil {
		transaction.Description = *input.Description
	}
	if input.Category != nil {
		transaction.Category = input.Category
	}
	if input.IsRecurring != nil {
		transaction.IsRecurring = *input.IsRecurring
	}
	if input.RecurrenceInterval != nil {
		transaction.RecurrenceInterval = input.RecurrenceInterval
	}
	if !transaction.IsRecurring {
		transaction.RecurrenceInterval = nil
	}

	if err := service.repo.Update(context, transaction); err != nil {
		return nil, err
	}

	return transaction, nil
}

func (service *Service) Delete(context context.Context, id, userID string) error {
	return service.repo.Delete(context, id, userID)
}
