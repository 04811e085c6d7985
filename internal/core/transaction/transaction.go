// Copyright (c) 2026 Rotina. All rights reserved.
// Author: dev@rotina.app

// Package transaction implements personal finance tracking: income and
// expense records, recurring entries, and aggregated financial overviews.
package transaction

import "time"

const (
	TypeIncome  = "INCOME"
	TypeExpense = "EXPENSE"
)

// Types lists the accepted transaction kinds.
var Types = []string{TypeIncome, TypeExpense}

const (
	IntervalDaily   = "DAILY"
	IntervalWeekly  = "WEEKLY"
	IntervalMonthly = "MONTHLY"
	IntervalYearly  = "YEARLY"
)

// Intervals lists the accepted recurrence intervals.
var Intervals = []string{IntervalDaily, IntervalWeekly, IntervalMonthly, IntervalYearly}

/*
Transaction represents a single financial movement on a user's ledger.

Amount is always positive; Type decides whether it counts toward income
or expenses. Recurring transactions carry a RecurrenceInterval describing
how often they repeat.
*/
type Transaction struct {
	ID                 string    `json:"id"`
	UserID             string    `json:"userId"`
	Type               string    `json:"type"`
	Amount             float64   `json:"amount"`
	Date               time.Time `json:"date"`
	Description        string    `json:"description"`
	Category           *string   `json:"category,omitempty"`
	IsRecurring        bool      `json:"isRecurring"`
	RecurrenceInterval *string   `json:"recurrenceInterval,omitempty"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

/*
Overview aggregates a user's financial activity over a trailing window.

MonthlyData is keyed by "YYYY-MM". RecentTransactions holds the newest
records first.
*/
type Overview struct {
	TotalIncome        float64                 `json:"totalIncome"`
	TotalExpenses      float64                 `json:"totalExpenses"`
	Balance            float64                 `json:"balance"`
	MonthlyData        map[string]MonthSummary `json:"monthlyData"`
	ExpensesByCategory map[string]float64      `json:"expensesByCategory"`
	RecentTransactions []*Transaction          `json:"recentTransactions"`
}

// MonthSummary totals income and expenses for a single calendar month.
type MonthSummary struct {
	Income   float64 `json:"income"`
	Expenses float64 `json:"expenses"`
}
