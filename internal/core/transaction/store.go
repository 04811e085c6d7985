// Copyright (c) 2026 Rotina. All rights reserved.
// Author: dev@rotina.app

package transaction

import (
	"context"
	"time"
)

// Repository defines the persistence contract for transactions. Every read is
// scoped to the owning user.
type Repository interface {
	Create(context context.Context, transaction *Transaction) error
	FindByID(context context.Context, id, userID string) (*Transaction, error)
	ListByUser(context context.Context, userID string, limit, offset int) ([]*Transaction, error)
	CountByUser(context context.Context, userID string) (int, error)
	ListByType(context context.Context, userID, transactionType string) ([]*Transaction, error)
	ListByCategory(context context.Context, userID, category string) ([]*Transaction, error)
	ListRecurring(context context.Context, userID string) ([]*Transaction, error)
	ListByDateRange(context context.Context, userID string, start, end time.Time) ([]*Transaction, error)
	ListSince(context context.Context, userID string, since time.Time) ([]*Transaction, error)
	Update(context context.Context, transaction *Transaction) error
	Delete(context context.Context, id, userID string) error
}
