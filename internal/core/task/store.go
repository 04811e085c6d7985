// Copyright (c) 2026 Rotina. All rights reserved.
// Author: dev@rotina.app

package task

import (
	"context"
	"time"
)

// Repository defines the persistence contract for tasks. Every read is scoped
// to the owning user; a task is invisible outside its owner.
type Repository interface {
	Create(context context.Context, task *Task) error
	FindByID(context context.Context, id, userID string) (*Task, error)
	ListByUser(context context.Context, userID string) ([]*Task, error)
	ListByCategory(context context.Context, userID, category string) ([]*Task, error)
	ListByPriority(context context.Context, userID, priority string) ([]*Task, error)
	ListUpcoming(context context.Context, userID string, after time.Time, limit int) ([]*Task, error)
	Update(context context.Context, task *Task) error
	Delete(context context.Context, id, userID string) error
}
