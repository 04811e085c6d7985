// Copyright (c) 2026 Rotina. All rights reserved.
// Author: dev@rotina.app

package task_test

import (
	"context"
	"log/slog"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rotina-app/rotina/internal/core/task"
	"github.com/rotina-app/rotina/internal/platform/apperr"
	"github.com/rotina-app/rotina/pkg/pointer"
)

type fakeRepository struct {
	tasks map[string]*task.Task
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{tasks: make(map[string]*task.Task)}
}

func (r *fakeRepository) Create(_ context.Context, t *task.Task) error {
	r.tasks[t.ID] = t
	return nil
}

func (r *fakeRepository) FindByID(_ context.Context, id, userID string) (*task.Task, error) {
	t, ok := r.tasks[id]
	if !ok || t.UserID != userID {
		return nil, apperr.NotFound("Task")
	}
	return t, nil
}

func (r *fakeRepository) ListByUser(_ context.Context, userID string) ([]*task.Task, error) {
	var out []*task.Task
	for _, t := range r.tasks {
		if t.UserID == userID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *fakeRepository) ListByCategory(_ context.Context, userID, category string) ([]*task.Task, error) {
	var out []*task.Task
	for _, t := range r.tasks {
		if t.UserID == userID && t.Category == category {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *fakeRepository) ListByPriority(_ context.Context, userID, priority string) ([]*task.Task, error) {
	var out []*task.Task
	for _, t := range r.tasks {
		if t.UserID == userID && t.Priority == priority {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *fakeRepository) ListUpcoming(_ context.Context, userID string, after time.Time, limit int) ([]*task.Task, error) {
	var out []*task.Task
	for _, t := range r.tasks {
		if t.UserID == userID && t.DueDate != nil && t.DueDate.After(after) {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DueDate.Before(*out[j].DueDate) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeRepository) Update(_ context.Context, t *task.Task) error {
	r.tasks[t.ID] = t
	return nil
}

func (r *fakeRepository) Delete(_ context.Context, id, userID string) error {
	t, ok := r.tasks[id]
	if !ok || t.UserID != userID {
		return apperr.NotFound("Task")
	}
	delete(r.tasks, id)
	return nil
}

func newTestService() *task.Service {
	return task.NewService(newFakeRepository(), slog.Default())
}

/*
TestService_Create_Defaults verifies the defaults applied to omitted fields.
*/
func TestService_Create_Defaults(t *testing.T) {
	service := newTestService()

	created, err := service.Create(context.Background(), "user-1", task.CreateInput{
		Name:     "Pay rent",
		Priority: task.PriorityUrgentImportant,
		Category: "FINANCIAL",
	})
	require.NoError(t, err)

	// 1. Omitted recurrence defaults to NONE
	assert.Equal(t, "NONE", created.Recurrence)

	// 2. Repetition target is always at least 1
	assert.Equal(t, 1, created.RepetitionsRequired)
	assert.Equal(t, 0, created.RepetitionsCompleted)
	assert.False(t, created.Completed())
}

/*
TestService_MarkCompleted verifies repetition counting up to the target.
*/
func TestService_MarkCompleted(t *testing.T) {
	service := newTestService()

	created, err := service.Create(context.Background(), "user-1", task.CreateInput{
		Name:                "Run 5km",
		Priority:            task.PriorityImportantNotUrgent,
		Category:            "HEALTH",
		RepetitionsRequired: 3,
	})
	require.NoError(t, err)

	// 1. Each completion bumps the counter
	updated, err := service.MarkCompleted(context.Background(), created.ID, "user-1")
	require.NoError(t, err)
	assert.Equal(t, 1, updated.RepetitionsCompleted)
	assert.False(t, updated.Completed())

	// 2. Reaching the target completes the task
	_, err = service.MarkCompleted(context.Background(), created.ID, "user-1")
	require.NoError(t, err)
	updated, err = service.MarkCompleted(context.Background(), created.ID, "user-1")
	require.NoError(t, err)
	assert.Equal(t, 3, updated.RepetitionsCompleted)
	assert.True(t, updated.Completed())
}

/*
TestService_ListUpcoming verifies due-date ordering and the default limit.
*/
func TestService_ListUpcoming(t *testing.T) {
	service := newTestService()

	now := time.Now()
	for _, offsetDays := range []int{5, 1, 3} {
		_, err := service.Create(context.Background(), "user-1", task.CreateInput{
			Name:     "Task",
			Priority: task.PriorityUrgentImportant,
			Category: "WORK",
			DueDate:  pointer.To(now.AddDate(0, 0, offsetDays)),
		})
		require.NoError(t, err)
	}
	// No due date: never upcoming
	_, err := service.Create(context.Background(), "user-1", task.CreateInput{
		Name:     "Someday",
		Priority: task.PriorityNotUrgentNotImportant,
		Category: "PERSONAL",
	})
	require.NoError(t, err)

	upcoming, err := service.ListUpcoming(context.Background(), "user-1", 0)
	require.NoError(t, err)

	require.Len(t, upcoming, 3)
	assert.True(t, upcoming[0].DueDate.Before(*upcoming[1].DueDate))
	assert.True(t, upcoming[1].DueDate.Before(*upcoming[2].DueDate))
}

/*
TestService_Update_PartialPatch verifies that nil fields are left untouched.
*/
func TestService_Update_PartialPatch(t *testing.T) {
	service := newTestService()

	created, err := service.Create(context.Background(), "user-1", task.CreateInput{
		Name:        "Read book",
		Description: pointer.To("20 pages per day"),
		Priority:    task.PriorityImportantNotUrgent,
		Category:    "LEARNING",
	})
	require.NoError(t, err)

	updated, err := service.Update(context.Background(), created.ID, "user-1", task.UpdateInput{
		Name: pointer.To("Read two books"),
	})
	require.NoError(t, err)

	assert.Equal(t, "Read two books", updated.Name)
	require.NotNil(t, updated.Description)
	assert.Equal(t, "20 pages per day", *updated.Description)
	assert.Equal(t, "LEARNING", updated.Category)
}

/*
TestService_OwnershipScoping verifies per-user isolation of task reads and
writes.
*/
func TestService_OwnershipScoping(t *testing.T) {
	service := newTestService()

	created, err := service.Create(context.Background(), "user-1", task.CreateInput{
		Name:     "Private task",
		Priority: task.PriorityUrgentImportant,
		Category: "PERSONAL",
	})
	require.NoError(t, err)

	_, err = service.Get(context.Background(), created.ID, "intruder")
	require.Error(t, err)

	_, err = service.MarkCompleted(context.Background(), created.ID, "intruder")
	require.Error(t, err)

	err = service.Delete(context.Background(), created.ID, "intruder")
	require.Error(t, err)
}
