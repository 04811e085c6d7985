package goal_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rotina-app/rotina/internal/core/goal"
	"github.com/rotina-app/rotina/internal/platform/apperr"
	"github.com/rotina-app/rotina/pkg/pointer"
)

type fakeRepository struct {
	goals    map[string]*goal.Goal
	subTasks map[string]*goal.SubTask // subtask ID -> subtask
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		goals:    make(map[string]*goal.Goal),
		subTasks: make(map[string]*goal.SubTask),
	}
}

func (r *fakeRepository) Create(_ context.Context, g *goal.Goal) error {
	r.goals[g.ID] = g
	for i := range g.SubTasks {
		r.subTasks[g.SubTasks[i].ID] = &g.SubTasks[i]
	}
	return nil
}

func (r *fakeRepository) FindByID(_ context.Context, id, userID string) (*goal.Goal, error) {
	g, ok := r.goals[id]
	if !ok || g.UserID != userID {
		return nil, apperr.NotFound("Goal")
	}
	return g, nil
}

func (r *fakeRepository) ListByUser(_ context.Context, userID string) ([]*goal.Goal, error) {
	var out []*goal.Goal
	for _, g := range r.goals {
		if g.UserID == userID {
			out = append(out, g)
		}
	}
	return out, nil
}

func (r *fakeRepository) ListByCategory(_ context.Context, userID, category string) ([]*goal.Goal, error) {
	var out []*goal.Goal
	for _, g := range r.goals {
		if g.UserID == userID && g.Category == category {
			out = append(out, g)
		}
	}
	return out, nil
}

func (r *fakeRepository) ListByStatus(_ context.Context, userID, status string) ([]*goal.Goal, error) {
	var out []*goal.Goal
	for _, g := range r.goals {
		if g.UserID == userID && g.Status == status {
			out = append(out, g)
		}
	}
	return out, nil
}

func (r *fakeRepository) ListInProgress(_ context.Context, userID string, limit int) ([]*goal.Goal, error) {
	out, _ := r.ListByStatus(context.Background(), userID, goal.StatusInProgress)
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeRepository) Update(_ context.Context, g *goal.Goal) error {
	r.goals[g.ID] = g
	return nil
}

func (r *fakeRepository) Delete(_ context.Context, id, userID string) error {
	g, ok := r.goals[id]
	if !ok || g.UserID != userID {
		return apperr.NotFound("Goal")
	}
	delete(r.goals, id)
	return nil
}

func (r *fakeRepository) CreateSubTask(_ context.Context, subTask *goal.SubTask) error {
	r.subTasks[subTask.ID] = subTask
	return nil
}

func (r *fakeRepository) FindSubTask(_ context.Context, subTaskID string) (*goal.SubTask, string, error) {
	subTask, ok := r.subTasks[subTaskID]
	if !ok {
		return nil, "", apperr.NotFound("Subtask")
	}
	parent, ok := r.goals[subTask.GoalID]
	if !ok {
		return nil, "", apperr.NotFound("Subtask")
	}
	return subTask, parent.UserID, nil
}

func (r *fakeRepository) UpdateSubTask(_ context.Context, subTask *goal.SubTask) error {
	r.subTasks[subTask.ID] = subTask
	return nil
}

func (r *fakeRepository) DeleteSubTask(_ context.Context, subTaskID string) error {
	delete(r.subTasks, subTaskID)
	return nil
}

func newTestService() *goal.Service {
	return goal.NewService(newFakeRepository(), slog.Default())
}

func TestService_Create_WithSubTasks(t *testing.T) {
	service := newTestService()

	created, err := service.Create(context.Background(), "user-1", goal.CreateInput{
		Name:        "Save for a house",
		Category:    "FINANCIAL",
		TargetValue: pointer.To(50000.0),
		SubTasks:    []string{"Open savings account", "Set up standing order"},
	})
	require.NoError(t, err)

	assert.Equal(t, goal.StatusNotStarted, created.Status)
	require.Len(t, created.SubTasks, 2)
	assert.Equal(t, "Open savings account", created.SubTasks[0].Name)
	assert.False(t, created.SubTasks[0].Completed)
	assert.Equal(t, created.ID, created.SubTasks[0].GoalID)
}

func TestService_UpdateProgress(t *testing.T) {
	service := newTestService()

	created, err := service.Create(context.Background(), "user-1", goal.CreateInput{
		Name:        "Save for a house",
		Category:    "FINANCIAL",
		TargetValue: pointer.To(50000.0),
	})
	require.NoError(t, err)

	// Recording progress moves the goal to IN_PROGRESS
	updated, err := service.UpdateProgress(context.Background(), created.ID, "user-1", 10000)
	require.NoError(t, err)
	assert.Equal(t, goal.StatusInProgress, updated.Status)
	require.NotNil(t, updated.CurrentValue)
	assert.InDelta(t, 10000, *updated.CurrentValue, 0.001)

	// Reaching the target auto-completes
	updated, err = service.UpdateProgress(context.Background(), created.ID, "user-1", 50000)
	require.NoError(t, err)
	assert.Equal(t, goal.StatusCompleted, updated.Status)
}

func TestService_UpdateProgress_NoTarget(t *testing.T) {
	service := newTestService()

	// Without a target value the goal never auto-completes
	created, err := service.Create(context.Background(), "user-1", goal.CreateInput{
		Name:     "Write more",
		Category: "PERSONAL",
	})
	require.NoError(t, err)

	updated, err := service.UpdateProgress(context.Background(), created.ID, "user-1", 999999)
	require.NoError(t, err)
	assert.Equal(t, goal.StatusInProgress, updated.Status)
}

func TestService_ToggleSubTask(t *testing.T) {
	service := newTestService()

	created, err := service.Create(context.Background(), "user-1", goal.CreateInput{
		Name:     "Learn Spanish",
		Category: "LEARNING",
	})
	require.NoError(t, err)

	subTask, err := service.AddSubTask(context.Background(), created.ID, "user-1", "Finish course A1")
	require.NoError(t, err)
	assert.False(t, subTask.Completed)

	toggled, err := service.ToggleSubTask(context.Background(), subTask.ID, "user-1")
	require.NoError(t, err)
	assert.True(t, toggled.Completed)

	toggled, err = service.ToggleSubTask(context.Background(), subTask.ID, "user-1")
	require.NoError(t, err)
	assert.False(t, toggled.Completed)
}

func TestService_SubTask_OwnershipEnforced(t *testing.T) {
	service := newTestService()

	created, err := service.Create(context.Background(), "user-1", goal.CreateInput{
		Name:     "Learn Spanish",
		Category: "LEARNING",
	})
	require.NoError(t, err)

	subTask, err := service.AddSubTask(context.Background(), created.ID, "user-1", "Finish course A1")
	require.NoError(t, err)

	// Ownership is resolved through the parent goal
	_, err = service.ToggleSubTask(context.Background(), subTask.ID, "intruder")
	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "NOT_FOUND", ae.Code)

	err = service.RemoveSubTask(context.Background(), subTask.ID, "intruder")
	require.Error(t, err)
}
