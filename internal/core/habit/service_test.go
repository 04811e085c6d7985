package habit_test

import (
	"context"
	"log/slog"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rotina-app/rotina/internal/core/habit"
	"github.com/rotina-app/rotina/internal/platform/apperr"
)

// fakeRepository keeps habits and day progress in memory. ListAllProgress
// returns entries newest first, matching the Postgres implementation.
type fakeRepository struct {
	habits   map[string]*habit.Habit
	progress map[string][]habit.DayProgress
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		habits:   make(map[string]*habit.Habit),
		progress: make(map[string][]habit.DayProgress),
	}
}

func (r *fakeRepository) Create(_ context.Context, h *habit.Habit) error {
	r.habits[h.ID] = h
	return nil
}

func (r *fakeRepository) FindByID(_ context.Context, id, userID string) (*habit.Habit, error) {
	h, ok := r.habits[id]
	if !ok || h.UserID != userID {
		return nil, apperr.NotFound("Habit")
	}
	return h, nil
}

func (r *fakeRepository) ListByUser(_ context.Context, userID string, _ int) ([]*habit.Habit, error) {
	var out []*habit.Habit
	for _, h := range r.habits {
		if h.UserID == userID {
			out = append(out, h)
		}
	}
	return out, nil
}

func (r *fakeRepository) ListByStreak(_ context.Context, userID string, limit int) ([]*habit.Habit, error) {
	out, _ := r.ListByUser(context.Background(), userID, 0)
	sort.Slice(out, func(i, j int) bool { return out[i].Streak > out[j].Streak })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeRepository) Update(_ context.Context, h *habit.Habit) error {
	r.habits[h.ID] = h
	return nil
}

func (r *fakeRepository) Delete(_ context.Context, id, userID string) error {
	h, ok := r.habits[id]
	if !ok || h.UserID != userID {
		return apperr.NotFound("Habit")
	}
	delete(r.habits, id)
	return nil
}

func (r *fakeRepository) UpsertProgress(_ context.Context, p *habit.DayProgress) error {
	entries := r.progress[p.HabitID]
	for i, existing := range entries {
		if existing.Date.Equal(p.Date) {
			entries[i] = *p
			return nil
		}
	}
	r.progress[p.HabitID] = append(entries, *p)
	return nil
}

func (r *fakeRepository) ListProgress(_ context.Context, habitID string, from, to time.Time) ([]habit.DayProgress, error) {
	var out []habit.DayProgress
	for _, p := range r.progress[habitID] {
		if !p.Date.Before(from) && !p.Date.After(to) {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

func (r *fakeRepository) ListAllProgress(_ context.Context, habitID string) ([]habit.DayProgress, error) {
	out := append([]habit.DayProgress(nil), r.progress[habitID]...)
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, nil
}

func (r *fakeRepository) SetStreak(_ context.Context, habitID string, streak int) error {
	h, ok := r.habits[habitID]
	if !ok {
		return apperr.NotFound("Habit")
	}
	h.Streak = streak
	return nil
}

func newTestService() (*habit.Service, *fakeRepository) {
	repo := newFakeRepository()
	return habit.NewService(repo, slog.Default()), repo
}

func day(offset int) time.Time {
	base := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)
	return base.AddDate(0, 0, offset)
}

func TestService_RecordProgress_StreakGrows(t *testing.T) {
	service, repo := newTestService()

	h, err := service.Create(context.Background(), "user-1", habit.CreateInput{Name: "Meditate"})
	require.NoError(t, err)

	// Three consecutive completed days
	for offset := -2; offset <= 0; offset++ {
		_, err := service.RecordProgress(context.Background(), "user-1", h.ID, day(offset), habit.StatusDone)
		require.NoError(t, err)
	}

	assert.Equal(t, 3, repo.habits[h.ID].Streak)
}

func TestService_RecordProgress_MissBreaksStreak(t *testing.T) {
	service, repo := newTestService()

	h, err := service.Create(context.Background(), "user-1", habit.CreateInput{Name: "Meditate"})
	require.NoError(t, err)

	_, err = service.RecordProgress(context.Background(), "user-1", h.ID, day(-2), habit.StatusDone)
	require.NoError(t, err)
	_, err = service.RecordProgress(context.Background(), "user-1", h.ID, day(-1), habit.StatusMissed)
	require.NoError(t, err)
	_, err = service.RecordProgress(context.Background(), "user-1", h.ID, day(0), habit.StatusDone)
	require.NoError(t, err)

	// Only the most recent run counts
	assert.Equal(t, 1, repo.habits[h.ID].Streak)
}

func TestService_RecordProgress_UpsertSameDay(t *testing.T) {
	service, repo := newTestService()

	h, err := service.Create(context.Background(), "user-1", habit.CreateInput{Name: "Meditate"})
	require.NoError(t, err)

	_, err = service.RecordProgress(context.Background(), "user-1", h.ID, day(0), habit.StatusMissed)
	require.NoError(t, err)
	assert.Equal(t, 0, repo.habits[h.ID].Streak)

	// Correcting the same day replaces the entry instead of duplicating it
	_, err = service.RecordProgress(context.Background(), "user-1", h.ID, day(0), habit.StatusDone)
	require.NoError(t, err)

	assert.Len(t, repo.progress[h.ID], 1)
	assert.Equal(t, 1, repo.habits[h.ID].Streak)
}

func TestService_RecordProgress_OwnershipEnforced(t *testing.T) {
	service, _ := newTestService()

	h, err := service.Create(context.Background(), "user-1", habit.CreateInput{Name: "Meditate"})
	require.NoError(t, err)

	_, err = service.RecordProgress(context.Background(), "intruder", h.ID, day(0), habit.StatusDone)
	require.Error(t, err)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "NOT_FOUND", ae.Code)
}

func TestService_ProgressRange(t *testing.T) {
	service, _ := newTestService()

	h, err := service.Create(context.Background(), "user-1", habit.CreateInput{Name: "Meditate"})
	require.NoError(t, err)

	for offset := -5; offset <= 0; offset++ {
		_, err := service.RecordProgress(context.Background(), "user-1", h.ID, day(offset), habit.StatusDone)
		require.NoError(t, err)
	}

	entries, err := service.ProgressRange(context.Background(), "user-1", h.ID, day(-2), day(0))
	require.NoError(t, err)
	require.Len(t, entries, 3)

	// Oldest first
	assert.True(t, entries[0].Date.Before(entries[1].Date))
	assert.True(t, entries[1].Date.Before(entries[2].Date))
}

func TestService_ListActive_DefaultLimit(t *testing.T) {
	service, repo := newTestService()

	for i := 0; i < 15; i++ {
		h, err := service.Create(context.Background(), "user-1", habit.CreateInput{Name: "Habit"})
		require.NoError(t, err)
		repo.habits[h.ID].Streak = i
	}

	active, err := service.ListActive(context.Background(), "user-1", 0)
	require.NoError(t, err)

	// Zero limit falls back to the default of 10, strongest streak first
	require.Len(t, active, 10)
	assert.Equal(t, 14, active[0].Streak)
}
