package coordination

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dukerupert/carecircle/internal/model"
)

func TestSchedulerTickResetsEveryCircle(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	other := relative
	other.CircleID = "c2"
	for _, circle := range []string{"c1", "c2"} {
		require.NoError(t, f.stores.Settings.SetResetState(ctx, circle, model.CircleResetState{LastResetDate: "2023-12-31"}, f.clock.Now()))
	}
	a, err := f.svc.CreateTask(ctx, relative, TaskInput{Title: "Pills", Type: model.TaskMedication, Period: model.PeriodMorning})
	require.NoError(t, err)
	b, err := f.svc.CreateTask(ctx, other, TaskInput{Title: "Pills", Type: model.TaskMedication, Period: model.PeriodMorning})
	require.NoError(t, err)
	f.svc.SetTaskCompleted(ctx, "c1", a.ID, true)
	f.svc.SetTaskCompleted(ctx, "c2", b.ID, true)

	NewScheduler(f.svc, f.progress, time.Minute, slog.Default()).Tick(ctx)

	for _, tc := range []struct{ circle, id string }{{"c1", a.ID}, {"c2", b.ID}} {
		got, err := f.stores.Tasks.GetByID(ctx, tc.circle, tc.id)
		require.NoError(t, err)
		assert.False(t, got.Completed, "circle %s", tc.circle)
		state, _ := f.stores.Settings.ResetState(ctx, tc.circle)
		assert.Equal(t, "2024-01-01", state.LastResetDate)
	}
}

func TestSchedulerPrune(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	_, err := f.svc.SendPing(ctx, relative, "")
	require.NoError(t, err)
	_, err = f.stores.Scores.CreateOnce(ctx, model.LeaderboardEntry{CircleID: "c1", UserID: "u1", Score: 1, Total: 5, Date: "2024-01-01", CreatedAt: f.clock.Now()})
	require.NoError(t, err)
	require.NoError(t, f.progress.SaveProgress(ctx, &model.WordPuzzleProgress{UserID: "u1", Date: "2024-01-01", Answers: map[string]bool{}, UpdatedAt: f.clock.Now()}))

	s := NewScheduler(f.svc, f.progress, time.Minute, slog.Default())

	f.clock.Advance(13 * 24 * time.Hour)
	require.NoError(t, s.Prune(ctx))
	window, _ := f.stores.Pings.ListRecent(ctx, "c1", 10)
	assert.Len(t, window, 1)

	f.clock.Advance(2 * 24 * time.Hour)
	require.NoError(t, s.Prune(ctx))

	window, _ = f.stores.Pings.ListRecent(ctx, "c1", 10)
	assert.Empty(t, window)
	scores, _ := f.stores.Scores.List(ctx, "c1")
	assert.Empty(t, scores)
	assert.Empty(t, f.svc.Activity(ctx, "c1").Data)
	p, err := f.progress.LoadProgress(ctx, "u1", "2024-01-01")
	require.NoError(t, err)
	assert.Nil(t, p)
}

func TestSchedulerStartStop(t *testing.T) {
	f := newFixture(t, nil)

	s := NewScheduler(f.svc, nil, time.Hour, slog.Default())
	s.Start(context.Background())
	s.Stop()

	// the first pass runs on start and bootstraps nothing: no circles yet
	ids, err := f.stores.Tasks.CircleIDs(context.Background())
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestSchedulerPruneDropsStaleLatches(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	_, err := f.svc.SendPing(ctx, relative, "")
	require.NoError(t, err)
	require.NotNil(t, f.svc.CurrentNotification(ctx, senior).Data)
	f.svc.CurrentNotification(ctx, relative)
	require.Len(t, f.svc.latches, 2)

	s := NewScheduler(f.svc, f.progress, time.Minute, slog.Default())
	require.NoError(t, s.Prune(ctx))
	assert.Len(t, f.svc.latches, 1, "fresh latch kept, empty latch dropped")

	f.clock.Advance(2 * time.Minute)
	require.NoError(t, s.Prune(ctx))
	assert.Empty(t, f.svc.latches)
}
