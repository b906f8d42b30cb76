package service

import (
	"context"
	"testing"

	"github.com/alexanderramin/grindstone/internal/domain"
	"github.com/alexanderramin/grindstone/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToday_BuildsViewAndBackfills(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	phys := h.domain(t, "Physical", testutil.WithDomainOrder(1))
	fin := h.domain(t, "Financial", testutil.WithDomainOrder(2))
	run := h.task(t, phys, "Run", testutil.WithPoints(3))
	h.task(t, phys, "Lift", testutil.WithPoints(1))
	h.task(t, fin, "Budget", testutil.WithPoints(2))

	_, err := h.taskSvc.ToggleCompletion(ctx, run.ID)
	require.NoError(t, err)

	view, err := h.dashboardSvc.Today(ctx)
	require.NoError(t, err)
	assert.Equal(t, testToday, view.Today)
	assert.Equal(t, 30, view.Backfilled)
	assert.Equal(t, domain.Unlocked, view.Lock.State)
	assert.Equal(t, 3, view.TodayPoints)
	assert.Equal(t, 1, view.TasksCompleted)
	assert.Equal(t, 3, view.WalletBalance)

	require.Len(t, view.Tasks, 3)
	assert.Equal(t, "Physical", view.Tasks[0].DomainName)
	assert.Equal(t, "Financial", view.Tasks[2].DomainName)
	completed := map[string]bool{}
	for _, tv := range view.Tasks {
		completed[tv.Task.Title] = tv.Completed
	}
	assert.Equal(t, map[string]bool{"Run": true, "Lift": false, "Budget": false}, completed)

	require.Len(t, view.Balance, 2)
	assert.Equal(t, 3, view.Balance[0].Earned)
	assert.Equal(t, 4, view.Balance[0].Total)
	assert.InDelta(t, 0.75, view.Balance[0].Ratio, 1e-9)
	assert.Zero(t, view.Balance[1].Ratio)

	again, err := h.dashboardSvc.Today(ctx)
	require.NoError(t, err)
	assert.Zero(t, again.Backfilled)
}

func TestToday_ReleasesYesterdaysLock(t *testing.T) {
	h := newHarness(t)
	h.lockToday(t)
	h.clock.advanceDays(1)

	view, err := h.dashboardSvc.Today(context.Background())
	require.NoError(t, err)
	assert.False(t, view.Lock.IsLocked())
}

func TestToday_HidesInactiveDomains(t *testing.T) {
	h := newHarness(t)
	live := h.domain(t, "Physical")
	dormant := h.domain(t, "Social", testutil.WithDomainInactive())
	h.task(t, live, "Run")
	h.task(t, dormant, "Call")

	view, err := h.dashboardSvc.Today(context.Background())
	require.NoError(t, err)
	require.Len(t, view.Tasks, 1)
	assert.Equal(t, "Run", view.Tasks[0].Task.Title)
	assert.Len(t, view.Balance, 1)
}
