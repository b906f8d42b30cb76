package service

import (
	"context"
	"errors"
	"testing"

	"github.com/alexanderramin/grindstone/internal/app"
	"github.com/alexanderramin/grindstone/internal/domain"
	"github.com/alexanderramin/grindstone/internal/engine"
	"github.com/alexanderramin/grindstone/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompleteSession_CreditsExactlyTheScore(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	d := h.domain(t, "Mental")
	task := h.task(t, d, "Study proofs")

	out, err := h.sessionSvc.Complete(ctx, task.ID, app.SessionInput{
		ActualDuration:  45,
		Difficulty:      3,
		ResistanceLevel: 8,
		RecallAccuracy:  0.5,
		Reflection:      "induction on the tree height",
	})
	require.NoError(t, err)
	// 45 × 3 × 0.5 = 67.5, ×3 = 202.5 → 203
	assert.Equal(t, 203, out.Points)
	assert.Equal(t, 203, out.WalletBalance)
	assert.Equal(t, 203, h.wallet(t))

	stored, err := h.tasks.GetByID(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, 203, stored.Points)
	assert.Equal(t, 45, stored.ActualDuration)
	assert.Equal(t, domain.DifficultySystemic, stored.Difficulty)
	assert.Equal(t, "induction on the tree height", stored.FeynmanReflection)

	entries, err := h.activity.ListByDay(ctx, testToday)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, 203, entries[0].PointsEarned)
	assert.Equal(t, domain.SourceSession, entries[0].Source)
}

func TestCompleteSession_Stacks(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	d := h.domain(t, "Physical")
	task := h.task(t, d, "Row")
	in := app.SessionInput{ActualDuration: 30, Difficulty: 2, RecallAccuracy: 1.0}

	_, err := h.sessionSvc.Complete(ctx, task.ID, in)
	require.NoError(t, err)
	_, err = h.sessionSvc.Complete(ctx, task.ID, in)
	require.NoError(t, err)

	n, err := h.activity.CountEntries(ctx, testToday)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, 120, h.wallet(t))
}

func TestCompleteSession_ClampsConstrainedInputs(t *testing.T) {
	h := newHarness(t)
	d := h.domain(t, "Physical")
	task := h.task(t, d, "Row")

	out, err := h.sessionSvc.Complete(context.Background(), task.ID, app.SessionInput{
		ActualDuration:  10,
		Difficulty:      9,
		ResistanceLevel: 42,
		RecallAccuracy:  1.0,
	})
	require.NoError(t, err)
	// difficulty → 3, resistance → 10: 10 × 3 × 1 × 3
	assert.Equal(t, 90, out.Points)
	assert.Equal(t, 10, out.Task.ResistanceLevel)
}

func TestCompleteSession_RejectsMalformedInputs(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	d := h.domain(t, "Physical")
	task := h.task(t, d, "Row")

	tests := []struct {
		name string
		in   app.SessionInput
	}{
		{"zero duration", app.SessionInput{ActualDuration: 0, Difficulty: 2, RecallAccuracy: 1.0}},
		{"negative duration", app.SessionInput{ActualDuration: -5, Difficulty: 2, RecallAccuracy: 1.0}},
		{"recall out of set", app.SessionInput{ActualDuration: 30, Difficulty: 2, RecallAccuracy: 0.75}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := h.sessionSvc.Complete(ctx, task.ID, tt.in)
			require.Error(t, err)
			assert.True(t, engine.IsValidation(err))
		})
	}

	n, err := h.activity.CountEntries(ctx, testToday)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestCompleteSession_NotGatedByLock(t *testing.T) {
	h := newHarness(t)
	d := h.domain(t, "Physical")
	task := h.task(t, d, "Row")
	h.lockToday(t)

	_, err := h.sessionSvc.Complete(context.Background(), task.ID, app.SessionInput{ActualDuration: 5, Difficulty: 1, RecallAccuracy: 1.0})
	assert.NoError(t, err)
}

func TestCompleteSession_RollbackOnSettingsWriteFailure(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	d := h.domain(t, "Physical")
	task := h.task(t, d, "Row", testutil.WithPoints(1))
	_, err := h.settingsSvc.Load(ctx)
	require.NoError(t, err)

	// ExecContext #1 = task update, #2 = ledger insert, #3 = settings upsert.
	failUoW := &testutil.FaultyUoW{
		DB:     h.db,
		FailOn: 3,
		Err:    errors.New("injected settings write failure"),
	}
	svc := NewSessionService(failUoW, h.cal)

	_, err = svc.Complete(ctx, task.ID, app.SessionInput{ActualDuration: 30, Difficulty: 2, RecallAccuracy: 1.0})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "injected settings write failure")
	assert.Equal(t, 3, failUoW.Execs())

	stored, err := h.tasks.GetByID(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, stored.Points, "task unchanged after rollback")
	assert.Zero(t, stored.ActualDuration)

	n, err := h.activity.CountEntries(ctx, testToday)
	require.NoError(t, err)
	assert.Zero(t, n, "no ledger entry after rollback")
	assert.Zero(t, h.wallet(t))
}
