package view

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kassenbuch/internal/core"
)

func TestSessionForcedCorrectionRecomputesOnce(t *testing.T) {
	s := NewSession(agg)
	s.Load(scenarioEntries())
	_, snap := s.SetTo(core.NewDate(2024, 1, 1))
	assert.Zero(t, snap.State.Len())

	before := s.Recomputations()
	tr, snap := s.SetFrom(core.NewDate(2024, 2, 10))

	assert.Equal(t, before+1, s.Recomputations())
	assert.True(t, tr.Forced)
	assert.Equal(t, core.NewDate(2024, 2, 10), snap.Range.Range.To)
	assert.Equal(t, core.NewDate(2024, 2, 10), snap.Range.ToMin)
}

func TestSessionEveryEventRecomputesOnce(t *testing.T) {
	s := NewSession(agg)
	n := s.Recomputations()

	s.Load(scenarioEntries())
	s.SetMode(ModeIncome)
	s.SetFrom(core.NewDate(2024, 1, 1))
	s.SetTo(core.Date{})
	s.Inserted(entry(3, 2024, 1, 9, 10, "Einnahmen"))
	s.LoadFailed(errors.New("disk gone"))

	assert.Equal(t, n+6, s.Recomputations())
}

func TestSessionInsertedFocus(t *testing.T) {
	s := NewSession(agg)
	s.Load(scenarioEntries())

	snap := s.Inserted(entry(3, 2024, 1, 4, -20, "Ausgaben"))
	require.True(t, snap.HasFocus)
	assert.Equal(t, 1, snap.Focus)
	assert.Equal(t, int64(480), snap.State.BalanceCents)

	snap = s.SetMode(ModeIncome)
	assert.False(t, snap.HasFocus)
}

func TestSessionLoadFailedClearsRows(t *testing.T) {
	s := NewSession(agg)
	s.Load(scenarioEntries())

	storeErr := errors.New("select failed")
	snap := s.LoadFailed(storeErr)
	assert.Zero(t, snap.State.Len())
	assert.ErrorIs(t, snap.LoadError, storeErr)

	snap = s.Load(scenarioEntries())
	assert.NoError(t, snap.LoadError)
	assert.Equal(t, 2, snap.State.Len())
}

func TestSessionDoesNotAliasCallerSlice(t *testing.T) {
	entries := scenarioEntries()
	s := NewSession(agg)
	s.Load(entries)
	entries[0].Amount.Cents = 1
	assert.Equal(t, int64(500), s.Snapshot().State.BalanceCents)
}
