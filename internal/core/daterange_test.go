package core

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithFromForcesTo(t *testing.T) {
	s := RangeState{}.WithTo(NewDate(2024, 1, 1)).State

	tr := s.WithFrom(NewDate(2024, 2, 10))

	assert.True(t, tr.Forced)
	assert.Equal(t, EdgeFrom, tr.Edge)
	assert.Equal(t, NewDate(2024, 2, 10), tr.State.Range.From)
	assert.Equal(t, NewDate(2024, 2, 10), tr.State.Range.To)
	assert.Equal(t, NewDate(2024, 2, 10), tr.State.ToMin)
	assert.Equal(t, NewDate(2024, 2, 10), tr.State.FromMax)
}

func TestWithToForcesFrom(t *testing.T) {
	s := RangeState{}.WithFrom(NewDate(2024, 3, 1)).State

	tr := s.WithTo(NewDate(2024, 2, 1))

	assert.True(t, tr.Forced)
	assert.Equal(t, EdgeTo, tr.Edge)
	assert.Equal(t, NewDate(2024, 2, 1), tr.State.Range.From)
	assert.Equal(t, NewDate(2024, 2, 1), tr.State.Range.To)
}

func TestNoForceWhenOrdered(t *testing.T) {
	s := RangeState{}.WithFrom(NewDate(2024, 1, 1)).State
	tr := s.WithTo(NewDate(2024, 1, 1))
	assert.False(t, tr.Forced)
	tr = tr.State.WithTo(NewDate(2024, 6, 1))
	assert.False(t, tr.Forced)
	assert.Equal(t, NewDate(2024, 1, 1), tr.State.ToMin)
	assert.Equal(t, NewDate(2024, 6, 1), tr.State.FromMax)
}

func TestClearingRelaxesLimit(t *testing.T) {
	s := RangeState{}.WithFrom(NewDate(2024, 1, 1)).State
	s = s.WithTo(NewDate(2024, 2, 1)).State
	require.False(t, s.ToMin.IsEmpty())

	s = s.WithFrom(Date{}).State
	assert.True(t, s.Range.From.IsEmpty())
	assert.True(t, s.ToMin.IsEmpty())
	assert.Equal(t, NewDate(2024, 2, 1), s.Range.To)

	s = s.WithTo(Date{}).State
	assert.True(t, s.FromMax.IsEmpty())
	assert.Equal(t, DateRange{}, s.Range)
}

func TestRangeInvariantHoldsAfterEveryEvent(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	s := RangeState{}
	for i := 0; i < 2000; i++ {
		var d Date
		if rng.Intn(5) > 0 {
			d = NewDate(2024, 1+rng.Intn(12), 1+rng.Intn(28))
		}
		edge := EdgeFrom
		if rng.Intn(2) == 0 {
			edge = EdgeTo
		}
		tr := s.Apply(edge, d)
		s = tr.State
		require.True(t, s.Range.Valid(), "event %d (%s=%s) broke the range: %+v", i, edge, d.ISO(), s.Range)
		require.Equal(t, s.Range.From, s.ToMin)
		require.Equal(t, s.Range.To, s.FromMax)
	}
}

func TestDateRangeContains(t *testing.T) {
	r := DateRange{From: NewDate(2024, 1, 4), To: NewDate(2024, 1, 6)}
	assert.False(t, r.Contains(NewDate(2024, 1, 3)))
	assert.True(t, r.Contains(NewDate(2024, 1, 4)))
	assert.True(t, r.Contains(NewDate(2024, 1, 6)))
	assert.False(t, r.Contains(NewDate(2024, 1, 7)))
	assert.False(t, r.Contains(Date{}))
	assert.True(t, DateRange{}.Contains(NewDate(1900, 1, 1)))
}
