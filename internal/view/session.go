package view

import (
	"sync"

	"kassenbuch/internal/core"
)

// Session owns the filter inputs and the latest ViewState for one viewer.
// Every event applies its change and recomputes exactly once before the next
// event is processed.
type Session struct {
	mu       sync.Mutex
	agg      Aggregator
	entries  []core.Entry
	rng      core.RangeState
	mode     Mode
	follower TailFollower
	state    ViewState
	loadErr  error
	count    uint64
}

// NewSession starts with an empty entry set, an unbounded range and ModeAll.
func NewSession(agg Aggregator) *Session {
	s := &Session{agg: agg, mode: ModeAll}
	s.recompute()
	return s
}

// Snapshot is a consistent copy of the session for rendering.
type Snapshot struct {
	State     ViewState
	Range     core.RangeState
	Focus     int
	HasFocus  bool
	LoadError error
}

func (s *Session) recompute() {
	s.state = s.agg.Recompute(s.entries, s.rng.Range, s.mode)
	s.count++
}

func (s *Session) snapshot() Snapshot {
	i, ok := s.follower.Index(s.state)
	return Snapshot{State: s.state, Range: s.rng, Focus: i, HasFocus: ok, LoadError: s.loadErr}
}

// Load replaces the entry set with a fresh store read.
func (s *Session) Load(entries []core.Entry) Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append([]core.Entry(nil), entries...)
	s.loadErr = nil
	s.recompute()
	return s.snapshot()
}

// LoadFailed records a store failure. The view falls back to an empty entry
// set instead of showing stale rows.
func (s *Session) LoadFailed(err error) Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = nil
	s.loadErr = err
	s.follower.Reset()
	s.recompute()
	return s.snapshot()
}

// Inserted adds a stored entry and pins the follower to it.
func (s *Session) Inserted(e core.Entry) Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, e)
	s.follower.Inserted(e.ID)
	s.recompute()
	return s.snapshot()
}

// SetRange applies one boundary change. A forced correction of the opposite
// boundary is part of the same event.
func (s *Session) SetRange(edge core.RangeEdge, d core.Date) (core.RangeTransition, Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	tr := s.rng.Apply(edge, d)
	s.rng = tr.State
	s.recompute()
	return tr, s.snapshot()
}

// SetFrom is SetRange(core.EdgeFrom, d).
func (s *Session) SetFrom(d core.Date) (core.RangeTransition, Snapshot) {
	return s.SetRange(core.EdgeFrom, d)
}

// SetTo is SetRange(core.EdgeTo, d).
func (s *Session) SetTo(d core.Date) (core.RangeTransition, Snapshot) {
	return s.SetRange(core.EdgeTo, d)
}

// SetMode switches the category mode.
func (s *Session) SetMode(m Mode) Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mode = m.normalized()
	s.recompute()
	return s.snapshot()
}

// Snapshot returns the current state without recomputing.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

// Recomputations counts the recomputations performed so far.
func (s *Session) Recomputations() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.count
}
