package core

// DateRange is an inclusive (From, To) pair. An empty Date leaves that side
// unbounded. When both are set, From is never after To.
type DateRange struct {
	From Date
	To   Date
}

// Contains reports whether d lies within the range. Empty d is never contained.
func (r DateRange) Contains(d Date) bool {
	if d.IsEmpty() {
		return false
	}
	if !r.From.IsEmpty() && d.Before(r.From) {
		return false
	}
	if !r.To.IsEmpty() && d.After(r.To) {
		return false
	}
	return true
}

// Valid reports whether the From <= To invariant holds.
func (r DateRange) Valid() bool {
	return r.From.IsEmpty() || r.To.IsEmpty() || !r.From.After(r.To)
}

// RangeState is the selector pair as seen by the date widgets: the current
// range plus the selectable limits each widget must enforce. ToMin bounds the
// "to" picker from below and FromMax bounds the "from" picker from above; empty
// means unbounded.
type RangeState struct {
	Range   DateRange
	ToMin   Date
	FromMax Date
}

// RangeEdge names the boundary a change applies to.
type RangeEdge int

const (
	EdgeFrom RangeEdge = iota
	EdgeTo
)

func (e RangeEdge) String() string {
	if e == EdgeTo {
		return "to"
	}
	return "from"
}

// RangeTransition is the outcome of one boundary change. Forced is set when the
// opposite boundary had to be moved to keep From <= To; that correction is part
// of the same transition and never counts as a separate edit.
type RangeTransition struct {
	State  RangeState
	Edge   RangeEdge
	Forced bool
}

// WithFrom applies a "from changed" event. An empty f clears the boundary.
func (s RangeState) WithFrom(f Date) RangeTransition {
	next := s
	next.Range.From = f
	forced := false
	if !f.IsEmpty() && !next.Range.To.IsEmpty() && next.Range.To.Before(f) {
		next.Range.To = f
		forced = true
	}
	return RangeTransition{State: next.withLimits(), Edge: EdgeFrom, Forced: forced}
}

// WithTo applies a "to changed" event. An empty t clears the boundary.
func (s RangeState) WithTo(t Date) RangeTransition {
	next := s
	next.Range.To = t
	forced := false
	if !t.IsEmpty() && !next.Range.From.IsEmpty() && next.Range.From.After(t) {
		next.Range.From = t
		forced = true
	}
	return RangeTransition{State: next.withLimits(), Edge: EdgeTo, Forced: forced}
}

// Apply dispatches to WithFrom or WithTo.
func (s RangeState) Apply(edge RangeEdge, d Date) RangeTransition {
	if edge == EdgeTo {
		return s.WithTo(d)
	}
	return s.WithFrom(d)
}

// withLimits derives both widget limits from the boundary values, so clearing
// one side relaxes the other back to unbounded.
func (s RangeState) withLimits() RangeState {
	s.ToMin = s.Range.From
	s.FromMax = s.Range.To
	return s
}
