package openinghours

import (
	"fmt"
	"time"
)

// State is the state of a place during an Interval.
type State int

func (s State) String() string {
	switch s {
	case StateUnknown:
		return "unknown"
	case StateOpen:
		return "open"
	case StateClosed:
		return "closed"
	case StateInvalid:
		return "invalid"
	default:
		return "<UNDEFINED>"
	}
}

const (
	// StateUnknown is used where the expression gives no definite answer.
	StateUnknown State = iota
	// StateOpen means the place is open.
	StateOpen
	// StateClosed means the place is closed.
	StateClosed
	// StateInvalid is returned when no state could be determined.
	StateInvalid
)

// Interval is a time range with a single state.
// A zero Begin or End means the interval is open on that side, so the zero
// Interval covers all time with StateUnknown.
type Interval struct {
	Begin   time.Time
	End     time.Time
	State   State
	Comment string
}

func (i Interval) HasOpenBegin() bool { return i.Begin.IsZero() }
func (i Interval) HasOpenEnd() bool   { return i.End.IsZero() }

// IsValid returns true unless the interval carries StateInvalid.
func (i Interval) IsValid() bool { return i.State != StateInvalid }

// Contains returns true if t lies in [Begin, End).
func (i Interval) Contains(t time.Time) bool {
	if !i.HasOpenBegin() && t.Before(i.Begin) {
		return false
	}
	return i.HasOpenEnd() || t.Before(i.End)
}

// Intersects returns true if both intervals share at least one instant.
func (i Interval) Intersects(o Interval) bool {
	if !i.HasOpenEnd() && !o.HasOpenBegin() && !o.Begin.Before(i.End) {
		return false
	}
	if !o.HasOpenEnd() && !i.HasOpenBegin() && !i.Begin.Before(o.End) {
		return false
	}
	return true
}

// Less orders intervals by their begin; an open begin sorts first.
func (i Interval) Less(o Interval) bool {
	switch {
	case i.HasOpenBegin():
		return !o.HasOpenBegin()
	case o.HasOpenBegin():
		return false
	}
	return i.Begin.Before(o.Begin)
}

func (i Interval) String() string {
	b, e := "-inf", "+inf"
	if !i.HasOpenBegin() {
		b = i.Begin.Format(time.RFC3339)
	}
	if !i.HasOpenEnd() {
		e = i.End.Format(time.RFC3339)
	}
	if i.Comment != "" {
		return fmt.Sprintf("[%s, %s) %v %q", b, e, i.State, i.Comment)
	}
	return fmt.Sprintf("[%s, %s) %v", b, e, i.State)
}
