package openinghours

import (
	"fmt"
	"strings"
)

// Capability is a set of features an expression needs from its evaluation
// environment, or that a caller makes available.
type Capability uint8

// Has returns true if any capability of o is set in c.
func (c Capability) Has(o Capability) bool {
	return c&o != 0
}

// Set returns c with the capabilities of o added.
func (c Capability) Set(o Capability) Capability {
	return c | o
}

func (c Capability) String() string {
	if c == CapabilityNone {
		return "none"
	}
	var names []string
	for _, f := range capabilityNames {
		if c.Has(f.c) {
			names = append(names, f.name)
		}
	}
	return strings.Join(names, "|")
}

const (
	CapabilityNone Capability = 0
	// CapabilityLocation is needed to resolve sunrise, sunset, dawn and dusk.
	CapabilityLocation Capability = 1 << (iota - 1)
	// CapabilityPublicHoliday is needed to resolve PH.
	CapabilityPublicHoliday
	// CapabilitySchoolHoliday marks expressions using SH. School holidays
	// are never resolved, so Validate rejects them whatever is available.
	CapabilitySchoolHoliday
	// CapabilityNotImplemented marks syntax that parses but cannot be evaluated.
	CapabilityNotImplemented
	// CapabilityPointInTime marks time points and repeat intervals.
	CapabilityPointInTime
	// CapabilityInterval marks time ranges.
	CapabilityInterval
)

var capabilityNames = []struct {
	c    Capability
	name string
}{
	{CapabilityLocation, "location"},
	{CapabilityPublicHoliday, "public-holiday"},
	{CapabilitySchoolHoliday, "school-holiday"},
	{CapabilityNotImplemented, "not-implemented"},
	{CapabilityPointInTime, "point-in-time"},
	{CapabilityInterval, "interval"},
}

// Mode is the way a caller wants to use an expression.
type Mode int

const (
	// IntervalMode evaluates opening intervals, e.g. for opening_hours.
	IntervalMode Mode = iota
	// PointInTimeMode evaluates points in time, e.g. for collection_times.
	PointInTimeMode
)

func (m Mode) String() string {
	switch m {
	case IntervalMode:
		return "interval"
	case PointInTimeMode:
		return "point-in-time"
	default:
		return "<UNDEFINED>"
	}
}

// ParseMode returns the Mode named by s.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(s) {
	case "interval", "":
		return IntervalMode, nil
	case "point-in-time", "pointintime":
		return PointInTimeMode, nil
	}
	return 0, fmt.Errorf("unknown mode %q", s)
}

// RequiredCapabilities returns the union of the capabilities all rules need.
func (e *Expression) RequiredCapabilities() Capability {
	var c Capability
	for _, r := range e.rules {
		c |= r.requiredCapabilities()
	}
	return c
}

func (r *Rule) requiredCapabilities() Capability {
	var c Capability
	if r.Years != nil {
		c |= r.Years.requiredCapabilities()
	}
	if r.Weeks != nil {
		c |= r.Weeks.requiredCapabilities()
	}
	if r.Weekdays != nil {
		c |= r.Weekdays.requiredCapabilities()
	}
	if r.Times != nil {
		c |= r.Times.requiredCapabilities()
	} else {
		c |= CapabilityInterval
	}
	return c
}

func (yr *YearRange) requiredCapabilities() Capability {
	var c Capability
	if yr.End == 0 && yr.Interval > 0 {
		c |= CapabilityNotImplemented
	}
	if yr.Next != nil {
		c |= yr.Next.requiredCapabilities()
	}
	return c
}

func (w *Week) requiredCapabilities() Capability {
	var c Capability
	if w.Begin > w.End {
		c |= CapabilityNotImplemented
	}
	if w.Next != nil {
		c |= w.Next.requiredCapabilities()
	}
	return c
}

func (w *WeekdayRange) requiredCapabilities() Capability {
	switch w.Holiday {
	case HolidayPublic:
		return CapabilityPublicHoliday
	case HolidaySchool:
		return CapabilitySchoolHoliday
	}
	var c Capability
	if w.Next != nil {
		c |= w.Next.requiredCapabilities()
	}
	if w.Next2 != nil {
		c |= w.Next2.requiredCapabilities()
	}
	return c
}

func (ts *Timespan) requiredCapabilities() Capability {
	var c Capability
	if ts.Begin.Event != EventNone || (ts.HasEnd && ts.End.Event != EventNone) {
		c |= CapabilityLocation
	}
	switch {
	case ts.Interval > 0:
		c |= CapabilityPointInTime
	case !ts.HasEnd && !ts.OpenEnd:
		c |= CapabilityPointInTime
	case !ts.HasEnd && ts.OpenEnd:
		c |= CapabilityNotImplemented | CapabilityInterval
	default:
		c |= CapabilityInterval
	}
	if ts.Next != nil {
		c |= ts.Next.requiredCapabilities()
	}
	return c
}

// Validate checks whether the expression can be evaluated with the available
// capabilities in the given mode. The errors are advisory: Evaluate degrades
// gracefully for missing capabilities.
//
// Checks run in a fixed order and the first failing one is reported:
// ErrMissingLocation, ErrMissingRegion, ErrIncompatibleMode and
// ErrUnsupportedFeature.
func (e *Expression) Validate(available Capability, mode Mode) error {
	need := e.RequiredCapabilities()
	if need.Has(CapabilityLocation) && !available.Has(CapabilityLocation) {
		return ErrMissingLocation
	}
	if need.Has(CapabilityPublicHoliday) && !available.Has(CapabilityPublicHoliday) {
		return ErrMissingRegion
	}
	switch mode {
	case IntervalMode:
		if need.Has(CapabilityPointInTime) && !need.Has(CapabilityInterval) {
			return fmt.Errorf("%w: %v expression in %v mode", ErrIncompatibleMode, CapabilityPointInTime, mode)
		}
	case PointInTimeMode:
		if need.Has(CapabilityInterval) && !need.Has(CapabilityPointInTime) {
			return fmt.Errorf("%w: %v expression in %v mode", ErrIncompatibleMode, CapabilityInterval, mode)
		}
	}
	if need.Has(CapabilitySchoolHoliday) {
		return fmt.Errorf("%w: school holidays", ErrUnsupportedFeature)
	}
	if need.Has(CapabilityNotImplemented) {
		return ErrUnsupportedFeature
	}
	return nil
}
