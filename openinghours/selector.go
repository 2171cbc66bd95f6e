package openinghours

import "time"

// Event represents a solar event a time of day can be relative to.
type Event int

func (e Event) String() string {
	switch e {
	case EventNone:
		return ""
	case EventSunrise:
		return "sunrise"
	case EventSunset:
		return "sunset"
	case EventDawn:
		return "dawn"
	case EventDusk:
		return "dusk"
	default:
		return "<UNDEFINED>"
	}
}

const (
	// EventNone means the time is a plain clock time.
	EventNone Event = iota
	EventSunrise
	EventSunset
	EventDawn
	EventDusk
)

// Time represents a time of day, either as clock time or relative to a solar event.
// When Event is not EventNone, Hour and Minute are unused and Offset gives the
// signed distance in minutes from the event.
type Time struct {
	Hour   int
	Minute int
	Event  Event
	Offset int
}

// Timespan represents a time range within a day, e.g. 08:00-12:00.
// A Timespan without an end is a point in time (e.g. 10:00 or 10:00+).
type Timespan struct {
	Begin Time
	End   Time
	// HasEnd is false for a point in time.
	HasEnd bool
	// OpenEnd is set by a trailing '+'.
	OpenEnd bool
	// Interval is the repeat interval in minutes given by a '/' suffix, or 0.
	Interval int
	Next     *Timespan
}

// Holiday identifies a holiday selector.
type Holiday int

func (h Holiday) String() string {
	switch h {
	case HolidayNone:
		return ""
	case HolidayPublic:
		return "PH"
	case HolidaySchool:
		return "SH"
	default:
		return "<UNDEFINED>"
	}
}

const (
	HolidayNone Holiday = iota
	HolidayPublic
	HolidaySchool
)

// NthMask is a bitmask of the occurrences selected by a weekday[n] selector.
// Bits 0-4 are the 1st to 5th occurrence in the month, bits 5-9 the 1st to
// 5th occurrence counted from the end of the month.
type NthMask uint16

// Has returns true if the n-th occurrence is selected. Negative n count from
// the end of the month.
func (m NthMask) Has(n int) bool {
	b, ok := nthBit(n)
	return ok && m&b != 0
}

// Set selects the n-th occurrence.
func (m NthMask) Set(n int) NthMask {
	b, _ := nthBit(n)
	return m | b
}

func nthBit(n int) (NthMask, bool) {
	switch {
	case n >= 1 && n <= 5:
		return 1 << (n - 1), true
	case n <= -1 && n >= -5:
		return 1 << (4 - n), true
	}
	return 0, false
}

// WeekdayRange represents one term of a weekday selector, either a weekday
// range like Mo-Fr, a weekday with occurrences like Sa[1] or a holiday like PH.
type WeekdayRange struct {
	BeginDay time.Weekday
	EndDay   time.Weekday
	Nth      NthMask
	// Offset moves the selected day by the given number of days.
	Offset  int
	Holiday Holiday
	// Next is the alternative term (comma separated); either term matching is enough.
	Next *WeekdayRange
	// Next2 is the continuation term of a holiday sequence followed by a
	// weekday sequence (e.g. PH Mo-Fr); both must match.
	Next2 *WeekdayRange
}

// DateKind is the kind of a Date.
type DateKind int

const (
	DateFixed DateKind = iota
	DateEaster
)

// Date represents one end of a monthday range.
// Year 0 means any year. Month 0 is only valid for DateEaster.
// Day 0 means the whole month.
type Date struct {
	Kind  DateKind
	Year  int
	Month time.Month
	Day   int
	// Offset is a signed number of days, only used for DateEaster.
	Offset int
}

// MonthdayRange represents a date or month range like Dec 24-26 or Jul-Aug.
// A single date or month has End equal to Begin.
type MonthdayRange struct {
	Begin Date
	End   Date
	Next  *MonthdayRange
}

// YearRange represents a year selector like 2020, 2020-2022/2 or 2020+.
// End is 0 for a single year.
type YearRange struct {
	Begin    int
	End      int
	OpenEnd  bool
	Interval int
	Next     *YearRange
}

// Week represents a week selector term like week 01-53/2.
type Week struct {
	Begin    int
	End      int
	Interval int
	Next     *Week
}

// RuleKind describes how a rule is combined with the rules before it.
type RuleKind int

func (k RuleKind) String() string {
	switch k {
	case RuleNormal:
		return "Normal"
	case RuleAdditional:
		return "Additional"
	case RuleFallback:
		return "Fallback"
	default:
		return "<UNDEFINED>"
	}
}

const (
	// RuleNormal rules are introduced by ';' and replace earlier rules for the days they match.
	RuleNormal RuleKind = iota
	// RuleAdditional rules are introduced by ',' and overlay the rules before them.
	RuleAdditional
	// RuleFallback rules are introduced by '||' and only apply where the state is not open.
	RuleFallback
)

// Rule is a single rule of an opening hours expression.
type Rule struct {
	Years     *YearRange
	Monthdays *MonthdayRange
	Weeks     *Week
	Weekdays  *WeekdayRange
	Times     *Timespan

	// TwentyFourSeven is set if the selector was spelled 24/7.
	TwentyFourSeven bool
	// WideRangeColon is set if a ':' separated the year, monthday or week
	// selectors from the rest of the rule.
	WideRangeColon bool

	// Keyword is the state keyword as written (open, closed, off, unknown),
	// or empty if the state is implicit.
	Keyword string
	Comment string
	Kind    RuleKind
}

// State returns the state the rule sets for the time it selects.
// Without a state keyword, a rule with a comment is unknown and any other rule is open.
func (r *Rule) State() State {
	switch r.Keyword {
	case "open":
		return StateOpen
	case "closed", "off":
		return StateClosed
	case "unknown":
		return StateUnknown
	}
	if r.Comment != "" {
		return StateUnknown
	}
	return StateOpen
}

// hasSelectors reports whether the rule restricts the days or times it applies to.
func (r *Rule) hasSelectors() bool {
	return r.Years != nil || r.Monthdays != nil || r.Weeks != nil || r.Weekdays != nil || r.Times != nil
}
