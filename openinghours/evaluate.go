package openinghours

import (
	"time"

	"github.com/ngrash/go-openinghours/internal/datemath"
)

// HolidayOracle tells whether a day is a public holiday.
type HolidayOracle interface {
	IsPublicHoliday(day time.Time) bool
}

// HolidayFunc adapts a function to a HolidayOracle.
type HolidayFunc func(day time.Time) bool

func (f HolidayFunc) IsPublicHoliday(day time.Time) bool { return f(day) }

// SolarResolver returns the time of a solar event on the given day.
// It returns false if the event does not occur on that day, e.g. in polar regions.
type SolarResolver interface {
	EventTime(day time.Time, ev Event) (time.Time, bool)
}

// SolarFunc adapts a function to a SolarResolver.
type SolarFunc func(day time.Time, ev Event) (time.Time, bool)

func (f SolarFunc) EventTime(day time.Time, ev Event) (time.Time, bool) { return f(day, ev) }

// Evaluate computes the states of the expression for the range [from, to).
// Days are the calendar days of from's location.
//
// The returned intervals are ordered, do not overlap, cover the whole range
// and adjacent intervals differ in state or comment. A zero from or to leaves
// the range open on that side; this is only possible for expressions that do
// not depend on the date or time of day, others return ErrUnboundedRange.
//
// A nil holidays never matches PH and a nil sun skips time spans relative
// to solar events. School holidays never match.
func (e *Expression) Evaluate(from, to time.Time, holidays HolidayOracle, sun SolarResolver) ([]Interval, error) {
	if from.IsZero() || to.IsZero() {
		if !e.timeInvariant() {
			return nil, ErrUnboundedRange
		}
		state, comment := e.invariantState()
		return []Interval{{Begin: from, End: to, State: state, Comment: comment}}, nil
	}
	if !from.Before(to) {
		return nil, nil
	}
	ev := &evaluator{rules: e.rules, loc: from.Location(), holidays: holidays, sun: sun}
	to = to.In(ev.loc)

	y, m, d := from.Date()
	cur := date{y, m, d}
	_, live := ev.match(cur.add(-1))
	var out []Interval
	for ; cur.start(ev.loc).Before(to); cur = cur.add(1) {
		var segs timeline
		segs, live = ev.day(cur, live)
		for _, s := range segs {
			b, en := later(s.begin, from), earlier(s.end, to)
			if !b.Before(en) {
				continue
			}
			out = appendInterval(out, Interval{Begin: b, End: en, State: s.state, Comment: s.comment})
		}
	}
	return out, nil
}

// IntervalAt returns the interval containing t. The interval is clipped to
// the calendar day of t, except for expressions that do not depend on time
// at all which return an interval without bounds.
func (e *Expression) IntervalAt(t time.Time, holidays HolidayOracle, sun SolarResolver) (Interval, error) {
	if e.timeInvariant() {
		state, comment := e.invariantState()
		return Interval{State: state, Comment: comment}, nil
	}
	y, m, d := t.Date()
	day := date{y, m, d}
	ivs, err := e.Evaluate(day.start(t.Location()), day.add(1).start(t.Location()), holidays, sun)
	if err != nil {
		return Interval{}, err
	}
	for _, iv := range ivs {
		if iv.Contains(t) {
			return iv, nil
		}
	}
	return Interval{State: StateInvalid}, nil
}

func appendInterval(out []Interval, iv Interval) []Interval {
	if n := len(out); n > 0 {
		last := &out[n-1]
		if last.End.Equal(iv.Begin) && last.State == iv.State && last.Comment == iv.Comment {
			last.End = iv.End
			return out
		}
	}
	return append(out, iv)
}

func (e *Expression) timeInvariant() bool {
	for _, r := range e.rules {
		if r.hasSelectors() {
			return false
		}
	}
	return true
}

func (e *Expression) invariantState() (State, string) {
	state, comment := StateClosed, ""
	for _, r := range e.rules {
		if r.Kind == RuleFallback && state == StateOpen {
			continue
		}
		state, comment = r.State(), r.Comment
	}
	return state, comment
}

type evaluator struct {
	rules    []*Rule
	loc      *time.Location
	holidays HolidayOracle
	sun      SolarResolver
}

// match reports which rules select the day and which of those stay in
// effect, i.e. are not replaced by a later rule that resets the day.
func (ev *evaluator) match(d date) (matched, live []bool) {
	matched = make([]bool, len(ev.rules))
	live = make([]bool, len(ev.rules))
	for i, r := range ev.rules {
		matched[i] = ev.matches(r, d)
	}
	for i := range ev.rules {
		if !matched[i] {
			continue
		}
		live[i] = true
		for j := i + 1; j < len(ev.rules); j++ {
			if matched[j] && ev.rules[j].resetsDay() {
				live[i] = false
				break
			}
		}
	}
	return matched, live
}

// resetsDay returns true if the rule replaces everything earlier rules set
// for a day it matches.
func (r *Rule) resetsDay() bool {
	return r.Kind == RuleNormal && (r.State() != StateClosed || r.Times == nil)
}

// day computes the timeline of a single day. prevLive are the rules in
// effect the day before, whose spans may continue past midnight.
func (ev *evaluator) day(d date, prevLive []bool) (timeline, []bool) {
	start, end := d.start(ev.loc), d.add(1).start(ev.loc)
	closed := timeline{{begin: start, end: end, state: StateClosed}}
	tl := closed
	prev := d.add(-1)
	matched, live := ev.match(d)

	// Spill-over from the previous day painted so far. It survives a reset
	// but the resetting rule's own spans are painted over it.
	var carried []segment
	for i, r := range ev.rules {
		var keep func(segment) bool
		if r.Kind == RuleFallback {
			keep = isOpen
		}
		if prevLive[i] && r.Times != nil {
			spill := ev.spans(r, prev)
			tl = tl.paintAll(spill, keep)
			if r.Kind != RuleFallback {
				carried = append(carried, spill...)
			}
		}
		if !matched[i] {
			continue
		}
		spans := ev.spans(r, d)
		if r.resetsDay() {
			tl = closed.paintAll(carried, nil).paintAll(spans, nil)
			continue
		}
		tl = tl.paintAll(spans, keep)
	}
	return tl.merge(), live
}

func isOpen(s segment) bool { return s.state == StateOpen }

func (ev *evaluator) matches(r *Rule, d date) bool {
	if r.Years != nil && !r.Years.matches(d.year) {
		return false
	}
	if r.Monthdays != nil && !r.Monthdays.matches(d) {
		return false
	}
	if r.Weeks != nil && !r.Weeks.matches(d) {
		return false
	}
	if r.Weekdays != nil && !r.Weekdays.matches(d, ev) {
		return false
	}
	return true
}

// spans returns the time ranges a rule selects on day d. Spans may end on
// the following day.
func (ev *evaluator) spans(r *Rule, d date) []segment {
	state, comment := r.State(), r.Comment
	if r.Times == nil {
		return []segment{{begin: d.start(ev.loc), end: d.add(1).start(ev.loc), state: state, comment: comment}}
	}
	var out []segment
	for ts := r.Times; ts != nil; ts = ts.Next {
		b, ok := ev.resolve(ts.Begin, d)
		if !ok {
			continue
		}
		if !ts.HasEnd {
			// Points in time have no extent, unless open ended.
			if ts.OpenEnd {
				out = append(out, segment{begin: b, end: ev.nextMidnight(b), state: StateUnknown, comment: comment})
			}
			continue
		}
		e, ok := ev.resolve(ts.End, d)
		if !ok {
			continue
		}
		if !e.After(b) {
			if e, ok = ev.resolve(ts.End, d.add(1)); !ok {
				continue
			}
		}
		out = append(out, segment{begin: b, end: e, state: state, comment: comment})
		if ts.OpenEnd && !isMidnight(e.In(ev.loc)) {
			out = append(out, segment{begin: e, end: ev.nextMidnight(e), state: StateUnknown, comment: comment})
		}
	}
	return out
}

func (ev *evaluator) resolve(t Time, d date) (time.Time, bool) {
	if t.Event == EventNone {
		return time.Date(d.year, d.month, d.day, t.Hour, t.Minute, 0, 0, ev.loc), true
	}
	if ev.sun == nil {
		return time.Time{}, false
	}
	et, ok := ev.sun.EventTime(d.start(ev.loc), t.Event)
	if !ok {
		return time.Time{}, false
	}
	return et.In(ev.loc).Add(time.Duration(t.Offset) * time.Minute), true
}

func (ev *evaluator) nextMidnight(t time.Time) time.Time {
	y, m, d := t.In(ev.loc).Date()
	return time.Date(y, m, d+1, 0, 0, 0, 0, ev.loc)
}

func isMidnight(t time.Time) bool {
	h, m, s := t.Clock()
	return h == 0 && m == 0 && s == 0 && t.Nanosecond() == 0
}

func (yr *YearRange) matches(y int) bool {
	for r := yr; r != nil; r = r.Next {
		if y < r.Begin {
			continue
		}
		switch {
		case r.End != 0 && y > r.End:
			continue
		case r.End == 0 && !r.OpenEnd && r.Interval == 0 && y != r.Begin:
			continue
		}
		if r.Interval > 0 && (y-r.Begin)%r.Interval != 0 {
			continue
		}
		return true
	}
	return false
}

// matches uses ISO 8601 week numbers. Wrapping ranges never match.
func (w *Week) matches(d date) bool {
	_, week := time.Date(d.year, d.month, d.day, 12, 0, 0, 0, time.UTC).ISOWeek()
	for r := w; r != nil; r = r.Next {
		if r.Begin > r.End || week < r.Begin || week > r.End {
			continue
		}
		if r.Interval > 0 && (week-r.Begin)%r.Interval != 0 {
			continue
		}
		return true
	}
	return false
}

func (md *MonthdayRange) matches(d date) bool {
	for r := md; r != nil; r = r.Next {
		if r.contains(d) {
			return true
		}
	}
	return false
}

func (md *MonthdayRange) contains(d date) bool {
	if by := md.Begin.Year; by != 0 {
		b := md.Begin.resolve(by, false)
		ey := md.End.Year
		if ey == 0 {
			ey = by
		}
		e := md.End.resolve(ey, true)
		if md.End.Year == 0 && e.before(b) {
			// "2020 Dec 24-Jan 06" ends in the following year.
			e = md.End.resolve(by+1, true)
		}
		return !d.before(b) && !e.before(d)
	}
	b, e := md.Begin.resolve(d.year, false), md.End.resolve(d.year, true)
	if !e.before(b) {
		return !d.before(b) && !e.before(d)
	}
	// Wraps over the end of the year, e.g. Dec 24-Jan 06.
	return !d.before(b) || !e.before(d)
}

// resolve returns the first (or with end set, the last) day the date
// denotes in the given year. Feb 29 is kept in common years, it sorts
// between Feb 28 and Mar 1 and matches no day.
func (dt Date) resolve(year int, end bool) date {
	if dt.Kind == DateEaster {
		m, d := datemath.Easter(year)
		return date{year, m, d}.add(dt.Offset)
	}
	day := dt.Day
	if day == 0 {
		day = 1
		if end {
			day = datemath.LastDay(year, dt.Month)
		}
	}
	return date{year, dt.Month, day}
}

func (w *WeekdayRange) matches(d date, ev *evaluator) bool {
	ok := false
	for t := w; t != nil && !ok; t = t.Next {
		ok = t.matchesTerm(d, ev)
	}
	if ok && w.Next2 != nil {
		ok = w.Next2.matches(d, ev)
	}
	return ok
}

func (w *WeekdayRange) matchesTerm(d date, ev *evaluator) bool {
	ref := d.add(-w.Offset)
	switch w.Holiday {
	case HolidayPublic:
		return ev.holidays != nil && ev.holidays.IsPublicHoliday(ref.start(ev.loc))
	case HolidaySchool:
		return false
	}
	if !weekdayIn(datemath.DayOfWeek(ref.year, ref.month, ref.day), w.BeginDay, w.EndDay) {
		return false
	}
	if w.Nth == 0 {
		return true
	}
	return w.Nth.Has(datemath.NthInMonth(ref.day)) || w.Nth.Has(-datemath.NthFromEnd(ref.year, ref.month, ref.day))
}

// weekdayIn reports whether wd lies in the range begin-end of a week
// starting on Monday. Ranges like Fr-Mo wrap over the weekend.
func weekdayIn(wd, begin, end time.Weekday) bool {
	i, b, e := mondayIndex(wd), mondayIndex(begin), mondayIndex(end)
	if b <= e {
		return b <= i && i <= e
	}
	return i >= b || i <= e
}

func mondayIndex(wd time.Weekday) int { return (int(wd) + 6) % 7 }

type date struct {
	year  int
	month time.Month
	day   int
}

func (d date) add(n int) date {
	y, m, dd := datemath.AddDays(d.year, d.month, d.day, n)
	return date{y, m, dd}
}

func (d date) before(o date) bool {
	return datemath.Compare(d.year, d.month, d.day, o.year, o.month, o.day) < 0
}

func (d date) start(loc *time.Location) time.Time {
	return time.Date(d.year, d.month, d.day, 0, 0, 0, 0, loc)
}

type segment struct {
	begin, end time.Time
	state      State
	comment    string
}

// timeline is a sorted sequence of adjacent segments.
type timeline []segment

// paint sets s over the timeline. Segments for which keep returns true
// are left untouched.
func (tl timeline) paint(s segment, keep func(segment) bool) timeline {
	if !s.begin.Before(s.end) {
		return tl
	}
	out := make(timeline, 0, len(tl)+2)
	for _, cur := range tl {
		if !cur.end.After(s.begin) || !cur.begin.Before(s.end) || (keep != nil && keep(cur)) {
			out = append(out, cur)
			continue
		}
		if cur.begin.Before(s.begin) {
			out = append(out, segment{begin: cur.begin, end: s.begin, state: cur.state, comment: cur.comment})
		}
		out = append(out, segment{begin: later(cur.begin, s.begin), end: earlier(cur.end, s.end), state: s.state, comment: s.comment})
		if cur.end.After(s.end) {
			out = append(out, segment{begin: s.end, end: cur.end, state: cur.state, comment: cur.comment})
		}
	}
	return out
}

func (tl timeline) paintAll(spans []segment, keep func(segment) bool) timeline {
	for _, s := range spans {
		tl = tl.paint(s, keep)
	}
	return tl
}

func (tl timeline) merge() timeline {
	var out timeline
	for _, s := range tl {
		if n := len(out); n > 0 && out[n-1].state == s.state && out[n-1].comment == s.comment {
			out[n-1].end = s.end
			continue
		}
		out = append(out, s)
	}
	return out
}

func later(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}
	return b
}

func earlier(a, b time.Time) time.Time {
	if a.Before(b) {
		return a
	}
	return b
}
