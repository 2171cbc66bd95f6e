package openinghours

import (
	"fmt"
	"time"

	"github.com/ngrash/go-openinghours/internal/datemath"
)

type parser struct {
	toks []token
	pos  int
}

// Parse parses an opening hours expression.
//
// The input is folded first (see Normalize), so localized weekday and month
// names, 12-hour times and common separator words are accepted. Failures are
// reported as *SyntaxError.
func Parse(s string) (*Expression, error) {
	p := &parser{toks: lex(fold(s))}
	rules, err := p.parseRules()
	if err != nil {
		return nil, err
	}
	return &Expression{source: s, rules: rules}, nil
}

// MustParse is like Parse but panics if the expression cannot be parsed.
func MustParse(s string) *Expression {
	e, err := Parse(s)
	if err != nil {
		panic(fmt.Sprintf("openinghours: Parse(%q): %v", s, err))
	}
	return e
}

func (p *parser) peek() token { return p.peekN(0) }

func (p *parser) peekN(n int) token {
	if i := p.pos + n; i < len(p.toks) {
		return p.toks[i]
	}
	return p.toks[len(p.toks)-1]
}

func (p *parser) next() token {
	t := p.toks[p.pos]
	if t.kind != tokEOF {
		p.pos++
	}
	return t
}

func (p *parser) accept(k tokenKind) bool {
	if p.peek().kind == k {
		p.pos++
		return true
	}
	return false
}

func (p *parser) errorf(t token, format string, args ...any) error {
	return &SyntaxError{Offset: t.pos, Token: t.text, Err: fmt.Errorf(format, args...)}
}

func (p *parser) unexpected(t token) error {
	switch t.kind {
	case tokError:
		return p.errorf(t, "%s", t.err)
	case tokEOF:
		return p.errorf(t, "unexpected end of input")
	}
	return p.errorf(t, "unexpected token")
}

func (p *parser) isYear(t token) bool {
	return t.kind == tokNumber && t.digits == 4 && t.val >= 1900
}

func (p *parser) startsDateAt(n int) bool {
	t := p.peekN(n)
	if p.isYear(t) {
		t = p.peekN(n + 1)
	}
	return t.kind == tokMonth || t.kind == tokEaster
}

func startsSmallRange(t token) bool {
	return t.kind == tokWeekday || t.kind == tokHoliday
}

func startsTime(t token) bool {
	return t.kind == tokTime || t.kind == tokEvent || t.kind == tokLParen
}

func (p *parser) parseRules() ([]*Rule, error) {
	if p.peek().kind == tokEOF {
		return nil, p.errorf(p.peek(), "empty expression")
	}
	var rules []*Rule
	kind := RuleNormal
	for {
		r, err := p.parseRule(kind)
		if err != nil {
			return nil, err
		}
		rules = append(rules, r)

		switch t := p.peek(); {
		case t.kind == tokEOF:
			return rules, nil
		case t.kind == tokSemicolon:
			kind = RuleNormal
		case t.kind == tokSlash && startsSmallRange(p.peekN(1)):
			// "Mo-Fr 06:00-18:00 / Sa 06:00-13:00"
			kind = RuleNormal
		case t.kind == tokComma:
			kind = RuleAdditional
		case t.kind == tokFallback:
			kind = RuleFallback
		case startsSmallRange(t) && (r.Times != nil || r.Keyword != ""):
			// Missing separator: "Mo 10:00-12:00 Tu 10:00-14:00".
			kind = RuleNormal
			continue
		default:
			return nil, p.unexpected(t)
		}
		p.next()
		if kind != RuleFallback && p.peek().kind == tokEOF {
			return rules, nil
		}
	}
}

func (p *parser) parseRule(kind RuleKind) (*Rule, error) {
	r := &Rule{Kind: kind}
	start := p.peek()
	var err error
	if p.peek().kind == tokNumber && p.peek().val == 24 &&
		p.peekN(1).kind == tokSlash &&
		p.peekN(2).kind == tokNumber && p.peekN(2).val == 7 {
		p.pos += 3
		r.TwentyFourSeven = true
	} else {
		if p.isYear(p.peek()) && !p.startsDateAt(0) {
			if r.Years, err = p.parseYears(); err != nil {
				return nil, err
			}
		}
		if p.startsDateAt(0) {
			if r.Monthdays, err = p.parseMonthdays(); err != nil {
				return nil, err
			}
		}
		if p.peek().kind == tokWeek {
			if r.Weeks, err = p.parseWeeks(); err != nil {
				return nil, err
			}
		}
		if t := p.peek(); t.kind == tokColon {
			if r.Years == nil && r.Monthdays == nil && r.Weeks == nil {
				return nil, p.unexpected(t)
			}
			p.next()
			r.WideRangeColon = true
		}
		if startsSmallRange(p.peek()) {
			if r.Weekdays, err = p.parseWeekdays(); err != nil {
				return nil, err
			}
			if !r.WideRangeColon {
				p.accept(tokColon)
			}
		}
		if startsTime(p.peek()) {
			if r.Times, err = p.parseTimes(); err != nil {
				return nil, err
			}
		}
	}
	if t := p.peek(); t.kind == tokState {
		r.Keyword = t.text
		p.next()
	}
	if t := p.peek(); t.kind == tokComment {
		if t.text == "" {
			return nil, p.errorf(t, "empty comment")
		}
		r.Comment = t.text
		p.next()
	}
	if !r.TwentyFourSeven && !r.hasSelectors() && r.Keyword == "" && r.Comment == "" {
		return nil, p.unexpected(start)
	}
	return r, nil
}

func (p *parser) parseYears() (*YearRange, error) {
	var head, tail *YearRange
	for {
		t := p.next()
		yr := &YearRange{Begin: t.val}
		if p.peek().kind == tokDash && p.isYear(p.peekN(1)) {
			p.next()
			e := p.next()
			if e.val < yr.Begin {
				return nil, p.errorf(e, "year range must increase")
			}
			yr.End = e.val
		}
		if p.peek().kind == tokSlash {
			p.next()
			n := p.next()
			if n.kind != tokNumber || n.val < 1 {
				return nil, p.errorf(n, "invalid year interval")
			}
			yr.Interval = n.val
		} else if p.peek().kind == tokPlus && yr.End == 0 {
			p.next()
			yr.OpenEnd = true
		}
		if head == nil {
			head = yr
		} else {
			tail.Next = yr
		}
		tail = yr
		if p.peek().kind == tokComma && p.isYear(p.peekN(1)) && !p.startsDateAt(1) {
			p.next()
			continue
		}
		break
	}
	if head.Next != nil {
		for yr := head; yr != nil; yr = yr.Next {
			if yr.OpenEnd {
				return nil, p.errorf(p.last(), "open ended year must stand alone")
			}
		}
	}
	return head, nil
}

// last returns the last consumed token, for errors detected after the fact.
func (p *parser) last() token {
	if p.pos > 0 {
		return p.toks[p.pos-1]
	}
	return p.peek()
}

func (p *parser) parseMonthdays() (*MonthdayRange, error) {
	head, err := p.parseMonthdayRange()
	if err != nil {
		return nil, err
	}
	tail := head
	for p.peek().kind == tokComma {
		var md *MonthdayRange
		switch n := p.peekN(1); {
		case n.kind == tokNumber && !p.isYear(n):
			p.next()
			md, err = p.parseShortRange(tail)
		case p.startsDateAt(1):
			p.next()
			md, err = p.parseMonthdayRange()
		default:
			return head, nil
		}
		if err != nil {
			return nil, err
		}
		tail.Next = md
		tail = md
	}
	return head, nil
}

func hasDay(d Date) bool { return d.Kind == DateEaster || d.Day != 0 }

func (p *parser) parseMonthdayRange() (*MonthdayRange, error) {
	begin, err := p.parseDate()
	if err != nil {
		return nil, err
	}
	md := &MonthdayRange{Begin: begin, End: begin}
	if p.peek().kind != tokDash {
		return md, nil
	}
	switch n := p.peekN(1); {
	case n.kind == tokNumber && !p.isYear(n):
		if begin.Kind != DateFixed || begin.Day == 0 {
			return nil, p.errorf(n, "day range needs a start day")
		}
		p.next()
		p.next()
		if n.val <= begin.Day || n.val > datemath.DaysInMonth(2000, begin.Month) {
			return nil, p.errorf(n, "invalid end day")
		}
		md.End = Date{Month: begin.Month, Day: n.val}
	case n.kind == tokMonth || n.kind == tokEaster || p.isYear(n):
		p.next()
		end, err := p.parseDate()
		if err != nil {
			return nil, err
		}
		if end.Year != 0 && begin.Year == 0 {
			return nil, p.errorf(n, "range end has a year but its start has none")
		}
		if hasDay(begin) != hasDay(end) {
			return nil, p.errorf(n, "range ends differ in granularity")
		}
		if end.Year != 0 && begin.Kind == DateFixed && end.Kind == DateFixed &&
			datemath.Compare(end.Year, end.Month, end.Day, begin.Year, begin.Month, begin.Day) < 0 {
			return nil, p.errorf(n, "date range must increase")
		}
		md.End = end
	}
	return md, nil
}

// parseShortRange parses the day list continuation in "Dec 24-26,31".
func (p *parser) parseShortRange(prev *MonthdayRange) (*MonthdayRange, error) {
	t := p.next()
	b, e := prev.Begin, prev.End
	if b.Kind != DateFixed || b.Day == 0 || e.Kind != DateFixed || e.Month != b.Month || (e.Year != 0 && e.Year != b.Year) {
		return nil, p.errorf(t, "day list needs a preceding date in the same month")
	}
	if t.val <= e.Day {
		return nil, p.errorf(t, "days in a list must increase")
	}
	if t.val > datemath.DaysInMonth(2000, b.Month) {
		return nil, p.errorf(t, "day out of range")
	}
	d := Date{Year: b.Year, Month: b.Month, Day: t.val}
	md := &MonthdayRange{Begin: d, End: d}
	if p.peek().kind == tokDash && p.peekN(1).kind == tokNumber && !p.isYear(p.peekN(1)) {
		p.next()
		n := p.next()
		if n.val <= t.val || n.val > datemath.DaysInMonth(2000, b.Month) {
			return nil, p.errorf(n, "invalid end day")
		}
		md.End = Date{Month: b.Month, Day: n.val}
	}
	return md, nil
}

func (p *parser) parseDate() (Date, error) {
	var d Date
	if p.isYear(p.peek()) {
		d.Year = p.next().val
	}
	t := p.next()
	switch t.kind {
	case tokEaster:
		d.Kind = DateEaster
		off, err := p.parseDayOffset()
		if err != nil {
			return d, err
		}
		d.Offset = off
	case tokMonth:
		d.Month = time.Month(t.val)
		if n := p.peek(); n.kind == tokNumber && n.digits <= 2 {
			if n.val < 1 || n.val > datemath.DaysInMonth(2000, d.Month) {
				return d, p.errorf(n, "day out of range")
			}
			p.next()
			d.Day = n.val
		}
	default:
		return d, p.unexpected(t)
	}
	return d, nil
}

// maxDayOffset bounds "+n days" to a year.
const maxDayOffset = 366

// parseDayOffset parses an optional "+2 days" or "-1 day".
func (p *parser) parseDayOffset() (int, error) {
	sign := 1
	switch p.peek().kind {
	case tokPlus:
	case tokDash:
		sign = -1
	default:
		return 0, nil
	}
	if p.peekN(1).kind != tokNumber || p.peekN(2).kind != tokDay {
		return 0, nil
	}
	p.next()
	n := p.next()
	p.next()
	if n.val == 0 {
		return 0, p.errorf(n, "zero day offset")
	}
	if n.val > maxDayOffset {
		return 0, p.errorf(n, "day offset out of range")
	}
	return sign * n.val, nil
}

func (p *parser) parseWeeks() (*Week, error) {
	p.next()
	var head, tail *Week
	for {
		t := p.next()
		if t.kind != tokNumber || t.val < 1 || t.val > 53 {
			return nil, p.errorf(t, "week number out of range")
		}
		w := &Week{Begin: t.val, End: t.val}
		if p.peek().kind == tokDash && p.peekN(1).kind == tokNumber {
			p.next()
			e := p.next()
			if e.val < 1 || e.val > 53 {
				return nil, p.errorf(e, "week number out of range")
			}
			w.End = e.val
		}
		if p.peek().kind == tokSlash && p.peekN(1).kind == tokNumber {
			p.next()
			n := p.next()
			if n.val < 1 {
				return nil, p.errorf(n, "invalid week interval")
			}
			w.Interval = n.val
		}
		if head == nil {
			head = w
		} else {
			tail.Next = w
		}
		tail = w
		if p.peek().kind == tokComma && p.peekN(1).kind == tokNumber {
			p.next()
			continue
		}
		return head, nil
	}
}

func (p *parser) parseWeekdays() (*WeekdayRange, error) {
	if p.peek().kind == tokHoliday {
		head, tail, err := p.parseHolidaySeq()
		if err != nil {
			return nil, err
		}
		switch {
		case p.peek().kind == tokComma && p.peekN(1).kind == tokWeekday:
			p.next()
			if tail.Next, _, err = p.parseWeekdaySeq(); err != nil {
				return nil, err
			}
		case p.peek().kind == tokWeekday:
			// "PH Mo-Fr": a holiday that also falls on one of the days.
			if head.Next2, _, err = p.parseWeekdaySeq(); err != nil {
				return nil, err
			}
		}
		return head, nil
	}
	head, tail, err := p.parseWeekdaySeq()
	if err != nil {
		return nil, err
	}
	if p.peek().kind == tokComma && p.peekN(1).kind == tokHoliday {
		p.next()
		if tail.Next, _, err = p.parseHolidaySeq(); err != nil {
			return nil, err
		}
	}
	return head, nil
}

func (p *parser) parseHolidaySeq() (head, tail *WeekdayRange, err error) {
	for {
		t := p.next()
		h := &WeekdayRange{Holiday: Holiday(t.val)}
		if h.Offset, err = p.parseDayOffset(); err != nil {
			return nil, nil, err
		}
		if head == nil {
			head = h
		} else {
			tail.Next = h
		}
		tail = h
		if p.peek().kind == tokComma && p.peekN(1).kind == tokHoliday {
			p.next()
			continue
		}
		return head, tail, nil
	}
}

func (p *parser) parseWeekdaySeq() (head, tail *WeekdayRange, err error) {
	for {
		t := p.next()
		wd := time.Weekday(t.val)
		w := &WeekdayRange{BeginDay: wd, EndDay: wd}
		switch p.peek().kind {
		case tokDash:
			if p.peekN(1).kind == tokWeekday {
				p.next()
				w.EndDay = time.Weekday(p.next().val)
			}
		case tokLBracket:
			p.next()
			if w.Nth, err = p.parseNth(); err != nil {
				return nil, nil, err
			}
			if w.Offset, err = p.parseDayOffset(); err != nil {
				return nil, nil, err
			}
		}
		if head == nil {
			head = w
		} else {
			tail.Next = w
		}
		tail = w
		if p.peek().kind == tokComma && p.peekN(1).kind == tokWeekday {
			p.next()
			continue
		}
		return head, tail, nil
	}
}

// parseNth parses the occurrence list of Sa[1,3] after the opening bracket.
func (p *parser) parseNth() (NthMask, error) {
	var mask NthMask
	prev := 0
	for {
		neg := p.accept(tokDash)
		t := p.next()
		if t.kind != tokNumber {
			return 0, p.unexpected(t)
		}
		n := t.val
		if neg {
			n = -n
		}
		if n == 0 || n < -5 || n > 5 {
			return 0, p.errorf(t, "occurrence out of range")
		}
		end := n
		if !neg && p.peek().kind == tokDash && p.peekN(1).kind == tokNumber {
			p.next()
			e := p.next()
			if e.val < n || e.val > 5 {
				return 0, p.errorf(e, "occurrence range must increase")
			}
			end = e.val
		}
		if !neg {
			if n <= prev {
				return 0, p.errorf(t, "occurrences must increase")
			}
			prev = end
		}
		for i := n; i <= end; i++ {
			mask = mask.Set(i)
		}
		if p.accept(tokRBracket) {
			return mask, nil
		}
		if !p.accept(tokComma) {
			return 0, p.unexpected(p.peek())
		}
	}
}

func (p *parser) parseTimes() (*Timespan, error) {
	head, err := p.parseTimespan()
	if err != nil {
		return nil, err
	}
	tail := head
	for {
		switch t := p.peek(); {
		case t.kind == tokComma && startsTime(p.peekN(1)):
			p.next()
		case t.kind == tokSlash && p.peekN(1).kind == tokTime && p.peekN(2).kind == tokDash:
			// "09:00-12:00/13:00-19:00"
			p.next()
		case startsTime(t):
		default:
			return head, nil
		}
		ts, err := p.parseTimespan()
		if err != nil {
			return nil, err
		}
		tail.Next = ts
		tail = ts
	}
}

func (p *parser) parseTimespan() (*Timespan, error) {
	begin, err := p.parseExtTime()
	if err != nil {
		return nil, err
	}
	ts := &Timespan{Begin: begin}
	if p.peek().kind != tokDash || !startsTime(p.peekN(1)) {
		ts.OpenEnd = p.accept(tokPlus)
		return ts, nil
	}
	p.next()
	end, err := p.parseExtTime()
	if err != nil {
		return nil, err
	}
	if end.Event == EventNone && end.Hour == 0 && end.Minute == 0 {
		end.Hour = 24
	}
	ts.End, ts.HasEnd = end, true
	ts.OpenEnd = p.accept(tokPlus)
	if p.peek().kind == tokSlash {
		switch n := p.peekN(1); {
		case n.kind == tokNumber:
			p.next()
			p.next()
			if n.val < 1 {
				return nil, p.errorf(n, "invalid repeat interval")
			}
			ts.Interval = n.val
		case n.kind == tokTime && p.peekN(2).kind != tokDash:
			p.next()
			p.next()
			if n.hour*60+n.minute < 1 || n.minute > 59 {
				return nil, p.errorf(n, "invalid repeat interval")
			}
			ts.Interval = n.hour*60 + n.minute
		}
	}
	return ts, nil
}

func (p *parser) parseExtTime() (Time, error) {
	t := p.next()
	switch t.kind {
	case tokTime:
		if t.hour > 24 || t.minute > 59 || (t.hour == 24 && t.minute != 0) {
			return Time{}, p.errorf(t, "time out of range")
		}
		return Time{Hour: t.hour, Minute: t.minute}, nil
	case tokEvent:
		return Time{Event: Event(t.val)}, nil
	case tokLParen:
		ev := p.next()
		if ev.kind != tokEvent {
			return Time{}, p.unexpected(ev)
		}
		sign := 1
		switch s := p.next(); s.kind {
		case tokPlus:
		case tokDash:
			sign = -1
		default:
			return Time{}, p.unexpected(s)
		}
		off := p.next()
		if off.kind != tokTime || off.minute > 59 {
			return Time{}, p.unexpected(off)
		}
		if t := p.next(); t.kind != tokRParen {
			return Time{}, p.unexpected(t)
		}
		return Time{Event: Event(ev.val), Offset: sign * (off.hour*60 + off.minute)}, nil
	}
	return Time{}, p.unexpected(t)
}
