package openinghours

import (
	"fmt"
	"strings"
)

func (t Time) String() string {
	if t.Event == EventNone {
		return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
	}
	if t.Offset == 0 {
		return t.Event.String()
	}
	sign, off := '+', t.Offset
	if off < 0 {
		sign, off = '-', -off
	}
	return fmt.Sprintf("(%v%c%02d:%02d)", t.Event, sign, off/60, off%60)
}

func (ts *Timespan) String() string {
	var b strings.Builder
	for s := ts; s != nil; s = s.Next {
		if s != ts {
			b.WriteByte(',')
		}
		b.WriteString(s.Begin.String())
		if s.HasEnd {
			b.WriteByte('-')
			b.WriteString(s.End.String())
		}
		if s.OpenEnd {
			b.WriteByte('+')
		}
		switch {
		case s.Interval == 0:
		case s.Interval < 60:
			fmt.Fprintf(&b, "/%02d", s.Interval)
		default:
			fmt.Fprintf(&b, "/%02d:%02d", s.Interval/60, s.Interval%60)
		}
	}
	return b.String()
}

func dayOffset(n int) string {
	switch n {
	case 0:
		return ""
	case 1, -1:
		return fmt.Sprintf(" %+d day", n)
	}
	return fmt.Sprintf(" %+d days", n)
}

func (m NthMask) String() string {
	var parts []string
	for n := 1; n <= 5; n++ {
		if !m.Has(n) {
			continue
		}
		end := n
		for end < 5 && m.Has(end+1) {
			end++
		}
		if end == n {
			parts = append(parts, fmt.Sprint(n))
		} else {
			parts = append(parts, fmt.Sprintf("%d-%d", n, end))
		}
		n = end
	}
	for n := -1; n >= -5; n-- {
		if m.Has(n) {
			parts = append(parts, fmt.Sprint(n))
		}
	}
	return strings.Join(parts, ",")
}

func (w *WeekdayRange) term() string {
	var s string
	switch {
	case w.Holiday != HolidayNone:
		s = w.Holiday.String()
	case w.Nth != 0:
		s = fmt.Sprintf("%s[%v]", weekdayAbbrevs[w.BeginDay], w.Nth)
	case w.BeginDay != w.EndDay:
		s = weekdayAbbrevs[w.BeginDay] + "-" + weekdayAbbrevs[w.EndDay]
	default:
		s = weekdayAbbrevs[w.BeginDay]
	}
	return s + dayOffset(w.Offset)
}

func (w *WeekdayRange) String() string {
	var b strings.Builder
	for t := w; t != nil; t = t.Next {
		if t != w {
			b.WriteByte(',')
		}
		b.WriteString(t.term())
	}
	if w.Next2 != nil {
		b.WriteByte(' ')
		b.WriteString(w.Next2.String())
	}
	return b.String()
}

func (d Date) String() string {
	var parts []string
	if d.Year != 0 {
		parts = append(parts, fmt.Sprint(d.Year))
	}
	if d.Kind == DateEaster {
		parts = append(parts, "easter"+dayOffset(d.Offset))
	} else {
		parts = append(parts, monthAbbrevs[d.Month])
		if d.Day != 0 {
			parts = append(parts, fmt.Sprintf("%02d", d.Day))
		}
	}
	return strings.Join(parts, " ")
}

func (md *MonthdayRange) term() string {
	s := md.Begin.String()
	if md.End == md.Begin {
		return s
	}
	b, e := md.Begin, md.End
	if b.Kind == DateFixed && e.Kind == DateFixed && e.Year == 0 && e.Month == b.Month && e.Day != 0 {
		return fmt.Sprintf("%s-%02d", s, e.Day)
	}
	return s + "-" + e.String()
}

func (md *MonthdayRange) String() string {
	var parts []string
	for r := md; r != nil; r = r.Next {
		parts = append(parts, r.term())
	}
	return strings.Join(parts, ",")
}

func (yr *YearRange) String() string {
	var parts []string
	for r := yr; r != nil; r = r.Next {
		s := fmt.Sprint(r.Begin)
		if r.End != 0 {
			s += fmt.Sprintf("-%d", r.End)
		}
		if r.Interval != 0 {
			s += fmt.Sprintf("/%d", r.Interval)
		}
		if r.OpenEnd {
			s += "+"
		}
		parts = append(parts, s)
	}
	return strings.Join(parts, ",")
}

func (w *Week) String() string {
	var parts []string
	for r := w; r != nil; r = r.Next {
		s := fmt.Sprintf("%02d", r.Begin)
		if r.End != r.Begin {
			s += fmt.Sprintf("-%02d", r.End)
		}
		if r.Interval != 0 {
			s += fmt.Sprintf("/%d", r.Interval)
		}
		parts = append(parts, s)
	}
	return "week " + strings.Join(parts, ",")
}

// String returns the canonical form of the rule, without the separator
// that joins it to the rule before.
func (r *Rule) String() string {
	var parts []string
	if r.TwentyFourSeven {
		parts = append(parts, "24/7")
	}
	var wide []string
	if r.Years != nil {
		wide = append(wide, r.Years.String())
	}
	if r.Monthdays != nil {
		wide = append(wide, r.Monthdays.String())
	}
	if r.Weeks != nil {
		wide = append(wide, r.Weeks.String())
	}
	if len(wide) > 0 {
		s := strings.Join(wide, " ")
		if r.WideRangeColon {
			s += ":"
		}
		parts = append(parts, s)
	}
	if r.Weekdays != nil {
		parts = append(parts, r.Weekdays.String())
	}
	if r.Times != nil {
		parts = append(parts, r.Times.String())
	}
	if r.Keyword != "" {
		parts = append(parts, r.Keyword)
	}
	if r.Comment != "" {
		parts = append(parts, `"`+r.Comment+`"`)
	}
	return strings.Join(parts, " ")
}

var ruleSeparators = map[RuleKind]string{
	RuleNormal:     "; ",
	RuleAdditional: ", ",
	RuleFallback:   " || ",
}
