// Package datemath implements the proleptic Gregorian calendar arithmetic
// needed to match opening hours selectors against calendar days.
package datemath

import "time"

// IsLeapYear determines if the year is a leap year.
func IsLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// DaysInMonth returns the number of days in a given month for a specific year.
func DaysInMonth(year int, month time.Month) int {
	if month == time.February {
		if IsLeapYear(year) {
			return 29
		}
		return 28
	}
	if month == time.April || month == time.June || month == time.September || month == time.November {
		return 30
	}
	return 31
}

// DayOfWeek calculates the day of the week for a given date.
func DayOfWeek(year int, month time.Month, day int) time.Weekday {
	// Zeller's Congruence algorithm adjustment for Gregorian calendar
	m := int(month)
	if m < 3 {
		m += 12
		year -= 1
	}
	k := year % 100
	j := year / 100
	h := (day + ((13 * (m + 1)) / 5) + k + (k / 4) + (j / 4) + (5 * j)) % 7
	// Adjust result to fit Sunday=0, Monday=1, ..., Saturday=6
	return time.Weekday((h + 6) % 7)
}

// NthInMonth returns which occurrence of its weekday the given day is,
// counted from the start of the month (1-5).
func NthInMonth(day int) int {
	return (day-1)/7 + 1
}

// NthFromEnd returns which occurrence of its weekday the given day is,
// counted from the end of the month (1 is the last one).
func NthFromEnd(year int, month time.Month, day int) int {
	return (DaysInMonth(year, month)-day)/7 + 1
}

// LastDay returns the last day of the month.
func LastDay(year int, month time.Month) int {
	return DaysInMonth(year, month)
}

// Easter returns the date of Easter Sunday for the given year using the
// anonymous Gregorian algorithm (Meeus/Jones/Butcher).
func Easter(year int) (time.Month, int) {
	a := year % 19
	b := year / 100
	c := year % 100
	d := b / 4
	e := b % 4
	f := (b + 8) / 25
	g := (b - f + 1) / 3
	h := (19*a + b - d - g + 15) % 30
	i := c / 4
	k := c % 4
	l := (32 + 2*e + 2*i - h - k) % 7
	m := (a + 11*h + 22*l) / 451
	month := (h + l - 7*m + 114) / 31
	day := (h+l-7*m+114)%31 + 1
	return time.Month(month), day
}

// AddDays moves the date by n days, accounting for overflow into neighboring
// months and years. Returns a tuple of (year, month, day).
func AddDays(year int, month time.Month, day, n int) (int, time.Month, int) {
	day += n
	for day > DaysInMonth(year, month) {
		day -= DaysInMonth(year, month)
		month++
		if month > time.December {
			month = time.January
			year++
		}
	}
	for day < 1 {
		month--
		if month < time.January {
			month = time.December
			year--
		}
		day += DaysInMonth(year, month)
	}
	return year, month, day
}

// Compare orders two dates. It returns -1, 0 or +1.
func Compare(y1 int, m1 time.Month, d1 int, y2 int, m2 time.Month, d2 int) int {
	switch {
	case y1 != y2:
		return sign(y1 - y2)
	case m1 != m2:
		return sign(int(m1) - int(m2))
	default:
		return sign(d1 - d2)
	}
}

func sign(n int) int {
	if n < 0 {
		return -1
	}
	if n > 0 {
		return 1
	}
	return 0
}
