// Package holiday provides public holiday calendars for evaluating PH
// selectors of opening hours expressions.
//
// A Calendar is a set of dates, each with a name. Dates are either one-off
// (2021-05-13), annual (12-25) or relative to Easter Sunday (-2 for Good
// Friday). Calendars are usually loaded from a YAML file:
//
//	region: DE-BE
//	holidays:
//	  - annual: 01-01
//	    name: New Year's Day
//	  - easter: -2
//	    name: Good Friday
//	  - date: 2020-05-08
//	    name: Liberation Day
package holiday

import (
	"sync"
	"time"

	"github.com/ngrash/go-openinghours/internal/datemath"
)

// Holiday is a single holiday on a calendar day.
type Holiday struct {
	Date time.Time // midnight UTC
	Name string
}

type date struct {
	year  int
	month time.Month
	day   int
}

func dateFromTime(t time.Time) date {
	y, m, d := t.Date()
	return date{y, m, d}
}

type monthDay struct {
	month time.Month
	day   int
}

// Calendar holds the holidays of a region.
// All methods are safe for concurrent use.
type Calendar struct {
	Region string

	mu     sync.RWMutex
	fixed  map[date]string
	annual map[monthDay]string
	easter map[int]string
}

// New returns an empty calendar for the region.
func New(region string) *Calendar {
	return &Calendar{
		Region: region,
		fixed:  make(map[date]string),
		annual: make(map[monthDay]string),
		easter: make(map[int]string),
	}
}

// Add adds a one-off holiday on the calendar day of t.
func (c *Calendar) Add(t time.Time, name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.fixed[dateFromTime(t)] = name
}

// AddAnnual adds a holiday that falls on the same day every year.
func (c *Calendar) AddAnnual(month time.Month, day int, name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.annual[monthDay{month, day}] = name
}

// AddEaster adds a holiday the given number of days after Easter Sunday.
func (c *Calendar) AddEaster(offset int, name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.easter[offset] = name
}

func (c *Calendar) lookup(d date) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if name, ok := c.fixed[d]; ok {
		return name, true
	}
	if name, ok := c.annual[monthDay{d.month, d.day}]; ok {
		return name, true
	}
	if len(c.easter) > 0 {
		m, day := datemath.Easter(d.year)
		for off, name := range c.easter {
			y, em, ed := datemath.AddDays(d.year, m, day, off)
			if y == d.year && em == d.month && ed == d.day {
				return name, true
			}
		}
	}
	return "", false
}

// IsPublicHoliday reports whether the calendar day of t is a holiday.
// The day is taken in t's location.
func (c *Calendar) IsPublicHoliday(t time.Time) bool {
	_, ok := c.lookup(dateFromTime(t))
	return ok
}

// HolidayName returns the name of the holiday on the calendar day of t.
func (c *Calendar) HolidayName(t time.Time) (string, bool) {
	return c.lookup(dateFromTime(t))
}

// HolidaysInYear returns the holidays of a year sorted by date.
func (c *Calendar) HolidaysInYear(year int) []Holiday {
	var hs []Holiday
	for d := (date{year, time.January, 1}); d.year == year; {
		if name, ok := c.lookup(d); ok {
			hs = append(hs, Holiday{Date: time.Date(d.year, d.month, d.day, 0, 0, 0, 0, time.UTC), Name: name})
		}
		y, m, dd := datemath.AddDays(d.year, d.month, d.day, 1)
		d = date{y, m, dd}
	}
	return hs
}
