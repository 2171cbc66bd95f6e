package openinghours

import (
	"strings"
	"time"
)

// word is a dictionary entry: the token a word lexes to.
type word struct {
	kind tokenKind
	val  int
	text string
}

// words maps lower case words, in English and the most common local
// spellings found in hand written data, to tokens. Words lexing to tokDrop
// carry no meaning ("from Monday to Friday").
var words = map[string]word{}

func init() {
	weekdays := map[time.Weekday][]string{
		time.Monday:    {"mo", "mon", "monday", "lundi", "lunes", "segunda", "montag"},
		time.Tuesday:   {"tu", "tue", "tues", "tuesday", "mardi", "martes", "terça", "terca", "dienstag", "di"},
		time.Wednesday: {"we", "wed", "weds", "wednesday", "mercredi", "miércoles", "miercoles", "quarta", "mittwoch", "mi"},
		time.Thursday:  {"th", "thu", "thur", "thurs", "thursday", "jeudi", "jueves", "quinta", "donnerstag", "do"},
		time.Friday:    {"fr", "fri", "friday", "vendredi", "viernes", "sexta", "freitag"},
		time.Saturday:  {"sa", "sat", "saturday", "samedi", "sábado", "sabado", "samstag"},
		time.Sunday:    {"su", "sun", "sunday", "dimanche", "domingo", "sonntag", "so"},
	}
	for wd, names := range weekdays {
		for _, n := range names {
			words[n] = word{kind: tokWeekday, val: int(wd)}
		}
	}

	months := map[time.Month][]string{
		time.January:   {"jan", "january", "janvier", "enero", "januar"},
		time.February:  {"feb", "february", "février", "fevrier", "febrero", "februar"},
		time.March:     {"mar", "march", "mars", "marzo", "märz", "maerz"},
		time.April:     {"apr", "april", "avril", "abril"},
		time.May:       {"may", "mai", "mayo"},
		time.June:      {"jun", "june", "juin", "junio", "juni"},
		time.July:      {"jul", "july", "juillet", "julio", "juli"},
		time.August:    {"aug", "august", "août", "aout", "agosto"},
		time.September: {"sep", "sept", "september", "septembre", "septiembre"},
		time.October:   {"oct", "october", "octobre", "octubre", "okt", "oktober"},
		time.November:  {"nov", "november", "novembre", "noviembre"},
		time.December:  {"dec", "december", "décembre", "decembre", "diciembre", "dez", "dezember"},
	}
	for m, names := range months {
		for _, n := range names {
			words[n] = word{kind: tokMonth, val: int(m)}
		}
	}

	for _, n := range []string{"to", "till", "til", "until", "bis", "à", "a", "au", "hasta"} {
		words[n] = word{kind: tokDash}
	}
	for _, n := range []string{"and", "et", "y", "und", "e"} {
		words[n] = word{kind: tokComma}
	}
	for _, n := range []string{"from", "de", "du", "von", "desde"} {
		words[n] = word{kind: tokDrop}
	}

	for _, n := range []string{"open"} {
		words[n] = word{kind: tokState, text: "open"}
	}
	for _, n := range []string{"closed", "fermé", "ferme", "fermée", "cerrado", "fechado", "geschlossen"} {
		words[n] = word{kind: tokState, text: "closed"}
	}
	words["off"] = word{kind: tokState, text: "off"}
	words["unknown"] = word{kind: tokState, text: "unknown"}

	words["ph"] = word{kind: tokHoliday, val: int(HolidayPublic)}
	words["sh"] = word{kind: tokHoliday, val: int(HolidaySchool)}

	for _, ev := range []Event{EventSunrise, EventSunset, EventDawn, EventDusk} {
		words[ev.String()] = word{kind: tokEvent, val: int(ev)}
	}

	words["week"] = word{kind: tokWeek}
	words["easter"] = word{kind: tokEaster}
	words["day"] = word{kind: tokDay}
	words["days"] = word{kind: tokDay}
}

// lookupWord returns the dictionary entry for a word, matched case-insensitively.
func lookupWord(s string) (word, bool) {
	w, ok := words[strings.ToLower(s)]
	return w, ok
}

// Single ideographs. A weekday may be followed by 曜 or 曜日.
var hanWeekdays = map[rune]time.Weekday{
	'月': time.Monday,
	'火': time.Tuesday,
	'水': time.Wednesday,
	'木': time.Thursday,
	'金': time.Friday,
	'土': time.Saturday,
	'日': time.Sunday,
}

var weekdayAbbrevs = [...]string{"Su", "Mo", "Tu", "We", "Th", "Fr", "Sa"}

var monthAbbrevs = [...]string{"", "Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}
