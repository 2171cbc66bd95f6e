// Package solar computes the times of sunrise, sunset, dawn and dusk for a
// location, so expressions like "sunrise-sunset" can be evaluated.
//
// The computation follows the NOAA sunrise equation and is accurate to about
// a minute for latitudes outside the polar circles.
package solar

import (
	"math"
	"time"

	"github.com/soniakeys/meeus/v3/julian"

	"github.com/ngrash/go-openinghours/openinghours"
)

// Altitudes of the sun's center at the events, in degrees. Sunrise and sunset
// account for refraction and the solar disc; dawn and dusk are civil twilight.
const (
	horizonAltitude  = -0.833
	twilightAltitude = -6.0
)

const j2000 = 2451545.0

// Location is a place on earth. Lat and Lon are in degrees, north and east
// are positive.
type Location struct {
	Lat float64
	Lon float64
}

// EventTime returns the time of the event on the calendar day of day. It
// returns false for openinghours.EventNone and if the event does not occur,
// as in polar day or night.
func (l Location) EventTime(day time.Time, ev openinghours.Event) (time.Time, bool) {
	var alt float64
	rising := false
	switch ev {
	case openinghours.EventSunrise:
		alt, rising = horizonAltitude, true
	case openinghours.EventSunset:
		alt = horizonAltitude
	case openinghours.EventDawn:
		alt, rising = twilightAltitude, true
	case openinghours.EventDusk:
		alt = twilightAltitude
	default:
		return time.Time{}, false
	}

	transit, omega, ok := l.hourAngle(day, alt)
	if !ok {
		return time.Time{}, false
	}
	jd := transit + omega/360
	if rising {
		jd = transit - omega/360
	}
	return julian.JDToTime(jd).Round(time.Second).In(day.Location()), true
}

// Sunrise returns the time of sunrise on the calendar day of day.
func (l Location) Sunrise(day time.Time) (time.Time, bool) {
	return l.EventTime(day, openinghours.EventSunrise)
}

// Sunset returns the time of sunset on the calendar day of day.
func (l Location) Sunset(day time.Time) (time.Time, bool) {
	return l.EventTime(day, openinghours.EventSunset)
}

// hourAngle returns the Julian day of the solar transit and the hour angle
// in degrees at which the sun's center reaches alt.
func (l Location) hourAngle(day time.Time, alt float64) (transit, omega float64, ok bool) {
	y, m, d := day.Date()
	jd := julian.TimeToJD(time.Date(y, m, d, 0, 0, 0, 0, time.UTC))

	// Days since J2000 at the coming noon
	n := math.Ceil(jd - j2000 + 0.0008)
	// Mean solar noon
	js := n - l.Lon/360

	mean := fixAngle(357.5291 + 0.98560028*js)
	center := 1.9148*sinDeg(mean) + 0.0200*sinDeg(2*mean) + 0.0003*sinDeg(3*mean)
	lambda := fixAngle(mean + center + 180 + 102.9372)
	transit = j2000 + js + 0.0053*sinDeg(mean) - 0.0069*sinDeg(2*lambda)

	sinDecl := sinDeg(lambda) * sinDeg(23.4397)
	cosDecl := math.Cos(math.Asin(sinDecl))
	cosOmega := (sinDeg(alt) - sinDeg(l.Lat)*sinDecl) / (cosDeg(l.Lat) * cosDecl)
	if cosOmega < -1 || cosOmega > 1 {
		return 0, 0, false
	}
	return transit, radToDeg(math.Acos(cosOmega)), true
}

func degToRad(deg float64) float64 { return deg * math.Pi / 180.0 }
func radToDeg(rad float64) float64 { return rad * 180.0 / math.Pi }
func fixAngle(a float64) float64   { return a - 360.0*math.Floor(a/360.0) }
func sinDeg(deg float64) float64   { return math.Sin(degToRad(deg)) }
func cosDeg(deg float64) float64   { return math.Cos(degToRad(deg)) }
