package openinghours

import (
	"errors"
	"testing"
)

func TestRequiredCapabilities(t *testing.T) {
	cases := []struct {
		expr string
		want Capability
	}{
		{"24/7", CapabilityInterval},
		{"Mo-Fr 08:00-12:00", CapabilityInterval},
		{"10:00", CapabilityPointInTime},
		{"10:00-16:00/90", CapabilityPointInTime},
		{"10:00-16:00, 18:00", CapabilityInterval | CapabilityPointInTime},
		{"sunrise-sunset", CapabilityLocation | CapabilityInterval},
		{"PH off", CapabilityPublicHoliday | CapabilityInterval},
		{"SH off", CapabilitySchoolHoliday | CapabilityInterval},
		{"PH,SH", CapabilityPublicHoliday | CapabilityInterval},
		{"Mo,PH 10:00-12:00", CapabilityPublicHoliday | CapabilityInterval},
		{"week 45-13", CapabilityNotImplemented | CapabilityInterval},
		{"Su 10:00+", CapabilityNotImplemented | CapabilityInterval},
		{"Su 10:00-12:00+", CapabilityInterval},
		{"2020/2", CapabilityNotImplemented | CapabilityInterval},
	}
	for _, c := range cases {
		if got := MustParse(c.expr).RequiredCapabilities(); got != c.want {
			t.Errorf("%q: RequiredCapabilities() = %v, want %v", c.expr, got, c.want)
		}
	}
}

// TestRequiredCapabilitiesUnion checks that adding a rule never removes a
// capability.
func TestRequiredCapabilitiesUnion(t *testing.T) {
	rules := []string{"Mo 10:00-12:00", "sunrise-sunset", "PH off", "10:00", "week 45-13", "SH"}
	for _, a := range rules {
		for _, b := range rules {
			ca, cb := MustParse(a).RequiredCapabilities(), MustParse(b).RequiredCapabilities()
			both := MustParse(a + "; " + b).RequiredCapabilities()
			if both != ca|cb {
				t.Errorf("%q; %q: RequiredCapabilities() = %v, want %v", a, b, both, ca|cb)
			}
		}
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		expr      string
		available Capability
		mode      Mode
		want      error
	}{
		{"sunrise-sunset", CapabilityNone, IntervalMode, ErrMissingLocation},
		{"sunrise-sunset", CapabilityLocation, IntervalMode, nil},
		{"PH off", CapabilityNone, IntervalMode, ErrMissingRegion},
		{"PH off", CapabilityPublicHoliday, IntervalMode, nil},
		{"SH off", CapabilityNone, IntervalMode, ErrUnsupportedFeature},
		{"SH off", CapabilitySchoolHoliday, IntervalMode, ErrUnsupportedFeature},
		{"SH,PH off", CapabilitySchoolHoliday | CapabilityPublicHoliday, IntervalMode, ErrUnsupportedFeature},
		{"10:00-16:00/90", CapabilityNone, IntervalMode, ErrIncompatibleMode},
		{"10:00-16:00/1:30", CapabilityNone, IntervalMode, ErrIncompatibleMode},
		{"10:00-16:00/90", CapabilityNone, PointInTimeMode, nil},
		{"week 45-13", CapabilityNone, IntervalMode, ErrUnsupportedFeature},
		{"Su 10:00+", CapabilityNone, IntervalMode, ErrUnsupportedFeature},
		{"10:00", CapabilityNone, IntervalMode, ErrIncompatibleMode},
		{"Dec 08:00", CapabilityNone, IntervalMode, ErrIncompatibleMode},
		{"Mo 08:00-12:00", CapabilityNone, IntervalMode, nil},
		{"Mo 08:00-12:00", CapabilityNone, PointInTimeMode, ErrIncompatibleMode},
		{"Mo 08:00-12:00, Tu 18:00", CapabilityNone, PointInTimeMode, nil},

		// Checks run in order, location first.
		{"sunrise-sunset; PH off", CapabilityNone, IntervalMode, ErrMissingLocation},
		{"PH 10:00", CapabilityNone, IntervalMode, ErrMissingRegion},
		{"SH 10:00", CapabilityNone, IntervalMode, ErrIncompatibleMode},
	}
	for _, c := range cases {
		err := MustParse(c.expr).Validate(c.available, c.mode)
		if c.want == nil {
			if err != nil {
				t.Errorf("%q in %v mode: Validate() = %v, want nil", c.expr, c.mode, err)
			}
			continue
		}
		if !errors.Is(err, c.want) {
			t.Errorf("%q in %v mode: Validate() = %v, want %v", c.expr, c.mode, err, c.want)
		}
	}
}

func TestParseMode(t *testing.T) {
	for s, want := range map[string]Mode{
		"":              IntervalMode,
		"interval":      IntervalMode,
		"Point-In-Time": PointInTimeMode,
	} {
		got, err := ParseMode(s)
		if err != nil || got != want {
			t.Errorf("ParseMode(%q) = %v, %v, want %v", s, got, err, want)
		}
	}
	if _, err := ParseMode("sometimes"); err == nil {
		t.Error("ParseMode(\"sometimes\") error = nil")
	}
}

func TestCapabilityString(t *testing.T) {
	if got, want := (CapabilityLocation | CapabilityInterval).String(), "location|interval"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
	if got := CapabilityNone.String(); got != "none" {
		t.Errorf("String() = %q, want %q", got, "none")
	}
}
