package holiday

import (
	"errors"
	"fmt"
	"io"
	"time"

	"gopkg.in/yaml.v3"
)

type file struct {
	Region   string  `yaml:"region"`
	Holidays []entry `yaml:"holidays"`
}

type entry struct {
	Date   string `yaml:"date"`
	Annual string `yaml:"annual"`
	Easter *int   `yaml:"easter"`
	Name   string `yaml:"name"`
}

// Load reads a calendar from YAML. All invalid entries are reported.
func Load(r io.Reader) (*Calendar, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var f file
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode holidays: %w", err)
	}

	c := New(f.Region)
	var errs []error
	for i, e := range f.Holidays {
		if err := c.addEntry(e); err != nil {
			errs = append(errs, fmt.Errorf("holiday %d: %w", i+1, err))
		}
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Calendar) addEntry(e entry) error {
	if e.Name == "" {
		return errors.New("missing name")
	}
	kinds := 0
	for _, set := range []bool{e.Date != "", e.Annual != "", e.Easter != nil} {
		if set {
			kinds++
		}
	}
	if kinds != 1 {
		return fmt.Errorf("%s: need exactly one of date, annual or easter", e.Name)
	}

	switch {
	case e.Date != "":
		t, err := time.Parse(time.DateOnly, e.Date)
		if err != nil {
			return fmt.Errorf("%s: %w", e.Name, err)
		}
		if _, dup := c.fixed[dateFromTime(t)]; dup {
			return fmt.Errorf("%s: duplicate date %s", e.Name, e.Date)
		}
		c.Add(t, e.Name)
	case e.Annual != "":
		// Year 0 is a leap year, so 02-29 is accepted.
		t, err := time.Parse("01-02", e.Annual)
		if err != nil {
			return fmt.Errorf("%s: %w", e.Name, err)
		}
		if _, dup := c.annual[monthDay{t.Month(), t.Day()}]; dup {
			return fmt.Errorf("%s: duplicate annual date %s", e.Name, e.Annual)
		}
		c.AddAnnual(t.Month(), t.Day(), e.Name)
	default:
		if _, dup := c.easter[*e.Easter]; dup {
			return fmt.Errorf("%s: duplicate easter offset %d", e.Name, *e.Easter)
		}
		c.AddEaster(*e.Easter, e.Name)
	}
	return nil
}
