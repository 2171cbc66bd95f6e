package openinghours

import (
	"sort"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestIntervalContains(t *testing.T) {
	dt := at("2020-11-07 18:00")

	var i Interval
	if !i.Contains(dt) {
		t.Error("zero interval does not contain", dt)
	}
	i.Begin = at("2020-11-01 00:00")
	if !i.Contains(dt) {
		t.Error(i, "does not contain", dt)
	}
	if i.Contains(at("2020-10-01 00:00")) {
		t.Error(i, "contains time before its begin")
	}
	i.End = at("2020-12-01 00:00")
	if !i.Contains(dt) {
		t.Error(i, "does not contain", dt)
	}
	if i.Contains(at("2020-12-31 00:00")) {
		t.Error(i, "contains time after its end")
	}
	if i.Contains(i.End) {
		t.Error(i, "contains its end")
	}
	i.Begin = time.Time{}
	if !i.Contains(dt) {
		t.Error(i, "does not contain", dt)
	}
	if i.Contains(at("2020-12-31 00:00")) {
		t.Error(i, "contains time after its end")
	}
	i.Begin = dt
	if !i.Contains(dt) {
		t.Error(i, "does not contain its begin")
	}
}

func TestIntervalIntersects(t *testing.T) {
	iv := func(b, e string) Interval {
		var i Interval
		if b != "" {
			i.Begin = at(b)
		}
		if e != "" {
			i.End = at(e)
		}
		return i
	}
	cases := []struct {
		a, b Interval
		want bool
	}{
		{iv("2021-01-04 10:00", "2021-01-04 12:00"), iv("2021-01-04 11:00", "2021-01-04 13:00"), true},
		{iv("2021-01-04 10:00", "2021-01-04 12:00"), iv("2021-01-04 12:00", "2021-01-04 13:00"), false},
		{iv("2021-01-04 10:00", "2021-01-04 12:00"), iv("2021-01-04 08:00", "2021-01-04 10:00"), false},
		{iv("2021-01-04 10:00", "2021-01-04 12:00"), iv("2021-01-04 10:30", "2021-01-04 11:00"), true},
		{iv("", "2021-01-04 12:00"), iv("2021-01-04 11:00", ""), true},
		{iv("", "2021-01-04 12:00"), iv("2021-01-04 12:00", ""), false},
		{iv("", ""), iv("2021-01-04 12:00", "2021-01-04 13:00"), true},
	}
	for _, c := range cases {
		if got := c.a.Intersects(c.b); got != c.want {
			t.Errorf("%v.Intersects(%v) = %v, want %v", c.a, c.b, got, c.want)
		}
		if got := c.b.Intersects(c.a); got != c.want {
			t.Errorf("%v.Intersects(%v) = %v, want %v", c.b, c.a, got, c.want)
		}
	}
}

func TestIntervalLess(t *testing.T) {
	ivs := []Interval{
		{Begin: at("2021-01-05 00:00")},
		{Begin: at("2021-01-04 00:00")},
		{},
	}
	sort.Slice(ivs, func(i, j int) bool { return ivs[i].Less(ivs[j]) })
	want := []Interval{
		{},
		{Begin: at("2021-01-04 00:00")},
		{Begin: at("2021-01-05 00:00")},
	}
	if diff := cmp.Diff(want, ivs); diff != "" {
		t.Errorf("sorted mismatch (-want +got):\n%s", diff)
	}
}

func TestIntervalString(t *testing.T) {
	cases := []struct {
		iv   Interval
		want string
	}{
		{Interval{}, "[-inf, +inf) unknown"},
		{Interval{Begin: at("2021-01-04 10:00"), End: at("2021-01-04 12:00"), State: StateOpen}, "[2021-01-04T10:00:00Z, 2021-01-04T12:00:00Z) open"},
		{Interval{Begin: at("2021-01-04 10:00"), State: StateClosed, Comment: "gone"}, `[2021-01-04T10:00:00Z, +inf) closed "gone"`},
	}
	for _, c := range cases {
		if got := c.iv.String(); got != c.want {
			t.Errorf("String() = %q, want %q", got, c.want)
		}
	}
	if (Interval{State: StateInvalid}).IsValid() {
		t.Error("invalid interval reports IsValid")
	}
}
