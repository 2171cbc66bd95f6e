package main

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap"

	"github.com/ngrash/go-openinghours/openinghours"
)

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd(zap.NewNop().Sugar())
	var out, errOut bytes.Buffer
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestNormalize(t *testing.T) {
	cases := []struct {
		name  string
		stdin string
		args  []string
		want  string
	}{
		{"args", "", []string{"normalize", "mo-fr 9:00-17:00", "sa off"}, "Mo-Fr 09:00-17:00\nSa off\n"},
		{"stdin", "mo-fr 9:00-17:00\n24/7\n", []string{"normalize"}, "Mo-Fr 09:00-17:00\n24/7\n"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := run(t, c.stdin, c.args...)
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(c.want, got); diff != "" {
				t.Errorf("output mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	if _, err := run(t, "", "validate", "sunrise-sunset"); !errors.Is(err, openinghours.ErrMissingLocation) {
		t.Errorf("validate without location: error = %v, want %v", err, openinghours.ErrMissingLocation)
	}
	got, err := run(t, "", "validate", "--lat", "52.52", "--lon", "13.405", "sunrise-sunset")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(got, "ok: sunrise-sunset") {
		t.Errorf("validate output = %q, want ok", got)
	}
	if _, err := run(t, "", "validate", "--mode", "point-in-time", "Mo 10:00-12:00"); !errors.Is(err, openinghours.ErrIncompatibleMode) {
		t.Errorf("validate in point-in-time mode: error = %v, want %v", err, openinghours.ErrIncompatibleMode)
	}
	if _, err := run(t, "", "validate", "Mo 25:00-26:00"); !errors.Is(err, openinghours.ErrSyntax) {
		t.Errorf("validate invalid expression: error = %v, want %v", err, openinghours.ErrSyntax)
	}
}

func TestEval(t *testing.T) {
	got, err := run(t, "", "eval", "--timezone", "UTC", "--from", "2021-01-04", "--days", "1", "Mo 10:00-12:00")
	if err != nil {
		t.Fatal(err)
	}
	want := "[2021-01-04T00:00:00Z, 2021-01-04T10:00:00Z) closed\n" +
		"[2021-01-04T10:00:00Z, 2021-01-04T12:00:00Z) open\n" +
		"[2021-01-04T12:00:00Z, 2021-01-05T00:00:00Z) closed\n"
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("output mismatch (-want +got):\n%s", diff)
	}

	if _, err := run(t, "", "eval", "--from", "yesterday", "Mo 10:00-12:00"); err == nil {
		t.Error("eval with invalid --from: error = nil")
	}
}

func TestDiff(t *testing.T) {
	cases := []struct {
		name string
		a, b string
		want string
	}{
		{"identical", "mo-fr 9:00-17:00", "Mo-Fr 09:00-17:00", "expressions are identical\n"},
		{"equivalent", "10:00-12:00", "Mo-Su 10:00-12:00", "expressions are equivalent\n"},
		{"different", "Mo 10:00-12:00", "Mo 10:00-13:00", "expressions are different: -A +B\n"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := run(t, "", "diff", "--timezone", "UTC", "--from", "2021-01-04", c.a, c.b)
			if err != nil {
				t.Fatal(err)
			}
			if !strings.HasPrefix(got, c.want) {
				t.Errorf("output = %q, want prefix %q", got, c.want)
			}
		})
	}
}
