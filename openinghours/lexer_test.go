package openinghours

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestFold(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"Mo–Fr", "Mo-Fr"},
		{"10：00〜19：00", "10:00-19:00"},
		{"月～土　", "月-土 "},
		{"11:30-14:00、16:30", "11:30-14:00,16:30"},
		{"Mo \t10:00", "Mo  10:00"},
		{`Mo "a–b"`, `Mo "a–b"`},
		{"Mo “call us”", `Mo "call us"`},
		{`Mo "open`, `Mo "open`},
	}
	for _, c := range cases {
		if got := fold(c.in); got != c.want {
			t.Errorf("fold(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestLex(t *testing.T) {
	type tok struct {
		Kind   tokenKind
		Pos    int
		Text   string
		Val    int
		Hour   int
		Minute int
	}
	simplify := func(toks []token) []tok {
		var out []tok
		for _, t := range toks {
			out = append(out, tok{t.kind, t.pos, t.text, t.val, t.hour, t.minute})
		}
		return out
	}
	cases := []struct {
		in   string
		want []tok
	}{
		{"Mo-Fr 9am-5:30pm", []tok{
			{Kind: tokWeekday, Pos: 0, Text: "Mo", Val: 1},
			{Kind: tokDash, Pos: 2, Text: "-"},
			{Kind: tokWeekday, Pos: 3, Text: "Fr", Val: 5},
			{Kind: tokTime, Pos: 6, Text: "9am", Hour: 9},
			{Kind: tokDash, Pos: 9, Text: "-"},
			{Kind: tokTime, Pos: 10, Text: "5:30pm", Hour: 17, Minute: 30},
			{Kind: tokEOF, Pos: 16},
		}},
		{"from Monday to Friday", []tok{
			{Kind: tokWeekday, Pos: 5, Text: "Monday", Val: 1},
			{Kind: tokDash, Pos: 12, Text: "to"},
			{Kind: tokWeekday, Pos: 15, Text: "Friday", Val: 5},
			{Kind: tokEOF, Pos: 21},
		}},
		{"Jan 3: 22:00", []tok{
			{Kind: tokMonth, Pos: 0, Text: "Jan", Val: 1},
			{Kind: tokNumber, Pos: 4, Text: "3", Val: 3},
			{Kind: tokColon, Pos: 5, Text: ":"},
			{Kind: tokTime, Pos: 7, Text: "22:00", Hour: 22},
			{Kind: tokEOF, Pos: 12},
		}},
		{"Mo closed", []tok{
			{Kind: tokWeekday, Pos: 0, Text: "Mo", Val: 1},
			{Kind: tokState, Pos: 3, Text: "closed"},
			{Kind: tokEOF, Pos: 9},
		}},
		{"月曜日 午後3時", []tok{
			{Kind: tokWeekday, Pos: 0, Text: "月曜日", Val: 1},
			{Kind: tokTime, Pos: 16, Text: "3時", Hour: 15},
			{Kind: tokEOF, Pos: 20},
		}},
		{"13pm", []tok{
			{Kind: tokError, Pos: 0, Text: "13pm"},
			{Kind: tokEOF, Pos: 4},
		}},
	}
	for _, c := range cases {
		t.Run(c.in, func(t *testing.T) {
			got := simplify(lex(fold(c.in)))
			if diff := cmp.Diff(c.want, got); diff != "" {
				t.Errorf("lex() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
