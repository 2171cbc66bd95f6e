// Package openinghours parses, validates and evaluates OpenStreetMap
// opening_hours expressions such as "Mo-Fr 08:00-12:00,13:00-17:30; PH off".
//
// Parse accepts common variations found in hand written data (localized day
// and month names, 12-hour clocks, missing separators) and Normalize renders
// an expression in its canonical form. An Expression reports the
// capabilities it needs (see Capability) and is evaluated into a sequence of
// Intervals for a time range.
//
// Expressions are immutable and safe for concurrent use.
package openinghours

import "strings"

// Expression is a parsed opening hours expression.
type Expression struct {
	source string
	rules  []*Rule
}

// Source returns the text the expression was parsed from.
func (e *Expression) Source() string {
	return e.source
}

// Rules returns the rules of the expression in order.
// The rules must not be modified.
func (e *Expression) Rules() []*Rule {
	return e.rules
}

// Normalized returns the canonical form of the expression.
func (e *Expression) Normalized() string {
	var b strings.Builder
	for i, r := range e.rules {
		if i > 0 {
			b.WriteString(ruleSeparators[r.Kind])
		}
		b.WriteString(r.String())
	}
	return b.String()
}

func (e *Expression) String() string {
	return e.Normalized()
}

// Normalize returns the canonical form of s if it parses. Otherwise it
// returns the folded token stream of s, so normalizing is still idempotent.
func Normalize(s string) string {
	folded := fold(s)
	p := &parser{toks: lex(folded)}
	rules, err := p.parseRules()
	if err != nil {
		return renderTokens(p.toks)
	}
	return (&Expression{rules: rules}).Normalized()
}
