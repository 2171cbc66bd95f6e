package openinghours

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"
)

// Opening and closing comment delimiters. Typographic quotes are accepted
// because they are a common substitute in hand written data.
const (
	openQuotes  = "\"“„”"
	closeQuotes = "\"”“"
)

// fold maps the input to the form the lexer understands: NFC composed,
// full width forms narrowed, dash and tilde variants replaced by '-',
// ideographic punctuation replaced by ASCII and all space runes replaced
// by ' '. Comments are copied verbatim.
func fold(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for len(s) > 0 {
		i := strings.IndexAny(s, openQuotes)
		if i < 0 {
			foldSegment(&b, s)
			break
		}
		foldSegment(&b, s[:i])
		s = s[i:]
		_, n := utf8.DecodeRuneInString(s)
		b.WriteByte('"')
		s = s[n:]
		j := strings.IndexAny(s, closeQuotes)
		if j < 0 {
			// Unterminated, leave it for the lexer to report.
			b.WriteString(s)
			break
		}
		b.WriteString(s[:j])
		b.WriteByte('"')
		_, n = utf8.DecodeRuneInString(s[j:])
		s = s[j+n:]
	}
	return b.String()
}

func foldSegment(b *strings.Builder, s string) {
	s = width.Fold.String(norm.NFC.String(s))
	for _, r := range s {
		b.WriteRune(foldRune(r))
	}
}

func foldRune(r rune) rune {
	switch r {
	case '–', '—', '−', '‐', '‑', '‒', '―', 'ー', '〜', '~':
		return '-'
	case '、':
		return ','
	case '。':
		return '.'
	}
	if unicode.IsSpace(r) {
		return ' '
	}
	return r
}
