package openinghours

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokError
	tokDrop
	tokNumber
	tokTime
	tokWeekday
	tokMonth
	tokHoliday
	tokState
	tokEvent
	tokWeek
	tokEaster
	tokDay
	tokComment
	tokDash
	tokComma
	tokSemicolon
	tokFallback
	tokColon
	tokSlash
	tokPlus
	tokLBracket
	tokRBracket
	tokLParen
	tokRParen
)

var punctuation = map[rune]tokenKind{
	'-': tokDash,
	',': tokComma,
	'&': tokComma,
	';': tokSemicolon,
	':': tokColon,
	'/': tokSlash,
	'+': tokPlus,
	'[': tokLBracket,
	']': tokRBracket,
	'(': tokLParen,
	')': tokRParen,
}

type token struct {
	kind tokenKind
	// pos is the byte offset in the folded input.
	pos int
	// text is the source text, or the canonical keyword for tokState.
	text string
	// val is the value of a number, weekday, month, holiday or event.
	val    int
	digits int
	hour   int
	minute int
	// err describes a tokError.
	err string
}

const (
	meridiemNone = iota
	meridiemAM
	meridiemPM
)

type lexer struct {
	src  []rune
	offs []int
	pos  int
	toks []token
	// pending is a meridiem written in front of the time (午前, 午後).
	pending int
}

// lex splits folded input into tokens. Lexical problems produce tokError
// tokens so the token stream always covers the whole input.
func lex(s string) []token {
	l := &lexer{src: []rune(s)}
	l.offs = make([]int, len(l.src)+1)
	off := 0
	for i, r := range l.src {
		l.offs[i] = off
		off += utf8.RuneLen(r)
	}
	l.offs[len(l.src)] = off
	for l.pos < len(l.src) {
		l.next()
	}
	l.toks = append(l.toks, token{kind: tokEOF, pos: off})
	return l.toks
}

func (l *lexer) peek(n int) rune {
	if i := l.pos + n; i < len(l.src) {
		return l.src[i]
	}
	return 0
}

func (l *lexer) emit(kind tokenKind, start int) *token {
	l.toks = append(l.toks, token{kind: kind, pos: l.offs[start], text: string(l.src[start:l.pos])})
	return &l.toks[len(l.toks)-1]
}

func (l *lexer) fail(start int, reason string) {
	t := l.emit(tokError, start)
	t.err = reason
}

func (l *lexer) next() {
	start := l.pos
	r := l.src[l.pos]
	if k, ok := punctuation[r]; ok {
		l.pos++
		l.emit(k, start)
		return
	}
	switch {
	case r == ' ':
		l.pos++
	case r == '|':
		l.pos++
		if l.peek(0) != '|' {
			l.fail(start, "single '|', expected '||'")
			return
		}
		l.pos++
		l.emit(tokFallback, start)
	case r == '"':
		l.lexComment()
	case isDigit(r):
		l.lexNumber()
	case unicode.Is(unicode.Han, r):
		l.lexHan()
	case unicode.IsLetter(r):
		l.lexWord()
	default:
		l.pos++
		l.fail(start, "invalid character")
	}
}

func (l *lexer) lexComment() {
	start := l.pos
	l.pos++
	for l.pos < len(l.src) && l.src[l.pos] != '"' {
		l.pos++
	}
	if l.pos == len(l.src) {
		l.fail(start, "unterminated comment")
		return
	}
	l.pos++
	t := l.emit(tokComment, start)
	t.text = string(l.src[start+1 : l.pos-1])
}

func (l *lexer) lexWord() {
	start := l.pos
	for l.pos < len(l.src) && isWordRune(l.src[l.pos]) {
		l.pos++
	}
	w, ok := lookupWord(string(l.src[start:l.pos]))
	if !ok {
		l.fail(start, "unknown word")
		return
	}
	if w.kind == tokDrop {
		return
	}
	t := l.emit(w.kind, start)
	t.val = w.val
	if w.text != "" {
		t.text = w.text
	}
}

func (l *lexer) lexHan() {
	start := l.pos
	r := l.src[l.pos]
	l.pos++
	if wd, ok := hanWeekdays[r]; ok {
		if l.peek(0) == '曜' {
			l.pos++
			if l.peek(0) == '日' {
				l.pos++
			}
		}
		t := l.emit(tokWeekday, start)
		t.val = int(wd)
		return
	}
	switch {
	case r == '午' && l.peek(0) == '前':
		l.pos++
		l.pending = meridiemAM
	case r == '午' && l.peek(0) == '後':
		l.pos++
		l.pending = meridiemPM
	case r == '祝':
		if l.peek(0) == '日' {
			l.pos++
		}
		t := l.emit(tokHoliday, start)
		t.val = int(HolidayPublic)
	default:
		l.fail(start, "unknown word")
	}
}

func (l *lexer) lexNumber() {
	start := l.pos
	n, digits := l.digits()
	if digits > maxDigits {
		l.fail(start, "number too long")
		return
	}
	switch r := l.peek(0); {
	case r == '時':
		l.pos++
		m := 0
		if isDigit(l.peek(0)) {
			var md int
			m, md = l.digits()
			if l.peek(0) == '分' {
				l.pos++
			}
			if md > 2 {
				l.fail(start, "minutes out of range")
				return
			}
		} else if l.peek(0) == '半' {
			l.pos++
			m = 30
		}
		l.emitTime(start, n, m)
		return
	case r == '月' && n >= 1 && n <= 12:
		l.pos++
		t := l.emit(tokMonth, start)
		t.val = n
		return
	case r == '日':
		l.pos++
		t := l.emit(tokNumber, start)
		t.val, t.digits = n, digits
		return
	case (r == 'h' || r == 'H') && (isDigit(l.peek(1)) || !unicode.IsLetter(l.peek(1))):
		l.pos++
		m := 0
		if isDigit(l.peek(0)) {
			var md int
			if m, md = l.digits(); md > 2 {
				l.fail(start, "minutes out of range")
				return
			}
		}
		l.emitTime(start, n, m)
		return
	}
	if m, ok := l.minutes(); ok {
		if r := l.peek(0); (r == 'h' || r == 'H') && !unicode.IsLetter(l.peek(1)) {
			l.pos++
		}
		l.emitTime(start, n, m)
		return
	}
	if mer, end := l.meridiemAt(l.pos); mer != meridiemNone {
		l.pos = end
		l.emitTimeMeridiem(start, n, 0, mer)
		return
	}
	t := l.emit(tokNumber, start)
	t.val, t.digits = n, digits
}

// minutes consumes the ":MM" part of a time. Spaces around the colon are
// accepted unless the digits are followed by another colon, which means the
// number in front was a day ("Jan 3: 22:00").
func (l *lexer) minutes() (int, bool) {
	save := l.pos
	spaced := l.skipSpaces()
	sep := l.peek(0)
	if sep != ':' && (sep != '.' || spaced) {
		l.pos = save
		return 0, false
	}
	l.pos++
	if sep == ':' && l.skipSpaces() {
		spaced = true
	}
	if !isDigit(l.peek(0)) {
		l.pos = save
		return 0, false
	}
	m, digits := l.digits()
	if digits != 2 {
		l.pos = save
		return 0, false
	}
	if sep == '.' {
		// 10.30 is only a time when am or pm follows.
		if mer, _ := l.meridiemAt(l.pos); mer == meridiemNone {
			l.pos = save
			return 0, false
		}
	}
	if spaced {
		end := l.pos
		l.skipSpaces()
		next := l.peek(0)
		l.pos = end
		if next == ':' {
			l.pos = save
			return 0, false
		}
	}
	return m, true
}

// meridiemAt recognizes am, pm, a.m., p.m. and, directly attached to the
// number, a and p. It returns the meridiem and the position after it.
func (l *lexer) meridiemAt(p int) (int, int) {
	attached := true
	for p < len(l.src) && l.src[p] == ' ' {
		p++
		attached = false
	}
	if p >= len(l.src) {
		return meridiemNone, 0
	}
	var mer int
	switch unicode.ToLower(l.src[p]) {
	case 'a':
		mer = meridiemAM
	case 'p':
		mer = meridiemPM
	default:
		return meridiemNone, 0
	}
	p++
	if p < len(l.src) && l.src[p] == '.' {
		p++
	}
	hasM := false
	if p < len(l.src) && unicode.ToLower(l.src[p]) == 'm' {
		hasM = true
		p++
		if p < len(l.src) && l.src[p] == '.' {
			p++
		}
	}
	if !hasM && !attached {
		return meridiemNone, 0
	}
	if p < len(l.src) && unicode.IsLetter(l.src[p]) {
		return meridiemNone, 0
	}
	return mer, p
}

func (l *lexer) emitTime(start, h, m int) {
	mer, end := l.meridiemAt(l.pos)
	if mer != meridiemNone {
		l.pos = end
	} else {
		mer = l.pending
	}
	l.emitTimeMeridiem(start, h, m, mer)
}

func (l *lexer) emitTimeMeridiem(start, h, m, mer int) {
	l.pending = meridiemNone
	if mer != meridiemNone {
		if h < 1 || h > 12 {
			l.fail(start, "hour out of range for 12-hour clock")
			return
		}
		switch {
		case mer == meridiemAM && h == 12:
			h = 0
		case mer == meridiemPM && h != 12:
			h += 12
		}
	}
	t := l.emit(tokTime, start)
	t.hour, t.minute = h, m
}

// maxDigits is the longest number the lexer accepts.
const maxDigits = 9

// digits consumes a run of digits. The value only holds the first maxDigits
// of them.
func (l *lexer) digits() (n, count int) {
	for l.pos < len(l.src) && isDigit(l.src[l.pos]) {
		if count < maxDigits {
			n = n*10 + int(l.src[l.pos]-'0')
		}
		count++
		l.pos++
	}
	return n, count
}

func (l *lexer) skipSpaces() bool {
	skipped := false
	for l.pos < len(l.src) && l.src[l.pos] == ' ' {
		l.pos++
		skipped = true
	}
	return skipped
}

func isDigit(r rune) bool { return r >= '0' && r <= '9' }

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) && !unicode.Is(unicode.Han, r)
}

// canonical returns the text a token is rendered as when an expression
// cannot be parsed.
func (t token) canonical() string {
	switch t.kind {
	case tokNumber:
		return fmt.Sprintf("%0*d", t.digits, t.val)
	case tokTime:
		return fmt.Sprintf("%02d:%02d", t.hour, t.minute)
	case tokWeekday:
		return weekdayAbbrevs[t.val]
	case tokMonth:
		return monthAbbrevs[t.val]
	case tokHoliday:
		return Holiday(t.val).String()
	case tokEvent:
		return Event(t.val).String()
	case tokWeek, tokEaster, tokDay:
		return strings.ToLower(t.text)
	case tokComment:
		return `"` + t.text + `"`
	case tokDash:
		return "-"
	case tokComma:
		return ","
	case tokSemicolon:
		return ";"
	case tokFallback:
		return "||"
	}
	return t.text
}

// renderTokens joins the canonical form of the tokens.
func renderTokens(toks []token) string {
	var b strings.Builder
	prev := tokEOF
	for _, t := range toks {
		if t.kind == tokEOF {
			break
		}
		if b.Len() > 0 && spaceBetween(prev, t.kind) {
			b.WriteByte(' ')
		}
		b.WriteString(t.canonical())
		prev = t.kind
	}
	return b.String()
}

func spaceBetween(prev, cur tokenKind) bool {
	switch cur {
	case tokDash, tokComma, tokSemicolon, tokColon, tokSlash, tokPlus, tokLBracket, tokRBracket, tokRParen:
		return false
	}
	switch prev {
	case tokDash, tokComma, tokSlash, tokLBracket, tokLParen:
		return false
	}
	return true
}
