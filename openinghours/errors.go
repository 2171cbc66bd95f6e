package openinghours

import (
	"errors"
	"fmt"
)

var (
	// ErrSyntax is wrapped by every SyntaxError.
	ErrSyntax = errors.New("syntax error")
	// ErrMissingLocation reports solar events without CapabilityLocation.
	ErrMissingLocation = errors.New("expression needs a location")
	// ErrMissingRegion reports PH without CapabilityPublicHoliday.
	ErrMissingRegion = errors.New("expression needs a holiday region")
	// ErrUnsupportedFeature reports SH and constructs that are parsed but
	// not evaluated.
	ErrUnsupportedFeature = errors.New("expression uses an unsupported feature")
	// ErrIncompatibleMode reports time points in interval mode and the
	// reverse.
	ErrIncompatibleMode = errors.New("expression does not fit the requested mode")
	// ErrUnboundedRange is returned by Evaluate when a zero bound is given
	// for an expression that depends on the date or time.
	ErrUnboundedRange = errors.New("unbounded range for time dependent expression")
)

// SyntaxError describes where parsing an expression failed.
// Offset is a byte offset into the folded input, which equals the original
// input for plain ASCII text.
type SyntaxError struct {
	Offset int
	Token  string
	Err    error
}

func (e *SyntaxError) Error() string {
	if e.Token == "" {
		return fmt.Sprintf("offset %d: %v", e.Offset, e.Err)
	}
	return fmt.Sprintf("offset %d: %q: %v", e.Offset, e.Token, e.Err)
}

func (e *SyntaxError) Unwrap() []error {
	return []error{ErrSyntax, e.Err}
}
