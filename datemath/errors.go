/*
errors.go - Centralized error types for the date engine

PURPOSE:
  All error kinds of the core in one place for consistency and
  discoverability. Callers match with errors.Is; structured errors
  carry the offending input.

ERROR CATEGORIES:
  1. Value errors      - invalid dates and malformed periods
  2. Dispatch errors   - unknown convention keys, unusable operands
  3. Computation errors - incomparable periods, runaway stepping

USAGE:
  if errors.Is(err, datemath.ErrInvalidDate) { ... }

SEE ALSO:
  - serial.go: returns InvalidDateError
  - period.go: returns PeriodParseError
  - adjust.go, daycount.go: return UnknownConventionError
*/
package datemath

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrInvalidDate is returned for out-of-range year/month/day triples
	// and for serial values that have no calendar image (the fictitious
	// Feb 29, 1900).
	ErrInvalidDate = errors.New("invalid date")

	// ErrInvalidPeriod is returned for grammar violations, mixed-sign
	// calendar components and business-day/calendar combinations.
	ErrInvalidPeriod = errors.New("invalid period")

	// ErrUnknownConvention is returned when an adjustment or day-count
	// key does not resolve.
	ErrUnknownConvention = errors.New("unknown convention")

	// ErrIncompatibleOperand is returned when a loosely typed argument
	// cannot be interpreted as a date or period.
	ErrIncompatibleOperand = errors.New("incompatible operand")

	// ErrIncomparable is returned when a calendar period is compared
	// against a business-day period and day bounds do not separate them.
	ErrIncomparable = errors.New("periods are incomparable")

	// ErrStepLimit is returned when business-day stepping or adjustment
	// exceeds the iteration cap, which indicates a degenerate calendar.
	ErrStepLimit = errors.New("step limit exceeded")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// InvalidDateError reports the rejected (year, month, day) triple.
type InvalidDateError struct {
	Year  int
	Month int
	Day   int
}

func (e *InvalidDateError) Error() string {
	return fmt.Sprintf("invalid date %d-%02d-%02d", e.Year, e.Month, e.Day)
}

func (e *InvalidDateError) Unwrap() error {
	return ErrInvalidDate
}

// PeriodParseError reports the input that failed the period grammar.
type PeriodParseError struct {
	Input  string
	Reason string
}

func (e *PeriodParseError) Error() string {
	return fmt.Sprintf("cannot parse period %q: %s", e.Input, e.Reason)
}

func (e *PeriodParseError) Unwrap() error {
	return ErrInvalidPeriod
}

// UnknownConventionError reports an unresolvable convention key.
type UnknownConventionError struct {
	Kind string // "adjustment" or "day count"
	Key  string
}

func (e *UnknownConventionError) Error() string {
	return fmt.Sprintf("unknown %s convention %q", e.Kind, e.Key)
}

func (e *UnknownConventionError) Unwrap() error {
	return ErrUnknownConvention
}

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsClientError returns true if the error is due to invalid caller input.
func IsClientError(err error) bool {
	return errors.Is(err, ErrInvalidDate) ||
		errors.Is(err, ErrInvalidPeriod) ||
		errors.Is(err, ErrUnknownConvention) ||
		errors.Is(err, ErrIncompatibleOperand)
}
