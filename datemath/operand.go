/*
operand.go - Loosely typed boundary conversion

PURPOSE:
  Call sites at the edges (HTTP payloads, JSON configuration) accept
  "date-like" and "period-like" values: wrapped values, strings, or raw
  integers. Resolution happens once here, at the boundary, instead of
  type switches scattered through the arithmetic.
*/
package datemath

import "fmt"

// AsDate resolves a date-like value: a CalendarDate, a date string in
// any accepted format, or an integer (compact YYYYMMDD when at least
// 18990101, otherwise a serial value).
func AsDate(v any) (CalendarDate, error) {
	switch t := v.(type) {
	case CalendarDate:
		return t, nil
	case string:
		return Parse(t)
	case int:
		if t >= 18990101 {
			return New(t/10000, t/100%100, t%100)
		}
		return FromSerial(t)
	case float64:
		// JSON numbers arrive as float64
		return AsDate(int(t))
	}
	return CalendarDate{}, fmt.Errorf("%w: cannot interpret %T as a date", ErrIncompatibleOperand, v)
}

// AsPeriod resolves a period-like value: a Period, a period string, or
// an integer number of calendar days.
func AsPeriod(v any) (Period, error) {
	switch t := v.(type) {
	case Period:
		return t, nil
	case string:
		return ParsePeriod(t)
	case int:
		return Period{Days: t}, nil
	case float64:
		return Period{Days: int(t)}, nil
	}
	return Period{}, fmt.Errorf("%w: cannot interpret %T as a period", ErrIncompatibleOperand, v)
}

// IsDate reports whether v can be understood as a CalendarDate. Like
// IsPeriod it never fails on malformed input.
func IsDate(v any) bool {
	_, err := AsDate(v)
	return err == nil
}
