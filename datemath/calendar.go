/*
calendar.go - Holiday calendar capability and business-day test

PURPOSE:
  The engine never owns holiday data; it consults an injected
  HolidayCalendar through a single membership predicate. Implementations
  live outside the core (see the calendars package) and may populate
  themselves lazily, so a query must be treated as one critical section.
*/
package datemath

import "time"

// HolidayCalendar is the external collaborator contract: a set-like
// membership test on the (year, month, day) identity of a date.
//
// Implementations that extend themselves lazily on first sight of a
// year must synchronize Contains internally.
type HolidayCalendar interface {
	Contains(d CalendarDate) bool
}

// IsBusinessDay reports whether d falls neither on a weekend nor in the
// given holiday calendar. A nil calendar means weekends only.
func IsBusinessDay(d CalendarDate, cal HolidayCalendar) bool {
	switch d.Weekday() {
	case time.Saturday, time.Sunday:
		return false
	}
	return cal == nil || !cal.Contains(d)
}
