/*
date.go - The CalendarDate value and its arithmetic

PURPOSE:
  CalendarDate wraps a validated proleptic Gregorian (year, month, day)
  triple with the serial accessor and the arithmetic the conventions and
  schedule grid are built on: day/month/year shifts, business-day
  stepping and calendar-style date differencing.

ORDERING SUBTLETY:
  AddYMD applies years, months, days in that order, except when the
  start date is Feb 29: then month overflow is folded into years and
  months are applied before years, so a year shift cannot reintroduce
  Feb 29 into a non-leap year. The (d + p) - d round trip is therefore
  not exact for every chain crossing Feb 29; DiffInYMD guarantees
  re-addability of its own result instead.

EQUALITY:
  Defined purely on the triple. The optional preference tags (default
  adjustment, day count, holiday calendar) never participate; compare
  with Equal, not ==.

SEE ALSO:
  - serial.go: conversion engine and epoch quirk
  - adjust.go: business-day adjustment conventions
*/
package datemath

import (
	"fmt"
	"strings"
	"time"
)

// CalendarDate is an immutable calendar day. The zero value is not a
// valid date; construct through New, Parse, FromSerial or Today.
type CalendarDate struct {
	year  int
	month int
	day   int

	// optional defaults, consulted only when an operation does not name
	// a convention or calendar explicitly
	adjustTag   string
	dayCountTag string
	holidays    HolidayCalendar
}

// =============================================================================
// CONSTRUCTION
// =============================================================================

// New validates and builds a CalendarDate.
func New(year, month, day int) (CalendarDate, error) {
	if !IsValidYMD(year, month, day) {
		return CalendarDate{}, &InvalidDateError{Year: year, Month: month, Day: day}
	}
	return CalendarDate{year: year, month: month, day: day}, nil
}

// MustDate is New that panics on invalid input, for literals in tests
// and wiring code.
func MustDate(year, month, day int) CalendarDate {
	d, err := New(year, month, day)
	if err != nil {
		panic(err)
	}
	return d
}

// FromSerial converts a serial value into a CalendarDate. Serial 60,
// the fictitious Feb 29, 1900, is rejected.
func FromSerial(serial int) (CalendarDate, error) {
	y, m, d, err := FromSerialYMD(serial)
	if err != nil {
		return CalendarDate{}, err
	}
	return CalendarDate{year: y, month: m, day: d}, nil
}

// Parse accepts "YYYY-MM-DD", "DD.MM.YYYY", "MM/DD/YYYY" and compact
// "YYYYMMDD".
func Parse(s string) (CalendarDate, error) {
	var layout string
	switch {
	case strings.ContainsRune(s, '-'):
		layout = "2006-01-02"
	case strings.ContainsRune(s, '.'):
		layout = "02.01.2006"
	case strings.ContainsRune(s, '/'):
		layout = "01/02/2006"
	case len(s) == 8:
		layout = "20060102"
	default:
		return CalendarDate{}, fmt.Errorf("%w: unrecognized date format %q", ErrInvalidDate, s)
	}
	t, err := time.Parse(layout, s)
	if err != nil {
		return CalendarDate{}, fmt.Errorf("%w: cannot parse %q", ErrInvalidDate, s)
	}
	return New(t.Year(), int(t.Month()), t.Day())
}

// Today returns the current calendar day.
func Today() CalendarDate {
	now := time.Now()
	return CalendarDate{year: now.Year(), month: int(now.Month()), day: now.Day()}
}

// EndOfMonth returns the last day of the given month.
func EndOfMonth(year, month int) CalendarDate {
	return CalendarDate{year: year, month: month, day: DaysInMonth(year, month)}
}

// =============================================================================
// ACCESSORS
// =============================================================================

func (d CalendarDate) Year() int  { return d.year }
func (d CalendarDate) Month() int { return d.month }
func (d CalendarDate) Day() int   { return d.day }

// YMD returns the triple.
func (d CalendarDate) YMD() (year, month, day int) { return d.year, d.month, d.day }

// Serial returns the legacy-epoch serial encoding.
func (d CalendarDate) Serial() int {
	s, _ := ToSerial(d.year, d.month, d.day)
	return s
}

// Weekday returns the day of week.
func (d CalendarDate) Weekday() time.Weekday {
	return time.Date(d.year, time.Month(d.month), d.day, 0, 0, 0, 0, time.UTC).Weekday()
}

// IsZero reports whether d is the unset zero value.
func (d CalendarDate) IsZero() bool { return d.year == 0 }

// String renders as ISO "YYYY-MM-DD".
func (d CalendarDate) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.year, d.month, d.day)
}

// Equal, Before and After compare on the triple only; preference tags
// never participate.
func (d CalendarDate) Equal(o CalendarDate) bool {
	return d.year == o.year && d.month == o.month && d.day == o.day
}

func (d CalendarDate) Before(o CalendarDate) bool {
	if d.year != o.year {
		return d.year < o.year
	}
	if d.month != o.month {
		return d.month < o.month
	}
	return d.day < o.day
}

func (d CalendarDate) After(o CalendarDate) bool { return o.Before(d) }

// =============================================================================
// PREFERENCES
// =============================================================================

// WithAdjustment returns a copy carrying a default adjustment key.
func (d CalendarDate) WithAdjustment(key string) CalendarDate {
	d.adjustTag = key
	return d
}

// WithDayCount returns a copy carrying a default day-count key.
func (d CalendarDate) WithDayCount(key string) CalendarDate {
	d.dayCountTag = key
	return d
}

// WithCalendar returns a copy carrying a default holiday calendar.
func (d CalendarDate) WithCalendar(cal HolidayCalendar) CalendarDate {
	d.holidays = cal
	return d
}

func (d CalendarDate) DefaultAdjustment() string        { return d.adjustTag }
func (d CalendarDate) DefaultDayCount() string          { return d.dayCountTag }
func (d CalendarDate) DefaultCalendar() HolidayCalendar { return d.holidays }

// =============================================================================
// ARITHMETIC
// =============================================================================

// AddDays shifts by n exact serial days, stepping over the fictitious
// Feb 29, 1900 which has no calendar image.
func (d CalendarDate) AddDays(n int) CalendarDate {
	s := d.Serial()
	t := s + n
	if s < fictitiousLeapDay && t >= fictitiousLeapDay {
		t++
	} else if s > fictitiousLeapDay && t <= fictitiousLeapDay {
		t--
	}
	nd, err := FromSerial(t)
	if err != nil {
		// unreachable: t != 60 by construction
		panic(err)
	}
	return d.carryPrefs(nd)
}

// AddYears shifts the year, clamping Feb 29 to Feb 28 when the target
// year is not a leap year.
func (d CalendarDate) AddYears(n int) CalendarDate {
	year, day := d.year+n, d.day
	if d.month == 2 && day == 29 && !IsLeapYear(year) {
		day = 28
	}
	return d.carryPrefs(CalendarDate{year: year, month: d.month, day: day})
}

// AddMonths shifts the month field, renormalizing by whole years while
// it falls outside [1, 12], then clamps the day to the resulting month.
// The year renormalization steps through AddYears, so a Feb 29 start
// picks up the same intermediate clamping the legacy algorithm had.
func (d CalendarDate) AddMonths(n int) CalendarDate {
	res := d
	month := res.month + n
	for month > 12 {
		res = res.AddYears(1)
		month -= 12
	}
	for month < 1 {
		res = res.AddYears(-1)
		month += 12
	}
	day := res.day
	if eom := DaysInMonth(res.year, month); day > eom {
		day = eom
	}
	return d.carryPrefs(CalendarDate{year: res.year, month: month, day: day})
}

// AddYMD applies years, months, days in that order. A Feb 29 start
// first folds month overflow into years and applies months before
// years; see the package comment on ordering.
func (d CalendarDate) AddYMD(years, months, days int) CalendarDate {
	if d.month == 2 && d.day == 29 {
		years += months / 12
		months %= 12
		return d.AddMonths(months).AddYears(years).AddDays(days)
	}
	return d.AddYears(years).AddMonths(months).AddDays(days)
}

// AddBusinessDays steps day by day, counting only business days, until
// n are visited; symmetric for negative n. The walk is capped: a cap
// overrun means a degenerate calendar and yields ErrStepLimit.
func (d CalendarDate) AddBusinessDays(n int, cal HolidayCalendar) (CalendarDate, error) {
	if cal == nil {
		cal = d.holidays
	}
	step, limit := 1, 7*abs(n)+366
	if n < 0 {
		step = -1
	}
	res, count := d, 0
	for count != n {
		if limit--; limit < 0 {
			return CalendarDate{}, fmt.Errorf("%w: %d business days from %s", ErrStepLimit, n, d)
		}
		res = res.AddDays(step)
		if IsBusinessDay(res, cal) {
			count += step
		}
	}
	return res, nil
}

// AddPeriod applies the business-day component first, then the
// calendar components through AddYMD. A valid Period has at most one
// of the two, so the order only fixes the convention for inverses.
func (d CalendarDate) AddPeriod(p Period, cal HolidayCalendar) (CalendarDate, error) {
	res := d
	if p.BusinessDays != 0 {
		var err error
		if res, err = res.AddBusinessDays(p.BusinessDays, cal); err != nil {
			return CalendarDate{}, err
		}
	}
	return res.AddYMD(p.Years, p.Months, p.Days), nil
}

// DiffInDays returns the exact serial difference end - d.
func (d CalendarDate) DiffInDays(end CalendarDate) int {
	return end.Serial() - d.Serial()
}

// DiffInYMD decomposes end - d into (years, months, days) such that
// d.AddYMD(years, months, days) reconstructs end outside the documented
// Feb 29 edge cases. Anti-symmetric for end before d.
func (d CalendarDate) DiffInYMD(end CalendarDate) (years, months, days int) {
	if end.Before(d) {
		y, m, dd := end.DiffInYMD(d)
		return -y, -m, -dd
	}
	y := end.year - d.year
	m := end.month - d.month
	for m < 0 {
		y--
		m += 12
	}
	for m > 12 {
		y++
		m -= 12
	}
	s := d.AddMonths(m).AddYears(y)
	if s.DiffInDays(end) < 0 {
		m--
		if m < 0 {
			y--
			m += 12
		}
		s = d.AddMonths(m).AddYears(y)
	}
	return y, m, s.DiffInDays(end)
}

// DiffPeriod returns DiffInYMD as a Period.
func (d CalendarDate) DiffPeriod(end CalendarDate) Period {
	y, m, dd := d.DiffInYMD(end)
	// same-sign by construction of DiffInYMD
	return Period{Years: y, Months: m, Days: dd}
}

// Adjust maps d to a business day under the named convention. An empty
// key falls back to the date's default adjustment tag, then to "no";
// a nil calendar falls back to the date's default calendar.
func (d CalendarDate) Adjust(key string, cal HolidayCalendar) (CalendarDate, error) {
	if key == "" {
		key = d.adjustTag
	}
	if key == "" {
		key = "no"
	}
	if cal == nil {
		cal = d.holidays
	}
	fn, err := LookupAdjustment(key)
	if err != nil {
		return CalendarDate{}, err
	}
	return fn(d, cal)
}

// YearFraction computes the day-count fraction from d to end under the
// named convention, falling back to the date's default day-count tag.
func (d CalendarDate) YearFraction(end CalendarDate, key string) (float64, error) {
	if key == "" {
		key = d.dayCountTag
	}
	fn, err := LookupDayCount(key)
	if err != nil {
		return 0, err
	}
	return fn(d, end)
}

func (d CalendarDate) carryPrefs(nd CalendarDate) CalendarDate {
	nd.adjustTag = d.adjustTag
	nd.dayCountTag = d.dayCountTag
	nd.holidays = d.holidays
	return nd
}
