/*
adjust.go - Business day adjustment conventions

PURPOSE:
  State-free rules mapping (date, holiday calendar) -> adjusted date,
  selected at the boundary by case-insensitive string key. Every rule is
  idempotent at its fixed point: adjusting an already-adjusted date
  yields the same date.

CONVENTIONS:
  no, previous, follow, mod_follow, mod_previous, start_of_month,
  end_of_month, imm, cds_imm. The imm and cds_imm rules ignore the
  calendar argument; that matches the rule as ported.
*/
package datemath

import (
	"fmt"
	"strings"
	"time"
)

// AdjustmentFunc maps a date to a business day under one convention.
// The walk toward a business day is capped; ErrStepLimit signals a
// calendar with no reachable business day.
type AdjustmentFunc func(d CalendarDate, cal HolidayCalendar) (CalendarDate, error)

// adjustStepLimit bounds the previous/follow walks. A year of
// consecutive non-business days means the calendar is degenerate.
const adjustStepLimit = 366

// =============================================================================
// CONVENTIONS
// =============================================================================

// AdjustNo is the identity.
func AdjustNo(d CalendarDate, _ HolidayCalendar) (CalendarDate, error) {
	return d, nil
}

// AdjustPrevious steps backward one day at a time until a business day.
func AdjustPrevious(d CalendarDate, cal HolidayCalendar) (CalendarDate, error) {
	return walkToBusinessDay(d, -1, cal)
}

// AdjustFollow steps forward one day at a time until a business day.
func AdjustFollow(d CalendarDate, cal HolidayCalendar) (CalendarDate, error) {
	return walkToBusinessDay(d, 1, cal)
}

// AdjustModFollow applies follow unless that crosses into the next
// month, in which case previous applies instead.
func AdjustModFollow(d CalendarDate, cal HolidayCalendar) (CalendarDate, error) {
	adj, err := AdjustFollow(d, cal)
	if err != nil {
		return CalendarDate{}, err
	}
	if adj.Month() != d.Month() {
		return AdjustPrevious(d, cal)
	}
	return adj, nil
}

// AdjustModPrevious applies previous unless that crosses into the
// previous month, in which case follow applies instead.
func AdjustModPrevious(d CalendarDate, cal HolidayCalendar) (CalendarDate, error) {
	adj, err := AdjustPrevious(d, cal)
	if err != nil {
		return CalendarDate{}, err
	}
	if adj.Month() != d.Month() {
		return AdjustFollow(d, cal)
	}
	return adj, nil
}

// AdjustStartOfMonth snaps to the first of the month, then follows.
func AdjustStartOfMonth(d CalendarDate, cal HolidayCalendar) (CalendarDate, error) {
	first := CalendarDate{year: d.year, month: d.month, day: 1}
	return AdjustFollow(d.carryPrefs(first), cal)
}

// AdjustEndOfMonth snaps to the last day of the month, then precedes.
func AdjustEndOfMonth(d CalendarDate, cal HolidayCalendar) (CalendarDate, error) {
	return AdjustPrevious(d.carryPrefs(EndOfMonth(d.year, d.month)), cal)
}

// AdjustIMM snaps to the 15th of the quarter-end month, then steps
// forward while that day is a Wednesday. The rule as ported ignores
// holidays.
func AdjustIMM(d CalendarDate, _ HolidayCalendar) (CalendarDate, error) {
	imm := CalendarDate{year: d.year, month: EndOfQuarterMonth(d.month), day: 15}
	for imm.Weekday() == time.Wednesday {
		imm = imm.AddDays(1)
	}
	return d.carryPrefs(imm), nil
}

// AdjustCDSIMM snaps to the 20th of the quarter-end month. Holidays
// are ignored.
func AdjustCDSIMM(d CalendarDate, _ HolidayCalendar) (CalendarDate, error) {
	return d.carryPrefs(CalendarDate{year: d.year, month: EndOfQuarterMonth(d.month), day: 20}), nil
}

func walkToBusinessDay(d CalendarDate, step int, cal HolidayCalendar) (CalendarDate, error) {
	for i := 0; i < adjustStepLimit; i++ {
		if IsBusinessDay(d, cal) {
			return d, nil
		}
		d = d.AddDays(step)
	}
	return CalendarDate{}, fmt.Errorf("%w: no business day within %d days of %s", ErrStepLimit, adjustStepLimit, d)
}

// =============================================================================
// DISPATCH
// =============================================================================

// adjustments is the static key -> rule table, resolved once at lookup.
var adjustments = map[string]AdjustmentFunc{
	"no":           AdjustNo,
	"previous":     AdjustPrevious,
	"prev":         AdjustPrevious,
	"prv":          AdjustPrevious,
	"follow":       AdjustFollow,
	"flw":          AdjustFollow,
	"modfollow":    AdjustModFollow,
	"modflw":       AdjustModFollow,
	"modprevious":  AdjustModPrevious,
	"modprev":      AdjustModPrevious,
	"startofmonth": AdjustStartOfMonth,
	"endofmonth":   AdjustEndOfMonth,
	"imm":          AdjustIMM,
	"cdsimm":       AdjustCDSIMM,
}

// LookupAdjustment resolves a case-insensitive convention key;
// separators ('_', '-', ' ') are insignificant.
func LookupAdjustment(key string) (AdjustmentFunc, error) {
	fn, ok := adjustments[normalizeKey(key)]
	if !ok {
		return nil, &UnknownConventionError{Kind: "adjustment", Key: key}
	}
	return fn, nil
}

// AdjustmentKeys lists the canonical convention keys.
func AdjustmentKeys() []string {
	return []string{"no", "previous", "follow", "mod_follow", "mod_previous",
		"start_of_month", "end_of_month", "imm", "cds_imm"}
}

func normalizeKey(key string) string {
	key = strings.ToLower(key)
	for _, sep := range []string{"_", "-", " ", "/", "."} {
		key = strings.ReplaceAll(key, sep, "")
	}
	return key
}
