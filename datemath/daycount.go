/*
daycount.go - Day count conventions (year fractions)

PURPOSE:
  State-free rules computing the year fraction between two dates for
  interest accrual, selected by case-insensitive string key. "Distance
  in days" always means the exact serial difference.

FAMILIES:
  - 30/360 (plain, bond basis, NASD), 30/360 ISDA / German,
    30E/360, 30E/360 Italian
  - Act/360, Act/365, Act/365.25
  - Act/Act ISDA (calendar-year split)
  - Act/Act ICMA (reference-period split; the intricate one - it builds
    a rolling period grid one step wider than [start, end] and sums
    full and partial period contributions)
*/
package datemath

import "fmt"

// DayCountFunc computes the year fraction from start to end.
type DayCountFunc func(start, end CalendarDate) (float64, error)

// =============================================================================
// 30/360 FAMILY
// =============================================================================

// Thirty360 implements the plain 30/360 convention (bond basis, NASD
// and ICMA share the same arithmetic).
func Thirty360(start, end CalendarDate) (float64, error) {
	startDay := min30(start.Day())
	endDay := end.Day()
	if startDay == 30 && endDay == 31 {
		endDay = 30
	}
	return thirty360Formula(start, end, startDay, endDay), nil
}

// Thirty360ISDA implements 30/360 ISDA (the German variant is
// identical): a day on the last day of February clamps to 30 on both
// ends, and days clamp to at most 30.
func Thirty360ISDA(start, end CalendarDate) (float64, error) {
	startDay := min30(start.Day())
	if lastDayOfFebruary(start) {
		startDay = 30
	}
	endDay := min30(end.Day())
	if lastDayOfFebruary(end) {
		endDay = 30
	}
	return thirty360Formula(start, end, startDay, endDay), nil
}

// ThirtyE360 clamps both day components independently to at most 30.
func ThirtyE360(start, end CalendarDate) (float64, error) {
	return thirty360Formula(start, end, min30(start.Day()), min30(end.Day())), nil
}

// ThirtyE360Italian additionally clamps any late-February day to 30.
func ThirtyE360Italian(start, end CalendarDate) (float64, error) {
	startDay, endDay := start.Day(), end.Day()
	if startDay == 31 || (start.Month() == 2 && startDay >= 28) {
		startDay = 30
	}
	if endDay == 31 || (end.Month() == 2 && endDay >= 28) {
		endDay = 30
	}
	return thirty360Formula(start, end, startDay, endDay), nil
}

func thirty360Formula(start, end CalendarDate, startDay, endDay int) float64 {
	return float64(360*(end.Year()-start.Year())+30*(end.Month()-start.Month())+(endDay-startDay)) / 360.0
}

func min30(day int) int {
	if day > 30 {
		return 30
	}
	return day
}

func lastDayOfFebruary(d CalendarDate) bool {
	return d.Month() == 2 && d.Day() == DaysInMonth(d.Year(), 2)
}

// =============================================================================
// ACT FAMILY
// =============================================================================

// Act360 divides the actual day distance by 360.
func Act360(start, end CalendarDate) (float64, error) {
	return float64(start.DiffInDays(end)) / 360.0, nil
}

// Act365 divides the actual day distance by 365.
func Act365(start, end CalendarDate) (float64, error) {
	return float64(start.DiffInDays(end)) / 365.0, nil
}

// Act36525 divides the actual day distance by 365.25.
func Act36525(start, end CalendarDate) (float64, error) {
	return float64(start.DiffInDays(end)) / 365.25, nil
}

// ActActISDA splits the distance at year boundaries: the start year's
// remaining days (start inclusive) over that year's length, one per
// whole year in between, and the end year's elapsed days (end
// exclusive) over that year's length.
func ActActISDA(start, end CalendarDate) (float64, error) {
	if end.Year() == start.Year() {
		return float64(start.DiffInDays(end)) / float64(DaysInYear(start.Year())), nil
	}
	restStart := float64(start.DiffInDays(MustDate(start.Year(), 12, 31)) + 1)
	restEnd := float64(MustDate(end.Year(), 1, 1).DiffInDays(end))
	whole := float64(end.Year() - start.Year() - 1)
	return whole +
		restStart/float64(DaysInYear(start.Year())) +
		restEnd/float64(DaysInYear(end.Year())), nil
}

// =============================================================================
// ACT/ACT ICMA - the reference-period convention
// =============================================================================

// ICMA computes Act/Act year fractions relative to a coupon reference
// period grid instead of the calendar year.
type ICMA struct {
	Frequency int          // coupon frequency: 1, 2, 4 or 12
	Rolling   CalendarDate // grid anchor; zero value rolls on the period end
}

// NewICMA validates the coupon frequency.
func NewICMA(frequency int) (ICMA, error) {
	switch frequency {
	case 1, 2, 4, 12:
		return ICMA{Frequency: frequency}, nil
	}
	return ICMA{}, fmt.Errorf("%w: ICMA frequency must be 1, 2, 4 or 12, got %d", ErrInvalidPeriod, frequency)
}

// ActAct builds the reference grid stepping by 12/frequency months,
// one step before start through one step after end, and sums per
// reference period: 1/frequency for fully covered periods, otherwise
// the day overlap divided by (period length x frequency).
func (ic ICMA) ActAct(start, end CalendarDate) (float64, error) {
	f := ic.Frequency
	step, err := NewPeriod(0, 12/f, 0, 0)
	if err != nil {
		return 0, err
	}
	rolling := ic.Rolling
	if rolling.IsZero() {
		rolling = end
	}

	grid, err := NewDateRange(start.AddMonths(-12/f), end.AddMonths(12/f), step, rolling)
	if err != nil {
		return 0, err
	}

	dates := grid.Dates()
	sum := 0.0
	for i := 0; i+1 < len(dates); i++ {
		s, e := dates[i], dates[i+1]
		if !start.After(s) && !e.After(end) {
			sum += 1.0 / float64(f)
			continue
		}
		lo, hi := maxDate(start, s), minDate(end, e)
		sum += float64(lo.DiffInDays(hi)) / float64(s.DiffInDays(e)) / float64(f)
	}
	return sum, nil
}

// GatherFrequency infers the coupon frequency from a reference period
// by rounding 12*days/365 to the nearest month count; frequencies
// outside {1, 2, 4, 12} fall back to 4 below semiannual density, else
// 12.
func GatherFrequency(start, end CalendarDate) int {
	months := int(roundHalfUp(12.0 * float64(start.DiffInDays(end)) / 365.0))
	if months < 1 {
		months = 1
	}
	frequency := 12 / months
	switch frequency {
	case 1, 2, 4, 12:
		return frequency
	}
	if frequency < 6 {
		return 4
	}
	return 12
}

// ActActICMA computes the ICMA Act/Act fraction with an inferred
// frequency, rolling on the period end.
func ActActICMA(start, end CalendarDate) (float64, error) {
	ic, err := NewICMA(GatherFrequency(start, end))
	if err != nil {
		return 0, err
	}
	return ic.ActAct(start, end)
}

func roundHalfUp(x float64) float64 {
	if x < 0 {
		return float64(int(x - 0.5))
	}
	return float64(int(x + 0.5))
}

func maxDate(a, b CalendarDate) CalendarDate {
	if a.After(b) {
		return a
	}
	return b
}

func minDate(a, b CalendarDate) CalendarDate {
	if a.Before(b) {
		return a
	}
	return b
}

// =============================================================================
// DISPATCH
// =============================================================================

// dayCounts is the static key -> rule table; keys normalize case and
// separators, so "Act/Act ICMA" and "act_act_icma" both resolve.
var dayCounts = map[string]DayCountFunc{
	"30360":      Thirty360,
	"thirty360":  Thirty360,
	"30360b":     Thirty360,
	"30360nasd":  Thirty360,
	"30360icma":  Thirty360,
	"30360isda":  Thirty360ISDA,
	"30e360":     ThirtyE360,
	"30e360b":    ThirtyE360,
	"30e360g":    Thirty360ISDA,
	"30e360i":    ThirtyE360Italian,
	"act360":     Act360,
	"act365":     Act365,
	"act36525":   Act36525,
	"actact":     ActActISDA,
	"actactisda": ActActISDA,
	"actactbond": ActActISDA,
	"actacticma": ActActICMA,
	"actactisma": ActActICMA,
}

// LookupDayCount resolves a case-insensitive day-count key.
func LookupDayCount(key string) (DayCountFunc, error) {
	fn, ok := dayCounts[normalizeKey(key)]
	if !ok {
		return nil, &UnknownConventionError{Kind: "day count", Key: key}
	}
	return fn, nil
}

// DayCountKeys lists the canonical day-count keys.
func DayCountKeys() []string {
	return []string{"30/360", "30/360 isda", "30e/360", "30e/360 i",
		"act/360", "act/365", "act/365.25", "act/act", "act/act icma"}
}

// YearFraction resolves key and applies it to (start, end).
func YearFraction(start, end CalendarDate, key string) (float64, error) {
	fn, err := LookupDayCount(key)
	if err != nil {
		return 0, err
	}
	return fn(start, end)
}
