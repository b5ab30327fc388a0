/*
target.go - ECB TARGET2 holiday calendar

PURPOSE:
  The Eurosystem TARGET2 closing days: New Year's Day, Good Friday,
  Easter Monday, Labour Day and both Christmas days. Holidays are
  generated lazily per year on first touch, so the calendar covers any
  year without a precomputed table.

CONCURRENCY:
  Contains may be called from many goroutines (HTTP handlers share one
  calendar). A mutex guards the year cache; generation per year runs at
  most once.
*/
package calendars

import (
	"sync"

	"github.com/warp/busdate/datemath"
)

// Target is the lazily populated TARGET2 holiday calendar.
type Target struct {
	mu    sync.Mutex
	years map[int][]datemath.CalendarDate
}

// NewTarget returns an empty TARGET2 calendar; years populate on first
// lookup.
func NewTarget() *Target {
	return &Target{years: make(map[int][]datemath.CalendarDate)}
}

// Contains reports whether d is a TARGET2 closing day. Weekends are not
// the calendar's concern.
func (t *Target) Contains(d datemath.CalendarDate) bool {
	for _, h := range t.daysOf(d.Year()) {
		if h.Equal(d) {
			return true
		}
	}
	return false
}

// Ensure precomputes the holiday sets for a span of years, so later
// lookups never generate under the lock.
func (t *Target) Ensure(fromYear, toYear int) {
	for y := fromYear; y <= toYear; y++ {
		t.daysOf(y)
	}
}

func (t *Target) daysOf(year int) []datemath.CalendarDate {
	t.mu.Lock()
	defer t.mu.Unlock()
	if days, ok := t.years[year]; ok {
		return days
	}
	days := targetDays(year)
	t.years[year] = days
	return days
}

// targetDays generates the TARGET2 closing days of one year.
func targetDays(year int) []datemath.CalendarDate {
	e := easterSunday(year)
	return []datemath.CalendarDate{
		datemath.MustDate(year, 1, 1),
		e.AddDays(-2), // Good Friday
		e.AddDays(1),  // Easter Monday
		datemath.MustDate(year, 5, 1),
		datemath.MustDate(year, 12, 25),
		datemath.MustDate(year, 12, 26),
	}
}

// easterSunday computes Gregorian Easter via the Tondering/GM Arts
// epact algorithm.
func easterSunday(year int) datemath.CalendarDate {
	g := year % 19
	c := year / 100
	h := (c - c/4 - (8*c+13)/25 + 19*g + 15) % 30
	i := h - (h/28)*(1-(h/28)*(29/(h+1))*((21-g)/11))
	j := (year + year/4 + i + 2 - c + c/4) % 7
	p := i - j
	day := 1 + (p+27+(p+6)/40)%31
	month := 3 + (p+26)/30
	return datemath.MustDate(year, month, day)
}
