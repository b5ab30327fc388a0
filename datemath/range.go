/*
range.go - Rolling-anchor date grids

PURPOSE:
  A DateRange is the sorted, duplicate-free sequence of grid points
  generated by stepping a Period forward and backward from a rolling
  anchor, sliced to [start, stop). The grid underlies both external
  schedule construction and the ICMA day count.

GRID RULE:
  rolling and step define an infinite grid; start (included when met)
  and stop (excluded) slice it. Steps are always re-derived from the
  anchor as step*i, never accumulated, so month-end clamping cannot
  drift the grid.
*/
package datemath

import (
	"fmt"
	"sort"
)

// rangeSizeLimit caps grid generation; beyond it the step/slice
// combination is considered degenerate.
const rangeSizeLimit = 100_000

// DateRange is an immutable date grid, except for the explicit Adjust
// operation which replaces elements in place.
type DateRange struct {
	dates []CalendarDate
}

// NewDateRange builds the grid for [start, stop) stepping by step and
// rolling on the anchor. The step is normalized to advance from the
// anchor; a zero step is rejected. Business-day steps walk against the
// given calendar-free weekend rule (use Schedule/Adjust for holiday
// aware grids).
func NewDateRange(start, stop CalendarDate, step Period, rolling CalendarDate) (*DateRange, error) {
	if step.IsZero() {
		return nil, fmt.Errorf("%w: date range step must be non-zero", ErrInvalidPeriod)
	}

	// normalize step to a positive-advancing direction
	probe, err := rolling.AddPeriod(step, nil)
	if err != nil {
		return nil, err
	}
	if probe.Before(rolling) {
		step = step.Negate()
	}

	at := func(i int) (CalendarDate, error) {
		return rolling.AddPeriod(step.Scale(i), nil)
	}

	// walk backward from the anchor to just before start
	i := 0
	current := rolling
	for !current.Before(start) {
		i--
		if i < -rangeSizeLimit {
			return nil, fmt.Errorf("%w: date range exceeds %d entries", ErrStepLimit, rangeSizeLimit)
		}
		if current, err = at(i); err != nil {
			return nil, err
		}
	}

	// walk forward accumulating every grid point in [start, stop)
	var grid []CalendarDate
	for {
		if current, err = at(i); err != nil {
			return nil, err
		}
		if !current.Before(stop) {
			break
		}
		if !current.Before(start) {
			grid = append(grid, current)
		}
		if len(grid) > rangeSizeLimit {
			return nil, fmt.Errorf("%w: date range exceeds %d entries", ErrStepLimit, rangeSizeLimit)
		}
		i++
	}

	r := &DateRange{dates: grid}
	r.dedupeSort()
	return r, nil
}

// Len returns the number of grid dates.
func (r *DateRange) Len() int { return len(r.dates) }

// Dates returns a copy of the grid.
func (r *DateRange) Dates() []CalendarDate {
	out := make([]CalendarDate, len(r.dates))
	copy(out, r.dates)
	return out
}

// At returns the i-th grid date.
func (r *DateRange) At(i int) CalendarDate { return r.dates[i] }

// First and Last bound the grid; both panic on an empty range.
func (r *DateRange) First() CalendarDate { return r.dates[0] }
func (r *DateRange) Last() CalendarDate  { return r.dates[len(r.dates)-1] }

// Contains reports grid membership by date identity.
func (r *DateRange) Contains(d CalendarDate) bool {
	for _, e := range r.dates {
		if e.Equal(d) {
			return true
		}
	}
	return false
}

// Adjust replaces every element with its image under the named
// adjustment convention. It neither re-deduplicates nor re-sorts:
// adjustment can in principle collide or reorder dates, which is left
// to the caller.
func (r *DateRange) Adjust(key string, cal HolidayCalendar) error {
	fn, err := LookupAdjustment(key)
	if err != nil {
		return err
	}
	for i, d := range r.dates {
		adj, err := fn(d, cal)
		if err != nil {
			return err
		}
		r.dates[i] = adj
	}
	return nil
}

func (r *DateRange) dedupeSort() {
	sort.Slice(r.dates, func(i, j int) bool { return r.dates[i].Before(r.dates[j]) })
	out := r.dates[:0]
	for _, d := range r.dates {
		if len(out) == 0 || !out[len(out)-1].Equal(d) {
			out = append(out, d)
		}
	}
	r.dates = out
}
