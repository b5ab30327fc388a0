/*
schedule.go - Coupon schedules on top of DateRange

PURPOSE:
  A Schedule is a DateRange that always carries its literal start and
  end dates: boundaries off the rolling grid are forced in at the front
  and back rather than merged into the grid. Long stubs merge the first
  or last two grid intervals into one irregular period.
*/
package datemath

// Schedule is a date grid with forced start and end boundaries.
type Schedule struct {
	DateRange
}

// NewSchedule builds the schedule grid for [start, end] stepping by
// step. The roll anchor defaults to end, matching the usual bond
// convention of rolling on the maturity date.
func NewSchedule(start, end CalendarDate, step Period, roll CalendarDate) (*Schedule, error) {
	if roll.IsZero() {
		roll = end
	}
	r, err := NewDateRange(start, end, step, roll)
	if err != nil {
		return nil, err
	}
	s := &Schedule{DateRange: *r}
	if !s.Contains(start) {
		s.dates = append([]CalendarDate{start}, s.dates...)
	}
	if !s.Contains(end) {
		s.dates = append(s.dates, end)
	}
	return s, nil
}

// FirstStubLong drops the second schedule date, merging the first two
// grid intervals into one long stub. No-op below three dates.
func (s *Schedule) FirstStubLong() *Schedule {
	if len(s.dates) > 2 {
		s.dates = append(s.dates[:1], s.dates[2:]...)
	}
	return s
}

// LastStubLong drops the second-to-last schedule date, merging the
// last two grid intervals into one long stub. No-op below three dates.
func (s *Schedule) LastStubLong() *Schedule {
	if n := len(s.dates); n > 2 {
		s.dates = append(s.dates[:n-2], s.dates[n-1])
	}
	return s
}
