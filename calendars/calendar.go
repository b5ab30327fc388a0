/*
calendar.go - Holiday calendar building blocks

PURPOSE:
  Concrete datemath.HolidayCalendar implementations: an explicit date
  set for user-supplied holiday lists, and a union combining several
  calendars for multi-jurisdiction books. Weekend handling stays in
  datemath.IsBusinessDay; a calendar only answers "is this date a
  holiday".
*/
package calendars

import "github.com/warp/busdate/datemath"

// Static is an explicit holiday set.
type Static struct {
	days map[int]struct{}
}

// NewStatic builds a calendar from an explicit holiday list.
func NewStatic(dates ...datemath.CalendarDate) *Static {
	s := &Static{days: make(map[int]struct{}, len(dates))}
	for _, d := range dates {
		s.days[d.Serial()] = struct{}{}
	}
	return s
}

// Add marks more dates as holidays.
func (s *Static) Add(dates ...datemath.CalendarDate) {
	for _, d := range dates {
		s.days[d.Serial()] = struct{}{}
	}
}

// Contains reports whether d is a holiday.
func (s *Static) Contains(d datemath.CalendarDate) bool {
	_, ok := s.days[d.Serial()]
	return ok
}

// Len returns the number of holidays in the set.
func (s *Static) Len() int { return len(s.days) }

// Union combines calendars: a date is a holiday if any member says so.
type Union []datemath.HolidayCalendar

// Contains reports whether d is a holiday in any member calendar.
func (u Union) Contains(d datemath.CalendarDate) bool {
	for _, cal := range u {
		if cal != nil && cal.Contains(d) {
			return true
		}
	}
	return false
}
