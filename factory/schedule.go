/*
Package factory provides JSON to Go schedule conversion.

PURPOSE:
  Converts JSON schedule definitions into built datemath.Schedule
  values. This enables schedule configuration without code changes -
  operations can define payment schedules in JSON, and the factory
  builds, rolls and adjusts the proper Go structs.

WHY JSON?
  - Non-developers can define schedules
  - Easy integration with admin UI
  - Version control for schedule definitions
  - Database storage of schedule configs

JSON SCHEMA:
  {
    "start": "2024-01-15",
    "end": "2029-01-15",
    "step": "6M",
    "roll": "2024-07-15",
    "convention": "mod_follow",
    "day_count": "act/act icma",
    "calendar": "target",
    "stub": "first_long"
  }

KEY FEATURES:
  - Validates dates, period grammar and convention keys up front
  - Sets sensible defaults (roll on end, no adjustment, act/act)
  - Resolves calendar names through a pluggable resolver
  - Applies long-stub merging and business day adjustment

USAGE:
  f := factory.New(resolver)
  built, err := f.ParseSchedule(jsonString)
  // built.Schedule, built.DayCount, built.Calendar ready to use

SEE ALSO:
  - datemath/schedule.go: Schedule type definition
  - calendars/: calendar implementations behind the resolver
  - store/sqlite/: named calendar persistence feeding the resolver
*/
package factory

import (
	"encoding/json"
	"fmt"

	"github.com/warp/busdate/datemath"
)

// =============================================================================
// JSON SCHEMA TYPES
// =============================================================================

// ScheduleJSON is the JSON representation of a schedule definition.
type ScheduleJSON struct {
	Start      string `json:"start"`
	End        string `json:"end"`
	Step       string `json:"step"`
	Roll       string `json:"roll,omitempty"`       // default: end
	Convention string `json:"convention,omitempty"` // default: no
	DayCount   string `json:"day_count,omitempty"`  // default: act/act
	Calendar   string `json:"calendar,omitempty"`   // default: weekends only
	Stub       string `json:"stub,omitempty"`       // "", first_long, last_long
}

// CalendarResolver maps calendar names to implementations. An empty
// name must resolve to nil (weekend-only business days).
type CalendarResolver func(name string) (datemath.HolidayCalendar, error)

// Built is the fully constructed result of a schedule definition.
type Built struct {
	Schedule *datemath.Schedule
	DayCount datemath.DayCountFunc
	Calendar datemath.HolidayCalendar
}

// =============================================================================
// SCHEDULE FACTORY
// =============================================================================

// Factory converts JSON schedule definitions to Go structs.
type Factory struct {
	resolve CalendarResolver
}

// New creates a factory. A nil resolver accepts only the empty
// calendar name.
func New(resolver CalendarResolver) *Factory {
	if resolver == nil {
		resolver = func(name string) (datemath.HolidayCalendar, error) {
			if name == "" {
				return nil, nil
			}
			return nil, fmt.Errorf("unknown calendar: %q", name)
		}
	}
	return &Factory{resolve: resolver}
}

// ParseSchedule parses a JSON string and builds the schedule.
func (f *Factory) ParseSchedule(jsonStr string) (*Built, error) {
	var sj ScheduleJSON
	if err := json.Unmarshal([]byte(jsonStr), &sj); err != nil {
		return nil, fmt.Errorf("failed to parse schedule JSON: %w", err)
	}
	return f.FromJSON(sj)
}

// FromJSON validates the definition and builds the schedule.
func (f *Factory) FromJSON(sj ScheduleJSON) (*Built, error) {
	start, err := datemath.Parse(sj.Start)
	if err != nil {
		return nil, fmt.Errorf("invalid start: %w", err)
	}
	end, err := datemath.Parse(sj.End)
	if err != nil {
		return nil, fmt.Errorf("invalid end: %w", err)
	}
	if !start.Before(end) {
		return nil, fmt.Errorf("%w: start %s not before end %s", datemath.ErrInvalidDate, start, end)
	}

	step, err := datemath.ParsePeriod(sj.Step)
	if err != nil {
		return nil, fmt.Errorf("invalid step: %w", err)
	}

	var roll datemath.CalendarDate
	if sj.Roll != "" {
		if roll, err = datemath.Parse(sj.Roll); err != nil {
			return nil, fmt.Errorf("invalid roll: %w", err)
		}
	}

	dayCount, err := datemath.LookupDayCount(defaultString(sj.DayCount, "act/act"))
	if err != nil {
		return nil, err
	}

	cal, err := f.resolve(sj.Calendar)
	if err != nil {
		return nil, err
	}

	s, err := datemath.NewSchedule(start, end, step, roll)
	if err != nil {
		return nil, err
	}

	switch sj.Stub {
	case "", "none":
	case "first_long":
		s.FirstStubLong()
	case "last_long":
		s.LastStubLong()
	default:
		return nil, fmt.Errorf("unknown stub rule: %q", sj.Stub)
	}

	if sj.Convention != "" {
		if err := s.Adjust(sj.Convention, cal); err != nil {
			return nil, err
		}
	}

	return &Built{Schedule: s, DayCount: dayCount, Calendar: cal}, nil
}

// ToJSON renders a definition back to its JSON form with defaults made
// explicit.
func (f *Factory) ToJSON(sj ScheduleJSON) ScheduleJSON {
	out := sj
	out.Roll = defaultString(sj.Roll, sj.End)
	out.Convention = defaultString(sj.Convention, "no")
	out.DayCount = defaultString(sj.DayCount, "act/act")
	return out
}

func defaultString(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
