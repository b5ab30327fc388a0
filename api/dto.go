/*
dto.go - Request and response data structures

PURPOSE:
  JSON shapes for the HTTP API. Kept separate from domain types so the
  wire format can evolve without touching datemath.

CONVENTIONS:
  - Dates travel as strings in any of the four supported layouts and
    come back in ISO form (yyyy-mm-dd)
  - Periods travel in the period grammar ("3M", "-2B", "1Y6M")
  - Convention and calendar names are registry keys

SEE ALSO:
  - handlers.go: Handlers producing/consuming these shapes
*/
package api

// ErrorResponse is the standard error shape.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// =============================================================================
// DATE OPERATIONS
// =============================================================================

// ShiftRequest moves a date by a period, optionally against a named
// calendar (business-day components need one unless weekends suffice).
type ShiftRequest struct {
	Date     string `json:"date"`
	Period   string `json:"period"`
	Calendar string `json:"calendar,omitempty"`
}

// ShiftResponse carries the shifted date plus the echo of the inputs.
type ShiftResponse struct {
	Date    string `json:"date"`
	Period  string `json:"period"`
	Result  string `json:"result"`
	Serial  int    `json:"serial"`
	Weekday string `json:"weekday"`
}

// AdjustRequest rolls a date to a business day under a convention.
type AdjustRequest struct {
	Date       string `json:"date"`
	Convention string `json:"convention"`
	Calendar   string `json:"calendar,omitempty"`
}

// AdjustResponse carries the adjusted date.
type AdjustResponse struct {
	Date       string `json:"date"`
	Convention string `json:"convention"`
	Result     string `json:"result"`
}

// YearFractionRequest computes a day-count fraction between two dates.
type YearFractionRequest struct {
	Start    string `json:"start"`
	End      string `json:"end"`
	DayCount string `json:"day_count"`
}

// YearFractionResponse carries the fraction.
type YearFractionResponse struct {
	Start    string  `json:"start"`
	End      string  `json:"end"`
	DayCount string  `json:"day_count"`
	Fraction float64 `json:"fraction"`
}

// DiffRequest computes the distance between two dates.
type DiffRequest struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// DiffResponse carries both the day distance and the YMD decomposition.
type DiffResponse struct {
	Start  string `json:"start"`
	End    string `json:"end"`
	Days   int    `json:"days"`
	Period string `json:"period"`
}

// =============================================================================
// SCHEDULES
// =============================================================================

// ScheduleResponse carries the generated schedule dates.
type ScheduleResponse struct {
	Dates []string `json:"dates"`
}

// =============================================================================
// CALENDARS
// =============================================================================

// CalendarDTO describes one stored calendar.
type CalendarDTO struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Holidays    int    `json:"holidays"`
}

// CreateCalendarRequest registers a calendar, optionally pre-seeded
// with holidays.
type CreateCalendarRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Holidays    []string `json:"holidays,omitempty"`
}

// AddHolidaysRequest appends holidays to an existing calendar.
type AddHolidaysRequest struct {
	Dates []string `json:"dates"`
}

// HolidaysResponse lists a calendar's dates.
type HolidaysResponse struct {
	Calendar string   `json:"calendar"`
	Dates    []string `json:"dates"`
}

// ConventionsResponse lists the registry keys clients may use.
type ConventionsResponse struct {
	Adjustments []string `json:"adjustments"`
	DayCounts   []string `json:"day_counts"`
}
