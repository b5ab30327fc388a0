/*
handlers.go - HTTP API handlers for the business-date engine

PURPOSE:
  Exposes date arithmetic, adjustment, day counts and schedule
  generation via REST API. Handles HTTP request/response, JSON
  serialization, and delegates to datemath.

ENDPOINTS:
  Dates:
    POST   /api/dates/shift          Shift a date by a period
    POST   /api/dates/adjust         Roll to a business day
    POST   /api/dates/diff           Distance between two dates
    POST   /api/dates/yearfraction   Day-count fraction

  Schedules:
    POST   /api/schedules            Build a schedule from a definition

  Calendars:
    GET    /api/calendars                    List stored calendars
    POST   /api/calendars                    Create calendar
    GET    /api/calendars/{name}/holidays    List holidays
    POST   /api/calendars/{name}/holidays    Add holidays
    DELETE /api/calendars/{name}             Delete calendar

  Meta:
    GET    /api/conventions          Registry keys
    GET    /api/health               Liveness

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Validation errors, invalid input
  - 404: Calendar not found
  - 409: Duplicate calendar
  - 500: Internal errors

SEE ALSO:
  - dto.go: Request/response data structures
  - server.go: Router setup and middleware
*/
package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/warp/busdate/calendars"
	"github.com/warp/busdate/datemath"
	"github.com/warp/busdate/factory"
	"github.com/warp/busdate/store/sqlite"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Store   *sqlite.Store
	Factory *factory.Factory

	target *calendars.Target
}

// NewHandler creates a new handler with the given store.
func NewHandler(store *sqlite.Store) *Handler {
	h := &Handler{
		Store:  store,
		target: calendars.NewTarget(),
	}
	h.Factory = factory.New(func(name string) (datemath.HolidayCalendar, error) {
		return h.resolveCalendar(context.Background(), name)
	})
	return h
}

// resolveCalendar maps a calendar name to an implementation: empty is
// weekend-only, "target" is the built-in TARGET2 calendar, anything
// else loads from the store.
func (h *Handler) resolveCalendar(ctx context.Context, name string) (datemath.HolidayCalendar, error) {
	switch name {
	case "":
		return nil, nil
	case "target":
		return h.target, nil
	}
	if h.Store == nil {
		return nil, sqlite.ErrCalendarNotFound
	}
	return h.Store.LoadCalendar(ctx, name)
}

// =============================================================================
// DATE HANDLERS
// =============================================================================

// Shift moves a date by a period.
// POST /api/dates/shift
func (h *Handler) Shift(w http.ResponseWriter, r *http.Request) {
	var req ShiftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	d, err := datemath.Parse(req.Date)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid date", err)
		return
	}
	p, err := datemath.ParsePeriod(req.Period)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid period", err)
		return
	}
	cal, err := h.resolveCalendar(r.Context(), req.Calendar)
	if err != nil {
		writeDomainError(w, "Failed to resolve calendar", err)
		return
	}

	shifted, err := d.AddPeriod(p, cal)
	if err != nil {
		writeDomainError(w, "Failed to shift date", err)
		return
	}

	writeJSON(w, http.StatusOK, ShiftResponse{
		Date:    d.String(),
		Period:  p.String(),
		Result:  shifted.String(),
		Serial:  shifted.Serial(),
		Weekday: shifted.Weekday().String(),
	})
}

// Adjust rolls a date to a business day under a convention.
// POST /api/dates/adjust
func (h *Handler) Adjust(w http.ResponseWriter, r *http.Request) {
	var req AdjustRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	d, err := datemath.Parse(req.Date)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid date", err)
		return
	}
	cal, err := h.resolveCalendar(r.Context(), req.Calendar)
	if err != nil {
		writeDomainError(w, "Failed to resolve calendar", err)
		return
	}

	adjusted, err := d.Adjust(req.Convention, cal)
	if err != nil {
		writeDomainError(w, "Failed to adjust date", err)
		return
	}

	writeJSON(w, http.StatusOK, AdjustResponse{
		Date:       d.String(),
		Convention: req.Convention,
		Result:     adjusted.String(),
	})
}

// Diff returns the distance between two dates.
// POST /api/dates/diff
func (h *Handler) Diff(w http.ResponseWriter, r *http.Request) {
	var req DiffRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	start, err := datemath.Parse(req.Start)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid start", err)
		return
	}
	end, err := datemath.Parse(req.End)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid end", err)
		return
	}

	writeJSON(w, http.StatusOK, DiffResponse{
		Start:  start.String(),
		End:    end.String(),
		Days:   start.DiffInDays(end),
		Period: start.DiffPeriod(end).String(),
	})
}

// YearFraction computes a day-count fraction.
// POST /api/dates/yearfraction
func (h *Handler) YearFraction(w http.ResponseWriter, r *http.Request) {
	var req YearFractionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	start, err := datemath.Parse(req.Start)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid start", err)
		return
	}
	end, err := datemath.Parse(req.End)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid end", err)
		return
	}

	frac, err := datemath.YearFraction(start, end, req.DayCount)
	if err != nil {
		writeDomainError(w, "Failed to compute year fraction", err)
		return
	}

	writeJSON(w, http.StatusOK, YearFractionResponse{
		Start:    start.String(),
		End:      end.String(),
		DayCount: req.DayCount,
		Fraction: frac,
	})
}

// =============================================================================
// SCHEDULE HANDLERS
// =============================================================================

// BuildSchedule builds a schedule from a JSON definition.
// POST /api/schedules
func (h *Handler) BuildSchedule(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	built, err := h.Factory.ParseSchedule(string(body))
	if err != nil {
		writeDomainError(w, "Failed to build schedule", err)
		return
	}

	dates := built.Schedule.Dates()
	out := make([]string, len(dates))
	for i, d := range dates {
		out[i] = d.String()
	}
	writeJSON(w, http.StatusOK, ScheduleResponse{Dates: out})
}

// =============================================================================
// CALENDAR HANDLERS
// =============================================================================

// ListCalendars returns all stored calendars.
// GET /api/calendars
func (h *Handler) ListCalendars(w http.ResponseWriter, r *http.Request) {
	infos, err := h.Store.ListCalendars(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list calendars", err)
		return
	}

	dtos := make([]CalendarDTO, len(infos))
	for i, info := range infos {
		dtos[i] = CalendarDTO{
			Name:        info.Name,
			Description: info.Description,
			Holidays:    info.Holidays,
		}
	}
	writeJSON(w, http.StatusOK, dtos)
}

// CreateCalendar registers a calendar, optionally with holidays.
// POST /api/calendars
func (h *Handler) CreateCalendar(w http.ResponseWriter, r *http.Request) {
	var req CreateCalendarRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "Calendar name is required", nil)
		return
	}

	dates, err := parseDates(req.Holidays)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid holiday date", err)
		return
	}

	if err := h.Store.CreateCalendar(r.Context(), req.Name, req.Description); err != nil {
		writeDomainError(w, "Failed to create calendar", err)
		return
	}
	if len(dates) > 0 {
		if err := h.Store.AddHolidays(r.Context(), req.Name, dates...); err != nil {
			writeDomainError(w, "Failed to add holidays", err)
			return
		}
	}

	writeJSON(w, http.StatusCreated, CalendarDTO{
		Name:        req.Name,
		Description: req.Description,
		Holidays:    len(dates),
	})
}

// DeleteCalendar removes a stored calendar.
// DELETE /api/calendars/{name}
func (h *Handler) DeleteCalendar(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if err := h.Store.DeleteCalendar(r.Context(), name); err != nil {
		writeDomainError(w, "Failed to delete calendar", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetHolidays lists a stored calendar's dates.
// GET /api/calendars/{name}/holidays
func (h *Handler) GetHolidays(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	dates, err := h.Store.Holidays(r.Context(), name)
	if err != nil {
		writeDomainError(w, "Failed to load holidays", err)
		return
	}

	out := make([]string, len(dates))
	for i, d := range dates {
		out[i] = d.String()
	}
	writeJSON(w, http.StatusOK, HolidaysResponse{Calendar: name, Dates: out})
}

// AddHolidays appends dates to a stored calendar.
// POST /api/calendars/{name}/holidays
func (h *Handler) AddHolidays(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	var req AddHolidaysRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	dates, err := parseDates(req.Dates)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid holiday date", err)
		return
	}
	if len(dates) == 0 {
		writeError(w, http.StatusBadRequest, "No dates given", nil)
		return
	}

	if err := h.Store.AddHolidays(r.Context(), name, dates...); err != nil {
		writeDomainError(w, "Failed to add holidays", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// META HANDLERS
// =============================================================================

// ListConventions returns the registry keys.
// GET /api/conventions
func (h *Handler) ListConventions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, ConventionsResponse{
		Adjustments: datemath.AdjustmentKeys(),
		DayCounts:   datemath.DayCountKeys(),
	})
}

// Health reports liveness.
// GET /api/health
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// =============================================================================
// HELPERS
// =============================================================================

func parseDates(raw []string) ([]datemath.CalendarDate, error) {
	dates := make([]datemath.CalendarDate, 0, len(raw))
	for _, s := range raw {
		d, err := datemath.Parse(s)
		if err != nil {
			return nil, err
		}
		dates = append(dates, d)
	}
	return dates, nil
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}

// writeDomainError maps domain errors onto HTTP statuses.
func writeDomainError(w http.ResponseWriter, message string, err error) {
	switch {
	case errors.Is(err, sqlite.ErrCalendarNotFound):
		writeError(w, http.StatusNotFound, message, err)
	case errors.Is(err, sqlite.ErrDuplicateCalendar):
		writeError(w, http.StatusConflict, message, err)
	case datemath.IsClientError(err):
		writeError(w, http.StatusBadRequest, message, err)
	default:
		writeError(w, http.StatusInternalServerError, message, err)
	}
}
