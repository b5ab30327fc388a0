package sqlite_test

import (
	"context"
	"errors"
	"testing"

	"github.com/warp/busdate/datemath"
	"github.com/warp/busdate/store/sqlite"
)

func newStore(t *testing.T) *sqlite.Store {
	t.Helper()
	s, err := sqlite.New(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestCalendarLifecycle(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	// GIVEN a registered calendar with two holidays
	if err := s.CreateCalendar(ctx, "london", "UK bank holidays"); err != nil {
		t.Fatal(err)
	}
	err := s.AddHolidays(ctx, "london",
		datemath.MustDate(2024, 12, 25),
		datemath.MustDate(2024, 12, 26),
	)
	if err != nil {
		t.Fatal(err)
	}

	// WHEN the calendar loads back
	cal, err := s.LoadCalendar(ctx, "london")
	if err != nil {
		t.Fatal(err)
	}

	// THEN both dates are holidays and others are not
	if !cal.Contains(datemath.MustDate(2024, 12, 25)) {
		t.Error("missing 2024-12-25")
	}
	if cal.Contains(datemath.MustDate(2024, 12, 27)) {
		t.Error("2024-12-27 should not be a holiday")
	}

	infos, err := s.ListCalendars(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(infos) != 1 || infos[0].Name != "london" || infos[0].Holidays != 2 {
		t.Errorf("infos = %+v, want one london entry with 2 holidays", infos)
	}
}

func TestDuplicateCalendar(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	if err := s.CreateCalendar(ctx, "nyc", ""); err != nil {
		t.Fatal(err)
	}
	if err := s.CreateCalendar(ctx, "nyc", ""); !errors.Is(err, sqlite.ErrDuplicateCalendar) {
		t.Errorf("err = %v, want ErrDuplicateCalendar", err)
	}
}

func TestDuplicateHolidayIgnored(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	if err := s.CreateCalendar(ctx, "nyc", ""); err != nil {
		t.Fatal(err)
	}
	d := datemath.MustDate(2024, 7, 4)
	if err := s.AddHolidays(ctx, "nyc", d, d); err != nil {
		t.Fatal(err)
	}
	if err := s.AddHolidays(ctx, "nyc", d); err != nil {
		t.Fatal(err)
	}
	dates, err := s.Holidays(ctx, "nyc")
	if err != nil {
		t.Fatal(err)
	}
	if len(dates) != 1 {
		t.Errorf("holidays = %d, want 1", len(dates))
	}
}

func TestUnknownCalendar(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	if _, err := s.Holidays(ctx, "mars"); !errors.Is(err, sqlite.ErrCalendarNotFound) {
		t.Errorf("Holidays err = %v, want ErrCalendarNotFound", err)
	}
	if err := s.AddHolidays(ctx, "mars", datemath.MustDate(2024, 1, 1)); !errors.Is(err, sqlite.ErrCalendarNotFound) {
		t.Errorf("AddHolidays err = %v, want ErrCalendarNotFound", err)
	}
	if err := s.DeleteCalendar(ctx, "mars"); !errors.Is(err, sqlite.ErrCalendarNotFound) {
		t.Errorf("DeleteCalendar err = %v, want ErrCalendarNotFound", err)
	}
}

func TestRemoveHoliday(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	if err := s.CreateCalendar(ctx, "nyc", ""); err != nil {
		t.Fatal(err)
	}
	d := datemath.MustDate(2024, 7, 4)
	if err := s.AddHolidays(ctx, "nyc", d); err != nil {
		t.Fatal(err)
	}
	if err := s.RemoveHoliday(ctx, "nyc", d); err != nil {
		t.Fatal(err)
	}
	dates, err := s.Holidays(ctx, "nyc")
	if err != nil {
		t.Fatal(err)
	}
	if len(dates) != 0 {
		t.Errorf("holidays = %d, want 0", len(dates))
	}
}

func TestResolver(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	if err := s.CreateCalendar(ctx, "london", ""); err != nil {
		t.Fatal(err)
	}
	if err := s.AddHolidays(ctx, "london", datemath.MustDate(2024, 8, 26)); err != nil {
		t.Fatal(err)
	}

	resolve := s.Resolver(ctx)

	// empty name: weekend-only
	cal, err := resolve("")
	if err != nil || cal != nil {
		t.Errorf("resolve(\"\") = %v, %v, want nil, nil", cal, err)
	}

	// builtin TARGET2
	cal, err = resolve("target")
	if err != nil {
		t.Fatal(err)
	}
	if !cal.Contains(datemath.MustDate(2024, 5, 1)) {
		t.Error("target calendar misses Labour Day")
	}

	// stored calendar
	cal, err = resolve("london")
	if err != nil {
		t.Fatal(err)
	}
	if !cal.Contains(datemath.MustDate(2024, 8, 26)) {
		t.Error("london calendar misses stored holiday")
	}

	// unknown
	if _, err := resolve("mars"); !errors.Is(err, sqlite.ErrCalendarNotFound) {
		t.Errorf("resolve(mars) err = %v, want ErrCalendarNotFound", err)
	}
}
