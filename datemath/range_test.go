package datemath_test

import (
	"errors"
	"testing"

	"github.com/warp/busdate/datemath"
)

func dateStrings(dates []datemath.CalendarDate) []string {
	out := make([]string, len(dates))
	for i, d := range dates {
		out[i] = d.String()
	}
	return out
}

func sameDates(got []datemath.CalendarDate, want []string) bool {
	if len(got) != len(want) {
		return false
	}
	for i, d := range got {
		if d.String() != want[i] {
			return false
		}
	}
	return true
}

// =============================================================================
// GRID GENERATION
// =============================================================================

func TestDateRangeMonthlyGrid(t *testing.T) {
	// GIVEN a monthly grid rolling on its own start
	start := datemath.MustDate(2024, 1, 15)
	stop := datemath.MustDate(2024, 5, 15)

	// WHEN the range covers [start, stop)
	r, err := datemath.NewDateRange(start, stop, datemath.MustPeriod("1M"), start)
	if err != nil {
		t.Fatal(err)
	}

	// THEN the grid includes start, excludes stop
	want := []string{"2024-01-15", "2024-02-15", "2024-03-15", "2024-04-15"}
	if got := r.Dates(); !sameDates(got, want) {
		t.Errorf("grid = %v, want %v", dateStrings(got), want)
	}
	if !r.First().Equal(start) {
		t.Errorf("First = %v, want %v", r.First(), start)
	}
	if r.Contains(stop) {
		t.Error("stop must be excluded from the grid")
	}
}

func TestDateRangeMidGridRolling(t *testing.T) {
	// anchor inside the window: grid points extend both directions
	r, err := datemath.NewDateRange(
		datemath.MustDate(2024, 1, 10),
		datemath.MustDate(2024, 4, 10),
		datemath.MustPeriod("1M"),
		datemath.MustDate(2024, 2, 20),
	)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"2024-01-20", "2024-02-20", "2024-03-20"}
	if got := r.Dates(); !sameDates(got, want) {
		t.Errorf("grid = %v, want %v", dateStrings(got), want)
	}
}

func TestDateRangeNormalizesStepDirection(t *testing.T) {
	// a backward step yields the same ascending grid as its negation
	start := datemath.MustDate(2024, 1, 15)
	stop := datemath.MustDate(2024, 4, 15)
	fwd, err := datemath.NewDateRange(start, stop, datemath.MustPeriod("1M"), start)
	if err != nil {
		t.Fatal(err)
	}
	bwd, err := datemath.NewDateRange(start, stop, datemath.MustPeriod("-1M"), start)
	if err != nil {
		t.Fatal(err)
	}
	if !sameDates(bwd.Dates(), dateStrings(fwd.Dates())) {
		t.Errorf("backward step grid %v differs from forward %v",
			dateStrings(bwd.Dates()), dateStrings(fwd.Dates()))
	}
}

func TestDateRangeMonthEndNoDrift(t *testing.T) {
	// rolling on Jan 31: February clamps to the 29th but March snaps
	// back to the 31st because points derive from the anchor, not from
	// the previous point
	r, err := datemath.NewDateRange(
		datemath.MustDate(2024, 1, 31),
		datemath.MustDate(2024, 5, 1),
		datemath.MustPeriod("1M"),
		datemath.MustDate(2024, 1, 31),
	)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"2024-01-31", "2024-02-29", "2024-03-31", "2024-04-30"}
	if got := r.Dates(); !sameDates(got, want) {
		t.Errorf("grid = %v, want %v", dateStrings(got), want)
	}
}

func TestDateRangeDedupes(t *testing.T) {
	// a weekly grid over a 2-week window stays duplicate-free and sorted
	r, err := datemath.NewDateRange(
		datemath.MustDate(2024, 3, 4),
		datemath.MustDate(2024, 3, 19),
		datemath.MustPeriod("1W"),
		datemath.MustDate(2024, 3, 4),
	)
	if err != nil {
		t.Fatal(err)
	}
	got := r.Dates()
	for i := 1; i < len(got); i++ {
		if !got[i-1].Before(got[i]) {
			t.Fatalf("grid not strictly ascending at %d: %v", i, dateStrings(got))
		}
	}
	if r.Len() != 3 {
		t.Errorf("Len = %d, want 3", r.Len())
	}
}

func TestDateRangeRejectsZeroStep(t *testing.T) {
	_, err := datemath.NewDateRange(
		datemath.MustDate(2024, 1, 1),
		datemath.MustDate(2024, 2, 1),
		datemath.MustPeriod("0D"),
		datemath.MustDate(2024, 1, 1),
	)
	if !errors.Is(err, datemath.ErrInvalidPeriod) {
		t.Errorf("err = %v, want ErrInvalidPeriod", err)
	}
}

func TestDateRangeEmptyWindow(t *testing.T) {
	// stop before start yields an empty grid, not an error
	r, err := datemath.NewDateRange(
		datemath.MustDate(2024, 5, 1),
		datemath.MustDate(2024, 1, 1),
		datemath.MustPeriod("1M"),
		datemath.MustDate(2024, 5, 1),
	)
	if err != nil {
		t.Fatal(err)
	}
	if r.Len() != 0 {
		t.Errorf("Len = %d, want 0", r.Len())
	}
}

func TestDateRangeAdjust(t *testing.T) {
	// GIVEN a monthly grid with a weekend point (2024-06-15 is Saturday)
	r, err := datemath.NewDateRange(
		datemath.MustDate(2024, 5, 15),
		datemath.MustDate(2024, 8, 15),
		datemath.MustPeriod("1M"),
		datemath.MustDate(2024, 5, 15),
	)
	if err != nil {
		t.Fatal(err)
	}

	// WHEN every point adjusts under follow
	if err := r.Adjust("follow", nil); err != nil {
		t.Fatal(err)
	}

	// THEN the weekend point moves to Monday in place
	want := []string{"2024-05-15", "2024-06-17", "2024-07-15"}
	if got := r.Dates(); !sameDates(got, want) {
		t.Errorf("adjusted grid = %v, want %v", dateStrings(got), want)
	}
}

// =============================================================================
// SCHEDULES
// =============================================================================

func TestScheduleForcesBoundaries(t *testing.T) {
	// GIVEN a quarterly roll on maturity that misses the effective date
	start := datemath.MustDate(2024, 2, 1)
	end := datemath.MustDate(2025, 1, 15)

	// WHEN the schedule rolls on the default anchor (end)
	s, err := datemath.NewSchedule(start, end, datemath.MustPeriod("3M"), datemath.CalendarDate{})
	if err != nil {
		t.Fatal(err)
	}

	// THEN both boundaries appear literally, around the rolled grid
	want := []string{"2024-02-01", "2024-04-15", "2024-07-15", "2024-10-15", "2025-01-15"}
	if got := s.Dates(); !sameDates(got, want) {
		t.Errorf("schedule = %v, want %v", dateStrings(got), want)
	}
}

func TestScheduleOnGridBoundaries(t *testing.T) {
	// boundaries already on the grid are not duplicated
	start := datemath.MustDate(2024, 1, 15)
	end := datemath.MustDate(2024, 7, 15)
	s, err := datemath.NewSchedule(start, end, datemath.MustPeriod("3M"), datemath.CalendarDate{})
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"2024-01-15", "2024-04-15", "2024-07-15"}
	if got := s.Dates(); !sameDates(got, want) {
		t.Errorf("schedule = %v, want %v", dateStrings(got), want)
	}
}

func TestScheduleStubs(t *testing.T) {
	start := datemath.MustDate(2024, 2, 1)
	end := datemath.MustDate(2025, 1, 15)

	// FirstStubLong merges the short front stub into the first period
	s, err := datemath.NewSchedule(start, end, datemath.MustPeriod("3M"), datemath.CalendarDate{})
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"2024-02-01", "2024-07-15", "2024-10-15", "2025-01-15"}
	if got := s.FirstStubLong().Dates(); !sameDates(got, want) {
		t.Errorf("first stub long = %v, want %v", dateStrings(got), want)
	}

	// LastStubLong merges the last two periods
	s, err = datemath.NewSchedule(start, end, datemath.MustPeriod("3M"), datemath.CalendarDate{})
	if err != nil {
		t.Fatal(err)
	}
	want = []string{"2024-02-01", "2024-04-15", "2024-07-15", "2025-01-15"}
	if got := s.LastStubLong().Dates(); !sameDates(got, want) {
		t.Errorf("last stub long = %v, want %v", dateStrings(got), want)
	}
}

func TestScheduleStubNoOpWhenShort(t *testing.T) {
	// two dates only: nothing to merge
	start := datemath.MustDate(2024, 1, 1)
	end := datemath.MustDate(2024, 2, 1)
	s, err := datemath.NewSchedule(start, end, datemath.MustPeriod("6M"), datemath.CalendarDate{})
	if err != nil {
		t.Fatal(err)
	}
	if got := s.FirstStubLong().LastStubLong().Len(); got != 2 {
		t.Errorf("Len = %d, want 2", got)
	}
}
