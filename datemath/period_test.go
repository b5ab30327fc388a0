package datemath_test

import (
	"errors"
	"testing"

	"github.com/warp/busdate/datemath"
)

// =============================================================================
// GRAMMAR TESTS
// =============================================================================

func TestParsePeriod(t *testing.T) {
	cases := []struct {
		in   string
		want datemath.Period
	}{
		{"", datemath.Period{}},
		{"0D", datemath.Period{}},
		{"on", datemath.Period{BusinessDays: 1}},
		{"TN", datemath.Period{BusinessDays: 2}},
		{"dd", datemath.Period{BusinessDays: 3}},
		{"1Y", datemath.Period{Years: 1}},
		{"3m", datemath.Period{Months: 3}},
		{"2Q", datemath.Period{Months: 6}},
		{"2W", datemath.Period{Days: 14}},
		{"18M", datemath.Period{Years: 1, Months: 6}},
		{"1Y2W3D", datemath.Period{Years: 1, Days: 17}},
		{"1Y2Q3M4W5D", datemath.Period{Years: 1, Months: 9, Days: 33}},
		{"-1Y3M", datemath.Period{Years: -1, Months: -3}},
		{"+2D", datemath.Period{Days: 2}},
		{"2B", datemath.Period{BusinessDays: 2}},
		{"-10b", datemath.Period{BusinessDays: -10}},
		{"0B2Y", datemath.Period{Years: 2}},
		{"2 Years 6 Months", datemath.Period{Years: 2, Months: 6}},
	}
	for _, c := range cases {
		got, err := datemath.ParsePeriod(c.in)
		if err != nil {
			t.Fatalf("ParsePeriod(%q): %v", c.in, err)
		}
		if got != c.want {
			t.Errorf("ParsePeriod(%q) = %+v, want %+v", c.in, got, c.want)
		}
	}
}

func TestParsePeriodRejects(t *testing.T) {
	cases := []string{
		"1Y-2M",  // sign on a non-leading token
		"1M2Y",   // letter order violated
		"1Y1Y",   // duplicate token
		"2B1D",   // business days mixed with calendar components
		"1D2B",   // trailing business days
		"12",     // bare number
		"XYZ",    // garbage
		"1Y2X",   // unknown unit
		"Y",      // missing count
	}
	for _, c := range cases {
		if _, err := datemath.ParsePeriod(c); !errors.Is(err, datemath.ErrInvalidPeriod) {
			t.Errorf("ParsePeriod(%q) err = %v, want ErrInvalidPeriod", c, err)
		}
	}
}

func TestIsPeriod(t *testing.T) {
	// predicate form: converts failure into false, never an error
	for _, ok := range []any{"1Y6M", "2B", "", "ON", datemath.Period{Years: 1}} {
		if !datemath.IsPeriod(ok) {
			t.Errorf("IsPeriod(%v) = false, want true", ok)
		}
	}
	for _, bad := range []any{"1M2Y", "12", 3.14, nil} {
		if datemath.IsPeriod(bad) {
			t.Errorf("IsPeriod(%v) = true, want false", bad)
		}
	}
}

// =============================================================================
// NORMALIZATION AND INVARIANTS
// =============================================================================

func TestPeriodNormalization(t *testing.T) {
	p, err := datemath.NewPeriod(0, 26, 3, 0)
	if err != nil {
		t.Fatal(err)
	}
	if p.Years != 2 || p.Months != 2 || p.Days != 3 {
		t.Errorf("NewPeriod(0,26,3,0) = %+v, want 2Y2M3D", p)
	}

	n, err := datemath.NewPeriod(0, -26, -3, 0)
	if err != nil {
		t.Fatal(err)
	}
	if n.Years != -2 || n.Months != -2 || n.Days != -3 {
		t.Errorf("NewPeriod(0,-26,-3,0) = %+v, want -2Y2M3D", n)
	}

	if _, err := datemath.NewPeriod(1, -2, 0, 0); !errors.Is(err, datemath.ErrInvalidPeriod) {
		t.Errorf("mixed-sign period err = %v, want ErrInvalidPeriod", err)
	}
	if _, err := datemath.NewPeriod(1, 0, 0, 2); !errors.Is(err, datemath.ErrInvalidPeriod) {
		t.Errorf("business+calendar period err = %v, want ErrInvalidPeriod", err)
	}
}

func TestPeriodRendering(t *testing.T) {
	cases := []struct{ in, want string }{
		{"18M", "1Y6M"},
		{"8Q", "2Y"},
		{"-1Y3M", "-1Y3M"},
		{"0D", "0D"},
		{"", "0D"},
		{"2B", "2B"},
		{"-2B", "-2B"},
		{"1Y2W3D", "1Y17D"},
		{"ON", "1B"},
	}
	for _, c := range cases {
		if got := datemath.MustPeriod(c.in).String(); got != c.want {
			t.Errorf("MustPeriod(%q).String() = %q, want %q", c.in, got, c.want)
		}
	}
}

// =============================================================================
// ARITHMETIC AND COMPARISON
// =============================================================================

func TestPeriodArithmetic(t *testing.T) {
	sum, err := datemath.MustPeriod("1Y").Add(datemath.MustPeriod("6M"))
	if err != nil {
		t.Fatal(err)
	}
	if sum != datemath.MustPeriod("1Y6M") {
		t.Errorf("1Y + 6M = %v", sum)
	}

	// subtraction can produce a mixed-sign combination, which is rejected
	if _, err := datemath.MustPeriod("1Y").Sub(datemath.MustPeriod("2M")); !errors.Is(err, datemath.ErrInvalidPeriod) {
		t.Errorf("1Y - 2M err = %v, want ErrInvalidPeriod", err)
	}

	if got := datemath.MustPeriod("1Y6M").Scale(2); got != datemath.MustPeriod("3Y") {
		t.Errorf("(1Y6M)*2 = %v, want 3Y", got)
	}
	if got := datemath.MustPeriod("2B").Scale(-3); got != datemath.MustPeriod("-6B") {
		t.Errorf("(2B)*-3 = %v, want -6B", got)
	}
	if got := datemath.MustPeriod("-1Y3M").Negate(); got != datemath.MustPeriod("1Y3M") {
		t.Errorf("negate = %v", got)
	}
}

func TestPeriodComparison(t *testing.T) {
	lt := func(a, b string) {
		t.Helper()
		c, err := datemath.MustPeriod(a).Cmp(datemath.MustPeriod(b))
		if err != nil {
			t.Fatalf("Cmp(%s, %s): %v", a, b, err)
		}
		if c >= 0 {
			t.Errorf("Cmp(%s, %s) = %d, want negative", a, b, c)
		}
	}
	lt("11M", "1Y")
	lt("1Y", "13M")
	lt("29D", "1M")
	lt("2B", "3B")

	// a calendar month against two business days: bounds overlap
	if _, err := datemath.MustPeriod("1M").Cmp(datemath.MustPeriod("2B")); !errors.Is(err, datemath.ErrIncomparable) {
		t.Errorf("1M vs 2B err = %v, want ErrIncomparable", err)
	}
	// two days against five business days: provably separated
	c, err := datemath.MustPeriod("2D").Cmp(datemath.MustPeriod("5B"))
	if err != nil {
		t.Fatalf("2D vs 5B: %v", err)
	}
	if c >= 0 {
		t.Errorf("2D vs 5B = %d, want negative", c)
	}
}
