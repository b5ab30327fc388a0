package accrual_test

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/warp/busdate/accrual"
	"github.com/warp/busdate/datemath"
)

func TestAccruedQuarter(t *testing.T) {
	// GIVEN 1,000,000 EUR at 4% on 30/360
	pos := accrual.Position{
		Notional: accrual.NewAmountFromInt(1_000_000, "EUR"),
		Rate:     decimal.NewFromFloat(0.04),
		DayCount: "30/360",
	}

	// WHEN accruing over an exact calendar quarter
	got, err := pos.Accrued(datemath.MustDate(2024, 1, 1), datemath.MustDate(2024, 4, 1))
	if err != nil {
		t.Fatal(err)
	}

	// THEN interest is exactly a quarter of the annual coupon
	want := decimal.NewFromInt(10_000)
	if !got.Value.Equal(want) {
		t.Errorf("accrued = %s, want %s EUR", got, want)
	}
	if got.Currency != "EUR" {
		t.Errorf("currency = %s, want EUR", got.Currency)
	}
}

func TestAccruedUnknownDayCount(t *testing.T) {
	pos := accrual.Position{
		Notional: accrual.NewAmountFromInt(100, "EUR"),
		Rate:     decimal.NewFromFloat(0.01),
		DayCount: "act/1000",
	}
	if _, err := pos.Accrued(datemath.MustDate(2024, 1, 1), datemath.MustDate(2024, 2, 1)); err == nil {
		t.Error("unknown day count accepted")
	}
}

func TestCouponFlows(t *testing.T) {
	// GIVEN a one-year semiannual schedule rolling on maturity
	start := datemath.MustDate(2023, 1, 15)
	end := datemath.MustDate(2024, 1, 15)
	s, err := datemath.NewSchedule(start, end, datemath.MustPeriod("6M"), datemath.CalendarDate{})
	if err != nil {
		t.Fatal(err)
	}

	pos := accrual.Position{
		Notional: accrual.NewAmountFromInt(500_000, "USD"),
		Rate:     decimal.NewFromFloat(0.05),
		DayCount: "act/act icma",
	}

	// WHEN accruing coupon by coupon
	flows, err := pos.CouponFlows(s)
	if err != nil {
		t.Fatal(err)
	}

	// THEN two regular semiannual coupons of half the annual interest
	if len(flows) != 2 {
		t.Fatalf("flows = %d, want 2", len(flows))
	}
	half := decimal.NewFromInt(12_500)
	for _, c := range flows {
		if !c.Interest.Value.Equal(half) {
			t.Errorf("coupon %v -> %v = %s, want %s", c.Start, c.End, c.Interest, half)
		}
	}

	// AND the total matches the full-year accrual
	total, err := pos.TotalInterest(s)
	if err != nil {
		t.Fatal(err)
	}
	if !total.Value.Equal(decimal.NewFromInt(25_000)) {
		t.Errorf("total = %s, want 25000 USD", total)
	}
}

func TestAmountCurrencyMismatch(t *testing.T) {
	eur := accrual.NewAmountFromInt(1, "EUR")
	usd := accrual.NewAmountFromInt(1, "USD")
	if _, err := eur.Add(usd); err == nil {
		t.Error("cross-currency add accepted")
	}
}

func TestAmountRounding(t *testing.T) {
	a := accrual.NewAmount(1234.5678, "EUR").Round(2)
	if got := a.String(); got != "1234.57 EUR" {
		t.Errorf("String = %q, want %q", got, "1234.57 EUR")
	}
}
