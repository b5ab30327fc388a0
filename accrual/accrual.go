/*
Package accrual computes interest accrued between dates.

PURPOSE:
  Ties the day-count engine to money: an Amount is a decimal quantity
  in a currency, and accrued interest is notional x rate x year
  fraction under a named day-count convention. Coupon accrual walks a
  Schedule period by period.

KEY CONCEPTS IN THIS FILE (accrual.go):
  - Amount: A decimal quantity with a currency code
  - Position: Notional, annual rate and day-count key
  - Accrued / CouponFlows: The two accrual operations

DESIGN PRINCIPLES:
  1. Precision: Uses decimal.Decimal to avoid floating-point errors
  2. Conventions by key: day counts resolve through the datemath
     registry, so every registry spelling works here too

USAGE:
  pos := accrual.Position{
      Notional: accrual.NewAmount(1_000_000, "EUR"),
      Rate:     decimal.NewFromFloat(0.035),
      DayCount: "act/360",
  }
  interest, err := pos.Accrued(start, end)
*/
package accrual

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/warp/busdate/datemath"
)

// =============================================================================
// AMOUNT
// =============================================================================

// Amount is a decimal quantity in a currency.
type Amount struct {
	Value    decimal.Decimal
	Currency string
}

func NewAmount(value float64, currency string) Amount {
	return Amount{Value: decimal.NewFromFloat(value), Currency: currency}
}

func NewAmountFromInt(value int, currency string) Amount {
	return Amount{Value: decimal.NewFromInt(int64(value)), Currency: currency}
}

func (a Amount) Zero() Amount                 { return Amount{Value: decimal.Zero, Currency: a.Currency} }
func (a Amount) Mul(s decimal.Decimal) Amount { return Amount{Value: a.Value.Mul(s), Currency: a.Currency} }
func (a Amount) Neg() Amount                  { return Amount{Value: a.Value.Neg(), Currency: a.Currency} }
func (a Amount) IsZero() bool                 { return a.Value.IsZero() }

// Add errors on mixed currencies instead of silently adding numbers.
func (a Amount) Add(b Amount) (Amount, error) {
	if a.Currency != b.Currency {
		return Amount{}, fmt.Errorf("currency mismatch: %s vs %s", a.Currency, b.Currency)
	}
	return Amount{Value: a.Value.Add(b.Value), Currency: a.Currency}, nil
}

// Round returns the amount at the given decimal places, half up.
func (a Amount) Round(places int32) Amount {
	return Amount{Value: a.Value.Round(places), Currency: a.Currency}
}

func (a Amount) String() string {
	return a.Value.String() + " " + a.Currency
}

// =============================================================================
// POSITION
// =============================================================================

// Position is an interest-bearing notional with a rate convention.
type Position struct {
	Notional Amount
	Rate     decimal.Decimal // annual rate as a fraction, 0.035 for 3.5%
	DayCount string          // datemath day-count registry key
}

// Accrued returns notional x rate x year fraction over [start, end].
func (p Position) Accrued(start, end datemath.CalendarDate) (Amount, error) {
	frac, err := datemath.YearFraction(start, end, p.DayCount)
	if err != nil {
		return Amount{}, err
	}
	return p.Notional.Mul(p.Rate).Mul(decimal.NewFromFloat(frac)), nil
}

// Coupon is one schedule period's accrued interest.
type Coupon struct {
	Start, End datemath.CalendarDate
	Interest   Amount
}

// CouponFlows accrues one coupon per schedule period. Schedules with
// fewer than two dates yield no flows.
func (p Position) CouponFlows(s *datemath.Schedule) ([]Coupon, error) {
	dates := s.Dates()
	if len(dates) < 2 {
		return nil, nil
	}
	flows := make([]Coupon, 0, len(dates)-1)
	for i := 0; i+1 < len(dates); i++ {
		interest, err := p.Accrued(dates[i], dates[i+1])
		if err != nil {
			return nil, err
		}
		flows = append(flows, Coupon{Start: dates[i], End: dates[i+1], Interest: interest})
	}
	return flows, nil
}

// TotalInterest sums coupon flows; the schedule's periods share the
// position's currency so the sum cannot mismatch.
func (p Position) TotalInterest(s *datemath.Schedule) (Amount, error) {
	flows, err := p.CouponFlows(s)
	if err != nil {
		return Amount{}, err
	}
	total := p.Notional.Zero()
	for _, c := range flows {
		if total, err = total.Add(c.Interest); err != nil {
			return Amount{}, err
		}
	}
	return total, nil
}
