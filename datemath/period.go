/*
period.go - Signed calendar/business-day periods and their grammar

PURPOSE:
  A Period is a signed (years, months, days, businessDays) value such as
  "3M", "1Y6M", "2W" or "2B". The compact string grammar is the primary
  wire format for configuration and display.

GRAMMAR (case-insensitive):
  - literals: "" and "0D" (zero), "ON" (1 business day), "TN" (2), "DD" (3)
  - otherwise a sequence of signed-integer-then-letter tokens in the
    fixed letter order B, Y, Q, M, W, D; quarters fold into months (x3),
    weeks into days (x7). Only the leading token may carry a sign, which
    applies to every component. Long names (YEARS, MONTHS, ...) are
    accepted and folded to their letters.

INVARIANTS (established by every constructor):
  - businessDays != 0 implies years = months = days = 0
  - |months| < 12, months carried into years
  - sign(years) == sign(months) == sign(days) whenever non-zero

SEE ALSO:
  - date.go: AddPeriod / DiffInYMD produce and consume Periods
  - range.go: the schedule grid steps by a Period
*/
package datemath

import (
	"fmt"
	"strings"
)

// Period is an immutable signed calendar or business-day distance.
// Construct through NewPeriod or ParsePeriod; both normalize and
// enforce the invariants above.
type Period struct {
	Years        int
	Months       int
	Days         int
	BusinessDays int
}

// =============================================================================
// CONSTRUCTION
// =============================================================================

// NewPeriod builds a normalized Period from raw components.
func NewPeriod(years, months, days, businessDays int) (Period, error) {
	years += months / 12
	months %= 12

	if businessDays != 0 && (years != 0 || months != 0 || days != 0) {
		return Period{}, fmt.Errorf(
			"%w: either (years, months, days) or business days must be zero", ErrInvalidPeriod)
	}
	if mixedSigns(years, months, days) {
		return Period{}, fmt.Errorf(
			"%w: (years=%d, months=%d, days=%d) must have equal sign", ErrInvalidPeriod, years, months, days)
	}
	return Period{Years: years, Months: months, Days: days, BusinessDays: businessDays}, nil
}

// ParsePeriod parses the compact period grammar.
func ParsePeriod(s string) (Period, error) {
	in := s
	s = strings.ToUpper(strings.ReplaceAll(s, " ", ""))

	switch s {
	case "", "0D":
		return Period{}, nil
	case "ON":
		return Period{BusinessDays: 1}, nil
	case "TN":
		return Period{BusinessDays: 2}, nil
	case "DD":
		return Period{BusinessDays: 3}, nil
	}

	for _, r := range [][2]string{
		{"BUSINESSDAYS", "B"}, {"YEARS", "Y"}, {"QUARTERS", "Q"},
		{"MONTHS", "M"}, {"WEEKS", "W"}, {"DAYS", "D"},
	} {
		s = strings.ReplaceAll(s, r[0], r[1])
	}

	tokens, err := scanPeriodTokens(in, s)
	if err != nil {
		return Period{}, err
	}

	var b, y, m, d int
	seenCalendar := false
	for _, t := range tokens {
		switch t.letter {
		case 'B':
			b = t.value
		case 'Y':
			y = t.value
		case 'Q':
			m += 3 * t.value
		case 'M':
			m += t.value
		case 'W':
			d += 7 * t.value
		case 'D':
			d += t.value
		}
		if t.letter != 'B' {
			seenCalendar = true
		}
	}
	if b != 0 && seenCalendar {
		return Period{}, &PeriodParseError{Input: in, Reason: "business days cannot be combined with calendar components"}
	}
	return NewPeriod(y, m, d, b)
}

// MustPeriod is ParsePeriod that panics on malformed input.
// Intended for literals in tests and wiring code.
func MustPeriod(s string) Period {
	p, err := ParsePeriod(s)
	if err != nil {
		panic(err)
	}
	return p
}

// IsPeriod reports whether v can be understood as a Period: a Period
// value itself or a parseable period string. It never fails.
func IsPeriod(v any) bool {
	switch t := v.(type) {
	case Period:
		return true
	case string:
		_, err := ParsePeriod(t)
		return err == nil
	}
	return false
}

type periodToken struct {
	letter byte
	value  int
}

// letter ranks fix the required token order B < Y < Q < M < W < D.
var periodLetterRank = map[byte]int{'B': 0, 'Y': 1, 'Q': 2, 'M': 3, 'W': 4, 'D': 5}

func scanPeriodTokens(in, s string) ([]periodToken, error) {
	var tokens []periodToken
	sign, lastRank := 0, -1

	i := 0
	for i < len(s) {
		start := i
		explicit := 0
		if s[i] == '+' || s[i] == '-' {
			explicit = 1
			if s[i] == '-' {
				explicit = -1
			}
			i++
		}
		n, digits := 0, 0
		for i < len(s) && '0' <= s[i] && s[i] <= '9' {
			n = n*10 + int(s[i]-'0')
			digits++
			i++
		}
		if digits == 0 || i == len(s) {
			return nil, &PeriodParseError{Input: in, Reason: fmt.Sprintf("malformed token at %q", s[start:])}
		}
		rank, ok := periodLetterRank[s[i]]
		if !ok {
			return nil, &PeriodParseError{Input: in, Reason: fmt.Sprintf("unknown unit %q", string(s[i]))}
		}
		if rank <= lastRank {
			return nil, &PeriodParseError{Input: in, Reason: "tokens must follow the order B, Y, Q, M, W, D"}
		}
		if explicit != 0 && len(tokens) > 0 {
			return nil, &PeriodParseError{Input: in, Reason: "only the leading token may carry a sign"}
		}
		if len(tokens) == 0 {
			sign = 1
			if explicit != 0 {
				sign = explicit
			}
		}
		tokens = append(tokens, periodToken{letter: s[i], value: sign * n})
		lastRank = rank
		i++
	}
	if len(tokens) == 0 {
		return nil, &PeriodParseError{Input: in, Reason: "empty token sequence"}
	}
	return tokens, nil
}

func mixedSigns(vs ...int) bool {
	pos, neg := false, false
	for _, v := range vs {
		if v > 0 {
			pos = true
		}
		if v < 0 {
			neg = true
		}
	}
	return pos && neg
}

// =============================================================================
// ARITHMETIC
// =============================================================================

// IsZero reports whether every component is zero.
func (p Period) IsZero() bool {
	return p.Years == 0 && p.Months == 0 && p.Days == 0 && p.BusinessDays == 0
}

// Add returns the normalized component-wise sum. The sum can violate the
// sign invariants (e.g. "1Y" + "-2M"), which is rejected.
func (p Period) Add(o Period) (Period, error) {
	return NewPeriod(p.Years+o.Years, p.Months+o.Months, p.Days+o.Days, p.BusinessDays+o.BusinessDays)
}

// Sub returns p + (-o).
func (p Period) Sub(o Period) (Period, error) {
	return p.Add(o.Negate())
}

// Negate flips the sign of every component. Negation of a valid Period
// is always valid.
func (p Period) Negate() Period {
	return Period{Years: -p.Years, Months: -p.Months, Days: -p.Days, BusinessDays: -p.BusinessDays}
}

// Scale multiplies every component by n and renormalizes. Scaling a
// valid Period cannot break the sign invariants.
func (p Period) Scale(n int) Period {
	years := n * p.Years
	months := n * p.Months
	years += months / 12
	months %= 12
	return Period{Years: years, Months: months, Days: n * p.Days, BusinessDays: n * p.BusinessDays}
}

// =============================================================================
// COMPARISON
// =============================================================================

// Cmp orders two periods: negative if p < o, zero if equal in length,
// positive if p > o. Two pure calendar periods compare by the
// (years*12+months)*31+days key; two business-day periods by count.
// A calendar period compares against a business-day period only when
// provable day bounds separate them, otherwise ErrIncomparable.
func (p Period) Cmp(o Period) (int, error) {
	pCal := p.BusinessDays == 0
	oCal := o.BusinessDays == 0

	switch {
	case pCal && oCal:
		return cmpInt(p.calendarKey(), o.calendarKey()), nil
	case !pCal && !oCal:
		return cmpInt(p.BusinessDays, o.BusinessDays), nil
	case pCal:
		c, err := cmpCalendarBusiness(p, o.BusinessDays)
		return c, err
	default:
		c, err := cmpCalendarBusiness(o, p.BusinessDays)
		return -c, err
	}
}

func (p Period) calendarKey() int {
	return (p.Years*12+p.Months)*31 + p.Days
}

// dayBounds returns the provable [min, max] span of a pure calendar
// period in calendar days.
func (p Period) dayBounds() (lo, hi int) {
	lo = 365*p.Years + 28*p.Months + p.Days
	hi = 366*p.Years + 31*p.Months + p.Days
	if lo > hi {
		lo, hi = hi, lo
	}
	return lo, hi
}

// cmpCalendarBusiness compares a calendar period against b business
// days. n business days span at least n calendar days forward (or at
// most n backward); there is no provable upper bound, so only one-sided
// separations decide.
func cmpCalendarBusiness(cal Period, b int) (int, error) {
	lo, hi := cal.dayBounds()
	switch {
	case cal.IsZero() && b == 0:
		return 0, nil
	case b > 0 && hi < b:
		return -1, nil
	case b < 0 && lo > b:
		return 1, nil
	case b == 0 && lo > 0:
		return 1, nil
	case b == 0 && hi < 0:
		return -1, nil
	}
	return 0, fmt.Errorf("%w: %s vs %s", ErrIncomparable, cal, Period{BusinessDays: b})
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// =============================================================================
// RENDERING
// =============================================================================

// String renders the canonical compact form. It is the parser's left
// inverse per component, not a round trip of the original text:
// "18M" parses to one year six months and renders as "1Y6M".
func (p Period) String() string {
	if p.BusinessDays != 0 {
		return fmt.Sprintf("%dB", p.BusinessDays)
	}
	var sb strings.Builder
	if p.Years < 0 || p.Months < 0 || p.Days < 0 {
		sb.WriteByte('-')
	}
	if p.Years != 0 {
		fmt.Fprintf(&sb, "%dY", abs(p.Years))
	}
	if p.Months != 0 {
		fmt.Fprintf(&sb, "%dM", abs(p.Months))
	}
	if p.Days != 0 {
		fmt.Fprintf(&sb, "%dD", abs(p.Days))
	}
	if sb.Len() == 0 {
		return "0D"
	}
	return sb.String()
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
