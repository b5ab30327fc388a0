/*
Package datemath provides the core calendar engine: serial-date
conversion, periods, date arithmetic, business-day adjustment,
day-count fractions and schedule grids.

KEY CONCEPTS:
  - Serial date: integer day count since the legacy spreadsheet epoch
    (1899-12-30), including its historical quirk: the encoding contains
    a fictitious Feb 29, 1900 at serial 60, so every real date after
    Feb 28, 1900 is shifted by one.
  - CalendarDate: immutable proleptic Gregorian (year, month, day).
  - Period: signed (years, months, days, businessDays) value with a
    compact string grammar ("3M", "1Y6M", "2B", "ON").

DESIGN PRINCIPLES:
  1. Immutability: dates and periods are values; operations return new ones
  2. No hidden clocks: the only wall-clock access is Today()
  3. Explicit failure: every partial operation returns an error

SEE ALSO:
  - period.go: the period value and its grammar
  - date.go: date arithmetic
  - adjust.go, daycount.go: pure convention functions
*/
package datemath

// =============================================================================
// SERIAL DATE - integer-serial <-> (year, month, day) conversion
// =============================================================================

// fictitiousLeapDay is the serial the legacy epoch reserves for the
// nonexistent Feb 29, 1900.
const fictitiousLeapDay = 60

// non-leap year days per month and cumulative days per month.
var (
	daysPerMonth = [12]int{31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}
	cumMonthDays = [13]int{0, 31, 59, 90, 120, 151, 181, 212, 243, 273, 304, 334, 365}
)

// IsLeapYear reports whether year is a leap year.
func IsLeapYear(year int) bool {
	return (year%4 == 0 && year%100 != 0) || year%400 == 0
}

// DaysInYear returns the number of days in the given calendar year.
func DaysInYear(year int) int {
	if IsLeapYear(year) {
		return 366
	}
	return 365
}

// DaysInMonth returns the number of days for the given year and month.
func DaysInMonth(year, month int) int {
	eom := daysPerMonth[month-1]
	if month == 2 && IsLeapYear(year) {
		eom++
	}
	return eom
}

// IsValidYMD reports whether (year, month, day) is representable in the
// serial encoding. Years before 1899 are below the epoch floor.
func IsValidYMD(year, month, day int) bool {
	return 1899 <= year &&
		1 <= month && month <= 12 &&
		1 <= day && day <= DaysInMonth(year, month)
}

// ToSerial converts (year, month, day) into its serial encoding.
func ToSerial(year, month, day int) (int, error) {
	if !IsValidYMD(year, month, day) {
		return 0, &InvalidDateError{Year: year, Month: month, Day: day}
	}

	days := cumMonthDays[month-1] + day
	if IsLeapYear(year) && month > 2 {
		days++
	}

	dist := year - 1900
	days += dist*365 + floorDiv(dist+3, 4) - floorDiv(dist+99, 100) + floorDiv(dist+299, 400)

	// skip the fictitious leap day for every date after Feb 28, 1900
	if afterFeb1900(year, month, day) {
		days++
	}
	return days, nil
}

// FromSerialYMD converts a serial back to (year, month, day). Serial 60
// has no calendar image and is rejected rather than folded into a
// neighbour.
func FromSerialYMD(serial int) (year, month, day int, err error) {
	if serial == fictitiousLeapDay {
		return 0, 0, 0, &InvalidDateError{Year: 1900, Month: 2, Day: 29}
	}

	rest := serial
	if serial > fictitiousLeapDay {
		rest--
	}

	year = floorDiv(rest-1, 365)
	rest = rest - 365*year - floorDiv(year+3, 4) + floorDiv(year+99, 100) - floorDiv(year+299, 400)
	year += 1900

	for rest <= 0 {
		year--
		rest += DaysInYear(year)
	}

	if IsLeapYear(year) && rest == 60 {
		return year, 2, 29, nil
	}
	if IsLeapYear(year) && rest > 60 {
		rest--
	}
	month = 1
	for rest > cumMonthDays[month] {
		month++
	}
	return year, month, rest - cumMonthDays[month-1], nil
}

// EndOfQuarterMonth returns the last month (3, 6, 9 or 12) of the
// quarter containing month.
func EndOfQuarterMonth(month int) int {
	for month%3 != 0 {
		month++
	}
	return month
}

func afterFeb1900(year, month, day int) bool {
	if year != 1900 {
		return year > 1900
	}
	if month != 2 {
		return month > 2
	}
	return day > 28
}

// floorDiv is integer division rounding toward negative infinity, which
// the year decomposition relies on for pre-1900 serials.
func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
