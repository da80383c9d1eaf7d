package domain

import "time"

// RegionalOffset is the fixed offset of the regional calendar from UTC.
// The region observes no daylight saving, so plain addition is exact.
const RegionalOffset = 9 * time.Hour

// Date is a calendar date without a time of day.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// RegionalDate returns the regional calendar date of the given instant.
func RegionalDate(t time.Time) Date {
	shifted := t.UTC().Add(RegionalOffset)
	y, m, d := shifted.Date()
	return Date{Year: y, Month: m, Day: d}
}

// String formats the date as YYYY-MM-DD.
func (d Date) String() string {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC).Format(time.DateOnly)
}

// StartUTC returns the UTC instant at which this regional date begins.
func (d Date) StartUTC() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC).Add(-RegionalOffset)
}

// DaysIn returns the number of days in the given month, respecting leap years.
func DaysIn(year int, month time.Month) int {
	// Day 0 of the next month normalizes to the last day of this one.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// MonthRangeUTC returns the half-open UTC interval [start, end) covering the
// regional calendar month. Month must already be validated.
func MonthRangeUTC(year int, month time.Month) (time.Time, time.Time) {
	start := Date{Year: year, Month: month, Day: 1}.StartUTC()
	end := time.Date(year, month+1, 1, 0, 0, 0, 0, time.UTC).Add(-RegionalOffset)
	return start, end
}

// ValidateMonth checks that month is within 1-12.
func ValidateMonth(month int) error {
	if month < 1 || month > 12 {
		return NewValidationError("month", "must be between 1 and 12", ErrInvalidMonth)
	}
	return nil
}
