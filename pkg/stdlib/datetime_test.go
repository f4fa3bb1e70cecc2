package stdlib_test

import "testing"

func TestDatetimeAtBeginningOfDay(t *testing.T) {
	wantStrVal(t, `ds.datetime.atBeginningOfDay("2024-03-15T14:30:00Z")`, "2024-03-15T00:00:00Z")
}

func TestDatetimeAtBeginningOfMonthYear(t *testing.T) {
	wantStrVal(t, `ds.datetime.atBeginningOfMonth("2024-03-15T14:30:00Z")`, "2024-03-01T00:00:00Z")
	wantStrVal(t, `ds.datetime.atBeginningOfYear("2024-03-15T14:30:00Z")`, "2024-01-01T00:00:00Z")
}

func TestDatetimeAtBeginningOfWeekRollsBackToSunday(t *testing.T) {
	// 2024-03-15 is a Friday; the preceding Sunday is 2024-03-10.
	wantStrVal(t, `ds.datetime.atBeginningOfWeek("2024-03-15T14:30:00Z")`, "2024-03-10T00:00:00Z")
}

func TestDatetimeAtBeginningOfWeekStaysOnSunday(t *testing.T) {
	wantStrVal(t, `ds.datetime.atBeginningOfWeek("2024-03-10T14:30:00Z")`, "2024-03-10T00:00:00Z")
}

func TestDatetimeCompareAndDaysBetween(t *testing.T) {
	wantNum(t, `ds.datetime.compare("2024-01-01T00:00:00Z", "2024-01-02T00:00:00Z")`, -1)
	wantNum(t, `ds.datetime.daysBetween("2024-01-01T00:00:00Z", "2024-01-11T00:00:00Z")`, 10)
}

func TestDatetimePlusMinus(t *testing.T) {
	wantStrVal(t, `ds.datetime.plus("2024-01-01T00:00:00Z", "P1D")`, "2024-01-02T00:00:00Z")
	wantStrVal(t, `ds.datetime.minus("2024-01-02T00:00:00Z", "P1D")`, "2024-01-01T00:00:00Z")
}
