package period

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

type WeekNumber struct {
	Week int
	Year int
}

// StartOfDay returns midnight of the day containing date, in date's location.
func StartOfDay(date time.Time) time.Time {
	year, month, day := date.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, date.Location())
}

// EndOfDay returns the last nanosecond of the day containing date.
func EndOfDay(date time.Time) time.Time {
	return StartOfDay(date).AddDate(0, 0, 1).Add(-time.Nanosecond)
}

// StartOfWeek returns midnight of the first day of the week containing date. An out of range
// weekStartDay falls back to Monday.
func StartOfWeek(date time.Time, weekStartDay time.Weekday) time.Time {
	if weekStartDay < time.Sunday || weekStartDay > time.Saturday {
		weekStartDay = time.Monday
	}
	delta := (int(date.Weekday()) - int(weekStartDay) + 7) % 7
	return StartOfDay(date).AddDate(0, 0, -delta)
}

// WeekDays returns midnight of each of the 7 days of the week containing date, in order.
func WeekDays(date time.Time, weekStartDay time.Weekday) []time.Time {
	start := StartOfWeek(date, weekStartDay)
	days := make([]time.Time, 0, 7)
	for i := 0; i < 7; i++ {
		days = append(days, start.AddDate(0, 0, i))
	}
	return days
}

// IsSameDay reports whether both instants fall on the same calendar day in loc.
func IsSameDay(date1, date2 time.Time, loc *time.Location) bool {
	year1, month1, day1 := date1.In(loc).Date()
	year2, month2, day2 := date2.In(loc).Date()
	return year1 == year2 && month1 == month2 && day1 == day2
}

// WeekNumberFromDate returns the ISO week number that corresponds to the week containing
// the provided date, taking the desired week start day into account. The week start day
// can shift the ISO week into the previous calendar week when it is earlier than Monday.
func WeekNumberFromDate(date time.Time, weekStartDay time.Weekday) WeekNumber {
	year, week := StartOfWeek(date, weekStartDay).ISOWeek()
	return WeekNumber{Year: year, Week: week}
}

// WeekNumberFromString converts ISO week format ISO 8601 e.g. "2025-W03" to WeekNumber
func WeekNumberFromString(isoWeekString string) (WeekNumber, error) {
	parts := strings.Split(isoWeekString, "-")
	if len(parts) != 2 || !strings.HasPrefix(parts[1], "W") {
		return WeekNumber{}, fmt.Errorf("invalid ISO week format: %s", isoWeekString)
	}
	year, err := strconv.Atoi(parts[0])
	if err != nil {
		return WeekNumber{}, fmt.Errorf("invalid year: %w", err)
	}
	week, err := strconv.Atoi(parts[1][1:])
	if err != nil {
		return WeekNumber{}, fmt.Errorf("invalid week: %w", err)
	}
	return WeekNumber{Year: year, Week: week}, nil
}

// String returns the ISO week format ISO 8601 e.g. "2025-W03"
func (w WeekNumber) String() string {
	return fmt.Sprintf("%04d-W%02d", w.Year, w.Week)
}
