// Package streak counts consecutive days with at least one transaction.
package streak

import (
	"sort"
	"time"
)

const dayKeyLayout = "2006-01-02"

// DayKey returns the YYYY-MM-DD form of t in loc.
func DayKey(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(dayKeyLayout)
}

// DaySet reduces timestamps to distinct calendar days in loc.
func DaySet(timestamps []time.Time, loc *time.Location) map[string]struct{} {
	days := make(map[string]struct{}, len(timestamps))
	for _, ts := range timestamps {
		days[DayKey(ts, loc)] = struct{}{}
	}
	return days
}

// ComputeWeekStreak counts the leading run of transacted days of the week starting at weekStart.
// The first day is weekStart's calendar date in its own location; days are then evaluated in
// today's location. The walk stops at the first day without a transaction or at the first day
// after today, so only a prefix of the week can count.
func ComputeWeekStreak(transactionTimestamps []time.Time, weekStart time.Time, today time.Time) int {
	loc := today.Location()
	transacted := DaySet(transactionTimestamps, loc)
	todayKey := DayKey(today, loc)

	year, month, day := weekStart.Date()
	start := time.Date(year, month, day, 0, 0, 0, 0, loc)
	count := 0
	for i := 0; i < 7; i++ {
		dayKey := DayKey(start.AddDate(0, 0, i), loc)
		if dayKey > todayKey {
			break
		}
		if _, ok := transacted[dayKey]; !ok {
			break
		}
		count++
	}
	return count
}

// Longest returns the longest run of consecutive calendar days in days.
func Longest(days map[string]struct{}) int {
	sorted := sortedDays(days)
	longest, run := 0, 0
	var previous time.Time
	for i, day := range sorted {
		if i > 0 && previous.AddDate(0, 0, 1).Equal(day) {
			run++
		} else {
			run = 1
		}
		longest = max(longest, run)
		previous = day
	}
	return longest
}

// Current returns the run of consecutive days ending today. A run ending yesterday still counts
// as current since today may not have a transaction yet.
func Current(days map[string]struct{}, today time.Time) int {
	loc := today.Location()
	day := today.In(loc)
	if _, ok := days[DayKey(day, loc)]; !ok {
		day = day.AddDate(0, 0, -1)
	}
	count := 0
	for {
		if _, ok := days[DayKey(day, loc)]; !ok {
			return count
		}
		count++
		day = day.AddDate(0, 0, -1)
	}
}

func sortedDays(days map[string]struct{}) []time.Time {
	sorted := make([]time.Time, 0, len(days))
	for key := range days {
		day, err := time.Parse(dayKeyLayout, key)
		if err != nil {
			continue
		}
		sorted = append(sorted, day)
	}
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Before(sorted[j])
	})
	return sorted
}
