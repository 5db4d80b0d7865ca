package stats

import (
	"testing"
	"time"

	"github.com/pocketly/pocketly/pkg/category"
	"github.com/pocketly/pocketly/pkg/period"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var startDate = time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

func amount(value string) decimal.Decimal {
	return decimal.RequireFromString(value)
}

func TestCsvStatsRendererImpl_RenderStats(t *testing.T) {
	stats := WeekStats{
		Week:      period.WeekNumber{Year: 2025, Week: 11},
		StartDate: startDate,
		EndDate:   period.EndOfDay(startDate.AddDate(0, 0, 1)),
		Days: []DailyStats{
			{
				Date: startDate,
				Categories: []CategoryStats{
					{Category: food, Amount: amount("15"), Count: 2},
					{Category: salary, Amount: decimal.Zero},
				},
				Income:  decimal.Zero,
				Expense: amount("15"),
				Count:   2,
			},
			{
				Date: startDate.AddDate(0, 0, 1),
				Categories: []CategoryStats{
					{Category: food, Amount: decimal.Zero},
					{Category: salary, Amount: amount("1000"), Count: 1},
				},
				Income:  amount("1000"),
				Expense: decimal.Zero,
				Count:   1,
			},
		},
		Categories: []CategoryStats{
			{Category: food, Amount: amount("15"), Count: 2},
			{Category: salary, Amount: amount("1000"), Count: 1},
		},
		TotalIncome:   amount("1000"),
		TotalExpense:  amount("15"),
		Count:         3,
		WeekStreak:    2,
		CurrentStreak: 3,
		LongestStreak: 4,
	}

	got, err := NewCsvStatsRenderer().RenderStats(stats)

	require.NoError(t, err)
	want := "2025-W11,Food,Salary,Income,Expense,Count\n" +
		"10/03/2025,15.00,0.00,0.00,15.00,2\n" +
		"11/03/2025,0.00,1000.00,1000.00,0.00,1\n" +
		"Total,15.00,1000.00,1000.00,15.00,3\n" +
		"Balance,985.00\n" +
		"Week streak,2\n" +
		"Current streak,3\n" +
		"Longest streak,4\n"
	assert.Equal(t, want, got)
}

func TestCsvStatsRendererImpl_RenderStats_QuotesNames(t *testing.T) {
	stats := WeekStats{
		Week: period.WeekNumber{Year: 2025, Week: 11},
		Categories: []CategoryStats{
			{Category: category.Category{Id: 3, Name: "Food, drinks", Type: category.TypeExpense}, Amount: decimal.Zero},
		},
		TotalIncome:  decimal.Zero,
		TotalExpense: decimal.Zero,
	}

	got, err := NewCsvStatsRenderer().RenderStats(stats)

	require.NoError(t, err)
	assert.Contains(t, got, "2025-W11,\"Food, drinks\",Income,Expense,Count\n")
}
