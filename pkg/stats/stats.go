package stats

import (
	"time"

	"github.com/pocketly/pocketly/pkg/category"
	"github.com/pocketly/pocketly/pkg/period"
	"github.com/shopspring/decimal"
)

type DailyStats struct {
	Date       time.Time
	Categories []CategoryStats
	Income     decimal.Decimal
	Expense    decimal.Decimal
	Count      int
}

type CategoryStats struct {
	Category category.Category
	Amount   decimal.Decimal
	Count    int
}

type WeekStats struct {
	Week      period.WeekNumber
	StartDate time.Time
	EndDate   time.Time
	Days      []DailyStats
	// Categories holds week totals per category, in category order.
	Categories   []CategoryStats
	TotalIncome  decimal.Decimal
	TotalExpense decimal.Decimal
	Count        int
	// WeekStreak is the leading run of days of this week with a transaction created.
	WeekStreak    int
	CurrentStreak int
	LongestStreak int
}

func (s WeekStats) Balance() decimal.Decimal {
	return s.TotalIncome.Sub(s.TotalExpense)
}
