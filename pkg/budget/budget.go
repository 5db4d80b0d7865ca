package budget

import (
	"time"

	"github.com/pocketly/pocketly/pkg/period"
	"github.com/shopspring/decimal"
)

// Budget caps spending in one expense category over [Begin, End]. Both bounds are inclusive.
type Budget struct {
	Id         int
	CategoryId int
	Total      decimal.Decimal
	AmountUsed decimal.Decimal
	Begin      time.Time
	End        time.Time
}

func (b Budget) Range() period.RangeKey {
	return period.NewRange(b.Begin, b.End)
}

func (b Budget) Remaining() decimal.Decimal {
	return b.Total.Sub(b.AmountUsed)
}

func (b Budget) Covers(t time.Time) bool {
	return !t.Before(b.Begin) && !t.After(b.End)
}

// Group is a set of budgets sharing the exact same period, with a label relative to now.
type Group struct {
	Label   string
	Range   period.RangeKey
	Budgets []Budget
}

func (g Group) Total() decimal.Decimal {
	total := decimal.Zero
	for _, b := range g.Budgets {
		total = total.Add(b.Total)
	}
	return total
}

func (g Group) AmountUsed() decimal.Decimal {
	used := decimal.Zero
	for _, b := range g.Budgets {
		used = used.Add(b.AmountUsed)
	}
	return used
}
