package stats

import (
	"context"
	"fmt"
	"time"

	"github.com/pocketly/pocketly/internal/utils"
	"github.com/pocketly/pocketly/pkg/category"
	"github.com/pocketly/pocketly/pkg/period"
	"github.com/pocketly/pocketly/pkg/streak"
	"github.com/pocketly/pocketly/pkg/transaction"
	"github.com/pocketly/pocketly/pkg/user"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

type StatsService interface {
	// GetWeekStats aggregates the week containing date. A zero date means now.
	GetWeekStats(ctx context.Context, date time.Time) (WeekStats, error)
}

type TransactionReader interface {
	List(ctx context.Context, from, to time.Time) ([]transaction.Transaction, error)
	CreationTimes(ctx context.Context, from, to time.Time) ([]time.Time, error)
	CreationDays(ctx context.Context) ([]string, error)
}

type CategoryLister interface {
	GetAll(ctx context.Context) ([]category.Category, error)
}

type StatsServiceImpl struct {
	transactions TransactionReader
	categories   CategoryLister
	clock        utils.Clock
}

func NewStatsServiceImpl(transactions TransactionReader, categories CategoryLister, clock utils.Clock) *StatsServiceImpl {
	if clock == nil {
		clock = &utils.SystemClock{}
	}
	return &StatsServiceImpl{
		transactions: transactions,
		categories:   categories,
		clock:        clock,
	}
}

func (s *StatsServiceImpl) GetWeekStats(ctx context.Context, date time.Time) (WeekStats, error) {
	currentUser, err := user.CurrentUser(ctx)
	if err != nil {
		return WeekStats{}, fmt.Errorf("failed to get current user: %w", err)
	}
	loc := currentUser.Settings.Location()
	weekFirstDay := currentUser.Settings.WeekFirstDay
	if date.IsZero() {
		date = s.clock.Now()
	}

	days := period.WeekDays(date.In(loc), weekFirstDay)
	weekStart := days[0]
	weekEnd := period.EndOfDay(days[len(days)-1])

	categories, err := s.categories.GetAll(ctx)
	if err != nil {
		return WeekStats{}, err
	}
	transactions, err := s.transactions.List(ctx, weekStart, weekEnd)
	if err != nil {
		return WeekStats{}, err
	}
	log.Tracef("Transactions in week %v: %d", weekStart, len(transactions))

	stats := WeekStats{
		Week:         period.WeekNumberFromDate(weekStart, weekFirstDay),
		StartDate:    weekStart,
		EndDate:      weekEnd,
		Days:         make([]DailyStats, 0, len(days)),
		TotalIncome:  decimal.Zero,
		TotalExpense: decimal.Zero,
	}
	for _, day := range days {
		dayTransactions := sameDay(transactions, day, loc)
		dailyStats := DailyStats{
			Date:       day,
			Categories: categoryStats(categories, dayTransactions),
			Income:     decimal.Zero,
			Expense:    decimal.Zero,
			Count:      len(dayTransactions),
		}
		for _, t := range dayTransactions {
			if t.IsIncome() {
				dailyStats.Income = dailyStats.Income.Add(t.Amount)
			} else {
				dailyStats.Expense = dailyStats.Expense.Add(t.Amount)
			}
		}
		stats.TotalIncome = stats.TotalIncome.Add(dailyStats.Income)
		stats.TotalExpense = stats.TotalExpense.Add(dailyStats.Expense)
		stats.Count += dailyStats.Count
		stats.Days = append(stats.Days, dailyStats)
	}
	stats.Categories = categoryStats(categories, transactions)

	today := utils.NowIn(s.clock, loc)
	creationTimes, err := s.transactions.CreationTimes(ctx, weekStart, weekEnd)
	if err != nil {
		return WeekStats{}, err
	}
	stats.WeekStreak = streak.ComputeWeekStreak(creationTimes, weekStart, today)

	creationDays, err := s.transactions.CreationDays(ctx)
	if err != nil {
		return WeekStats{}, err
	}
	daySet := make(map[string]struct{}, len(creationDays))
	for _, day := range creationDays {
		daySet[day] = struct{}{}
	}
	stats.CurrentStreak = streak.Current(daySet, today)
	stats.LongestStreak = streak.Longest(daySet)

	return stats, nil
}

func sameDay(transactions []transaction.Transaction, day time.Time, loc *time.Location) []transaction.Transaction {
	var result []transaction.Transaction
	for _, t := range transactions {
		if period.IsSameDay(t.Date, day, loc) {
			result = append(result, t)
		}
	}
	return result
}

// categoryStats returns one entry per category, zero when nothing was spent or earned.
func categoryStats(categories []category.Category, transactions []transaction.Transaction) []CategoryStats {
	byCategory := make(map[int]*CategoryStats, len(categories))
	result := make([]CategoryStats, len(categories))
	for i, c := range categories {
		result[i] = CategoryStats{Category: c, Amount: decimal.Zero}
		byCategory[c.Id] = &result[i]
	}
	for _, t := range transactions {
		entry, ok := byCategory[t.CategoryId]
		if !ok {
			log.Warnf("transaction %d references unknown category %d", t.Id, t.CategoryId)
			continue
		}
		entry.Amount = entry.Amount.Add(t.Amount)
		entry.Count++
	}
	return result
}
