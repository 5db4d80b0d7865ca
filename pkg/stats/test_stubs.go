package stats

import (
	"context"
	"slices"
	"time"

	"github.com/pocketly/pocketly/pkg/category"
	"github.com/pocketly/pocketly/pkg/streak"
	"github.com/pocketly/pocketly/pkg/transaction"
)

type transactionReaderStub struct {
	transactions []transaction.Transaction
	// extraDays are creation days reported in addition to the ones of transactions.
	extraDays []string
	loc       *time.Location
}

func newTransactionReaderStub(loc *time.Location) *transactionReaderStub {
	return &transactionReaderStub{loc: loc}
}

func (s *transactionReaderStub) set(transactions []transaction.Transaction, extraDays ...string) {
	s.transactions = transactions
	s.extraDays = extraDays
}

func (s *transactionReaderStub) List(ctx context.Context, from, to time.Time) ([]transaction.Transaction, error) {
	var result []transaction.Transaction
	for _, t := range s.transactions {
		if !t.Date.Before(from) && !t.Date.After(to) {
			result = append(result, t)
		}
	}
	return result, nil
}

func (s *transactionReaderStub) CreationTimes(ctx context.Context, from, to time.Time) ([]time.Time, error) {
	var result []time.Time
	for _, t := range s.transactions {
		if !t.CreatedAt.Before(from) && !t.CreatedAt.After(to) {
			result = append(result, t.CreatedAt)
		}
	}
	return result, nil
}

func (s *transactionReaderStub) CreationDays(ctx context.Context) ([]string, error) {
	days := make([]string, 0, len(s.transactions)+len(s.extraDays))
	for _, t := range s.transactions {
		days = append(days, streak.DayKey(t.CreatedAt, s.loc))
	}
	days = append(days, s.extraDays...)
	slices.Sort(days)
	return slices.Compact(days), nil
}

func (s *transactionReaderStub) reset() {
	s.transactions = nil
	s.extraDays = nil
}

type categoryListerStub struct {
	categories []category.Category
}

func (s *categoryListerStub) GetAll(ctx context.Context) ([]category.Category, error) {
	return s.categories, nil
}
