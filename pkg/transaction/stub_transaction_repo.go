package transaction

import (
	"context"
	"slices"
	"time"

	"github.com/pocketly/pocketly/pkg/streak"
)

type StubRepo struct {
	nextId int
	data   map[int]Transaction
}

func NewStubRepo() *StubRepo {
	return &StubRepo{data: map[int]Transaction{}}
}

func (s *StubRepo) Store(ctx context.Context, userId int, transaction Transaction) (int, error) {
	s.nextId++
	transaction.Id = s.nextId
	s.data[transaction.Id] = transaction
	return transaction.Id, nil
}

func (s *StubRepo) Get(ctx context.Context, userId int, id int) (Transaction, error) {
	transaction, ok := s.data[id]
	if !ok {
		return Transaction{}, ErrTransactionNotFound
	}
	return transaction, nil
}

func (s *StubRepo) GetBetween(ctx context.Context, userId int, from, to time.Time) ([]Transaction, error) {
	result := make([]Transaction, 0)
	for _, transaction := range s.sorted(func(a, b Transaction) int { return a.Date.Compare(b.Date) }) {
		if !transaction.Date.Before(from) && !transaction.Date.After(to) {
			result = append(result, transaction)
		}
	}
	return result, nil
}

func (s *StubRepo) GetCreationTimes(ctx context.Context, userId int, from, to time.Time) ([]time.Time, error) {
	result := make([]time.Time, 0)
	for _, transaction := range s.sorted(func(a, b Transaction) int { return a.CreatedAt.Compare(b.CreatedAt) }) {
		if !transaction.CreatedAt.Before(from) && !transaction.CreatedAt.After(to) {
			result = append(result, transaction.CreatedAt)
		}
	}
	return result, nil
}

func (s *StubRepo) GetCreationDays(ctx context.Context, userId int, timezone string) ([]string, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, err
	}
	days := make([]string, 0)
	for _, transaction := range s.data {
		day := streak.DayKey(transaction.CreatedAt, loc)
		if !slices.Contains(days, day) {
			days = append(days, day)
		}
	}
	slices.Sort(days)
	return days, nil
}

func (s *StubRepo) Delete(ctx context.Context, userId int, id int) (bool, error) {
	if _, ok := s.data[id]; !ok {
		return false, nil
	}
	delete(s.data, id)
	return true, nil
}

func (s *StubRepo) Cleanup() {
	s.nextId = 0
	s.data = map[int]Transaction{}
}

func (s *StubRepo) sorted(cmp func(a, b Transaction) int) []Transaction {
	all := make([]Transaction, 0, len(s.data))
	for _, transaction := range s.data {
		all = append(all, transaction)
	}
	slices.SortStableFunc(all, func(a, b Transaction) int {
		if c := cmp(a, b); c != 0 {
			return c
		}
		return a.Id - b.Id
	})
	return all
}
