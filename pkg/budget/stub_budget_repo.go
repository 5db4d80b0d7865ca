package budget

import (
	"context"
	"slices"
	"time"

	"github.com/shopspring/decimal"
)

type StubBudgetRepo struct {
	nextId int
	data   map[int]Budget
}

func NewStubBudgetRepo() *StubBudgetRepo {
	return &StubBudgetRepo{data: map[int]Budget{}}
}

func (s *StubBudgetRepo) Store(ctx context.Context, userId int, budget Budget) (int, error) {
	s.nextId++
	budget.Id = s.nextId
	s.data[budget.Id] = budget
	return budget.Id, nil
}

func (s *StubBudgetRepo) Get(ctx context.Context, userId int, id int) (Budget, error) {
	budget, ok := s.data[id]
	if !ok {
		return Budget{}, ErrBudgetNotFound
	}
	return budget, nil
}

// GetAll keeps insertion order so grouping tests can rely on it.
func (s *StubBudgetRepo) GetAll(ctx context.Context, userId int) ([]Budget, error) {
	budgets := make([]Budget, 0, len(s.data))
	for _, budget := range s.data {
		budgets = append(budgets, budget)
	}
	slices.SortFunc(budgets, func(a, b Budget) int { return a.Id - b.Id })
	return budgets, nil
}

func (s *StubBudgetRepo) Update(ctx context.Context, userId int, budget Budget) (bool, error) {
	existing, ok := s.data[budget.Id]
	if !ok {
		return false, nil
	}
	budget.AmountUsed = existing.AmountUsed
	s.data[budget.Id] = budget
	return true, nil
}

func (s *StubBudgetRepo) Delete(ctx context.Context, userId int, id int) (bool, error) {
	if _, ok := s.data[id]; !ok {
		return false, nil
	}
	delete(s.data, id)
	return true, nil
}

func (s *StubBudgetRepo) AddUsage(ctx context.Context, userId int, categoryId int, date time.Time, delta decimal.Decimal) (int, error) {
	count := 0
	for id, budget := range s.data {
		if budget.CategoryId == categoryId && budget.Covers(date) {
			budget.AmountUsed = budget.AmountUsed.Add(delta)
			s.data[id] = budget
			count++
		}
	}
	return count, nil
}

func (s *StubBudgetRepo) RecalculateUsage(ctx context.Context, userId int, id int) error {
	if _, ok := s.data[id]; !ok {
		return ErrBudgetNotFound
	}
	return nil
}

func (s *StubBudgetRepo) Cleanup() {
	s.nextId = 0
	s.data = map[int]Budget{}
}
