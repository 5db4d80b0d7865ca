package category

import (
	"cmp"
	"context"
	"slices"
)

type StubRepo struct {
	nextId int
	data   map[int]Category
}

func NewStubRepo() *StubRepo {
	return &StubRepo{data: map[int]Category{}}
}

// WithTransaction restores the previous state when fn fails.
func (s *StubRepo) WithTransaction(ctx context.Context, fn func(repo Repo) error) error {
	snapshot := make(map[int]Category, len(s.data))
	for id, category := range s.data {
		snapshot[id] = category
	}
	nextId := s.nextId
	if err := fn(s); err != nil {
		s.data = snapshot
		s.nextId = nextId
		return err
	}
	return nil
}

func (s *StubRepo) Store(ctx context.Context, userId int, category Category) (int, error) {
	s.nextId++
	category.Id = s.nextId
	s.data[category.Id] = category
	return category.Id, nil
}

func (s *StubRepo) Get(ctx context.Context, userId int, id int) (Category, error) {
	category, ok := s.data[id]
	if !ok {
		return Category{}, ErrCategoryNotFound
	}
	return category, nil
}

func (s *StubRepo) GetAll(ctx context.Context, userId int) ([]Category, error) {
	categories := make([]Category, 0, len(s.data))
	for _, category := range s.data {
		categories = append(categories, category)
	}
	slices.SortFunc(categories, func(a, b Category) int {
		return cmp.Or(cmp.Compare(a.Position, b.Position), cmp.Compare(a.Id, b.Id))
	})
	return categories, nil
}

func (s *StubRepo) Update(ctx context.Context, userId int, category Category) (bool, error) {
	existing, ok := s.data[category.Id]
	if !ok {
		return false, nil
	}
	category.Position = existing.Position
	s.data[category.Id] = category
	return true, nil
}

func (s *StubRepo) UpdatePosition(ctx context.Context, userId int, category Category) (bool, error) {
	existing, ok := s.data[category.Id]
	if !ok {
		return false, nil
	}
	existing.Position = category.Position
	s.data[category.Id] = existing
	return true, nil
}

func (s *StubRepo) FindMaxPosition(ctx context.Context, userId int) (int, error) {
	maxPosition := 0
	for _, category := range s.data {
		maxPosition = max(maxPosition, category.Position)
	}
	return maxPosition, nil
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
	s.data = map[int]Category{}
}
