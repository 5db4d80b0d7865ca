package category

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/pocketly/pocketly/pkg/user"
	log "github.com/sirupsen/logrus"
)

var ErrInvalidCategory = errors.New("invalid category")

type Service interface {
	GetAll(ctx context.Context) ([]Category, error)
	Get(ctx context.Context, id int) (Category, error)
	Create(ctx context.Context, category Category) (Category, error)
	Update(ctx context.Context, category Category) (Category, error)
	Delete(ctx context.Context, id int) error
	MoveAfter(ctx context.Context, id, precedingId int) error
}

type ServiceImpl struct {
	repo Repo
}

func NewService(repo Repo) *ServiceImpl {
	return &ServiceImpl{repo: repo}
}

func (s *ServiceImpl) GetAll(ctx context.Context) ([]Category, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.GetAll(ctx, userId)
}

func (s *ServiceImpl) Get(ctx context.Context, id int) (Category, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Category{}, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.Get(ctx, userId, id)
}

// Create appends the category after the last one.
func (s *ServiceImpl) Create(ctx context.Context, category Category) (Category, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Category{}, fmt.Errorf("failed to get current user: %w", err)
	}
	if err := validate(category); err != nil {
		return Category{}, err
	}
	maxPosition, err := s.repo.FindMaxPosition(ctx, userId)
	if err != nil {
		return Category{}, err
	}
	category.Position = maxPosition + 100

	id, err := s.repo.Store(ctx, userId, category)
	if err != nil {
		return Category{}, err
	}
	category.Id = id
	return category, nil
}

func (s *ServiceImpl) Update(ctx context.Context, category Category) (Category, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Category{}, fmt.Errorf("failed to get current user: %w", err)
	}
	if err := validate(category); err != nil {
		return Category{}, err
	}
	updated, err := s.repo.Update(ctx, userId, category)
	if err != nil {
		return Category{}, err
	}
	if !updated {
		log.Warnf("category not updated, probably because it does not exist (%d) or the user (%d) is not the owner", category.Id, userId)
		return Category{}, fmt.Errorf("category %d: %w", category.Id, ErrCategoryNotFound)
	}
	return s.repo.Get(ctx, userId, category.Id)
}

func (s *ServiceImpl) Delete(ctx context.Context, id int) error {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return fmt.Errorf("failed to get current user: %w", err)
	}
	deleted, err := s.repo.Delete(ctx, userId, id)
	if err != nil {
		return err
	}
	if !deleted {
		log.Warnf("category not deleted, probably because it does not exist (%d) or the user (%d) is not the owner", id, userId)
		return fmt.Errorf("category %d: %w", id, ErrCategoryNotFound)
	}
	return nil
}

// MoveAfter places category id right after precedingId. A precedingId of 0 moves it to the front,
// and moving a category after itself keeps it in place.
// Positions are spread by 100; when no gap is left between neighbours, all categories are renumbered.
func (s *ServiceImpl) MoveAfter(ctx context.Context, id, precedingId int) error {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return fmt.Errorf("failed to get current user: %w", err)
	}
	categories, err := s.repo.GetAll(ctx, userId)
	if err != nil {
		return err
	}

	movedIdx := findCategory(id, categories)
	if movedIdx == -1 {
		return fmt.Errorf("category %d: %w", id, ErrCategoryNotFound)
	}
	if precedingId == id {
		log.Debugf("category %d moved after itself, nothing to do", id)
		return nil
	}
	if precedingId != 0 && findCategory(precedingId, categories) == -1 {
		return fmt.Errorf("category %d: %w", precedingId, ErrCategoryNotFound)
	}
	moved := categories[movedIdx]
	others := slices.Delete(slices.Clone(categories), movedIdx, movedIdx+1)

	prevPos, nextPos := findPreviousAndNextPositions(precedingId, others)
	switch {
	case nextPos == -1:
		moved.Position = prevPos + 100
	case nextPos-prevPos > 1:
		moved.Position = prevPos + (nextPos-prevPos)/2
	default:
		insertAt := findCategory(precedingId, others) + 1
		return s.reorder(ctx, userId, slices.Insert(others, insertAt, moved))
	}
	_, err = s.repo.UpdatePosition(ctx, userId, moved)
	return err
}

func (s *ServiceImpl) reorder(ctx context.Context, userId int, categories []Category) error {
	log.Debugf("renumbering %d categories of user %d", len(categories), userId)
	return s.repo.WithTransaction(ctx, func(repo Repo) error {
		for i, category := range categories {
			category.Position = (i + 1) * 100
			updated, err := repo.UpdatePosition(ctx, userId, category)
			if err != nil {
				return err
			}
			if !updated {
				return fmt.Errorf("category %d: %w", category.Id, ErrCategoryNotFound)
			}
		}
		return nil
	})
}

// findPreviousAndNextPositions returns -1 as next position when the preceding category is the last one.
func findPreviousAndNextPositions(precedingId int, categories []Category) (int, int) {
	precedingIdx := findCategory(precedingId, categories)
	if precedingIdx == -1 {
		if len(categories) == 0 {
			return 0, -1
		}
		return 0, categories[0].Position
	}
	if precedingIdx == len(categories)-1 {
		return categories[precedingIdx].Position, -1
	}
	return categories[precedingIdx].Position, categories[precedingIdx+1].Position
}

func findCategory(id int, categories []Category) int {
	return slices.IndexFunc(categories, func(c Category) bool { return c.Id == id })
}

func validate(category Category) error {
	if strings.TrimSpace(category.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidCategory)
	}
	if _, err := ParseType(string(category.Type)); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidCategory, err)
	}
	return nil
}
