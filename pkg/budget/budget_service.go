package budget

import (
	"context"
	"errors"
	"fmt"

	"github.com/pocketly/pocketly/internal/event_bus"
	"github.com/pocketly/pocketly/internal/money"
	"github.com/pocketly/pocketly/internal/utils"
	"github.com/pocketly/pocketly/pkg/category"
	"github.com/pocketly/pocketly/pkg/period"
	"github.com/pocketly/pocketly/pkg/user"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

var ErrInvalidRange = errors.New("budget begin must not be after end")
var ErrInvalidBudget = errors.New("invalid budget")

type BudgetService interface {
	GetAll(ctx context.Context) ([]Budget, error)
	Get(ctx context.Context, id int) (Budget, error)
	Create(ctx context.Context, budget Budget) (Budget, error)
	Update(ctx context.Context, budget Budget) (Budget, error)
	Delete(ctx context.Context, id int) error
	// GetGrouped returns budgets grouped by identical period, each group labelled relative to now.
	GetGrouped(ctx context.Context) ([]Group, error)
}

type CategoryReader interface {
	Get(ctx context.Context, id int) (category.Category, error)
}

type BudgetServiceImpl struct {
	repo       BudgetRepo
	categories CategoryReader
	clock      utils.Clock
	translate  period.TranslateFunc
}

// NewBudgetServiceImpl creates the service and subscribes it to transaction events so that
// expenses are counted against matching budgets.
func NewBudgetServiceImpl(
	repo BudgetRepo,
	categories CategoryReader,
	eventBus *event_bus.EventBus,
	clock utils.Clock,
	translate period.TranslateFunc,
) *BudgetServiceImpl {
	if translate == nil {
		translate = period.Untranslated
	}
	service := &BudgetServiceImpl{
		repo:       repo,
		categories: categories,
		clock:      clock,
		translate:  translate,
	}
	event_bus.SubscribeTyped[event_bus.TransactionChanged](
		eventBus,
		event_bus.TransactionCreatedEvent,
		func(e event_bus.EventT[event_bus.TransactionChanged]) error {
			return service.handleTransactionChanged(e.Context(), e.Data, false)
		},
	)
	event_bus.SubscribeTyped[event_bus.TransactionChanged](
		eventBus,
		event_bus.TransactionDeletedEvent,
		func(e event_bus.EventT[event_bus.TransactionChanged]) error {
			return service.handleTransactionChanged(e.Context(), e.Data, true)
		},
	)
	return service
}

func (s *BudgetServiceImpl) GetAll(ctx context.Context) ([]Budget, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.GetAll(ctx, userId)
}

func (s *BudgetServiceImpl) Get(ctx context.Context, id int) (Budget, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Budget{}, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.Get(ctx, userId, id)
}

// Create stores the budget and counts expenses already recorded inside its period.
func (s *BudgetServiceImpl) Create(ctx context.Context, budget Budget) (Budget, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Budget{}, fmt.Errorf("failed to get current user: %w", err)
	}
	if err := s.validate(ctx, budget); err != nil {
		return Budget{}, err
	}
	budget.AmountUsed = decimal.Zero

	id, err := s.repo.Store(ctx, userId, budget)
	if err != nil {
		return Budget{}, err
	}
	if err := s.repo.RecalculateUsage(ctx, userId, id); err != nil {
		return Budget{}, err
	}
	return s.repo.Get(ctx, userId, id)
}

func (s *BudgetServiceImpl) Update(ctx context.Context, budget Budget) (Budget, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Budget{}, fmt.Errorf("failed to get current user: %w", err)
	}
	if err := s.validate(ctx, budget); err != nil {
		return Budget{}, err
	}
	updated, err := s.repo.Update(ctx, userId, budget)
	if err != nil {
		return Budget{}, err
	}
	if !updated {
		log.Warnf("budget not updated, probably because it does not exist (%d) or the user (%d) is not the owner", budget.Id, userId)
		return Budget{}, fmt.Errorf("budget %d: %w", budget.Id, ErrBudgetNotFound)
	}
	if err := s.repo.RecalculateUsage(ctx, userId, budget.Id); err != nil {
		return Budget{}, err
	}
	return s.repo.Get(ctx, userId, budget.Id)
}

func (s *BudgetServiceImpl) Delete(ctx context.Context, id int) error {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return fmt.Errorf("failed to get current user: %w", err)
	}
	deleted, err := s.repo.Delete(ctx, userId, id)
	if err != nil {
		return err
	}
	if !deleted {
		log.Warnf("budget not deleted, probably because it does not exist (%d) or the user (%d) is not the owner", id, userId)
		return fmt.Errorf("budget %d: %w", id, ErrBudgetNotFound)
	}
	return nil
}

func (s *BudgetServiceImpl) GetGrouped(ctx context.Context) ([]Group, error) {
	currentUser, err := user.CurrentUser(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	budgets, err := s.repo.GetAll(ctx, currentUser.Id)
	if err != nil {
		return nil, err
	}

	now := utils.NowIn(s.clock, currentUser.Settings.Location())
	buckets := period.Bucketize(budgets)
	groups := make([]Group, 0, buckets.Len())
	buckets.Each(func(key period.RangeKey, bucket period.Bucket[Budget]) bool {
		groups = append(groups, Group{
			Label:   period.LabelForRange(key, now, currentUser.Settings.WeekFirstDay, s.translate),
			Range:   key,
			Budgets: bucket.Records,
		})
		return true
	})
	return groups, nil
}

func (s *BudgetServiceImpl) handleTransactionChanged(ctx context.Context, tx event_bus.TransactionChanged, deleted bool) error {
	if tx.Income {
		return nil
	}
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return fmt.Errorf("failed to get current user: %w", err)
	}
	delta := tx.Amount
	if deleted {
		delta = delta.Neg()
	}
	count, err := s.repo.AddUsage(ctx, userId, tx.CategoryId, tx.Date, delta)
	if err != nil {
		log.Errorf("failed to update budgets for transaction %d: %v", tx.Id, err)
		return err
	}
	log.Debugf("transaction %d counted against %d budget(s)", tx.Id, count)
	return nil
}

func (s *BudgetServiceImpl) validate(ctx context.Context, budget Budget) error {
	if budget.Begin.IsZero() || budget.End.IsZero() {
		return fmt.Errorf("%w: begin and end are required", ErrInvalidBudget)
	}
	if budget.Begin.After(budget.End) {
		return ErrInvalidRange
	}
	if budget.Total.IsNegative() {
		return fmt.Errorf("%w: total must not be negative", ErrInvalidBudget)
	}
	if err := money.Validate(budget.Total); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidBudget, err)
	}
	c, err := s.categories.Get(ctx, budget.CategoryId)
	if err != nil {
		if errors.Is(err, category.ErrCategoryNotFound) {
			return fmt.Errorf("%w: %v", ErrInvalidBudget, err)
		}
		return err
	}
	if c.Type != category.TypeExpense {
		return fmt.Errorf("%w: budgets only apply to expense categories", ErrInvalidBudget)
	}
	return nil
}
