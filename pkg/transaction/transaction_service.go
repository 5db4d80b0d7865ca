package transaction

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/pocketly/pocketly/internal/event_bus"
	"github.com/pocketly/pocketly/internal/money"
	"github.com/pocketly/pocketly/internal/utils"
	"github.com/pocketly/pocketly/pkg/category"
	"github.com/pocketly/pocketly/pkg/user"
	"github.com/pocketly/pocketly/pkg/wallet"
	log "github.com/sirupsen/logrus"
)

var ErrInvalidTransaction = errors.New("invalid transaction")
var ErrInvalidDateRange = errors.New("from must not be after to")

type Service interface {
	List(ctx context.Context, from, to time.Time) ([]Transaction, error)
	Get(ctx context.Context, id int) (Transaction, error)
	Create(ctx context.Context, transaction Transaction) (Transaction, error)
	Delete(ctx context.Context, id int) error
	CreationTimes(ctx context.Context, from, to time.Time) ([]time.Time, error)
	CreationDays(ctx context.Context) ([]string, error)
}

type CategoryReader interface {
	Get(ctx context.Context, id int) (category.Category, error)
}

type WalletReader interface {
	Get(ctx context.Context, id int) (wallet.Wallet, error)
}

type ServiceImpl struct {
	repo       Repo
	categories CategoryReader
	wallets    WalletReader
	eventBus   *event_bus.EventBus
	clock      utils.Clock
}

func NewService(repo Repo, categories CategoryReader, wallets WalletReader, eventBus *event_bus.EventBus, clock utils.Clock) *ServiceImpl {
	return &ServiceImpl{
		repo:       repo,
		categories: categories,
		wallets:    wallets,
		eventBus:   eventBus,
		clock:      clock,
	}
}

func (s *ServiceImpl) List(ctx context.Context, from, to time.Time) ([]Transaction, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	if from.After(to) {
		return nil, ErrInvalidDateRange
	}
	return s.repo.GetBetween(ctx, userId, from, to)
}

func (s *ServiceImpl) Get(ctx context.Context, id int) (Transaction, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Transaction{}, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.Get(ctx, userId, id)
}

// Create validates and stores the transaction, then publishes TransactionCreatedEvent so balances
// and budgets follow. An empty type is taken from the category. Once stored, the transaction is
// returned even when a subscriber fails; the failure is only logged.
func (s *ServiceImpl) Create(ctx context.Context, transaction Transaction) (Transaction, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Transaction{}, fmt.Errorf("failed to get current user: %w", err)
	}
	if err := s.validate(ctx, &transaction); err != nil {
		return Transaction{}, err
	}
	transaction.CreatedAt = s.clock.Now()

	id, err := s.repo.Store(ctx, userId, transaction)
	if err != nil {
		return Transaction{}, err
	}
	transaction.Id = id
	log.Debugf("stored transaction %d for user %d", id, userId)

	err = s.eventBus.Publish(event_bus.NewEvent(ctx, event_bus.TransactionCreatedEvent, transaction.changed()))
	if err != nil {
		log.Warnf("transaction %d stored, but not every subscriber applied it: %v", id, err)
	}
	return transaction, nil
}

func (s *ServiceImpl) Delete(ctx context.Context, id int) error {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return fmt.Errorf("failed to get current user: %w", err)
	}
	transaction, err := s.repo.Get(ctx, userId, id)
	if err != nil {
		return err
	}
	deleted, err := s.repo.Delete(ctx, userId, id)
	if err != nil {
		return err
	}
	if !deleted {
		return fmt.Errorf("transaction %d: %w", id, ErrTransactionNotFound)
	}
	err = s.eventBus.Publish(event_bus.NewEvent(ctx, event_bus.TransactionDeletedEvent, transaction.changed()))
	if err != nil {
		log.Warnf("transaction %d deleted, but not every subscriber applied it: %v", id, err)
	}
	return nil
}

func (s *ServiceImpl) CreationTimes(ctx context.Context, from, to time.Time) ([]time.Time, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.GetCreationTimes(ctx, userId, from, to)
}

// CreationDays lists distinct creation days in the user's timezone.
func (s *ServiceImpl) CreationDays(ctx context.Context) ([]string, error) {
	currentUser, err := user.CurrentUser(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.GetCreationDays(ctx, currentUser.Id, currentUser.Settings.Location().String())
}

func (s *ServiceImpl) validate(ctx context.Context, transaction *Transaction) error {
	if !transaction.Amount.IsPositive() {
		return fmt.Errorf("%w: amount must be positive", ErrInvalidTransaction)
	}
	if err := money.Validate(transaction.Amount); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidTransaction, err)
	}
	if transaction.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidTransaction)
	}
	if transaction.WalletId == 0 || transaction.CategoryId == 0 {
		return fmt.Errorf("%w: wallet and category are required", ErrInvalidTransaction)
	}
	if _, err := s.wallets.Get(ctx, transaction.WalletId); err != nil {
		if errors.Is(err, wallet.ErrWalletNotFound) {
			return fmt.Errorf("%w: %v", ErrInvalidTransaction, err)
		}
		return err
	}
	c, err := s.categories.Get(ctx, transaction.CategoryId)
	if err != nil {
		if errors.Is(err, category.ErrCategoryNotFound) {
			return fmt.Errorf("%w: %v", ErrInvalidTransaction, err)
		}
		return err
	}
	if transaction.Type == "" {
		transaction.Type = c.Type
	}
	if transaction.Type != c.Type {
		return fmt.Errorf("%w: %s transaction in %s category", ErrInvalidTransaction, transaction.Type, c.Type)
	}
	return nil
}
