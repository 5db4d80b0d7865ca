package wallet

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/pocketly/pocketly/internal/event_bus"
	"github.com/pocketly/pocketly/internal/money"
	"github.com/pocketly/pocketly/pkg/user"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

var ErrInvalidWallet = errors.New("invalid wallet")

type Service interface {
	GetAll(ctx context.Context) ([]Wallet, error)
	Get(ctx context.Context, id int) (Wallet, error)
	Create(ctx context.Context, wallet Wallet) (Wallet, error)
	Update(ctx context.Context, wallet Wallet) (Wallet, error)
	Delete(ctx context.Context, id int) error
	AdjustBalance(ctx context.Context, id int, delta decimal.Decimal) error
}

type ServiceImpl struct {
	repo Repo
}

// NewService creates the wallet service and keeps balances in sync with transaction events.
func NewService(repo Repo, eventBus *event_bus.EventBus) *ServiceImpl {
	service := &ServiceImpl{repo: repo}
	event_bus.SubscribeTyped[event_bus.TransactionChanged](
		eventBus,
		event_bus.TransactionCreatedEvent,
		func(e event_bus.EventT[event_bus.TransactionChanged]) error {
			log.Debugf("received transaction created event: %+v", e.Data)
			return service.AdjustBalance(e.Context(), e.Data.WalletId, e.Data.SignedAmount())
		},
	)
	event_bus.SubscribeTyped[event_bus.TransactionChanged](
		eventBus,
		event_bus.TransactionDeletedEvent,
		func(e event_bus.EventT[event_bus.TransactionChanged]) error {
			log.Debugf("received transaction deleted event: %+v", e.Data)
			return service.AdjustBalance(e.Context(), e.Data.WalletId, e.Data.SignedAmount().Neg())
		},
	)
	return service
}

func (s *ServiceImpl) GetAll(ctx context.Context) ([]Wallet, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.GetAll(ctx, userId)
}

func (s *ServiceImpl) Get(ctx context.Context, id int) (Wallet, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Wallet{}, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.Get(ctx, userId, id)
}

// Create stores a wallet. An empty currency is taken from the user settings.
func (s *ServiceImpl) Create(ctx context.Context, wallet Wallet) (Wallet, error) {
	currentUser, err := user.CurrentUser(ctx)
	if err != nil {
		return Wallet{}, fmt.Errorf("failed to get current user: %w", err)
	}
	if wallet.Currency == "" {
		wallet.Currency = currentUser.Settings.Currency
	}
	if err := validate(wallet); err != nil {
		return Wallet{}, err
	}
	id, err := s.repo.Store(ctx, currentUser.Id, wallet)
	if err != nil {
		return Wallet{}, err
	}
	wallet.Id = id
	return wallet, nil
}

// Update changes name, icon and currency. The balance only moves through transactions.
func (s *ServiceImpl) Update(ctx context.Context, wallet Wallet) (Wallet, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Wallet{}, fmt.Errorf("failed to get current user: %w", err)
	}
	if err := validate(wallet); err != nil {
		return Wallet{}, err
	}
	updated, err := s.repo.Update(ctx, userId, wallet)
	if err != nil {
		return Wallet{}, err
	}
	if !updated {
		log.Warnf("wallet not updated, probably because it does not exist (%d) or the user (%d) is not the owner", wallet.Id, userId)
		return Wallet{}, fmt.Errorf("wallet %d: %w", wallet.Id, ErrWalletNotFound)
	}
	return s.repo.Get(ctx, userId, wallet.Id)
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
		return fmt.Errorf("wallet %d: %w", id, ErrWalletNotFound)
	}
	return nil
}

func (s *ServiceImpl) AdjustBalance(ctx context.Context, id int, delta decimal.Decimal) error {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return fmt.Errorf("failed to get current user: %w", err)
	}
	adjusted, err := s.repo.AdjustBalance(ctx, userId, id, delta)
	if err != nil {
		return err
	}
	if !adjusted {
		return fmt.Errorf("wallet %d: %w", id, ErrWalletNotFound)
	}
	return nil
}

func validate(wallet Wallet) error {
	if strings.TrimSpace(wallet.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidWallet)
	}
	if len(wallet.Currency) != 3 {
		return fmt.Errorf("%w: currency must be a 3-letter code", ErrInvalidWallet)
	}
	if err := money.Validate(wallet.Balance); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidWallet, err)
	}
	return nil
}
