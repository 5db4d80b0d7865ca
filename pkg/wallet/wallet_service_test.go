package wallet

import (
	"context"
	"testing"

	"github.com/pocketly/pocketly/internal/event_bus"
	"github.com/pocketly/pocketly/pkg/user"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ctx = user.WithUser(context.Background(), user.User{Id: 1, Settings: user.Settings{Currency: "PLN"}})

var repoStub = NewStubRepo()

func setup(t *testing.T) (*ServiceImpl, *event_bus.EventBus, func()) {
	bus := event_bus.NewEventBus()
	return NewService(repoStub, bus), bus, func() {
		t.Log("Teardown after test")
		repoStub.Cleanup()
	}
}

func TestServiceImpl_Create(t *testing.T) {
	t.Run("should default currency to user settings", func(t *testing.T) {
		service, _, teardown := setup(t)
		defer teardown()

		created, err := service.Create(ctx, Wallet{Name: "Cash", Balance: decimal.RequireFromString("10")})

		require.NoError(t, err)
		assert.Equal(t, "PLN", created.Currency)
		stored, err := service.Get(ctx, created.Id)
		require.NoError(t, err)
		assert.True(t, stored.Balance.Equal(decimal.NewFromInt(10)))
	})

	t.Run("should reject invalid wallet", func(t *testing.T) {
		service, _, teardown := setup(t)
		defer teardown()

		_, err := service.Create(ctx, Wallet{Name: " "})
		assert.ErrorIs(t, err, ErrInvalidWallet)

		_, err = service.Create(ctx, Wallet{Name: "Bank", Currency: "EURO"})
		assert.ErrorIs(t, err, ErrInvalidWallet)

		_, err = service.Create(ctx, Wallet{Name: "Bank", Balance: decimal.RequireFromString("10.005")})
		assert.ErrorIs(t, err, ErrInvalidWallet)
	})

	t.Run("should return error when context has no user", func(t *testing.T) {
		service, _, teardown := setup(t)
		defer teardown()

		_, err := service.Create(context.Background(), Wallet{Name: "Cash"})

		assert.ErrorIs(t, err, user.ErrNoUser)
	})
}

func TestServiceImpl_UpdateKeepsBalance(t *testing.T) {
	service, _, teardown := setup(t)
	defer teardown()
	created, err := service.Create(ctx, Wallet{Name: "Cash", Balance: decimal.NewFromInt(5)})
	require.NoError(t, err)

	updated, err := service.Update(ctx, Wallet{Id: created.Id, Name: "Pocket", Currency: "EUR", Balance: decimal.NewFromInt(1000)})

	require.NoError(t, err)
	assert.Equal(t, "Pocket", updated.Name)
	assert.Equal(t, "EUR", updated.Currency)
	assert.True(t, updated.Balance.Equal(decimal.NewFromInt(5)))

	_, err = service.Update(ctx, Wallet{Id: 99, Name: "Missing", Currency: "EUR"})
	assert.ErrorIs(t, err, ErrWalletNotFound)
}

func TestServiceImpl_TransactionEventsMoveBalance(t *testing.T) {
	service, bus, teardown := setup(t)
	defer teardown()
	created, err := service.Create(ctx, Wallet{Name: "Cash"})
	require.NoError(t, err)

	expense := event_bus.TransactionChanged{WalletId: created.Id, Amount: decimal.RequireFromString("12.30")}
	income := event_bus.TransactionChanged{WalletId: created.Id, Income: true, Amount: decimal.RequireFromString("100")}

	require.NoError(t, bus.Publish(event_bus.NewEvent(ctx, event_bus.TransactionCreatedEvent, expense)))
	require.NoError(t, bus.Publish(event_bus.NewEvent(ctx, event_bus.TransactionCreatedEvent, income)))
	require.NoError(t, bus.Publish(event_bus.NewEvent(ctx, event_bus.TransactionDeletedEvent, expense)))

	stored, err := service.Get(ctx, created.Id)
	require.NoError(t, err)
	assert.Equal(t, "100", stored.Balance.String())
}

func TestServiceImpl_AdjustBalanceUnknownWallet(t *testing.T) {
	service, _, teardown := setup(t)
	defer teardown()

	err := service.AdjustBalance(ctx, 404, decimal.NewFromInt(1))

	assert.ErrorIs(t, err, ErrWalletNotFound)
}

func TestServiceImpl_Delete(t *testing.T) {
	service, _, teardown := setup(t)
	defer teardown()
	created, err := service.Create(ctx, Wallet{Name: "Cash"})
	require.NoError(t, err)

	require.NoError(t, service.Delete(ctx, created.Id))
	assert.ErrorIs(t, service.Delete(ctx, created.Id), ErrWalletNotFound)
}
