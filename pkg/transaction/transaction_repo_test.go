package transaction

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pocketly/pocketly/internal/test_utils"
	"github.com/pocketly/pocketly/pkg/category"
	"github.com/pocketly/pocketly/pkg/wallet"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var db *pgxpool.Pool

func TestMain(m *testing.M) {
	var cleanup func()
	db, cleanup = test_utils.TestWithDB()
	code := m.Run()
	cleanup()
	os.Exit(code)
}

type repoFixture struct {
	ctx        context.Context
	repo       Repo
	userId     int
	walletId   int
	categoryId int
}

func setupTestRepository(t *testing.T) repoFixture {
	ctx, stored, err := test_utils.ResetWithUser(context.Background(), db)
	require.NoError(t, err)
	walletId, err := wallet.NewRepo(db).Store(ctx, stored.Id, wallet.Wallet{Name: "Cash", Currency: "PLN"})
	require.NoError(t, err)
	categoryId, err := category.NewRepo(db).Store(ctx, stored.Id, category.Category{Name: "Food", Type: category.TypeExpense, Position: 100})
	require.NoError(t, err)
	return repoFixture{ctx: ctx, repo: NewRepo(db), userId: stored.Id, walletId: walletId, categoryId: categoryId}
}

func (f repoFixture) store(t *testing.T, date, createdAt time.Time) int {
	id, err := f.repo.Store(f.ctx, f.userId, Transaction{
		WalletId:   f.walletId,
		CategoryId: f.categoryId,
		Type:       category.TypeExpense,
		Amount:     decimal.RequireFromString("9.99"),
		Note:       "lunch",
		Date:       date,
		CreatedAt:  createdAt,
	})
	require.NoError(t, err)
	return id
}

func TestRepoImpl_StoreAndGet(t *testing.T) {
	// given
	f := setupTestRepository(t)
	date := time.Date(2025, time.March, 10, 12, 0, 0, 0, time.UTC)

	// when
	id := f.store(t, date, date.Add(time.Hour))

	// then
	stored, err := f.repo.Get(f.ctx, f.userId, id)
	require.NoError(t, err)
	assert.Equal(t, "9.99", stored.Amount.StringFixed(2))
	assert.Equal(t, category.TypeExpense, stored.Type)
	assert.Equal(t, "lunch", stored.Note)
	assert.True(t, date.Equal(stored.Date))
	assert.True(t, date.Add(time.Hour).Equal(stored.CreatedAt))

	_, err = f.repo.Get(f.ctx, f.userId+1, id)
	assert.ErrorIs(t, err, ErrTransactionNotFound)
}

func TestRepoImpl_GetBetweenAndCreationTimes(t *testing.T) {
	f := setupTestRepository(t)
	base := time.Date(2025, time.March, 10, 12, 0, 0, 0, time.UTC)
	f.store(t, base, base)
	f.store(t, base.AddDate(0, 0, 2), base.AddDate(0, 0, 2))
	f.store(t, base.AddDate(0, 0, 10), base.AddDate(0, 0, 10))

	between, err := f.repo.GetBetween(f.ctx, f.userId, base, base.AddDate(0, 0, 5))
	require.NoError(t, err)
	assert.Len(t, between, 2)

	times, err := f.repo.GetCreationTimes(f.ctx, f.userId, base.AddDate(0, 0, 1), base.AddDate(0, 0, 30))
	require.NoError(t, err)
	require.Len(t, times, 2)
	assert.True(t, base.AddDate(0, 0, 2).Equal(times[0]))
}

func TestRepoImpl_GetCreationDays(t *testing.T) {
	f := setupTestRepository(t)
	f.store(t, time.Now(), time.Date(2025, time.March, 9, 23, 30, 0, 0, time.UTC))
	f.store(t, time.Now(), time.Date(2025, time.March, 10, 8, 0, 0, 0, time.UTC))
	f.store(t, time.Now(), time.Date(2025, time.March, 12, 8, 0, 0, 0, time.UTC))

	warsaw, err := f.repo.GetCreationDays(f.ctx, f.userId, "Europe/Warsaw")
	require.NoError(t, err)
	assert.Equal(t, []string{"2025-03-10", "2025-03-12"}, warsaw)

	utc, err := f.repo.GetCreationDays(f.ctx, f.userId, "UTC")
	require.NoError(t, err)
	assert.Equal(t, []string{"2025-03-09", "2025-03-10", "2025-03-12"}, utc)
}

func TestRepoImpl_Delete(t *testing.T) {
	f := setupTestRepository(t)
	id := f.store(t, time.Now(), time.Now())

	deleted, err := f.repo.Delete(f.ctx, f.userId, id)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = f.repo.Delete(f.ctx, f.userId, id)
	require.NoError(t, err)
	assert.False(t, deleted)
}
