package budget

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pocketly/pocketly/internal/test_utils"
	"github.com/pocketly/pocketly/pkg/category"
	"github.com/pocketly/pocketly/pkg/period"
	"github.com/pocketly/pocketly/pkg/transaction"
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
	repo       BudgetRepo
	userId     int
	walletId   int
	categoryId int
}

func setupTestRepository(t *testing.T) repoFixture {
	repoCtx, stored, err := test_utils.ResetWithUser(context.Background(), db)
	require.NoError(t, err)
	walletId, err := wallet.NewRepo(db).Store(repoCtx, stored.Id, wallet.Wallet{Name: "Cash", Currency: "PLN"})
	require.NoError(t, err)
	categoryId, err := category.NewRepo(db).Store(repoCtx, stored.Id, category.Category{Name: "Food", Type: category.TypeExpense, Position: 100})
	require.NoError(t, err)
	return repoFixture{ctx: repoCtx, repo: NewBudgetRepo(db), userId: stored.Id, walletId: walletId, categoryId: categoryId}
}

func (f repoFixture) march(t *testing.T) int {
	id, err := f.repo.Store(f.ctx, f.userId, Budget{
		CategoryId: f.categoryId,
		Total:      decimal.RequireFromString("300.00"),
		Begin:      time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC),
		End:        time.Date(2025, time.March, 31, 23, 59, 59, 0, time.UTC),
	})
	require.NoError(t, err)
	return id
}

func TestBudgetRepoImpl_StoreGetAll(t *testing.T) {
	// given
	f := setupTestRepository(t)
	marchId := f.march(t)
	aprilId, err := f.repo.Store(f.ctx, f.userId, Budget{
		CategoryId: f.categoryId,
		Total:      decimal.NewFromInt(100),
		Begin:      time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC),
		End:        time.Date(2025, time.April, 30, 23, 59, 59, 0, time.UTC),
	})
	require.NoError(t, err)

	// when
	all, err := f.repo.GetAll(f.ctx, f.userId)

	// then
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, aprilId, all[0].Id)
	assert.Equal(t, marchId, all[1].Id)
	assert.Equal(t, "300.00", all[1].Total.StringFixed(2))
	assert.Equal(t, all[1].Range(), period.NewRange(time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC), time.Date(2025, time.March, 31, 23, 59, 59, 0, time.UTC)))
}

func TestBudgetRepoImpl_AddUsage(t *testing.T) {
	f := setupTestRepository(t)
	marchId := f.march(t)

	count, err := f.repo.AddUsage(f.ctx, f.userId, f.categoryId, time.Date(2025, time.March, 31, 23, 59, 59, 0, time.UTC), decimal.RequireFromString("12.34"))
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	count, err = f.repo.AddUsage(f.ctx, f.userId, f.categoryId, time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC), decimal.NewFromInt(5))
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	stored, err := f.repo.Get(f.ctx, f.userId, marchId)
	require.NoError(t, err)
	assert.Equal(t, "12.34", stored.AmountUsed.StringFixed(2))
}

func TestBudgetRepoImpl_RecalculateUsage(t *testing.T) {
	f := setupTestRepository(t)
	transactions := transaction.NewRepo(db)
	for _, tx := range []transaction.Transaction{
		{Type: category.TypeExpense, Amount: decimal.NewFromInt(10), Date: time.Date(2025, time.March, 2, 0, 0, 0, 0, time.UTC)},
		{Type: category.TypeExpense, Amount: decimal.RequireFromString("0.50"), Date: time.Date(2025, time.March, 30, 0, 0, 0, 0, time.UTC)},
		{Type: category.TypeExpense, Amount: decimal.NewFromInt(99), Date: time.Date(2025, time.April, 2, 0, 0, 0, 0, time.UTC)},
	} {
		tx.WalletId = f.walletId
		tx.CategoryId = f.categoryId
		tx.CreatedAt = time.Now()
		_, err := transactions.Store(f.ctx, f.userId, tx)
		require.NoError(t, err)
	}
	marchId := f.march(t)

	require.NoError(t, f.repo.RecalculateUsage(f.ctx, f.userId, marchId))

	stored, err := f.repo.Get(f.ctx, f.userId, marchId)
	require.NoError(t, err)
	assert.Equal(t, "10.50", stored.AmountUsed.StringFixed(2))
	assert.ErrorIs(t, f.repo.RecalculateUsage(f.ctx, f.userId, marchId+100), ErrBudgetNotFound)
}

func TestBudgetRepoImpl_UpdateDelete(t *testing.T) {
	f := setupTestRepository(t)
	marchId := f.march(t)

	updated, err := f.repo.Update(f.ctx, f.userId, Budget{
		Id:         marchId,
		CategoryId: f.categoryId,
		Total:      decimal.NewFromInt(400),
		Begin:      time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC),
		End:        time.Date(2025, time.March, 15, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	assert.True(t, updated)

	stored, err := f.repo.Get(f.ctx, f.userId, marchId)
	require.NoError(t, err)
	assert.Equal(t, "400", stored.Total.String())
	assert.Equal(t, 15, stored.End.UTC().Day())

	deleted, err := f.repo.Delete(f.ctx, f.userId, marchId)
	require.NoError(t, err)
	assert.True(t, deleted)
	_, err = f.repo.Get(f.ctx, f.userId, marchId)
	assert.ErrorIs(t, err, ErrBudgetNotFound)
}
