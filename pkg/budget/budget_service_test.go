package budget

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/pocketly/pocketly/internal/event_bus"
	"github.com/pocketly/pocketly/internal/utils"
	"github.com/pocketly/pocketly/pkg/category"
	"github.com/pocketly/pocketly/pkg/period"
	"github.com/pocketly/pocketly/pkg/user"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var warsaw, _ = time.LoadLocation("Europe/Warsaw")

var ctx = user.WithUser(context.Background(), user.User{
	Id:       1,
	Settings: user.Settings{Timezone: "Europe/Warsaw", WeekFirstDay: time.Monday, Currency: "PLN"},
})

// Friday, 14 March 2025
var clock = &utils.MockClock{FixedNow: time.Date(2025, time.March, 14, 10, 30, 0, 0, time.UTC)}

var budgetRepoStub = NewStubBudgetRepo()
var categoryRepoStub = category.NewStubRepo()

type fixture struct {
	service *BudgetServiceImpl
	bus     *event_bus.EventBus
	food    category.Category
	salary  category.Category
}

func setup(t *testing.T, translate period.TranslateFunc) (fixture, func()) {
	categories := category.NewService(categoryRepoStub)
	food, err := categories.Create(ctx, category.Category{Name: "Food", Type: category.TypeExpense})
	require.NoError(t, err)
	salary, err := categories.Create(ctx, category.Category{Name: "Salary", Type: category.TypeIncome})
	require.NoError(t, err)

	bus := event_bus.NewEventBus()
	return fixture{
			service: NewBudgetServiceImpl(budgetRepoStub, categories, bus, clock, translate),
			bus:     bus,
			food:    food,
			salary:  salary,
		}, func() {
			t.Log("Teardown after test")
			budgetRepoStub.Cleanup()
			categoryRepoStub.Cleanup()
		}
}

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, warsaw)
}

func endOf(year int, month time.Month, d int) time.Time {
	return period.EndOfDay(day(year, month, d))
}

func TestBudgetServiceImpl_Create(t *testing.T) {
	t.Run("should store budget with zero usage", func(t *testing.T) {
		f, teardown := setup(t, nil)
		defer teardown()

		created, err := f.service.Create(ctx, Budget{
			CategoryId: f.food.Id,
			Total:      decimal.NewFromInt(500),
			AmountUsed: decimal.NewFromInt(42),
			Begin:      day(2025, time.March, 1),
			End:        endOf(2025, time.March, 31),
		})

		require.NoError(t, err)
		assert.NotZero(t, created.Id)
		assert.True(t, created.AmountUsed.IsZero())
		assert.Equal(t, "500", created.Remaining().String())
	})

	tests := []struct {
		name    string
		budget  func(f fixture) Budget
		wantErr error
	}{
		{"begin after end", func(f fixture) Budget {
			return Budget{CategoryId: f.food.Id, Total: decimal.NewFromInt(1), Begin: day(2025, time.April, 1), End: day(2025, time.March, 1)}
		}, ErrInvalidRange},
		{"missing bounds", func(f fixture) Budget {
			return Budget{CategoryId: f.food.Id, Total: decimal.NewFromInt(1)}
		}, ErrInvalidBudget},
		{"negative total", func(f fixture) Budget {
			return Budget{CategoryId: f.food.Id, Total: decimal.NewFromInt(-1), Begin: day(2025, time.March, 1), End: day(2025, time.March, 2)}
		}, ErrInvalidBudget},
		{"total with fractions of a cent", func(f fixture) Budget {
			return Budget{CategoryId: f.food.Id, Total: decimal.RequireFromString("12.345"), Begin: day(2025, time.March, 1), End: day(2025, time.March, 2)}
		}, ErrInvalidBudget},
		{"total beyond storable range", func(f fixture) Budget {
			return Budget{CategoryId: f.food.Id, Total: decimal.RequireFromString("1e20"), Begin: day(2025, time.March, 1), End: day(2025, time.March, 2)}
		}, ErrInvalidBudget},
		{"income category", func(f fixture) Budget {
			return Budget{CategoryId: f.salary.Id, Total: decimal.NewFromInt(1), Begin: day(2025, time.March, 1), End: day(2025, time.March, 2)}
		}, ErrInvalidBudget},
		{"unknown category", func(f fixture) Budget {
			return Budget{CategoryId: 999, Total: decimal.NewFromInt(1), Begin: day(2025, time.March, 1), End: day(2025, time.March, 2)}
		}, ErrInvalidBudget},
	}
	for _, tt := range tests {
		t.Run("should reject "+tt.name, func(t *testing.T) {
			f, teardown := setup(t, nil)
			defer teardown()

			_, err := f.service.Create(ctx, tt.budget(f))

			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	t.Run("should accept single instant range", func(t *testing.T) {
		f, teardown := setup(t, nil)
		defer teardown()
		instant := day(2025, time.March, 14)

		_, err := f.service.Create(ctx, Budget{CategoryId: f.food.Id, Total: decimal.NewFromInt(1), Begin: instant, End: instant})

		assert.NoError(t, err)
	})
}

func TestBudgetServiceImpl_UpdateAndDelete(t *testing.T) {
	f, teardown := setup(t, nil)
	defer teardown()
	created, err := f.service.Create(ctx, Budget{
		CategoryId: f.food.Id,
		Total:      decimal.NewFromInt(100),
		Begin:      day(2025, time.March, 1),
		End:        endOf(2025, time.March, 31),
	})
	require.NoError(t, err)

	created.Total = decimal.NewFromInt(150)
	updated, err := f.service.Update(ctx, created)
	require.NoError(t, err)
	assert.Equal(t, "150", updated.Total.String())

	missing := created
	missing.Id = 404
	_, err = f.service.Update(ctx, missing)
	assert.ErrorIs(t, err, ErrBudgetNotFound)

	require.NoError(t, f.service.Delete(ctx, created.Id))
	assert.ErrorIs(t, f.service.Delete(ctx, created.Id), ErrBudgetNotFound)
}

func TestBudgetServiceImpl_TracksExpenseTransactions(t *testing.T) {
	f, teardown := setup(t, nil)
	defer teardown()
	march, err := f.service.Create(ctx, Budget{
		CategoryId: f.food.Id,
		Total:      decimal.NewFromInt(300),
		Begin:      day(2025, time.March, 1),
		End:        endOf(2025, time.March, 31),
	})
	require.NoError(t, err)
	april, err := f.service.Create(ctx, Budget{
		CategoryId: f.food.Id,
		Total:      decimal.NewFromInt(300),
		Begin:      day(2025, time.April, 1),
		End:        endOf(2025, time.April, 30),
	})
	require.NoError(t, err)

	lunch := event_bus.TransactionChanged{Id: 1, CategoryId: f.food.Id, Amount: decimal.RequireFromString("25.40"), Date: day(2025, time.March, 14)}
	bonus := event_bus.TransactionChanged{Id: 2, CategoryId: f.food.Id, Income: true, Amount: decimal.NewFromInt(100), Date: day(2025, time.March, 14)}
	dinner := event_bus.TransactionChanged{Id: 3, CategoryId: f.food.Id, Amount: decimal.NewFromInt(10), Date: day(2025, time.March, 20)}

	require.NoError(t, f.bus.Publish(event_bus.NewEvent(ctx, event_bus.TransactionCreatedEvent, lunch)))
	require.NoError(t, f.bus.Publish(event_bus.NewEvent(ctx, event_bus.TransactionCreatedEvent, bonus)))
	require.NoError(t, f.bus.Publish(event_bus.NewEvent(ctx, event_bus.TransactionCreatedEvent, dinner)))
	require.NoError(t, f.bus.Publish(event_bus.NewEvent(ctx, event_bus.TransactionDeletedEvent, dinner)))

	march, err = f.service.Get(ctx, march.Id)
	require.NoError(t, err)
	april, err = f.service.Get(ctx, april.Id)
	require.NoError(t, err)
	assert.Equal(t, "25.40", march.AmountUsed.StringFixed(2))
	assert.Equal(t, "274.60", march.Remaining().StringFixed(2))
	assert.True(t, april.AmountUsed.IsZero())
}

func TestBudgetServiceImpl_GetGrouped(t *testing.T) {
	t.Run("should group by exact period in first-seen order and label relative to now", func(t *testing.T) {
		f, teardown := setup(t, nil)
		defer teardown()
		create := func(begin, end time.Time) Budget {
			b, err := f.service.Create(ctx, Budget{CategoryId: f.food.Id, Total: decimal.NewFromInt(100), Begin: begin, End: end})
			require.NoError(t, err)
			return b
		}
		thisMonth1 := create(day(2025, time.March, 1), endOf(2025, time.March, 31))
		lastWeek := create(day(2025, time.March, 3), endOf(2025, time.March, 9))
		thisMonth2 := create(day(2025, time.March, 1), endOf(2025, time.March, 31))
		shifted := create(day(2025, time.March, 1).Add(time.Second), endOf(2025, time.March, 31))
		custom := create(day(2024, time.December, 15), endOf(2025, time.January, 15))
		sameYear := create(day(2025, time.February, 3), endOf(2025, time.February, 20))

		// when
		groups, err := f.service.GetGrouped(ctx)

		// then
		require.NoError(t, err)
		require.Len(t, groups, 5)

		assert.Equal(t, period.LabelThisMonth, groups[0].Label)
		assert.Equal(t, []Budget{thisMonth1, thisMonth2}, groups[0].Budgets)
		assert.Equal(t, "200", groups[0].Total().String())

		assert.Equal(t, period.LabelLastWeek, groups[1].Label)
		assert.Equal(t, []Budget{lastWeek}, groups[1].Budgets)

		// a one-second shift is a different bucket even though it covers the same days
		assert.Equal(t, period.LabelThisMonth, groups[2].Label)
		assert.Equal(t, []Budget{shifted}, groups[2].Budgets)

		assert.Equal(t, "15/12/2024 – 15/01/2025", groups[3].Label)
		assert.Equal(t, []Budget{custom}, groups[3].Budgets)

		assert.Equal(t, "03/02 – 20/02/2025", groups[4].Label)
		assert.Equal(t, []Budget{sameYear}, groups[4].Budgets)
	})

	t.Run("should return empty list without budgets", func(t *testing.T) {
		f, teardown := setup(t, nil)
		defer teardown()

		groups, err := f.service.GetGrouped(ctx)

		require.NoError(t, err)
		assert.Empty(t, groups)
	})

	t.Run("should translate labels", func(t *testing.T) {
		f, teardown := setup(t, strings.ToUpper)
		defer teardown()
		_, err := f.service.Create(ctx, Budget{CategoryId: f.food.Id, Total: decimal.NewFromInt(1), Begin: day(2025, time.March, 14), End: endOf(2025, time.March, 14)})
		require.NoError(t, err)

		groups, err := f.service.GetGrouped(ctx)

		require.NoError(t, err)
		require.Len(t, groups, 1)
		assert.Equal(t, "TODAY", groups[0].Label)
	})

	t.Run("should return error when context has no user", func(t *testing.T) {
		f, teardown := setup(t, nil)
		defer teardown()

		_, err := f.service.GetGrouped(context.Background())

		assert.ErrorIs(t, err, user.ErrNoUser)
	})
}
