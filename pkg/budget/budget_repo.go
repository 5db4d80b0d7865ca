package budget

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pocketly/pocketly/internal/money"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

var ErrBudgetNotFound = errors.New("budget not found")

type BudgetRepo interface {
	Store(ctx context.Context, userId int, budget Budget) (int, error)
	Get(ctx context.Context, userId int, id int) (Budget, error)
	// GetAll returns budgets with the most recent periods first.
	GetAll(ctx context.Context, userId int) ([]Budget, error)
	Update(ctx context.Context, userId int, budget Budget) (bool, error)
	Delete(ctx context.Context, userId int, id int) (bool, error)
	// AddUsage adds delta to every budget of the category whose period covers date.
	AddUsage(ctx context.Context, userId int, categoryId int, date time.Time, delta decimal.Decimal) (int, error)
	// RecalculateUsage sets amount used from the expense transactions inside the budget period.
	RecalculateUsage(ctx context.Context, userId int, id int) error
}

type BudgetRepoImpl struct {
	db *pgxpool.Pool
}

func NewBudgetRepo(db *pgxpool.Pool) *BudgetRepoImpl {
	return &BudgetRepoImpl{db: db}
}

const selectBudget = `SELECT id, category_id, total_cents, amount_used_cents, begin_at, end_at FROM budget`

func (r *BudgetRepoImpl) Store(ctx context.Context, userId int, budget Budget) (int, error) {
	query := `INSERT INTO budget (category_id, total_cents, amount_used_cents, begin_at, end_at, user_id)
				VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	totalCents, err := money.ToCents(budget.Total)
	if err != nil {
		return 0, err
	}
	usedCents, err := money.ToCents(budget.AmountUsed)
	if err != nil {
		return 0, err
	}
	var id int
	err = r.db.QueryRow(ctx, query,
		budget.CategoryId,
		totalCents,
		usedCents,
		budget.Begin,
		budget.End,
		userId,
	).Scan(&id)
	if err != nil {
		err := fmt.Errorf("could not execute query: %w", err)
		log.Error(err)
		return 0, err
	}
	return id, nil
}

func (r *BudgetRepoImpl) Get(ctx context.Context, userId int, id int) (Budget, error) {
	budget, err := scanBudget(r.db.QueryRow(ctx, selectBudget+` WHERE id = $1 AND user_id = $2`, id, userId))
	if errors.Is(err, pgx.ErrNoRows) {
		return Budget{}, fmt.Errorf("budget %d: %w", id, ErrBudgetNotFound)
	} else if err != nil {
		err := fmt.Errorf("could not get budget: %w", err)
		log.Error(err)
		return Budget{}, err
	}
	return budget, nil
}

func (r *BudgetRepoImpl) GetAll(ctx context.Context, userId int) ([]Budget, error) {
	rows, err := r.db.Query(ctx, selectBudget+` WHERE user_id = $1 ORDER BY begin_at DESC, end_at DESC, id`, userId)
	if err != nil {
		err := fmt.Errorf("could not query budgets: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	budgets := make([]Budget, 0)
	for rows.Next() {
		budget, err := scanBudget(rows)
		if err != nil {
			err := fmt.Errorf("could not scan budget: %w", err)
			log.Error(err)
			return nil, err
		}
		budgets = append(budgets, budget)
	}
	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over rows: %w", err)
		log.Error(err)
		return nil, err
	}
	return budgets, nil
}

func (r *BudgetRepoImpl) Update(ctx context.Context, userId int, budget Budget) (bool, error) {
	query := `UPDATE budget SET category_id = $1, total_cents = $2, begin_at = $3, end_at = $4
				WHERE id = $5 AND user_id = $6`
	totalCents, err := money.ToCents(budget.Total)
	if err != nil {
		return false, err
	}
	result, err := r.db.Exec(ctx, query,
		budget.CategoryId,
		totalCents,
		budget.Begin,
		budget.End,
		budget.Id,
		userId,
	)
	if err != nil {
		err := fmt.Errorf("could not execute query: %w", err)
		log.Error(err)
		return false, err
	}
	return result.RowsAffected() == 1, nil
}

func (r *BudgetRepoImpl) Delete(ctx context.Context, userId int, id int) (bool, error) {
	result, err := r.db.Exec(ctx, `DELETE FROM budget WHERE id = $1 AND user_id = $2`, id, userId)
	if err != nil {
		err := fmt.Errorf("could not execute query: %w", err)
		log.Error(err)
		return false, err
	}
	return result.RowsAffected() == 1, nil
}

func (r *BudgetRepoImpl) AddUsage(ctx context.Context, userId int, categoryId int, date time.Time, delta decimal.Decimal) (int, error) {
	query := `UPDATE budget SET amount_used_cents = amount_used_cents + $1
				WHERE user_id = $2 AND category_id = $3 AND begin_at <= $4 AND end_at >= $4`
	deltaCents, err := money.ToCents(delta)
	if err != nil {
		return 0, err
	}
	result, err := r.db.Exec(ctx, query, deltaCents, userId, categoryId, date)
	if err != nil {
		err := fmt.Errorf("could not update budget usage: %w", err)
		log.Error(err)
		return 0, err
	}
	return int(result.RowsAffected()), nil
}

func (r *BudgetRepoImpl) RecalculateUsage(ctx context.Context, userId int, id int) error {
	query := `UPDATE budget b SET amount_used_cents = COALESCE((
					SELECT SUM(t.amount_cents) FROM transactions t
					WHERE t.user_id = b.user_id
					  AND t.category_id = b.category_id
					  AND t.type = 'expense'
					  AND t.date >= b.begin_at AND t.date <= b.end_at
				), 0)
				WHERE b.id = $1 AND b.user_id = $2`
	result, err := r.db.Exec(ctx, query, id, userId)
	if err != nil {
		err := fmt.Errorf("could not recalculate budget usage: %w", err)
		log.Error(err)
		return err
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("budget %d: %w", id, ErrBudgetNotFound)
	}
	return nil
}

func scanBudget(row pgx.Row) (Budget, error) {
	var budget Budget
	var totalCents, usedCents int64
	if err := row.Scan(&budget.Id, &budget.CategoryId, &totalCents, &usedCents, &budget.Begin, &budget.End); err != nil {
		return Budget{}, err
	}
	budget.Total = money.FromCents(totalCents)
	budget.AmountUsed = money.FromCents(usedCents)
	return budget, nil
}
