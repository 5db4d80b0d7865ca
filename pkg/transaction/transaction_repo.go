package transaction

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pocketly/pocketly/internal/money"
	"github.com/pocketly/pocketly/pkg/category"
	log "github.com/sirupsen/logrus"
)

var ErrTransactionNotFound = errors.New("transaction not found")

type Repo interface {
	Store(ctx context.Context, userId int, transaction Transaction) (int, error)
	Get(ctx context.Context, userId int, id int) (Transaction, error)
	// GetBetween returns transactions dated in [from, to], oldest first.
	GetBetween(ctx context.Context, userId int, from, to time.Time) ([]Transaction, error)
	// GetCreationTimes returns creation timestamps in [from, to], oldest first.
	GetCreationTimes(ctx context.Context, userId int, from, to time.Time) ([]time.Time, error)
	// GetCreationDays returns the distinct YYYY-MM-DD days, in timezone, on which transactions were created.
	GetCreationDays(ctx context.Context, userId int, timezone string) ([]string, error)
	Delete(ctx context.Context, userId int, id int) (bool, error)
}

type RepoImpl struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *RepoImpl {
	return &RepoImpl{db: db}
}

const selectTransaction = `SELECT id, wallet_id, category_id, type, amount_cents, note, date, created_at FROM transactions`

func (r *RepoImpl) Store(ctx context.Context, userId int, transaction Transaction) (int, error) {
	query := `INSERT INTO transactions (wallet_id, category_id, type, amount_cents, note, date, created_at, user_id)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`
	amountCents, err := money.ToCents(transaction.Amount)
	if err != nil {
		return 0, err
	}
	var id int
	err = r.db.QueryRow(ctx, query,
		transaction.WalletId,
		transaction.CategoryId,
		string(transaction.Type),
		amountCents,
		transaction.Note,
		transaction.Date,
		transaction.CreatedAt,
		userId,
	).Scan(&id)
	if err != nil {
		err := fmt.Errorf("could not execute query: %w", err)
		log.Error(err)
		return 0, err
	}
	return id, nil
}

func (r *RepoImpl) Get(ctx context.Context, userId int, id int) (Transaction, error) {
	transaction, err := scanTransaction(r.db.QueryRow(ctx, selectTransaction+` WHERE id = $1 AND user_id = $2`, id, userId))
	if errors.Is(err, pgx.ErrNoRows) {
		return Transaction{}, fmt.Errorf("transaction %d: %w", id, ErrTransactionNotFound)
	} else if err != nil {
		err := fmt.Errorf("could not get transaction: %w", err)
		log.Error(err)
		return Transaction{}, err
	}
	return transaction, nil
}

func (r *RepoImpl) GetBetween(ctx context.Context, userId int, from, to time.Time) ([]Transaction, error) {
	query := selectTransaction + ` WHERE user_id = $1 AND date >= $2 AND date <= $3 ORDER BY date, id`
	rows, err := r.db.Query(ctx, query, userId, from, to)
	if err != nil {
		err := fmt.Errorf("could not query transactions: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	transactions := make([]Transaction, 0)
	for rows.Next() {
		transaction, err := scanTransaction(rows)
		if err != nil {
			err := fmt.Errorf("could not scan transaction: %w", err)
			log.Error(err)
			return nil, err
		}
		transactions = append(transactions, transaction)
	}
	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over rows: %w", err)
		log.Error(err)
		return nil, err
	}
	return transactions, nil
}

func (r *RepoImpl) GetCreationTimes(ctx context.Context, userId int, from, to time.Time) ([]time.Time, error) {
	query := `SELECT created_at FROM transactions WHERE user_id = $1 AND created_at >= $2 AND created_at <= $3 ORDER BY created_at`
	rows, err := r.db.Query(ctx, query, userId, from, to)
	if err != nil {
		err := fmt.Errorf("could not query creation times: %w", err)
		log.Error(err)
		return nil, err
	}
	times, err := pgx.CollectRows(rows, pgx.RowTo[time.Time])
	if err != nil {
		err := fmt.Errorf("could not collect creation times: %w", err)
		log.Error(err)
		return nil, err
	}
	return times, nil
}

func (r *RepoImpl) GetCreationDays(ctx context.Context, userId int, timezone string) ([]string, error) {
	query := `SELECT DISTINCT to_char(created_at AT TIME ZONE $2, 'YYYY-MM-DD') AS day
				FROM transactions WHERE user_id = $1 ORDER BY day`
	rows, err := r.db.Query(ctx, query, userId, timezone)
	if err != nil {
		err := fmt.Errorf("could not query creation days: %w", err)
		log.Error(err)
		return nil, err
	}
	days, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		err := fmt.Errorf("could not collect creation days: %w", err)
		log.Error(err)
		return nil, err
	}
	return days, nil
}

func (r *RepoImpl) Delete(ctx context.Context, userId int, id int) (bool, error) {
	result, err := r.db.Exec(ctx, `DELETE FROM transactions WHERE id = $1 AND user_id = $2`, id, userId)
	if err != nil {
		err := fmt.Errorf("could not execute query: %w", err)
		log.Error(err)
		return false, err
	}
	return result.RowsAffected() == 1, nil
}

func scanTransaction(row pgx.Row) (Transaction, error) {
	var transaction Transaction
	var transactionType string
	var amountCents int64
	err := row.Scan(
		&transaction.Id,
		&transaction.WalletId,
		&transaction.CategoryId,
		&transactionType,
		&amountCents,
		&transaction.Note,
		&transaction.Date,
		&transaction.CreatedAt,
	)
	if err != nil {
		return Transaction{}, err
	}
	transaction.Type = category.Type(transactionType)
	transaction.Amount = money.FromCents(amountCents)
	return transaction, nil
}
