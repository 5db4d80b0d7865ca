package wallet

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pocketly/pocketly/internal/money"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

var ErrWalletNotFound = errors.New("wallet not found")

type Repo interface {
	Store(ctx context.Context, userId int, wallet Wallet) (int, error)
	Get(ctx context.Context, userId int, id int) (Wallet, error)
	GetAll(ctx context.Context, userId int) ([]Wallet, error)
	Update(ctx context.Context, userId int, wallet Wallet) (bool, error)
	// AdjustBalance adds delta to the stored balance in a single statement.
	AdjustBalance(ctx context.Context, userId int, id int, delta decimal.Decimal) (bool, error)
	Delete(ctx context.Context, userId int, id int) (bool, error)
}

type RepoImpl struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *RepoImpl {
	return &RepoImpl{db: db}
}

func (r *RepoImpl) Store(ctx context.Context, userId int, wallet Wallet) (int, error) {
	query := `INSERT INTO wallet (name, icon, currency, balance_cents, user_id)
				VALUES ($1, $2, $3, $4, $5) RETURNING id`
	balanceCents, err := money.ToCents(wallet.Balance)
	if err != nil {
		return 0, err
	}
	var id int
	err = r.db.QueryRow(ctx, query,
		wallet.Name,
		wallet.Icon,
		wallet.Currency,
		balanceCents,
		userId,
	).Scan(&id)
	if err != nil {
		err := fmt.Errorf("could not execute query: %w", err)
		log.Error(err)
		return 0, err
	}
	return id, nil
}

func (r *RepoImpl) Get(ctx context.Context, userId int, id int) (Wallet, error) {
	query := `SELECT id, name, icon, currency, balance_cents FROM wallet WHERE id = $1 AND user_id = $2`
	wallet, err := scanWallet(r.db.QueryRow(ctx, query, id, userId))
	if errors.Is(err, pgx.ErrNoRows) {
		return Wallet{}, fmt.Errorf("wallet %d: %w", id, ErrWalletNotFound)
	} else if err != nil {
		err := fmt.Errorf("could not get wallet: %w", err)
		log.Error(err)
		return Wallet{}, err
	}
	return wallet, nil
}

func (r *RepoImpl) GetAll(ctx context.Context, userId int) ([]Wallet, error) {
	query := `SELECT id, name, icon, currency, balance_cents FROM wallet WHERE user_id = $1 ORDER BY id`
	rows, err := r.db.Query(ctx, query, userId)
	if err != nil {
		err := fmt.Errorf("could not query wallets: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	wallets := make([]Wallet, 0)
	for rows.Next() {
		wallet, err := scanWallet(rows)
		if err != nil {
			err := fmt.Errorf("could not scan wallet: %w", err)
			log.Error(err)
			return nil, err
		}
		wallets = append(wallets, wallet)
	}
	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over rows: %w", err)
		log.Error(err)
		return nil, err
	}
	return wallets, nil
}

func (r *RepoImpl) Update(ctx context.Context, userId int, wallet Wallet) (bool, error) {
	query := `UPDATE wallet SET name = $1, icon = $2, currency = $3 WHERE id = $4 AND user_id = $5`
	result, err := r.db.Exec(ctx, query, wallet.Name, wallet.Icon, wallet.Currency, wallet.Id, userId)
	if err != nil {
		err := fmt.Errorf("could not execute query: %w", err)
		log.Error(err)
		return false, err
	}
	return result.RowsAffected() == 1, nil
}

func (r *RepoImpl) AdjustBalance(ctx context.Context, userId int, id int, delta decimal.Decimal) (bool, error) {
	query := `UPDATE wallet SET balance_cents = balance_cents + $1 WHERE id = $2 AND user_id = $3`
	deltaCents, err := money.ToCents(delta)
	if err != nil {
		return false, err
	}
	result, err := r.db.Exec(ctx, query, deltaCents, id, userId)
	if err != nil {
		err := fmt.Errorf("could not adjust wallet balance: %w", err)
		log.Error(err)
		return false, err
	}
	return result.RowsAffected() == 1, nil
}

func (r *RepoImpl) Delete(ctx context.Context, userId int, id int) (bool, error) {
	result, err := r.db.Exec(ctx, `DELETE FROM wallet WHERE id = $1 AND user_id = $2`, id, userId)
	if err != nil {
		err := fmt.Errorf("could not execute query: %w", err)
		log.Error(err)
		return false, err
	}
	return result.RowsAffected() == 1, nil
}

func scanWallet(row pgx.Row) (Wallet, error) {
	var wallet Wallet
	var balanceCents int64
	if err := row.Scan(&wallet.Id, &wallet.Name, &wallet.Icon, &wallet.Currency, &balanceCents); err != nil {
		return Wallet{}, err
	}
	wallet.Balance = money.FromCents(balanceCents)
	return wallet, nil
}
