package category

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

var ErrCategoryNotFound = errors.New("category not found")
var ErrCategoryInUse = errors.New("category has transactions")

const foreignKeyViolation = "23503"

type Repo interface {
	// WithTransaction runs fn with a repository bound to one database transaction. The transaction is
	// committed when fn returns nil and rolled back otherwise.
	WithTransaction(ctx context.Context, fn func(repo Repo) error) error
	Store(ctx context.Context, userId int, category Category) (int, error)
	Get(ctx context.Context, userId int, id int) (Category, error)
	GetAll(ctx context.Context, userId int) ([]Category, error)
	Update(ctx context.Context, userId int, category Category) (bool, error)
	UpdatePosition(ctx context.Context, userId int, category Category) (bool, error)
	FindMaxPosition(ctx context.Context, userId int) (int, error)
	Delete(ctx context.Context, userId int, id int) (bool, error)
}

type RepoImpl struct {
	db *pgxpool.Pool
	tx pgx.Tx
}

func NewRepo(db *pgxpool.Pool) *RepoImpl {
	return &RepoImpl{db: db}
}

type queryer interface {
	Exec(ctx context.Context, query string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, query string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, query string, args ...any) pgx.Row
}

func (r *RepoImpl) conn() queryer {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}

func (r *RepoImpl) WithTransaction(ctx context.Context, fn func(repo Repo) error) error {
	if r.tx != nil {
		return fn(r)
	}
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			log.Errorf("rollback error: %v", rbErr)
		}
	}()

	if err := fn(&RepoImpl{db: r.db, tx: tx}); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

func (r *RepoImpl) Store(ctx context.Context, userId int, category Category) (int, error) {
	query := `INSERT INTO category (name, icon, type, position, user_id)
				VALUES ($1, $2, $3, $4, $5) RETURNING id`

	var id int
	err := r.conn().QueryRow(ctx, query,
		category.Name,
		category.Icon,
		string(category.Type),
		category.Position,
		userId,
	).Scan(&id)
	if err != nil {
		err := fmt.Errorf("could not execute query: %w", err)
		log.Error(err)
		return 0, err
	}
	return id, nil
}

func (r *RepoImpl) Get(ctx context.Context, userId int, id int) (Category, error) {
	query := `SELECT id, name, icon, type, position FROM category WHERE id = $1 AND user_id = $2`
	category, err := scanCategory(r.conn().QueryRow(ctx, query, id, userId))
	if errors.Is(err, pgx.ErrNoRows) {
		return Category{}, fmt.Errorf("category %d: %w", id, ErrCategoryNotFound)
	} else if err != nil {
		err := fmt.Errorf("could not get category: %w", err)
		log.Error(err)
		return Category{}, err
	}
	return category, nil
}

func (r *RepoImpl) GetAll(ctx context.Context, userId int) ([]Category, error) {
	query := `SELECT id, name, icon, type, position FROM category WHERE user_id = $1 ORDER BY position, id`
	rows, err := r.conn().Query(ctx, query, userId)
	if err != nil {
		err := fmt.Errorf("could not query categories: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	categories := make([]Category, 0)
	for rows.Next() {
		category, err := scanCategory(rows)
		if err != nil {
			err := fmt.Errorf("could not scan category: %w", err)
			log.Error(err)
			return nil, err
		}
		categories = append(categories, category)
	}
	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over rows: %w", err)
		log.Error(err)
		return nil, err
	}
	return categories, nil
}

func (r *RepoImpl) Update(ctx context.Context, userId int, category Category) (bool, error) {
	query := `UPDATE category SET name = $1, icon = $2, type = $3 WHERE id = $4 AND user_id = $5`
	result, err := r.conn().Exec(ctx, query, category.Name, category.Icon, string(category.Type), category.Id, userId)
	if err != nil {
		err := fmt.Errorf("could not execute query: %w", err)
		log.Error(err)
		return false, err
	}
	return result.RowsAffected() == 1, nil
}

func (r *RepoImpl) UpdatePosition(ctx context.Context, userId int, category Category) (bool, error) {
	query := `UPDATE category SET position = $1 WHERE id = $2 AND user_id = $3`
	result, err := r.conn().Exec(ctx, query, category.Position, category.Id, userId)
	if err != nil {
		err := fmt.Errorf("could not execute query: %w", err)
		log.Error(err)
		return false, err
	}
	return result.RowsAffected() == 1, nil
}

func (r *RepoImpl) FindMaxPosition(ctx context.Context, userId int) (int, error) {
	var maxPosition *int
	err := r.conn().QueryRow(ctx, `SELECT MAX(position) FROM category WHERE user_id = $1`, userId).Scan(&maxPosition)
	if err != nil {
		err := fmt.Errorf("could not find max position: %w", err)
		log.Error(err)
		return 0, err
	}
	if maxPosition == nil {
		log.Debugf("no categories for user %d, max position is 0", userId)
		return 0, nil
	}
	return *maxPosition, nil
}

func (r *RepoImpl) Delete(ctx context.Context, userId int, id int) (bool, error) {
	result, err := r.conn().Exec(ctx, `DELETE FROM category WHERE id = $1 AND user_id = $2`, id, userId)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolation {
		return false, fmt.Errorf("category %d: %w", id, ErrCategoryInUse)
	}
	if err != nil {
		err := fmt.Errorf("could not execute query: %w", err)
		log.Error(err)
		return false, err
	}
	return result.RowsAffected() == 1, nil
}

func scanCategory(row pgx.Row) (Category, error) {
	var category Category
	var categoryType string
	if err := row.Scan(&category.Id, &category.Name, &category.Icon, &categoryType, &category.Position); err != nil {
		return Category{}, err
	}
	category.Type = Type(categoryType)
	return category, nil
}
