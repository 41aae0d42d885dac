package review

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	uniqueViolation     = "23505"
	foreignKeyViolation = "23503"
)

type PostgresRepo struct {
	db      *pgxpool.Pool
	timeout time.Duration
}

func NewPostgresRepo(db *pgxpool.Pool, timeout time.Duration) *PostgresRepo {
	return &PostgresRepo{db: db, timeout: timeout}
}

func (r *PostgresRepo) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, r.timeout)
}

func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

func (r *PostgresRepo) Create(ctx context.Context, rv *Review) error {
	if !validID(rv.BookID) {
		return ErrBookNotFound
	}
	const query = `
	INSERT INTO reviews (id, book_id, user_id, rating, review_text)
	VALUES (gen_random_uuid(), $1, $2, $3, $4)
	RETURNING id, created_at, updated_at
	`
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	err := r.db.QueryRow(timeoutCtx, query, rv.BookID, rv.UserID, rv.Rating, rv.Text).
		Scan(&rv.ID, &rv.CreatedAt, &rv.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch {
			case pgErr.Code == uniqueViolation:
				return ErrDuplicate
			case pgErr.Code == foreignKeyViolation && pgErr.ConstraintName == "reviews_book_id_fkey":
				return ErrBookNotFound
			}
		}
		return err
	}
	return nil
}

func (r *PostgresRepo) GetByID(ctx context.Context, id string) (Review, error) {
	if !validID(id) {
		return Review{}, ErrNotFound
	}
	const query = `
	SELECT id, book_id, user_id, rating, review_text, created_at, updated_at
	FROM reviews
	WHERE id = $1
	`
	var rv Review
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	err := r.db.QueryRow(timeoutCtx, query, id).Scan(
		&rv.ID, &rv.BookID, &rv.UserID, &rv.Rating, &rv.Text, &rv.CreatedAt, &rv.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Review{}, ErrNotFound
		}
		return Review{}, err
	}
	return rv, nil
}

func (r *PostgresRepo) Update(ctx context.Context, rv *Review) error {
	const query = `
	UPDATE reviews
	SET rating = $2, review_text = $3, updated_at = now()
	WHERE id = $1
	RETURNING updated_at
	`
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	err := r.db.QueryRow(timeoutCtx, query, rv.ID, rv.Rating, rv.Text).Scan(&rv.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

func (r *PostgresRepo) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		return ErrNotFound
	}
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	tag, err := r.db.Exec(timeoutCtx, `DELETE FROM reviews WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresRepo) ListByBook(ctx context.Context, bookID string) ([]Review, error) {
	out := []Review{}
	if !validID(bookID) {
		return out, nil
	}
	const query = `
	SELECT r.id, r.book_id, r.user_id, u.name, r.rating, r.review_text, r.created_at, r.updated_at
	FROM reviews r
	JOIN users u ON u.id = r.user_id
	WHERE r.book_id = $1
	ORDER BY r.created_at DESC, r.id DESC
	`
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	rows, err := r.db.Query(timeoutCtx, query, bookID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var rv Review
		if err := rows.Scan(
			&rv.ID, &rv.BookID, &rv.UserID, &rv.ReviewerName, &rv.Rating, &rv.Text, &rv.CreatedAt, &rv.UpdatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, rv)
	}
	return out, rows.Err()
}

func (r *PostgresRepo) RatingsForBook(ctx context.Context, bookID string) ([]int, error) {
	if !validID(bookID) {
		return nil, nil
	}
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	rows, err := r.db.Query(timeoutCtx, `SELECT rating FROM reviews WHERE book_id = $1`, bookID)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowTo[int])
}
