package book

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const bookColumns = `id, title, author, description, genre, year, added_by,
	average_rating::float8, created_at, updated_at`

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

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBook(row rowScanner) (Book, error) {
	var b Book
	err := row.Scan(
		&b.ID, &b.Title, &b.Author, &b.Description, &b.Genre, &b.Year, &b.AddedBy,
		&b.AverageRating, &b.CreatedAt, &b.UpdatedAt,
	)
	return b, err
}

// validID reports whether id can be a books.id value. Anything else cannot
// match a row.
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// escapeLike makes s match literally inside a LIKE pattern.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

func orderBy(sort string) string {
	switch sort {
	case SortYear:
		return "year DESC, created_at, id"
	case SortRating:
		return "average_rating DESC, created_at, id"
	default:
		return "created_at, id"
	}
}

func (r *PostgresRepo) Create(ctx context.Context, b *Book) error {
	const query = `
	INSERT INTO books (id, title, author, description, genre, year, added_by)
	VALUES (gen_random_uuid(), $1, $2, $3, $4, $5, $6)
	RETURNING id, average_rating::float8, created_at, updated_at
	`
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	return r.db.QueryRow(timeoutCtx, query, b.Title, b.Author, b.Description, b.Genre, b.Year, b.AddedBy).
		Scan(&b.ID, &b.AverageRating, &b.CreatedAt, &b.UpdatedAt)
}

func (r *PostgresRepo) GetByID(ctx context.Context, id string) (Book, error) {
	if !validID(id) {
		return Book{}, ErrNotFound
	}
	query := `SELECT ` + bookColumns + ` FROM books WHERE id = $1`

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	b, err := scanBook(r.db.QueryRow(timeoutCtx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Book{}, ErrNotFound
		}
		return Book{}, err
	}
	return b, nil
}

func (r *PostgresRepo) List(ctx context.Context, q Query) ([]Book, int, error) {
	clauses := []string{"1=1"}
	args := []any{}
	argn := 1

	if q.Search != "" {
		clauses = append(clauses, fmt.Sprintf(`(title ILIKE $%d ESCAPE '\' OR author ILIKE $%d ESCAPE '\')`, argn, argn))
		args = append(args, "%"+escapeLike(q.Search)+"%")
		argn++
	}

	if q.Genre != "" {
		clauses = append(clauses, fmt.Sprintf("genre = $%d", argn))
		args = append(args, q.Genre)
		argn++
	}

	where := "WHERE " + strings.Join(clauses, " AND ")

	countSQL := "SELECT COUNT(*) FROM books " + where
	var total int
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	if err := r.db.QueryRow(timeoutCtx, countSQL, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	dataSQL := fmt.Sprintf(`
		SELECT %s
		FROM books
		%s
		ORDER BY %s
		LIMIT $%d OFFSET $%d`,
		bookColumns, where, orderBy(q.Sort), argn, argn+1)

	argsWithPage := append([]any{}, args...)
	argsWithPage = append(argsWithPage, q.Limit, q.Offset)
	rows, err := r.db.Query(timeoutCtx, dataSQL, argsWithPage...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := []Book{}
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, b)
	}
	return out, total, rows.Err()
}

func (r *PostgresRepo) Update(ctx context.Context, b *Book) error {
	if !validID(b.ID) {
		return ErrNotFound
	}
	const query = `
	UPDATE books
	SET title = $2, author = $3, description = $4, genre = $5, year = $6, updated_at = now()
	WHERE id = $1
	RETURNING updated_at
	`
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	err := r.db.QueryRow(timeoutCtx, query, b.ID, b.Title, b.Author, b.Description, b.Genre, b.Year).Scan(&b.UpdatedAt)
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

	tx, err := r.db.Begin(timeoutCtx)
	if err != nil {
		return err
	}
	defer tx.Rollback(timeoutCtx)

	if _, err := tx.Exec(timeoutCtx, `DELETE FROM reviews WHERE book_id = $1`, id); err != nil {
		return fmt.Errorf("delete reviews: %w", err)
	}

	tag, err := tx.Exec(timeoutCtx, `DELETE FROM books WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete book: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return tx.Commit(timeoutCtx)
}

func (r *PostgresRepo) Exists(ctx context.Context, id string) (bool, error) {
	if !validID(id) {
		return false, nil
	}
	var exists bool
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	err := r.db.QueryRow(timeoutCtx, `SELECT EXISTS(SELECT 1 FROM books WHERE id = $1)`, id).Scan(&exists)
	return exists, err
}

// SetAverageRating stores the cached average. A book deleted in the
// meantime is not an error.
func (r *PostgresRepo) SetAverageRating(ctx context.Context, id string, average float64) error {
	if !validID(id) {
		return nil
	}
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	_, err := r.db.Exec(timeoutCtx, `UPDATE books SET average_rating = $2 WHERE id = $1`, id, average)
	return err
}
