package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"library-catalog/internal/domains/book/model"
	"library-catalog/pkg/cache"
)

const (
	bookCacheKeyPrefix = "book:"
	bookCacheTTL       = 15 * time.Minute
)

// CacheKey returns the cache key of a book id. The author repository
// uses it to invalidate book entries its writes make stale.
func CacheKey(id uuid.UUID) string {
	return bookCacheKeyPrefix + id.String()
}

// postgresRepository implements RepositoryInterface with raw SQL over
// pgxpool plus a read-through cache for get-by-id.
type postgresRepository struct {
	pool  *pgxpool.Pool
	cache cache.Cache
}

func NewPostgresRepository(pool *pgxpool.Pool, cache cache.Cache) RepositoryInterface {
	return &postgresRepository{
		pool:  pool,
		cache: cache,
	}
}

const bookWithAuthorColumns = `
        b.id, b.title, b.description, b.isbn, b.published_year, b.genre,
        b.pages, b.author_id, b.created_at, b.updated_at,
        a.id, a.name, a.email`

func scanBookWithAuthor(row pgx.Row) (*model.BookWithAuthor, error) {
	var bw model.BookWithAuthor
	err := row.Scan(
		&bw.ID,
		&bw.Title,
		&bw.Description,
		&bw.ISBN,
		&bw.PublishedYear,
		&bw.Genre,
		&bw.Pages,
		&bw.AuthorID,
		&bw.CreatedAt,
		&bw.UpdatedAt,
		&bw.Author.ID,
		&bw.Author.Name,
		&bw.Author.Email,
	)
	if err != nil {
		return nil, err
	}
	return &bw, nil
}

// Create inserts the book and returns it joined with its author summary.
func (r *postgresRepository) Create(ctx context.Context, req *model.CreateBookRequest, authorID uuid.UUID) (*model.BookWithAuthor, error) {
	query := `
        INSERT INTO books (title, description, isbn, published_year, genre, pages, author_id)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING id
    `

	var id uuid.UUID
	err := r.pool.QueryRow(
		ctx,
		query,
		req.Title,
		req.Description.Ptr(),
		req.ISBN.Ptr(),
		req.PublishedYear.Ptr(),
		req.Genre.Ptr(),
		req.Pages.Ptr(),
		authorID,
	).Scan(&id)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case "23505": // unique_violation on isbn
				return nil, model.ErrDuplicateISBN
			case "23503": // foreign_key_violation on author_id
				return nil, model.ErrAuthorNotFound
			}
		}
		return nil, fmt.Errorf("failed to create book: %w", err)
	}

	return r.fetchByID(ctx, id)
}

// GetByID retrieves a book with its author summary, cache first.
func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.BookWithAuthor, error) {
	cacheKey := CacheKey(id)

	var cached model.BookWithAuthor
	if found, err := r.cache.Get(ctx, cacheKey, &cached); err == nil && found {
		return &cached, nil
	}

	bw, err := r.fetchByID(ctx, id)
	if err != nil {
		return nil, err
	}

	r.cache.Set(ctx, cacheKey, bw, bookCacheTTL)
	return bw, nil
}

func (r *postgresRepository) fetchByID(ctx context.Context, id uuid.UUID) (*model.BookWithAuthor, error) {
	query := `
        SELECT` + bookWithAuthorColumns + `
        FROM books b
        JOIN authors a ON b.author_id = a.id
        WHERE b.id = $1
    `

	bw, err := scanBookWithAuthor(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrBookNotFound
		}
		return nil, fmt.Errorf("failed to get book by id: %w", err)
	}
	return bw, nil
}

// List retrieves books with optional exact genre / author filters,
// newest first.
func (r *postgresRepository) List(ctx context.Context, filter model.ListFilter) ([]model.BookWithAuthor, error) {
	conditions := []string{}
	args := []interface{}{}
	argPos := 1

	if filter.Genre != "" {
		conditions = append(conditions, fmt.Sprintf("b.genre = $%d", argPos))
		args = append(args, filter.Genre)
		argPos++
	}
	if filter.AuthorID != "" {
		conditions = append(conditions, fmt.Sprintf("b.author_id = $%d", argPos))
		args = append(args, filter.AuthorID)
		argPos++
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	query := `
        SELECT` + bookWithAuthorColumns + `
        FROM books b
        JOIN authors a ON b.author_id = a.id` + whereClause + `
        ORDER BY b.created_at DESC
    `

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list books: %w", err)
	}
	defer rows.Close()

	books := []model.BookWithAuthor{}
	for rows.Next() {
		bw, err := scanBookWithAuthor(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan book: %w", err)
		}
		books = append(books, *bw)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating books: %w", err)
	}

	return books, nil
}

// Update applies a sparse patch: only columns present in the request
// appear in the SET clause, so absent fields are left untouched.
func (r *postgresRepository) Update(ctx context.Context, id uuid.UUID, patch *model.UpdateBookRequest) (*model.BookWithAuthor, error) {
	setClauses := []string{}
	args := []interface{}{}
	argPos := 1

	addSet := func(column string, value interface{}) {
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", column, argPos))
		args = append(args, value)
		argPos++
	}

	if patch.Title.Set {
		addSet("title", patch.Title.Str)
	}
	if patch.Description.Set {
		addSet("description", patch.Description.Ptr())
	}
	if patch.ISBN.Set {
		addSet("isbn", patch.ISBN.Ptr())
	}
	if patch.PublishedYear.Set {
		addSet("published_year", patch.PublishedYear.Ptr())
	}
	if patch.Genre.Set {
		addSet("genre", patch.Genre.Ptr())
	}
	if patch.Pages.Set {
		addSet("pages", patch.Pages.Ptr())
	}
	if patch.AuthorID.Set {
		addSet("author_id", patch.AuthorID.Str)
	}

	if len(setClauses) > 0 {
		setClauses = append(setClauses, "updated_at = NOW()")

		query := fmt.Sprintf(
			"UPDATE books SET %s WHERE id = $%d",
			strings.Join(setClauses, ", "), argPos,
		)
		args = append(args, id)

		cmdTag, err := r.pool.Exec(ctx, query, args...)
		if err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) {
				switch pgErr.Code {
				case "23505":
					return nil, model.ErrDuplicateISBN
				case "23503":
					return nil, model.ErrAuthorNotFound
				}
			}
			return nil, fmt.Errorf("failed to update book: %w", err)
		}
		if cmdTag.RowsAffected() == 0 {
			return nil, model.ErrBookNotFound
		}

		r.cache.Delete(ctx, CacheKey(id))
	}

	return r.fetchByID(ctx, id)
}

// Delete removes the book. Zero rows affected means it was never there,
// so a second delete reports not-found rather than failing.
func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	cmdTag, err := r.pool.Exec(ctx, `DELETE FROM books WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete book: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return model.ErrBookNotFound
	}

	r.cache.Delete(ctx, CacheKey(id))
	return nil
}

// buildSearchWhere builds the conjunctive filter shared by the count and
// page queries. Empty filters are omitted, not matched against empty
// strings.
func buildSearchWhere(filter model.SearchFilter) (string, []interface{}) {
	conditions := []string{}
	args := []interface{}{}
	argPos := 1

	if filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf("b.title ILIKE $%d", argPos))
		args = append(args, "%"+filter.Search+"%")
		argPos++
	}
	if filter.Genre != "" {
		conditions = append(conditions, fmt.Sprintf("b.genre = $%d", argPos))
		args = append(args, filter.Genre)
		argPos++
	}
	if filter.AuthorName != "" {
		conditions = append(conditions, fmt.Sprintf("a.name ILIKE $%d", argPos))
		args = append(args, "%"+filter.AuthorName+"%")
		argPos++
	}

	if len(conditions) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conditions, " AND "), args
}

func (r *postgresRepository) SearchCount(ctx context.Context, filter model.SearchFilter) (int64, error) {
	whereClause, args := buildSearchWhere(filter)

	query := `
        SELECT COUNT(*)
        FROM books b
        JOIN authors a ON b.author_id = a.id` + whereClause

	var total int64
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to count books: %w", err)
	}
	return total, nil
}

func (r *postgresRepository) SearchPage(ctx context.Context, filter model.SearchFilter) ([]model.BookWithAuthor, error) {
	whereClause, args := buildSearchWhere(filter)
	argPos := len(args) + 1

	// SortColumn/SortOrder come from the filter's whitelist, never from
	// raw user input.
	query := fmt.Sprintf(`
        SELECT
            b.id, b.title, b.description, b.isbn, b.published_year, b.genre,
            b.pages, b.author_id, b.created_at, b.updated_at,
            a.id, a.name
        FROM books b
        JOIN authors a ON b.author_id = a.id%s
        ORDER BY b.%s %s
        LIMIT $%d OFFSET $%d`,
		whereClause, filter.SortColumn(), filter.SortOrder(), argPos, argPos+1,
	)
	args = append(args, filter.Limit, filter.Offset())

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to search books: %w", err)
	}
	defer rows.Close()

	books := []model.BookWithAuthor{}
	for rows.Next() {
		var bw model.BookWithAuthor
		err := rows.Scan(
			&bw.ID,
			&bw.Title,
			&bw.Description,
			&bw.ISBN,
			&bw.PublishedYear,
			&bw.Genre,
			&bw.Pages,
			&bw.AuthorID,
			&bw.CreatedAt,
			&bw.UpdatedAt,
			&bw.Author.ID,
			&bw.Author.Name,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan search result: %w", err)
		}
		books = append(books, bw)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating search results: %w", err)
	}

	return books, nil
}

// AuthorExists is the lightweight existence probe run before any
// dependent book write.
func (r *postgresRepository) AuthorExists(ctx context.Context, authorID uuid.UUID) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM authors WHERE id = $1)`, authorID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check author existence: %w", err)
	}
	return exists, nil
}
