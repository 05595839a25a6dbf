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

	"library-catalog/internal/domains/author/model"
	bookmodel "library-catalog/internal/domains/book/model"
	bookrepo "library-catalog/internal/domains/book/repository"
	"library-catalog/pkg/cache"
)

const (
	authorCacheKeyPrefix = "author:"
	authorCacheTTL       = 15 * time.Minute
)

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

const authorColumns = `id, name, email, bio, nationality, birth_year, created_at, updated_at`

func scanAuthor(row pgx.Row) (*model.Author, error) {
	var a model.Author
	err := row.Scan(
		&a.ID,
		&a.Name,
		&a.Email,
		&a.Bio,
		&a.Nationality,
		&a.BirthYear,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// Create inserts a new author. Duplicate email maps to the conflict
// sentinel via the 23505 unique-violation code.
func (r *postgresRepository) Create(ctx context.Context, req *model.CreateAuthorRequest) (*model.Author, error) {
	query := `
        INSERT INTO authors (name, email, bio, nationality, birth_year)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING ` + authorColumns

	created, err := scanAuthor(r.pool.QueryRow(
		ctx,
		query,
		req.Name,
		req.Email,
		req.Bio.Ptr(),
		req.Nationality.Ptr(),
		req.BirthYear.Ptr(),
	))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, model.ErrDuplicateEmail
		}
		return nil, fmt.Errorf("failed to create author: %w", err)
	}

	return created, nil
}

// GetByID retrieves an author, cache first.
func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Author, error) {
	cacheKey := authorCacheKeyPrefix + id.String()

	var cached model.Author
	if found, err := r.cache.Get(ctx, cacheKey, &cached); err == nil && found {
		return &cached, nil
	}

	query := `SELECT ` + authorColumns + ` FROM authors WHERE id = $1`

	a, err := scanAuthor(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrAuthorNotFound
		}
		return nil, fmt.Errorf("failed to get author by id: %w", err)
	}

	r.cache.Set(ctx, cacheKey, a, authorCacheTTL)
	return a, nil
}

// ListAll retrieves every author ordered by name.
func (r *postgresRepository) ListAll(ctx context.Context) ([]model.Author, error) {
	query := `SELECT ` + authorColumns + ` FROM authors ORDER BY name ASC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list authors: %w", err)
	}
	defer rows.Close()

	authors := []model.Author{}
	for rows.Next() {
		a, err := scanAuthor(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan author: %w", err)
		}
		authors = append(authors, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating authors: %w", err)
	}

	return authors, nil
}

// Update applies a sparse patch: only columns present in the request
// appear in the SET clause.
func (r *postgresRepository) Update(ctx context.Context, id uuid.UUID, patch *model.UpdateAuthorRequest) (*model.Author, error) {
	setClauses := []string{}
	args := []interface{}{}
	argPos := 1

	addSet := func(column string, value interface{}) {
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", column, argPos))
		args = append(args, value)
		argPos++
	}

	if patch.Name.Set {
		addSet("name", patch.Name.Str)
	}
	if patch.Email.Set {
		addSet("email", patch.Email.Str)
	}
	if patch.Bio.Set {
		addSet("bio", patch.Bio.Ptr())
	}
	if patch.Nationality.Set {
		addSet("nationality", patch.Nationality.Ptr())
	}
	if patch.BirthYear.Set {
		addSet("birth_year", patch.BirthYear.Ptr())
	}

	if len(setClauses) == 0 {
		// Empty patch: nothing to write, return current state.
		return r.GetByID(ctx, id)
	}

	setClauses = append(setClauses, "updated_at = NOW()")

	query := fmt.Sprintf(
		"UPDATE authors SET %s WHERE id = $%d RETURNING %s",
		strings.Join(setClauses, ", "), argPos, authorColumns,
	)
	args = append(args, id)

	updated, err := scanAuthor(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrAuthorNotFound
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, model.ErrDuplicateEmail
		}
		return nil, fmt.Errorf("failed to update author: %w", err)
	}

	r.cache.Delete(ctx, staleCacheKeys(id, r.ownedBookIDs(ctx, id))...)
	return updated, nil
}

// Delete removes the author. The FK-violation mapping is a backstop for
// the race where a book appears between the service's count check and
// the delete.
func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	cmdTag, err := r.pool.Exec(ctx, `DELETE FROM authors WHERE id = $1`, id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return model.ErrAuthorHasBooks
		}
		return fmt.Errorf("failed to delete author: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return model.ErrAuthorNotFound
	}

	r.cache.Delete(ctx, authorCacheKeyPrefix+id.String())
	return nil
}

// DeleteWithBooks removes the author and all owned books in one
// transaction, for the cascade policy. The deleted book ids are
// collected so their cached entries die with them; otherwise a cached
// book would keep answering get-by-id until its TTL expires.
func (r *postgresRepository) DeleteWithBooks(ctx context.Context, id uuid.UUID) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	rows, err := tx.Query(ctx, `DELETE FROM books WHERE author_id = $1 RETURNING id`, id)
	if err != nil {
		return fmt.Errorf("failed to delete author books: %w", err)
	}
	bookIDs, err := pgx.CollectRows(rows, pgx.RowTo[uuid.UUID])
	if err != nil {
		return fmt.Errorf("failed to collect deleted book ids: %w", err)
	}

	cmdTag, err := tx.Exec(ctx, `DELETE FROM authors WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete author: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return model.ErrAuthorNotFound
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	r.cache.Delete(ctx, staleCacheKeys(id, bookIDs)...)
	return nil
}

// staleCacheKeys lists the cache entries an author-side write
// invalidates: the author itself plus the book entries that embed or
// belong to it.
func staleCacheKeys(authorID uuid.UUID, bookIDs []uuid.UUID) []string {
	keys := make([]string, 0, len(bookIDs)+1)
	keys = append(keys, authorCacheKeyPrefix+authorID.String())
	for _, bookID := range bookIDs {
		keys = append(keys, bookrepo.CacheKey(bookID))
	}
	return keys
}

// ownedBookIDs is the invalidation helper for author updates: cached
// book entries embed the author summary, so they go stale whenever the
// author row changes.
func (r *postgresRepository) ownedBookIDs(ctx context.Context, authorID uuid.UUID) []uuid.UUID {
	rows, err := r.pool.Query(ctx, `SELECT id FROM books WHERE author_id = $1`, authorID)
	if err != nil {
		return nil
	}
	ids, err := pgx.CollectRows(rows, pgx.RowTo[uuid.UUID])
	if err != nil {
		return nil
	}
	return ids
}

// GetBookCount returns the number of books owned by the author.
func (r *postgresRepository) GetBookCount(ctx context.Context, authorID uuid.UUID) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM books WHERE author_id = $1`, authorID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to get book count: %w", err)
	}
	return count, nil
}

const bookColumns = `id, title, description, isbn, published_year, genre, pages, author_id, created_at, updated_at`

func (r *postgresRepository) listBooks(ctx context.Context, authorID uuid.UUID, orderBy string) ([]bookmodel.Book, error) {
	query := `SELECT ` + bookColumns + ` FROM books WHERE author_id = $1 ORDER BY ` + orderBy

	rows, err := r.pool.Query(ctx, query, authorID)
	if err != nil {
		return nil, fmt.Errorf("failed to list author books: %w", err)
	}
	defer rows.Close()

	books := []bookmodel.Book{}
	for rows.Next() {
		var b bookmodel.Book
		err := rows.Scan(
			&b.ID,
			&b.Title,
			&b.Description,
			&b.ISBN,
			&b.PublishedYear,
			&b.Genre,
			&b.Pages,
			&b.AuthorID,
			&b.CreatedAt,
			&b.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan book: %w", err)
		}
		books = append(books, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating author books: %w", err)
	}

	return books, nil
}

func (r *postgresRepository) ListBooksByYearDesc(ctx context.Context, authorID uuid.UUID) ([]bookmodel.Book, error) {
	return r.listBooks(ctx, authorID, "published_year DESC NULLS LAST")
}

// ListBooksByYearAsc feeds the statistics engine; nulls sort last so the
// non-null years form a contiguous ascending prefix.
func (r *postgresRepository) ListBooksByYearAsc(ctx context.Context, authorID uuid.UUID) ([]bookmodel.Book, error) {
	return r.listBooks(ctx, authorID, "published_year ASC NULLS LAST")
}

// ListBooksForAuthors fetches the owned books of several authors in one
// query, grouped by author id.
func (r *postgresRepository) ListBooksForAuthors(ctx context.Context, authorIDs []uuid.UUID) (map[uuid.UUID][]bookmodel.Book, error) {
	grouped := map[uuid.UUID][]bookmodel.Book{}
	if len(authorIDs) == 0 {
		return grouped, nil
	}

	query := `
        SELECT ` + bookColumns + `
        FROM books
        WHERE author_id = ANY($1)
        ORDER BY published_year DESC NULLS LAST`

	rows, err := r.pool.Query(ctx, query, authorIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to list books for authors: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var b bookmodel.Book
		err := rows.Scan(
			&b.ID,
			&b.Title,
			&b.Description,
			&b.ISBN,
			&b.PublishedYear,
			&b.Genre,
			&b.Pages,
			&b.AuthorID,
			&b.CreatedAt,
			&b.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan book: %w", err)
		}
		grouped[b.AuthorID] = append(grouped[b.AuthorID], b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating books: %w", err)
	}

	return grouped, nil
}

// extremalBook returns the single book with the max/min non-null page
// count. Ties fall to the store's natural order.
func (r *postgresRepository) extremalBook(ctx context.Context, authorID uuid.UUID, order string) (*model.PageRef, error) {
	query := `
        SELECT title, pages
        FROM books
        WHERE author_id = $1 AND pages IS NOT NULL
        ORDER BY pages ` + order + `
        LIMIT 1`

	var ref model.PageRef
	err := r.pool.QueryRow(ctx, query, authorID).Scan(&ref.Title, &ref.Pages)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get extremal book: %w", err)
	}
	return &ref, nil
}

func (r *postgresRepository) LongestBook(ctx context.Context, authorID uuid.UUID) (*model.PageRef, error) {
	return r.extremalBook(ctx, authorID, "DESC")
}

func (r *postgresRepository) ShortestBook(ctx context.Context, authorID uuid.UUID) (*model.PageRef, error) {
	return r.extremalBook(ctx, authorID, "ASC")
}
