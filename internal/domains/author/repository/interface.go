package repository

import (
	"context"

	"github.com/google/uuid"

	"library-catalog/internal/domains/author/model"
	bookmodel "library-catalog/internal/domains/book/model"
)

// RepositoryInterface is the author data-access contract. The book
// queries here are author-centric reads of the books table (counts,
// owned collections, extremal lookups); book writes live in the book
// domain.
type RepositoryInterface interface {
	Create(ctx context.Context, req *model.CreateAuthorRequest) (*model.Author, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Author, error)
	ListAll(ctx context.Context) ([]model.Author, error)
	Update(ctx context.Context, id uuid.UUID, patch *model.UpdateAuthorRequest) (*model.Author, error)
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteWithBooks(ctx context.Context, id uuid.UUID) error

	GetBookCount(ctx context.Context, authorID uuid.UUID) (int, error)
	ListBooksByYearDesc(ctx context.Context, authorID uuid.UUID) ([]bookmodel.Book, error)
	ListBooksByYearAsc(ctx context.Context, authorID uuid.UUID) ([]bookmodel.Book, error)
	ListBooksForAuthors(ctx context.Context, authorIDs []uuid.UUID) (map[uuid.UUID][]bookmodel.Book, error)
	LongestBook(ctx context.Context, authorID uuid.UUID) (*model.PageRef, error)
	ShortestBook(ctx context.Context, authorID uuid.UUID) (*model.PageRef, error)
}
