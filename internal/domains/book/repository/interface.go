package repository

import (
	"context"

	"github.com/google/uuid"

	"library-catalog/internal/domains/book/model"
)

// RepositoryInterface is the book data-access contract.
// SearchCount and SearchPage are independent reads over the same filter
// and may run concurrently.
type RepositoryInterface interface {
	Create(ctx context.Context, req *model.CreateBookRequest, authorID uuid.UUID) (*model.BookWithAuthor, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.BookWithAuthor, error)
	List(ctx context.Context, filter model.ListFilter) ([]model.BookWithAuthor, error)
	Update(ctx context.Context, id uuid.UUID, patch *model.UpdateBookRequest) (*model.BookWithAuthor, error)
	Delete(ctx context.Context, id uuid.UUID) error

	SearchCount(ctx context.Context, filter model.SearchFilter) (int64, error)
	SearchPage(ctx context.Context, filter model.SearchFilter) ([]model.BookWithAuthor, error)

	AuthorExists(ctx context.Context, authorID uuid.UUID) (bool, error)
}
