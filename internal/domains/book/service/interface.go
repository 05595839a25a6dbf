package service

import (
	"context"

	"github.com/google/uuid"

	"library-catalog/internal/domains/book/model"
)

type ServiceInterface interface {
	List(ctx context.Context, filter model.ListFilter) ([]model.BookWithAuthor, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.BookWithAuthor, error)
	Create(ctx context.Context, req *model.CreateBookRequest) (*model.BookWithAuthor, error)
	Update(ctx context.Context, id uuid.UUID, req *model.UpdateBookRequest) (*model.BookWithAuthor, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Search(ctx context.Context, filter model.SearchFilter) (*model.SearchBooksResponse, error)
}
