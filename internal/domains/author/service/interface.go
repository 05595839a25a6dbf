package service

import (
	"context"

	"github.com/google/uuid"

	"library-catalog/internal/domains/author/model"
)

type ServiceInterface interface {
	List(ctx context.Context) ([]model.AuthorWithBooks, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.AuthorWithBooks, error)
	Create(ctx context.Context, req *model.CreateAuthorRequest) (*model.AuthorWithBooks, error)
	Update(ctx context.Context, id uuid.UUID, req *model.UpdateAuthorRequest) (*model.AuthorWithBooks, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Books(ctx context.Context, id uuid.UUID) (*model.AuthorBooksResponse, error)
	Stats(ctx context.Context, id uuid.UUID) (*model.StatsReport, error)
}
