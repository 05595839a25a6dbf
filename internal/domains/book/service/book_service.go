package service

import (
	"context"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"library-catalog/internal/domains/book/model"
	"library-catalog/internal/domains/book/repository"
)

// bookService orchestrates validate -> existence check -> store call for
// the book entity, plus the search/pagination engine.
type bookService struct {
	repo repository.RepositoryInterface
}

func NewBookService(repo repository.RepositoryInterface) ServiceInterface {
	return &bookService{repo: repo}
}

func (s *bookService) List(ctx context.Context, filter model.ListFilter) ([]model.BookWithAuthor, error) {
	// A malformed authorId filter cannot match any stored id.
	if filter.AuthorID != "" {
		if _, err := uuid.Parse(filter.AuthorID); err != nil {
			return []model.BookWithAuthor{}, nil
		}
	}
	return s.repo.List(ctx, filter)
}

func (s *bookService) GetByID(ctx context.Context, id uuid.UUID) (*model.BookWithAuthor, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *bookService) Create(ctx context.Context, req *model.CreateBookRequest) (*model.BookWithAuthor, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	authorID, err := uuid.Parse(req.AuthorID)
	if err != nil {
		return nil, model.ErrAuthorNotFound
	}

	// The existence check must pass before the dependent write is issued.
	exists, err := s.repo.AuthorExists(ctx, authorID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, model.ErrAuthorNotFound
	}

	return s.repo.Create(ctx, req, authorID)
}

func (s *bookService) Update(ctx context.Context, id uuid.UUID, req *model.UpdateBookRequest) (*model.BookWithAuthor, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if req.AuthorID.Set {
		authorID, err := uuid.Parse(req.AuthorID.Str)
		if err != nil {
			return nil, model.ErrAuthorNotFound
		}
		exists, err := s.repo.AuthorExists(ctx, authorID)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, model.ErrAuthorNotFound
		}
	}

	return s.repo.Update(ctx, id, req)
}

func (s *bookService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

// Search runs the count and page queries concurrently: both are pure
// reads against the same normalized filter.
func (s *bookService) Search(ctx context.Context, filter model.SearchFilter) (*model.SearchBooksResponse, error) {
	filter.Normalize()

	var (
		total int64
		data  []model.BookWithAuthor
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		total, err = s.repo.SearchCount(gctx, filter)
		return err
	})
	g.Go(func() error {
		var err error
		data, err = s.repo.SearchPage(gctx, filter)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if data == nil {
		data = []model.BookWithAuthor{}
	}

	return &model.SearchBooksResponse{
		Data:       data,
		Pagination: model.NewPaginationMeta(filter.Page, filter.Limit, total),
	}, nil
}
