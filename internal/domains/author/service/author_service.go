package service

import (
	"context"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"library-catalog/internal/domains/author/model"
	"library-catalog/internal/domains/author/repository"
	bookmodel "library-catalog/internal/domains/book/model"
)

// authorService orchestrates validate -> store -> error mapping for the
// author entity, plus the statistics engine.
type authorService struct {
	repo repository.RepositoryInterface

	// cascadeDelete selects the delete policy: cascade the author's
	// books instead of rejecting the delete with a conflict.
	cascadeDelete bool
}

func NewAuthorService(repo repository.RepositoryInterface, cascadeDelete bool) ServiceInterface {
	return &authorService{
		repo:          repo,
		cascadeDelete: cascadeDelete,
	}
}

// List returns all authors with their owned books and counts, ordered
// by name.
func (s *authorService) List(ctx context.Context) ([]model.AuthorWithBooks, error) {
	authors, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, len(authors))
	for i, a := range authors {
		ids[i] = a.ID
	}

	booksByAuthor, err := s.repo.ListBooksForAuthors(ctx, ids)
	if err != nil {
		return nil, err
	}

	result := make([]model.AuthorWithBooks, len(authors))
	for i, a := range authors {
		books := booksByAuthor[a.ID]
		if books == nil {
			books = []bookmodel.Book{}
		}
		result[i] = model.AuthorWithBooks{
			Author:    a,
			Books:     books,
			BookCount: len(books),
		}
	}

	return result, nil
}

func (s *authorService) GetByID(ctx context.Context, id uuid.UUID) (*model.AuthorWithBooks, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	books, err := s.repo.ListBooksByYearDesc(ctx, id)
	if err != nil {
		return nil, err
	}

	return &model.AuthorWithBooks{
		Author:    *a,
		Books:     books,
		BookCount: len(books),
	}, nil
}

func (s *authorService) Create(ctx context.Context, req *model.CreateAuthorRequest) (*model.AuthorWithBooks, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, req)
	if err != nil {
		return nil, err
	}

	return &model.AuthorWithBooks{
		Author: *created,
		Books:  []bookmodel.Book{},
	}, nil
}

func (s *authorService) Update(ctx context.Context, id uuid.UUID, req *model.UpdateAuthorRequest) (*model.AuthorWithBooks, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	updated, err := s.repo.Update(ctx, id, req)
	if err != nil {
		return nil, err
	}

	books, err := s.repo.ListBooksByYearDesc(ctx, id)
	if err != nil {
		return nil, err
	}

	return &model.AuthorWithBooks{
		Author:    *updated,
		Books:     books,
		BookCount: len(books),
	}, nil
}

// Delete applies the configured policy for authors that still own books:
// either cascade-delete the books or reject with a conflict.
func (s *authorService) Delete(ctx context.Context, id uuid.UUID) error {
	if s.cascadeDelete {
		return s.repo.DeleteWithBooks(ctx, id)
	}

	bookCount, err := s.repo.GetBookCount(ctx, id)
	if err != nil {
		return err
	}
	if bookCount > 0 {
		return model.ErrAuthorHasBooks
	}

	return s.repo.Delete(ctx, id)
}

// Books returns the author's books ordered by publication year
// descending.
func (s *authorService) Books(ctx context.Context, id uuid.UUID) (*model.AuthorBooksResponse, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	books, err := s.repo.ListBooksByYearDesc(ctx, id)
	if err != nil {
		return nil, err
	}

	return &model.AuthorBooksResponse{
		Author:     model.AuthorRef{ID: a.ID, Name: a.Name},
		TotalBooks: len(books),
		Books:      books,
	}, nil
}

// Stats computes the derived aggregates in one pass over the author's
// books, then runs the two extremal lookups concurrently. An author
// with zero books short-circuits to a zero-valued envelope without the
// extremal queries.
func (s *authorService) Stats(ctx context.Context, id uuid.UUID) (*model.StatsReport, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	books, err := s.repo.ListBooksByYearAsc(ctx, id)
	if err != nil {
		return nil, err
	}

	report := &model.StatsReport{
		AuthorID:   a.ID,
		AuthorName: a.Name,
		Genres:     []string{},
	}

	if len(books) == 0 {
		return report, nil
	}

	agg := model.ComputeBookAggregates(books)
	report.TotalBooks = agg.TotalBooks
	report.FirstBook = agg.FirstBook
	report.LatestBook = agg.LatestBook
	report.AveragePages = agg.AveragePages
	report.Genres = agg.Genres

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		report.LongestBook, err = s.repo.LongestBook(gctx, id)
		return err
	})
	g.Go(func() error {
		var err error
		report.ShortestBook, err = s.repo.ShortestBook(gctx, id)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return report, nil
}
