package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"library-catalog/internal/domains/book/model"
)

// fakeBookRepo is a scripted in-memory stand-in for the store.
type fakeBookRepo struct {
	authorExists bool

	createErr error
	deleteErr error

	searchTotal int64
	searchPage  []model.BookWithAuthor
	searchErr   error

	createCalls int
	countFilter *model.SearchFilter
	pageFilter  *model.SearchFilter
}

func (f *fakeBookRepo) Create(ctx context.Context, req *model.CreateBookRequest, authorID uuid.UUID) (*model.BookWithAuthor, error) {
	f.createCalls++
	if f.createErr != nil {
		return nil, f.createErr
	}
	return &model.BookWithAuthor{
		Book: model.Book{ID: uuid.New(), Title: req.Title, AuthorID: authorID},
	}, nil
}

func (f *fakeBookRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.BookWithAuthor, error) {
	return nil, model.ErrBookNotFound
}

func (f *fakeBookRepo) List(ctx context.Context, filter model.ListFilter) ([]model.BookWithAuthor, error) {
	return []model.BookWithAuthor{}, nil
}

func (f *fakeBookRepo) Update(ctx context.Context, id uuid.UUID, patch *model.UpdateBookRequest) (*model.BookWithAuthor, error) {
	return nil, model.ErrBookNotFound
}

func (f *fakeBookRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return f.deleteErr
}

func (f *fakeBookRepo) SearchCount(ctx context.Context, filter model.SearchFilter) (int64, error) {
	f.countFilter = &filter
	return f.searchTotal, f.searchErr
}

func (f *fakeBookRepo) SearchPage(ctx context.Context, filter model.SearchFilter) ([]model.BookWithAuthor, error) {
	f.pageFilter = &filter
	return f.searchPage, nil
}

func (f *fakeBookRepo) AuthorExists(ctx context.Context, authorID uuid.UUID) (bool, error) {
	return f.authorExists, nil
}

func TestBookService_Create_ValidationFailureSkipsStore(t *testing.T) {
	repo := &fakeBookRepo{authorExists: true}
	svc := NewBookService(repo)

	_, err := svc.Create(context.Background(), &model.CreateBookRequest{
		Title:    "Du",
		AuthorID: uuid.NewString(),
	})

	require.Error(t, err)
	assert.Zero(t, repo.createCalls, "invalid request must not reach the store")
}

func TestBookService_Create_UnknownAuthor(t *testing.T) {
	repo := &fakeBookRepo{authorExists: false}
	svc := NewBookService(repo)

	_, err := svc.Create(context.Background(), &model.CreateBookRequest{
		Title:    "Dune",
		AuthorID: uuid.NewString(),
	})

	assert.ErrorIs(t, err, model.ErrAuthorNotFound)
	assert.Zero(t, repo.createCalls)
}

func TestBookService_Create_MalformedAuthorID(t *testing.T) {
	repo := &fakeBookRepo{authorExists: true}
	svc := NewBookService(repo)

	_, err := svc.Create(context.Background(), &model.CreateBookRequest{
		Title:    "Dune",
		AuthorID: "not-a-uuid",
	})

	assert.ErrorIs(t, err, model.ErrAuthorNotFound)
	assert.Zero(t, repo.createCalls)
}

func TestBookService_Create_DuplicateISBN(t *testing.T) {
	repo := &fakeBookRepo{authorExists: true, createErr: model.ErrDuplicateISBN}
	svc := NewBookService(repo)

	_, err := svc.Create(context.Background(), &model.CreateBookRequest{
		Title:    "Dune",
		AuthorID: uuid.NewString(),
	})

	assert.ErrorIs(t, err, model.ErrDuplicateISBN)
}

func TestBookService_Create_Success(t *testing.T) {
	repo := &fakeBookRepo{authorExists: true}
	svc := NewBookService(repo)

	book, err := svc.Create(context.Background(), &model.CreateBookRequest{
		Title:    "Dune",
		AuthorID: uuid.NewString(),
	})

	require.NoError(t, err)
	assert.Equal(t, "Dune", book.Title)
	assert.Equal(t, 1, repo.createCalls)
}

func TestBookService_List_MalformedAuthorFilter(t *testing.T) {
	svc := NewBookService(&fakeBookRepo{})

	books, err := svc.List(context.Background(), model.ListFilter{AuthorID: "garbage"})

	require.NoError(t, err)
	assert.Empty(t, books)
}

func TestBookService_Delete_NotFound(t *testing.T) {
	repo := &fakeBookRepo{deleteErr: model.ErrBookNotFound}
	svc := NewBookService(repo)

	err := svc.Delete(context.Background(), uuid.New())
	assert.ErrorIs(t, err, model.ErrBookNotFound)
}

func TestBookService_Search_Envelope(t *testing.T) {
	repo := &fakeBookRepo{
		searchTotal: 25,
		searchPage: []model.BookWithAuthor{
			{Book: model.Book{ID: uuid.New(), Title: "Result"}},
		},
	}
	svc := NewBookService(repo)

	resp, err := svc.Search(context.Background(), model.SearchFilter{
		Page:  2,
		Limit: 10,
	})

	require.NoError(t, err)
	assert.Len(t, resp.Data, 1)
	assert.Equal(t, 2, resp.Pagination.Page)
	assert.Equal(t, 10, resp.Pagination.Limit)
	assert.Equal(t, int64(25), resp.Pagination.Total)
	assert.Equal(t, 3, resp.Pagination.TotalPages)
	assert.True(t, resp.Pagination.HasNext)
	assert.True(t, resp.Pagination.HasPrev)
}

func TestBookService_Search_NormalizesBeforeQuerying(t *testing.T) {
	repo := &fakeBookRepo{}
	svc := NewBookService(repo)

	_, err := svc.Search(context.Background(), model.SearchFilter{
		Page:   -5,
		Limit:  9000,
		SortBy: "nonsense",
		Order:  "upward",
	})
	require.NoError(t, err)

	require.NotNil(t, repo.countFilter)
	require.NotNil(t, repo.pageFilter)
	for _, f := range []*model.SearchFilter{repo.countFilter, repo.pageFilter} {
		assert.Equal(t, 1, f.Page)
		assert.Equal(t, model.MaxPageSize, f.Limit)
		assert.Equal(t, "createdAt", f.SortBy)
		assert.Equal(t, "desc", f.Order)
	}
}

func TestBookService_Search_EmptyPageStillValidEnvelope(t *testing.T) {
	repo := &fakeBookRepo{searchTotal: 0, searchPage: nil}
	svc := NewBookService(repo)

	resp, err := svc.Search(context.Background(), model.SearchFilter{Page: 1, Limit: 10})

	require.NoError(t, err)
	assert.NotNil(t, resp.Data)
	assert.Empty(t, resp.Data)
	assert.Equal(t, 1, resp.Pagination.TotalPages)
	assert.False(t, resp.Pagination.HasNext)
}

func TestBookService_Search_CountErrorPropagates(t *testing.T) {
	boom := errors.New("store down")
	repo := &fakeBookRepo{searchErr: boom}
	svc := NewBookService(repo)

	_, err := svc.Search(context.Background(), model.SearchFilter{Page: 1, Limit: 10})
	assert.ErrorIs(t, err, boom)
}
