package service

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"library-catalog/internal/domains/author/model"
	bookmodel "library-catalog/internal/domains/book/model"
)

func intPtr(n int) *int { return &n }

// fakeAuthorRepo is a scripted in-memory stand-in for the store.
type fakeAuthorRepo struct {
	author *model.Author
	books  []bookmodel.Book

	createErr error

	longest  *model.PageRef
	shortest *model.PageRef

	deleteCalls          int
	deleteWithBooksCalls int

	// Incremented from concurrent goroutines.
	extremalCalls atomic.Int32
}

func (f *fakeAuthorRepo) Create(ctx context.Context, req *model.CreateAuthorRequest) (*model.Author, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	return &model.Author{ID: uuid.New(), Name: req.Name, Email: req.Email}, nil
}

func (f *fakeAuthorRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.Author, error) {
	if f.author == nil {
		return nil, model.ErrAuthorNotFound
	}
	return f.author, nil
}

func (f *fakeAuthorRepo) ListAll(ctx context.Context) ([]model.Author, error) {
	if f.author == nil {
		return []model.Author{}, nil
	}
	return []model.Author{*f.author}, nil
}

func (f *fakeAuthorRepo) Update(ctx context.Context, id uuid.UUID, patch *model.UpdateAuthorRequest) (*model.Author, error) {
	if f.author == nil {
		return nil, model.ErrAuthorNotFound
	}
	updated := *f.author
	if patch.Name.Set && patch.Name.Valid {
		updated.Name = patch.Name.Str
	}
	return &updated, nil
}

func (f *fakeAuthorRepo) Delete(ctx context.Context, id uuid.UUID) error {
	f.deleteCalls++
	if f.author == nil {
		return model.ErrAuthorNotFound
	}
	return nil
}

func (f *fakeAuthorRepo) DeleteWithBooks(ctx context.Context, id uuid.UUID) error {
	f.deleteWithBooksCalls++
	if f.author == nil {
		return model.ErrAuthorNotFound
	}
	return nil
}

func (f *fakeAuthorRepo) GetBookCount(ctx context.Context, authorID uuid.UUID) (int, error) {
	return len(f.books), nil
}

func (f *fakeAuthorRepo) ListBooksByYearDesc(ctx context.Context, authorID uuid.UUID) ([]bookmodel.Book, error) {
	return f.books, nil
}

func (f *fakeAuthorRepo) ListBooksByYearAsc(ctx context.Context, authorID uuid.UUID) ([]bookmodel.Book, error) {
	return f.books, nil
}

func (f *fakeAuthorRepo) ListBooksForAuthors(ctx context.Context, authorIDs []uuid.UUID) (map[uuid.UUID][]bookmodel.Book, error) {
	out := map[uuid.UUID][]bookmodel.Book{}
	if f.author != nil && len(f.books) > 0 {
		out[f.author.ID] = f.books
	}
	return out, nil
}

func (f *fakeAuthorRepo) LongestBook(ctx context.Context, authorID uuid.UUID) (*model.PageRef, error) {
	f.extremalCalls.Add(1)
	return f.longest, nil
}

func (f *fakeAuthorRepo) ShortestBook(ctx context.Context, authorID uuid.UUID) (*model.PageRef, error) {
	f.extremalCalls.Add(1)
	return f.shortest, nil
}

func testAuthor() *model.Author {
	return &model.Author{ID: uuid.New(), Name: "Frank Herbert", Email: "frank@example.com"}
}

func TestAuthorService_Create_ValidationFailure(t *testing.T) {
	repo := &fakeAuthorRepo{}
	svc := NewAuthorService(repo, false)

	_, err := svc.Create(context.Background(), &model.CreateAuthorRequest{
		Name:  "Frank Herbert",
		Email: "not-an-email",
	})
	assert.Error(t, err)
}

func TestAuthorService_Create_DuplicateEmail(t *testing.T) {
	repo := &fakeAuthorRepo{createErr: model.ErrDuplicateEmail}
	svc := NewAuthorService(repo, false)

	_, err := svc.Create(context.Background(), &model.CreateAuthorRequest{
		Name:  "Frank Herbert",
		Email: "frank@example.com",
	})
	assert.ErrorIs(t, err, model.ErrDuplicateEmail)
}

func TestAuthorService_Create_NewAuthorHasEmptyBooks(t *testing.T) {
	repo := &fakeAuthorRepo{}
	svc := NewAuthorService(repo, false)

	author, err := svc.Create(context.Background(), &model.CreateAuthorRequest{
		Name:  "Frank Herbert",
		Email: "frank@example.com",
	})

	require.NoError(t, err)
	assert.NotNil(t, author.Books)
	assert.Empty(t, author.Books)
	assert.Zero(t, author.BookCount)
}

func TestAuthorService_List_AttachesBooks(t *testing.T) {
	a := testAuthor()
	repo := &fakeAuthorRepo{
		author: a,
		books: []bookmodel.Book{
			{ID: uuid.New(), Title: "Dune", AuthorID: a.ID},
			{ID: uuid.New(), Title: "Dune Messiah", AuthorID: a.ID},
		},
	}
	svc := NewAuthorService(repo, false)

	authors, err := svc.List(context.Background())

	require.NoError(t, err)
	require.Len(t, authors, 1)
	assert.Equal(t, 2, authors[0].BookCount)
	assert.Len(t, authors[0].Books, 2)
}

func TestAuthorService_List_AuthorWithoutBooks(t *testing.T) {
	repo := &fakeAuthorRepo{author: testAuthor()}
	svc := NewAuthorService(repo, false)

	authors, err := svc.List(context.Background())

	require.NoError(t, err)
	require.Len(t, authors, 1)
	assert.NotNil(t, authors[0].Books, "books must serialize as [] rather than null")
	assert.Zero(t, authors[0].BookCount)
}

func TestAuthorService_Delete_RejectsWhenBooksExist(t *testing.T) {
	repo := &fakeAuthorRepo{
		author: testAuthor(),
		books:  []bookmodel.Book{{Title: "Dune"}},
	}
	svc := NewAuthorService(repo, false)

	err := svc.Delete(context.Background(), repo.author.ID)

	assert.ErrorIs(t, err, model.ErrAuthorHasBooks)
	assert.Zero(t, repo.deleteCalls)
	assert.Zero(t, repo.deleteWithBooksCalls)
}

func TestAuthorService_Delete_NoBooks(t *testing.T) {
	repo := &fakeAuthorRepo{author: testAuthor()}
	svc := NewAuthorService(repo, false)

	require.NoError(t, svc.Delete(context.Background(), repo.author.ID))
	assert.Equal(t, 1, repo.deleteCalls)
}

func TestAuthorService_Delete_CascadePolicy(t *testing.T) {
	repo := &fakeAuthorRepo{
		author: testAuthor(),
		books:  []bookmodel.Book{{Title: "Dune"}},
	}
	svc := NewAuthorService(repo, true)

	require.NoError(t, svc.Delete(context.Background(), repo.author.ID))
	assert.Equal(t, 1, repo.deleteWithBooksCalls)
	assert.Zero(t, repo.deleteCalls)
}

func TestAuthorService_Books(t *testing.T) {
	a := testAuthor()
	repo := &fakeAuthorRepo{
		author: a,
		books: []bookmodel.Book{
			{Title: "Children of Dune", PublishedYear: intPtr(1976)},
			{Title: "Dune", PublishedYear: intPtr(1965)},
		},
	}
	svc := NewAuthorService(repo, false)

	resp, err := svc.Books(context.Background(), a.ID)

	require.NoError(t, err)
	assert.Equal(t, a.ID, resp.Author.ID)
	assert.Equal(t, a.Name, resp.Author.Name)
	assert.Equal(t, 2, resp.TotalBooks)
	assert.Len(t, resp.Books, 2)
}

func TestAuthorService_Books_UnknownAuthor(t *testing.T) {
	svc := NewAuthorService(&fakeAuthorRepo{}, false)

	_, err := svc.Books(context.Background(), uuid.New())
	assert.ErrorIs(t, err, model.ErrAuthorNotFound)
}

func TestAuthorService_Stats(t *testing.T) {
	a := testAuthor()
	repo := &fakeAuthorRepo{
		author: a,
		books: []bookmodel.Book{
			{Title: "Dune", PublishedYear: intPtr(1965), Pages: intPtr(412), Genre: strPtr("sci-fi")},
			{Title: "Dune Messiah", PublishedYear: intPtr(1969), Pages: intPtr(256), Genre: strPtr("sci-fi")},
		},
		longest:  &model.PageRef{Title: "Dune", Pages: 412},
		shortest: &model.PageRef{Title: "Dune Messiah", Pages: 256},
	}
	svc := NewAuthorService(repo, false)

	stats, err := svc.Stats(context.Background(), a.ID)

	require.NoError(t, err)
	assert.Equal(t, a.ID, stats.AuthorID)
	assert.Equal(t, a.Name, stats.AuthorName)
	assert.Equal(t, 2, stats.TotalBooks)

	require.NotNil(t, stats.FirstBook)
	assert.Equal(t, "Dune", stats.FirstBook.Title)
	require.NotNil(t, stats.LatestBook)
	assert.Equal(t, "Dune Messiah", stats.LatestBook.Title)

	assert.Equal(t, 334, stats.AveragePages)
	assert.Equal(t, []string{"sci-fi"}, stats.Genres)

	require.NotNil(t, stats.LongestBook)
	assert.Equal(t, 412, stats.LongestBook.Pages)
	require.NotNil(t, stats.ShortestBook)
	assert.Equal(t, 256, stats.ShortestBook.Pages)
}

func TestAuthorService_Stats_NoBooksSkipsExtremalQueries(t *testing.T) {
	a := testAuthor()
	repo := &fakeAuthorRepo{author: a}
	svc := NewAuthorService(repo, false)

	stats, err := svc.Stats(context.Background(), a.ID)

	require.NoError(t, err)
	assert.Zero(t, stats.TotalBooks)
	assert.Nil(t, stats.FirstBook)
	assert.Nil(t, stats.LatestBook)
	assert.Zero(t, stats.AveragePages)
	assert.NotNil(t, stats.Genres)
	assert.Empty(t, stats.Genres)
	assert.Nil(t, stats.LongestBook)
	assert.Nil(t, stats.ShortestBook)
	assert.Zero(t, repo.extremalCalls.Load(), "zero books must short-circuit before the extremal lookups")
}

func TestAuthorService_Stats_UnknownAuthor(t *testing.T) {
	svc := NewAuthorService(&fakeAuthorRepo{}, false)

	_, err := svc.Stats(context.Background(), uuid.New())
	assert.ErrorIs(t, err, model.ErrAuthorNotFound)
}

func strPtr(s string) *string { return &s }
