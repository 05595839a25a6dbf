package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	bookmodel "library-catalog/internal/domains/book/model"
)

func intPtr(n int) *int       { return &n }
func strPtr(s string) *string { return &s }

// byYearAsc mirrors the store ordering the aggregates assume: published
// year ascending with nulls at the end.
func TestComputeBookAggregates(t *testing.T) {
	books := []bookmodel.Book{
		{Title: "Early Work", PublishedYear: intPtr(1965), Pages: intPtr(100), Genre: strPtr("sci-fi")},
		{Title: "Middle Work", PublishedYear: intPtr(1972), Pages: intPtr(150), Genre: strPtr("fantasy")},
		{Title: "Late Work", PublishedYear: intPtr(1981), Pages: nil, Genre: strPtr("sci-fi")},
		{Title: "Undated Work", PublishedYear: nil, Pages: intPtr(200), Genre: nil},
	}

	agg := ComputeBookAggregates(books)

	assert.Equal(t, 4, agg.TotalBooks)

	require.NotNil(t, agg.FirstBook)
	assert.Equal(t, "Early Work", agg.FirstBook.Title)
	assert.Equal(t, 1965, *agg.FirstBook.Year)

	// The undated book sorts last and never displaces the latest dated one.
	require.NotNil(t, agg.LatestBook)
	assert.Equal(t, "Late Work", agg.LatestBook.Title)
	assert.Equal(t, 1981, *agg.LatestBook.Year)

	// Mean of 100, 150, 200; the book without pages is excluded.
	assert.Equal(t, 150, agg.AveragePages)

	// Deduplicated, first-occurrence order.
	assert.Equal(t, []string{"sci-fi", "fantasy"}, agg.Genres)
}

func TestComputeBookAggregates_Rounding(t *testing.T) {
	books := []bookmodel.Book{
		{Title: "A", Pages: intPtr(100)},
		{Title: "B", Pages: intPtr(150)},
		{Title: "C", Pages: nil},
	}

	agg := ComputeBookAggregates(books)
	assert.Equal(t, 125, agg.AveragePages)

	agg = ComputeBookAggregates([]bookmodel.Book{
		{Title: "A", Pages: intPtr(100)},
		{Title: "B", Pages: intPtr(101)},
	})
	assert.Equal(t, 101, agg.AveragePages, "mean of 100.5 rounds half up")
}

func TestComputeBookAggregates_NoBooks(t *testing.T) {
	agg := ComputeBookAggregates(nil)

	assert.Equal(t, 0, agg.TotalBooks)
	assert.Nil(t, agg.FirstBook)
	assert.Nil(t, agg.LatestBook)
	assert.Equal(t, 0, agg.AveragePages)
	assert.NotNil(t, agg.Genres)
	assert.Empty(t, agg.Genres)
}

func TestComputeBookAggregates_AllYearsNull(t *testing.T) {
	books := []bookmodel.Book{
		{Title: "A", Pages: intPtr(90)},
		{Title: "B", Pages: intPtr(110)},
	}

	agg := ComputeBookAggregates(books)

	assert.Equal(t, 2, agg.TotalBooks)
	assert.Nil(t, agg.FirstBook)
	assert.Nil(t, agg.LatestBook)
	assert.Equal(t, 100, agg.AveragePages)
}

func TestComputeBookAggregates_EmptyGenreIgnored(t *testing.T) {
	books := []bookmodel.Book{
		{Title: "A", Genre: strPtr("")},
		{Title: "B", Genre: strPtr("horror")},
		{Title: "C", Genre: strPtr("horror")},
	}

	agg := ComputeBookAggregates(books)
	assert.Equal(t, []string{"horror"}, agg.Genres)
}

func TestCreateAuthorRequest_Validate(t *testing.T) {
	valid := CreateAuthorRequest{Name: "Ursula K. Le Guin", Email: "ursula@example.com"}
	assert.NoError(t, valid.Validate())

	assert.Error(t, CreateAuthorRequest{Email: "ursula@example.com"}.Validate())
	assert.Error(t, CreateAuthorRequest{Name: "Ursula"}.Validate())
	assert.Error(t, CreateAuthorRequest{Name: "Ursula", Email: "not-an-email"}.Validate())
	assert.Error(t, CreateAuthorRequest{Name: "Ursula", Email: "spaces in@example.com"}.Validate())
}
