package model

import (
	"math"

	"github.com/google/uuid"

	bookmodel "library-catalog/internal/domains/book/model"
)

// BookRef names a book together with its publication year.
type BookRef struct {
	Title string `json:"title"`
	Year  *int   `json:"year"`
}

// PageRef names a book together with its page count.
type PageRef struct {
	Title string `json:"title"`
	Pages int    `json:"pages"`
}

// StatsReport - GET /authors/:id/stats envelope.
type StatsReport struct {
	AuthorID     uuid.UUID `json:"authorId"`
	AuthorName   string    `json:"authorName"`
	TotalBooks   int       `json:"totalBooks"`
	FirstBook    *BookRef  `json:"firstBook"`
	LatestBook   *BookRef  `json:"latestBook"`
	AveragePages int       `json:"averagePages"`
	Genres       []string  `json:"genres"`
	LongestBook  *PageRef  `json:"longestBook"`
	ShortestBook *PageRef  `json:"shortestBook"`
}

// BookAggregates holds the derived values computable in a single pass
// over an author's books. The extremal page lookups are separate store
// queries and not part of this struct.
type BookAggregates struct {
	TotalBooks   int
	FirstBook    *BookRef
	LatestBook   *BookRef
	AveragePages int
	Genres       []string
}

// ComputeBookAggregates derives the aggregate statistics from books
// ordered by publication year ascending (nulls last):
//
//   - FirstBook/LatestBook are the first and last entries of the
//     traversal with a non-null year. Under nulls-last ordering the
//     latter is also the book with the maximum year.
//   - AveragePages is the mean over non-null page counts, rounded to
//     the nearest integer; 0 when no book has pages.
//   - Genres is deduplicated and keeps first-occurrence order.
func ComputeBookAggregates(books []bookmodel.Book) BookAggregates {
	agg := BookAggregates{
		TotalBooks: len(books),
		Genres:     []string{},
	}

	pagesSum := 0
	pagesCount := 0
	seenGenres := map[string]bool{}

	for _, b := range books {
		if b.PublishedYear != nil {
			ref := &BookRef{Title: b.Title, Year: b.PublishedYear}
			if agg.FirstBook == nil {
				agg.FirstBook = ref
			}
			agg.LatestBook = ref
		}

		if b.Pages != nil {
			pagesSum += *b.Pages
			pagesCount++
		}

		if b.Genre != nil && *b.Genre != "" && !seenGenres[*b.Genre] {
			seenGenres[*b.Genre] = true
			agg.Genres = append(agg.Genres, *b.Genre)
		}
	}

	if pagesCount > 0 {
		agg.AveragePages = int(math.Round(float64(pagesSum) / float64(pagesCount)))
	}

	return agg
}
