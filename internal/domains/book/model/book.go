package model

import (
	"time"

	"github.com/google/uuid"
)

// Book is the core Book entity. Optional columns are pointers so that
// NULL survives the round trip to the store.
type Book struct {
	ID            uuid.UUID `json:"id"`
	Title         string    `json:"title"`
	Description   *string   `json:"description"`
	ISBN          *string   `json:"isbn"`
	PublishedYear *int      `json:"publishedYear"`
	Genre         *string   `json:"genre"`
	Pages         *int      `json:"pages"`
	AuthorID      uuid.UUID `json:"authorId"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// AuthorSummary is the slice of the author record embedded in book
// responses. Email is filled by the list endpoint only.
type AuthorSummary struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email,omitempty"`
}

// BookWithAuthor is a book row joined with its author summary.
type BookWithAuthor struct {
	Book
	Author AuthorSummary `json:"author"`
}
