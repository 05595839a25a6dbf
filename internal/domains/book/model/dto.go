package model

import (
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"library-catalog/internal/shared/types"
)

const (
	MinTitleLength = 3
	MinPages       = 1

	DefaultPageSize = 10
	MinPageSize     = 1
	MaxPageSize     = 50
)

// CreateBookRequest - POST /books
type CreateBookRequest struct {
	Title         string               `json:"title"`
	Description   types.OptionalString `json:"description"`
	ISBN          types.OptionalString `json:"isbn"`
	PublishedYear types.OptionalInt    `json:"publishedYear"`
	Genre         types.OptionalString `json:"genre"`
	Pages         types.OptionalInt    `json:"pages"`
	AuthorID      string               `json:"authorId"`
}

func (r CreateBookRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title,
			validation.Required.Error("title is required"),
			validation.Length(MinTitleLength, 0).Error(
				fmt.Sprintf("title must be at least %d characters", MinTitleLength)),
		),
		validation.Field(&r.AuthorID,
			validation.Required.Error("authorId is required"),
		),
		validation.Field(&r.Pages, validation.By(atLeastWhenPresent(MinPages, "pages"))),
	)
}

// UpdateBookRequest - PUT /books/:id
// Sparse patch: fields absent from the body leave the stored value
// untouched; per-field rules apply only to fields that are present.
type UpdateBookRequest struct {
	Title         types.OptionalString `json:"title"`
	Description   types.OptionalString `json:"description"`
	ISBN          types.OptionalString `json:"isbn"`
	PublishedYear types.OptionalInt    `json:"publishedYear"`
	Genre         types.OptionalString `json:"genre"`
	Pages         types.OptionalInt    `json:"pages"`
	AuthorID      types.OptionalString `json:"authorId"`
}

func (r UpdateBookRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.By(func(value interface{}) error {
			v, _ := value.(types.OptionalString)
			if !v.Set {
				return nil
			}
			if !v.Valid || len(v.Str) < MinTitleLength {
				return fmt.Errorf("title must be at least %d characters", MinTitleLength)
			}
			return nil
		})),
		validation.Field(&r.AuthorID, validation.By(func(value interface{}) error {
			v, _ := value.(types.OptionalString)
			if v.Set && !v.Valid {
				return fmt.Errorf("authorId cannot be null")
			}
			return nil
		})),
		validation.Field(&r.Pages, validation.By(atLeastWhenPresent(MinPages, "pages"))),
	)
}

// HasChanges reports whether the patch touches any column.
func (r UpdateBookRequest) HasChanges() bool {
	return r.Title.Set || r.Description.Set || r.ISBN.Set ||
		r.PublishedYear.Set || r.Genre.Set || r.Pages.Set || r.AuthorID.Set
}

func atLeastWhenPresent(min int, field string) validation.RuleFunc {
	return func(value interface{}) error {
		v, _ := value.(types.OptionalInt)
		if v.Valid && v.Int < min {
			return fmt.Errorf("%s must be at least %d", field, min)
		}
		return nil
	}
}

// ListFilter - GET /books query parameters. Empty values mean
// "no filter".
type ListFilter struct {
	Genre    string
	AuthorID string
}

// SearchFilter - GET /books/search query parameters.
type SearchFilter struct {
	Search     string
	Genre      string
	AuthorName string
	Page       int
	Limit      int
	SortBy     string
	Order      string
}

// sortColumns whitelists sort keys and maps them to column names.
var sortColumns = map[string]string{
	"title":         "title",
	"publishedYear": "published_year",
	"createdAt":     "created_at",
}

// Normalize clamps out-of-range parameters into their nearest valid
// bound and falls back to defaults for unrecognized sort keys. It never
// fails: the search endpoint has no 400 path.
func (f *SearchFilter) Normalize() {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < MinPageSize {
		f.Limit = MinPageSize
	}
	if f.Limit > MaxPageSize {
		f.Limit = MaxPageSize
	}
	if _, ok := sortColumns[f.SortBy]; !ok {
		f.SortBy = "createdAt"
	}
	if f.Order != "asc" {
		f.Order = "desc"
	}
}

// SortColumn returns the whitelisted column name for ORDER BY.
// Call Normalize first.
func (f SearchFilter) SortColumn() string {
	return sortColumns[f.SortBy]
}

// SortOrder returns "ASC" or "DESC" for ORDER BY.
func (f SearchFilter) SortOrder() string {
	if f.Order == "asc" {
		return "ASC"
	}
	return "DESC"
}

func (f SearchFilter) Offset() int {
	return (f.Page - 1) * f.Limit
}

// PaginationMeta - pagination envelope metadata.
type PaginationMeta struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
	HasNext    bool  `json:"hasNext"`
	HasPrev    bool  `json:"hasPrev"`
}

// NewPaginationMeta computes totalPages as ceil(total/limit) with a
// floor of 1, so a filter matching nothing still yields a valid
// one-page envelope.
func NewPaginationMeta(page, limit int, total int64) PaginationMeta {
	totalPages := int((total + int64(limit) - 1) / int64(limit))
	if totalPages < 1 {
		totalPages = 1
	}
	return PaginationMeta{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
		HasNext:    page < totalPages,
		HasPrev:    page > 1,
	}
}

// SearchBooksResponse - paginated search envelope.
type SearchBooksResponse struct {
	Data       []BookWithAuthor `json:"data"`
	Pagination PaginationMeta   `json:"pagination"`
}
