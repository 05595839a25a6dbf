package model

import (
	"fmt"
	"regexp"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	bookmodel "library-catalog/internal/domains/book/model"
	"library-catalog/internal/shared/types"
)

// emailRX is deliberately loose: non-whitespace local part, non-whitespace
// domain, dot-separated TLD segment.
var emailRX = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Author is the core Author entity.
type Author struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Bio         *string   `json:"bio"`
	Nationality *string   `json:"nationality"`
	BirthYear   *int      `json:"birthYear"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// AuthorWithBooks is the detail shape: the author plus its owned books
// and their count.
type AuthorWithBooks struct {
	Author
	Books     []bookmodel.Book `json:"books"`
	BookCount int              `json:"bookCount"`
}

// AuthorRef is the minimal author reference used by the books-by-author
// endpoint.
type AuthorRef struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// AuthorBooksResponse - GET /authors/:id/books
type AuthorBooksResponse struct {
	Author     AuthorRef        `json:"author"`
	TotalBooks int              `json:"totalBooks"`
	Books      []bookmodel.Book `json:"books"`
}

// CreateAuthorRequest - POST /authors
type CreateAuthorRequest struct {
	Name        string               `json:"name"`
	Email       string               `json:"email"`
	Bio         types.OptionalString `json:"bio"`
	Nationality types.OptionalString `json:"nationality"`
	BirthYear   types.OptionalInt    `json:"birthYear"`
}

func (r CreateAuthorRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name,
			validation.Required.Error("name is required"),
		),
		validation.Field(&r.Email,
			validation.Required.Error("email is required"),
			validation.Match(emailRX).Error("invalid email format"),
		),
	)
}

// UpdateAuthorRequest - PUT /authors/:id
// Sparse patch: absent fields leave the stored value untouched, while an
// explicit null clears a nullable column.
type UpdateAuthorRequest struct {
	Name        types.OptionalString `json:"name"`
	Email       types.OptionalString `json:"email"`
	Bio         types.OptionalString `json:"bio"`
	Nationality types.OptionalString `json:"nationality"`
	BirthYear   types.OptionalInt    `json:"birthYear"`
}

func (r UpdateAuthorRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.By(func(value interface{}) error {
			v, _ := value.(types.OptionalString)
			if v.Set && (!v.Valid || v.Str == "") {
				return fmt.Errorf("name cannot be empty")
			}
			return nil
		})),
		validation.Field(&r.Email, validation.By(func(value interface{}) error {
			v, _ := value.(types.OptionalString)
			if !v.Set {
				return nil
			}
			if !v.Valid || !emailRX.MatchString(v.Str) {
				return fmt.Errorf("invalid email format")
			}
			return nil
		})),
	)
}

// HasChanges reports whether the patch touches any column.
func (r UpdateAuthorRequest) HasChanges() bool {
	return r.Name.Set || r.Email.Set || r.Bio.Set || r.Nationality.Set || r.BirthYear.Set
}
