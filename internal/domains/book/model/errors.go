package model

import "errors"

var (
	ErrBookNotFound   = errors.New("book not found")
	ErrDuplicateISBN  = errors.New("a book with this isbn already exists")
	ErrAuthorNotFound = errors.New("referenced author not found")
)

// ToHTTPStatus maps domain errors to HTTP status codes. Validation
// errors are handled separately by the handlers (ozzo validation.Errors
// always maps to 400); anything unknown is a 500.
func ToHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrBookNotFound), errors.Is(err, ErrAuthorNotFound):
		return 404
	case errors.Is(err, ErrDuplicateISBN):
		return 409
	default:
		return 500
	}
}
