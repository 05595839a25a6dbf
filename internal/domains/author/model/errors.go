package model

import "errors"

var (
	ErrAuthorNotFound = errors.New("author not found")
	ErrDuplicateEmail = errors.New("an author with this email already exists")
	ErrAuthorHasBooks = errors.New("cannot delete author with linked books")
)

// ToHTTPStatus maps domain errors to HTTP status codes; unknown errors
// are a 500.
func ToHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrAuthorNotFound):
		return 404
	case errors.Is(err, ErrDuplicateEmail), errors.Is(err, ErrAuthorHasBooks):
		return 409
	default:
		return 500
	}
}
