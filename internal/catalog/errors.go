package catalog

import (
	"errors"

	"github.com/mrlokans/bookshelf/internal/validation"
)

// Kind classifies a failed catalog operation.
type Kind int

const (
	KindValidation Kind = iota + 1
	KindNotFound
	KindConflict
	KindStorage
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindStorage:
		return "storage"
	default:
		return "unknown"
	}
}

// Sentinels for errors.Is checks against *Error.
var (
	ErrValidation = errors.New("validation failed")
	ErrNotFound   = errors.New("not found")
	ErrConflict   = errors.New("conflict")
	ErrStorage    = errors.New("storage failure")
)

// Error is the structured failure every catalog operation returns.
// Message is safe to show to users; the storage cause is kept in Err.
type Error struct {
	Kind    Kind
	Op      string
	Message string
	Fields  []validation.FieldError
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Is(target error) bool {
	switch target {
	case ErrValidation:
		return e.Kind == KindValidation
	case ErrNotFound:
		return e.Kind == KindNotFound
	case ErrConflict:
		return e.Kind == KindConflict
	case ErrStorage:
		return e.Kind == KindStorage
	}
	return false
}

// AsError extracts a *Error from err.
func AsError(err error) (*Error, bool) {
	var cerr *Error
	if errors.As(err, &cerr) {
		return cerr, true
	}
	return nil, false
}

// KindOf returns the kind of err, or 0 when err is not a catalog error.
func KindOf(err error) Kind {
	if cerr, ok := AsError(err); ok {
		return cerr.Kind
	}
	return 0
}

const (
	msgAuthorNotFound = "Author not found"
	msgBookNotFound   = "Book not found"
	msgAuthorHasBooks = "Cannot delete an author who still has books"
	msgFetchAuthors   = "Failed to fetch authors"
	msgFetchAuthor    = "Failed to fetch author"
	msgCreateAuthor   = "Failed to create author"
	msgUpdateAuthor   = "Failed to update author"
	msgDeleteAuthor   = "Failed to delete author"
	msgFetchBooks     = "Failed to fetch books"
	msgFetchBook      = "Failed to fetch book"
	msgCreateBook     = "Failed to create book"
	msgUpdateBook     = "Failed to update book"
	msgDeleteBook     = "Failed to delete book"
	msgFetchPublished = "Failed to fetch published books"
	msgFetchStats     = "Failed to fetch statistics"
)

func validationError(op string, err error) *Error {
	cerr := &Error{Kind: KindValidation, Op: op, Message: err.Error(), Err: err}
	if verr, ok := validation.AsError(err); ok {
		cerr.Fields = verr.Fields
	}
	return cerr
}

// unknownAuthorError reports a book referencing an author that does not exist.
func unknownAuthorError(op string) *Error {
	return &Error{
		Kind:    KindValidation,
		Op:      op,
		Message: msgAuthorNotFound,
		Fields:  []validation.FieldError{{Field: "authorId", Message: msgAuthorNotFound}},
	}
}

func notFoundError(op, message string) *Error {
	return &Error{Kind: KindNotFound, Op: op, Message: message, Err: ErrNotFound}
}
