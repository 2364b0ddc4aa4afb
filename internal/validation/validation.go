// Package validation checks author and book input before it reaches storage.
//
// Validation never panics and never stops at the first problem: every
// violated field is reported, in schema order, through *Error.
package validation

import (
	"errors"
	"strings"
	"time"

	ozzo "github.com/go-ozzo/ozzo-validation/v4"
)

// AuthorInput is the user-supplied shape of an author.
type AuthorInput struct {
	Name     string  `json:"name"`
	Bio      *string `json:"bio"`
	ImageURL *string `json:"imageUrl"`
}

// BookInput is the user-supplied shape of a book.
// Published defaults to false when absent.
type BookInput struct {
	Title       string     `json:"title"`
	Description *string    `json:"description"`
	CoverImage  *string    `json:"coverImage"`
	Published   bool       `json:"published"`
	PublishedAt *time.Time `json:"publishedAt"`
	AuthorID    string     `json:"authorId"`
}

// FieldError is a single violated rule.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error lists every field that failed validation.
type Error struct {
	Fields []FieldError
}

// Error joins all field messages with ", ".
func (e *Error) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, f.Message)
	}
	return strings.Join(msgs, ", ")
}

// FieldMessages maps field names to their message, for re-rendering forms.
func (e *Error) FieldMessages() map[string]string {
	out := make(map[string]string, len(e.Fields))
	for _, f := range e.Fields {
		out[f.Field] = f.Message
	}
	return out
}

// AsError extracts a *Error from err.
func AsError(err error) (*Error, bool) {
	var verr *Error
	if errors.As(err, &verr) {
		return verr, true
	}
	return nil, false
}

var (
	authorFieldOrder = []string{"name", "bio", "imageUrl"}
	bookFieldOrder   = []string{"title", "description", "coverImage", "published", "publishedAt", "authorId"}
)

// ValidateAuthor normalises and validates author input.
func ValidateAuthor(in AuthorInput) (AuthorInput, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Bio = normalizeOptional(in.Bio)
	in.ImageURL = normalizeOptional(in.ImageURL)

	err := ozzo.ValidateStruct(&in,
		ozzo.Field(&in.Name, ozzo.Required.Error("Name is required")),
	)
	if err != nil {
		return in, collect(err, authorFieldOrder)
	}
	return in, nil
}

// ValidateBook normalises and validates book input.
func ValidateBook(in BookInput) (BookInput, error) {
	in.Title = strings.TrimSpace(in.Title)
	in.AuthorID = strings.TrimSpace(in.AuthorID)
	in.Description = normalizeOptional(in.Description)
	in.CoverImage = normalizeOptional(in.CoverImage)

	err := ozzo.ValidateStruct(&in,
		ozzo.Field(&in.Title, ozzo.Required.Error("Title is required")),
		ozzo.Field(&in.AuthorID, ozzo.Required.Error("Author is required")),
	)
	if err != nil {
		return in, collect(err, bookFieldOrder)
	}
	return in, nil
}

// collect turns ozzo's per-field map into an ordered *Error.
func collect(err error, order []string) error {
	var errs ozzo.Errors
	if !errors.As(err, &errs) {
		return &Error{Fields: []FieldError{{Field: "", Message: err.Error()}}}
	}

	out := &Error{}
	for _, field := range order {
		if fe, ok := errs[field]; ok && fe != nil {
			out.Fields = append(out.Fields, FieldError{Field: field, Message: fieldMessage(fe)})
		}
	}
	return out
}

func fieldMessage(err error) string {
	var verr ozzo.Error
	if errors.As(err, &verr) {
		return verr.Message()
	}
	return err.Error()
}

// normalizeOptional maps blank optional strings to nil so storage keeps NULL.
func normalizeOptional(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
