package http

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookshelf/internal/entities"
	"github.com/mrlokans/bookshelf/internal/validation"
)

// AuthorForm holds the raw values of the author form for re-rendering.
type AuthorForm struct {
	Name     string
	Bio      string
	ImageURL string
}

// BookForm holds the raw values of the book form for re-rendering.
type BookForm struct {
	Title       string
	Description string
	CoverImage  string
	Published   bool
	AuthorID    string
}

func parseAuthorForm(c *gin.Context) AuthorForm {
	return AuthorForm{
		Name:     c.PostForm("name"),
		Bio:      c.PostForm("bio"),
		ImageURL: c.PostForm("imageUrl"),
	}
}

func (f AuthorForm) Input() validation.AuthorInput {
	return validation.AuthorInput{
		Name:     f.Name,
		Bio:      optional(f.Bio),
		ImageURL: optional(f.ImageURL),
	}
}

func authorFormFrom(a *entities.Author) AuthorForm {
	return AuthorForm{
		Name:     a.Name,
		Bio:      deref(a.Bio),
		ImageURL: deref(a.ImageURL),
	}
}

func parseBookForm(c *gin.Context) BookForm {
	return BookForm{
		Title:       c.PostForm("title"),
		Description: c.PostForm("description"),
		CoverImage:  c.PostForm("coverImage"),
		Published:   checkbox(c.PostForm("published")),
		AuthorID:    c.PostForm("authorId"),
	}
}

func (f BookForm) Input() validation.BookInput {
	return validation.BookInput{
		Title:       f.Title,
		Description: optional(f.Description),
		CoverImage:  optional(f.CoverImage),
		Published:   f.Published,
		AuthorID:    f.AuthorID,
	}
}

func bookFormFrom(b *entities.Book) BookForm {
	return BookForm{
		Title:       b.Title,
		Description: deref(b.Description),
		CoverImage:  deref(b.CoverImage),
		Published:   b.Published,
		AuthorID:    b.AuthorID,
	}
}

// optional passes blank values through; the validator maps them to nil.
func optional(s string) *string {
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func checkbox(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "on", "true", "1", "yes":
		return true
	}
	return false
}
