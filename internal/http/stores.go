package http

import (
	"context"

	"github.com/mrlokans/bookshelf/internal/catalog"
	"github.com/mrlokans/bookshelf/internal/entities"
	"github.com/mrlokans/bookshelf/internal/session"
	"github.com/mrlokans/bookshelf/internal/validation"
)

// Catalog is the subset of catalog.Service the controllers call.
type Catalog interface {
	ListAuthors(ctx context.Context) ([]entities.Author, error)
	GetAuthor(ctx context.Context, id string) (*entities.Author, error)
	CreateAuthor(ctx context.Context, input validation.AuthorInput) (*entities.Author, error)
	UpdateAuthor(ctx context.Context, id string, input validation.AuthorInput) (*entities.Author, error)
	DeleteAuthor(ctx context.Context, id string) error

	ListBooks(ctx context.Context) ([]entities.Book, error)
	ListPublishedBooks(ctx context.Context) ([]entities.Book, error)
	GetBook(ctx context.Context, id string) (*entities.Book, error)
	CreateBook(ctx context.Context, input validation.BookInput) (*entities.Book, error)
	UpdateBook(ctx context.Context, id string, input validation.BookInput) (*entities.Book, error)
	DeleteBook(ctx context.Context, id string) error

	Stats(ctx context.Context) (catalog.Stats, error)
}

// CoverWarmer pre-fetches images after a successful save. Failures are its own concern.
type CoverWarmer interface {
	WarmAuthor(ctx context.Context, author *entities.Author)
	WarmBook(ctx context.Context, book *entities.Book)
}

// ImageCache resolves a remote image to a local file path.
type ImageCache interface {
	Get(ctx context.Context, kind, id, imageURL string) (string, error)
}

// FlashStore carries post/redirect/get messages between requests.
type FlashStore interface {
	PutFlash(ctx context.Context, kind, message string)
	PopFlash(ctx context.Context) *session.Flash
}

type nopWarmer struct{}

func (nopWarmer) WarmAuthor(context.Context, *entities.Author) {}
func (nopWarmer) WarmBook(context.Context, *entities.Book)     {}
