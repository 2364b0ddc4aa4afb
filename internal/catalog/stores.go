package catalog

import (
	"context"
	"time"

	"github.com/mrlokans/bookshelf/internal/entities"
)

// AuthorStore persists authors. Missing rows are reported as gorm.ErrRecordNotFound.
type AuthorStore interface {
	ListAuthors(ctx context.Context) ([]entities.Author, error)
	GetAuthor(ctx context.Context, id string) (*entities.Author, error)
	AuthorExists(ctx context.Context, id string) (bool, error)
	CountAuthors(ctx context.Context) (int64, error)
	CreateAuthor(ctx context.Context, author *entities.Author) error
	UpdateAuthor(ctx context.Context, author *entities.Author) error
	DeleteAuthor(ctx context.Context, id string) error
}

// BookStore persists books. Missing rows are reported as gorm.ErrRecordNotFound.
type BookStore interface {
	ListBooks(ctx context.Context) ([]entities.Book, error)
	ListPublishedBooks(ctx context.Context) ([]entities.Book, error)
	GetBook(ctx context.Context, id string) (*entities.Book, error)
	BookExists(ctx context.Context, id string) (bool, error)
	CountBooks(ctx context.Context) (total int64, published int64, err error)
	CreateBook(ctx context.Context, book *entities.Book) error
	UpdateBook(ctx context.Context, book *entities.Book) error
	DeleteBook(ctx context.Context, id string) error
}

// Invalidator is told which views a successful mutation made stale.
type Invalidator interface {
	Invalidate(ctx context.Context, keys ...string)
}

// Observer receives the outcome of every operation.
// outcome is "ok" or the Kind of the returned error.
type Observer interface {
	ObserveOperation(op, outcome string, elapsed time.Duration)
}

type nopInvalidator struct{}

func (nopInvalidator) Invalidate(context.Context, ...string) {}
