package tasks

import "context"

type authorExister interface {
	AuthorExists(ctx context.Context, id string) (bool, error)
}

type bookExister interface {
	BookExists(ctx context.Context, id string) (bool, error)
}

// Owners joins the author and book stores into an OwnerChecker.
type Owners struct {
	Authors authorExister
	Books   bookExister
}

func (o Owners) AuthorExists(ctx context.Context, id string) (bool, error) {
	return o.Authors.AuthorExists(ctx, id)
}

func (o Owners) BookExists(ctx context.Context, id string) (bool, error) {
	return o.Books.BookExists(ctx, id)
}
