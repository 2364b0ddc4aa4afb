package catalog

import (
	"context"
	"time"
)

// Stats summarises the catalog for the dashboard.
type Stats struct {
	TotalBooks       int64 `json:"totalBooks"`
	PublishedBooks   int64 `json:"publishedBooks"`
	UnpublishedBooks int64 `json:"unpublishedBooks"`
	TotalAuthors     int64 `json:"totalAuthors"`
}

func (s *Service) Stats(ctx context.Context) (_ Stats, err error) {
	const op = "stats"
	defer s.observe(op, time.Now(), &err)

	total, published, err := s.books.CountBooks(ctx)
	if err != nil {
		return Stats{}, storageError(op, msgFetchStats, err)
	}
	authors, err := s.authors.CountAuthors(ctx)
	if err != nil {
		return Stats{}, storageError(op, msgFetchStats, err)
	}

	return Stats{
		TotalBooks:       total,
		PublishedBooks:   published,
		UnpublishedBooks: total - published,
		TotalAuthors:     authors,
	}, nil
}
