package tasks

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/mrlokans/bookshelf/internal/covers"
	"github.com/mrlokans/bookshelf/internal/entities"
)

// CoverWarmer queues image downloads for freshly saved authors and books.
// Queueing failures are logged; the image is then fetched on first view.
type CoverWarmer struct {
	client *Client
}

func NewCoverWarmer(client *Client) *CoverWarmer {
	return &CoverWarmer{client: client}
}

func (w *CoverWarmer) WarmAuthor(ctx context.Context, author *entities.Author) {
	if author == nil || author.ImageURL == nil {
		return
	}
	w.warm(ctx, WarmCoverTask{Kind: covers.KindAuthor, ID: author.ID, URL: *author.ImageURL})
}

func (w *CoverWarmer) WarmBook(ctx context.Context, book *entities.Book) {
	if book == nil || book.CoverImage == nil {
		return
	}
	w.warm(ctx, WarmCoverTask{Kind: covers.KindBook, ID: book.ID, URL: *book.CoverImage})
}

func (w *CoverWarmer) warm(ctx context.Context, task WarmCoverTask) {
	if w == nil || w.client == nil {
		return
	}
	if _, err := w.client.Enqueue(ctx, task); err != nil {
		log.Warn().Err(err).Str("kind", task.Kind).Str("id", task.ID).Msg("failed to queue image warm-up")
	}
}
