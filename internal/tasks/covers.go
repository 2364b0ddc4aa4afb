package tasks

import (
	"context"
	"fmt"
	"time"

	"github.com/mikestefanello/backlite"
	"github.com/rs/zerolog/log"

	"github.com/mrlokans/bookshelf/internal/covers"
)

// ImageFetcher downloads and caches an owner's image.
type ImageFetcher interface {
	Get(ctx context.Context, kind, id, imageURL string) (string, error)
}

// WarmCoverTask fetches a book cover or author portrait into the local cache
// so the first page view does not wait on the remote host.
type WarmCoverTask struct {
	Kind string `json:"kind"`
	ID   string `json:"id"`
	URL  string `json:"url"`
}

// Config returns the queue configuration for cover warming tasks.
func (t WarmCoverTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        "warm_cover",
		MaxAttempts: 3,
		Backoff:     30 * time.Second,
		Timeout:     time.Minute,
		Retention: &backlite.Retention{
			Duration:   24 * time.Hour,
			OnlyFailed: false,
			Data:       &backlite.RetainData{OnlyFailed: true},
		},
	}
}

// WarmCoverProcessor creates a processor function for WarmCoverTask.
func WarmCoverProcessor(fetcher ImageFetcher) backlite.QueueProcessor[WarmCoverTask] {
	return func(ctx context.Context, task WarmCoverTask) error {
		if fetcher == nil {
			return fmt.Errorf("image cache not configured")
		}

		path, err := fetcher.Get(ctx, task.Kind, task.ID, task.URL)
		if err != nil {
			return fmt.Errorf("warm %s image %s: %w", task.Kind, task.ID, err)
		}

		log.Debug().Str("kind", task.Kind).Str("id", task.ID).Str("path", path).Msg("image cached")
		return nil
	}
}

// NewWarmCoverQueue creates a backlite queue for cover warming tasks.
func NewWarmCoverQueue(fetcher ImageFetcher) backlite.Queue {
	return backlite.NewQueue(WarmCoverProcessor(fetcher))
}

// CoverIndex lists and removes cached images.
type CoverIndex interface {
	Entries() ([]covers.Entry, error)
	Remove(e covers.Entry) error
}

// OwnerChecker reports whether the owner of a cached image still exists.
type OwnerChecker interface {
	AuthorExists(ctx context.Context, id string) (bool, error)
	BookExists(ctx context.Context, id string) (bool, error)
}

// PruneCoversTask removes cached images whose author or book was deleted.
type PruneCoversTask struct{}

// Config returns the queue configuration for cover pruning tasks.
func (t PruneCoversTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        "prune_covers",
		MaxAttempts: 1,
		Backoff:     time.Minute,
		Timeout:     5 * time.Minute,
		Retention: &backlite.Retention{
			Duration:   24 * time.Hour,
			OnlyFailed: false,
			Data:       &backlite.RetainData{OnlyFailed: true},
		},
	}
}

// PruneCoversProcessor creates a processor function for PruneCoversTask.
func PruneCoversProcessor(index CoverIndex, owners OwnerChecker) backlite.QueueProcessor[PruneCoversTask] {
	return func(ctx context.Context, task PruneCoversTask) error {
		removed, err := PruneCovers(ctx, index, owners)
		if err != nil {
			return err
		}
		log.Info().Int("removed", removed).Msg("pruned orphaned images")
		return nil
	}
}

// PruneCovers deletes every cached image without an owner and returns how many went.
func PruneCovers(ctx context.Context, index CoverIndex, owners OwnerChecker) (int, error) {
	if index == nil || owners == nil {
		return 0, fmt.Errorf("cover pruning not configured")
	}

	entries, err := index.Entries()
	if err != nil {
		return 0, fmt.Errorf("list cached images: %w", err)
	}

	removed := 0
	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return removed, err
		}

		var exists bool
		switch e.Kind {
		case covers.KindAuthor:
			exists, err = owners.AuthorExists(ctx, e.ID)
		case covers.KindBook:
			exists, err = owners.BookExists(ctx, e.ID)
		default:
			continue
		}
		if err != nil {
			return removed, fmt.Errorf("check owner of %s: %w", e.Path, err)
		}
		if exists {
			continue
		}

		if err := index.Remove(e); err != nil {
			return removed, fmt.Errorf("remove %s: %w", e.Path, err)
		}
		removed++
	}
	return removed, nil
}

// NewPruneCoversQueue creates a backlite queue for cover pruning tasks.
func NewPruneCoversQueue(index CoverIndex, owners OwnerChecker) backlite.Queue {
	return backlite.NewQueue(PruneCoversProcessor(index, owners))
}
