// Package pagecache keeps rendered HTML pages until a view they depend on is
// invalidated or their TTL runs out.
//
// Pages are stored under their request URI and tagged with the view keys they
// were rendered from. The Cache subscribes to the view notifier and drops every
// page tagged with an invalidated key.
package pagecache

import (
	"context"
	"errors"
	"time"
)

// ErrStale is returned by Store.Set when a tag was invalidated after the
// generation passed to it was read.
var ErrStale = errors.New("page cache: tag invalidated during render")

// Page is a captured response.
type Page struct {
	Status      int    `json:"status"`
	ContentType string `json:"contentType"`
	Body        []byte `json:"body"`
}

// Store is a tag-aware page store.
//
// Every InvalidateTag bumps the tag's generation. Generation returns the sum
// over tags, and Set stores the page only if that sum is unchanged.
type Store interface {
	Get(ctx context.Context, key string) (*Page, bool, error)
	Generation(ctx context.Context, tags []string) (int64, error)
	Set(ctx context.Context, key string, page *Page, tags []string, ttl time.Duration, generation int64) error
	InvalidateTag(ctx context.Context, tag string) error
}
