package pagecache

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// HitCounter is told about every lookup.
type HitCounter interface {
	CacheHit()
	CacheMiss()
}

// Cache serves and captures rendered pages in front of gin handlers.
type Cache struct {
	store  Store
	ttl    time.Duration
	hits   HitCounter
	bypass func(*gin.Context) bool
}

// Option configures a Cache.
type Option func(*Cache)

// WithHitCounter reports hits and misses to h.
func WithHitCounter(h HitCounter) Option {
	return func(c *Cache) {
		c.hits = h
	}
}

// WithBypass skips the cache for requests where fn returns true,
// e.g. while a flash message is pending for the visitor.
func WithBypass(fn func(*gin.Context) bool) Option {
	return func(c *Cache) {
		c.bypass = fn
	}
}

func New(store Store, ttl time.Duration, opts ...Option) *Cache {
	c := &Cache{store: store, ttl: ttl}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ViewInvalidated drops every page tagged with key.
func (c *Cache) ViewInvalidated(ctx context.Context, key string) error {
	return c.store.InvalidateTag(ctx, key)
}

// Ping reports whether the backing store is reachable. Stores without a
// connection are always reachable.
func (c *Cache) Ping(ctx context.Context) error {
	if p, ok := c.store.(interface{ Ping(context.Context) error }); ok {
		return p.Ping(ctx)
	}
	return nil
}

// Middleware caches successful GET responses of the wrapped route under its
// request URI, tagged with tags.
func (c *Cache) Middleware(tags ...string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if ctx.Request.Method != http.MethodGet || (c.bypass != nil && c.bypass(ctx)) {
			ctx.Next()
			return
		}

		key := ctx.Request.URL.RequestURI()
		page, ok, err := c.store.Get(ctx.Request.Context(), key)
		if err != nil {
			log.Warn().Err(err).Str("key", key).Msg("page cache lookup failed")
		}
		if ok {
			c.count(true)
			ctx.Header("X-Cache", "HIT")
			ctx.Data(page.Status, page.ContentType, page.Body)
			ctx.Abort()
			return
		}
		c.count(false)

		generation, genErr := c.store.Generation(ctx.Request.Context(), tags)
		if genErr != nil {
			log.Warn().Err(genErr).Str("key", key).Msg("page cache generation lookup failed")
		}

		writer := &captureWriter{ResponseWriter: ctx.Writer}
		ctx.Writer = writer
		ctx.Header("X-Cache", "MISS")
		ctx.Next()

		if writer.Status() != http.StatusOK || ctx.IsAborted() || genErr != nil {
			return
		}
		captured := &Page{
			Status:      writer.Status(),
			ContentType: writer.Header().Get("Content-Type"),
			Body:        writer.body.Bytes(),
		}
		err = c.store.Set(ctx.Request.Context(), key, captured, tags, c.ttl, generation)
		switch {
		case errors.Is(err, ErrStale):
			log.Debug().Str("key", key).Msg("page invalidated while rendering, not cached")
		case err != nil:
			log.Warn().Err(err).Str("key", key).Msg("page cache store failed")
		}
	}
}

func (c *Cache) count(hit bool) {
	if c.hits == nil {
		return
	}
	if hit {
		c.hits.CacheHit()
	} else {
		c.hits.CacheMiss()
	}
}

type captureWriter struct {
	gin.ResponseWriter
	body bytes.Buffer
}

func (w *captureWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *captureWriter) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}
