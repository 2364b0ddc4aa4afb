package http

import (
	"time"

	"github.com/mrlokans/bookshelf/internal/database"
	"github.com/mrlokans/bookshelf/internal/metrics"
	"github.com/mrlokans/bookshelf/internal/pagecache"
	"github.com/mrlokans/bookshelf/internal/readonly"
	"github.com/mrlokans/bookshelf/internal/session"
)

// RouterConfig contains all dependencies and configuration needed
// to create the HTTP router.
type RouterConfig struct {
	// Core dependencies
	Catalog  Catalog
	Database *database.Database

	// Sessions carry flash messages; nil disables them
	Sessions      *session.Manager
	CSRFSecret    []byte
	SecureCookies bool

	// Optional middleware
	ReadOnly  *readonly.Middleware
	PageCache *pagecache.Cache
	Metrics   *metrics.Recorder

	// Image caching
	Covers ImageCache
	Warmer CoverWarmer

	// UI assets. Empty paths fall back to the embedded files.
	TemplatesPath string
	StaticPath    string

	// Application info
	Version        string
	RequestTimeout time.Duration
}
