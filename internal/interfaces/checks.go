package interfaces

// This file contains compile-time interface implementation checks.
// These ensure that concrete types satisfy their interfaces at compile time,
// catching missing methods before runtime.
//
// To verify all checks pass: go build ./internal/interfaces/...

import (
	"github.com/mrlokans/bookshelf/internal/catalog"
	"github.com/mrlokans/bookshelf/internal/covers"
	"github.com/mrlokans/bookshelf/internal/database/authors"
	"github.com/mrlokans/bookshelf/internal/database/books"
	"github.com/mrlokans/bookshelf/internal/http"
	"github.com/mrlokans/bookshelf/internal/metrics"
	"github.com/mrlokans/bookshelf/internal/pagecache"
	"github.com/mrlokans/bookshelf/internal/scheduler"
	"github.com/mrlokans/bookshelf/internal/seed"
	"github.com/mrlokans/bookshelf/internal/session"
	"github.com/mrlokans/bookshelf/internal/tasks"
	"github.com/mrlokans/bookshelf/internal/views"
)

// =============================================================================
// Data Access Layer
// =============================================================================

var _ catalog.AuthorStore = (*authors.Repository)(nil)
var _ catalog.BookStore = (*books.Repository)(nil)

// =============================================================================
// Persistence Gateway
// =============================================================================

var _ http.Catalog = (*catalog.Service)(nil)
var _ seed.Catalog = (*catalog.Service)(nil)
var _ catalog.Invalidator = (*views.Notifier)(nil)
var _ catalog.Observer = (*metrics.Recorder)(nil)

// =============================================================================
// View Invalidation Subscribers
// =============================================================================

var _ views.Subscriber = (*pagecache.Cache)(nil)
var _ views.Subscriber = (*covers.Cache)(nil)
var _ views.Subscriber = (*metrics.Recorder)(nil)

// =============================================================================
// Caches
// =============================================================================

var _ pagecache.Store = (*pagecache.MemoryStore)(nil)
var _ pagecache.Store = (*pagecache.RedisStore)(nil)
var _ pagecache.HitCounter = (*metrics.Recorder)(nil)
var _ http.ImageCache = (*covers.Cache)(nil)
var _ http.FlashStore = (*session.Manager)(nil)

// =============================================================================
// Background Tasks
// =============================================================================

var _ http.CoverWarmer = (*tasks.CoverWarmer)(nil)
var _ tasks.ImageFetcher = (*covers.Cache)(nil)
var _ tasks.CoverIndex = (*covers.Cache)(nil)
var _ tasks.OwnerChecker = tasks.Owners{}
var _ scheduler.Enqueuer = (*tasks.Client)(nil)
