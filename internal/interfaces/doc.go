// Package interfaces documents the core abstractions used throughout the application.
//
// # Interface Categories
//
// ## Data Access Interfaces
//
//   - AuthorStore, BookStore: persistence of the catalog (internal/catalog/stores.go)
//   - Catalog: what controllers call on the gateway (internal/http/stores.go)
//
// ## View Invalidation
//
//   - Invalidator: told which view keys a mutation made stale (internal/catalog/stores.go)
//   - Subscriber: reacts to one invalidated key (internal/views/notifier.go)
//
// Keys are "/authors", "/authors/{id}", "/books" and "/books/{id}".
//
// ## Caches
//
//   - pagecache.Store: rendered page storage, in memory or Redis (internal/pagecache/store.go)
//   - ImageCache: local copies of remote covers (internal/http/stores.go)
//
// ## Background Work
//
//   - CoverWarmer: queues image downloads after a save (internal/http/stores.go)
//   - Enqueuer: adds tasks to the backlite queue (internal/scheduler/cover_prune.go)
//
// # Adding a New Invalidation Subscriber
//
// To react to catalog changes (e.g., purge a CDN):
//
//  1. Implement views.Subscriber
//
//     type CDNPurger struct {
//     client *http.Client
//     }
//
//     func (p *CDNPurger) ViewInvalidated(ctx context.Context, key string) error
//
//     var _ views.Subscriber = (*CDNPurger)(nil)
//
//  2. Subscribe it to the notifier in entrypoint.go
//
//     notifier.Subscribe("cdn", purger)
//
// A subscriber error is logged and never reaches the caller of the mutation.
//
// # Compile-Time Interface Checks
//
// All implementations should include compile-time checks to ensure they satisfy
// their interfaces. This catches missing methods at compile time rather than runtime:
//
//	var _ SomeInterface = (*MyImplementation)(nil)
//
// This pattern is used throughout the codebase. See checks.go for examples.
package interfaces
