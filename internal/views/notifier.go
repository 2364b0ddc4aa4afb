// Package views tracks which rendered views a catalog mutation makes stale.
//
// The catalog emits view keys such as "/authors" or "/books/{id}" after every
// successful write. Anything that caches a rendering of those views
// subscribes to the Notifier and drops its copy. Delivery is synchronous and
// fire-and-forget: a failing or panicking subscriber is logged and skipped.
package views

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"
)

const (
	AuthorsKey = "/authors"
	BooksKey   = "/books"
)

// AuthorKey is the single-author view key.
func AuthorKey(id string) string {
	return AuthorsKey + "/" + id
}

// BookKey is the single-book view key.
func BookKey(id string) string {
	return BooksKey + "/" + id
}

// Family returns the collection a key belongs to ("authors", "books") or "other".
func Family(key string) string {
	switch {
	case key == AuthorsKey || strings.HasPrefix(key, AuthorsKey+"/"):
		return "authors"
	case key == BooksKey || strings.HasPrefix(key, BooksKey+"/"):
		return "books"
	default:
		return "other"
	}
}

// ParseEntityKey splits a single-entity key into its collection and ID.
// ok is false for collection keys and unknown keys.
func ParseEntityKey(key string) (family, id string, ok bool) {
	for _, prefix := range []string{AuthorsKey + "/", BooksKey + "/"} {
		if rest, found := strings.CutPrefix(key, prefix); found && rest != "" && !strings.Contains(rest, "/") {
			return strings.TrimPrefix(strings.TrimSuffix(prefix, "/"), "/"), rest, true
		}
	}
	return "", "", false
}

// Subscriber reacts to a stale view key.
type Subscriber interface {
	ViewInvalidated(ctx context.Context, key string) error
}

// SubscriberFunc adapts a plain function to Subscriber.
type SubscriberFunc func(ctx context.Context, key string) error

func (f SubscriberFunc) ViewInvalidated(ctx context.Context, key string) error {
	return f(ctx, key)
}

type namedSubscriber struct {
	name string
	sub  Subscriber
}

// Notifier fans invalidations out to its subscribers.
// The zero value is ready to use and has no subscribers.
type Notifier struct {
	mu          sync.RWMutex
	subscribers []namedSubscriber
}

func NewNotifier() *Notifier {
	return &Notifier{}
}

// Subscribe registers sub under name; name only appears in logs.
func (n *Notifier) Subscribe(name string, sub Subscriber) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.subscribers = append(n.subscribers, namedSubscriber{name: name, sub: sub})
}

// Invalidate delivers every key to every subscriber, in registration order.
func (n *Notifier) Invalidate(ctx context.Context, keys ...string) {
	n.mu.RLock()
	subs := make([]namedSubscriber, len(n.subscribers))
	copy(subs, n.subscribers)
	n.mu.RUnlock()

	for _, key := range keys {
		log.Debug().Str("key", key).Int("subscribers", len(subs)).Msg("view invalidated")
		for _, s := range subs {
			if err := deliver(ctx, s.sub, key); err != nil {
				log.Warn().Err(err).Str("subscriber", s.name).Str("key", key).Msg("view subscriber failed")
			}
		}
	}
}

func deliver(ctx context.Context, sub Subscriber, key string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return sub.ViewInvalidated(ctx, key)
}
