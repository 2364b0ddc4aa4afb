// Package catalog is the persistence gateway for authors and books.
//
// Every operation validates its input, performs a single store call, tells the
// view notifier which views went stale and returns either the entity or a
// *Error. Storage causes are logged here and replaced by a generic message so
// nothing internal reaches the caller.
package catalog

import (
	"errors"
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// Service implements the catalog operations on top of the injected stores.
type Service struct {
	authors  AuthorStore
	books    BookStore
	notifier Invalidator
	observer Observer
	now      func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithClock overrides the time source used for publishedAt.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// WithObserver reports every operation's outcome and latency to o.
func WithObserver(o Observer) Option {
	return func(s *Service) {
		s.observer = o
	}
}

// NewService creates a catalog service. A nil notifier disables invalidation.
func NewService(authors AuthorStore, books BookStore, notifier Invalidator, opts ...Option) *Service {
	if notifier == nil {
		notifier = nopInvalidator{}
	}
	s := &Service{
		authors:  authors,
		books:    books,
		notifier: notifier,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) observe(op string, start time.Time, err *error) {
	if s.observer == nil {
		return
	}
	outcome := "ok"
	if *err != nil {
		outcome = KindOf(*err).String()
	}
	s.observer.ObserveOperation(op, outcome, time.Since(start))
}

func storageError(op, message string, err error) *Error {
	log.Error().Err(err).Str("op", op).Msg(message)
	return &Error{Kind: KindStorage, Op: op, Message: message, Err: err}
}

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
