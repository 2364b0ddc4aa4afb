package catalog

import (
	"context"
	"time"

	"github.com/mrlokans/bookshelf/internal/entities"
	"github.com/mrlokans/bookshelf/internal/validation"
	"github.com/mrlokans/bookshelf/internal/views"
)

// ListBooks returns all books, newest first, with the author's ID and name.
func (s *Service) ListBooks(ctx context.Context) (_ []entities.Book, err error) {
	const op = "list_books"
	defer s.observe(op, time.Now(), &err)

	books, err := s.books.ListBooks(ctx)
	if err != nil {
		return nil, storageError(op, msgFetchBooks, err)
	}
	return books, nil
}

// ListPublishedBooks returns published books, most recently published first.
func (s *Service) ListPublishedBooks(ctx context.Context) (_ []entities.Book, err error) {
	const op = "list_published_books"
	defer s.observe(op, time.Now(), &err)

	books, err := s.books.ListPublishedBooks(ctx)
	if err != nil {
		return nil, storageError(op, msgFetchPublished, err)
	}
	return books, nil
}

// GetBook returns one book with its full author.
func (s *Service) GetBook(ctx context.Context, id string) (_ *entities.Book, err error) {
	const op = "get_book"
	defer s.observe(op, time.Now(), &err)

	book, err := s.books.GetBook(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, notFoundError(op, msgBookNotFound)
		}
		return nil, storageError(op, msgFetchBook, err)
	}
	return book, nil
}

// CreateBook stores a new book. A published book gets PublishedAt set to now.
func (s *Service) CreateBook(ctx context.Context, input validation.BookInput) (_ *entities.Book, err error) {
	const op = "create_book"
	defer s.observe(op, time.Now(), &err)

	input, verr := validation.ValidateBook(input)
	if verr != nil {
		return nil, validationError(op, verr)
	}
	if cerr := s.checkAuthor(ctx, op, input.AuthorID, msgCreateBook); cerr != nil {
		return nil, cerr
	}

	book := &entities.Book{
		Title:       input.Title,
		Description: input.Description,
		CoverImage:  input.CoverImage,
		Published:   input.Published,
		AuthorID:    input.AuthorID,
	}
	if book.Published {
		now := s.now()
		book.PublishedAt = &now
	}

	if err := s.books.CreateBook(ctx, book); err != nil {
		return nil, storageError(op, msgCreateBook, err)
	}

	s.notifier.Invalidate(ctx, views.BooksKey)

	created, err := s.books.GetBook(ctx, book.ID)
	if err != nil {
		return nil, storageError(op, msgCreateBook, err)
	}
	return created, nil
}

// UpdateBook overwrites every mutable field of a book.
//
// PublishedAt is set to now on an unpublished to published transition, kept
// when the book stays published and left as stored when it is unpublished.
func (s *Service) UpdateBook(ctx context.Context, id string, input validation.BookInput) (_ *entities.Book, err error) {
	const op = "update_book"
	defer s.observe(op, time.Now(), &err)

	input, verr := validation.ValidateBook(input)
	if verr != nil {
		return nil, validationError(op, verr)
	}

	current, err := s.books.GetBook(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, notFoundError(op, msgBookNotFound)
		}
		return nil, storageError(op, msgUpdateBook, err)
	}
	if cerr := s.checkAuthor(ctx, op, input.AuthorID, msgUpdateBook); cerr != nil {
		return nil, cerr
	}

	book := &entities.Book{
		ID:          id,
		Title:       input.Title,
		Description: input.Description,
		CoverImage:  input.CoverImage,
		Published:   input.Published,
		PublishedAt: s.nextPublishedAt(current, input.Published),
		AuthorID:    input.AuthorID,
		UpdatedAt:   s.now(),
	}
	if err := s.books.UpdateBook(ctx, book); err != nil {
		if isNotFound(err) {
			return nil, notFoundError(op, msgBookNotFound)
		}
		return nil, storageError(op, msgUpdateBook, err)
	}

	s.notifier.Invalidate(ctx, views.BooksKey, views.BookKey(id))

	updated, err := s.books.GetBook(ctx, id)
	if err != nil {
		return nil, storageError(op, msgUpdateBook, err)
	}
	return updated, nil
}

func (s *Service) DeleteBook(ctx context.Context, id string) (err error) {
	const op = "delete_book"
	defer s.observe(op, time.Now(), &err)

	if err := s.books.DeleteBook(ctx, id); err != nil {
		if isNotFound(err) {
			return notFoundError(op, msgBookNotFound)
		}
		return storageError(op, msgDeleteBook, err)
	}

	s.notifier.Invalidate(ctx, views.BooksKey)
	return nil
}

func (s *Service) nextPublishedAt(current *entities.Book, published bool) *time.Time {
	switch {
	case published && current.Published && current.PublishedAt != nil:
		return current.PublishedAt
	case published:
		now := s.now()
		return &now
	default:
		// unpublishing keeps the previous publish date
		return current.PublishedAt
	}
}

func (s *Service) checkAuthor(ctx context.Context, op, authorID, storageMessage string) *Error {
	exists, err := s.authors.AuthorExists(ctx, authorID)
	if err != nil {
		return storageError(op, storageMessage, err)
	}
	if !exists {
		return unknownAuthorError(op)
	}
	return nil
}
