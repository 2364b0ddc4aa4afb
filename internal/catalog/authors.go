package catalog

import (
	"context"
	"errors"
	"time"

	"github.com/mrlokans/bookshelf/internal/entities"
	"github.com/mrlokans/bookshelf/internal/validation"
	"github.com/mrlokans/bookshelf/internal/views"
)

// ListAuthors returns all authors, newest first. Books carry their IDs only.
func (s *Service) ListAuthors(ctx context.Context) (_ []entities.Author, err error) {
	const op = "list_authors"
	defer s.observe(op, time.Now(), &err)

	authors, err := s.authors.ListAuthors(ctx)
	if err != nil {
		return nil, storageError(op, msgFetchAuthors, err)
	}
	return authors, nil
}

// GetAuthor returns one author with their books.
func (s *Service) GetAuthor(ctx context.Context, id string) (_ *entities.Author, err error) {
	const op = "get_author"
	defer s.observe(op, time.Now(), &err)

	author, err := s.authors.GetAuthor(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, notFoundError(op, msgAuthorNotFound)
		}
		return nil, storageError(op, msgFetchAuthor, err)
	}
	return author, nil
}

func (s *Service) CreateAuthor(ctx context.Context, input validation.AuthorInput) (_ *entities.Author, err error) {
	const op = "create_author"
	defer s.observe(op, time.Now(), &err)

	input, verr := validation.ValidateAuthor(input)
	if verr != nil {
		return nil, validationError(op, verr)
	}

	author := &entities.Author{
		Name:     input.Name,
		Bio:      input.Bio,
		ImageURL: input.ImageURL,
	}
	if err := s.authors.CreateAuthor(ctx, author); err != nil {
		return nil, storageError(op, msgCreateAuthor, err)
	}

	s.notifier.Invalidate(ctx, views.AuthorsKey)
	return author, nil
}

// UpdateAuthor overwrites name, bio and image. ID and CreatedAt never change.
func (s *Service) UpdateAuthor(ctx context.Context, id string, input validation.AuthorInput) (_ *entities.Author, err error) {
	const op = "update_author"
	defer s.observe(op, time.Now(), &err)

	input, verr := validation.ValidateAuthor(input)
	if verr != nil {
		return nil, validationError(op, verr)
	}

	author := &entities.Author{
		ID:       id,
		Name:     input.Name,
		Bio:      input.Bio,
		ImageURL: input.ImageURL,
	}
	if err := s.authors.UpdateAuthor(ctx, author); err != nil {
		if isNotFound(err) {
			return nil, notFoundError(op, msgAuthorNotFound)
		}
		return nil, storageError(op, msgUpdateAuthor, err)
	}

	s.notifier.Invalidate(ctx, views.AuthorsKey, views.AuthorKey(id))

	updated, err := s.authors.GetAuthor(ctx, id)
	if err != nil {
		return nil, storageError(op, msgUpdateAuthor, err)
	}
	return updated, nil
}

// DeleteAuthor removes an author that owns no books.
// Authors with books are rejected with KindConflict.
func (s *Service) DeleteAuthor(ctx context.Context, id string) (err error) {
	const op = "delete_author"
	defer s.observe(op, time.Now(), &err)

	if err := s.authors.DeleteAuthor(ctx, id); err != nil {
		switch {
		case isNotFound(err):
			return notFoundError(op, msgAuthorNotFound)
		case errors.Is(err, entities.ErrAuthorHasBooks):
			return &Error{Kind: KindConflict, Op: op, Message: msgAuthorHasBooks, Err: err}
		default:
			return storageError(op, msgDeleteAuthor, err)
		}
	}

	s.notifier.Invalidate(ctx, views.AuthorsKey)
	return nil
}
