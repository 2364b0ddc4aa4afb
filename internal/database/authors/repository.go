// Package authors provides database operations for author management.
//
// # Interface Implementation
//
//	var _ catalog.AuthorStore = (*Repository)(nil)
//
// # Usage
//
//	repo := authors.NewRepository(db)
//	author, err := repo.GetAuthor(ctx, id)
package authors

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/mrlokans/bookshelf/internal/entities"
)

// Repository handles all author database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new authors repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ListAuthors returns every author, newest first, with only the IDs of their books loaded.
func (r *Repository) ListAuthors(ctx context.Context) ([]entities.Author, error) {
	var authors []entities.Author
	err := r.db.WithContext(ctx).Preload("Books", func(db *gorm.DB) *gorm.DB {
		return db.Select("id", "author_id").Order("created_at DESC")
	}).Order("created_at DESC").Find(&authors).Error
	return authors, err
}

// GetAuthor retrieves an author with all of their books, newest first.
func (r *Repository) GetAuthor(ctx context.Context, id string) (*entities.Author, error) {
	var author entities.Author
	err := r.db.WithContext(ctx).Preload("Books", func(db *gorm.DB) *gorm.DB {
		return db.Order("created_at DESC")
	}).Where("id = ?", id).First(&author).Error
	if err != nil {
		return nil, err
	}
	return &author, nil
}

// AuthorExists reports whether an author with the given ID is stored.
func (r *Repository) AuthorExists(ctx context.Context, id string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entities.Author{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

// CountAuthors returns the number of stored authors.
func (r *Repository) CountAuthors(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entities.Author{}).Count(&count).Error
	return count, err
}

// CreateAuthor inserts a new author; the ID and creation time are assigned on insert.
func (r *Repository) CreateAuthor(ctx context.Context, author *entities.Author) error {
	return r.db.WithContext(ctx).Omit("Books").Create(author).Error
}

// UpdateAuthor overwrites the mutable fields of an existing author.
// Returns gorm.ErrRecordNotFound if no row matched.
func (r *Repository) UpdateAuthor(ctx context.Context, author *entities.Author) error {
	result := r.db.WithContext(ctx).Model(&entities.Author{ID: author.ID}).
		Select("Name", "Bio", "ImageURL").
		Updates(author)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeleteAuthor removes an author that owns no books.
// Returns entities.ErrAuthorHasBooks when books still reference the author and
// gorm.ErrRecordNotFound when the author does not exist.
func (r *Repository) DeleteAuthor(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var books int64
		if err := tx.Model(&entities.Book{}).Where("author_id = ?", id).Count(&books).Error; err != nil {
			return fmt.Errorf("count books: %w", err)
		}
		if books > 0 {
			return entities.ErrAuthorHasBooks
		}

		result := tx.Where("id = ?", id).Delete(&entities.Author{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
