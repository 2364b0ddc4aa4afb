// Package books provides database operations for book management.
//
// # Interface Implementation
//
//	var _ catalog.BookStore = (*Repository)(nil)
//
// # Usage
//
//	repo := books.NewRepository(db)
//	book, err := repo.GetBook(ctx, id)
package books

import (
	"context"

	"gorm.io/gorm"

	"github.com/mrlokans/bookshelf/internal/entities"
)

// Repository handles all book database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new books repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func authorRef(db *gorm.DB) *gorm.DB {
	return db.Select("id", "name")
}

// ListBooks returns every book, newest first, with the author's ID and name.
func (r *Repository) ListBooks(ctx context.Context) ([]entities.Book, error) {
	var books []entities.Book
	err := r.db.WithContext(ctx).Preload("Author", authorRef).
		Order("created_at DESC").Find(&books).Error
	return books, err
}

// ListPublishedBooks returns published books ordered by publication time, latest first.
func (r *Repository) ListPublishedBooks(ctx context.Context) ([]entities.Book, error) {
	var books []entities.Book
	err := r.db.WithContext(ctx).Preload("Author", authorRef).
		Where("published = ?", true).
		Order("published_at DESC").Find(&books).Error
	return books, err
}

// GetBook retrieves a book with its full author record.
func (r *Repository) GetBook(ctx context.Context, id string) (*entities.Book, error) {
	var book entities.Book
	err := r.db.WithContext(ctx).Preload("Author").Where("id = ?", id).First(&book).Error
	if err != nil {
		return nil, err
	}
	return &book, nil
}

// BookExists reports whether a book with the given ID is stored.
func (r *Repository) BookExists(ctx context.Context, id string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entities.Book{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

// CountBooks returns the total number of books and how many of them are published.
func (r *Repository) CountBooks(ctx context.Context) (total int64, published int64, err error) {
	err = r.db.WithContext(ctx).Model(&entities.Book{}).Count(&total).Error
	if err != nil {
		return
	}
	err = r.db.WithContext(ctx).Model(&entities.Book{}).Where("published = ?", true).Count(&published).Error
	return
}

// CreateBook inserts a new book; the ID and timestamps are assigned on insert.
func (r *Repository) CreateBook(ctx context.Context, book *entities.Book) error {
	return r.db.WithContext(ctx).Omit("Author").Create(book).Error
}

// UpdateBook overwrites every mutable field of an existing book and bumps UpdatedAt.
// Returns gorm.ErrRecordNotFound if no row matched.
func (r *Repository) UpdateBook(ctx context.Context, book *entities.Book) error {
	result := r.db.WithContext(ctx).Model(&entities.Book{ID: book.ID}).
		Omit("Author").
		Select("Title", "Description", "CoverImage", "Published", "PublishedAt", "AuthorID", "UpdatedAt").
		Updates(book)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeleteBook removes a book. Returns gorm.ErrRecordNotFound if no row matched.
func (r *Repository) DeleteBook(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&entities.Book{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
