package books

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mrlokans/bookshelf/internal/database"
	"github.com/mrlokans/bookshelf/internal/entities"
)

func setupTestDB(t *testing.T) (*Repository, *entities.Author) {
	t.Helper()

	db, err := database.NewDatabase(filepath.Join(t.TempDir(), "books.db"), database.WithLogLevel(logger.Silent))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	bio := "bio"
	author := &entities.Author{Name: "Jane Doe", Bio: &bio}
	require.NoError(t, db.DB.Create(author).Error)

	return NewRepository(db.DB), author
}

func TestRepository_CreateAndGetBook(t *testing.T) {
	repo, author := setupTestDB(t)
	ctx := context.Background()

	desc := "A description"
	book := &entities.Book{Title: "Title A", Description: &desc, AuthorID: author.ID}
	require.NoError(t, repo.CreateBook(ctx, book))
	assert.NotEmpty(t, book.ID)

	got, err := repo.GetBook(ctx, book.ID)
	require.NoError(t, err)
	assert.Equal(t, "Title A", got.Title)
	assert.False(t, got.Published)
	assert.Nil(t, got.PublishedAt)
	require.NotNil(t, got.Author)
	assert.Equal(t, "Jane Doe", got.Author.Name)
	require.NotNil(t, got.Author.Bio, "full author record is loaded")
}

func TestRepository_CreateBook_UnknownAuthor(t *testing.T) {
	repo, _ := setupTestDB(t)

	err := repo.CreateBook(context.Background(), &entities.Book{Title: "Orphan", AuthorID: "missing"})
	assert.Error(t, err, "foreign key should reject unknown authors")
}

func TestRepository_GetBook_NotFound(t *testing.T) {
	repo, _ := setupTestDB(t)

	_, err := repo.GetBook(context.Background(), "missing")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRepository_ListBooks(t *testing.T) {
	repo, author := setupTestDB(t)
	ctx := context.Background()

	first := &entities.Book{Title: "First", AuthorID: author.ID, CreatedAt: time.Now().Add(-time.Minute)}
	second := &entities.Book{Title: "Second", AuthorID: author.ID}
	require.NoError(t, repo.CreateBook(ctx, first))
	require.NoError(t, repo.CreateBook(ctx, second))

	books, err := repo.ListBooks(ctx)
	require.NoError(t, err)
	require.Len(t, books, 2)

	assert.Equal(t, "Second", books[0].Title)
	assert.Equal(t, "First", books[1].Title)
	require.NotNil(t, books[0].Author)
	assert.Equal(t, author.ID, books[0].Author.ID)
	assert.Equal(t, "Jane Doe", books[0].Author.Name)
	assert.Nil(t, books[0].Author.Bio, "list only loads the author reference")
}

func TestRepository_ListPublishedBooks(t *testing.T) {
	repo, author := setupTestDB(t)
	ctx := context.Background()

	now := time.Now()
	earlier := now.Add(-48 * time.Hour)
	later := now.Add(-time.Hour)

	require.NoError(t, repo.CreateBook(ctx, &entities.Book{Title: "Draft", AuthorID: author.ID}))
	require.NoError(t, repo.CreateBook(ctx, &entities.Book{Title: "Early", AuthorID: author.ID, Published: true, PublishedAt: &earlier}))
	require.NoError(t, repo.CreateBook(ctx, &entities.Book{Title: "Late", AuthorID: author.ID, Published: true, PublishedAt: &later}))

	books, err := repo.ListPublishedBooks(ctx)
	require.NoError(t, err)
	require.Len(t, books, 2)
	assert.Equal(t, "Late", books[0].Title)
	assert.Equal(t, "Early", books[1].Title)
}

func TestRepository_UpdateBook(t *testing.T) {
	repo, author := setupTestDB(t)
	ctx := context.Background()

	book := &entities.Book{Title: "Before", AuthorID: author.ID}
	require.NoError(t, repo.CreateBook(ctx, book))

	publishedAt := time.Now()
	update := &entities.Book{
		ID:          book.ID,
		Title:       "After",
		Published:   true,
		PublishedAt: &publishedAt,
		AuthorID:    author.ID,
	}
	require.NoError(t, repo.UpdateBook(ctx, update))

	got, err := repo.GetBook(ctx, book.ID)
	require.NoError(t, err)
	assert.Equal(t, "After", got.Title)
	assert.True(t, got.Published)
	require.NotNil(t, got.PublishedAt)
	assert.WithinDuration(t, publishedAt, *got.PublishedAt, time.Millisecond)
	assert.True(t, book.CreatedAt.Equal(got.CreatedAt))
	assert.False(t, got.UpdatedAt.Before(book.UpdatedAt))
}

func TestRepository_UpdateBook_NotFound(t *testing.T) {
	repo, author := setupTestDB(t)

	err := repo.UpdateBook(context.Background(), &entities.Book{ID: "missing", Title: "x", AuthorID: author.ID})
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRepository_DeleteBook(t *testing.T) {
	repo, author := setupTestDB(t)
	ctx := context.Background()

	book := &entities.Book{Title: "Doomed", AuthorID: author.ID}
	require.NoError(t, repo.CreateBook(ctx, book))

	require.NoError(t, repo.DeleteBook(ctx, book.ID))

	exists, err := repo.BookExists(ctx, book.ID)
	require.NoError(t, err)
	assert.False(t, exists)

	assert.ErrorIs(t, repo.DeleteBook(ctx, book.ID), gorm.ErrRecordNotFound)
}

func TestRepository_CountBooks(t *testing.T) {
	repo, author := setupTestDB(t)
	ctx := context.Background()

	now := time.Now()
	require.NoError(t, repo.CreateBook(ctx, &entities.Book{Title: "A", AuthorID: author.ID}))
	require.NoError(t, repo.CreateBook(ctx, &entities.Book{Title: "B", AuthorID: author.ID, Published: true, PublishedAt: &now}))

	total, published, err := repo.CountBooks(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Equal(t, int64(1), published)
}
