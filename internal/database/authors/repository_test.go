package authors

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

func setupTestDB(t *testing.T) (*Repository, *gorm.DB) {
	t.Helper()

	db, err := database.NewDatabase(filepath.Join(t.TempDir(), "authors.db"), database.WithLogLevel(logger.Silent))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewRepository(db.DB), db.DB
}

func strPtr(s string) *string { return &s }

func TestRepository_CreateAuthor(t *testing.T) {
	repo, _ := setupTestDB(t)
	ctx := context.Background()

	author := &entities.Author{Name: "Jane Doe", Bio: strPtr("Writes things")}
	require.NoError(t, repo.CreateAuthor(ctx, author))

	assert.NotEmpty(t, author.ID)
	assert.False(t, author.CreatedAt.IsZero())

	got, err := repo.GetAuthor(ctx, author.ID)
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", got.Name)
	require.NotNil(t, got.Bio)
	assert.Equal(t, "Writes things", *got.Bio)
	assert.Nil(t, got.ImageURL)
}

func TestRepository_GetAuthor_NotFound(t *testing.T) {
	repo, _ := setupTestDB(t)

	_, err := repo.GetAuthor(context.Background(), "missing")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRepository_ListAuthors_NewestFirstWithBookIDs(t *testing.T) {
	repo, db := setupTestDB(t)
	ctx := context.Background()

	older := &entities.Author{Name: "Older", CreatedAt: time.Now().Add(-time.Hour)}
	newer := &entities.Author{Name: "Newer"}
	require.NoError(t, repo.CreateAuthor(ctx, older))
	require.NoError(t, repo.CreateAuthor(ctx, newer))

	book := &entities.Book{Title: "Owned", AuthorID: older.ID}
	require.NoError(t, db.Create(book).Error)

	authors, err := repo.ListAuthors(ctx)
	require.NoError(t, err)
	require.Len(t, authors, 2)

	assert.Equal(t, "Newer", authors[0].Name)
	assert.Equal(t, "Older", authors[1].Name)
	assert.Empty(t, authors[0].Books)
	assert.Equal(t, []string{book.ID}, authors[1].BookIDs())
}

func TestRepository_UpdateAuthor(t *testing.T) {
	repo, _ := setupTestDB(t)
	ctx := context.Background()

	author := &entities.Author{Name: "Before", Bio: strPtr("old bio")}
	require.NoError(t, repo.CreateAuthor(ctx, author))

	update := &entities.Author{ID: author.ID, Name: "After", ImageURL: strPtr("https://example.com/a.png")}
	require.NoError(t, repo.UpdateAuthor(ctx, update))

	got, err := repo.GetAuthor(ctx, author.ID)
	require.NoError(t, err)
	assert.Equal(t, "After", got.Name)
	assert.Nil(t, got.Bio, "bio should be cleared when omitted")
	require.NotNil(t, got.ImageURL)
	assert.Equal(t, "https://example.com/a.png", *got.ImageURL)
	assert.True(t, author.CreatedAt.Equal(got.CreatedAt), "creation time is immutable")
}

func TestRepository_UpdateAuthor_NotFound(t *testing.T) {
	repo, _ := setupTestDB(t)

	err := repo.UpdateAuthor(context.Background(), &entities.Author{ID: "missing", Name: "x"})
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRepository_DeleteAuthor(t *testing.T) {
	t.Run("deletes author without books", func(t *testing.T) {
		repo, _ := setupTestDB(t)
		ctx := context.Background()

		author := &entities.Author{Name: "Lonely"}
		require.NoError(t, repo.CreateAuthor(ctx, author))

		require.NoError(t, repo.DeleteAuthor(ctx, author.ID))

		exists, err := repo.AuthorExists(ctx, author.ID)
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("refuses author with books", func(t *testing.T) {
		repo, db := setupTestDB(t)
		ctx := context.Background()

		author := &entities.Author{Name: "Prolific"}
		require.NoError(t, repo.CreateAuthor(ctx, author))
		require.NoError(t, db.Create(&entities.Book{Title: "One", AuthorID: author.ID}).Error)

		err := repo.DeleteAuthor(ctx, author.ID)
		assert.ErrorIs(t, err, entities.ErrAuthorHasBooks)

		exists, err := repo.AuthorExists(ctx, author.ID)
		require.NoError(t, err)
		assert.True(t, exists)
	})

	t.Run("returns not found for missing author", func(t *testing.T) {
		repo, _ := setupTestDB(t)

		err := repo.DeleteAuthor(context.Background(), "missing")
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	})
}

func TestRepository_ForeignKeyRestrictsDelete(t *testing.T) {
	_, db := setupTestDB(t)

	author := &entities.Author{Name: "Guarded"}
	require.NoError(t, db.Create(author).Error)
	require.NoError(t, db.Create(&entities.Book{Title: "Child", AuthorID: author.ID}).Error)

	// Bypass the repository check to make sure the schema enforces the rule too.
	err := db.Where("id = ?", author.ID).Delete(&entities.Author{}).Error
	assert.Error(t, err)
}

func TestRepository_CountAuthors(t *testing.T) {
	repo, _ := setupTestDB(t)
	ctx := context.Background()

	for _, name := range []string{"A", "B", "C"} {
		require.NoError(t, repo.CreateAuthor(ctx, &entities.Author{Name: name}))
	}

	count, err := repo.CountAuthors(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
}
