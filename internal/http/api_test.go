package http

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/bookshelf/internal/entities"
	"github.com/mrlokans/bookshelf/internal/validation"
)

func TestAuthorsAPI(t *testing.T) {
	t.Run("creates and fetches an author", func(t *testing.T) {
		env := setupCatalog(t)
		router := env.router(t)

		w := doJSON(router, http.MethodPost, "/api/authors", map[string]any{
			"name": "  Jane Doe ",
			"bio":  "Writes things",
		})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		author := decode(t, w)["author"].(map[string]any)
		assert.Equal(t, "Jane Doe", author["name"])
		assert.Equal(t, "Writes things", author["bio"])
		assert.Nil(t, author["imageUrl"])

		w = doGet(router, "/api/authors/"+author["id"].(string))
		require.Equal(t, http.StatusOK, w.Code)
		fetched := decode(t, w)["author"].(map[string]any)
		assert.Equal(t, "Jane Doe", fetched["name"])
		assert.Empty(t, fetched["books"])
	})

	t.Run("rejects a blank name with field messages", func(t *testing.T) {
		env := setupCatalog(t)
		router := env.router(t)

		w := doJSON(router, http.MethodPost, "/api/authors", map[string]any{"name": "   "})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		body := decode(t, w)
		assert.Equal(t, "Name is required", body["error"])
		assert.Equal(t, "Name is required", body["fields"].(map[string]any)["name"])
	})

	t.Run("rejects malformed JSON", func(t *testing.T) {
		env := setupCatalog(t)
		router := env.router(t)

		w := doJSON(router, http.MethodPost, "/api/authors", "not an object")

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, msgInvalidBody, decode(t, w)["error"])
	})

	t.Run("returns 404 for unknown author", func(t *testing.T) {
		env := setupCatalog(t)
		router := env.router(t)

		w := doGet(router, "/api/authors/missing")
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "Author not found", decode(t, w)["error"])

		w = doJSON(router, http.MethodPut, "/api/authors/missing", map[string]any{"name": "X"})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("lists authors with book references", func(t *testing.T) {
		env := setupCatalog(t)
		router := env.router(t)
		ctx := context.Background()

		author, err := env.catalog.CreateAuthor(ctx, validation.AuthorInput{Name: "Jane Doe"})
		require.NoError(t, err)
		book, err := env.catalog.CreateBook(ctx, validation.BookInput{Title: "First", AuthorID: author.ID})
		require.NoError(t, err)

		w := doGet(router, "/api/authors")
		require.Equal(t, http.StatusOK, w.Code)
		authors := decode(t, w)["authors"].([]any)
		require.Len(t, authors, 1)
		refs := authors[0].(map[string]any)["books"].([]any)
		require.Len(t, refs, 1)
		assert.Equal(t, map[string]any{"id": book.ID}, refs[0])
	})

	t.Run("updates and deletes an author", func(t *testing.T) {
		env := setupCatalog(t)
		router := env.router(t)

		author, err := env.catalog.CreateAuthor(context.Background(), validation.AuthorInput{Name: "Jane"})
		require.NoError(t, err)

		w := doJSON(router, http.MethodPut, "/api/authors/"+author.ID, map[string]any{"name": "Jane Doe"})
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "Jane Doe", decode(t, w)["author"].(map[string]any)["name"])

		w = doJSON(router, http.MethodDelete, "/api/authors/"+author.ID, nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"success":true}`, w.Body.String())

		w = doGet(router, "/api/authors/"+author.ID)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("refuses to delete an author with books", func(t *testing.T) {
		env := setupCatalog(t)
		router := env.router(t)
		ctx := context.Background()

		author, err := env.catalog.CreateAuthor(ctx, validation.AuthorInput{Name: "Jane"})
		require.NoError(t, err)
		_, err = env.catalog.CreateBook(ctx, validation.BookInput{Title: "Kept", AuthorID: author.ID})
		require.NoError(t, err)

		w := doJSON(router, http.MethodDelete, "/api/authors/"+author.ID, nil)

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, "Cannot delete an author who still has books", decode(t, w)["error"])
	})
}

func TestBooksAPI(t *testing.T) {
	createAuthor := func(t *testing.T, env *testEnv) *entities.Author {
		t.Helper()
		author, err := env.catalog.CreateAuthor(context.Background(), validation.AuthorInput{Name: "Jane Doe"})
		require.NoError(t, err)
		return author
	}

	t.Run("creates a published book with publishedAt", func(t *testing.T) {
		env := setupCatalog(t)
		router := env.router(t)
		author := createAuthor(t, env)

		w := doJSON(router, http.MethodPost, "/api/books", map[string]any{
			"title":     "First",
			"published": true,
			"authorId":  author.ID,
		})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		book := decode(t, w)["book"].(map[string]any)
		assert.Equal(t, "First", book["title"])
		assert.Equal(t, true, book["published"])
		assert.NotNil(t, book["publishedAt"])
		assert.Equal(t, "Jane Doe", book["author"].(map[string]any)["name"])
	})

	t.Run("reports every missing field", func(t *testing.T) {
		env := setupCatalog(t)
		router := env.router(t)

		w := doJSON(router, http.MethodPost, "/api/books", map[string]any{"title": ""})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		body := decode(t, w)
		assert.Equal(t, "Title is required, Author is required", body["error"])
		fields := body["fields"].(map[string]any)
		assert.Equal(t, "Title is required", fields["title"])
		assert.Equal(t, "Author is required", fields["authorId"])
	})

	t.Run("rejects an unknown author", func(t *testing.T) {
		env := setupCatalog(t)
		router := env.router(t)

		w := doJSON(router, http.MethodPost, "/api/books", map[string]any{"title": "T", "authorId": "nobody"})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Author not found", decode(t, w)["fields"].(map[string]any)["authorId"])
	})

	t.Run("lists only published books on the published endpoint", func(t *testing.T) {
		env := setupCatalog(t)
		router := env.router(t)
		author := createAuthor(t, env)
		ctx := context.Background()

		_, err := env.catalog.CreateBook(ctx, validation.BookInput{Title: "Draft", AuthorID: author.ID})
		require.NoError(t, err)
		_, err = env.catalog.CreateBook(ctx, validation.BookInput{Title: "Out", Published: true, AuthorID: author.ID})
		require.NoError(t, err)

		w := doGet(router, "/api/books")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Len(t, decode(t, w)["books"].([]any), 2)

		w = doGet(router, "/api/books/published")
		require.Equal(t, http.StatusOK, w.Code)
		published := decode(t, w)["books"].([]any)
		require.Len(t, published, 1)
		item := published[0].(map[string]any)
		assert.Equal(t, "Out", item["title"])
		assert.Equal(t, map[string]any{"id": author.ID, "name": "Jane Doe"}, item["author"])
	})

	t.Run("updates, deletes and counts books", func(t *testing.T) {
		env := setupCatalog(t)
		router := env.router(t)
		author := createAuthor(t, env)

		book, err := env.catalog.CreateBook(context.Background(), validation.BookInput{Title: "Draft", AuthorID: author.ID})
		require.NoError(t, err)

		w := doJSON(router, http.MethodPut, "/api/books/"+book.ID, map[string]any{
			"title":       "Final",
			"description": "Done",
			"published":   true,
			"authorId":    author.ID,
		})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		updated := decode(t, w)["book"].(map[string]any)
		assert.Equal(t, "Final", updated["title"])
		assert.NotNil(t, updated["publishedAt"])

		w = doGet(router, "/api/stats")
		require.Equal(t, http.StatusOK, w.Code)
		stats := decode(t, w)["stats"].(map[string]any)
		assert.Equal(t, float64(1), stats["totalBooks"])
		assert.Equal(t, float64(1), stats["publishedBooks"])
		assert.Equal(t, float64(0), stats["unpublishedBooks"])
		assert.Equal(t, float64(1), stats["totalAuthors"])

		w = doJSON(router, http.MethodDelete, "/api/books/"+book.ID, nil)
		require.Equal(t, http.StatusOK, w.Code)

		w = doJSON(router, http.MethodDelete, "/api/books/"+book.ID, nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "Book not found", decode(t, w)["error"])
	})
}

type recordingWarmer struct {
	authors []string
	books   []string
}

func (w *recordingWarmer) WarmAuthor(_ context.Context, a *entities.Author) {
	w.authors = append(w.authors, a.ID)
}

func (w *recordingWarmer) WarmBook(_ context.Context, b *entities.Book) {
	w.books = append(w.books, b.ID)
}

func TestAPI_WarmsImagesAfterSave(t *testing.T) {
	env := setupCatalog(t)
	warmer := &recordingWarmer{}
	router := env.router(t, func(cfg *RouterConfig) { cfg.Warmer = warmer })

	w := doJSON(router, http.MethodPost, "/api/authors", map[string]any{"name": "Jane", "imageUrl": "https://example.com/j.jpg"})
	require.Equal(t, http.StatusCreated, w.Code)
	authorID := decode(t, w)["author"].(map[string]any)["id"].(string)

	w = doJSON(router, http.MethodPost, "/api/books", map[string]any{"title": "T", "authorId": authorID})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(router, http.MethodPost, "/api/books", map[string]any{"title": ""})
	require.Equal(t, http.StatusBadRequest, w.Code)

	assert.Equal(t, []string{authorID}, warmer.authors)
	assert.Len(t, warmer.books, 1)
}
