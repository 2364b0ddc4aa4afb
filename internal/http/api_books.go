package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookshelf/internal/validation"
)

// BooksController serves the books and statistics JSON API.
type BooksController struct {
	catalog Catalog
	warmer  CoverWarmer
}

func NewBooksController(catalog Catalog, warmer CoverWarmer) *BooksController {
	if warmer == nil {
		warmer = nopWarmer{}
	}
	return &BooksController{catalog: catalog, warmer: warmer}
}

// List handles GET /api/books
func (bc *BooksController) List(c *gin.Context) {
	books, err := bc.catalog.ListBooks(c.Request.Context())
	if err != nil {
		respondCatalogError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"books": toBookListItems(books)})
}

// ListPublished handles GET /api/books/published
func (bc *BooksController) ListPublished(c *gin.Context) {
	books, err := bc.catalog.ListPublishedBooks(c.Request.Context())
	if err != nil {
		respondCatalogError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"books": toBookListItems(books)})
}

// Get handles GET /api/books/:id
func (bc *BooksController) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id", "Book not found")
	if !ok {
		return
	}

	book, err := bc.catalog.GetBook(c.Request.Context(), id)
	if err != nil {
		respondCatalogError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"book": toBookDetail(book)})
}

// Create handles POST /api/books
func (bc *BooksController) Create(c *gin.Context) {
	var input validation.BookInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBadRequest(c, msgInvalidBody)
		return
	}

	book, err := bc.catalog.CreateBook(c.Request.Context(), input)
	if err != nil {
		respondCatalogError(c, err)
		return
	}
	bc.warmer.WarmBook(c.Request.Context(), book)
	respondCreated(c, gin.H{"book": toBookDetail(book)})
}

// Update handles PUT /api/books/:id
func (bc *BooksController) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id", "Book not found")
	if !ok {
		return
	}

	var input validation.BookInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBadRequest(c, msgInvalidBody)
		return
	}

	book, err := bc.catalog.UpdateBook(c.Request.Context(), id, input)
	if err != nil {
		respondCatalogError(c, err)
		return
	}
	bc.warmer.WarmBook(c.Request.Context(), book)
	c.JSON(http.StatusOK, gin.H{"book": toBookDetail(book)})
}

// Delete handles DELETE /api/books/:id
func (bc *BooksController) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id", "Book not found")
	if !ok {
		return
	}

	if err := bc.catalog.DeleteBook(c.Request.Context(), id); err != nil {
		respondCatalogError(c, err)
		return
	}
	respondSuccess(c)
}

// Stats handles GET /api/stats
func (bc *BooksController) Stats(c *gin.Context) {
	stats, err := bc.catalog.Stats(c.Request.Context())
	if err != nil {
		respondCatalogError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"stats": stats})
}
