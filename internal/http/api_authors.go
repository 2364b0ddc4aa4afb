package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookshelf/internal/validation"
)

const msgInvalidBody = "Invalid request body"

// AuthorsController serves the authors JSON API.
type AuthorsController struct {
	catalog Catalog
	warmer  CoverWarmer
}

func NewAuthorsController(catalog Catalog, warmer CoverWarmer) *AuthorsController {
	if warmer == nil {
		warmer = nopWarmer{}
	}
	return &AuthorsController{catalog: catalog, warmer: warmer}
}

// List handles GET /api/authors
func (ac *AuthorsController) List(c *gin.Context) {
	authors, err := ac.catalog.ListAuthors(c.Request.Context())
	if err != nil {
		respondCatalogError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"authors": toAuthorSummaries(authors)})
}

// Get handles GET /api/authors/:id
func (ac *AuthorsController) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id", "Author not found")
	if !ok {
		return
	}

	author, err := ac.catalog.GetAuthor(c.Request.Context(), id)
	if err != nil {
		respondCatalogError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"author": toAuthorDetail(author)})
}

// Create handles POST /api/authors
func (ac *AuthorsController) Create(c *gin.Context) {
	var input validation.AuthorInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBadRequest(c, msgInvalidBody)
		return
	}

	author, err := ac.catalog.CreateAuthor(c.Request.Context(), input)
	if err != nil {
		respondCatalogError(c, err)
		return
	}
	ac.warmer.WarmAuthor(c.Request.Context(), author)
	respondCreated(c, gin.H{"author": toAuthorDetail(author)})
}

// Update handles PUT /api/authors/:id
func (ac *AuthorsController) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id", "Author not found")
	if !ok {
		return
	}

	var input validation.AuthorInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBadRequest(c, msgInvalidBody)
		return
	}

	author, err := ac.catalog.UpdateAuthor(c.Request.Context(), id, input)
	if err != nil {
		respondCatalogError(c, err)
		return
	}
	ac.warmer.WarmAuthor(c.Request.Context(), author)
	c.JSON(http.StatusOK, gin.H{"author": toAuthorDetail(author)})
}

// Delete handles DELETE /api/authors/:id
func (ac *AuthorsController) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id", "Author not found")
	if !ok {
		return
	}

	if err := ac.catalog.DeleteAuthor(c.Request.Context(), id); err != nil {
		respondCatalogError(c, err)
		return
	}
	respondSuccess(c)
}
