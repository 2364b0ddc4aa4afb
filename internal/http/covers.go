package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/mrlokans/bookshelf/internal/covers"
)

// CoversController serves locally cached book covers and author images.
type CoversController struct {
	cache   ImageCache
	catalog Catalog
}

// NewCoversController creates a new CoversController.
func NewCoversController(cache ImageCache, catalog Catalog) *CoversController {
	return &CoversController{
		cache:   cache,
		catalog: catalog,
	}
}

// BookCover serves a cached book cover image.
// GET /covers/books/:id
func (cc *CoversController) BookCover(c *gin.Context) {
	book, err := cc.catalog.GetBook(c.Request.Context(), c.Param("id"))
	if err != nil || book.CoverImage == nil {
		c.Status(http.StatusNotFound)
		return
	}
	cc.serve(c, covers.KindBook, book.ID, *book.CoverImage)
}

// AuthorImage serves a cached author image.
// GET /covers/authors/:id
func (cc *CoversController) AuthorImage(c *gin.Context) {
	author, err := cc.catalog.GetAuthor(c.Request.Context(), c.Param("id"))
	if err != nil || author.ImageURL == nil {
		c.Status(http.StatusNotFound)
		return
	}
	cc.serve(c, covers.KindAuthor, author.ID, *author.ImageURL)
}

func (cc *CoversController) serve(c *gin.Context, kind, id, url string) {
	path, err := cc.cache.Get(c.Request.Context(), kind, id, url)
	if err != nil || path == "" {
		log.Debug().Err(err).Str("kind", kind).Str("id", id).Msg("serving remote image")
		// Fallback: redirect to original URL
		c.Redirect(http.StatusTemporaryRedirect, url)
		return
	}

	c.Header("Cache-Control", "public, max-age=86400")
	c.File(path)
}
