package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/mrlokans/bookshelf/internal/catalog"
	"github.com/mrlokans/bookshelf/internal/readonly"
	"github.com/mrlokans/bookshelf/internal/session"
)

const (
	featuredBooks = 4
	recentBooks   = 5
)

// UIController renders the HTML pages.
type UIController struct {
	catalog Catalog
	flashes FlashStore
	warmer  CoverWarmer
}

func NewUIController(catalog Catalog, flashes FlashStore, warmer CoverWarmer) *UIController {
	if warmer == nil {
		warmer = nopWarmer{}
	}
	return &UIController{catalog: catalog, flashes: flashes, warmer: warmer}
}

// render adds the data every layout needs and writes the named template.
func (ui *UIController) render(c *gin.Context, status int, name, title string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	data["Title"] = title
	data["CSRFField"] = csrfField(c)
	data["ReadOnly"] = readonly.IsReadOnly(c)
	if _, ok := data["Errors"]; !ok {
		data["Errors"] = map[string]string{}
	}
	if ui.flashes != nil {
		if flash := ui.flashes.PopFlash(c.Request.Context()); flash != nil {
			data["Flash"] = flash
		}
	}
	c.HTML(status, name, data)
}

func (ui *UIController) flash(c *gin.Context, kind, message string) {
	if ui.flashes != nil {
		ui.flashes.PutFlash(c.Request.Context(), kind, message)
	}
}

// redirect finishes a successful form post.
func (ui *UIController) redirect(c *gin.Context, location, message string) {
	ui.flash(c, session.FlashSuccess, message)
	c.Redirect(http.StatusSeeOther, location)
}

// renderError shows the not-found page or a generic error page for err.
func (ui *UIController) renderError(c *gin.Context, err error) {
	if catalog.KindOf(err) == catalog.KindNotFound {
		ui.render(c, http.StatusNotFound, "not_found", "Not Found", gin.H{"Message": err.Error()})
		return
	}
	if catalog.KindOf(err) == 0 {
		log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("page failed")
	}
	ui.render(c, statusForError(err), "error", "Error", gin.H{"Message": err.Error()})
}

// NotFound handles unknown routes.
func (ui *UIController) NotFound(c *gin.Context) {
	if wantsJSON(c) {
		respondNotFound(c, "Not found")
		return
	}
	ui.render(c, http.StatusNotFound, "not_found", "Not Found", gin.H{
		"Message": "The page you are looking for does not exist.",
	})
}

// HomePage handles GET /. Only published books are shown.
func (ui *UIController) HomePage(c *gin.Context) {
	books, err := ui.catalog.ListPublishedBooks(c.Request.Context())
	if err != nil {
		ui.renderError(c, err)
		return
	}

	featured := books
	if len(featured) > featuredBooks {
		featured = featured[:featuredBooks]
	}
	ui.render(c, http.StatusOK, "home", "Bookshelf", gin.H{
		"Featured": featured,
		"Books":    books,
	})
}

// DashboardPage handles GET /dashboard
func (ui *UIController) DashboardPage(c *gin.Context) {
	ctx := c.Request.Context()
	stats, err := ui.catalog.Stats(ctx)
	if err != nil {
		ui.renderError(c, err)
		return
	}
	books, err := ui.catalog.ListBooks(ctx)
	if err != nil {
		ui.renderError(c, err)
		return
	}
	if len(books) > recentBooks {
		books = books[:recentBooks]
	}

	ui.render(c, http.StatusOK, "dashboard", "Dashboard", gin.H{
		"Stats":       stats,
		"RecentBooks": books,
	})
}
