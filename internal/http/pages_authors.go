package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookshelf/internal/catalog"
	"github.com/mrlokans/bookshelf/internal/session"
)

// AuthorsPage handles GET /authors
func (ui *UIController) AuthorsPage(c *gin.Context) {
	authors, err := ui.catalog.ListAuthors(c.Request.Context())
	if err != nil {
		ui.renderError(c, err)
		return
	}
	ui.render(c, http.StatusOK, "authors", "Authors", gin.H{"Authors": authors})
}

// AuthorPage handles GET /authors/:id
func (ui *UIController) AuthorPage(c *gin.Context) {
	author, err := ui.catalog.GetAuthor(c.Request.Context(), c.Param("id"))
	if err != nil {
		ui.renderError(c, err)
		return
	}
	ui.render(c, http.StatusOK, "author", author.Name, gin.H{"Author": author})
}

// NewAuthorPage handles GET /authors/new
func (ui *UIController) NewAuthorPage(c *gin.Context) {
	ui.render(c, http.StatusOK, "author_form", "New Author", gin.H{
		"Form":   AuthorForm{},
		"Action": "/authors",
	})
}

// EditAuthorPage handles GET /authors/:id/edit
func (ui *UIController) EditAuthorPage(c *gin.Context) {
	author, err := ui.catalog.GetAuthor(c.Request.Context(), c.Param("id"))
	if err != nil {
		ui.renderError(c, err)
		return
	}
	ui.render(c, http.StatusOK, "author_form", "Edit Author", gin.H{
		"Form":   authorFormFrom(author),
		"Action": "/authors/" + author.ID,
		"Author": author,
	})
}

// CreateAuthor handles POST /authors
func (ui *UIController) CreateAuthor(c *gin.Context) {
	form := parseAuthorForm(c)
	author, err := ui.catalog.CreateAuthor(c.Request.Context(), form.Input())
	if err != nil {
		if catalog.KindOf(err) == catalog.KindValidation {
			ui.render(c, http.StatusBadRequest, "author_form", "New Author", gin.H{
				"Form":   form,
				"Action": "/authors",
				"Errors": formErrors(err),
			})
			return
		}
		ui.renderError(c, err)
		return
	}

	ui.warmer.WarmAuthor(c.Request.Context(), author)
	ui.redirect(c, "/authors/"+author.ID, "Author created successfully")
}

// UpdateAuthor handles POST /authors/:id
func (ui *UIController) UpdateAuthor(c *gin.Context) {
	id := c.Param("id")
	form := parseAuthorForm(c)
	author, err := ui.catalog.UpdateAuthor(c.Request.Context(), id, form.Input())
	if err != nil {
		if catalog.KindOf(err) == catalog.KindValidation {
			ui.render(c, http.StatusBadRequest, "author_form", "Edit Author", gin.H{
				"Form":   form,
				"Action": "/authors/" + id,
				"Errors": formErrors(err),
			})
			return
		}
		ui.renderError(c, err)
		return
	}

	ui.warmer.WarmAuthor(c.Request.Context(), author)
	ui.redirect(c, "/authors/"+author.ID, "Author updated successfully")
}

// DeleteAuthor handles POST /authors/:id/delete
func (ui *UIController) DeleteAuthor(c *gin.Context) {
	id := c.Param("id")
	if err := ui.catalog.DeleteAuthor(c.Request.Context(), id); err != nil {
		if catalog.KindOf(err) == catalog.KindConflict {
			ui.flash(c, session.FlashError, err.Error())
			c.Redirect(http.StatusSeeOther, "/authors/"+id)
			return
		}
		ui.renderError(c, err)
		return
	}
	ui.redirect(c, "/authors", "Author deleted successfully")
}

// formErrors maps field names to messages for the form templates.
func formErrors(err error) map[string]string {
	if cerr, ok := catalog.AsError(err); ok && len(cerr.Fields) > 0 {
		return fieldMessages(cerr)
	}
	return map[string]string{"": err.Error()}
}
