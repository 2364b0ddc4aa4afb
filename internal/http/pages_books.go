package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookshelf/internal/catalog"
)

// BooksPage handles GET /books
func (ui *UIController) BooksPage(c *gin.Context) {
	books, err := ui.catalog.ListBooks(c.Request.Context())
	if err != nil {
		ui.renderError(c, err)
		return
	}
	ui.render(c, http.StatusOK, "books", "Books", gin.H{"Books": books})
}

// BookPage handles GET /books/:id
func (ui *UIController) BookPage(c *gin.Context) {
	book, err := ui.catalog.GetBook(c.Request.Context(), c.Param("id"))
	if err != nil {
		ui.renderError(c, err)
		return
	}
	ui.render(c, http.StatusOK, "book", book.Title, gin.H{"Book": book})
}

// NewBookPage handles GET /books/new. ?authorId= preselects the author.
func (ui *UIController) NewBookPage(c *gin.Context) {
	ui.renderBookForm(c, http.StatusOK, "New Book", "/books",
		BookForm{AuthorID: c.Query("authorId")}, nil)
}

// EditBookPage handles GET /books/:id/edit
func (ui *UIController) EditBookPage(c *gin.Context) {
	book, err := ui.catalog.GetBook(c.Request.Context(), c.Param("id"))
	if err != nil {
		ui.renderError(c, err)
		return
	}
	ui.renderBookForm(c, http.StatusOK, "Edit Book", "/books/"+book.ID, bookFormFrom(book), nil)
}

// CreateBook handles POST /books
func (ui *UIController) CreateBook(c *gin.Context) {
	form := parseBookForm(c)
	book, err := ui.catalog.CreateBook(c.Request.Context(), form.Input())
	if err != nil {
		if catalog.KindOf(err) == catalog.KindValidation {
			ui.renderBookForm(c, http.StatusBadRequest, "New Book", "/books", form, formErrors(err))
			return
		}
		ui.renderError(c, err)
		return
	}

	ui.warmer.WarmBook(c.Request.Context(), book)
	ui.redirect(c, "/books/"+book.ID, "Book created successfully")
}

// UpdateBook handles POST /books/:id
func (ui *UIController) UpdateBook(c *gin.Context) {
	id := c.Param("id")
	form := parseBookForm(c)
	book, err := ui.catalog.UpdateBook(c.Request.Context(), id, form.Input())
	if err != nil {
		if catalog.KindOf(err) == catalog.KindValidation {
			ui.renderBookForm(c, http.StatusBadRequest, "Edit Book", "/books/"+id, form, formErrors(err))
			return
		}
		ui.renderError(c, err)
		return
	}

	ui.warmer.WarmBook(c.Request.Context(), book)
	ui.redirect(c, "/books/"+book.ID, "Book updated successfully")
}

// DeleteBook handles POST /books/:id/delete
func (ui *UIController) DeleteBook(c *gin.Context) {
	if err := ui.catalog.DeleteBook(c.Request.Context(), c.Param("id")); err != nil {
		ui.renderError(c, err)
		return
	}
	ui.redirect(c, "/books", "Book deleted successfully")
}

// renderBookForm renders the book form with the author choices.
func (ui *UIController) renderBookForm(c *gin.Context, status int, title, action string, form BookForm, errs map[string]string) {
	authors, err := ui.catalog.ListAuthors(c.Request.Context())
	if err != nil {
		ui.renderError(c, err)
		return
	}
	ui.render(c, status, "book_form", title, gin.H{
		"Form":    form,
		"Action":  action,
		"Authors": authors,
		"Errors":  errs,
	})
}
