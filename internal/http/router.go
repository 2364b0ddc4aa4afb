package http

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookshelf/internal/views"
	"github.com/mrlokans/bookshelf/web"
)

// NewRouter creates and configures the HTTP router with all endpoints.
// Uses RouterConfig to receive all dependencies.
func NewRouter(cfg RouterConfig) (*gin.Engine, error) {
	router := gin.New()
	router.Use(RequestLogger())
	router.Use(gin.Recovery())
	router.Use(SecurityHeadersMiddleware())

	// CSRF must run before session so that session context is preserved
	if len(cfg.CSRFSecret) > 0 {
		router.Use(CSRFMiddleware(cfg.CSRFSecret, cfg.SecureCookies))
	}

	var flashes FlashStore
	if cfg.Sessions != nil {
		router.Use(cfg.Sessions.LoadSave())
		flashes = cfg.Sessions
	}

	if cfg.ReadOnly != nil {
		router.Use(cfg.ReadOnly.Handler())
	}

	router.Use(RequestTimeout(cfg.RequestTimeout))

	tmpl, err := loadTemplates(cfg.TemplatesPath, web.Templates, templateFuncs(cfg.Covers != nil))
	if err != nil {
		return nil, fmt.Errorf("failed to load templates: %w", err)
	}
	router.SetHTMLTemplate(tmpl)

	if cfg.StaticPath != "" {
		router.Static("/static", cfg.StaticPath)
	} else {
		router.StaticFS("/static", http.FS(web.Static))
	}

	health := NewHealthController(cfg.Version, healthChecks(cfg)...)
	authorsAPI := NewAuthorsController(cfg.Catalog, cfg.Warmer)
	booksAPI := NewBooksController(cfg.Catalog, cfg.Warmer)
	ui := NewUIController(cfg.Catalog, flashes, cfg.Warmer)

	// Health endpoints
	router.GET("/health", health.Status)
	router.GET("/ping", health.Ping)

	if cfg.Metrics != nil {
		router.GET("/metrics", gin.WrapH(cfg.Metrics.Handler()))
	}

	// Authors API endpoints
	router.GET("/api/authors", authorsAPI.List)
	router.GET("/api/authors/:id", authorsAPI.Get)
	router.POST("/api/authors", authorsAPI.Create)
	router.PUT("/api/authors/:id", authorsAPI.Update)
	router.DELETE("/api/authors/:id", authorsAPI.Delete)

	// Books API endpoints
	router.GET("/api/books", booksAPI.List)
	router.GET("/api/books/published", booksAPI.ListPublished)
	router.GET("/api/books/:id", booksAPI.Get)
	router.POST("/api/books", booksAPI.Create)
	router.PUT("/api/books/:id", booksAPI.Update)
	router.DELETE("/api/books/:id", booksAPI.Delete)
	router.GET("/api/stats", booksAPI.Stats)

	// List pages carry no forms, so they can be shared between visitors
	cached := func(h gin.HandlerFunc) []gin.HandlerFunc {
		if cfg.PageCache == nil {
			return []gin.HandlerFunc{h}
		}
		return []gin.HandlerFunc{cfg.PageCache.Middleware(views.AuthorsKey, views.BooksKey), h}
	}

	// UI routes
	router.GET("/", cached(ui.HomePage)...)
	router.GET("/dashboard", cached(ui.DashboardPage)...)

	router.GET("/authors", cached(ui.AuthorsPage)...)
	router.GET("/authors/new", ui.NewAuthorPage)
	router.GET("/authors/:id", ui.AuthorPage)
	router.GET("/authors/:id/edit", ui.EditAuthorPage)
	router.POST("/authors", ui.CreateAuthor)
	router.POST("/authors/:id", ui.UpdateAuthor)
	router.POST("/authors/:id/delete", ui.DeleteAuthor)

	router.GET("/books", cached(ui.BooksPage)...)
	router.GET("/books/new", ui.NewBookPage)
	router.GET("/books/:id", ui.BookPage)
	router.GET("/books/:id/edit", ui.EditBookPage)
	router.POST("/books", ui.CreateBook)
	router.POST("/books/:id", ui.UpdateBook)
	router.POST("/books/:id/delete", ui.DeleteBook)

	// Cover endpoints
	if cfg.Covers != nil {
		coversController := NewCoversController(cfg.Covers, cfg.Catalog)
		router.GET("/covers/books/:id", coversController.BookCover)
		router.GET("/covers/authors/:id", coversController.AuthorImage)
	}

	router.NoRoute(ui.NotFound)

	return router, nil
}

func healthChecks(cfg RouterConfig) []HealthCheck {
	db := HealthCheck{Name: "database", Critical: true}
	if cfg.Database != nil {
		db.Target = cfg.Database
	}
	checks := []HealthCheck{db}
	if cfg.PageCache != nil {
		checks = append(checks, HealthCheck{Name: "page_cache", Target: cfg.PageCache})
	}
	return checks
}
