// Package database provides the data access layer for the catalog.
//
// # Architecture
//
//	database/
//	├── database.go   # Connection setup and migrations
//	├── authors/      # Author CRUD operations
//	└── books/        # Book CRUD operations
//
// # Using Sub-packages
//
//	db, err := database.NewDatabase("./bookshelf.db")
//
//	authorsRepo := authors.NewRepository(db.DB)
//	booksRepo := books.NewRepository(db.DB)
//
//	svc := catalog.NewService(authorsRepo, booksRepo, notifier)
//
// # Interface Implementations
//
//   - authors.Repository: implements catalog.AuthorStore
//   - books.Repository: implements catalog.BookStore
//
// Repositories return gorm.ErrRecordNotFound (possibly wrapped) for missing
// rows and entities.ErrAuthorHasBooks when an author delete is refused.
package database
