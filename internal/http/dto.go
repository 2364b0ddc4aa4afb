package http

import (
	"time"

	"github.com/mrlokans/bookshelf/internal/entities"
)

// IDRef is a bare reference to another entity.
type IDRef struct {
	ID string `json:"id"`
}

// AuthorRef is the author shape embedded in book listings.
type AuthorRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// AuthorSummary is an author as listed: books are references only.
type AuthorSummary struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Bio       *string   `json:"bio"`
	ImageURL  *string   `json:"imageUrl"`
	CreatedAt time.Time `json:"createdAt"`
	Books     []IDRef   `json:"books"`
}

// AuthorDetail is a single author with its books inlined.
type AuthorDetail struct {
	ID        string        `json:"id"`
	Name      string        `json:"name"`
	Bio       *string       `json:"bio"`
	ImageURL  *string       `json:"imageUrl"`
	CreatedAt time.Time     `json:"createdAt"`
	Books     []BookSummary `json:"books"`
}

// BookSummary is a book without its author.
type BookSummary struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description *string    `json:"description"`
	CoverImage  *string    `json:"coverImage"`
	Published   bool       `json:"published"`
	PublishedAt *time.Time `json:"publishedAt"`
	AuthorID    string     `json:"authorId"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// BookListItem is a book as listed: the author is id and name only.
type BookListItem struct {
	BookSummary
	Author *AuthorRef `json:"author"`
}

// BookDetail is a single book with its full author.
type BookDetail struct {
	BookSummary
	Author *AuthorProfile `json:"author"`
}

// AuthorProfile is the author embedded in a book detail.
type AuthorProfile struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Bio       *string   `json:"bio"`
	ImageURL  *string   `json:"imageUrl"`
	CreatedAt time.Time `json:"createdAt"`
}

func toAuthorSummary(a entities.Author) AuthorSummary {
	books := make([]IDRef, 0, len(a.Books))
	for _, id := range a.BookIDs() {
		books = append(books, IDRef{ID: id})
	}
	return AuthorSummary{
		ID:        a.ID,
		Name:      a.Name,
		Bio:       a.Bio,
		ImageURL:  a.ImageURL,
		CreatedAt: a.CreatedAt,
		Books:     books,
	}
}

func toAuthorSummaries(authors []entities.Author) []AuthorSummary {
	out := make([]AuthorSummary, 0, len(authors))
	for _, a := range authors {
		out = append(out, toAuthorSummary(a))
	}
	return out
}

func toAuthorDetail(a *entities.Author) AuthorDetail {
	books := make([]BookSummary, 0, len(a.Books))
	for _, b := range a.Books {
		books = append(books, toBookSummary(b))
	}
	return AuthorDetail{
		ID:        a.ID,
		Name:      a.Name,
		Bio:       a.Bio,
		ImageURL:  a.ImageURL,
		CreatedAt: a.CreatedAt,
		Books:     books,
	}
}

func toBookSummary(b entities.Book) BookSummary {
	return BookSummary{
		ID:          b.ID,
		Title:       b.Title,
		Description: b.Description,
		CoverImage:  b.CoverImage,
		Published:   b.Published,
		PublishedAt: b.PublishedAt,
		AuthorID:    b.AuthorID,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
}

func toBookListItems(books []entities.Book) []BookListItem {
	out := make([]BookListItem, 0, len(books))
	for _, b := range books {
		item := BookListItem{BookSummary: toBookSummary(b)}
		if b.Author != nil {
			item.Author = &AuthorRef{ID: b.Author.ID, Name: b.Author.Name}
		}
		out = append(out, item)
	}
	return out
}

func toBookDetail(b *entities.Book) BookDetail {
	detail := BookDetail{BookSummary: toBookSummary(*b)}
	if b.Author != nil {
		detail.Author = &AuthorProfile{
			ID:        b.Author.ID,
			Name:      b.Author.Name,
			Bio:       b.Author.Bio,
			ImageURL:  b.Author.ImageURL,
			CreatedAt: b.Author.CreatedAt,
		}
	}
	return detail
}
