// Package seed fills an empty catalog with public domain authors and books.
package seed

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/mrlokans/bookshelf/internal/entities"
	"github.com/mrlokans/bookshelf/internal/validation"
)

// Catalog is the part of catalog.Service the seeder writes through.
type Catalog interface {
	CreateAuthor(ctx context.Context, input validation.AuthorInput) (*entities.Author, error)
	CreateBook(ctx context.Context, input validation.BookInput) (*entities.Book, error)
}

// AuthorSeed is one demo author with their books.
type AuthorSeed struct {
	Name  string
	Bio   string
	Books []BookSeed
}

// BookSeed is one demo book.
type BookSeed struct {
	Title       string
	Description string
	Published   bool
}

// Result counts what Run created.
type Result struct {
	Authors int
	Books   int
}

// Run creates every author in seeds, then their books.
// It stops at the first failure; entities created before it are kept.
func Run(ctx context.Context, c Catalog, seeds []AuthorSeed) (Result, error) {
	var res Result
	for _, s := range seeds {
		author, err := c.CreateAuthor(ctx, validation.AuthorInput{Name: s.Name, Bio: optional(s.Bio)})
		if err != nil {
			return res, fmt.Errorf("create author %q: %w", s.Name, err)
		}
		res.Authors++

		for _, b := range s.Books {
			_, err := c.CreateBook(ctx, validation.BookInput{
				Title:       b.Title,
				Description: optional(b.Description),
				Published:   b.Published,
				AuthorID:    author.ID,
			})
			if err != nil {
				return res, fmt.Errorf("create book %q: %w", b.Title, err)
			}
			res.Books++
		}
		log.Info().Str("author", s.Name).Int("books", len(s.Books)).Msg("seeded author")
	}
	return res, nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// Demo is the bundled public domain catalog.
func Demo() []AuthorSeed {
	return []AuthorSeed{
		{
			Name: "Marcus Aurelius",
			Bio:  "Roman emperor from 161 to 180 and Stoic philosopher.",
			Books: []BookSeed{
				{
					Title:       "Meditations",
					Description: "Private notes on Stoic philosophy written during military campaigns.",
					Published:   true,
				},
			},
		},
		{
			Name: "Jane Austen",
			Bio:  "English novelist known for her commentary on the British landed gentry.",
			Books: []BookSeed{
				{
					Title:       "Pride and Prejudice",
					Description: "Elizabeth Bennet navigates manners, upbringing and marriage.",
					Published:   true,
				},
				{
					Title:       "Sense and Sensibility",
					Description: "The Dashwood sisters come of age after their father's death.",
					Published:   true,
				},
				{
					Title:       "Sanditon",
					Description: "An unfinished novel about a seaside resort.",
				},
			},
		},
		{
			Name: "Mary Shelley",
			Bio:  "English novelist, author of the first science fiction novel.",
			Books: []BookSeed{
				{
					Title:       "Frankenstein",
					Description: "Victor Frankenstein creates a sapient creature in an unorthodox experiment.",
					Published:   true,
				},
			},
		},
		{
			Name: "Henry David Thoreau",
			Bio:  "American naturalist, essayist and philosopher.",
			Books: []BookSeed{
				{
					Title:       "Walden",
					Description: "Reflections on simple living in natural surroundings.",
					Published:   true,
				},
				{
					Title:       "Civil Disobedience",
					Description: "An essay arguing that individuals should not let governments overrule their consciences.",
				},
			},
		},
	}
}
