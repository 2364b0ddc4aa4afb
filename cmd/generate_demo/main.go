// Command generate_demo creates a fresh demo database filled with public domain authors and books.
// Usage: go run cmd/generate_demo/main.go [-db path/to/demo.db]
package main

import (
	"context"
	"flag"
	"os"

	"github.com/rs/zerolog/log"

	"github.com/mrlokans/bookshelf/internal/catalog"
	"github.com/mrlokans/bookshelf/internal/database"
	"github.com/mrlokans/bookshelf/internal/database/authors"
	"github.com/mrlokans/bookshelf/internal/database/books"
	"github.com/mrlokans/bookshelf/internal/logging"
	"github.com/mrlokans/bookshelf/internal/seed"
)

const defaultDemoDatabasePath = "./demo/demo.db"

func main() {
	dbPath := flag.String("db", defaultDemoDatabasePath, "path to the demo database file")
	flag.Parse()

	logging.Init("info", "console")
	log.Info().Str("path", *dbPath).Msg("generating demo database")

	// Delete existing demo database to start fresh
	if err := os.Remove(*dbPath); err != nil && !os.IsNotExist(err) {
		log.Fatal().Err(err).Msg("failed to remove existing demo database")
	}

	db, err := database.NewDatabase(*dbPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create database")
	}
	defer db.Close()

	svc := catalog.NewService(authors.NewRepository(db.DB), books.NewRepository(db.DB), nil)
	res, err := seed.Run(context.Background(), svc, seed.Demo())
	if err != nil {
		log.Fatal().Err(err).Msg("failed to seed demo database")
	}

	log.Info().Int("authors", res.Authors).Int("books", res.Books).Msg("demo database generated successfully")
}
