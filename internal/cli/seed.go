package cli

import (
	"errors"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/mrlokans/bookshelf/internal/catalog"
	"github.com/mrlokans/bookshelf/internal/config"
	"github.com/mrlokans/bookshelf/internal/database/authors"
	"github.com/mrlokans/bookshelf/internal/database/books"
	"github.com/mrlokans/bookshelf/internal/entrypoint"
	"github.com/mrlokans/bookshelf/internal/seed"
)

// ErrCatalogNotEmpty is returned when seeding a catalog that already has authors.
var ErrCatalogNotEmpty = errors.New("catalog already has authors, use --force to seed anyway")

func newSeedCommand(cfg func() *config.Config) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Populate the catalog with public domain demo data",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := entrypoint.OpenDatabase(cfg())
			if err != nil {
				return err
			}
			defer db.Close()

			svc := catalog.NewService(authors.NewRepository(db.DB), books.NewRepository(db.DB), nil)
			ctx := cmd.Context()

			stats, err := svc.Stats(ctx)
			if err != nil {
				return err
			}
			if stats.TotalAuthors > 0 && !force {
				return ErrCatalogNotEmpty
			}

			res, err := seed.Run(ctx, svc, seed.Demo())
			if err != nil {
				return err
			}
			log.Info().Int("authors", res.Authors).Int("books", res.Books).Msg("catalog seeded")
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "seed even when the catalog is not empty")
	return cmd
}
