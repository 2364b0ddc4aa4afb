// Package cli defines the bookshelf command line.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/mrlokans/bookshelf/internal/config"
	"github.com/mrlokans/bookshelf/internal/logging"
)

// BuildInfo is stamped at build time via ldflags.
type BuildInfo struct {
	Version string
	Commit  string
}

// NewRootCommand builds the command tree. Running it without a subcommand serves HTTP.
func NewRootCommand(info BuildInfo) *cobra.Command {
	var envFile string
	var cfg *config.Config

	root := &cobra.Command{
		Use:           "bookshelf",
		Short:         "A small catalog of authors and books",
		Version:       info.Version + " (" + info.Commit + ")",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if envFile != "" {
				cfg = config.Load(envFile)
			} else {
				cfg = config.Load()
			}
			logging.Init(cfg.Log.Level, string(cfg.Log.Format))
		},
	}
	root.PersistentFlags().StringVar(&envFile, "env-file", "", "load environment variables from this file (default .env)")

	loaded := func() *config.Config { return cfg }

	serve := newServeCommand(loaded, info)
	root.RunE = serve.RunE
	root.AddCommand(
		serve,
		newMigrateCommand(loaded),
		newSeedCommand(loaded),
	)
	return root
}
