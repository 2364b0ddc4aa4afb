package cli

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand_Subcommands(t *testing.T) {
	root := NewRootCommand(BuildInfo{Version: "1.2.3", Commit: "abc"})

	var names []string
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	assert.Subset(t, names, []string{"serve", "migrate", "seed"})
	assert.Equal(t, "1.2.3 (abc)", root.Version)
}

func TestSeedCommand(t *testing.T) {
	t.Setenv("DATABASE_PATH", filepath.Join(t.TempDir(), "cli.db"))
	t.Setenv("LOG_LEVEL", "error")

	run := func(args ...string) error {
		root := NewRootCommand(BuildInfo{Version: "test"})
		root.SetArgs(args)
		return root.Execute()
	}

	require.NoError(t, run("migrate"))
	require.NoError(t, run("seed"))

	err := run("seed")
	assert.ErrorIs(t, err, ErrCatalogNotEmpty)

	assert.NoError(t, run("seed", "--force"))
}
