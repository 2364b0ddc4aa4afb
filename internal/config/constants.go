package config

// Default paths
const (
	// DefaultDatabasePath is the default path for the catalog database
	DefaultDatabasePath = "./bookshelf.db"

	// DefaultCoversDir is where downloaded covers and portraits are kept
	DefaultCoversDir = "./covers"
)
