// Package config loads and persists OSMH configuration. Configuration is
// merged from, in increasing precedence: built-in defaults, the user
// config (~/.osmh/osmh.toml), a project config (osmh.toml found by
// walking up from the working directory), and OSMH_* environment
// variables.
package config

// Config represents the OSMH configuration
type Config struct {
	Database DatabaseConfig `mapstructure:"database"`
	Log      LogConfig      `mapstructure:"log"`
	Snapshot SnapshotConfig `mapstructure:"snapshot"`
}

// DatabaseConfig configures the SQLite database snapshots are saved to
type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

// LogConfig configures logging output
type LogConfig struct {
	JSON bool `mapstructure:"json"` // machine-readable JSON instead of console output
}

// SnapshotConfig configures snapshot extraction
type SnapshotConfig struct {
	// DefaultSource labels runs saved without an explicit source name.
	DefaultSource string `mapstructure:"default_source"`
	// ProgressEvery is how many objects to process between progress
	// updates in long-running commands. 0 disables progress output.
	ProgressEvery int `mapstructure:"progress_every"`
}
