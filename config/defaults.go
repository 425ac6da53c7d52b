package config

import (
	"os"

	"github.com/spf13/viper"
)

// DefaultDirPermissions is used when creating the ~/.osmh directory
const DefaultDirPermissions = 0750

// SetDefaults configures default values for all configuration options
func SetDefaults(v *viper.Viper) {
	// Database defaults
	v.SetDefault("database.path", "osmh.db")

	// Logging defaults
	v.SetDefault("log.json", false)

	// Snapshot defaults
	v.SetDefault("snapshot.default_source", "")
	v.SetDefault("snapshot.progress_every", 100000)
}

// UserConfigDir returns the ~/.osmh directory, creating it if needed.
// Returns "" if the home directory cannot be determined.
func UserConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	dir := home + "/.osmh"
	os.MkdirAll(dir, DefaultDirPermissions)
	return dir
}
