package commands

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/osmworks/osmh/config"
)

// ConfigCmd represents the config command
var ConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage OSMH configuration",
	Long: `config — Manage OSMH configuration

Configuration sources (in order of precedence):
1. Environment variables (OSMH_* prefix)
2. Project config (osmh.toml, found by walking up from the working directory)
3. User config (~/.osmh/osmh.toml)
4. Default values

Examples:
  osmh config show                  # Show current configuration
  osmh config show --format json    # Show configuration in JSON format
  osmh config init                  # Write the current config to ~/.osmh/osmh.toml`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	Long:  "Display the current OSMH configuration merged from all sources",
	RunE:  runConfigShow,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the current configuration to the user config file",
	Long: `Write the merged configuration to ~/.osmh/osmh.toml so it can be
edited. Existing files are preserved as rotating backups.`,
	RunE: runConfigInit,
}

var configFormat string

func init() {
	configShowCmd.Flags().StringVar(&configFormat, "format", "toml", "Output format: toml, json")

	ConfigCmd.AddCommand(configShowCmd)
	ConfigCmd.AddCommand(configInitCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	switch configFormat {
	case "json":
		data, err := json.MarshalIndent(cfg, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal config to JSON: %w", err)
		}
		fmt.Println(string(data))

	case "toml":
		data, err := toml.Marshal(cfg)
		if err != nil {
			return fmt.Errorf("failed to marshal config to TOML: %w", err)
		}
		fmt.Printf("# OSMH configuration\n%s", string(data))

	default:
		return fmt.Errorf("unsupported format: %s (supported: toml, json)", configFormat)
	}

	return nil
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	dir := config.UserConfigDir()
	if dir == "" {
		return fmt.Errorf("cannot determine user config directory")
	}
	path := filepath.Join(dir, "osmh.toml")

	if err := config.Save(cfg, path); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	pterm.Success.Printf("Configuration written to %s\n", path)
	return nil
}
