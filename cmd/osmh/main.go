package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/osmworks/osmh/cmd/osmh/commands"
	"github.com/osmworks/osmh/config"
	"github.com/osmworks/osmh/logger"
)

var rootCmd = &cobra.Command{
	Use:   "osmh",
	Short: "OSMH - OpenStreetMap history toolkit",
	Long: `OSMH - Tools for working with full-history OpenStreetMap data.

OSMH reads OSM history files, reconstructs the validity interval of every
object version, and extracts point-in-time snapshots of the map.

Available commands:
  snapshot - Extract the visible objects at a point in time
  timeline - Show the version timeline of a single object
  db       - Manage the OSMH snapshot database
  config   - Manage OSMH configuration

Examples:
  osmh snapshot history.osm --at 2020-01-01T00:00:00Z   # Extract a snapshot
  osmh snapshot history.osm --at 2020-01-01T00:00:00Z --save
  osmh timeline history.osm --type node --id 17         # Version timeline
  osmh db stats                                         # Database statistics`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		verbosity, _ := cmd.Flags().GetCount("verbose")

		jsonOutput, _ := cmd.Flags().GetBool("json")
		if !cmd.Flags().Changed("json") {
			if cfg, err := config.Load(); err == nil {
				jsonOutput = cfg.Log.JSON
			}
		}

		if err := logger.Initialize(jsonOutput, verbosity); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().CountP("verbose", "v", "Increase output verbosity (repeat for more detail: -v, -vv, -vvv)")
	rootCmd.PersistentFlags().Bool("json", false, "Emit logs as machine-readable JSON")

	rootCmd.AddCommand(commands.SnapshotCmd)
	rootCmd.AddCommand(commands.TimelineCmd)
	rootCmd.AddCommand(commands.DbCmd)
	rootCmd.AddCommand(commands.ConfigCmd)
	rootCmd.AddCommand(commands.VersionCmd)
}

func main() {
	defer logger.Cleanup()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
