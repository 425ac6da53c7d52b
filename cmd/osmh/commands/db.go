package commands

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/osmworks/osmh/config"
	"github.com/osmworks/osmh/errors"
	"github.com/osmworks/osmh/snapshot"
)

// DbCmd represents the db (database) command
var DbCmd = &cobra.Command{
	Use:   "db",
	Short: "Manage the OSMH snapshot database",
	Long: `db — Manage OSMH database operations

Manage the snapshot database, including statistics and saved run listings.

Examples:
  osmh db stats                   # Show database statistics
  osmh db stats --limit 10        # Show the last 10 saved runs`,
}

var dbStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show snapshot database statistics",
	Long:  "Display object counts and the most recently saved snapshot runs",
	RunE:  runDbStats,
}

var statsLimitFlag int

func init() {
	DbCmd.AddCommand(dbStatsCmd)
	dbStatsCmd.Flags().IntVar(&statsLimitFlag, "limit", 20, "Number of recent runs to show")
}

func runDbStats(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	database, err := openDatabase("")
	if err != nil {
		return errors.Wrap(err, "failed to open database")
	}
	defer database.Close()

	var totalRuns, totalObjects int
	err = database.QueryRow(`SELECT COUNT(*) FROM snapshot_runs`).Scan(&totalRuns)
	if err != nil && err != sql.ErrNoRows {
		return fmt.Errorf("failed to query run count: %w", err)
	}
	err = database.QueryRow(`SELECT COUNT(*) FROM snapshot_objects`).Scan(&totalObjects)
	if err != nil && err != sql.ErrNoRows {
		return fmt.Errorf("failed to query object count: %w", err)
	}

	fmt.Printf("Database Statistics\n")
	fmt.Printf("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━\n\n")
	fmt.Printf("Database Path: %s\n", cfg.Database.Path)
	fmt.Printf("Saved Runs:    %d\n", totalRuns)
	fmt.Printf("Total Objects: %d\n", totalObjects)
	fmt.Println()

	store := snapshot.NewStore(database, nil)
	runs, err := store.ListRuns(context.Background())
	if err != nil {
		return fmt.Errorf("failed to list runs: %w", err)
	}

	fmt.Printf("Recent Runs (last %d):\n", statsLimitFlag)
	fmt.Printf("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━\n")

	if len(runs) == 0 {
		fmt.Println("  No snapshot runs saved yet")
		return nil
	}

	if len(runs) > statsLimitFlag {
		runs = runs[:statsLimitFlag]
	}
	for _, run := range runs {
		counts, err := store.CountByType(context.Background(), run.ID)
		if err != nil {
			return fmt.Errorf("failed to count objects for run %s: %w", run.ID, err)
		}
		fmt.Printf("  [%s] %s: %d objects (nodes=%d ways=%d relations=%d, source=%s)\n",
			run.ExtractedAt, run.ID, run.ObjectCount,
			counts["node"], counts["way"], counts["relation"],
			run.Source,
		)
	}

	return nil
}
