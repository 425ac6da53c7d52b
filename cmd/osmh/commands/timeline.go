package commands

import (
	"fmt"
	"os"
	"strconv"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/osmworks/osmh/history"
	"github.com/osmworks/osmh/osm"
	"github.com/osmworks/osmh/snapshot"
)

// TimelineCmd shows the version timeline of one object
var TimelineCmd = &cobra.Command{
	Use:   "timeline <history-file>",
	Short: "Show the version timeline of a single object",
	Long: `Show every version of one object and the half-open time interval
during which it was the object's current state. The final interval of a
live object is open-ended.

Examples:
  osmh timeline history.osm --type node --id 17
  osmh timeline history.osm --type way --id 42`,
	Args: cobra.ExactArgs(1),
	RunE: runTimeline,
}

var (
	timelineTypeFlag string
	timelineIDFlag   int64
)

func init() {
	TimelineCmd.Flags().StringVar(&timelineTypeFlag, "type", "", "Object type: node, way or relation (required)")
	TimelineCmd.Flags().Int64Var(&timelineIDFlag, "id", 0, "Object ID (required)")
	TimelineCmd.MarkFlagRequired("type")
	TimelineCmd.MarkFlagRequired("id")
}

func runTimeline(cmd *cobra.Command, args []string) error {
	typ, err := osm.ParseObjectType(timelineTypeFlag)
	if err != nil {
		return fmt.Errorf("invalid --type value %q: %w", timelineTypeFlag, err)
	}

	file, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("failed to open history file: %w", err)
	}
	defer file.Close()

	chain, err := snapshot.CollectChain(history.NewReader(file), typ, osm.ObjectID(timelineIDFlag))
	if err != nil {
		return fmt.Errorf("failed to collect versions of %s %d: %w", typ, timelineIDFlag, err)
	}

	intervals, err := snapshot.Timeline(chain)
	if err != nil {
		return fmt.Errorf("failed to compute timeline: %w", err)
	}

	pterm.Info.Printf("Timeline for %s %d (%d versions)\n", typ, timelineIDFlag, len(intervals))
	pterm.Println()

	data := pterm.TableData{{"Version", "Changeset", "Valid from", "Valid until", "State"}}
	for _, iv := range intervals {
		state := "visible"
		if !iv.Visible {
			state = "deleted"
		}
		if iv.Degenerate() {
			state += " (zero-width)"
		}
		data = append(data, []string{
			strconv.FormatUint(uint64(iv.Version), 10),
			strconv.FormatInt(iv.Changeset, 10),
			iv.Start.String(),
			iv.End.String(),
			state,
		})
	}

	return pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}
