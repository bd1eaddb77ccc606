package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/traitdex/internal/core/domain"
)

var watchCmd = &cobra.Command{
	Use:   "watch [source-id]",
	Short: "Watch a source and keep the index current",
	Long: `Follows a source until interrupted, re-decoding and re-indexing
fragments as they change. Filesystem sources are watched natively;
other sources fall back to periodic rescans.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	if watchService == nil {
		return errors.New("watch service not configured")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	sourceID := args[0]
	events, err := watchService.Watch(ctx, sourceID)
	if err != nil {
		return fmt.Errorf("watch failed: %w", err)
	}

	cmd.Printf("Watching source %s (Ctrl-C to stop)...\n", sourceID)

	for event := range events {
		if event.Err != nil {
			cmd.Printf("  error: %s: %v\n", event.URI, event.Err)
			continue
		}
		switch event.Type {
		case domain.ChangeDeleted:
			cmd.Printf("  removed %s\n", event.URI)
		default:
			cmd.Printf("  indexed %s (%d records)\n", event.URI, event.Records)
		}
	}

	cmd.Println("Watch stopped.")
	return nil
}
