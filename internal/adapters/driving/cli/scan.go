package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/traitdex/internal/core/ports/driving"
)

var scanCmd = &cobra.Command{
	Use:   "scan [source-id]",
	Short: "Scan sources for registry fragments",
	Long: `Triggers fragment scanning from configured sources.
If a source ID is provided, only that source is scanned.
Otherwise, all sources are scanned.`,
	RunE: runScan,
}

func init() {
	rootCmd.AddCommand(scanCmd)
}

func runScan(cmd *cobra.Command, args []string) error {
	if scanOrchestrator == nil {
		return errors.New("scan service not configured")
	}

	ctx := context.Background()

	if len(args) > 0 {
		sourceID := args[0]
		cmd.Printf("Scanning source: %s...\n", sourceID)

		if err := scanWithProgress(ctx, cmd, scanOrchestrator, sourceID); err != nil {
			return fmt.Errorf("scan failed: %w", err)
		}

		cmd.Printf("Source %s scanned successfully.\n", sourceID)
	} else {
		cmd.Println("Scanning all sources...")

		if err := scanOrchestrator.ScanAll(ctx); err != nil {
			return fmt.Errorf("scan failed: %w", err)
		}

		cmd.Println("All sources scanned successfully.")
	}

	return nil
}

// scanWithProgress runs a scan while displaying progress updates.
func scanWithProgress(
	ctx context.Context,
	cmd *cobra.Command,
	scanOrch driving.ScanOrchestrator,
	sourceID string,
) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- scanOrch.Scan(ctx, sourceID)
	}()

	// Poll status every 500ms
	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()

	lastCount := 0
	for {
		select {
		case err := <-errCh:
			// Print final status (ignore status error - best effort)
			status, statusErr := scanOrch.Status(ctx, sourceID)
			if statusErr == nil && status != nil && status.FragmentsProcessed > 0 {
				cmd.Printf("\rProcessed %d fragments, %d records (%d errors)\n",
					status.FragmentsProcessed, status.RecordsIndexed, status.ErrorCount)
			}
			return err
		case <-ticker.C:
			// Check progress (ignore status error - best effort)
			status, statusErr := scanOrch.Status(ctx, sourceID)
			if statusErr == nil && status != nil && status.FragmentsProcessed > lastCount {
				cmd.Printf("\rProcessing... %d fragments", status.FragmentsProcessed)
				lastCount = status.FragmentsProcessed
			}
		}
	}
}
