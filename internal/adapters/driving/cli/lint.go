package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/traitdex/internal/core/domain"
	"github.com/custodia-labs/traitdex/internal/core/ports/driving"
)

var (
	lintCrates []string
	lintTrait  string
	lintJSON   bool
)

var lintCmd = &cobra.Command{
	Use:   "lint",
	Short: "Check indexed registries for invariant violations",
	Long: `Runs registry invariant checks against the index: duplicate
signatures, malformed trait paths, conflicting applicability markers
and orphaned records. Exits non-zero if any error-severity finding is
reported.`,
	RunE: runLint,
}

func init() {
	lintCmd.Flags().StringSliceVar(&lintCrates, "crate", nil, "restrict checking to specific crates")
	lintCmd.Flags().StringVar(&lintTrait, "trait", "", "restrict checking to one trait registry")
	lintCmd.Flags().BoolVar(&lintJSON, "json", false, "output the report as JSON")
	rootCmd.AddCommand(lintCmd)
}

func runLint(cmd *cobra.Command, _ []string) error {
	if lintService == nil {
		return errors.New("lint service not configured")
	}

	opts := driving.LintOptions{
		Crates:    lintCrates,
		TraitPath: lintTrait,
	}

	report, err := lintService.Lint(context.Background(), opts)
	if err != nil {
		return fmt.Errorf("lint failed: %w", err)
	}

	if lintJSON {
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal report: %w", err)
		}
		cmd.Println(string(data))
	} else {
		outputLintReport(cmd, report)
	}

	if report.HasErrors() {
		return errors.New("lint found errors")
	}
	return nil
}

func outputLintReport(cmd *cobra.Command, report *domain.Report) {
	if len(report.Findings) == 0 {
		cmd.Println("No findings. Index is clean.")
		return
	}

	for i := range report.Findings {
		f := &report.Findings[i]
		cmd.Printf("%s [%s] %s: %s\n", f.Severity, f.Rule, f.Crate, f.Message)
		if f.Signature != "" {
			cmd.Printf("  signature: %s\n", f.Signature)
		}
		if f.URI != "" {
			cmd.Printf("  fragment: %s\n", f.URI)
		}
	}

	counts := report.CountBySeverity()
	cmd.Println()
	cmd.Printf("%d error(s), %d warning(s), %d info\n",
		counts[domain.SeverityError],
		counts[domain.SeverityWarning],
		counts[domain.SeverityInfo])
}
