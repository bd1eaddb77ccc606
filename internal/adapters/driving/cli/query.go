package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/traitdex/internal/core/domain"
)

var (
	queryLimit         int
	queryOffset        int
	queryCrates        []string
	queryTrait         string
	queryApplicability string
	querySynthetic     bool
	queryJSON          bool
)

var queryCmd = &cobra.Command{
	Use:   "query [pattern]",
	Short: "Query indexed implementor records",
	Long: `Looks up implementor records in the index. The pattern is
substring-matched against type paths and signature text; omit it to
list everything (subject to the result limit).`,
	Args: cobra.MaximumNArgs(1),
	RunE: runQuery,
}

func init() {
	queryCmd.Flags().IntVarP(&queryLimit, "limit", "n", 0, "maximum number of results (0 = configured default)")
	queryCmd.Flags().IntVar(&queryOffset, "offset", 0, "number of results to skip")
	queryCmd.Flags().StringSliceVar(&queryCrates, "crate", nil, "restrict to specific crates")
	queryCmd.Flags().StringVar(&queryTrait, "trait", "", "restrict to one trait registry (e.g. core::marker::Send)")
	queryCmd.Flags().StringVar(&queryApplicability, "applicability", "", "filter by applicability (always, never, conditional)")
	queryCmd.Flags().BoolVar(&querySynthetic, "synthetic", true, "include compiler-generated impls")
	queryCmd.Flags().BoolVar(&queryJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(queryCmd)
}

func runQuery(cmd *cobra.Command, args []string) error {
	if queryService == nil {
		return errors.New("query service not configured")
	}

	pattern := ""
	if len(args) > 0 {
		pattern = args[0]
	}

	applicability, err := parseApplicability(queryApplicability)
	if err != nil {
		return err
	}

	limit := queryLimit
	includeSynthetic := querySynthetic
	if settingsService != nil {
		if settings, settingsErr := settingsService.Get(); settingsErr == nil {
			if limit == 0 {
				limit = settings.Query.DefaultLimit
			}
			if !cmd.Flags().Changed("synthetic") {
				includeSynthetic = settings.Query.IncludeSynthetic
			}
		}
	}

	ctx := context.Background()
	opts := domain.QueryOptions{
		Limit:            limit,
		Offset:           queryOffset,
		Crates:           queryCrates,
		TraitPath:        queryTrait,
		Applicability:    applicability,
		IncludeSynthetic: includeSynthetic,
	}

	results, err := queryService.Query(ctx, pattern, opts)
	if err != nil {
		return fmt.Errorf("query failed: %w", err)
	}

	if queryJSON {
		return outputQueryJSON(cmd, results)
	}

	return outputQueryTable(cmd, results)
}

func parseApplicability(s string) (domain.Applicability, error) {
	switch s {
	case "":
		return "", nil
	case string(domain.ApplicabilityAlways):
		return domain.ApplicabilityAlways, nil
	case string(domain.ApplicabilityNever):
		return domain.ApplicabilityNever, nil
	case string(domain.ApplicabilityConditional):
		return domain.ApplicabilityConditional, nil
	default:
		return "", fmt.Errorf("invalid applicability %q (expected always, never or conditional)", s)
	}
}

func outputQueryJSON(cmd *cobra.Command, results []domain.QueryResult) error {
	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputQueryTable(cmd *cobra.Command, results []domain.QueryResult) error {
	if len(results) == 0 {
		cmd.Println("No results found.")
		return nil
	}

	cmd.Println("Results:")
	cmd.Println()
	for i := range results {
		rec := &results[i].Implementor
		cmd.Printf("  [%d] %s :: %s\n", i+1, rec.Crate, rec.TraitPath)
		cmd.Printf("      %s\n", rec.Text)
		if rec.Applicability != domain.ApplicabilityAlways {
			cmd.Printf("      Applicability: %s\n", rec.Applicability)
		}
		if rec.Synthetic {
			cmd.Println("      Synthetic: yes")
		}
		if results[i].SourceName != "" {
			cmd.Printf("      Source: %s\n", results[i].SourceName)
		}
		cmd.Println()
	}

	return nil
}
