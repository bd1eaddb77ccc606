package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var (
	cratesJSON bool
	traitsJSON bool
)

var cratesCmd = &cobra.Command{
	Use:   "crates",
	Short: "List indexed crates",
	Long:  `Lists all crates present in the index, with record counts.`,
	RunE:  runCrates,
}

var traitsCmd = &cobra.Command{
	Use:   "traits",
	Short: "List indexed trait registries",
	Long:  `Lists all trait registries present in the index, with record counts.`,
	RunE:  runTraits,
}

func init() {
	cratesCmd.Flags().BoolVar(&cratesJSON, "json", false, "output as JSON")
	traitsCmd.Flags().BoolVar(&traitsJSON, "json", false, "output as JSON")
	rootCmd.AddCommand(cratesCmd)
	rootCmd.AddCommand(traitsCmd)
}

func runCrates(cmd *cobra.Command, _ []string) error {
	if queryService == nil {
		return errors.New("query service not configured")
	}

	summaries, err := queryService.Crates(context.Background())
	if err != nil {
		return fmt.Errorf("failed to list crates: %w", err)
	}

	if cratesJSON {
		data, err := json.MarshalIndent(summaries, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal crates: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	if len(summaries) == 0 {
		cmd.Println("No crates indexed.")
		return nil
	}

	cmd.Println("Indexed crates:")
	for _, s := range summaries {
		cmd.Printf("  %s (%d records, %d traits)\n", s.Crate, s.Records, s.Traits)
	}
	return nil
}

func runTraits(cmd *cobra.Command, _ []string) error {
	if queryService == nil {
		return errors.New("query service not configured")
	}

	summaries, err := queryService.Traits(context.Background())
	if err != nil {
		return fmt.Errorf("failed to list traits: %w", err)
	}

	if traitsJSON {
		data, err := json.MarshalIndent(summaries, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal traits: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	if len(summaries) == 0 {
		cmd.Println("No traits indexed.")
		return nil
	}

	cmd.Println("Indexed traits:")
	for _, s := range summaries {
		cmd.Printf("  %s (%d records across %d crates)\n", s.TraitPath, s.Records, s.Crates)
	}
	return nil
}
