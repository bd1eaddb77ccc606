package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/traitdex/internal/core/domain"
	"github.com/custodia-labs/traitdex/internal/core/ports/driving"
)

var (
	emitFormat string
	emitCrates []string
	emitOut    string
)

var emitCmd = &cobra.Command{
	Use:   "emit [trait-path]",
	Short: "Re-emit a trait registry as a fragment",
	Long: `Renders one indexed trait registry back into fragment form.
Output is canonical: the same index content always yields the same
bytes, regardless of scan order.

Formats:
  legacy-js - implementors/*.js assignment form
  modern-js - trait.impl/*.js Object.fromEntries form
  json      - plain JSON interchange form

Omit the trait path to list the registries available to emit.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runEmit,
}

func init() {
	emitCmd.Flags().StringVarP(&emitFormat, "format", "f", "", "output format (default from settings)")
	emitCmd.Flags().StringSliceVar(&emitCrates, "crate", nil, "restrict output to specific crates")
	emitCmd.Flags().StringVarP(&emitOut, "out", "o", "", "write output to file instead of stdout")
	rootCmd.AddCommand(emitCmd)
}

func runEmit(cmd *cobra.Command, args []string) error {
	if exportService == nil {
		return errors.New("export service not configured")
	}

	ctx := context.Background()

	if len(args) == 0 {
		return listTraitPaths(ctx, cmd)
	}

	flavor, err := resolveFlavor(emitFormat)
	if err != nil {
		return err
	}

	opts := driving.EmitOptions{
		TraitPath: args[0],
		Flavor:    flavor,
		Crates:    emitCrates,
	}

	data, err := exportService.Emit(ctx, opts)
	if err != nil {
		return fmt.Errorf("emit failed: %w", err)
	}

	if emitOut != "" {
		if err := os.WriteFile(emitOut, data, 0o600); err != nil {
			return fmt.Errorf("failed to write %s: %w", emitOut, err)
		}
		cmd.Printf("Wrote %d bytes to %s\n", len(data), emitOut)
		return nil
	}

	cmd.Print(string(data))
	return nil
}

func listTraitPaths(ctx context.Context, cmd *cobra.Command) error {
	paths, err := exportService.TraitPaths(ctx)
	if err != nil {
		return fmt.Errorf("failed to list traits: %w", err)
	}

	if len(paths) == 0 {
		cmd.Println("No traits indexed.")
		return nil
	}

	cmd.Println("Available trait registries:")
	for _, p := range paths {
		cmd.Printf("  %s\n", p)
	}
	return nil
}

// resolveFlavor maps the --format flag to a Flavor, falling back to
// the configured default when the flag is empty.
func resolveFlavor(format string) (domain.Flavor, error) {
	if format == "" {
		if settingsService != nil {
			if settings, err := settingsService.Get(); err == nil {
				return settings.Emit.Flavor, nil
			}
		}
		return domain.FlavorModernJS, nil
	}

	switch domain.Flavor(format) {
	case domain.FlavorLegacyJS, domain.FlavorModernJS, domain.FlavorJSON:
		return domain.Flavor(format), nil
	default:
		return "", fmt.Errorf("invalid format %q (expected legacy-js, modern-js or json)", format)
	}
}
