package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/traitdex/internal/core/domain"
)

var sourceCmd = &cobra.Command{
	Use:   "source",
	Short: "Manage fragment sources",
	Long:  `Add, list and remove the sources traitdex scans for registry fragments.`,
}

var sourceAddCmd = &cobra.Command{
	Use:   "add [connector-type]",
	Short: "Add a new source",
	Long: `Adds a new fragment source. If a connector type is provided
(e.g. "filesystem" or "github"), the command prompts for that
connector's configuration. Otherwise the available types are listed.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSourceAdd,
}

var sourceListCmd = &cobra.Command{
	Use:   "list",
	Short: "List configured sources",
	RunE:  runSourceList,
}

var sourceRemoveCmd = &cobra.Command{
	Use:   "remove [source-id]",
	Short: "Remove a source and its indexed records",
	Args:  cobra.ExactArgs(1),
	RunE:  runSourceRemove,
}

var sourceExcludeCmd = &cobra.Command{
	Use:   "exclude [source-id]",
	Short: "Exclude a fragment or crate from indexing",
	Long: `Marks a fragment URI or a whole crate to be skipped during scans
of the source. An excluded fragment's indexed records are removed
immediately; an excluded crate's records are dropped on the next scan.`,
	Args: cobra.ExactArgs(1),
	RunE: runSourceExclude,
}

var sourceUnexcludeCmd = &cobra.Command{
	Use:   "unexclude [exclusion-id]",
	Short: "Remove an exclusion",
	Args:  cobra.ExactArgs(1),
	RunE:  runSourceUnexclude,
}

var sourceExclusionsCmd = &cobra.Command{
	Use:   "exclusions [source-id]",
	Short: "List exclusions for a source",
	Args:  cobra.ExactArgs(1),
	RunE:  runSourceExclusions,
}

var connectorCmd = &cobra.Command{
	Use:   "connector",
	Short: "Inspect available connectors",
}

var connectorListCmd = &cobra.Command{
	Use:   "list",
	Short: "List available connector types",
	RunE:  runConnectorList,
}

// Flags for the exclude command.
var (
	excludeURI    string
	excludeCrate  string
	excludeReason string
)

func init() {
	sourceExcludeCmd.Flags().StringVar(&excludeURI, "uri", "", "Fragment URI to exclude")
	sourceExcludeCmd.Flags().StringVar(&excludeCrate, "crate", "", "Crate to exclude")
	sourceExcludeCmd.Flags().StringVarP(&excludeReason, "reason", "r", "", "Reason for the exclusion")

	sourceCmd.AddCommand(sourceAddCmd)
	sourceCmd.AddCommand(sourceListCmd)
	sourceCmd.AddCommand(sourceRemoveCmd)
	sourceCmd.AddCommand(sourceExcludeCmd)
	sourceCmd.AddCommand(sourceUnexcludeCmd)
	sourceCmd.AddCommand(sourceExclusionsCmd)
	rootCmd.AddCommand(sourceCmd)

	connectorCmd.AddCommand(connectorListCmd)
	rootCmd.AddCommand(connectorCmd)
}

func runSourceAdd(cmd *cobra.Command, args []string) error {
	if sourceService == nil {
		return errors.New("source service not configured")
	}
	if connectorRegistry == nil {
		return errors.New("connector registry not configured")
	}

	if len(args) == 0 {
		cmd.Println("Specify a connector type:")
		for _, ct := range connectorRegistry.List() {
			cmd.Printf("  %s - %s\n", ct.ID, ct.Description)
		}
		return nil
	}

	connType, err := connectorRegistry.Get(args[0])
	if err != nil {
		return fmt.Errorf("unknown connector type %q: %w", args[0], err)
	}

	reader := bufio.NewReader(os.Stdin)

	cmd.Printf("Adding %s source\n", connType.Name)
	cmd.Print("Name: ")
	name := readLine(reader)
	if name == "" {
		name = connType.Name
	}

	config := make(map[string]string)
	for _, key := range connType.ConfigKeys {
		prompt := key.Label
		if key.Default != "" {
			prompt = fmt.Sprintf("%s [%s]", key.Label, key.Default)
		}
		cmd.Printf("%s: ", prompt)

		var value string
		if key.Secret {
			value = readPassword()
			cmd.Println()
		} else {
			value = readLine(reader)
		}
		if value == "" {
			value = key.Default
		}
		if value != "" {
			config[key.Key] = value
		}
	}

	ctx := context.Background()
	if err := sourceService.ValidateConfig(ctx, connType.ID, config); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	source := domain.Source{
		ID:     uuid.NewString(),
		Type:   connType.ID,
		Name:   name,
		Config: config,
	}
	if err := sourceService.Add(ctx, source); err != nil {
		return fmt.Errorf("failed to add source: %w", err)
	}

	cmd.Printf("Added source: %s (%s)\n", source.Name, source.ID)
	return nil
}

func runSourceList(cmd *cobra.Command, _ []string) error {
	if sourceService == nil {
		return errors.New("source service not configured")
	}

	sources, err := sourceService.List(context.Background())
	if err != nil {
		return fmt.Errorf("failed to list sources: %w", err)
	}

	if len(sources) == 0 {
		cmd.Println("No configured sources.")
		return nil
	}

	cmd.Println("Configured sources:")
	for i := range sources {
		src := &sources[i]
		cmd.Printf("  %s [%s] %s\n", src.ID, src.Type, src.Name)
		if hint := sourceLocationHint(src); hint != "" {
			cmd.Printf("      %s\n", hint)
		}
	}
	return nil
}

func runSourceRemove(cmd *cobra.Command, args []string) error {
	if sourceService == nil {
		return errors.New("source service not configured")
	}

	id := args[0]
	if err := sourceService.Remove(context.Background(), id); err != nil {
		return fmt.Errorf("failed to remove source: %w", err)
	}

	cmd.Printf("Removed source: %s\n", id)
	return nil
}

func runSourceExclude(cmd *cobra.Command, args []string) error {
	if sourceService == nil {
		return errors.New("source service not configured")
	}
	if (excludeURI == "") == (excludeCrate == "") {
		return errors.New("specify exactly one of --uri or --crate")
	}

	exclusion := domain.Exclusion{
		SourceID: args[0],
		URI:      excludeURI,
		Crate:    excludeCrate,
		Reason:   excludeReason,
	}
	if err := sourceService.Exclude(context.Background(), exclusion); err != nil {
		return fmt.Errorf("failed to exclude: %w", err)
	}

	cmd.Printf("Excluded %s from source %s\n", exclusion.Target(), args[0])
	return nil
}

func runSourceUnexclude(cmd *cobra.Command, args []string) error {
	if sourceService == nil {
		return errors.New("source service not configured")
	}

	if err := sourceService.Unexclude(context.Background(), args[0]); err != nil {
		return fmt.Errorf("failed to remove exclusion: %w", err)
	}

	cmd.Printf("Removed exclusion: %s\n", args[0])
	return nil
}

func runSourceExclusions(cmd *cobra.Command, args []string) error {
	if sourceService == nil {
		return errors.New("source service not configured")
	}

	exclusions, err := sourceService.ListExclusions(context.Background(), args[0])
	if err != nil {
		return fmt.Errorf("failed to list exclusions: %w", err)
	}

	if len(exclusions) == 0 {
		cmd.Printf("No exclusions for source: %s\n", args[0])
		return nil
	}

	cmd.Printf("Exclusions for source %s:\n", args[0])
	for i := range exclusions {
		e := &exclusions[i]
		cmd.Printf("  %s  %s\n", e.ID, e.Target())
		if e.Reason != "" {
			cmd.Printf("      %s\n", e.Reason)
		}
	}
	return nil
}

func runConnectorList(cmd *cobra.Command, _ []string) error {
	if connectorRegistry == nil {
		return errors.New("connector registry not configured")
	}

	types := connectorRegistry.List()
	if len(types) == 0 {
		cmd.Println("No connectors available.")
		return nil
	}

	cmd.Println("Available connectors:")
	for _, ct := range types {
		cmd.Printf("  %s - %s\n", ct.ID, ct.Name)
		if ct.Description != "" {
			cmd.Printf("      %s\n", ct.Description)
		}
		if len(ct.ConfigKeys) > 0 {
			cmd.Print("      Config:")
			for _, key := range ct.ConfigKeys {
				cmd.Printf(" --%s", key.Key)
			}
			cmd.Println()
		}
	}
	return nil
}

// sourceLocationHint extracts a displayable location from the config.
func sourceLocationHint(src *domain.Source) string {
	if path := src.Config["path"]; path != "" {
		return path
	}
	if owner, repo := src.Config["owner"], src.Config["repo"]; owner != "" && repo != "" {
		return owner + "/" + repo
	}
	return ""
}

// Interactive input helpers.

//nolint:errcheck // CLI helper, error ignored for UX
func readLine(reader *bufio.Reader) string {
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

//nolint:errcheck // CLI helper, error ignored for UX
func readPassword() string {
	// Try to read without echo
	if term.IsTerminal(int(os.Stdin.Fd())) {
		password, err := term.ReadPassword(int(os.Stdin.Fd()))
		if err == nil {
			return string(password)
		}
	}
	// Fallback to regular input
	reader := bufio.NewReader(os.Stdin)
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}
