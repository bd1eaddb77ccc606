package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/traitdex/internal/core/ports/driving"
	"github.com/custodia-labs/traitdex/internal/logger"
)

// version is set at build time via ldflags.
var version = "dev"

// Services used by the commands. Set via SetServices before Execute.
var (
	scanOrchestrator  driving.ScanOrchestrator
	queryService      driving.QueryService
	lintService       driving.LintService
	exportService     driving.ExportService
	sourceService     driving.SourceService
	settingsService   driving.SettingsService
	watchService      driving.WatchService
	scheduler         driving.Scheduler
	connectorRegistry driving.ConnectorRegistry
)

var (
	verbose   bool
	dataDir   string
	configDir string
)

// initializer builds the services once flags are parsed. Set by main;
// nil in tests, which inject services directly.
var initializer func(dataDir, configDir string) error

var rootCmd = &cobra.Command{
	Use:   "traitdex",
	Short: "Index and query rustdoc trait implementor registries",
	Long: `Traitdex scans rustdoc output trees for trait implementor
registration fragments, decodes them without executing JavaScript, and
maintains a queryable local index.

Point it at a documentation tree (or a GitHub Pages branch), then query
which types implement a trait, lint the registries for invariant
violations, or re-emit them in any supported format.`,
	SilenceUsage: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		logger.SetVerbose(verbose)
		if initializer != nil {
			if err := initializer(dataDir, configDir); err != nil {
				return fmt.Errorf("initialisation failed: %w", err)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "directory for the index database (default ~/.traitdex)")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "directory for the config file (default ~/.traitdex)")
}

// Services bundles everything the commands need.
type Services struct {
	ScanOrchestrator  driving.ScanOrchestrator
	QueryService      driving.QueryService
	LintService       driving.LintService
	ExportService     driving.ExportService
	SourceService     driving.SourceService
	SettingsService   driving.SettingsService
	WatchService      driving.WatchService
	Scheduler         driving.Scheduler
	ConnectorRegistry driving.ConnectorRegistry
}

// SetServices wires the services the commands run against.
func SetServices(s Services) {
	scanOrchestrator = s.ScanOrchestrator
	queryService = s.QueryService
	lintService = s.LintService
	exportService = s.ExportService
	sourceService = s.SourceService
	settingsService = s.SettingsService
	watchService = s.WatchService
	scheduler = s.Scheduler
	connectorRegistry = s.ConnectorRegistry
}

// SetInitializer registers a deferred service constructor that runs
// after global flags are parsed, so --data-dir and --config-dir take
// effect before any command body.
func SetInitializer(fn func(dataDir, configDir string) error) {
	initializer = fn
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
