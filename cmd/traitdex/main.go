// Command traitdex indexes and queries rustdoc trait implementor
// registries.
package main

import (
	"fmt"

	"github.com/custodia-labs/traitdex/internal/adapters/driven/config/file"
	"github.com/custodia-labs/traitdex/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/traitdex/internal/adapters/driving/cli"
	"github.com/custodia-labs/traitdex/internal/connectors"
	"github.com/custodia-labs/traitdex/internal/core/services"
	"github.com/custodia-labs/traitdex/internal/decoders"
	"github.com/custodia-labs/traitdex/internal/postprocessors"
)

func main() {
	cli.SetInitializer(initialise)
	cli.Execute()
}

// initialise builds the full service graph once global flags are
// parsed, so --data-dir and --config-dir are honoured.
func initialise(dataDir, configDir string) error {
	store, err := sqlite.NewStore(dataDir)
	if err != nil {
		return fmt.Errorf("opening index store: %w", err)
	}

	configStore, err := file.NewConfigStore(configDir)
	if err != nil {
		return fmt.Errorf("opening config store: %w", err)
	}

	settingsService := services.NewSettingsService(configStore)
	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("loading settings: %w", err)
	}

	decoderRegistry := decoders.NewRegistry()
	decoders.RegisterDefaults(decoderRegistry)

	processorRegistry := postprocessors.NewRegistry()
	postprocessors.RegisterDefaults(processorRegistry)
	annotator, err := processorRegistry.Build("annotate", nil)
	if err != nil {
		return fmt.Errorf("building record pipeline: %w", err)
	}
	pipeline := postprocessors.NewPipeline(annotator)

	factory := connectors.NewDefaultFactory()
	connectorRegistry := services.NewConnectorRegistry()

	scanOrchestrator := services.NewScanOrchestrator(
		store.SourceStore(),
		store.ScanStateStore(),
		store.ImplementorStore(),
		store.ExclusionStore(),
		factory,
		decoderRegistry,
		pipeline,
	)

	queryService := services.NewQueryService(store.ImplementorStore(), store.SourceStore())
	lintService := services.NewLintService(store.ImplementorStore())
	exportService := services.NewExportService(store.ImplementorStore())

	sourceService := services.NewSourceService(
		store.SourceStore(),
		store.ScanStateStore(),
		store.ImplementorStore(),
	)
	sourceService.SetConnectorRegistry(connectorRegistry)
	sourceService.SetExclusionStore(store.ExclusionStore())
	sourceService.SetSchedulerStore(store.SchedulerStore())

	watchService := services.NewWatchService(scanOrchestrator, settings.Rescan.Interval)
	scheduler := services.NewRescanScheduler(
		settings.Rescan,
		store.SchedulerStore(),
		store.SourceStore(),
		scanOrchestrator,
	)

	cli.SetServices(cli.Services{
		ScanOrchestrator:  scanOrchestrator,
		QueryService:      queryService,
		LintService:       lintService,
		ExportService:     exportService,
		SourceService:     sourceService,
		SettingsService:   settingsService,
		WatchService:      watchService,
		Scheduler:         scheduler,
		ConnectorRegistry: connectorRegistry,
	})
	return nil
}
