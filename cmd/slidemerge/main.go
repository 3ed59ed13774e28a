// Command slidemerge merges Marp slide decks into site, document and slide variants.
package main

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/custodia-labs/slidemerge/internal/adapters/driven/config/file"
	"github.com/custodia-labs/slidemerge/internal/adapters/driven/exec"
	"github.com/custodia-labs/slidemerge/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/slidemerge/internal/adapters/driving/cli"
	"github.com/custodia-labs/slidemerge/internal/core/ports/driven"
	"github.com/custodia-labs/slidemerge/internal/core/services"
	"github.com/custodia-labs/slidemerge/internal/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := cli.Execute(ctx, newServices)
	stop()
	if err != nil {
		os.Exit(cli.PrintError(os.Stderr, err))
	}
}

// newServices wires adapters into the core services.
func newServices(opts cli.Options) (*cli.Services, func() error, error) {
	configStore, err := file.NewConfigStore(opts.ConfigDir)
	if err != nil {
		return nil, nil, err
	}

	settingsService := services.NewSettingsService(configStore, os.Getenv)
	settings, err := settingsService.Get()
	if err != nil {
		return nil, nil, err
	}

	var (
		runs    driven.RunStore
		closeFn = func() error { return nil }
	)
	if settings.History.Enabled && !opts.NoHistory {
		dataDir := ""
		if opts.ConfigDir != "" {
			dataDir = filepath.Join(opts.ConfigDir, "data")
		}
		store, err := sqlite.NewStore(dataDir)
		if err != nil {
			return nil, nil, err
		}
		logger.Debug("history database: %s", store.Path())
		runs = store.RunStore()
		closeFn = store.Close
	}

	runner := exec.NewRunner()
	mergeService := services.NewMergeService(*settings, runs)

	s := &cli.Services{
		Merge:    mergeService,
		Inspect:  services.NewInspectService(*settings),
		Build:    services.NewBuildService(runner, *settings),
		Clean:    services.NewCleanService(*settings),
		Deploy:   services.NewDeployService(runner, *settings),
		Diagram:  services.NewDiagramService(runner, *settings),
		Watch:    services.NewWatchService(mergeService, *settings),
		Settings: settingsService,
	}
	if runs != nil {
		s.History = services.NewHistoryService(runs)
	}
	return s, closeFn, nil
}
