// Command relcut cuts and publishes release candidates.
package main

import (
	"fmt"
	"os"

	"github.com/meridian-labs/relcut-cli/internal/adapters/driven/checksum"
	configfile "github.com/meridian-labs/relcut-cli/internal/adapters/driven/config/file"
	"github.com/meridian-labs/relcut-cli/internal/adapters/driven/gitcli"
	"github.com/meridian-labs/relcut-cli/internal/adapters/driven/gpg"
	"github.com/meridian-labs/relcut-cli/internal/adapters/driven/storage/sqlite"
	"github.com/meridian-labs/relcut-cli/internal/adapters/driven/svncli"
	"github.com/meridian-labs/relcut-cli/internal/adapters/driving/cli"
	"github.com/meridian-labs/relcut-cli/internal/core/ports/driven"
	"github.com/meridian-labs/relcut-cli/internal/core/services"
	"github.com/meridian-labs/relcut-cli/internal/logger"
)

// version is injected at build time via -ldflags.
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cli.SetVersion(version)

	// RELCUT_CONFIG_DIR relocates the config directory, mainly for CI.
	configStore, err := configfile.NewConfigStore(os.Getenv("RELCUT_CONFIG_DIR"))
	if err != nil {
		return fmt.Errorf("opening configuration: %w", err)
	}
	cli.SetConfigStore(configStore)

	repoRoot, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("resolving working directory: %w", err)
	}

	cfg := services.LoadSettings(configStore, repoRoot)

	var dist driven.DistStore
	if cfg.DistURL != "" {
		dist = svncli.NewStore(cfg.DistURL)
	}

	// History is best effort; the workflow runs without it.
	var history driven.HistoryStore
	if store, serr := sqlite.NewStore(""); serr != nil {
		logger.Warn("release history unavailable: %v", serr)
	} else {
		defer store.Close()
		history = store.HistoryStore()
	}

	releaseSvc := services.NewReleaseService(
		cfg,
		gitcli.NewClient(repoRoot),
		gpg.NewSigner(),
		checksum.NewWriter(),
		dist,
		history,
	)
	cli.SetReleaseOrchestrator(releaseSvc)
	cli.SetHistoryService(services.NewHistoryService(history))

	return cli.Execute()
}
