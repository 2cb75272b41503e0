// Package cli implements the relcut command-line interface.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/meridian-labs/relcut-cli/internal/core/ports/driven"
	"github.com/meridian-labs/relcut-cli/internal/core/ports/driving"
	"github.com/meridian-labs/relcut-cli/internal/logger"
)

// version is set by the build via SetVersion.
var version = "dev"

// Services the commands depend on. main wires these before Execute.
var (
	releaseOrchestrator driving.ReleaseOrchestrator
	historyService      driving.HistoryService
	configStore         driven.ConfigStore
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "relcut",
	Short: "Cut and publish release candidates",
	Long: `Relcut automates cutting a release candidate from a git working copy:
it bumps the development version, builds a signed source tarball with
checksums, and optionally publishes the candidate for a release vote.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
}

// SetVersion sets the version string printed by the version command.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// SetReleaseOrchestrator wires the release workflow service.
func SetReleaseOrchestrator(svc driving.ReleaseOrchestrator) {
	releaseOrchestrator = svc
}

// SetHistoryService wires the release history service.
func SetHistoryService(svc driving.HistoryService) {
	historyService = svc
}

// SetConfigStore wires the configuration store used by the config
// command.
func SetConfigStore(store driven.ConfigStore) {
	configStore = store
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
