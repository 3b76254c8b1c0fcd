// Package cli implements the micronskit command line interface.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/cajal/microns-kit/internal/adapters/driven/config/file"
	"github.com/cajal/microns-kit/internal/core/ports/driven"
	"github.com/cajal/microns-kit/internal/logger"
)

// version is the binary version, overridden at build time via
// -ldflags "-X .../cli.version=x.y.z".
var version = "dev"

var (
	verboseFlag   bool
	configDirFlag string
)

var rootCmd = &cobra.Command{
	Use:   "micronskit",
	Short: "Helper toolkit for the MICrONS datasets",
	Long: `micronskit bundles the helper utilities used around the MICrONS
datasets: version checks against GitHub, precomputed volume statistics,
CAVE datastack metadata, and filesystem path and timestamp helpers.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verboseFlag)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(
		&verboseFlag, "verbose", "v", false, "enable verbose logging")
	rootCmd.PersistentFlags().StringVar(
		&configDirFlag, "config-dir", "", "config directory (default ~/.micronskit)")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// openConfig opens the TOML config store.
func openConfig() (driven.ConfigStore, error) {
	return file.NewConfigStore(configDirFlag)
}
