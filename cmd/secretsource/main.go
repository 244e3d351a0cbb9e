package main

import (
	"fmt"
	"os"

	"github.com/awnumar/memguard"
	"github.com/spf13/cobra"

	"github.com/systmms/secretsource/cmd/secretsource/commands"
	"github.com/systmms/secretsource/internal/config"
	"github.com/systmms/secretsource/internal/logging"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	// Wipe any protected secret buffers before the process exits.
	defer memguard.Purge()

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		memguard.Purge()
		os.Exit(1)
	}
}

func run() error {
	var (
		configFile string
		noColor    bool
		debug      bool
	)

	opts := &commands.Options{}

	rootCmd := &cobra.Command{
		Use:   "secretsource",
		Short: "Resolve Google Cloud Secret Manager references in configuration",
		Long: `secretsource resolves ${gcpSecretManager:...} references against Google
Cloud Secret Manager, verifying payload integrity, for configuration-as-code
workflows.`,
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			opts.Logger = logging.New(debug, noColor)
			opts.ConfigFile = configFile
			opts.Debug = debug
		},
	}

	rootCmd.PersistentFlags().StringVar(&configFile, "config", config.DefaultPath, "Config file path")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")

	rootCmd.AddCommand(
		commands.NewGetCommand(opts),
		commands.NewRenderCommand(opts),
	)

	return rootCmd.Execute()
}
