package commands

import (
	"github.com/systmms/secretsource/internal/config"
	"github.com/systmms/secretsource/internal/logging"
	"github.com/systmms/secretsource/pkg/secretsource"
)

// Options carries state shared by all commands, populated by the root
// command's PersistentPreRun.
type Options struct {
	ConfigFile string
	Logger     *logging.Logger
	Debug      bool
}

// buildSource loads the CLI config and constructs a fresh Source. Each
// command invocation is one resolution pass, so each gets its own cache.
func buildSource(opts *Options) (*secretsource.Source, error) {
	cfg, err := config.Load(opts.ConfigFile)
	if err != nil {
		return nil, err
	}

	return secretsource.New(secretsource.Options{
		Prefix:     cfg.Prefix,
		Properties: cfg.Properties,
		Client: secretsource.ClientConfig{
			CredentialsFile:           cfg.CredentialsFile,
			ImpersonateServiceAccount: cfg.ImpersonateServiceAccount,
		},
		Debug: opts.Debug,
	}), nil
}
