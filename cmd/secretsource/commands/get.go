package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	sserrors "github.com/systmms/secretsource/internal/errors"
	"github.com/systmms/secretsource/internal/secure"
)

// NewGetCommand creates the get command: resolve one reference and print the
// secret value to stdout.
func NewGetCommand(opts *Options) *cobra.Command {
	return &cobra.Command{
		Use:   "get <reference>",
		Short: "Resolve one secret reference and print its value",
		Long: `Resolve a prefixed Secret Manager reference and print the value to stdout.

Example:
  secretsource get "gcpSecretManager:projects/p/secrets/db-password/versions/latest"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reference := args[0]

			src, err := buildSource(opts)
			if err != nil {
				return err
			}

			value, found, err := src.Resolve(cmd.Context(), reference)
			if err != nil {
				return sserrors.ResolutionError(reference, err)
			}
			if !found {
				return sserrors.UserError{
					Message:    fmt.Sprintf("Reference not claimed by this source: %s", reference),
					Suggestion: fmt.Sprintf("References must start with the configured prefix %q", src.Prefix()),
				}
			}

			// Hold the value in protected memory until it is written.
			buf := secure.NewSecureBuffer([]byte(value))
			defer buf.Destroy()

			locked, err := buf.Open()
			if err != nil {
				return fmt.Errorf("failed to open secure buffer: %w", err)
			}
			defer locked.Destroy()

			if _, err := cmd.OutOrStdout().Write(locked.Bytes()); err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout())
			return err
		},
	}
}
