package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/systmms/secretsource/internal/interpolate"
)

// NewRenderCommand creates the render command: substitute ${...} references
// in a configuration document.
func NewRenderCommand(opts *Options) *cobra.Command {
	var (
		inPath  string
		outPath string
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Substitute secret references in a configuration document",
		Long: `Read a document, resolve every ${gcpSecretManager:...} reference in it, and
write the substituted result. References no source claims are left untouched.

Example:
  secretsource render --in jenkins.yaml --out rendered.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readInput(cmd.InOrStdin(), inPath)
			if err != nil {
				return err
			}

			src, err := buildSource(opts)
			if err != nil {
				return err
			}

			renderer := interpolate.New(opts.Logger, src)
			rendered, err := renderer.Render(cmd.Context(), text)
			if err != nil {
				return err
			}

			return writeOutput(cmd.OutOrStdout(), outPath, rendered)
		},
	}

	cmd.Flags().StringVar(&inPath, "in", "", "Input file (default: stdin)")
	cmd.Flags().StringVar(&outPath, "out", "", "Output file (default: stdout)")

	return cmd
}

func readInput(stdin io.Reader, path string) (string, error) {
	if path == "" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read input file: %w", err)
	}
	return string(data), nil
}

func writeOutput(stdout io.Writer, path, text string) error {
	if path == "" {
		_, err := io.WriteString(stdout, text)
		return err
	}
	// Rendered output carries secret values: keep it owner-readable.
	if err := os.WriteFile(path, []byte(text), 0o600); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}
