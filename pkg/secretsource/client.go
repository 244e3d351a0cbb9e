package secretsource

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	secretmanager "cloud.google.com/go/secretmanager/apiv1"
	"cloud.google.com/go/secretmanager/apiv1/secretmanagerpb"
	"google.golang.org/api/impersonate"
	"google.golang.org/api/option"
)

// SecretManagerClient is the subset of the Secret Manager API a Source needs
// for one fetch. *secretmanager.Client satisfies it through the adapter
// returned by the production factory; tests inject fakes.
type SecretManagerClient interface {
	AccessSecretVersion(ctx context.Context, req *secretmanagerpb.AccessSecretVersionRequest) (*secretmanagerpb.AccessSecretVersionResponse, error)
	Close() error
}

// ClientFactory opens a Secret Manager session. The Source calls it once per
// backend fetch and closes the returned client before the fetch returns,
// on success and on every failure path alike.
type ClientFactory func(ctx context.Context) (SecretManagerClient, error)

// ClientConfig holds the authentication knobs for the production factory.
type ClientConfig struct {
	// CredentialsFile points at a service account key file. A leading ~/
	// is expanded. Empty means application default credentials.
	CredentialsFile string

	// ImpersonateServiceAccount, when set, exchanges the base credentials
	// for tokens of the named service account.
	ImpersonateServiceAccount string

	// Options are appended verbatim, after the options derived above.
	Options []option.ClientOption
}

// NewClientFactory builds the production factory from cfg.
func NewClientFactory(cfg ClientConfig) ClientFactory {
	return func(ctx context.Context) (SecretManagerClient, error) {
		opts, err := clientOptions(ctx, cfg)
		if err != nil {
			return nil, err
		}
		client, err := secretmanager.NewClient(ctx, opts...)
		if err != nil {
			return nil, err
		}
		return &gcpClient{client: client}, nil
	}
}

func clientOptions(ctx context.Context, cfg ClientConfig) ([]option.ClientOption, error) {
	var opts []option.ClientOption

	if cfg.CredentialsFile != "" {
		path := cfg.CredentialsFile
		if strings.HasPrefix(path, "~/") {
			home, err := os.UserHomeDir()
			if err != nil {
				return nil, fmt.Errorf("failed to expand credentials path: %w", err)
			}
			path = filepath.Join(home, path[2:])
		}
		opts = append(opts, option.WithCredentialsFile(path))
	}

	if cfg.ImpersonateServiceAccount != "" {
		ts, err := impersonate.CredentialsTokenSource(ctx, impersonate.CredentialsConfig{
			TargetPrincipal: cfg.ImpersonateServiceAccount,
			Scopes:          []string{"https://www.googleapis.com/auth/cloud-platform"},
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create impersonated credentials: %w", err)
		}
		opts = append(opts, option.WithTokenSource(ts))
	}

	return append(opts, cfg.Options...), nil
}

// gcpClient adapts *secretmanager.Client to SecretManagerClient.
type gcpClient struct {
	client *secretmanager.Client
}

func (g *gcpClient) AccessSecretVersion(ctx context.Context, req *secretmanagerpb.AccessSecretVersionRequest) (*secretmanagerpb.AccessSecretVersionResponse, error) {
	return g.client.AccessSecretVersion(ctx, req)
}

func (g *gcpClient) Close() error {
	return g.client.Close()
}
