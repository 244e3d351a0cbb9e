package secretsource

import (
	"os"
	"strings"
)

const (
	// EnvPrefix is the environment variable consulted for a custom
	// reference prefix.
	EnvPrefix = "GCP_SECRET_MANAGER_PREFIX"

	// DefaultPrefix is the reference prefix used when neither the
	// environment nor the host's properties configure one.
	DefaultPrefix = "gcpSecretManager:"
)

// configuredPrefix resolves the reference prefix once, at construction time:
// the environment variable wins when set and non-blank after trimming, then a
// host-supplied property of the same name, then the compiled-in default.
func configuredPrefix(properties map[string]string) string {
	if v := os.Getenv(EnvPrefix); strings.TrimSpace(v) != "" {
		return v
	}
	if v, ok := properties[EnvPrefix]; ok {
		return v
	}
	return DefaultPrefix
}
