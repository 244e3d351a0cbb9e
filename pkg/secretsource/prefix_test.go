package secretsource

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitReference(t *testing.T) {
	tests := []struct {
		name       string
		prefix     string
		raw        string
		wantPath   string
		wantClaims bool
	}{
		{
			name:       "prefixed_reference",
			prefix:     "gcpSecretManager:",
			raw:        "gcpSecretManager:projects/p/secrets/s/versions/latest",
			wantPath:   "projects/p/secrets/s/versions/latest",
			wantClaims: true,
		},
		{
			name:       "prefix_only_yields_empty_path",
			prefix:     "gcpSecretManager:",
			raw:        "gcpSecretManager:",
			wantPath:   "",
			wantClaims: true,
		},
		{
			name:       "unprefixed_reference",
			prefix:     "gcpSecretManager:",
			raw:        "vault:secret/data/app",
			wantClaims: false,
		},
		{
			name:       "prefix_in_middle_does_not_count",
			prefix:     "gcpSecretManager:",
			raw:        "xgcpSecretManager:path",
			wantClaims: false,
		},
		{
			name:       "case_sensitive",
			prefix:     "gcpSecretManager:",
			raw:        "gcpsecretmanager:path",
			wantClaims: false,
		},
		{
			name:       "empty_raw",
			prefix:     "gcpSecretManager:",
			raw:        "",
			wantClaims: false,
		},
		{
			name:       "empty_prefix_matches_nothing",
			prefix:     "",
			raw:        "anything",
			wantClaims: false,
		},
		{
			name:       "empty_prefix_empty_raw",
			prefix:     "",
			raw:        "",
			wantClaims: false,
		},
		{
			name:       "custom_prefix",
			prefix:     "myprefix:",
			raw:        "myprefix:projects/p/secrets/s/versions/1",
			wantPath:   "projects/p/secrets/s/versions/1",
			wantClaims: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path, ok := splitReference(tt.prefix, tt.raw)
			assert.Equal(t, tt.wantClaims, ok)
			assert.Equal(t, tt.wantPath, path)
		})
	}
}
