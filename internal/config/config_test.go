package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFullConfig(t *testing.T) {
	cfg, err := Parse([]byte(`
prefix: "myprefix:"
properties:
  GCP_SECRET_MANAGER_PREFIX: "prop:"
credentials_file: ~/keys/sa.json
impersonate_service_account: deploy@p.iam.gserviceaccount.com
`))

	require.NoError(t, err)
	assert.Equal(t, "myprefix:", cfg.Prefix)
	assert.Equal(t, "prop:", cfg.Properties["GCP_SECRET_MANAGER_PREFIX"])
	assert.Equal(t, "~/keys/sa.json", cfg.CredentialsFile)
	assert.Equal(t, "deploy@p.iam.gserviceaccount.com", cfg.ImpersonateServiceAccount)
}

func TestParseEmptyConfig(t *testing.T) {
	cfg, err := Parse([]byte(""))
	require.NoError(t, err)
	assert.Equal(t, &Config{}, cfg)
}

func TestParseRejectsUnknownKeys(t *testing.T) {
	_, err := Parse([]byte("prefixx: oops\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "schema validation failed")
}

func TestParseRejectsWrongTypes(t *testing.T) {
	_, err := Parse([]byte("prefix: 5\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "schema validation failed")
}

func TestParseRejectsInvalidYAML(t *testing.T) {
	_, err := Parse([]byte("prefix: [unclosed\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid YAML")
}

func TestLoadMissingDefaultIsNotAnError(t *testing.T) {
	// Pre-Go 1.24 equivalent of t.Chdir(t.TempDir()).
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	cfg, err := Load(DefaultPath)
	require.NoError(t, err)
	assert.Equal(t, &Config{}, cfg)
}

func TestLoadMissingExplicitFileFails(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot read config file")
}

func TestLoadReadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "secretsource.yaml")
	require.NoError(t, os.WriteFile(path, []byte("prefix: \"env:\"\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "env:", cfg.Prefix)
}
