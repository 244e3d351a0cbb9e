// Package config loads the optional secretsource.yaml CLI configuration.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"

	sserrors "github.com/systmms/secretsource/internal/errors"
)

// DefaultPath is the config file looked for when --config is not given.
const DefaultPath = "secretsource.yaml"

// Config is the on-disk CLI configuration. Every field is optional; the
// zero value yields default behavior (default prefix, application default
// credentials).
type Config struct {
	// Prefix overrides reference-prefix resolution entirely.
	Prefix string `yaml:"prefix,omitempty"`

	// Properties is consulted for GCP_SECRET_MANAGER_PREFIX when the
	// environment does not set it, standing in for host process
	// properties.
	Properties map[string]string `yaml:"properties,omitempty"`

	// CredentialsFile points at a service account key file.
	CredentialsFile string `yaml:"credentials_file,omitempty"`

	// ImpersonateServiceAccount exchanges base credentials for tokens of
	// the named service account.
	ImpersonateServiceAccount string `yaml:"impersonate_service_account,omitempty"`
}

// schema guards against typoed keys and wrong types before any of the values
// reach the resolver.
const schema = `{
  "type": "object",
  "additionalProperties": false,
  "properties": {
    "prefix": {"type": "string"},
    "properties": {
      "type": "object",
      "additionalProperties": {"type": "string"}
    },
    "credentials_file": {"type": "string"},
    "impersonate_service_account": {"type": "string"}
  }
}`

// Load reads and validates the config at path. A missing file at the default
// path is not an error; an explicitly named file must exist.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && path == DefaultPath {
			return &Config{}, nil
		}
		return nil, sserrors.ConfigError{
			Field:      "config",
			Value:      path,
			Message:    "cannot read config file",
			Suggestion: "Check the path given with --config",
		}
	}
	return Parse(data)
}

// Parse validates raw YAML against the schema and unmarshals it.
func Parse(data []byte) (*Config, error) {
	var doc map[string]interface{}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, sserrors.ConfigError{
			Field:      "config",
			Message:    fmt.Sprintf("invalid YAML: %v", err),
			Suggestion: "Check for indentation errors and missing quotes",
		}
	}

	if doc != nil {
		if err := validate(doc); err != nil {
			return nil, err
		}
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	return cfg, nil
}

func validate(doc map[string]interface{}) error {
	jsonData, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to marshal config for validation: %w", err)
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(schema),
		gojsonschema.NewBytesLoader(jsonData),
	)
	if err != nil {
		return fmt.Errorf("schema validation error: %w", err)
	}

	if !result.Valid() {
		var msgs []string
		for _, desc := range result.Errors() {
			msgs = append(msgs, desc.String())
		}
		return sserrors.ConfigError{
			Field:      "config",
			Message:    "schema validation failed:\n  - " + strings.Join(msgs, "\n  - "),
			Suggestion: "Allowed keys: prefix, properties, credentials_file, impersonate_service_account",
		}
	}
	return nil
}
