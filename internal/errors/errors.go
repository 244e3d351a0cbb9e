// Package errors carries the user-facing error types the CLI prints,
// including remediation hints for common Secret Manager failures.
package errors

import (
	"fmt"
	"strings"
)

// UserError is an error worth showing to a human, with optional detail and a
// remediation hint.
type UserError struct {
	Message    string
	Details    string
	Suggestion string
	Err        error
}

func (e UserError) Error() string {
	var parts []string

	if e.Message != "" {
		parts = append(parts, e.Message)
	} else if e.Err != nil {
		parts = append(parts, e.Err.Error())
	}

	if e.Details != "" {
		parts = append(parts, "\n  Details: "+e.Details)
	}

	if e.Suggestion != "" {
		parts = append(parts, "\n  💡 Try: "+e.Suggestion)
	}

	return strings.Join(parts, "")
}

func (e UserError) Unwrap() error {
	return e.Err
}

// ConfigError reports a bad configuration value.
type ConfigError struct {
	Field      string
	Value      interface{}
	Message    string
	Suggestion string
}

func (e ConfigError) Error() string {
	msg := "Configuration error"
	if e.Field != "" {
		msg += fmt.Sprintf(" in field '%s'", e.Field)
	}
	if e.Value != nil {
		msg += fmt.Sprintf(" (value: %v)", e.Value)
	}
	msg += ": " + e.Message

	if e.Suggestion != "" {
		msg += "\n  💡 " + e.Suggestion
	}

	return msg
}

// ResolutionError wraps a failed secret resolution for CLI display.
func ResolutionError(reference string, err error) error {
	return UserError{
		Message:    fmt.Sprintf("Failed to resolve secret reference: %s", reference),
		Details:    err.Error(),
		Suggestion: GCPSuggestion(err),
		Err:        err,
	}
}

// GCPSuggestion maps common Secret Manager failures to remediation hints.
func GCPSuggestion(err error) string {
	errStr := err.Error()

	switch {
	case strings.Contains(errStr, "PermissionDenied"):
		return "Check IAM permissions: secretmanager.versions.access on the secret"
	case strings.Contains(errStr, "NotFound"):
		return "Verify the secret path. Expected form: projects/<project>/secrets/<name>/versions/<version>"
	case strings.Contains(errStr, "Unauthenticated"):
		return "Check authentication: set GOOGLE_APPLICATION_CREDENTIALS or run 'gcloud auth application-default login'"
	case strings.Contains(errStr, "InvalidArgument"):
		return "Check the secret path format and version specification"
	case strings.Contains(errStr, "ResourceExhausted"):
		return "Request was throttled. Wait a moment and try again"
	case strings.Contains(errStr, "data corruption"):
		return "The payload failed its CRC32C check. Retry the fetch; if it persists, inspect the secret version"
	default:
		return "Check GCP credentials, project ID, and IAM permissions for Secret Manager"
	}
}
