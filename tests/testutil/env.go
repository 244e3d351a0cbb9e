// Package testutil holds small helpers shared across test packages.
package testutil

import "testing"

// SetEnv sets environment variables for the duration of a test, restoring
// the previous values automatically via t.Setenv.
func SetEnv(t *testing.T, vars map[string]string) {
	t.Helper()
	for key, value := range vars {
		t.Setenv(key, value)
	}
}
