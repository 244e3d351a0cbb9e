package secretsource

import "strings"

// splitReference reports whether raw is addressed to a source configured with
// prefix, and if so returns the backend path (the remainder after the prefix,
// which may be empty). An empty prefix never matches: a misconfigured source
// must not claim every reference in the document.
func splitReference(prefix, raw string) (string, bool) {
	if prefix == "" {
		return "", false
	}
	if !strings.HasPrefix(raw, prefix) {
		return "", false
	}
	return raw[len(prefix):], true
}
