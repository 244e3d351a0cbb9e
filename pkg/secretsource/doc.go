// Package secretsource resolves externally-referenced secret identifiers
// against Google Cloud Secret Manager for configuration-as-code workflows.
//
// A reference is a plain string of the form <prefix><path>, where the prefix
// identifies this source (default "gcpSecretManager:") and the path is a
// Secret Manager version resource such as
// "projects/p/secrets/my-secret/versions/latest". References that do not
// carry the configured prefix are not claimed: Resolve returns found=false
// without touching the network, letting other sources handle them.
//
// A Source caches resolved values for its own lifetime. The intended usage is
// one Source per configuration-resolution pass:
//
//	src := secretsource.New(secretsource.Options{})
//	value, found, err := src.Resolve(ctx, "gcpSecretManager:projects/p/secrets/db/versions/latest")
//
// Every fetched payload is verified against the CRC32C checksum advertised by
// the service before it is cached or returned. Failures are reported as
// *ResolveError values tagged with a Kind so callers can distinguish backend
// rejections from data corruption without matching on message text.
//
// A Source is safe for concurrent use. Concurrent misses on the same path are
// coalesced into a single backend fetch.
package secretsource
