package secretsource

import (
	"context"
	"fmt"

	"cloud.google.com/go/secretmanager/apiv1/secretmanagerpb"

	"github.com/systmms/secretsource/internal/logging"
	"github.com/systmms/secretsource/internal/metrics"
)

// Options configures a Source.
type Options struct {
	// Prefix overrides prefix resolution entirely. Leave empty to resolve
	// from the environment, Properties, and DefaultPrefix in that order.
	Prefix string

	// Properties is the host's property table, consulted for
	// GCP_SECRET_MANAGER_PREFIX when the environment does not set it.
	Properties map[string]string

	// Client configures the production Secret Manager factory. Ignored
	// when Factory is set.
	Client ClientConfig

	// Factory opens the Secret Manager session for each fetch. Defaults
	// to NewClientFactory(Client). Tests substitute fakes here.
	Factory ClientFactory

	// Debug enables debug logging of cache hits and fetches. Secret
	// values are never logged.
	Debug bool
}

// Source resolves prefixed references against Secret Manager, caching values
// for its own lifetime. Construct one Source per resolution pass with New;
// the zero value is unusable and Resolve reports it as a contract violation.
type Source struct {
	prefix  string
	factory ClientFactory
	cache   *passCache
	logger  *logging.Logger
}

// New constructs a Source. The prefix is resolved once, here; changing the
// environment afterwards has no effect on an existing Source.
func New(opts Options) *Source {
	prefix := opts.Prefix
	if prefix == "" {
		prefix = configuredPrefix(opts.Properties)
	}
	factory := opts.Factory
	if factory == nil {
		factory = NewClientFactory(opts.Client)
	}
	logger := logging.New(opts.Debug, false)
	logger.Debug("secret source initialized with prefix: %s", prefix)

	return &Source{
		prefix:  prefix,
		factory: factory,
		cache:   newPassCache(),
		logger:  logger,
	}
}

// Prefix returns the reference prefix this source claims.
func (s *Source) Prefix() string {
	if s == nil {
		return ""
	}
	return s.prefix
}

// Resolve resolves one raw reference.
//
// References not carrying the configured prefix yield ("", false, nil): the
// reference belongs to some other source and that is not an error. Claimed
// references yield the secret value, from cache when the path was already
// resolved by this Source, otherwise from a fresh backend fetch whose payload
// is checksum-verified before being cached. All failures are *ResolveError.
func (s *Source) Resolve(ctx context.Context, raw string) (string, bool, error) {
	if s == nil || s.cache == nil {
		return "", false, &ResolveError{
			Kind:    KindContract,
			Message: "Resolve called on a nil or unconstructed Source",
		}
	}

	path, ok := splitReference(s.prefix, raw)
	if !ok {
		return "", false, nil
	}

	if value, ok := s.cache.lookup(path); ok {
		s.logger.Debug("read secret from cache: %s", path)
		metrics.RecordCacheHit()
		return value, true, nil
	}

	value, err := s.cache.resolve(path, func() (string, error) {
		return s.fetch(ctx, path)
	})
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

// fetch performs one verified backend fetch. The path is forwarded verbatim,
// the empty path included; malformed paths are the backend's to reject.
func (s *Source) fetch(ctx context.Context, path string) (string, error) {
	timer := metrics.StartFetch()

	client, err := s.factory(ctx)
	if err != nil {
		timer.Done(metrics.OutcomeClientError)
		return "", &ResolveError{
			Kind:    KindClient,
			Path:    path,
			Message: fmt.Sprintf("failed to open Secret Manager client for secret: %s", path),
			Err:     err,
		}
	}
	defer func() {
		if cerr := client.Close(); cerr != nil {
			s.logger.Debug("closing Secret Manager client: %v", cerr)
		}
	}()

	resp, err := client.AccessSecretVersion(ctx, &secretmanagerpb.AccessSecretVersionRequest{
		Name: path,
	})
	if err != nil {
		timer.Done(metrics.OutcomeBackendError)
		return "", &ResolveError{
			Kind:    KindBackend,
			Path:    path,
			Message: fmt.Sprintf("failed to access secret: %s", path),
			Err:     err,
		}
	}

	payload := resp.GetPayload()
	if payload == nil {
		timer.Done(metrics.OutcomeUnexpected)
		return "", &ResolveError{
			Kind:    KindUnexpected,
			Path:    path,
			Name:    resp.GetName(),
			Message: fmt.Sprintf("secret has no payload: %s", path),
		}
	}

	data := payload.GetData()
	if !checksumMatches(data, payload.GetDataCrc32C()) {
		timer.Done(metrics.OutcomeCorruption)
		return "", &ResolveError{
			Kind:    KindCorruption,
			Path:    path,
			Name:    resp.GetName(),
			Message: fmt.Sprintf("data corruption detected for secret: %s", resp.GetName()),
		}
	}

	timer.Done(metrics.OutcomeSuccess)
	s.logger.Debug("read secret from Secret Manager: %s", path)
	return string(data), nil
}
