// Package fakes provides an in-memory Secret Manager client for tests.
package fakes

import (
	"context"
	"hash/crc32"
	"sync"

	"cloud.google.com/go/secretmanager/apiv1/secretmanagerpb"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/systmms/secretsource/pkg/secretsource"
)

var castagnoli = crc32.MakeTable(crc32.Castagnoli)

// SecretFixture is one secret version the fake can serve. Name is the
// canonical resource name returned to the caller; it may deliberately differ
// from the path the fixture is registered under.
type SecretFixture struct {
	Name   string
	Data   []byte
	Crc32C int64
}

// FakeSecretManagerClient implements secretsource.SecretManagerClient against
// in-memory fixtures. It counts accesses and closes so tests can assert on
// fetch and session lifecycle behavior. Safe for concurrent use.
type FakeSecretManagerClient struct {
	mu          sync.Mutex
	fixtures    map[string]*SecretFixture
	errors      map[string]error
	accessCalls map[string]int
	closeCalls  int
}

// NewFakeSecretManagerClient creates an empty fake.
func NewFakeSecretManagerClient() *FakeSecretManagerClient {
	return &FakeSecretManagerClient{
		fixtures:    make(map[string]*SecretFixture),
		errors:      make(map[string]error),
		accessCalls: make(map[string]int),
	}
}

// AddSecret registers a secret version at path with a correct advertised
// checksum and a canonical name equal to the path.
func (f *FakeSecretManagerClient) AddSecret(path, value string) {
	data := []byte(value)
	f.AddFixture(path, &SecretFixture{
		Name:   path,
		Data:   data,
		Crc32C: int64(crc32.Checksum(data, castagnoli)),
	})
}

// AddCorruptedSecret registers a secret version whose advertised checksum
// does not match its payload.
func (f *FakeSecretManagerClient) AddCorruptedSecret(path, value string, advertised int64) {
	f.AddFixture(path, &SecretFixture{
		Name:   path,
		Data:   []byte(value),
		Crc32C: advertised,
	})
}

// AddFixture registers an arbitrary fixture at path.
func (f *FakeSecretManagerClient) AddFixture(path string, fixture *SecretFixture) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fixtures[path] = fixture
}

// AddError configures an error to be returned for accesses of path.
func (f *FakeSecretManagerClient) AddError(path string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.errors[path] = err
}

// RemoveError clears a configured error, simulating a backend that has been
// fixed between calls.
func (f *FakeSecretManagerClient) RemoveError(path string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.errors, path)
}

// AccessSecretVersion implements secretsource.SecretManagerClient.
func (f *FakeSecretManagerClient) AccessSecretVersion(ctx context.Context, req *secretmanagerpb.AccessSecretVersionRequest) (*secretmanagerpb.AccessSecretVersionResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.accessCalls[req.Name]++

	if err, ok := f.errors[req.Name]; ok {
		return nil, err
	}

	fixture, ok := f.fixtures[req.Name]
	if !ok {
		return nil, status.Errorf(codes.NotFound, "Secret version %s not found", req.Name)
	}

	crc := fixture.Crc32C
	return &secretmanagerpb.AccessSecretVersionResponse{
		Name: fixture.Name,
		Payload: &secretmanagerpb.SecretPayload{
			Data:       fixture.Data,
			DataCrc32C: &crc,
		},
	}, nil
}

// Close implements secretsource.SecretManagerClient.
func (f *FakeSecretManagerClient) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closeCalls++
	return nil
}

// AccessCount returns how many times path was fetched.
func (f *FakeSecretManagerClient) AccessCount(path string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.accessCalls[path]
}

// TotalAccessCount returns the number of fetches across all paths.
func (f *FakeSecretManagerClient) TotalAccessCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	total := 0
	for _, n := range f.accessCalls {
		total += n
	}
	return total
}

// CloseCount returns how many sessions were released.
func (f *FakeSecretManagerClient) CloseCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closeCalls
}

// Factory returns a ClientFactory handing out client on every call.
func Factory(client secretsource.SecretManagerClient) secretsource.ClientFactory {
	return func(ctx context.Context) (secretsource.SecretManagerClient, error) {
		return client, nil
	}
}

// FailingFactory returns a ClientFactory that always fails with err,
// simulating authentication failure during client construction.
func FailingFactory(err error) secretsource.ClientFactory {
	return func(ctx context.Context) (secretsource.SecretManagerClient, error) {
		return nil, err
	}
}

// GCP error helpers

// PermissionDeniedError creates a permission denied backend error.
func PermissionDeniedError(message string) error {
	return status.Error(codes.PermissionDenied, message)
}

// NotFoundError creates a not found backend error.
func NotFoundError(path string) error {
	return status.Errorf(codes.NotFound, "Resource %s not found", path)
}

// InvalidArgumentError creates an invalid argument backend error.
func InvalidArgumentError(message string) error {
	return status.Error(codes.InvalidArgument, message)
}
