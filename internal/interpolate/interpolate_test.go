package interpolate

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/systmms/secretsource/internal/logging"
)

// mapResolver claims references with its prefix and counts resolutions.
type mapResolver struct {
	prefix  string
	secrets map[string]string
	err     error

	mu    sync.Mutex
	calls map[string]int
}

func newMapResolver(prefix string, secrets map[string]string) *mapResolver {
	return &mapResolver{
		prefix:  prefix,
		secrets: secrets,
		calls:   make(map[string]int),
	}
}

func (r *mapResolver) Resolve(ctx context.Context, raw string) (string, bool, error) {
	if !strings.HasPrefix(raw, r.prefix) {
		return "", false, nil
	}
	if r.err != nil {
		return "", false, r.err
	}
	key := strings.TrimPrefix(raw, r.prefix)

	r.mu.Lock()
	r.calls[key]++
	r.mu.Unlock()

	v, ok := r.secrets[key]
	if !ok {
		return "", false, errors.New("no such secret: " + key)
	}
	return v, true, nil
}

func testLogger() *logging.Logger {
	return logging.New(false, true)
}

func TestRenderSubstitutesReferences(t *testing.T) {
	resolver := newMapResolver("gcp:", map[string]string{
		"db-password": "hunter2",
		"api-key":     "abc123",
	})
	r := New(testLogger(), resolver)

	out, err := r.Render(context.Background(), "password: ${gcp:db-password}\nkey: ${gcp:api-key}\n")

	require.NoError(t, err)
	assert.Equal(t, "password: hunter2\nkey: abc123\n", out)
}

func TestRenderResolvesDuplicatesOnce(t *testing.T) {
	resolver := newMapResolver("gcp:", map[string]string{"shared": "v"})
	r := New(testLogger(), resolver)

	out, err := r.Render(context.Background(), "${gcp:shared} ${gcp:shared} ${gcp:shared}")

	require.NoError(t, err)
	assert.Equal(t, "v v v", out)
	assert.Equal(t, 1, resolver.calls["shared"])
}

func TestRenderLeavesUnclaimedReferencesIntact(t *testing.T) {
	resolver := newMapResolver("gcp:", map[string]string{"known": "v"})
	r := New(testLogger(), resolver)

	out, err := r.Render(context.Background(), "${vault:other} and ${gcp:known}")

	require.NoError(t, err)
	assert.Equal(t, "${vault:other} and v", out)
}

func TestRenderTriesSourcesInOrder(t *testing.T) {
	first := newMapResolver("a:", map[string]string{"x": "from-a"})
	second := newMapResolver("b:", map[string]string{"y": "from-b"})
	r := New(testLogger(), first, second)

	out, err := r.Render(context.Background(), "${a:x}/${b:y}")

	require.NoError(t, err)
	assert.Equal(t, "from-a/from-b", out)
}

func TestRenderPropagatesResolutionErrors(t *testing.T) {
	resolver := newMapResolver("gcp:", nil)
	resolver.err = errors.New("backend unavailable")
	r := New(testLogger(), resolver)

	_, err := r.Render(context.Background(), "value: ${gcp:broken}")

	require.Error(t, err)
	assert.ErrorIs(t, err, resolver.err)
	assert.Contains(t, err.Error(), "${gcp:broken}")
}

func TestRenderWithoutReferences(t *testing.T) {
	r := New(testLogger(), newMapResolver("gcp:", nil))

	out, err := r.Render(context.Background(), "plain text, no secrets")

	require.NoError(t, err)
	assert.Equal(t, "plain text, no secrets", out)
}

func TestUniqueReferences(t *testing.T) {
	refs := uniqueReferences("${a} ${b} ${a} $c ${} ${d}")
	assert.Equal(t, []string{"a", "b", "d"}, refs)
}
