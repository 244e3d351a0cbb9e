package secure

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSecureBufferRoundTrip(t *testing.T) {
	buf := NewSecureBuffer([]byte("secret-value"))
	defer buf.Destroy()

	locked, err := buf.Open()
	require.NoError(t, err)
	defer locked.Destroy()

	assert.Equal(t, []byte("secret-value"), locked.Bytes())
}

func TestSecureBufferOpenTwice(t *testing.T) {
	buf := NewSecureBuffer([]byte("again"))
	defer buf.Destroy()

	for i := 0; i < 2; i++ {
		locked, err := buf.Open()
		require.NoError(t, err)
		assert.Equal(t, []byte("again"), locked.Bytes())
		locked.Destroy()
	}
}

func TestSecureBufferDestroyIsIdempotent(t *testing.T) {
	buf := NewSecureBuffer([]byte("bye"))
	buf.Destroy()
	buf.Destroy()

	locked, err := buf.Open()
	require.NoError(t, err)
	defer locked.Destroy()
	assert.Empty(t, locked.Bytes())
}
