// Package secure keeps resolved secret values in protected memory between
// fetch and output.
package secure

import (
	"sync"

	"github.com/awnumar/memguard"
)

// SecureBuffer stores a secret value encrypted at rest in memory, backed by a
// memguard enclave (XSalsa20Poly1305, mlock where available, guard pages).
//
// The enclave has no destroy primitive of its own; Destroy marks the buffer
// unusable and leaves final cleanup to memguard.Purge at process exit.
type SecureBuffer struct {
	enclave   *memguard.Enclave
	mu        sync.RWMutex
	destroyed bool
}

// NewSecureBuffer copies data into a protected region. The caller still owns
// the original slice and should zero it.
func NewSecureBuffer(data []byte) *SecureBuffer {
	return &SecureBuffer{enclave: memguard.NewEnclave(data)}
}

// Open decrypts the value into a locked buffer. The caller MUST call
// Destroy() on the returned buffer to wipe the plaintext.
//
// After the SecureBuffer itself has been destroyed, Open returns an empty
// locked buffer rather than failing.
func (s *SecureBuffer) Open() (*memguard.LockedBuffer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.destroyed {
		return memguard.NewBufferFromBytes([]byte{}), nil
	}
	return s.enclave.Open()
}

// Destroy marks the buffer unusable. Idempotent.
func (s *SecureBuffer) Destroy() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.destroyed {
		return
	}
	s.enclave = nil
	s.destroyed = true
}
