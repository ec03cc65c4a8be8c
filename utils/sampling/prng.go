package sampling

import (
	"crypto/rand"
	"io"
	"sync"

	"golang.org/x/crypto/blake2b"
)

// PRNG is a source of random bytes.
type PRNG interface {
	io.Reader
}

// ThreadSafePRNG reads from crypto/rand.
type ThreadSafePRNG struct{}

// NewPRNG returns a PRNG backed by crypto/rand that can be shared between goroutines.
func NewPRNG() *ThreadSafePRNG {
	return &ThreadSafePRNG{}
}

func (*ThreadSafePRNG) Read(p []byte) (int, error) {
	return rand.Read(p)
}

// KeyedPRNG expands a key into an unbounded deterministic stream with the
// blake2b XOF. Instances built from the same key yield the same bytes, which
// reproduces key pairs and paddings. It is not a source of secrets.
type KeyedPRNG struct {
	mu  sync.Mutex
	xof blake2b.XOF
}

// NewKeyedPRNG returns a KeyedPRNG seeded with key. A nil key is the empty key;
// keys longer than 64 bytes are rejected by blake2b.
func NewKeyedPRNG(key []byte) (*KeyedPRNG, error) {
	xof, err := blake2b.NewXOF(blake2b.OutputLengthUnknown, key)
	if err != nil {
		return nil, err
	}
	return &KeyedPRNG{xof: xof}, nil
}

// Read fills p with the next bytes of the stream. Concurrent readers share
// one stream, so each one sees an interleaving-dependent part of it.
func (prng *KeyedPRNG) Read(p []byte) (int, error) {
	prng.mu.Lock()
	defer prng.mu.Unlock()
	return prng.xof.Read(p)
}
