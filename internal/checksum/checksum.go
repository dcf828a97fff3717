// Package checksum computes the hex digests used to detect tampering with
// plaintext and secret records.
package checksum

import (
	"encoding/hex"
	"fmt"
	"hash"

	"github.com/zeebo/blake3"
)

// KeySize is the key length accepted by NewKeyedBlake3.
const KeySize = 32

// Hasher returns a fixed-length lower-case hex digest over the
// concatenation of parts, in the given order.
type Hasher interface {
	Sum(parts ...[]byte) string
}

// HasherFunc adapts a function to the Hasher interface.
type HasherFunc func(parts ...[]byte) string

func (f HasherFunc) Sum(parts ...[]byte) string { return f(parts...) }

type blake3Hasher struct {
	key []byte
}

// Blake3 returns an unkeyed BLAKE3-256 hasher.
func Blake3() Hasher { return blake3Hasher{} }

// NewKeyedBlake3 returns a BLAKE3 keyed hasher. The key must be exactly
// KeySize bytes.
func NewKeyedBlake3(key []byte) (Hasher, error) {
	if len(key) != KeySize {
		return nil, fmt.Errorf("blake3 key must be %d bytes, got %d", KeySize, len(key))
	}
	k := make([]byte, KeySize)
	copy(k, key)
	return blake3Hasher{key: k}, nil
}

func (b blake3Hasher) Sum(parts ...[]byte) string {
	var h hash.Hash
	if b.key != nil {
		keyed, err := blake3.NewKeyed(b.key)
		if err != nil {
			// key length is checked in NewKeyedBlake3
			panic("checksum: blake3 keyed init: " + err.Error())
		}
		h = keyed
	} else {
		h = blake3.New()
	}
	for _, p := range parts {
		h.Write(p)
	}
	return hex.EncodeToString(h.Sum(nil))
}
