// Package cryptox wraps the symmetric ciphers used to encrypt secret
// records and the algorithm parameters stored next to each ciphertext.
package cryptox

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/gophvault/internal/common"
	"golang.org/x/crypto/chacha20"
)

// CipherKind names a stream cipher.
type CipherKind string

const (
	// AESCTR is AES in counter mode with a 16-byte IV.
	AESCTR CipherKind = "aes-ctr"
	// ChaCha20 is XChaCha20 with a 24-byte nonce.
	ChaCha20 CipherKind = "chacha20"
)

func (k CipherKind) String() string { return string(k) }

// ParseCipherKind maps a configuration value to a CipherKind.
func ParseCipherKind(s string) (CipherKind, error) {
	switch CipherKind(strings.ToLower(strings.TrimSpace(s))) {
	case AESCTR, "aes", "":
		return AESCTR, nil
	case ChaCha20, "xchacha20":
		return ChaCha20, nil
	default:
		return "", fmt.Errorf("%w: cipher %q", common.ErrUnsupportedAlgorithm, s)
	}
}

// DefaultKeySizeBits is the key size used when none is configured.
const DefaultKeySizeBits = 256

func ivSize(kind CipherKind) int {
	switch kind {
	case AESCTR:
		return aes.BlockSize
	case ChaCha20:
		return chacha20.NonceSizeX
	default:
		return 0
	}
}

func supported(kind CipherKind, keySizeBits int) bool {
	switch kind {
	case AESCTR:
		return keySizeBits == 128 || keySizeBits == 192 || keySizeBits == 256
	case ChaCha20:
		return keySizeBits == 256
	default:
		return false
	}
}

// CheckKeySize reports ErrUnsupportedAlgorithm when kind cannot run with a
// key of keySizeBits.
func CheckKeySize(kind CipherKind, keySizeBits int) error {
	if !supported(kind, keySizeBits) {
		return fmt.Errorf("%w: %s/%d", common.ErrUnsupportedAlgorithm, kind, keySizeBits)
	}
	return nil
}

// Algorithm is the plaintext metadata describing how a ciphertext was
// produced. It never carries key material.
type Algorithm struct {
	Kind        CipherKind `json:"kind" cbor:"kind"`
	KeySizeBits int        `json:"key_size_bits" cbor:"key_size_bits"`
	IV          []byte     `json:"iv" cbor:"iv"`
}

// GenerateAlgorithm returns parameters for kind and keySizeBits with a fresh
// random IV. Every call produces new IV material.
func GenerateAlgorithm(kind CipherKind, keySizeBits int) (Algorithm, error) {
	if err := CheckKeySize(kind, keySizeBits); err != nil {
		return Algorithm{}, err
	}

	iv := make([]byte, ivSize(kind))
	if _, err := rand.Read(iv); err != nil {
		return Algorithm{}, fmt.Errorf("generate iv: %w", err)
	}

	return Algorithm{Kind: kind, KeySizeBits: keySizeBits, IV: iv}, nil
}

// Validate checks the kind, key size and IV length.
func (a Algorithm) Validate() error {
	if !supported(a.Kind, a.KeySizeBits) {
		return fmt.Errorf("%w: %s/%d", common.ErrUnsupportedAlgorithm, a.Kind, a.KeySizeBits)
	}
	if len(a.IV) != ivSize(a.Kind) {
		return fmt.Errorf("%w: %s iv must be %d bytes, got %d", common.ErrUnsupportedAlgorithm, a.Kind, ivSize(a.Kind), len(a.IV))
	}
	return nil
}

// KeySize returns the key length in bytes.
func (a Algorithm) KeySize() int { return a.KeySizeBits / 8 }

// Bytes returns the canonical encoding of the parameters: kind, a zero
// byte, the key size as big-endian uint16 and the IV.
func (a Algorithm) Bytes() []byte {
	var b bytes.Buffer
	b.WriteString(string(a.Kind))
	b.WriteByte(0)
	_ = binary.Write(&b, binary.BigEndian, uint16(a.KeySizeBits))
	b.Write(a.IV)
	return b.Bytes()
}

// Equal reports whether both values describe the same parameters.
func (a Algorithm) Equal(o Algorithm) bool {
	return a.Kind == o.Kind && a.KeySizeBits == o.KeySizeBits && bytes.Equal(a.IV, o.IV)
}

// Clone returns a deep copy.
func (a Algorithm) Clone() Algorithm {
	a.IV = bytes.Clone(a.IV)
	return a
}

func (a Algorithm) String() string {
	return fmt.Sprintf("%s-%d", a.Kind, a.KeySizeBits)
}

// ValidateKey checks that key is non-empty and exactly as long as alg
// requires. It must be called before any cipher operation.
func ValidateKey(key []byte, alg Algorithm) error {
	if len(key) == 0 {
		return fmt.Errorf("%w: key is empty", common.ErrInvalidKey)
	}
	if alg.KeySizeBits <= 0 || len(key) != alg.KeySize() {
		return fmt.Errorf("%w: want %d bytes, got %d", common.ErrInvalidKey, alg.KeySize(), len(key))
	}
	return nil
}

// Encrypt encrypts plaintext under key using the parameters in alg.
//
// Both supported ciphers are unauthenticated stream ciphers, so the
// ciphertext has the same length as the plaintext. Integrity is provided by
// the record checksum and the structural check performed by the codec.
//
// Example:
//
//	alg, err := cryptox.GenerateAlgorithm(cryptox.AESCTR, 256)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	ct, err := cryptox.Encrypt([]byte("hello"), key, alg)
func Encrypt(plaintext, key []byte, alg Algorithm) ([]byte, error) {
	return xorKeyStream(plaintext, key, alg)
}

// Decrypt reverses Encrypt. Decrypting with the wrong key does not fail; it
// returns unrelated bytes.
func Decrypt(ciphertext, key []byte, alg Algorithm) ([]byte, error) {
	return xorKeyStream(ciphertext, key, alg)
}

func xorKeyStream(in, key []byte, alg Algorithm) ([]byte, error) {
	if err := ValidateKey(key, alg); err != nil {
		return nil, err
	}
	if err := alg.Validate(); err != nil {
		return nil, err
	}

	out := make([]byte, len(in))
	switch alg.Kind {
	case AESCTR:
		block, err := aes.NewCipher(key)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", common.ErrInvalidKey, err)
		}
		cipher.NewCTR(block, alg.IV).XORKeyStream(out, in)
	case ChaCha20:
		c, err := chacha20.NewUnauthenticatedCipher(key, alg.IV)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", common.ErrInvalidKey, err)
		}
		c.XORKeyStream(out, in)
	}
	return out, nil
}

// WipeBytes overwrites the contents of b with zeros. It is used to drop
// derived keys and passwords from memory once they are no longer needed.
//
// If the slice is nil, the function does nothing.
func WipeBytes(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
