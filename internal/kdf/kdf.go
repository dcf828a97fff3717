// Package kdf implements key-derivation entries: named parameter sets that
// turn a human password into a fixed-length derived key.
package kdf

import (
	"bytes"
	"context"
	"crypto/rand"
	"crypto/sha256"
	"crypto/sha512"
	"fmt"
	"hash"
	"strings"

	"github.com/dmitrijs2005/gophvault/internal/common"
	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/pbkdf2"
	"golang.org/x/crypto/scrypt"
)

// Algorithm names a password-based key-derivation function.
type Algorithm string

const (
	Argon2id     Algorithm = "argon2id"
	PBKDF2SHA256 Algorithm = "pbkdf2-sha256"
	PBKDF2SHA512 Algorithm = "pbkdf2-sha512"
	Scrypt       Algorithm = "scrypt"
)

// ParseAlgorithm maps a configuration value to an Algorithm.
func ParseAlgorithm(s string) (Algorithm, error) {
	a := Algorithm(strings.ToLower(strings.TrimSpace(s)))
	switch a {
	case Argon2id, PBKDF2SHA256, PBKDF2SHA512, Scrypt:
		return a, nil
	case "":
		return Argon2id, nil
	default:
		return "", fmt.Errorf("%w: kdf %q", common.ErrUnsupportedAlgorithm, s)
	}
}

// SaltSize is the length of salts generated by NewEntry.
const SaltSize = 16

// Params holds everything needed to reproduce a derived key except the
// password. Unused cost fields are zero.
type Params struct {
	Algorithm   Algorithm `json:"algorithm" cbor:"algorithm"`
	Salt        []byte    `json:"salt" cbor:"salt"`
	Iterations  uint32    `json:"iterations" cbor:"iterations"`
	MemoryKiB   uint32    `json:"memory_kib,omitempty" cbor:"memory_kib,omitempty"`
	Parallelism uint8     `json:"parallelism,omitempty" cbor:"parallelism,omitempty"`
	BlockSize   uint32    `json:"block_size,omitempty" cbor:"block_size,omitempty"`
	KeyLength   uint32    `json:"key_length" cbor:"key_length"`
}

// DefaultParams returns recommended costs for alg with the given key length
// and no salt.
func DefaultParams(alg Algorithm, keyLength uint32) Params {
	p := Params{Algorithm: alg, KeyLength: keyLength}
	switch alg {
	case Argon2id:
		p.Iterations, p.MemoryKiB, p.Parallelism = 1, 64*1024, 4
	case PBKDF2SHA256:
		p.Iterations = 600_000
	case PBKDF2SHA512:
		p.Iterations = 210_000
	case Scrypt:
		p.Iterations, p.BlockSize, p.Parallelism = 1<<15, 8, 1
	}
	return p
}

// Validate checks that the parameters can be used for derivation.
func (p Params) Validate() error {
	if p.KeyLength == 0 {
		return fmt.Errorf("%w: key length must be positive", common.ErrUnsupportedAlgorithm)
	}
	if len(p.Salt) == 0 {
		return fmt.Errorf("%w: salt is empty", common.ErrUnsupportedAlgorithm)
	}
	if p.Iterations == 0 {
		return fmt.Errorf("%w: iterations must be positive", common.ErrUnsupportedAlgorithm)
	}

	switch p.Algorithm {
	case Argon2id:
		if p.MemoryKiB == 0 || p.Parallelism == 0 {
			return fmt.Errorf("%w: argon2id needs memory and parallelism", common.ErrUnsupportedAlgorithm)
		}
	case PBKDF2SHA256, PBKDF2SHA512:
	case Scrypt:
		if p.Iterations < 2 || p.Iterations&(p.Iterations-1) != 0 {
			return fmt.Errorf("%w: scrypt cost must be a power of two", common.ErrUnsupportedAlgorithm)
		}
		if p.BlockSize == 0 || p.Parallelism == 0 {
			return fmt.Errorf("%w: scrypt needs block size and parallelism", common.ErrUnsupportedAlgorithm)
		}
	default:
		return fmt.Errorf("%w: kdf %q", common.ErrUnsupportedAlgorithm, p.Algorithm)
	}
	return nil
}

// Clone returns a deep copy.
func (p Params) Clone() Params {
	p.Salt = bytes.Clone(p.Salt)
	return p
}

// Entry is a named key-derivation context. Identifiers are compared by exact,
// case-sensitive string equality.
type Entry struct {
	Identifier string `json:"identifier" cbor:"identifier"`
	Params     Params `json:"params" cbor:"params"`
}

// NewEntry creates an entry with default costs for alg and a fresh random
// salt.
func NewEntry(identifier string, alg Algorithm, keyLength uint32) (Entry, error) {
	p := DefaultParams(alg, keyLength)
	p.Salt = make([]byte, SaltSize)
	if _, err := rand.Read(p.Salt); err != nil {
		return Entry{}, fmt.Errorf("generate salt: %w", err)
	}
	return NewEntryWithParams(identifier, p)
}

// NewEntryWithParams creates an entry from explicit parameters.
func NewEntryWithParams(identifier string, p Params) (Entry, error) {
	e := Entry{Identifier: identifier, Params: p.Clone()}
	if err := e.Validate(); err != nil {
		return Entry{}, err
	}
	return e, nil
}

// Validate checks the identifier and parameters.
func (e Entry) Validate() error {
	if e.Identifier == "" {
		return fmt.Errorf("key identifier cannot be empty")
	}
	return e.Params.Validate()
}

// KeyLength returns the derived key length in bytes.
func (e Entry) KeyLength() int { return int(e.Params.KeyLength) }

// Clone returns a deep copy.
func (e Entry) Clone() Entry {
	e.Params = e.Params.Clone()
	return e
}

// DeriveKey derives exactly KeyLength bytes from password. The same password
// and parameters always yield the same key. The derivation itself is not
// interruptible; ctx is checked before it starts and after it ends.
func (e Entry) DeriveKey(ctx context.Context, password string) ([]byte, error) {
	if password == "" {
		return nil, common.ErrEmptyPassword
	}
	if err := e.Params.Validate(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	key, err := derive([]byte(password), e.Params)
	if err != nil {
		return nil, fmt.Errorf("derive key %q: %w", e.Identifier, err)
	}

	if err := ctx.Err(); err != nil {
		for i := range key {
			key[i] = 0
		}
		return nil, err
	}
	return key, nil
}

func derive(pw []byte, p Params) ([]byte, error) {
	switch p.Algorithm {
	case Argon2id:
		return argon2.IDKey(pw, p.Salt, p.Iterations, p.MemoryKiB, p.Parallelism, p.KeyLength), nil
	case PBKDF2SHA256:
		return pbkdf2.Key(pw, p.Salt, int(p.Iterations), int(p.KeyLength), sha256.New), nil
	case PBKDF2SHA512:
		return pbkdf2.Key(pw, p.Salt, int(p.Iterations), int(p.KeyLength), func() hash.Hash { return sha512.New() }), nil
	case Scrypt:
		return scrypt.Key(pw, p.Salt, int(p.Iterations), int(p.BlockSize), int(p.Parallelism), int(p.KeyLength))
	default:
		return nil, fmt.Errorf("%w: kdf %q", common.ErrUnsupportedAlgorithm, p.Algorithm)
	}
}
