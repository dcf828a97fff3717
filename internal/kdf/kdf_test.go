package kdf

import (
	"context"
	"encoding/hex"
	"testing"

	"github.com/dmitrijs2005/gophvault/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// cheap returns low-cost parameters so tests stay fast.
func cheap(alg Algorithm) Params {
	p := Params{Algorithm: alg, Salt: []byte("0123456789abcdef"), KeyLength: 32}
	switch alg {
	case Argon2id:
		p.Iterations, p.MemoryKiB, p.Parallelism = 1, 1024, 1
	case PBKDF2SHA256, PBKDF2SHA512:
		p.Iterations = 10
	case Scrypt:
		p.Iterations, p.BlockSize, p.Parallelism = 16, 1, 1
	}
	return p
}

func TestDeriveKey_KnownVectors(t *testing.T) {
	tests := []struct {
		name     string
		password string
		params   Params
		want     string
	}{
		{
			name:     "argon2id",
			password: "secret-password",
			params:   Params{Algorithm: Argon2id, Salt: []byte("fixed-salt"), Iterations: 1, MemoryKiB: 64 * 1024, Parallelism: 4, KeyLength: 32},
			want:     "34f7a1c64df63ab1ad5b5ee06e64db5713b35f81839823304db63e8e5e6a6a39",
		},
		{
			name:     "pbkdf2-sha256",
			password: "password",
			params:   Params{Algorithm: PBKDF2SHA256, Salt: []byte("salt"), Iterations: 1, KeyLength: 32},
			want:     "120fb6cffcf8b32c43e7225256c4f837a86548c92ccc35480805987cb70be17b",
		},
		{
			name:     "scrypt",
			password: "password",
			params:   Params{Algorithm: Scrypt, Salt: []byte("NaCl"), Iterations: 1024, BlockSize: 8, Parallelism: 16, KeyLength: 64},
			want: "fdbabe1c9d3472007856e7190d01e9fe7c6ad7cbc8237830e77376634b373162" +
				"2eaf30d92e22a3886ff109279d9830dac727afb94a83ee6d8360cbdfa2cc0640",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			e, err := NewEntryWithParams("primary", tc.params)
			require.NoError(t, err)

			key, err := e.DeriveKey(context.Background(), tc.password)
			require.NoError(t, err)
			assert.Equal(t, tc.want, hex.EncodeToString(key))
		})
	}
}

func TestDeriveKey_DeterministicAndSaltSensitive(t *testing.T) {
	ctx := context.Background()
	for _, alg := range []Algorithm{Argon2id, PBKDF2SHA256, PBKDF2SHA512, Scrypt} {
		t.Run(string(alg), func(t *testing.T) {
			e, err := NewEntryWithParams("k", cheap(alg))
			require.NoError(t, err)

			k1, err := e.DeriveKey(ctx, "pw")
			require.NoError(t, err)
			k2, err := e.DeriveKey(ctx, "pw")
			require.NoError(t, err)
			assert.Equal(t, k1, k2)
			assert.Len(t, k1, 32)

			other := e.Clone()
			other.Params.Salt[0] ^= 1
			k3, err := other.DeriveKey(ctx, "pw")
			require.NoError(t, err)
			assert.NotEqual(t, k1, k3)

			k4, err := e.DeriveKey(ctx, "pw2")
			require.NoError(t, err)
			assert.NotEqual(t, k1, k4)
		})
	}
}

func TestDeriveKey_Errors(t *testing.T) {
	e, err := NewEntryWithParams("k", cheap(PBKDF2SHA256))
	require.NoError(t, err)

	_, err = e.DeriveKey(context.Background(), "")
	require.ErrorIs(t, err, common.ErrEmptyPassword)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = e.DeriveKey(ctx, "pw")
	require.ErrorIs(t, err, context.Canceled)
}

func TestNewEntry_RandomSaltAndDefaults(t *testing.T) {
	e1, err := NewEntry("primary", Argon2id, 32)
	require.NoError(t, err)
	e2, err := NewEntry("primary", Argon2id, 32)
	require.NoError(t, err)

	assert.Len(t, e1.Params.Salt, SaltSize)
	assert.NotEqual(t, e1.Params.Salt, e2.Params.Salt)
	assert.Equal(t, uint32(64*1024), e1.Params.MemoryKiB)
	assert.Equal(t, 32, e1.KeyLength())
}

func TestParamsValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Params)
	}{
		{"no key length", func(p *Params) { p.KeyLength = 0 }},
		{"no salt", func(p *Params) { p.Salt = nil }},
		{"no iterations", func(p *Params) { p.Iterations = 0 }},
		{"unknown algorithm", func(p *Params) { p.Algorithm = "md5" }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := cheap(Argon2id)
			tc.mutate(&p)
			require.ErrorIs(t, p.Validate(), common.ErrUnsupportedAlgorithm)
		})
	}

	s := cheap(Scrypt)
	s.Iterations = 1000
	require.ErrorIs(t, s.Validate(), common.ErrUnsupportedAlgorithm)

	_, err := NewEntryWithParams("", cheap(Scrypt))
	require.Error(t, err)
}

func TestParseAlgorithm(t *testing.T) {
	a, err := ParseAlgorithm("SCRYPT")
	require.NoError(t, err)
	assert.Equal(t, Scrypt, a)

	a, err = ParseAlgorithm("")
	require.NoError(t, err)
	assert.Equal(t, Argon2id, a)

	_, err = ParseAlgorithm("bcrypt")
	require.ErrorIs(t, err, common.ErrUnsupportedAlgorithm)
}
