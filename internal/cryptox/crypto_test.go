package cryptox

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/dmitrijs2005/gophvault/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func key(n int, fill byte) []byte { return bytes.Repeat([]byte{fill}, n) }

func TestGenerateAlgorithm_FreshIV(t *testing.T) {
	tests := []struct {
		kind   CipherKind
		bits   int
		ivSize int
	}{
		{AESCTR, 128, 16},
		{AESCTR, 192, 16},
		{AESCTR, 256, 16},
		{ChaCha20, 256, 24},
	}
	for _, tc := range tests {
		t.Run(fmt.Sprintf("%s/%d", tc.kind, tc.bits), func(t *testing.T) {
			a1, err := GenerateAlgorithm(tc.kind, tc.bits)
			require.NoError(t, err)
			a2, err := GenerateAlgorithm(tc.kind, tc.bits)
			require.NoError(t, err)

			assert.Len(t, a1.IV, tc.ivSize)
			assert.NotEqual(t, a1.IV, a2.IV)
			assert.False(t, a1.Equal(a2))
			assert.NoError(t, a1.Validate())
		})
	}
}

func TestGenerateAlgorithm_Unsupported(t *testing.T) {
	_, err := GenerateAlgorithm(AESCTR, 512)
	require.ErrorIs(t, err, common.ErrUnsupportedAlgorithm)
	_, err = GenerateAlgorithm(ChaCha20, 128)
	require.ErrorIs(t, err, common.ErrUnsupportedAlgorithm)
	_, err = GenerateAlgorithm("rot13", 256)
	require.ErrorIs(t, err, common.ErrUnsupportedAlgorithm)
}

func TestCheckKeySize(t *testing.T) {
	tests := []struct {
		kind CipherKind
		bits int
		ok   bool
	}{
		{AESCTR, 128, true},
		{AESCTR, 192, true},
		{AESCTR, 256, true},
		{AESCTR, 160, false},
		{ChaCha20, 256, true},
		{ChaCha20, 128, false},
		{"rot13", 256, false},
	}
	for _, tt := range tests {
		err := CheckKeySize(tt.kind, tt.bits)
		if tt.ok {
			assert.NoError(t, err, "%s/%d", tt.kind, tt.bits)
		} else {
			assert.ErrorIs(t, err, common.ErrUnsupportedAlgorithm, "%s/%d", tt.kind, tt.bits)
		}
	}
}

func TestEncryptDecrypt_RoundTrip(t *testing.T) {
	plain := []byte("attack at dawn, bring coffee")
	for _, kind := range []CipherKind{AESCTR, ChaCha20} {
		t.Run(string(kind), func(t *testing.T) {
			alg, err := GenerateAlgorithm(kind, 256)
			require.NoError(t, err)
			k := key(32, 0x42)

			ct, err := Encrypt(plain, k, alg)
			require.NoError(t, err)
			assert.Len(t, ct, len(plain))
			assert.NotEqual(t, plain, ct)

			pt, err := Decrypt(ct, k, alg)
			require.NoError(t, err)
			assert.Equal(t, plain, pt)

			// wrong key decrypts to garbage without failing
			garbage, err := Decrypt(ct, key(32, 0x43), alg)
			require.NoError(t, err)
			assert.NotEqual(t, plain, garbage)
		})
	}
}

func TestEncrypt_SameKeyDifferentIV(t *testing.T) {
	k := key(16, 1)
	a1, _ := GenerateAlgorithm(AESCTR, 128)
	a2, _ := GenerateAlgorithm(AESCTR, 128)
	plain := []byte("same plaintext")

	c1, err := Encrypt(plain, k, a1)
	require.NoError(t, err)
	c2, err := Encrypt(plain, k, a2)
	require.NoError(t, err)
	assert.NotEqual(t, c1, c2)
}

func TestValidateKey(t *testing.T) {
	alg, err := GenerateAlgorithm(AESCTR, 256)
	require.NoError(t, err)

	require.NoError(t, ValidateKey(key(32, 1), alg))
	require.ErrorIs(t, ValidateKey(nil, alg), common.ErrInvalidKey)
	require.ErrorIs(t, ValidateKey([]byte{}, alg), common.ErrInvalidKey)
	require.ErrorIs(t, ValidateKey(key(16, 1), alg), common.ErrInvalidKey)

	_, err = Encrypt([]byte("x"), key(31, 1), alg)
	require.ErrorIs(t, err, common.ErrInvalidKey)
}

func TestEncrypt_BadIV(t *testing.T) {
	alg := Algorithm{Kind: AESCTR, KeySizeBits: 256, IV: []byte{1, 2, 3}}
	_, err := Encrypt([]byte("x"), key(32, 1), alg)
	require.ErrorIs(t, err, common.ErrUnsupportedAlgorithm)
}

func TestAlgorithm_BytesAndClone(t *testing.T) {
	alg, err := GenerateAlgorithm(ChaCha20, 256)
	require.NoError(t, err)

	b := alg.Bytes()
	assert.True(t, bytes.HasPrefix(b, []byte("chacha20\x00\x01\x00")))
	assert.True(t, bytes.HasSuffix(b, alg.IV))

	c := alg.Clone()
	require.True(t, c.Equal(alg))
	c.IV[0] ^= 0xff
	assert.False(t, c.Equal(alg))
	assert.NotEqual(t, alg.Bytes(), c.Bytes())

	other := alg.Clone()
	other.KeySizeBits = 128
	assert.NotEqual(t, alg.Bytes(), other.Bytes())
	assert.Equal(t, "chacha20-256", alg.String())
}

func TestParseCipherKind(t *testing.T) {
	k, err := ParseCipherKind("AES-CTR")
	require.NoError(t, err)
	assert.Equal(t, AESCTR, k)

	k, err = ParseCipherKind("xchacha20")
	require.NoError(t, err)
	assert.Equal(t, ChaCha20, k)

	_, err = ParseCipherKind("des")
	require.ErrorIs(t, err, common.ErrUnsupportedAlgorithm)
}

func TestWipeBytes(t *testing.T) {
	b := []byte{1, 2, 3}
	WipeBytes(b)
	assert.Equal(t, []byte{0, 0, 0}, b)
	WipeBytes(nil)
}
