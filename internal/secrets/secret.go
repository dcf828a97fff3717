package secrets

import (
	"bytes"
	"fmt"
	"time"

	"github.com/dmitrijs2005/gophvault/internal/common"
	"github.com/dmitrijs2005/gophvault/internal/cryptox"
	"github.com/dmitrijs2005/gophvault/internal/fields"
	"github.com/dmitrijs2005/gophvault/internal/records"
)

// Decoder rebuilds a plaintext record from its field map.
type Decoder[R records.Record] func(m fields.Map, opts ...records.Option) (R, error)

// Secret is the encrypted form of a plaintext record of type R.
type Secret[R records.Record] struct {
	suite  Suite
	kind   records.Kind
	schema fields.Schema
	decode Decoder[R]

	keyIdentifier []byte
	algorithm     cryptox.Algorithm
	ciphertext    []byte
	checksum      string
}

// Sealed is the persisted form of a secret.
type Sealed struct {
	Kind          records.Kind      `json:"kind" cbor:"kind"`
	KeyIdentifier string            `json:"key_identifier" cbor:"key_identifier"`
	Algorithm     cryptox.Algorithm `json:"algorithm" cbor:"algorithm"`
	Ciphertext    []byte            `json:"ciphertext" cbor:"ciphertext"`
	Checksum      string            `json:"checksum" cbor:"checksum"`
}

func newSecret[R records.Record](suite Suite, kind records.Kind, decode Decoder[R], m fields.Map, keyIdentifier string, alg cryptox.Algorithm, derivedKey []byte) (Secret[R], error) {
	if err := cryptox.ValidateKey(derivedKey, alg); err != nil {
		return Secret[R]{}, err
	}

	s := Secret[R]{
		suite:         suite.WithDefaults(),
		kind:          kind,
		schema:        records.SchemaFor(kind),
		decode:        decode,
		keyIdentifier: []byte(keyIdentifier),
	}
	if err := s.seal(m, alg, derivedKey); err != nil {
		return Secret[R]{}, err
	}
	return s, nil
}

func restore[R records.Record](suite Suite, kind records.Kind, decode Decoder[R], sealed Sealed) (Secret[R], error) {
	if sealed.Kind != kind {
		return Secret[R]{}, fmt.Errorf("%w: sealed %s is not a %s", common.ErrMalformedPayload, sealed.Kind, kind)
	}
	if err := sealed.Algorithm.Validate(); err != nil {
		return Secret[R]{}, err
	}
	return Secret[R]{
		suite:         suite.WithDefaults(),
		kind:          kind,
		schema:        records.SchemaFor(kind),
		decode:        decode,
		keyIdentifier: []byte(sealed.KeyIdentifier),
		algorithm:     sealed.Algorithm.Clone(),
		ciphertext:    bytes.Clone(sealed.Ciphertext),
		checksum:      sealed.Checksum,
	}, nil
}

// seal serializes m, encrypts it under alg and derivedKey and replaces the
// secret's payload. On error the secret is unchanged.
func (s *Secret[R]) seal(m fields.Map, alg cryptox.Algorithm, derivedKey []byte) error {
	plain, err := s.suite.Codec.Marshal(m)
	if err != nil {
		return fmt.Errorf("serialize %s: %w", s.kind, err)
	}
	defer cryptox.WipeBytes(plain)

	ct, err := cryptox.Encrypt(plain, derivedKey, alg)
	if err != nil {
		return fmt.Errorf("encrypt %s: %w", s.kind, err)
	}

	s.algorithm = alg.Clone()
	s.ciphertext = ct
	s.checksum = s.CalculateChecksum()
	return nil
}

func (s *Secret[R]) Kind() records.Kind { return s.kind }

// KeyIdentifier names the key-derivation entry the secret was encrypted
// under.
func (s *Secret[R]) KeyIdentifier() string { return string(s.keyIdentifier) }

func (s *Secret[R]) Algorithm() cryptox.Algorithm { return s.algorithm.Clone() }

func (s *Secret[R]) Ciphertext() []byte { return bytes.Clone(s.ciphertext) }

func (s *Secret[R]) Checksum() string { return s.checksum }

// CalculateChecksum hashes the key identifier, the ciphertext and the
// algorithm parameters, in that order.
func (s *Secret[R]) CalculateChecksum() string {
	return s.suite.Hasher.Sum(s.keyIdentifier, s.ciphertext, s.algorithm.Bytes())
}

// CheckChecksum reports whether the stored checksum matches the content. A
// secret that fails this check must not be trusted.
func (s *Secret[R]) CheckChecksum() bool {
	return s.checksum == s.CalculateChecksum()
}

// GetFields decrypts and decodes the field map.
func (s *Secret[R]) GetFields(derivedKey []byte) (fields.Map, error) {
	if err := cryptox.ValidateKey(derivedKey, s.algorithm); err != nil {
		return nil, err
	}

	plain, err := cryptox.Decrypt(s.ciphertext, derivedKey, s.algorithm)
	if err != nil {
		return nil, err
	}
	defer cryptox.WipeBytes(plain)

	m, err := s.suite.Codec.Unmarshal(plain)
	if err != nil {
		return nil, err
	}
	return m, nil
}

// Get decrypts the secret and rebuilds the plaintext record.
func (s *Secret[R]) Get(derivedKey []byte) (R, error) {
	var zero R
	m, err := s.GetFields(derivedKey)
	if err != nil {
		return zero, err
	}
	rec, err := s.decode(m, s.suite.RecordOptions()...)
	if err != nil {
		return zero, fmt.Errorf("%w: %v", common.ErrMalformedPayload, err)
	}
	return rec, nil
}

// CanBeDecryptedWithDerivedKey reports whether derivedKey opens the secret.
// It never returns an error.
func (s *Secret[R]) CanBeDecryptedWithDerivedKey(derivedKey []byte) bool {
	_, err := s.GetFields(derivedKey)
	return err == nil
}

// Set replaces one field and re-encrypts the whole record under a fresh
// IV. Unless the field is the creation or modification time itself, the
// modification time is set to now as well.
//
// The returned error wraps common.ErrInvalidKey, common.ErrMalformedPayload,
// common.ErrUnknownField or common.ErrFieldKind. When it is non-nil the
// secret is exactly as it was before the call.
func (s *Secret[R]) Set(fieldKey string, value fields.Value, derivedKey []byte) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: set %s: %v", common.ErrMalformedPayload, fieldKey, r)
		}
	}()

	m, err := s.GetFields(derivedKey)
	if err != nil {
		return err
	}
	if err := s.checkAssignment(m, fieldKey, value); err != nil {
		return err
	}

	m[fieldKey] = value
	if fieldKey != records.KeyCreationTime && fieldKey != records.KeyModificationTime {
		m[records.KeyModificationTime] = fields.Time(s.nextModificationTime(m))
	}

	alg, err := cryptox.GenerateAlgorithm(s.algorithm.Kind, s.algorithm.KeySizeBits)
	if err != nil {
		return err
	}

	scratch := *s
	if err := scratch.seal(m, alg, derivedKey); err != nil {
		return err
	}
	*s = scratch
	return nil
}

// checkAssignment accepts schema fields of the right kind, and keys already
// present in a free-form map as long as the kind is unchanged.
func (s *Secret[R]) checkAssignment(m fields.Map, key string, v fields.Value) error {
	if _, ok := s.schema.Lookup(key); ok {
		return s.schema.Check(key, v)
	}
	cur, ok := m[key]
	if !ok {
		return fmt.Errorf("%w: %s", common.ErrUnknownField, key)
	}
	if cur.Kind() != v.Kind() {
		return fmt.Errorf("%w: %s is %s, want %s", common.ErrFieldKind, key, v.Kind(), cur.Kind())
	}
	return nil
}

func (s *Secret[R]) nextModificationTime(m fields.Map) time.Time {
	now := s.suite.Clock.Now().UTC()
	if prev := m.Time(records.KeyModificationTime); now.Before(prev) {
		now = prev
	}
	if created := m.Time(records.KeyCreationTime); now.Before(created) {
		now = created
	}
	return now
}

// Seal returns the persisted form of the secret.
func (s *Secret[R]) Seal() Sealed {
	return Sealed{
		Kind:          s.kind,
		KeyIdentifier: string(s.keyIdentifier),
		Algorithm:     s.algorithm.Clone(),
		Ciphertext:    bytes.Clone(s.ciphertext),
		Checksum:      s.checksum,
	}
}

func (s *Secret[R]) clone() Secret[R] {
	c := *s
	c.keyIdentifier = bytes.Clone(s.keyIdentifier)
	c.algorithm = s.algorithm.Clone()
	c.ciphertext = bytes.Clone(s.ciphertext)
	return c
}

func (s *Secret[R]) getString(derivedKey []byte, key string) (string, error) {
	m, err := s.GetFields(derivedKey)
	if err != nil {
		return "", err
	}
	return m.String(key), nil
}

func (s *Secret[R]) getList(derivedKey []byte, key string) ([]string, error) {
	v, err := s.getString(derivedKey, key)
	if err != nil {
		return nil, err
	}
	return records.SplitMulti(v), nil
}

func (s *Secret[R]) setString(key, v string, derivedKey []byte) error {
	return s.Set(key, fields.String(v), derivedKey)
}

func (s *Secret[R]) setList(key string, v []string, derivedKey []byte) error {
	return s.Set(key, fields.String(records.JoinMulti(v)), derivedKey)
}
