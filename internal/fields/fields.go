// Package fields defines the tagged-variant field mapping that plaintext
// records are flattened into before serialization and encryption.
//
// A Value holds exactly one of a string, a byte slice or a timestamp. A Map
// associates field names with values and a Schema enumerates the names and
// kinds a record kind expects, so decoding never needs unchecked casts.
package fields

import (
	"bytes"
	"fmt"
	"time"

	"github.com/dmitrijs2005/gophvault/internal/common"
)

// Kind identifies which variant a Value carries.
type Kind uint8

const (
	KindString Kind = iota + 1
	KindBytes
	KindTime
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindBytes:
		return "bytes"
	case KindTime:
		return "time"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Value is an immutable tagged variant. The zero Value has no kind and is
// rejected by the codecs.
type Value struct {
	kind Kind
	s    string
	b    []byte
	t    time.Time
}

// String returns a string Value.
func String(s string) Value { return Value{kind: KindString, s: s} }

// Bytes returns a bytes Value holding a copy of b. A nil slice is stored as
// an empty one.
func Bytes(b []byte) Value {
	c := make([]byte, len(b))
	copy(c, b)
	return Value{kind: KindBytes, b: c}
}

// Time returns a timestamp Value. The time is normalized to UTC, which also
// drops the monotonic clock reading, so it survives a round trip unchanged.
func Time(t time.Time) Value { return Value{kind: KindTime, t: t.UTC()} }

// Kind reports the variant held by v.
func (v Value) Kind() Kind { return v.kind }

// AsString returns the string held by v.
func (v Value) AsString() (string, bool) {
	return v.s, v.kind == KindString
}

// AsBytes returns a copy of the bytes held by v.
func (v Value) AsBytes() ([]byte, bool) {
	if v.kind != KindBytes {
		return nil, false
	}
	c := make([]byte, len(v.b))
	copy(c, v.b)
	return c, true
}

// AsTime returns the timestamp held by v.
func (v Value) AsTime() (time.Time, bool) {
	return v.t, v.kind == KindTime
}

// Equal reports whether two values carry the same kind and content.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindString:
		return v.s == o.s
	case KindBytes:
		return bytes.Equal(v.b, o.b)
	case KindTime:
		return v.t.Equal(o.t)
	default:
		return true
	}
}

func (v Value) GoString() string {
	switch v.kind {
	case KindString:
		return fmt.Sprintf("fields.String(%q)", v.s)
	case KindBytes:
		return fmt.Sprintf("fields.Bytes(%d bytes)", len(v.b))
	case KindTime:
		return fmt.Sprintf("fields.Time(%s)", v.t.Format(time.RFC3339Nano))
	default:
		return "fields.Value{}"
	}
}

// Map is a field name to value mapping.
type Map map[string]Value

// Clone returns an independent copy of m.
func (m Map) Clone() Map {
	c := make(Map, len(m))
	for k, v := range m {
		if v.kind == KindBytes {
			v = Bytes(v.b)
		}
		c[k] = v
	}
	return c
}

// Equal reports whether both maps hold the same keys with equal values.
func (m Map) Equal(o Map) bool {
	if len(m) != len(o) {
		return false
	}
	for k, v := range m {
		ov, ok := o[k]
		if !ok || !v.Equal(ov) {
			return false
		}
	}
	return true
}

// String returns the string stored under key, or "" when the key is absent
// or holds another kind.
func (m Map) String(key string) string {
	s, _ := m[key].AsString()
	return s
}

// Bytes returns the bytes stored under key, or an empty slice.
func (m Map) Bytes(key string) []byte {
	b, ok := m[key].AsBytes()
	if !ok {
		return []byte{}
	}
	return b
}

// Time returns the timestamp stored under key, or the zero time.
func (m Map) Time(key string) time.Time {
	t, _ := m[key].AsTime()
	return t
}

// Field describes one named entry of a Schema.
type Field struct {
	Key  string
	Kind Kind
}

// Schema is the ordered list of fields a record kind serializes. The order
// is stable and is the order used for checksums.
type Schema []Field

// Lookup returns the field definition for key.
func (s Schema) Lookup(key string) (Field, bool) {
	for _, f := range s {
		if f.Key == key {
			return f, true
		}
	}
	return Field{}, false
}

// Keys returns the field names in schema order.
func (s Schema) Keys() []string {
	keys := make([]string, len(s))
	for i, f := range s {
		keys[i] = f.Key
	}
	return keys
}

// Validate checks that every schema key present in m holds the expected
// kind. Missing keys are allowed (they reconstruct as empty values) and keys
// outside the schema are ignored.
func (s Schema) Validate(m Map) error {
	for _, f := range s {
		v, ok := m[f.Key]
		if !ok {
			continue
		}
		if v.kind != f.Kind {
			return fmt.Errorf("%w: %s is %s, want %s", common.ErrFieldKind, f.Key, v.kind, f.Kind)
		}
	}
	return nil
}

// Check validates a single assignment of v to key against the schema.
func (s Schema) Check(key string, v Value) error {
	f, ok := s.Lookup(key)
	if !ok {
		return fmt.Errorf("%w: %s", common.ErrUnknownField, key)
	}
	if v.kind != f.Kind {
		return fmt.Errorf("%w: %s is %s, want %s", common.ErrFieldKind, key, v.kind, f.Kind)
	}
	return nil
}
