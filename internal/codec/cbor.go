package codec

import (
	"bytes"
	"fmt"
	"reflect"
	"time"
	"unicode/utf8"

	"github.com/dmitrijs2005/gophvault/internal/common"
	"github.com/dmitrijs2005/gophvault/internal/fields"
	"github.com/fxamacker/cbor/v2"
)

var cborMagic = []byte{'G', 'V', 'C', 1}

// encMode uses Core Deterministic Encoding: sorted map keys, smallest
// integer encoding, no indefinite-length items.
var encMode cbor.EncMode

// decMode rejects duplicate map keys. Unmarshal already rejects trailing
// data.
var decMode cbor.DecMode

func init() {
	var err error

	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("codec: CBOR encoder initialization failed: " + err.Error())
	}

	decMode, err = cbor.DecOptions{
		DupMapKey:      cbor.DupMapKeyEnforcedAPF,
		DefaultMapType: reflect.TypeOf(map[string]any(nil)),
	}.DecMode()
	if err != nil {
		panic("codec: CBOR decoder initialization failed: " + err.Error())
	}
}

// Marshal encodes v to CBOR using Core Deterministic Encoding.
func Marshal(v any) ([]byte, error) {
	return encMode.Marshal(v)
}

// Unmarshal decodes CBOR data into v.
func Unmarshal(data []byte, v any) error {
	return decMode.Unmarshal(data, v)
}

// wireValue is the tagged CBOR form of a fields.Value, encoded as a
// four-element array.
type wireValue struct {
	_     struct{} `cbor:",toarray"`
	Kind  uint8
	Str   string
	Raw   []byte
	Stamp []int64
}

type cborCodec struct{}

// CBOR returns the deterministic CBOR codec.
func CBOR() Codec { return cborCodec{} }

func (cborCodec) Name() string { return NameCBOR }

func (cborCodec) Marshal(m fields.Map) ([]byte, error) {
	wire := make(map[string]wireValue, len(m))
	for k, v := range m {
		if !utf8.ValidString(k) {
			return nil, fmt.Errorf("%w: field key %q is not valid UTF-8", common.ErrFieldKind, k)
		}
		w, err := toWire(k, v)
		if err != nil {
			return nil, err
		}
		wire[k] = w
	}

	body, err := encMode.Marshal(wire)
	if err != nil {
		return nil, fmt.Errorf("encode field map: %w", err)
	}

	out := make([]byte, 0, len(cborMagic)+len(body))
	out = append(out, cborMagic...)
	return append(out, body...), nil
}

func (cborCodec) Unmarshal(data []byte) (fields.Map, error) { return Decode(data) }

func unmarshalCBOR(data []byte) (fields.Map, error) {
	if !bytes.HasPrefix(data, cborMagic) {
		return nil, fmt.Errorf("%w: missing cbor header", common.ErrMalformedPayload)
	}

	var wire map[string]wireValue
	if err := decMode.Unmarshal(data[len(cborMagic):], &wire); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrMalformedPayload, err)
	}
	if wire == nil {
		return nil, fmt.Errorf("%w: empty cbor body", common.ErrMalformedPayload)
	}

	m := make(fields.Map, len(wire))
	for k, w := range wire {
		v, err := fromWire(k, w)
		if err != nil {
			return nil, err
		}
		m[k] = v
	}
	return m, nil
}

func toWire(key string, v fields.Value) (wireValue, error) {
	switch v.Kind() {
	case fields.KindString:
		s, _ := v.AsString()
		if !utf8.ValidString(s) {
			return wireValue{}, fmt.Errorf("%w: %s is not valid UTF-8", common.ErrFieldKind, key)
		}
		return wireValue{Kind: uint8(fields.KindString), Str: s}, nil
	case fields.KindBytes:
		b, _ := v.AsBytes()
		return wireValue{Kind: uint8(fields.KindBytes), Raw: b}, nil
	case fields.KindTime:
		t, _ := v.AsTime()
		return wireValue{Kind: uint8(fields.KindTime), Stamp: []int64{t.Unix(), int64(t.Nanosecond())}}, nil
	default:
		return wireValue{}, fmt.Errorf("%w: %s has no value", common.ErrFieldKind, key)
	}
}

func fromWire(key string, w wireValue) (fields.Value, error) {
	switch fields.Kind(w.Kind) {
	case fields.KindString:
		if w.Raw != nil || w.Stamp != nil {
			break
		}
		return fields.String(w.Str), nil
	case fields.KindBytes:
		if w.Str != "" || w.Stamp != nil {
			break
		}
		return fields.Bytes(w.Raw), nil
	case fields.KindTime:
		if w.Str != "" || w.Raw != nil || len(w.Stamp) != 2 || w.Stamp[1] < 0 || w.Stamp[1] >= int64(time.Second) {
			break
		}
		return fields.Time(time.Unix(w.Stamp[0], w.Stamp[1])), nil
	}
	return fields.Value{}, fmt.Errorf("%w: bad entry %q", common.ErrMalformedPayload, key)
}
