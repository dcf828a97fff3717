package codec

import (
	"bytes"
	"fmt"
	"sort"
	"time"
	"unicode/utf8"

	"github.com/dmitrijs2005/gophvault/internal/common"
	"github.com/dmitrijs2005/gophvault/internal/fields"
	"google.golang.org/protobuf/encoding/protowire"
)

var protoMagic = []byte{'G', 'V', 'P', 1}

// Wire layout, expressed as a proto schema:
//
//	message FieldMap { repeated Entry entries = 1; }
//	message Entry {
//	  string key = 1;
//	  oneof value {
//	    string str = 2;
//	    bytes raw = 3;
//	    sint64 seconds = 4;
//	  }
//	  uint32 nanos = 5; // only with seconds
//	}
const (
	fieldEntry   protowire.Number = 1
	fieldKey     protowire.Number = 1
	fieldString  protowire.Number = 2
	fieldBytes   protowire.Number = 3
	fieldSeconds protowire.Number = 4
	fieldNanos   protowire.Number = 5
)

type protoCodec struct{}

// Proto returns the protowire-based codec.
func Proto() Codec { return protoCodec{} }

func (protoCodec) Name() string { return NameProto }

func (protoCodec) Marshal(m fields.Map) ([]byte, error) {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := append([]byte(nil), protoMagic...)
	for _, k := range keys {
		entry, err := appendEntry(nil, k, m[k])
		if err != nil {
			return nil, err
		}
		out = protowire.AppendTag(out, fieldEntry, protowire.BytesType)
		out = protowire.AppendBytes(out, entry)
	}
	return out, nil
}

func appendEntry(b []byte, key string, v fields.Value) ([]byte, error) {
	if !utf8.ValidString(key) {
		return nil, fmt.Errorf("%w: field key %q is not valid UTF-8", common.ErrFieldKind, key)
	}
	b = protowire.AppendTag(b, fieldKey, protowire.BytesType)
	b = protowire.AppendString(b, key)

	switch v.Kind() {
	case fields.KindString:
		s, _ := v.AsString()
		if !utf8.ValidString(s) {
			return nil, fmt.Errorf("%w: %s is not valid UTF-8", common.ErrFieldKind, key)
		}
		b = protowire.AppendTag(b, fieldString, protowire.BytesType)
		b = protowire.AppendString(b, s)
	case fields.KindBytes:
		raw, _ := v.AsBytes()
		b = protowire.AppendTag(b, fieldBytes, protowire.BytesType)
		b = protowire.AppendBytes(b, raw)
	case fields.KindTime:
		t, _ := v.AsTime()
		b = protowire.AppendTag(b, fieldSeconds, protowire.VarintType)
		b = protowire.AppendVarint(b, protowire.EncodeZigZag(t.Unix()))
		if ns := t.Nanosecond(); ns != 0 {
			b = protowire.AppendTag(b, fieldNanos, protowire.VarintType)
			b = protowire.AppendVarint(b, uint64(ns))
		}
	default:
		return nil, fmt.Errorf("%w: %s has no value", common.ErrFieldKind, key)
	}
	return b, nil
}

func (protoCodec) Unmarshal(data []byte) (fields.Map, error) { return Decode(data) }

func unmarshalProto(data []byte) (fields.Map, error) {
	if !bytes.HasPrefix(data, protoMagic) {
		return nil, fmt.Errorf("%w: missing proto header", common.ErrMalformedPayload)
	}
	b := data[len(protoMagic):]

	m := make(fields.Map)
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return nil, malformed(protowire.ParseError(n))
		}
		if num != fieldEntry || typ != protowire.BytesType {
			return nil, malformed(fmt.Errorf("unexpected field %d", num))
		}
		b = b[n:]

		entry, n := protowire.ConsumeBytes(b)
		if n < 0 {
			return nil, malformed(protowire.ParseError(n))
		}
		b = b[n:]

		key, v, err := parseEntry(entry)
		if err != nil {
			return nil, err
		}
		if _, dup := m[key]; dup {
			return nil, malformed(fmt.Errorf("duplicate key %q", key))
		}
		m[key] = v
	}
	return m, nil
}

func parseEntry(b []byte) (string, fields.Value, error) {
	var (
		key              string
		hasKey           bool
		str              string
		raw              []byte
		seconds          int64
		nanos            uint64
		values, nanosSet int
		kind             fields.Kind
	)

	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return "", fields.Value{}, malformed(protowire.ParseError(n))
		}
		b = b[n:]

		switch {
		case num == fieldKey && typ == protowire.BytesType && !hasKey:
			v, n := protowire.ConsumeString(b)
			if n < 0 {
				return "", fields.Value{}, malformed(protowire.ParseError(n))
			}
			key, hasKey, b = v, true, b[n:]
		case num == fieldString && typ == protowire.BytesType:
			v, n := protowire.ConsumeString(b)
			if n < 0 {
				return "", fields.Value{}, malformed(protowire.ParseError(n))
			}
			str, kind, b = v, fields.KindString, b[n:]
			values++
		case num == fieldBytes && typ == protowire.BytesType:
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return "", fields.Value{}, malformed(protowire.ParseError(n))
			}
			raw, kind, b = v, fields.KindBytes, b[n:]
			values++
		case num == fieldSeconds && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return "", fields.Value{}, malformed(protowire.ParseError(n))
			}
			seconds, kind, b = protowire.DecodeZigZag(v), fields.KindTime, b[n:]
			values++
		case num == fieldNanos && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return "", fields.Value{}, malformed(protowire.ParseError(n))
			}
			nanos, b = v, b[n:]
			nanosSet++
		default:
			return "", fields.Value{}, malformed(fmt.Errorf("unexpected entry field %d", num))
		}
	}

	if !hasKey || values != 1 || nanosSet > 1 {
		return "", fields.Value{}, malformed(fmt.Errorf("entry %q must carry exactly one value", key))
	}
	if nanosSet == 1 && (kind != fields.KindTime || nanos >= uint64(time.Second)) {
		return "", fields.Value{}, malformed(fmt.Errorf("entry %q has invalid nanos", key))
	}

	switch kind {
	case fields.KindString:
		return key, fields.String(str), nil
	case fields.KindBytes:
		return key, fields.Bytes(raw), nil
	default:
		return key, fields.Time(time.Unix(seconds, int64(nanos))), nil
	}
}

func malformed(err error) error {
	return fmt.Errorf("%w: %v", common.ErrMalformedPayload, err)
}
