package codec

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/gophvault/internal/common"
	"github.com/dmitrijs2005/gophvault/internal/fields"
)

// Codec serializes a field mapping losslessly. Marshal always writes the
// codec's own format; Unmarshal accepts any format this package writes, so
// a vault keeps working when the configured codec changes.
type Codec interface {
	Name() string
	Marshal(m fields.Map) ([]byte, error)
	Unmarshal(data []byte) (fields.Map, error)
}

const (
	NameCBOR  = "cbor"
	NameProto = "proto"
)

// ByName returns the codec registered under name (case-insensitive).
func ByName(name string) (Codec, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case NameCBOR, "":
		return CBOR(), nil
	case NameProto, "protobuf":
		return Proto(), nil
	default:
		return nil, fmt.Errorf("unknown codec %q", name)
	}
}

// Decode unmarshals data with the codec whose header it starts with.
func Decode(data []byte) (fields.Map, error) {
	switch {
	case bytes.HasPrefix(data, cborMagic):
		return unmarshalCBOR(data)
	case bytes.HasPrefix(data, protoMagic):
		return unmarshalProto(data)
	default:
		return nil, fmt.Errorf("%w: unknown codec header", common.ErrMalformedPayload)
	}
}

// Detect reports the name of the codec that wrote data.
func Detect(data []byte) (string, bool) {
	switch {
	case bytes.HasPrefix(data, cborMagic):
		return NameCBOR, true
	case bytes.HasPrefix(data, protoMagic):
		return NameProto, true
	}
	return "", false
}
