// Package codec turns field mappings into bytes and back.
//
// Two codecs are provided. CBOR uses Core Deterministic Encoding so the same
// mapping always produces identical bytes. Proto writes a protobuf-compatible
// wire stream with google.golang.org/protobuf/encoding/protowire. Both
// prefix the payload with a short magic header and decode strictly: a
// payload that does not start with the header, carries trailing bytes,
// repeats a key or holds an entry with no or several values fails with
// common.ErrMalformedPayload. Decrypting with the wrong key produces bytes
// that fail this check, which is how callers detect a wrong key.
//
// The package also exposes Marshal and Unmarshal for plain Go values using
// the same deterministic CBOR configuration.
package codec
