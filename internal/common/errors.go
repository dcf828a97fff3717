// Package common defines the sentinel errors shared by the vault layers.
// Callers should use errors.Is to match these values; most of them are
// returned wrapped with additional context.
package common

import "errors"

var (
	// Key and payload errors raised by the secret-record protocol.
	ErrInvalidKey       = errors.New("invalid derived key")
	ErrMalformedPayload = errors.New("malformed payload")
	ErrChecksumMismatch = errors.New("checksum mismatch")

	// Field mapping errors.
	ErrUnknownField = errors.New("unknown field")
	ErrFieldKind    = errors.New("wrong field kind")

	// Container precondition errors.
	ErrNilRecord               = errors.New("record cannot be nil")
	ErrEmptyPassword           = errors.New("password cannot be empty")
	ErrUnresolvedKeyIdentifier = errors.New("cannot find key identifier")
	ErrDuplicateKeyIdentifier  = errors.New("key identifier already exists")
	ErrIndexOutOfRange         = errors.New("index out of bounds")

	// Algorithm selection errors.
	ErrUnsupportedAlgorithm = errors.New("unsupported algorithm")

	// Repository-level errors.
	ErrNotFound = errors.New("not found")
)
