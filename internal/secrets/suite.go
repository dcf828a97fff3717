package secrets

import (
	"github.com/dmitrijs2005/gophvault/internal/checksum"
	"github.com/dmitrijs2005/gophvault/internal/clock"
	"github.com/dmitrijs2005/gophvault/internal/codec"
	"github.com/dmitrijs2005/gophvault/internal/records"
)

// Suite bundles the capabilities a secret depends on. Zero fields fall back
// to deterministic CBOR, unkeyed BLAKE3 and the real clock.
type Suite struct {
	Codec  codec.Codec
	Hasher checksum.Hasher
	Clock  clock.Clock
}

// DefaultSuite returns the suite used when none is configured.
func DefaultSuite() Suite {
	return Suite{}.WithDefaults()
}

// WithDefaults fills unset capabilities with the defaults.
func (s Suite) WithDefaults() Suite {
	if s.Codec == nil {
		s.Codec = codec.CBOR()
	}
	if s.Hasher == nil {
		s.Hasher = checksum.Blake3()
	}
	if s.Clock == nil {
		s.Clock = clock.Real()
	}
	return s
}

// RecordOptions returns the options that make records share the suite's
// clock and hasher.
func (s Suite) RecordOptions() []records.Option {
	s = s.WithDefaults()
	return []records.Option{records.WithClock(s.Clock), records.WithHasher(s.Hasher)}
}
