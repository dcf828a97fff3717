// Package backup ships container snapshots to S3-compatible object storage.
//
// A snapshot is the container's persisted State wrapped with a format
// version and creation stamp, encoded as deterministic CBOR. Secrets stay
// sealed inside the snapshot; the object store never sees key material.
package backup

import (
	"fmt"
	"time"

	"github.com/dmitrijs2005/gophvault/internal/codec"
	"github.com/dmitrijs2005/gophvault/internal/common"
	"github.com/dmitrijs2005/gophvault/internal/container"
)

// SnapshotFormat is the current snapshot envelope version.
const SnapshotFormat = 1

type Snapshot struct {
	Format          int             `cbor:"format"`
	CreatedUnixNano int64           `cbor:"created_unix_nano"`
	State           container.State `cbor:"state"`
}

// CreatedAt returns the snapshot creation time in UTC.
func (s Snapshot) CreatedAt() time.Time {
	return time.Unix(0, s.CreatedUnixNano).UTC()
}

// EncodeSnapshot wraps st taken at the given time and encodes it.
func EncodeSnapshot(st container.State, at time.Time) ([]byte, error) {
	data, err := codec.Marshal(Snapshot{
		Format:          SnapshotFormat,
		CreatedUnixNano: at.UnixNano(),
		State:           st,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode snapshot: %w", err)
	}
	return data, nil
}

// DecodeSnapshot parses data produced by EncodeSnapshot.
func DecodeSnapshot(data []byte) (Snapshot, error) {
	var s Snapshot
	if err := codec.Unmarshal(data, &s); err != nil {
		return Snapshot{}, fmt.Errorf("%w: %v", common.ErrMalformedPayload, err)
	}
	if s.Format != SnapshotFormat {
		return Snapshot{}, fmt.Errorf("%w: snapshot format %d", common.ErrMalformedPayload, s.Format)
	}
	return s, nil
}
