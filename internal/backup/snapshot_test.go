package backup

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/gophvault/internal/codec"
	"github.com/dmitrijs2005/gophvault/internal/common"
)

func TestSnapshot_CreatedAt(t *testing.T) {
	at := time.Date(2026, 10, 18, 9, 30, 0, 123, time.UTC)
	data, err := EncodeSnapshot(sampleState(t), at)
	require.NoError(t, err)

	s, err := DecodeSnapshot(data)
	require.NoError(t, err)
	assert.Equal(t, SnapshotFormat, s.Format)
	assert.True(t, at.Equal(s.CreatedAt()))
}

func TestDecodeSnapshot_RejectsUnknownFormat(t *testing.T) {
	data, err := codec.Marshal(Snapshot{Format: 99})
	require.NoError(t, err)

	_, err = DecodeSnapshot(data)
	require.ErrorIs(t, err, common.ErrMalformedPayload)
}
