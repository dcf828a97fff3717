package records

import (
	"context"
)

// Row is one stored plaintext record. Position orders rows across all kinds.
type Row struct {
	Position int
	Kind     string
	Payload  []byte
	Checksum string
}

type Repository interface {
	Insert(ctx context.Context, row Row) error
	List(ctx context.Context) ([]Row, error)
	Clear(ctx context.Context) error
}
