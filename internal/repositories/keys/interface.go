package keys

import (
	"context"

	"github.com/dmitrijs2005/gophvault/internal/kdf"
)

// Repository persists key-derivation entries in registration order.
type Repository interface {
	Insert(ctx context.Context, position int, e kdf.Entry) error
	List(ctx context.Context) ([]kdf.Entry, error)
	Clear(ctx context.Context) error
}
