package sealed

import (
	"context"

	"github.com/dmitrijs2005/gophvault/internal/secrets"
)

type Repository interface {
	// Insert stores s at position; positions order secrets across all kinds.
	Insert(ctx context.Context, position int, s secrets.Sealed) error
	List(ctx context.Context) ([]secrets.Sealed, error)
	Clear(ctx context.Context) error
}
