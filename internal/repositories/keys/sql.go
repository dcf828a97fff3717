// Package keys stores key-derivation entries. Only the identifier and the
// derivation parameters are kept; derived keys never reach the database.
package keys

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/gophvault/internal/codec"
	"github.com/dmitrijs2005/gophvault/internal/dbx"
	"github.com/dmitrijs2005/gophvault/internal/kdf"
)

type SQLRepository struct {
	db      dbx.DBTX
	dialect dbx.Dialect
}

func NewSQLRepository(db dbx.DBTX, dialect dbx.Dialect) *SQLRepository {
	return &SQLRepository{db: db, dialect: dialect}
}

func (r *SQLRepository) Insert(ctx context.Context, position int, e kdf.Entry) error {
	params, err := codec.Marshal(e.Params)
	if err != nil {
		return fmt.Errorf("failed to encode params of %s: %w", e.Identifier, err)
	}

	_, err = r.db.ExecContext(ctx, r.dialect.Rebind(`
		INSERT INTO key_entries (position, identifier, params) VALUES (?, ?, ?)
	`), position, e.Identifier, params)
	if err != nil {
		return fmt.Errorf("failed to insert key entry %s: %w", e.Identifier, err)
	}
	return nil
}

func (r *SQLRepository) List(ctx context.Context) ([]kdf.Entry, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT identifier, params FROM key_entries ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("failed to list key entries: %w", err)
	}
	defer rows.Close()

	var result []kdf.Entry
	for rows.Next() {
		var (
			e   kdf.Entry
			raw []byte
		)
		if err := rows.Scan(&e.Identifier, &raw); err != nil {
			return nil, fmt.Errorf("failed to scan key entry row: %w", err)
		}
		if err := codec.Unmarshal(raw, &e.Params); err != nil {
			return nil, fmt.Errorf("failed to decode params of %s: %w", e.Identifier, err)
		}
		result = append(result, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate key entry rows: %w", err)
	}

	return result, nil
}

func (r *SQLRepository) Clear(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM key_entries`); err != nil {
		return fmt.Errorf("failed to clear key entries: %w", err)
	}
	return nil
}
