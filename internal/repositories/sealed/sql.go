// Package sealed stores sealed secret records. Ciphertext, key identifier,
// algorithm parameters and checksum are persisted as they are; nothing here
// can decrypt them.
package sealed

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/gophvault/internal/codec"
	"github.com/dmitrijs2005/gophvault/internal/dbx"
	"github.com/dmitrijs2005/gophvault/internal/records"
	"github.com/dmitrijs2005/gophvault/internal/secrets"
)

type SQLRepository struct {
	db      dbx.DBTX
	dialect dbx.Dialect
}

func NewSQLRepository(db dbx.DBTX, dialect dbx.Dialect) *SQLRepository {
	return &SQLRepository{db: db, dialect: dialect}
}

func (r *SQLRepository) Insert(ctx context.Context, position int, s secrets.Sealed) error {
	alg, err := codec.Marshal(s.Algorithm)
	if err != nil {
		return fmt.Errorf("failed to encode algorithm of secret %d: %w", position, err)
	}

	_, err = r.db.ExecContext(ctx, r.dialect.Rebind(`
		INSERT INTO sealed_secrets (position, kind, key_identifier, algorithm, ciphertext, checksum)
		VALUES (?, ?, ?, ?, ?, ?)
	`), position, string(s.Kind), s.KeyIdentifier, alg, s.Ciphertext, s.Checksum)
	if err != nil {
		return fmt.Errorf("failed to insert secret %d: %w", position, err)
	}
	return nil
}

func (r *SQLRepository) List(ctx context.Context) ([]secrets.Sealed, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT kind, key_identifier, algorithm, ciphertext, checksum
		FROM sealed_secrets ORDER BY position
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list secrets: %w", err)
	}
	defer rows.Close()

	var result []secrets.Sealed
	for rows.Next() {
		var (
			s    secrets.Sealed
			kind string
			alg  []byte
		)
		if err := rows.Scan(&kind, &s.KeyIdentifier, &alg, &s.Ciphertext, &s.Checksum); err != nil {
			return nil, fmt.Errorf("failed to scan secret row: %w", err)
		}
		s.Kind = records.Kind(kind)
		if err := codec.Unmarshal(alg, &s.Algorithm); err != nil {
			return nil, fmt.Errorf("failed to decode algorithm of %s secret: %w", kind, err)
		}
		result = append(result, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate secret rows: %w", err)
	}

	return result, nil
}

func (r *SQLRepository) Clear(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM sealed_secrets`); err != nil {
		return fmt.Errorf("failed to clear secrets: %w", err)
	}
	return nil
}
