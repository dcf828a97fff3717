// Package records stores plaintext records as codec payloads together with
// their checksums.
package records

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/gophvault/internal/dbx"
)

type SQLRepository struct {
	db      dbx.DBTX
	dialect dbx.Dialect
}

func NewSQLRepository(db dbx.DBTX, dialect dbx.Dialect) *SQLRepository {
	return &SQLRepository{db: db, dialect: dialect}
}

func (r *SQLRepository) Insert(ctx context.Context, row Row) error {
	_, err := r.db.ExecContext(ctx, r.dialect.Rebind(`
		INSERT INTO plain_records (position, kind, payload, checksum) VALUES (?, ?, ?, ?)
	`), row.Position, row.Kind, row.Payload, row.Checksum)
	if err != nil {
		return fmt.Errorf("failed to insert record %d: %w", row.Position, err)
	}
	return nil
}

func (r *SQLRepository) List(ctx context.Context) ([]Row, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT position, kind, payload, checksum FROM plain_records ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("failed to list records: %w", err)
	}
	defer rows.Close()

	var result []Row
	for rows.Next() {
		var row Row
		if err := rows.Scan(&row.Position, &row.Kind, &row.Payload, &row.Checksum); err != nil {
			return nil, fmt.Errorf("failed to scan record row: %w", err)
		}
		result = append(result, row)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate record rows: %w", err)
	}

	return result, nil
}

func (r *SQLRepository) Clear(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM plain_records`); err != nil {
		return fmt.Errorf("failed to clear records: %w", err)
	}
	return nil
}
