package store

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/gophvault/internal/dbx"
	"github.com/dmitrijs2005/gophvault/internal/repositories/keys"
	"github.com/dmitrijs2005/gophvault/internal/repositories/metadata"
	recordrepo "github.com/dmitrijs2005/gophvault/internal/repositories/records"
	"github.com/dmitrijs2005/gophvault/internal/repositories/sealed"
	"github.com/dmitrijs2005/gophvault/internal/store/migrations"
	"github.com/pressly/goose/v3"
)

// RepositoryManager vends repositories for one dialect and runs its schema
// migrations.
type RepositoryManager struct {
	dialect dbx.Dialect
}

// NewRepositoryManager returns a manager for dialect.
func NewRepositoryManager(dialect dbx.Dialect) (*RepositoryManager, error) {
	switch dialect {
	case dbx.SQLite, dbx.Postgres:
		return &RepositoryManager{dialect: dialect}, nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", dialect)
	}
}

// Dialect reports the manager's SQL dialect.
func (m *RepositoryManager) Dialect() dbx.Dialect { return m.dialect }

func (m *RepositoryManager) Metadata(db dbx.DBTX) metadata.Repository {
	return metadata.NewSQLRepository(db, m.dialect)
}

func (m *RepositoryManager) Keys(db dbx.DBTX) keys.Repository {
	return keys.NewSQLRepository(db, m.dialect)
}

func (m *RepositoryManager) Records(db dbx.DBTX) recordrepo.Repository {
	return recordrepo.NewSQLRepository(db, m.dialect)
}

func (m *RepositoryManager) Secrets(db dbx.DBTX) sealed.Repository {
	return sealed.NewSQLRepository(db, m.dialect)
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// goose keeps its base FS and dialect in package state.
var migrateMu sync.Mutex

// RunMigrations applies the embedded migrations for the manager's dialect.
func (m *RepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	migrateMu.Lock()
	defer migrateMu.Unlock()

	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect(m.dialect.GooseDialect()); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	dir := "sqlite"
	if m.dialect == dbx.Postgres {
		dir = "postgres"
	}
	if err := gooseUpContext(ctx, db, dir); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}
