// Package store persists container snapshots in a SQL database.
//
// A Store holds exactly one container. Save replaces the stored snapshot
// inside a single transaction, so readers see either the old or the new
// state. Key material never reaches the database: only KDF parameters,
// sealed secrets and plaintext records are written.
//
// Supported drivers are "sqlite" (modernc.org/sqlite) and "pgx"
// (github.com/jackc/pgx/v5/stdlib).
package store

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"

	"github.com/dmitrijs2005/gophvault/internal/common"
	"github.com/dmitrijs2005/gophvault/internal/container"
	"github.com/dmitrijs2005/gophvault/internal/dbx"
	"github.com/dmitrijs2005/gophvault/internal/logging"
	"github.com/dmitrijs2005/gophvault/internal/records"
	recordrepo "github.com/dmitrijs2005/gophvault/internal/repositories/records"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

const (
	metaVersion = "version"
	metaID      = "container_id"
)

type Store struct {
	db  *sql.DB
	rm  *RepositoryManager
	log logging.Logger
}

// Open connects to dsn with driver, applies migrations and returns a Store.
func Open(ctx context.Context, driver dbx.Dialect, dsn string, log logging.Logger) (*Store, error) {
	rm, err := NewRepositoryManager(driver)
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = logging.Nop()
	}

	db, err := sql.Open(string(driver), dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if driver == dbx.SQLite {
		// single writer; also keeps ":memory:" databases on one connection
		db.SetMaxOpenConns(1)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := rm.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	log.Debug(ctx, "store opened", "driver", string(driver))
	return &Store{db: db, rm: rm, log: log}, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Save replaces the stored snapshot with st.
func (s *Store) Save(ctx context.Context, st container.State) error {
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		meta := s.rm.Metadata(tx)
		keyRepo := s.rm.Keys(tx)
		recRepo := s.rm.Records(tx)
		secRepo := s.rm.Secrets(tx)

		if err := secRepo.Clear(ctx); err != nil {
			return err
		}
		if err := recRepo.Clear(ctx); err != nil {
			return err
		}
		if err := keyRepo.Clear(ctx); err != nil {
			return err
		}
		if err := meta.Clear(ctx); err != nil {
			return err
		}

		if err := meta.Set(ctx, metaVersion, []byte(strconv.Itoa(st.Version))); err != nil {
			return err
		}
		if err := meta.Set(ctx, metaID, []byte(st.ID)); err != nil {
			return err
		}

		for i, e := range st.KeyDerivationEntries {
			if err := keyRepo.Insert(ctx, i, e); err != nil {
				return err
			}
		}
		for i, r := range st.Records {
			row := recordrepo.Row{Position: i, Kind: string(r.Kind), Payload: r.Payload, Checksum: r.Checksum}
			if err := recRepo.Insert(ctx, row); err != nil {
				return err
			}
		}
		for i, sec := range st.Secrets {
			if err := secRepo.Insert(ctx, i, sec); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		s.log.Error(ctx, "snapshot not saved", "error", err)
		return fmt.Errorf("failed to save snapshot: %w", err)
	}

	s.log.Info(ctx, "snapshot saved",
		"id", st.ID,
		"keys", len(st.KeyDerivationEntries),
		"records", len(st.Records),
		"secrets", len(st.Secrets))
	return nil
}

// Load reads the stored snapshot. It returns common.ErrNotFound when
// nothing has been saved yet.
func (s *Store) Load(ctx context.Context) (container.State, error) {
	var st container.State

	err := dbx.WithTx(ctx, s.db, &sql.TxOptions{ReadOnly: s.rm.Dialect() == dbx.Postgres}, func(ctx context.Context, tx dbx.DBTX) error {
		meta := s.rm.Metadata(tx)

		id, err := meta.Get(ctx, metaID)
		if err != nil {
			return err
		}
		if id == nil {
			return common.ErrNotFound
		}
		st.ID = string(id)

		rawVersion, err := meta.Get(ctx, metaVersion)
		if err != nil {
			return err
		}
		if st.Version, err = strconv.Atoi(string(rawVersion)); err != nil {
			return fmt.Errorf("%w: version %q", common.ErrMalformedPayload, rawVersion)
		}

		if st.KeyDerivationEntries, err = s.rm.Keys(tx).List(ctx); err != nil {
			return err
		}

		rows, err := s.rm.Records(tx).List(ctx)
		if err != nil {
			return err
		}
		for _, row := range rows {
			st.Records = append(st.Records, container.RecordState{
				Kind:     records.Kind(row.Kind),
				Payload:  row.Payload,
				Checksum: row.Checksum,
			})
		}

		st.Secrets, err = s.rm.Secrets(tx).List(ctx)
		return err
	})
	if err != nil {
		return container.State{}, fmt.Errorf("failed to load snapshot: %w", err)
	}
	return st, nil
}
