package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/gophvault/internal/backup"
	"github.com/dmitrijs2005/gophvault/internal/codec"
	"github.com/dmitrijs2005/gophvault/internal/common"
	"github.com/dmitrijs2005/gophvault/internal/config"
	"github.com/dmitrijs2005/gophvault/internal/container"
	"github.com/dmitrijs2005/gophvault/internal/logging"
	"github.com/dmitrijs2005/gophvault/internal/secrets"
	"github.com/dmitrijs2005/gophvault/internal/store"
)

// logOutput is where diagnostics go; the REPL owns stdout.
var logOutput io.Writer = os.Stderr

// Open wires the vault described by cfg: it opens (and migrates) the
// database, loads the saved vault if there is one and connects the backup
// bucket when configured. The caller must Close the returned App.
func Open(ctx context.Context, cfg *config.Config, in io.Reader, out io.Writer) (*App, error) {
	log, err := logging.New(cfg.LogFormat, cfg.LogLevel, logOutput)
	if err != nil {
		return nil, err
	}

	c, err := codec.ByName(cfg.Codec)
	if err != nil {
		return nil, err
	}
	vault, err := container.New(
		container.WithSuite(secrets.Suite{Codec: c}.WithDefaults()),
		container.WithCipher(cfg.CipherKind()),
		container.WithKeyCache(cfg.KeyCache),
		container.WithLogger(log),
	)
	if err != nil {
		return nil, err
	}

	db, err := store.Open(ctx, cfg.Dialect(), cfg.DSN, log)
	if err != nil {
		return nil, err
	}

	st, err := db.Load(ctx)
	switch {
	case errors.Is(err, common.ErrNotFound):
		log.Info(ctx, "no saved vault, starting empty", "dsn", cfg.DSN)
	case err != nil:
		_ = db.Close()
		return nil, fmt.Errorf("failed to load vault: %w", err)
	default:
		if err := vault.Import(st); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to import vault: %w", err)
		}
	}

	var backups Backups
	if cfg.BackupEnabled() {
		s3, err := backup.NewS3Store(ctx, cfg.Backup(), backup.WithLogger(log))
		if err != nil {
			_ = db.Close()
			return nil, err
		}
		backups = s3
	}

	app := NewApp(cfg, vault, db, backups, log, in, out)
	app.closer = db
	return app, nil
}

// Close releases the database.
func (a *App) Close() error {
	if a.closer == nil {
		return nil
	}
	return a.closer.Close()
}
