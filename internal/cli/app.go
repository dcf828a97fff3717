package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/dmitrijs2005/gophvault/internal/backup"
	"github.com/dmitrijs2005/gophvault/internal/config"
	"github.com/dmitrijs2005/gophvault/internal/container"
	"github.com/dmitrijs2005/gophvault/internal/cryptox"
	"github.com/dmitrijs2005/gophvault/internal/logging"
	"github.com/dmitrijs2005/gophvault/internal/records"
)

// Store persists vault snapshots.
type Store interface {
	Save(ctx context.Context, st container.State) error
}

// Backups is the remote snapshot store. *backup.S3Store satisfies it.
type Backups interface {
	Upload(ctx context.Context, st container.State) (string, error)
	Download(ctx context.Context, key string) (container.State, error)
	List(ctx context.Context) ([]backup.Object, error)
	Latest(ctx context.Context) (string, error)
	PresignDownload(ctx context.Context, key string, ttl time.Duration) (string, error)
}

type App struct {
	cfg     *config.Config
	vault   *container.Container
	store   Store
	backups Backups
	log     logging.Logger
	reader  *bufio.Reader
	out     io.Writer
	closer  io.Closer
	dirty   bool
}

// NewApp builds the shell. backups may be nil when no bucket is configured.
func NewApp(cfg *config.Config, vault *container.Container, store Store, backups Backups, log logging.Logger, in io.Reader, out io.Writer) *App {
	if log == nil {
		log = logging.Nop()
	}
	return &App{
		cfg:     cfg,
		vault:   vault,
		store:   store,
		backups: backups,
		log:     log,
		reader:  bufio.NewReader(in),
		out:     out,
	}
}

// Run blocks until the user exits or input ends.
func (a *App) Run(ctx context.Context) {
	fmt.Fprintln(a.out, "Welcome to vaultctl (type 'help' for commands)")
	runREPL(ctx, a, a.status, a.reader, a.out)
	a.vault.ForgetDerivedKeys()
}

func (a *App) status() string {
	n := len(a.vault.LoginInformationSecrets) + len(a.vault.NoteSecrets) + len(a.vault.FileEntrySecrets) +
		len(a.vault.ContactSecrets) + len(a.vault.PaymentCardSecrets) + len(a.vault.HistorySecrets)
	s := fmt.Sprintf("%d keys, %d secrets", len(a.vault.KeyDerivationEntries()), n)
	if a.dirty {
		s += ", unsaved"
	}
	return "(" + s + ")"
}

func (a *App) unsaved() bool { return a.dirty }

func (a *App) recordOptions() []records.Option {
	return a.vault.Suite().RecordOptions()
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

// password prompts for a password and runs fn with it under the
// configured derivation timeout. The password bytes are wiped afterwards.
func (a *App) password(ctx context.Context, keyIdentifier string, fn func(ctx context.Context, pw string) error) error {
	pw, err := GetPassword(fmt.Sprintf("Password for %q", keyIdentifier), a.out)
	if err != nil {
		return fmt.Errorf("read password: %w", err)
	}
	defer cryptox.WipeBytes(pw)

	ctx, cancel := context.WithTimeout(ctx, a.cfg.DeriveTimeout)
	defer cancel()
	return fn(ctx, string(pw))
}

// derivedKey resolves the key for keyIdentifier, prompting for its password.
// The caller wipes the returned key.
func (a *App) derivedKey(ctx context.Context, keyIdentifier string) ([]byte, error) {
	var key []byte
	err := a.password(ctx, keyIdentifier, func(ctx context.Context, pw string) error {
		var err error
		key, err = a.vault.DeriveKey(ctx, keyIdentifier, pw)
		return err
	})
	return key, err
}
