package cli

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/dmitrijs2005/gophvault/internal/backup"
	"github.com/dmitrijs2005/gophvault/internal/container"
	"github.com/dmitrijs2005/gophvault/internal/filex"
	"github.com/dmitrijs2005/gophvault/internal/netx"
)

// ShareTTL is how long presigned snapshot URLs stay valid.
const ShareTTL = 15 * time.Minute

var errNoBackups = errors.New("backups are not configured (set --s3-bucket)")

// Save writes the whole vault to the local database.
func (a *App) Save(ctx context.Context, _ []string) error {
	st, err := a.vault.Export()
	if err != nil {
		return err
	}
	if err := a.store.Save(ctx, st); err != nil {
		return err
	}
	a.dirty = false
	a.printf("saved\n")
	return nil
}

// Backup uploads a snapshot of the in-memory vault.
func (a *App) Backup(ctx context.Context, _ []string) error {
	if a.backups == nil {
		return errNoBackups
	}
	st, err := a.vault.Export()
	if err != nil {
		return err
	}
	key, err := a.backups.Upload(ctx, st)
	if err != nil {
		return err
	}
	a.printf("uploaded %s\n", key)
	return nil
}

// Backups lists remote snapshots, newest first.
func (a *App) Backups(ctx context.Context, _ []string) error {
	if a.backups == nil {
		return errNoBackups
	}
	objs, err := a.backups.List(ctx)
	if err != nil {
		return err
	}
	if len(objs) == 0 {
		a.printf("no snapshots\n")
		return nil
	}
	for _, o := range objs {
		a.printf("  %s  %8d  %s\n", o.LastModified.UTC().Format(time.RFC3339), o.Size, o.Key)
	}
	return nil
}

// Restore replaces the vault with a snapshot. The argument is an object
// key, "latest" (the default) or a presigned http(s) URL.
func (a *App) Restore(ctx context.Context, args []string) error {
	src := "latest"
	if len(args) > 0 {
		src = args[0]
	}

	var (
		st  container.State
		err error
	)
	if strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://") {
		st, err = a.fetchShared(ctx, src)
		src = "shared url"
	} else {
		st, err = a.download(ctx, src)
	}
	if err != nil {
		return err
	}

	if err := a.vault.Import(st); err != nil {
		return err
	}
	a.dirty = true
	a.log.Info(ctx, "vault restored", "source", src)
	a.printf("restored %d key(s), %d record(s), %d secret(s); type 'save' to keep them\n",
		len(st.KeyDerivationEntries), len(st.Records), len(st.Secrets))
	return nil
}

func (a *App) download(ctx context.Context, key string) (container.State, error) {
	if a.backups == nil {
		return container.State{}, errNoBackups
	}
	if key == "latest" {
		var err error
		if key, err = a.backups.Latest(ctx); err != nil {
			return container.State{}, err
		}
	}
	return a.backups.Download(ctx, key)
}

func (a *App) fetchShared(ctx context.Context, url string) (container.State, error) {
	data, err := netx.DownloadFromPresignedURL(ctx, url, filex.MaxFileSize)
	if err != nil {
		return container.State{}, err
	}
	snap, err := backup.DecodeSnapshot(data)
	if err != nil {
		return container.State{}, err
	}
	return snap.State, nil
}

// Share prints a time-limited download URL for a snapshot: share [key|latest].
func (a *App) Share(ctx context.Context, args []string) error {
	if a.backups == nil {
		return errNoBackups
	}
	key := "latest"
	if len(args) > 0 {
		key = args[0]
	}
	if key == "latest" {
		var err error
		if key, err = a.backups.Latest(ctx); err != nil {
			return err
		}
	}
	url, err := a.backups.PresignDownload(ctx, key, ShareTTL)
	if err != nil {
		return err
	}
	a.printf("%s\n(valid for %s)\n", url, ShareTTL)
	return nil
}
