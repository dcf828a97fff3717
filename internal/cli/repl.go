package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// execIface is the command surface the REPL dispatches to. App satisfies
// it; tests provide a recorder.
type execIface interface {
	unsaved() bool
	AddKey(ctx context.Context, args []string) error
	AddLogin(ctx context.Context, args []string) error
	AddNote(ctx context.Context, args []string) error
	AddCard(ctx context.Context, args []string) error
	AddContact(ctx context.Context, args []string) error
	AddFile(ctx context.Context, args []string) error
	AddHistory(ctx context.Context, args []string) error
	List(ctx context.Context, args []string) error
	Show(ctx context.Context, args []string) error
	Set(ctx context.Context, args []string) error
	Extract(ctx context.Context, args []string) error
	Verify(ctx context.Context, args []string) error
	Forget(ctx context.Context, args []string) error
	Save(ctx context.Context, args []string) error
	Backup(ctx context.Context, args []string) error
	Backups(ctx context.Context, args []string) error
	Restore(ctx context.Context, args []string) error
	Share(ctx context.Context, args []string) error
}

const helpText = `Available commands:
  addkey [id]               register a key-derivation entry
  addlogin, addnote, addcard, addcontact, addfile, addhistory
  list                      list keys, records and secrets
  show <kind> <i> [plain]   print a record
  set <kind> <i> <field>    change a field of a sealed record
  extract <i> [plain]       write a file entry to ./exports
  verify                    check record and secret checksums
  forget                    drop cached derived keys
  save                      persist the vault
  backup, backups           upload / list S3 snapshots
  restore [key|latest|url]  replace the vault with a snapshot
  share <key>               print a presigned download URL
  exit | quit`

// runREPL reads commands from reader until EOF or exit and dispatches them
// to a. Command errors are printed and never end the loop. Leaving with
// unsaved changes needs a second exit.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader, w io.Writer) {
	warned := false
	for {
		if ctx.Err() != nil {
			return
		}
		fmt.Fprintf(w, "vault %s> ", statusFn())
		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			fmt.Fprintln(w)
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		var run func(context.Context, []string) error
		switch cmd {
		case "help":
			fmt.Fprintln(w, helpText)
		case "addkey":
			run = a.AddKey
		case "addlogin":
			run = a.AddLogin
		case "addnote":
			run = a.AddNote
		case "addcard":
			run = a.AddCard
		case "addcontact":
			run = a.AddContact
		case "addfile":
			run = a.AddFile
		case "addhistory":
			run = a.AddHistory
		case "l", "list":
			run = a.List
		case "show":
			run = a.Show
		case "set":
			run = a.Set
		case "extract":
			run = a.Extract
		case "verify":
			run = a.Verify
		case "forget":
			run = a.Forget
		case "save":
			run = a.Save
		case "backup":
			run = a.Backup
		case "backups":
			run = a.Backups
		case "restore":
			run = a.Restore
		case "share":
			run = a.Share
		case "exit", "quit":
			if a.unsaved() && !warned {
				warned = true
				fmt.Fprintln(w, "There are unsaved changes; type 'save' or 'exit' again to discard them.")
				continue
			}
			fmt.Fprintln(w, "Bye!")
			return
		default:
			fmt.Fprintln(w, "Unknown command:", cmd)
		}

		if run != nil {
			if err := run(ctx, args); err != nil {
				fmt.Fprintln(w, "error:", err)
			}
		}
	}
}
