package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/gophvault/internal/common"
	"github.com/dmitrijs2005/gophvault/internal/cryptox"
	"github.com/dmitrijs2005/gophvault/internal/fields"
	"github.com/dmitrijs2005/gophvault/internal/filex"
	"github.com/dmitrijs2005/gophvault/internal/records"
)

var kindAliases = map[string]records.Kind{
	"login":   records.KindLoginInformation,
	"note":    records.KindNote,
	"file":    records.KindFileEntry,
	"contact": records.KindContact,
	"card":    records.KindPaymentCard,
	"history": records.KindHistory,
}

func parseKind(s string) (records.Kind, error) {
	if k, ok := kindAliases[strings.ToLower(s)]; ok {
		return k, nil
	}
	for _, k := range records.Kinds {
		if string(k) == s {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown kind %q (login, note, file, contact, card, history)", s)
}

func parseIndex(s string, n int) (int, error) {
	i, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid index %q", s)
	}
	if i < 0 || i >= n {
		return 0, fmt.Errorf("%w: %d of %d", common.ErrIndexOutOfRange, i, n)
	}
	return i, nil
}

// sealedRecord is the kind-independent view of a secret.
type sealedRecord interface {
	KeyIdentifier() string
	Algorithm() cryptox.Algorithm
	GetFields(derivedKey []byte) (fields.Map, error)
	Set(fieldKey string, value fields.Value, derivedKey []byte) error
}

func asSealed[S sealedRecord](list []S) []sealedRecord {
	out := make([]sealedRecord, len(list))
	for i, s := range list {
		out[i] = s
	}
	return out
}

func asRecords[R records.Record](list []R) []records.Record {
	out := make([]records.Record, len(list))
	for i, r := range list {
		out[i] = r
	}
	return out
}

func (a *App) secretsOf(kind records.Kind) []sealedRecord {
	switch kind {
	case records.KindLoginInformation:
		return asSealed(a.vault.LoginInformationSecrets)
	case records.KindNote:
		return asSealed(a.vault.NoteSecrets)
	case records.KindFileEntry:
		return asSealed(a.vault.FileEntrySecrets)
	case records.KindContact:
		return asSealed(a.vault.ContactSecrets)
	case records.KindPaymentCard:
		return asSealed(a.vault.PaymentCardSecrets)
	case records.KindHistory:
		return asSealed(a.vault.HistorySecrets)
	}
	return nil
}

func (a *App) plaintextOf(kind records.Kind) []records.Record {
	switch kind {
	case records.KindLoginInformation:
		return asRecords(a.vault.LoginInformation)
	case records.KindNote:
		return asRecords(a.vault.Notes)
	case records.KindFileEntry:
		return asRecords(a.vault.FileEntries)
	case records.KindContact:
		return asRecords(a.vault.Contacts)
	case records.KindPaymentCard:
		return asRecords(a.vault.PaymentCards)
	case records.KindHistory:
		return asRecords(a.vault.History)
	}
	return nil
}

// label picks the first non-empty string field as a short description.
func label(r records.Record) string {
	m := r.Fields()
	for _, f := range r.Schema() {
		if f.Kind != fields.KindString {
			continue
		}
		if s := m.String(f.Key); s != "" {
			return strings.ReplaceAll(s, records.MultiValueSeparator, ", ")
		}
	}
	return "(untitled)"
}

func formatValue(v fields.Value) string {
	switch v.Kind() {
	case fields.KindBytes:
		b, _ := v.AsBytes()
		return fmt.Sprintf("<%d bytes>", len(b))
	case fields.KindTime:
		t, _ := v.AsTime()
		return t.Format(time.RFC3339)
	default:
		s, _ := v.AsString()
		return strings.ReplaceAll(s, records.MultiValueSeparator, ", ")
	}
}

func (a *App) printFields(schema fields.Schema, m fields.Map) {
	for _, f := range schema {
		v, ok := m[f.Key]
		if !ok {
			continue
		}
		if s := formatValue(v); s != "" {
			a.printf("  %-26s %s\n", f.Key+":", s)
		}
	}
}

// List prints key entries, then plaintext records and secrets per kind.
func (a *App) List(ctx context.Context, _ []string) error {
	entries := a.vault.KeyDerivationEntries()
	a.printf("Keys:\n")
	if len(entries) == 0 {
		a.printf("  (none, use addkey)\n")
	}
	for _, e := range entries {
		a.printf("  %-16s %s\n", e.Identifier, e.Params.Algorithm)
	}

	for _, kind := range records.Kinds {
		plain := a.plaintextOf(kind)
		sealed := a.secretsOf(kind)
		if len(plain) == 0 && len(sealed) == 0 {
			continue
		}
		a.printf("%s:\n", kind)
		for i, r := range plain {
			a.printf("  plain  #%d  %s\n", i, label(r))
		}
		for i, s := range sealed {
			a.printf("  sealed #%d  key=%s %s\n", i, s.KeyIdentifier(), s.Algorithm())
		}
	}
	return nil
}

// Show prints one record: show <kind> <index> [plain].
func (a *App) Show(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: show <kind> <index> [plain]")
	}
	kind, err := parseKind(args[0])
	if err != nil {
		return err
	}
	schema := records.SchemaFor(kind)

	if len(args) > 2 && args[2] == "plain" {
		list := a.plaintextOf(kind)
		i, err := parseIndex(args[1], len(list))
		if err != nil {
			return err
		}
		a.printFields(schema, list[i].Fields())
		return nil
	}

	list := a.secretsOf(kind)
	i, err := parseIndex(args[1], len(list))
	if err != nil {
		return err
	}
	s := list[i]

	key, err := a.derivedKey(ctx, s.KeyIdentifier())
	if err != nil {
		return err
	}
	defer cryptox.WipeBytes(key)

	m, err := s.GetFields(key)
	if err != nil {
		return err
	}
	a.printFields(schema, m)
	return nil
}

// Set changes one field of a sealed record: set <kind> <index> <field>.
func (a *App) Set(ctx context.Context, args []string) error {
	if len(args) < 3 {
		return fmt.Errorf("usage: set <kind> <index> <field>")
	}
	kind, err := parseKind(args[0])
	if err != nil {
		return err
	}
	list := a.secretsOf(kind)
	i, err := parseIndex(args[1], len(list))
	if err != nil {
		return err
	}
	field, ok := records.SchemaFor(kind).Lookup(args[2])
	if !ok {
		return fmt.Errorf("%w: %s has no field %q", common.ErrUnknownField, kind, args[2])
	}

	value, err := a.readValue(field)
	if err != nil {
		return err
	}

	s := list[i]
	key, err := a.derivedKey(ctx, s.KeyIdentifier())
	if err != nil {
		return err
	}
	defer cryptox.WipeBytes(key)

	if err := s.Set(field.Key, value, key); err != nil {
		return err
	}
	a.dirty = true
	a.printf("%s #%d: %s updated\n", kind, i, field.Key)
	return nil
}

func (a *App) readValue(f fields.Field) (fields.Value, error) {
	switch f.Kind {
	case fields.KindBytes:
		path, err := GetSimpleText(a.reader, "Enter path to file with new "+f.Key, a.out)
		if err != nil {
			return fields.Value{}, err
		}
		data, err := filex.ReadLimited(path, filex.MaxFileSize)
		if err != nil {
			return fields.Value{}, err
		}
		return fields.Bytes(data), nil
	case fields.KindTime:
		s, err := GetSimpleText(a.reader, "Enter new "+f.Key+" (RFC 3339)", a.out)
		if err != nil {
			return fields.Value{}, err
		}
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return fields.Value{}, fmt.Errorf("invalid time %q: %w", s, err)
		}
		return fields.Time(t), nil
	default:
		s, err := GetSimpleText(a.reader, "Enter new "+f.Key, a.out)
		if err != nil {
			return fields.Value{}, err
		}
		return fields.String(s), nil
	}
}

// Extract writes a file entry's content under ./exports: extract <index> [plain].
func (a *App) Extract(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: extract <index> [plain]")
	}

	var name string
	var content []byte
	if len(args) > 1 && args[1] == "plain" {
		i, err := parseIndex(args[0], len(a.vault.FileEntries))
		if err != nil {
			return err
		}
		name, content = a.vault.FileEntries[i].Filename(), a.vault.FileEntries[i].Content()
	} else {
		i, err := parseIndex(args[0], len(a.vault.FileEntrySecrets))
		if err != nil {
			return err
		}
		s := a.vault.FileEntrySecrets[i]
		key, err := a.derivedKey(ctx, s.KeyIdentifier())
		if err != nil {
			return err
		}
		defer cryptox.WipeBytes(key)
		f, err := s.GetFileEntry(key)
		if err != nil {
			return err
		}
		name, content = f.Filename(), f.Content()
	}

	dir, err := filex.EnsureSubDir("exports")
	if err != nil {
		return err
	}
	path, err := filex.WriteNew(dir, name, content)
	if err != nil {
		return err
	}
	a.printf("written %s (%d bytes)\n", path, len(content))
	return nil
}

// Verify reports records and secrets whose checksum no longer matches.
func (a *App) Verify(ctx context.Context, _ []string) error {
	tampered := a.vault.VerifyChecksums()
	if len(tampered) == 0 {
		a.printf("all checksums match\n")
		return nil
	}
	for _, t := range tampered {
		what := "plain"
		if t.Secret {
			what = "sealed"
		}
		a.printf("checksum mismatch: %s %s #%d\n", t.Kind, what, t.Index)
	}
	a.log.Warn(ctx, "checksum mismatches found", "count", len(tampered))
	return fmt.Errorf("%w: %d item(s)", common.ErrChecksumMismatch, len(tampered))
}
