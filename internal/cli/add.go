package cli

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/dmitrijs2005/gophvault/internal/filex"
	"github.com/dmitrijs2005/gophvault/internal/kdf"
	"github.com/dmitrijs2005/gophvault/internal/records"
)

// AddKey registers a key-derivation entry using the configured algorithm
// and key length.
func (a *App) AddKey(ctx context.Context, args []string) error {
	var id string
	if len(args) > 0 {
		id = args[0]
	} else {
		var err error
		if id, err = GetSimpleText(a.reader, "Enter key identifier", a.out); err != nil {
			return err
		}
	}
	if id == "" {
		return fmt.Errorf("key identifier is required")
	}

	e, err := kdf.NewEntry(id, a.cfg.KDFAlgorithm(), a.cfg.KeyLength)
	if err != nil {
		return err
	}
	if err := a.vault.AddKeyDerivationEntry(e); err != nil {
		return err
	}
	a.dirty = true
	a.printf("key %q added (%s, %d-byte keys)\n", id, e.Params.Algorithm, e.KeyLength())
	return nil
}

// Forget drops every cached derived key.
func (a *App) Forget(ctx context.Context, _ []string) error {
	a.vault.ForgetDerivedKeys()
	a.printf("derived keys forgotten\n")
	return nil
}

// put stores a new record either sealed under a key chosen by the user or,
// when no key identifier is given, as plaintext.
func (a *App) put(ctx context.Context, kind records.Kind, plain func() error, sealed func(ctx context.Context, pw, keyIdentifier string) error) error {
	id, err := GetSimpleText(a.reader, "Enter key identifier (empty to store unencrypted)", a.out)
	if err != nil {
		return err
	}

	if id == "" {
		err = plain()
	} else {
		err = a.password(ctx, id, func(ctx context.Context, pw string) error {
			return sealed(ctx, pw, id)
		})
	}
	if err != nil {
		return err
	}

	a.dirty = true
	if id == "" {
		a.printf("%s stored unencrypted\n", kind)
	} else {
		a.printf("%s sealed under %q\n", kind, id)
	}
	return nil
}

func (a *App) AddLogin(ctx context.Context, _ []string) error {
	var d records.LoginDetails
	prompts := []struct {
		prompt string
		dst    *string
	}{
		{"Enter title", &d.Title},
		{"Enter URL", &d.URL},
		{"Enter username", &d.Username},
		{"Enter email", &d.Email},
		{"Enter password", &d.Password},
		{"Enter MFA secret", &d.MFA},
		{"Enter category", &d.Category},
	}
	for _, p := range prompts {
		v, err := GetSimpleText(a.reader, p.prompt, a.out)
		if err != nil {
			return err
		}
		*p.dst = v
	}
	tags, err := GetList(a.reader, "Enter tags", a.out)
	if err != nil {
		return err
	}
	d.Tags = tags
	if d.Notes, err = GetMultiline(a.reader, "Enter notes", a.out); err != nil {
		return err
	}

	rec := records.NewLoginInformation(d, a.recordOptions()...)
	return a.put(ctx, records.KindLoginInformation,
		func() error { return a.vault.AddLoginInformation(rec) },
		func(ctx context.Context, pw, id string) error {
			return a.vault.AddLoginInformationSecret(ctx, pw, rec, id)
		})
}

func (a *App) AddNote(ctx context.Context, _ []string) error {
	title, err := GetSimpleText(a.reader, "Enter title", a.out)
	if err != nil {
		return err
	}
	text, err := GetMultiline(a.reader, "Enter text", a.out)
	if err != nil {
		return err
	}

	rec := records.NewNote(title, text, a.recordOptions()...)
	return a.put(ctx, records.KindNote,
		func() error { return a.vault.AddNote(rec) },
		func(ctx context.Context, pw, id string) error { return a.vault.AddNoteSecret(ctx, pw, rec, id) })
}

func (a *App) AddCard(ctx context.Context, _ []string) error {
	var d records.CardDetails
	prompts := []struct {
		prompt string
		dst    *string
	}{
		{"Enter title", &d.Title},
		{"Enter name on card", &d.NameOnCard},
		{"Enter card type", &d.CardType},
		{"Enter card number", &d.Number},
		{"Enter security code", &d.SecurityCode},
		{"Enter start date (MM/YY)", &d.StartDate},
		{"Enter expiration date (MM/YY)", &d.ExpirationDate},
		{"Enter notes", &d.Notes},
	}
	for _, p := range prompts {
		v, err := GetSimpleText(a.reader, p.prompt, a.out)
		if err != nil {
			return err
		}
		*p.dst = v
	}

	rec := records.NewPaymentCard(d, a.recordOptions()...)
	return a.put(ctx, records.KindPaymentCard,
		func() error { return a.vault.AddPaymentCard(rec) },
		func(ctx context.Context, pw, id string) error { return a.vault.AddPaymentCardSecret(ctx, pw, rec, id) })
}

func (a *App) AddContact(ctx context.Context, _ []string) error {
	var d records.ContactDetails
	prompts := []struct {
		prompt string
		dst    *string
	}{
		{"Enter first name", &d.FirstName},
		{"Enter last name", &d.LastName},
		{"Enter company", &d.Company},
		{"Enter city", &d.City},
		{"Enter birthday", &d.Birthday},
	}
	for _, p := range prompts {
		v, err := GetSimpleText(a.reader, p.prompt, a.out)
		if err != nil {
			return err
		}
		*p.dst = v
	}
	var err error
	if d.Emails, err = GetList(a.reader, "Enter emails", a.out); err != nil {
		return err
	}
	if d.PhoneNumbers, err = GetList(a.reader, "Enter phone numbers", a.out); err != nil {
		return err
	}
	if d.Notes, err = GetMultiline(a.reader, "Enter notes", a.out); err != nil {
		return err
	}

	rec := records.NewContact(d, a.recordOptions()...)
	return a.put(ctx, records.KindContact,
		func() error { return a.vault.AddContact(rec) },
		func(ctx context.Context, pw, id string) error { return a.vault.AddContactSecret(ctx, pw, rec, id) })
}

func (a *App) AddFile(ctx context.Context, _ []string) error {
	path, err := GetSimpleText(a.reader, "Enter path to file", a.out)
	if err != nil {
		return err
	}
	content, err := filex.ReadLimited(path, filex.MaxFileSize)
	if err != nil {
		return err
	}

	rec := records.NewFileEntry(filepath.Base(path), content, a.recordOptions()...)
	return a.put(ctx, records.KindFileEntry,
		func() error { return a.vault.AddFileEntry(rec) },
		func(ctx context.Context, pw, id string) error { return a.vault.AddFileEntrySecret(ctx, pw, rec, id) })
}

// AddHistory records an event that happened now.
func (a *App) AddHistory(ctx context.Context, _ []string) error {
	var eventType, description, ip, agent string
	prompts := []struct {
		prompt string
		dst    *string
	}{
		{"Enter event type", &eventType},
		{"Enter description", &description},
		{"Enter IP address", &ip},
		{"Enter user agent", &agent},
	}
	for _, p := range prompts {
		v, err := GetSimpleText(a.reader, p.prompt, a.out)
		if err != nil {
			return err
		}
		*p.dst = v
	}

	now := a.vault.Suite().Clock.Now()
	rec := records.NewHistory(now, eventType, description, ip, agent, a.recordOptions()...)
	return a.put(ctx, records.KindHistory,
		func() error { return a.vault.AddHistory(rec) },
		func(ctx context.Context, pw, id string) error { return a.vault.AddHistorySecret(ctx, pw, rec, id) })
}
