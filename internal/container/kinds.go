package container

import (
	"context"

	"github.com/dmitrijs2005/gophvault/internal/cryptox"
	"github.com/dmitrijs2005/gophvault/internal/records"
	"github.com/dmitrijs2005/gophvault/internal/secrets"
)

// AddLoginInformationSecret derives a key from password through the entry
// named keyIdentifier, encrypts rec and appends it to
// LoginInformationSecrets.
func (c *Container) AddLoginInformationSecret(ctx context.Context, password string, rec *records.LoginInformation, keyIdentifier string) error {
	return c.upsertLoginInformation(ctx, rec, keyIdentifier, fromPassword(password), false, 0)
}

// AddLoginInformationSecretWithDerivedKey is AddLoginInformationSecret for
// a caller that already holds the derived key.
func (c *Container) AddLoginInformationSecretWithDerivedKey(ctx context.Context, derivedKey []byte, rec *records.LoginInformation, keyIdentifier string) error {
	return c.upsertLoginInformation(ctx, rec, keyIdentifier, fromDerivedKey(derivedKey), false, 0)
}

// ReplaceLoginInformationSecret overwrites LoginInformationSecrets[index].
// The index is checked before any key is derived.
func (c *Container) ReplaceLoginInformationSecret(ctx context.Context, index int, password string, rec *records.LoginInformation, keyIdentifier string) error {
	return c.upsertLoginInformation(ctx, rec, keyIdentifier, fromPassword(password), true, index)
}

func (c *Container) ReplaceLoginInformationSecretWithDerivedKey(ctx context.Context, index int, derivedKey []byte, rec *records.LoginInformation, keyIdentifier string) error {
	return c.upsertLoginInformation(ctx, rec, keyIdentifier, fromDerivedKey(derivedKey), true, index)
}

func (c *Container) upsertLoginInformation(ctx context.Context, rec *records.LoginInformation, keyIdentifier string, src keySource, replace bool, index int) error {
	op := upsertOp{kind: records.KindLoginInformation, replace: replace, index: index, isNil: rec == nil, keyIdentifier: keyIdentifier, src: src}
	return upsert(ctx, c, &c.LoginInformationSecrets, op, func(alg cryptox.Algorithm, key []byte) (*secrets.LoginInformationSecret, error) {
		return secrets.NewLoginInformationSecret(c.opts.suite, rec, keyIdentifier, alg, key)
	})
}

// AddLoginInformation appends a plaintext record.
func (c *Container) AddLoginInformation(rec *records.LoginInformation) error {
	return appendRecord(&c.LoginInformation, rec, rec == nil)
}

func (c *Container) AddNoteSecret(ctx context.Context, password string, note *records.Note, keyIdentifier string) error {
	return c.upsertNote(ctx, note, keyIdentifier, fromPassword(password), false, 0)
}

func (c *Container) AddNoteSecretWithDerivedKey(ctx context.Context, derivedKey []byte, note *records.Note, keyIdentifier string) error {
	return c.upsertNote(ctx, note, keyIdentifier, fromDerivedKey(derivedKey), false, 0)
}

func (c *Container) ReplaceNoteSecret(ctx context.Context, index int, password string, note *records.Note, keyIdentifier string) error {
	return c.upsertNote(ctx, note, keyIdentifier, fromPassword(password), true, index)
}

func (c *Container) ReplaceNoteSecretWithDerivedKey(ctx context.Context, index int, derivedKey []byte, note *records.Note, keyIdentifier string) error {
	return c.upsertNote(ctx, note, keyIdentifier, fromDerivedKey(derivedKey), true, index)
}

func (c *Container) upsertNote(ctx context.Context, note *records.Note, keyIdentifier string, src keySource, replace bool, index int) error {
	op := upsertOp{kind: records.KindNote, replace: replace, index: index, isNil: note == nil, keyIdentifier: keyIdentifier, src: src}
	return upsert(ctx, c, &c.NoteSecrets, op, func(alg cryptox.Algorithm, key []byte) (*secrets.NoteSecret, error) {
		return secrets.NewNoteSecret(c.opts.suite, note, keyIdentifier, alg, key)
	})
}

func (c *Container) AddNote(note *records.Note) error {
	return appendRecord(&c.Notes, note, note == nil)
}

func (c *Container) AddFileEntrySecret(ctx context.Context, password string, file *records.FileEntry, keyIdentifier string) error {
	return c.upsertFileEntry(ctx, file, keyIdentifier, fromPassword(password), false, 0)
}

func (c *Container) AddFileEntrySecretWithDerivedKey(ctx context.Context, derivedKey []byte, file *records.FileEntry, keyIdentifier string) error {
	return c.upsertFileEntry(ctx, file, keyIdentifier, fromDerivedKey(derivedKey), false, 0)
}

func (c *Container) ReplaceFileEntrySecret(ctx context.Context, index int, password string, file *records.FileEntry, keyIdentifier string) error {
	return c.upsertFileEntry(ctx, file, keyIdentifier, fromPassword(password), true, index)
}

func (c *Container) ReplaceFileEntrySecretWithDerivedKey(ctx context.Context, index int, derivedKey []byte, file *records.FileEntry, keyIdentifier string) error {
	return c.upsertFileEntry(ctx, file, keyIdentifier, fromDerivedKey(derivedKey), true, index)
}

func (c *Container) upsertFileEntry(ctx context.Context, file *records.FileEntry, keyIdentifier string, src keySource, replace bool, index int) error {
	op := upsertOp{kind: records.KindFileEntry, replace: replace, index: index, isNil: file == nil, keyIdentifier: keyIdentifier, src: src}
	return upsert(ctx, c, &c.FileEntrySecrets, op, func(alg cryptox.Algorithm, key []byte) (*secrets.FileEntrySecret, error) {
		return secrets.NewFileEntrySecret(c.opts.suite, file, keyIdentifier, alg, key)
	})
}

func (c *Container) AddFileEntry(file *records.FileEntry) error {
	return appendRecord(&c.FileEntries, file, file == nil)
}

// AddContactSecret encrypts contact with a key derived from password and
// appends it to ContactSecrets.
func (c *Container) AddContactSecret(ctx context.Context, password string, contact *records.Contact, keyIdentifier string) error {
	return c.upsertContact(ctx, contact, keyIdentifier, fromPassword(password), false, 0)
}

func (c *Container) AddContactSecretWithDerivedKey(ctx context.Context, derivedKey []byte, contact *records.Contact, keyIdentifier string) error {
	return c.upsertContact(ctx, contact, keyIdentifier, fromDerivedKey(derivedKey), false, 0)
}

func (c *Container) ReplaceContactSecret(ctx context.Context, index int, password string, contact *records.Contact, keyIdentifier string) error {
	return c.upsertContact(ctx, contact, keyIdentifier, fromPassword(password), true, index)
}

func (c *Container) ReplaceContactSecretWithDerivedKey(ctx context.Context, index int, derivedKey []byte, contact *records.Contact, keyIdentifier string) error {
	return c.upsertContact(ctx, contact, keyIdentifier, fromDerivedKey(derivedKey), true, index)
}

func (c *Container) upsertContact(ctx context.Context, contact *records.Contact, keyIdentifier string, src keySource, replace bool, index int) error {
	op := upsertOp{kind: records.KindContact, replace: replace, index: index, isNil: contact == nil, keyIdentifier: keyIdentifier, src: src}
	return upsert(ctx, c, &c.ContactSecrets, op, func(alg cryptox.Algorithm, key []byte) (*secrets.ContactSecret, error) {
		return secrets.NewContactSecret(c.opts.suite, contact, keyIdentifier, alg, key)
	})
}

func (c *Container) AddContact(contact *records.Contact) error {
	return appendRecord(&c.Contacts, contact, contact == nil)
}

func (c *Container) AddPaymentCardSecret(ctx context.Context, password string, card *records.PaymentCard, keyIdentifier string) error {
	return c.upsertPaymentCard(ctx, card, keyIdentifier, fromPassword(password), false, 0)
}

func (c *Container) AddPaymentCardSecretWithDerivedKey(ctx context.Context, derivedKey []byte, card *records.PaymentCard, keyIdentifier string) error {
	return c.upsertPaymentCard(ctx, card, keyIdentifier, fromDerivedKey(derivedKey), false, 0)
}

func (c *Container) ReplacePaymentCardSecret(ctx context.Context, index int, password string, card *records.PaymentCard, keyIdentifier string) error {
	return c.upsertPaymentCard(ctx, card, keyIdentifier, fromPassword(password), true, index)
}

func (c *Container) ReplacePaymentCardSecretWithDerivedKey(ctx context.Context, index int, derivedKey []byte, card *records.PaymentCard, keyIdentifier string) error {
	return c.upsertPaymentCard(ctx, card, keyIdentifier, fromDerivedKey(derivedKey), true, index)
}

func (c *Container) upsertPaymentCard(ctx context.Context, card *records.PaymentCard, keyIdentifier string, src keySource, replace bool, index int) error {
	op := upsertOp{kind: records.KindPaymentCard, replace: replace, index: index, isNil: card == nil, keyIdentifier: keyIdentifier, src: src}
	return upsert(ctx, c, &c.PaymentCardSecrets, op, func(alg cryptox.Algorithm, key []byte) (*secrets.PaymentCardSecret, error) {
		return secrets.NewPaymentCardSecret(c.opts.suite, card, keyIdentifier, alg, key)
	})
}

func (c *Container) AddPaymentCard(card *records.PaymentCard) error {
	return appendRecord(&c.PaymentCards, card, card == nil)
}

func (c *Container) AddHistorySecret(ctx context.Context, password string, event *records.History, keyIdentifier string) error {
	return c.upsertHistory(ctx, event, keyIdentifier, fromPassword(password), false, 0)
}

func (c *Container) AddHistorySecretWithDerivedKey(ctx context.Context, derivedKey []byte, event *records.History, keyIdentifier string) error {
	return c.upsertHistory(ctx, event, keyIdentifier, fromDerivedKey(derivedKey), false, 0)
}

func (c *Container) ReplaceHistorySecret(ctx context.Context, index int, password string, event *records.History, keyIdentifier string) error {
	return c.upsertHistory(ctx, event, keyIdentifier, fromPassword(password), true, index)
}

func (c *Container) ReplaceHistorySecretWithDerivedKey(ctx context.Context, index int, derivedKey []byte, event *records.History, keyIdentifier string) error {
	return c.upsertHistory(ctx, event, keyIdentifier, fromDerivedKey(derivedKey), true, index)
}

func (c *Container) upsertHistory(ctx context.Context, event *records.History, keyIdentifier string, src keySource, replace bool, index int) error {
	op := upsertOp{kind: records.KindHistory, replace: replace, index: index, isNil: event == nil, keyIdentifier: keyIdentifier, src: src}
	return upsert(ctx, c, &c.HistorySecrets, op, func(alg cryptox.Algorithm, key []byte) (*secrets.HistorySecret, error) {
		return secrets.NewHistorySecret(c.opts.suite, event, keyIdentifier, alg, key)
	})
}

func (c *Container) AddHistory(event *records.History) error {
	return appendRecord(&c.History, event, event == nil)
}
