package container

import (
	"bytes"
	"context"
	"fmt"

	"github.com/dmitrijs2005/gophvault/internal/common"
	"github.com/dmitrijs2005/gophvault/internal/cryptox"
	"github.com/dmitrijs2005/gophvault/internal/kdf"
	"github.com/dmitrijs2005/gophvault/internal/records"
	"github.com/dmitrijs2005/gophvault/internal/secrets"
	"github.com/google/uuid"
)

// CurrentVersion is the version tag written into new containers.
const CurrentVersion = 1

// Container holds six pairs of plaintext and secret record lists plus the
// key-derivation entries secrets reference by identifier.
type Container struct {
	Version int
	ID      string

	LoginInformation        []*records.LoginInformation
	LoginInformationSecrets []*secrets.LoginInformationSecret
	Notes                   []*records.Note
	NoteSecrets             []*secrets.NoteSecret
	FileEntries             []*records.FileEntry
	FileEntrySecrets        []*secrets.FileEntrySecret
	Contacts                []*records.Contact
	ContactSecrets          []*secrets.ContactSecret
	PaymentCards            []*records.PaymentCard
	PaymentCardSecrets      []*secrets.PaymentCardSecret
	History                 []*records.History
	HistorySecrets          []*secrets.HistorySecret

	entries *kdf.Index
	opts    options
	cache   *keyCache
}

// New returns an empty container with a random ID.
func New(opts ...Option) (*Container, error) {
	o := buildOptions(opts)
	c := &Container{
		Version: CurrentVersion,
		ID:      uuid.NewString(),
		entries: &kdf.Index{},
		opts:    o,
	}
	if o.keyCache {
		cache, err := newKeyCache()
		if err != nil {
			return nil, fmt.Errorf("init key cache: %w", err)
		}
		c.cache = cache
	}
	return c, nil
}

// Suite returns the capabilities secrets in this container are built with.
func (c *Container) Suite() secrets.Suite { return c.opts.suite }

// AddKeyDerivationEntry registers e. Identifiers must be unique and the key
// length must suit the container's cipher.
func (c *Container) AddKeyDerivationEntry(e kdf.Entry) error {
	if err := cryptox.CheckKeySize(c.opts.cipher, e.KeyLength()*8); err != nil {
		return fmt.Errorf("entry %s: %w", e.Identifier, err)
	}
	return c.entries.Add(e)
}

// RemoveKeyDerivationEntry deletes the entry and any cached keys derived
// from it. Secrets that reference the identifier are left in place and can
// no longer be used with the password overloads.
func (c *Container) RemoveKeyDerivationEntry(identifier string) bool {
	if c.cache != nil {
		c.cache.forget(identifier)
	}
	return c.entries.Remove(identifier)
}

// FindKeyDerivationEntry looks an entry up by exact identifier.
func (c *Container) FindKeyDerivationEntry(identifier string) (kdf.Entry, bool) {
	return c.entries.Find(identifier)
}

// KeyDerivationEntries returns copies of all entries in insertion order.
func (c *Container) KeyDerivationEntries() []kdf.Entry {
	return c.entries.Entries()
}

// DeriveKey derives the key for identifier from password. The caller owns
// the returned slice.
func (c *Container) DeriveKey(ctx context.Context, identifier, password string) ([]byte, error) {
	entry, ok := c.entries.Find(identifier)
	if !ok {
		return nil, unresolved(identifier)
	}
	if password == "" {
		return nil, common.ErrEmptyPassword
	}
	return c.derive(ctx, entry, password)
}

// ForgetDerivedKeys wipes every cached key.
func (c *Container) ForgetDerivedKeys() {
	if c.cache != nil {
		c.cache.clear()
	}
}

func (c *Container) derive(ctx context.Context, entry kdf.Entry, password string) ([]byte, error) {
	if c.cache != nil {
		if k, ok := c.cache.get(entry.Identifier, password); ok {
			return k, nil
		}
	}

	k, err := entry.DeriveKey(ctx, password)
	if err != nil {
		return nil, err
	}
	if c.cache != nil {
		c.cache.put(entry.Identifier, password, k)
	}
	return k, nil
}

func unresolved(identifier string) error {
	return fmt.Errorf("%w matching to: %s", common.ErrUnresolvedKeyIdentifier, identifier)
}

// keySource is either a password to derive from or a caller-supplied key.
type keySource struct {
	password   string
	derivedKey []byte
	supplied   bool
}

func fromPassword(pw string) keySource { return keySource{password: pw} }

func fromDerivedKey(k []byte) keySource { return keySource{derivedKey: k, supplied: true} }

// mandatoryChecks validates the inputs shared by every Add and Replace call
// and returns the resolved entry.
func (c *Container) mandatoryChecks(isNil bool, keyIdentifier string, src keySource) (kdf.Entry, error) {
	if isNil {
		return kdf.Entry{}, common.ErrNilRecord
	}

	entry, ok := c.entries.Find(keyIdentifier)
	if !ok {
		return kdf.Entry{}, unresolved(keyIdentifier)
	}

	if src.supplied {
		if len(src.derivedKey) == 0 || len(src.derivedKey) != entry.KeyLength() {
			return kdf.Entry{}, fmt.Errorf("%w: want %d bytes, got %d", common.ErrInvalidKey, entry.KeyLength(), len(src.derivedKey))
		}
	} else if src.password == "" {
		return kdf.Entry{}, common.ErrEmptyPassword
	}

	return entry, nil
}

func (c *Container) resolveKey(ctx context.Context, entry kdf.Entry, src keySource) ([]byte, error) {
	if src.supplied {
		return bytes.Clone(src.derivedKey), nil
	}
	return c.derive(ctx, entry, src.password)
}

type upsertOp struct {
	kind          records.Kind
	replace       bool
	index         int
	isNil         bool
	keyIdentifier string
	src           keySource
}

// upsert runs the checks, derives the key, encrypts through create and then
// appends to or overwrites an element of list. The list is only touched
// after create succeeded.
func upsert[S any](ctx context.Context, c *Container, list *[]S, op upsertOp, create func(cryptox.Algorithm, []byte) (S, error)) (err error) {
	name := "add"
	if op.replace {
		name = "replace"
	}
	log := c.opts.logger.With("op", name, "kind", string(op.kind), "key_identifier", op.keyIdentifier)

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%s %s secret: %v", name, op.kind, r)
		}
		if err != nil {
			log.Warn(ctx, "secret not stored", "error", err)
			return
		}
		log.Debug(ctx, "secret stored", "index", op.index)
	}()

	entry, err := c.mandatoryChecks(op.isNil, op.keyIdentifier, op.src)
	if err != nil {
		return err
	}
	if op.replace && (op.index < 0 || op.index >= len(*list)) {
		return common.ErrIndexOutOfRange
	}

	key, err := c.resolveKey(ctx, entry, op.src)
	if err != nil {
		return err
	}
	defer cryptox.WipeBytes(key)

	alg, err := cryptox.GenerateAlgorithm(c.opts.cipher, entry.KeyLength()*8)
	if err != nil {
		return err
	}

	s, err := create(alg, key)
	if err != nil {
		return err
	}

	if op.replace {
		(*list)[op.index] = s
	} else {
		*list = append(*list, s)
		op.index = len(*list) - 1
	}
	return nil
}

func appendRecord[R any](list *[]R, rec R, isNil bool) error {
	if isNil {
		return common.ErrNilRecord
	}
	*list = append(*list, rec)
	return nil
}

// Tampered identifies a record whose stored checksum does not match its
// content.
type Tampered struct {
	Kind   records.Kind
	Index  int
	Secret bool
}

// VerifyChecksums checks every plaintext and secret record and reports the
// ones that fail. It never modifies anything.
func (c *Container) VerifyChecksums() []Tampered {
	var out []Tampered
	check := func(kind records.Kind, secret bool, n int, ok func(int) bool) {
		for i := 0; i < n; i++ {
			if !ok(i) {
				out = append(out, Tampered{Kind: kind, Index: i, Secret: secret})
			}
		}
	}

	check(records.KindLoginInformation, false, len(c.LoginInformation), func(i int) bool { return c.LoginInformation[i].CheckChecksum() })
	check(records.KindLoginInformation, true, len(c.LoginInformationSecrets), func(i int) bool { return c.LoginInformationSecrets[i].CheckChecksum() })
	check(records.KindNote, false, len(c.Notes), func(i int) bool { return c.Notes[i].CheckChecksum() })
	check(records.KindNote, true, len(c.NoteSecrets), func(i int) bool { return c.NoteSecrets[i].CheckChecksum() })
	check(records.KindFileEntry, false, len(c.FileEntries), func(i int) bool { return c.FileEntries[i].CheckChecksum() })
	check(records.KindFileEntry, true, len(c.FileEntrySecrets), func(i int) bool { return c.FileEntrySecrets[i].CheckChecksum() })
	check(records.KindContact, false, len(c.Contacts), func(i int) bool { return c.Contacts[i].CheckChecksum() })
	check(records.KindContact, true, len(c.ContactSecrets), func(i int) bool { return c.ContactSecrets[i].CheckChecksum() })
	check(records.KindPaymentCard, false, len(c.PaymentCards), func(i int) bool { return c.PaymentCards[i].CheckChecksum() })
	check(records.KindPaymentCard, true, len(c.PaymentCardSecrets), func(i int) bool { return c.PaymentCardSecrets[i].CheckChecksum() })
	check(records.KindHistory, false, len(c.History), func(i int) bool { return c.History[i].CheckChecksum() })
	check(records.KindHistory, true, len(c.HistorySecrets), func(i int) bool { return c.HistorySecrets[i].CheckChecksum() })

	return out
}

func cloneAll[T any](in []T, clone func(T) T) []T {
	if in == nil {
		return nil
	}
	out := make([]T, len(in))
	for i, v := range in {
		out[i] = clone(v)
	}
	return out
}

// Clone returns a deep copy. The copy starts with an empty key cache.
func (c *Container) Clone() *Container {
	d := &Container{
		Version: c.Version,
		ID:      c.ID,
		entries: c.entries.Clone(),
		opts:    c.opts,

		LoginInformation:        cloneAll(c.LoginInformation, (*records.LoginInformation).Clone),
		LoginInformationSecrets: cloneAll(c.LoginInformationSecrets, (*secrets.LoginInformationSecret).Clone),
		Notes:                   cloneAll(c.Notes, (*records.Note).Clone),
		NoteSecrets:             cloneAll(c.NoteSecrets, (*secrets.NoteSecret).Clone),
		FileEntries:             cloneAll(c.FileEntries, (*records.FileEntry).Clone),
		FileEntrySecrets:        cloneAll(c.FileEntrySecrets, (*secrets.FileEntrySecret).Clone),
		Contacts:                cloneAll(c.Contacts, (*records.Contact).Clone),
		ContactSecrets:          cloneAll(c.ContactSecrets, (*secrets.ContactSecret).Clone),
		PaymentCards:            cloneAll(c.PaymentCards, (*records.PaymentCard).Clone),
		PaymentCardSecrets:      cloneAll(c.PaymentCardSecrets, (*secrets.PaymentCardSecret).Clone),
		History:                 cloneAll(c.History, (*records.History).Clone),
		HistorySecrets:          cloneAll(c.HistorySecrets, (*secrets.HistorySecret).Clone),
	}
	if c.cache != nil {
		if cache, err := newKeyCache(); err == nil {
			d.cache = cache
		}
	}
	return d
}
