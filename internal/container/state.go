package container

import (
	"fmt"

	"github.com/dmitrijs2005/gophvault/internal/common"
	"github.com/dmitrijs2005/gophvault/internal/fields"
	"github.com/dmitrijs2005/gophvault/internal/kdf"
	"github.com/dmitrijs2005/gophvault/internal/records"
	"github.com/dmitrijs2005/gophvault/internal/secrets"
)

// State is the persisted form of a container. Records and secrets appear
// grouped by kind, each group in list order.
type State struct {
	Version              int              `json:"version" cbor:"version"`
	ID                   string           `json:"id" cbor:"id"`
	KeyDerivationEntries []kdf.Entry      `json:"key_derivation_entries" cbor:"key_derivation_entries"`
	Records              []RecordState    `json:"records" cbor:"records"`
	Secrets              []secrets.Sealed `json:"secrets" cbor:"secrets"`
}

// RecordState is a plaintext record serialized with the container's codec.
type RecordState struct {
	Kind     records.Kind `json:"kind" cbor:"kind"`
	Payload  []byte       `json:"payload" cbor:"payload"`
	Checksum string       `json:"checksum" cbor:"checksum"`
}

// Export snapshots the container.
func (c *Container) Export() (State, error) {
	st := State{
		Version:              c.Version,
		ID:                   c.ID,
		KeyDerivationEntries: c.entries.Entries(),
	}

	add := func(r records.Record) error {
		payload, err := c.opts.suite.Codec.Marshal(r.Fields())
		if err != nil {
			return fmt.Errorf("export %s: %w", r.Kind(), err)
		}
		st.Records = append(st.Records, RecordState{Kind: r.Kind(), Payload: payload, Checksum: r.Checksum()})
		return nil
	}

	for _, r := range c.plaintext() {
		if err := add(r); err != nil {
			return State{}, err
		}
	}
	st.Secrets = c.sealed()
	return st, nil
}

func (c *Container) plaintext() []records.Record {
	var out []records.Record
	for _, r := range c.LoginInformation {
		out = append(out, r)
	}
	for _, r := range c.Notes {
		out = append(out, r)
	}
	for _, r := range c.FileEntries {
		out = append(out, r)
	}
	for _, r := range c.Contacts {
		out = append(out, r)
	}
	for _, r := range c.PaymentCards {
		out = append(out, r)
	}
	for _, r := range c.History {
		out = append(out, r)
	}
	return out
}

func (c *Container) sealed() []secrets.Sealed {
	var out []secrets.Sealed
	for _, s := range c.LoginInformationSecrets {
		out = append(out, s.Seal())
	}
	for _, s := range c.NoteSecrets {
		out = append(out, s.Seal())
	}
	for _, s := range c.FileEntrySecrets {
		out = append(out, s.Seal())
	}
	for _, s := range c.ContactSecrets {
		out = append(out, s.Seal())
	}
	for _, s := range c.PaymentCardSecrets {
		out = append(out, s.Seal())
	}
	for _, s := range c.HistorySecrets {
		out = append(out, s.Seal())
	}
	return out
}

// Import replaces the container's contents with st. Plaintext records whose
// checksum does not match their payload are rejected; secret checksums are
// kept as stored and reported by VerifyChecksums. On error the container is
// unchanged.
func (c *Container) Import(st State) error {
	if st.Version > CurrentVersion {
		return fmt.Errorf("container version %d is newer than supported %d", st.Version, CurrentVersion)
	}

	entries, err := kdf.NewIndex(st.KeyDerivationEntries...)
	if err != nil {
		return fmt.Errorf("import key derivation entries: %w", err)
	}

	d := &Container{Version: st.Version, ID: st.ID, entries: entries, opts: c.opts}
	ropts := c.opts.suite.RecordOptions()

	for i, rs := range st.Records {
		m, err := c.opts.suite.Codec.Unmarshal(rs.Payload)
		if err != nil {
			return fmt.Errorf("import record %d: %w", i, err)
		}
		rec, err := d.restoreRecord(rs.Kind, m, ropts)
		if err != nil {
			return fmt.Errorf("import record %d: %w", i, err)
		}
		if rec.Checksum() != rs.Checksum {
			return fmt.Errorf("import record %d: %w", i, common.ErrChecksumMismatch)
		}
	}

	for i, s := range st.Secrets {
		if err := d.restoreSecret(s); err != nil {
			return fmt.Errorf("import secret %d: %w", i, err)
		}
	}

	c.ForgetDerivedKeys()
	cache := c.cache
	*c = *d
	c.cache = cache
	return nil
}

func (c *Container) restoreRecord(kind records.Kind, m fields.Map, opts []records.Option) (records.Record, error) {
	switch kind {
	case records.KindLoginInformation:
		r, err := records.FromLoginInformationFields(m, opts...)
		if err != nil {
			return nil, err
		}
		c.LoginInformation = append(c.LoginInformation, r)
		return r, nil
	case records.KindNote:
		r, err := records.FromNoteFields(m, opts...)
		if err != nil {
			return nil, err
		}
		c.Notes = append(c.Notes, r)
		return r, nil
	case records.KindFileEntry:
		r, err := records.FromFileEntryFields(m, opts...)
		if err != nil {
			return nil, err
		}
		c.FileEntries = append(c.FileEntries, r)
		return r, nil
	case records.KindContact:
		r, err := records.FromContactFields(m, opts...)
		if err != nil {
			return nil, err
		}
		c.Contacts = append(c.Contacts, r)
		return r, nil
	case records.KindPaymentCard:
		r, err := records.FromPaymentCardFields(m, opts...)
		if err != nil {
			return nil, err
		}
		c.PaymentCards = append(c.PaymentCards, r)
		return r, nil
	case records.KindHistory:
		r, err := records.FromHistoryFields(m, opts...)
		if err != nil {
			return nil, err
		}
		c.History = append(c.History, r)
		return r, nil
	default:
		return nil, fmt.Errorf("unknown record kind %q", kind)
	}
}

func (c *Container) restoreSecret(sealed secrets.Sealed) error {
	suite := c.opts.suite
	switch sealed.Kind {
	case records.KindLoginInformation:
		s, err := secrets.RestoreLoginInformationSecret(suite, sealed)
		if err != nil {
			return err
		}
		c.LoginInformationSecrets = append(c.LoginInformationSecrets, s)
	case records.KindNote:
		s, err := secrets.RestoreNoteSecret(suite, sealed)
		if err != nil {
			return err
		}
		c.NoteSecrets = append(c.NoteSecrets, s)
	case records.KindFileEntry:
		s, err := secrets.RestoreFileEntrySecret(suite, sealed)
		if err != nil {
			return err
		}
		c.FileEntrySecrets = append(c.FileEntrySecrets, s)
	case records.KindContact:
		s, err := secrets.RestoreContactSecret(suite, sealed)
		if err != nil {
			return err
		}
		c.ContactSecrets = append(c.ContactSecrets, s)
	case records.KindPaymentCard:
		s, err := secrets.RestorePaymentCardSecret(suite, sealed)
		if err != nil {
			return err
		}
		c.PaymentCardSecrets = append(c.PaymentCardSecrets, s)
	case records.KindHistory:
		s, err := secrets.RestoreHistorySecret(suite, sealed)
		if err != nil {
			return err
		}
		c.HistorySecrets = append(c.HistorySecrets, s)
	default:
		return fmt.Errorf("unknown secret kind %q", sealed.Kind)
	}
	return nil
}
