package secrets

import (
	"github.com/dmitrijs2005/gophvault/internal/common"
	"github.com/dmitrijs2005/gophvault/internal/cryptox"
	"github.com/dmitrijs2005/gophvault/internal/fields"
	"github.com/dmitrijs2005/gophvault/internal/records"
)

// LoginInformationSecret is an encrypted LoginInformation.
type LoginInformationSecret struct {
	Secret[*records.LoginInformation]
}

// NewLoginInformationSecret encrypts rec under derivedKey. The key must
// match the size in alg; it is checked before anything is encrypted.
func NewLoginInformationSecret(suite Suite, rec *records.LoginInformation, keyIdentifier string, alg cryptox.Algorithm, derivedKey []byte) (*LoginInformationSecret, error) {
	if rec == nil {
		return nil, common.ErrNilRecord
	}
	return NewLoginInformationSecretFromFields(suite, rec.Fields(), keyIdentifier, alg, derivedKey)
}

// NewLoginInformationSecretFromFields encrypts a caller-built field map.
// Keys outside the schema are kept in the ciphertext but ignored by Get.
func NewLoginInformationSecretFromFields(suite Suite, m fields.Map, keyIdentifier string, alg cryptox.Algorithm, derivedKey []byte) (*LoginInformationSecret, error) {
	s, err := newSecret[*records.LoginInformation](suite, records.KindLoginInformation, records.FromLoginInformationFields, m, keyIdentifier, alg, derivedKey)
	if err != nil {
		return nil, err
	}
	return &LoginInformationSecret{Secret: s}, nil
}

// RestoreLoginInformationSecret rebuilds a secret from its sealed form. The
// stored checksum is kept as is so CheckChecksum can detect tampering.
func RestoreLoginInformationSecret(suite Suite, sealed Sealed) (*LoginInformationSecret, error) {
	s, err := restore[*records.LoginInformation](suite, records.KindLoginInformation, records.FromLoginInformationFields, sealed)
	if err != nil {
		return nil, err
	}
	return &LoginInformationSecret{Secret: s}, nil
}

func (s *LoginInformationSecret) GetLoginInformation(derivedKey []byte) (*records.LoginInformation, error) {
	return s.Get(derivedKey)
}

func (s *LoginInformationSecret) Clone() *LoginInformationSecret {
	return &LoginInformationSecret{Secret: s.clone()}
}

// NoteSecret is an encrypted Note.
type NoteSecret struct {
	Secret[*records.Note]
}

func NewNoteSecret(suite Suite, rec *records.Note, keyIdentifier string, alg cryptox.Algorithm, derivedKey []byte) (*NoteSecret, error) {
	if rec == nil {
		return nil, common.ErrNilRecord
	}
	return NewNoteSecretFromFields(suite, rec.Fields(), keyIdentifier, alg, derivedKey)
}

func NewNoteSecretFromFields(suite Suite, m fields.Map, keyIdentifier string, alg cryptox.Algorithm, derivedKey []byte) (*NoteSecret, error) {
	s, err := newSecret[*records.Note](suite, records.KindNote, records.FromNoteFields, m, keyIdentifier, alg, derivedKey)
	if err != nil {
		return nil, err
	}
	return &NoteSecret{Secret: s}, nil
}

func RestoreNoteSecret(suite Suite, sealed Sealed) (*NoteSecret, error) {
	s, err := restore[*records.Note](suite, records.KindNote, records.FromNoteFields, sealed)
	if err != nil {
		return nil, err
	}
	return &NoteSecret{Secret: s}, nil
}

func (s *NoteSecret) GetNote(derivedKey []byte) (*records.Note, error) {
	return s.Get(derivedKey)
}

func (s *NoteSecret) Clone() *NoteSecret { return &NoteSecret{Secret: s.clone()} }

// FileEntrySecret is an encrypted FileEntry.
type FileEntrySecret struct {
	Secret[*records.FileEntry]
}

func NewFileEntrySecret(suite Suite, rec *records.FileEntry, keyIdentifier string, alg cryptox.Algorithm, derivedKey []byte) (*FileEntrySecret, error) {
	if rec == nil {
		return nil, common.ErrNilRecord
	}
	return NewFileEntrySecretFromFields(suite, rec.Fields(), keyIdentifier, alg, derivedKey)
}

func NewFileEntrySecretFromFields(suite Suite, m fields.Map, keyIdentifier string, alg cryptox.Algorithm, derivedKey []byte) (*FileEntrySecret, error) {
	s, err := newSecret[*records.FileEntry](suite, records.KindFileEntry, records.FromFileEntryFields, m, keyIdentifier, alg, derivedKey)
	if err != nil {
		return nil, err
	}
	return &FileEntrySecret{Secret: s}, nil
}

func RestoreFileEntrySecret(suite Suite, sealed Sealed) (*FileEntrySecret, error) {
	s, err := restore[*records.FileEntry](suite, records.KindFileEntry, records.FromFileEntryFields, sealed)
	if err != nil {
		return nil, err
	}
	return &FileEntrySecret{Secret: s}, nil
}

func (s *FileEntrySecret) GetFileEntry(derivedKey []byte) (*records.FileEntry, error) {
	return s.Get(derivedKey)
}

func (s *FileEntrySecret) Clone() *FileEntrySecret { return &FileEntrySecret{Secret: s.clone()} }

// ContactSecret is an encrypted Contact.
type ContactSecret struct {
	Secret[*records.Contact]
}

func NewContactSecret(suite Suite, rec *records.Contact, keyIdentifier string, alg cryptox.Algorithm, derivedKey []byte) (*ContactSecret, error) {
	if rec == nil {
		return nil, common.ErrNilRecord
	}
	return NewContactSecretFromFields(suite, rec.Fields(), keyIdentifier, alg, derivedKey)
}

func NewContactSecretFromFields(suite Suite, m fields.Map, keyIdentifier string, alg cryptox.Algorithm, derivedKey []byte) (*ContactSecret, error) {
	s, err := newSecret[*records.Contact](suite, records.KindContact, records.FromContactFields, m, keyIdentifier, alg, derivedKey)
	if err != nil {
		return nil, err
	}
	return &ContactSecret{Secret: s}, nil
}

func RestoreContactSecret(suite Suite, sealed Sealed) (*ContactSecret, error) {
	s, err := restore[*records.Contact](suite, records.KindContact, records.FromContactFields, sealed)
	if err != nil {
		return nil, err
	}
	return &ContactSecret{Secret: s}, nil
}

func (s *ContactSecret) GetContact(derivedKey []byte) (*records.Contact, error) {
	return s.Get(derivedKey)
}

func (s *ContactSecret) Clone() *ContactSecret { return &ContactSecret{Secret: s.clone()} }

// PaymentCardSecret is an encrypted PaymentCard.
type PaymentCardSecret struct {
	Secret[*records.PaymentCard]
}

func NewPaymentCardSecret(suite Suite, rec *records.PaymentCard, keyIdentifier string, alg cryptox.Algorithm, derivedKey []byte) (*PaymentCardSecret, error) {
	if rec == nil {
		return nil, common.ErrNilRecord
	}
	return NewPaymentCardSecretFromFields(suite, rec.Fields(), keyIdentifier, alg, derivedKey)
}

func NewPaymentCardSecretFromFields(suite Suite, m fields.Map, keyIdentifier string, alg cryptox.Algorithm, derivedKey []byte) (*PaymentCardSecret, error) {
	s, err := newSecret[*records.PaymentCard](suite, records.KindPaymentCard, records.FromPaymentCardFields, m, keyIdentifier, alg, derivedKey)
	if err != nil {
		return nil, err
	}
	return &PaymentCardSecret{Secret: s}, nil
}

func RestorePaymentCardSecret(suite Suite, sealed Sealed) (*PaymentCardSecret, error) {
	s, err := restore[*records.PaymentCard](suite, records.KindPaymentCard, records.FromPaymentCardFields, sealed)
	if err != nil {
		return nil, err
	}
	return &PaymentCardSecret{Secret: s}, nil
}

func (s *PaymentCardSecret) GetPaymentCard(derivedKey []byte) (*records.PaymentCard, error) {
	return s.Get(derivedKey)
}

func (s *PaymentCardSecret) Clone() *PaymentCardSecret { return &PaymentCardSecret{Secret: s.clone()} }

// HistorySecret is an encrypted History event.
type HistorySecret struct {
	Secret[*records.History]
}

func NewHistorySecret(suite Suite, rec *records.History, keyIdentifier string, alg cryptox.Algorithm, derivedKey []byte) (*HistorySecret, error) {
	if rec == nil {
		return nil, common.ErrNilRecord
	}
	return NewHistorySecretFromFields(suite, rec.Fields(), keyIdentifier, alg, derivedKey)
}

func NewHistorySecretFromFields(suite Suite, m fields.Map, keyIdentifier string, alg cryptox.Algorithm, derivedKey []byte) (*HistorySecret, error) {
	s, err := newSecret[*records.History](suite, records.KindHistory, records.FromHistoryFields, m, keyIdentifier, alg, derivedKey)
	if err != nil {
		return nil, err
	}
	return &HistorySecret{Secret: s}, nil
}

func RestoreHistorySecret(suite Suite, sealed Sealed) (*HistorySecret, error) {
	s, err := restore[*records.History](suite, records.KindHistory, records.FromHistoryFields, sealed)
	if err != nil {
		return nil, err
	}
	return &HistorySecret{Secret: s}, nil
}

func (s *HistorySecret) GetHistory(derivedKey []byte) (*records.History, error) {
	return s.Get(derivedKey)
}

func (s *HistorySecret) Clone() *HistorySecret { return &HistorySecret{Secret: s.clone()} }
