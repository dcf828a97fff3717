package records

import "github.com/dmitrijs2005/gophvault/internal/fields"

const (
	KeyTitle    = "title"
	KeyURL      = "url"
	KeyEmail    = "email"
	KeyUsername = "username"
	KeyPassword = "password"
	KeyNotes    = "notes"
	KeyMFA      = "mfa"
	KeyIcon     = "icon"
	KeyCategory = "category"
	KeyTags     = "tags"
)

var loginSchema = append(
	strs(KeyTitle, KeyURL, KeyEmail, KeyUsername, KeyPassword, KeyNotes, KeyMFA),
	fields.Field{Key: KeyIcon, Kind: fields.KindBytes},
	fields.Field{Key: KeyCategory, Kind: fields.KindString},
	fields.Field{Key: KeyTags, Kind: fields.KindString},
)

// LoginDetails carries the values of a new LoginInformation.
type LoginDetails struct {
	Title    string
	URL      string
	Email    string
	Username string
	Password string
	Notes    string
	MFA      string
	Icon     []byte
	Category string
	Tags     []string
}

// LoginInformation is a website or service credential.
type LoginInformation struct {
	base
}

// NewLoginInformation creates a login record stamped with the current time.
func NewLoginInformation(d LoginDetails, opts ...Option) *LoginInformation {
	return &LoginInformation{base: newBase(KindLoginInformation, fields.Map{
		KeyTitle:    fields.String(d.Title),
		KeyURL:      fields.String(d.URL),
		KeyEmail:    fields.String(d.Email),
		KeyUsername: fields.String(d.Username),
		KeyPassword: fields.String(d.Password),
		KeyNotes:    fields.String(d.Notes),
		KeyMFA:      fields.String(d.MFA),
		KeyIcon:     fields.Bytes(d.Icon),
		KeyCategory: fields.String(d.Category),
		KeyTags:     fields.String(JoinMulti(d.Tags)),
	}, opts)}
}

// FromLoginInformationFields rebuilds a login record from its field map.
func FromLoginInformationFields(m fields.Map, opts ...Option) (*LoginInformation, error) {
	b, err := fromFields(KindLoginInformation, m, opts)
	if err != nil {
		return nil, err
	}
	return &LoginInformation{base: b}, nil
}

func (l *LoginInformation) Title() string    { return l.str(KeyTitle) }
func (l *LoginInformation) URL() string      { return l.str(KeyURL) }
func (l *LoginInformation) Email() string    { return l.str(KeyEmail) }
func (l *LoginInformation) Username() string { return l.str(KeyUsername) }
func (l *LoginInformation) Password() string { return l.str(KeyPassword) }
func (l *LoginInformation) Notes() string    { return l.str(KeyNotes) }
func (l *LoginInformation) MFA() string      { return l.str(KeyMFA) }
func (l *LoginInformation) Icon() []byte     { return l.raw(KeyIcon) }
func (l *LoginInformation) Category() string { return l.str(KeyCategory) }
func (l *LoginInformation) Tags() []string   { return l.list(KeyTags) }

func (l *LoginInformation) UpdateTitle(v string)    { l.setStr(KeyTitle, v) }
func (l *LoginInformation) UpdateURL(v string)      { l.setStr(KeyURL, v) }
func (l *LoginInformation) UpdateEmail(v string)    { l.setStr(KeyEmail, v) }
func (l *LoginInformation) UpdateUsername(v string) { l.setStr(KeyUsername, v) }
func (l *LoginInformation) UpdatePassword(v string) { l.setStr(KeyPassword, v) }
func (l *LoginInformation) UpdateNotes(v string)    { l.setStr(KeyNotes, v) }
func (l *LoginInformation) UpdateMFA(v string)      { l.setStr(KeyMFA, v) }
func (l *LoginInformation) UpdateIcon(v []byte)     { l.setRaw(KeyIcon, v) }
func (l *LoginInformation) UpdateCategory(v string) { l.setStr(KeyCategory, v) }
func (l *LoginInformation) UpdateTags(v []string)   { l.setList(KeyTags, v) }

// Clone returns a deep copy.
func (l *LoginInformation) Clone() *LoginInformation {
	return &LoginInformation{base: l.base.clone()}
}
