package records

import "github.com/dmitrijs2005/gophvault/internal/fields"

const (
	KeyFirstName               = "first_name"
	KeyLastName                = "last_name"
	KeyMiddleName              = "middle_name"
	KeyNamePrefix              = "name_prefix"
	KeyNameSuffix              = "name_suffix"
	KeyNickname                = "nickname"
	KeyCompany                 = "company"
	KeyJobTitle                = "job_title"
	KeyDepartment              = "department"
	KeyEmails                  = "emails"
	KeyEmailDescriptions       = "email_descriptions"
	KeyPhoneNumbers            = "phone_numbers"
	KeyPhoneNumberDescriptions = "phone_number_descriptions"
	KeyCountry                 = "country"
	KeyStreetAddress           = "street_address"
	KeyStreetAddressAdditional = "street_address_additional"
	KeyPostalCode              = "postal_code"
	KeyCity                    = "city"
	KeyPOBox                   = "po_box"
	KeyBirthday                = "birthday"
	KeyWebsites                = "websites"
	KeyRelationship            = "relationship"
)

var contactSchema = strs(
	KeyFirstName, KeyLastName, KeyMiddleName, KeyNamePrefix, KeyNameSuffix,
	KeyNickname, KeyCompany, KeyJobTitle, KeyDepartment,
	KeyEmails, KeyEmailDescriptions, KeyPhoneNumbers, KeyPhoneNumberDescriptions,
	KeyCountry, KeyStreetAddress, KeyStreetAddressAdditional, KeyPostalCode, KeyCity, KeyPOBox,
	KeyBirthday, KeyWebsites, KeyRelationship, KeyNotes,
)

// ContactDetails carries the values of a new Contact. Emails, phone numbers
// and their descriptions are parallel slices.
type ContactDetails struct {
	FirstName               string
	LastName                string
	MiddleName              string
	NamePrefix              string
	NameSuffix              string
	Nickname                string
	Company                 string
	JobTitle                string
	Department              string
	Emails                  []string
	EmailDescriptions       []string
	PhoneNumbers            []string
	PhoneNumberDescriptions []string
	Country                 string
	StreetAddress           string
	StreetAddressAdditional string
	PostalCode              string
	City                    string
	POBox                   string
	Birthday                string
	Websites                []string
	Relationship            string
	Notes                   string
}

// Contact is an address book entry.
type Contact struct {
	base
}

func NewContact(d ContactDetails, opts ...Option) *Contact {
	return &Contact{base: newBase(KindContact, fields.Map{
		KeyFirstName:               fields.String(d.FirstName),
		KeyLastName:                fields.String(d.LastName),
		KeyMiddleName:              fields.String(d.MiddleName),
		KeyNamePrefix:              fields.String(d.NamePrefix),
		KeyNameSuffix:              fields.String(d.NameSuffix),
		KeyNickname:                fields.String(d.Nickname),
		KeyCompany:                 fields.String(d.Company),
		KeyJobTitle:                fields.String(d.JobTitle),
		KeyDepartment:              fields.String(d.Department),
		KeyEmails:                  fields.String(JoinMulti(d.Emails)),
		KeyEmailDescriptions:       fields.String(JoinMulti(d.EmailDescriptions)),
		KeyPhoneNumbers:            fields.String(JoinMulti(d.PhoneNumbers)),
		KeyPhoneNumberDescriptions: fields.String(JoinMulti(d.PhoneNumberDescriptions)),
		KeyCountry:                 fields.String(d.Country),
		KeyStreetAddress:           fields.String(d.StreetAddress),
		KeyStreetAddressAdditional: fields.String(d.StreetAddressAdditional),
		KeyPostalCode:              fields.String(d.PostalCode),
		KeyCity:                    fields.String(d.City),
		KeyPOBox:                   fields.String(d.POBox),
		KeyBirthday:                fields.String(d.Birthday),
		KeyWebsites:                fields.String(JoinMulti(d.Websites)),
		KeyRelationship:            fields.String(d.Relationship),
		KeyNotes:                   fields.String(d.Notes),
	}, opts)}
}

func FromContactFields(m fields.Map, opts ...Option) (*Contact, error) {
	b, err := fromFields(KindContact, m, opts)
	if err != nil {
		return nil, err
	}
	return &Contact{base: b}, nil
}

func (c *Contact) FirstName() string                 { return c.str(KeyFirstName) }
func (c *Contact) LastName() string                  { return c.str(KeyLastName) }
func (c *Contact) MiddleName() string                { return c.str(KeyMiddleName) }
func (c *Contact) NamePrefix() string                { return c.str(KeyNamePrefix) }
func (c *Contact) NameSuffix() string                { return c.str(KeyNameSuffix) }
func (c *Contact) Nickname() string                  { return c.str(KeyNickname) }
func (c *Contact) Company() string                   { return c.str(KeyCompany) }
func (c *Contact) JobTitle() string                  { return c.str(KeyJobTitle) }
func (c *Contact) Department() string                { return c.str(KeyDepartment) }
func (c *Contact) Emails() []string                  { return c.list(KeyEmails) }
func (c *Contact) EmailDescriptions() []string       { return c.list(KeyEmailDescriptions) }
func (c *Contact) PhoneNumbers() []string            { return c.list(KeyPhoneNumbers) }
func (c *Contact) PhoneNumberDescriptions() []string { return c.list(KeyPhoneNumberDescriptions) }
func (c *Contact) Country() string                   { return c.str(KeyCountry) }
func (c *Contact) StreetAddress() string             { return c.str(KeyStreetAddress) }
func (c *Contact) StreetAddressAdditional() string   { return c.str(KeyStreetAddressAdditional) }
func (c *Contact) PostalCode() string                { return c.str(KeyPostalCode) }
func (c *Contact) City() string                      { return c.str(KeyCity) }
func (c *Contact) POBox() string                     { return c.str(KeyPOBox) }
func (c *Contact) Birthday() string                  { return c.str(KeyBirthday) }
func (c *Contact) Websites() []string                { return c.list(KeyWebsites) }
func (c *Contact) Relationship() string              { return c.str(KeyRelationship) }
func (c *Contact) Notes() string                     { return c.str(KeyNotes) }

func (c *Contact) UpdateFirstName(v string)                 { c.setStr(KeyFirstName, v) }
func (c *Contact) UpdateLastName(v string)                  { c.setStr(KeyLastName, v) }
func (c *Contact) UpdateMiddleName(v string)                { c.setStr(KeyMiddleName, v) }
func (c *Contact) UpdateNamePrefix(v string)                { c.setStr(KeyNamePrefix, v) }
func (c *Contact) UpdateNameSuffix(v string)                { c.setStr(KeyNameSuffix, v) }
func (c *Contact) UpdateNickname(v string)                  { c.setStr(KeyNickname, v) }
func (c *Contact) UpdateCompany(v string)                   { c.setStr(KeyCompany, v) }
func (c *Contact) UpdateJobTitle(v string)                  { c.setStr(KeyJobTitle, v) }
func (c *Contact) UpdateDepartment(v string)                { c.setStr(KeyDepartment, v) }
func (c *Contact) UpdateEmails(v []string)                  { c.setList(KeyEmails, v) }
func (c *Contact) UpdateEmailDescriptions(v []string)       { c.setList(KeyEmailDescriptions, v) }
func (c *Contact) UpdatePhoneNumbers(v []string)            { c.setList(KeyPhoneNumbers, v) }
func (c *Contact) UpdatePhoneNumberDescriptions(v []string) { c.setList(KeyPhoneNumberDescriptions, v) }
func (c *Contact) UpdateCountry(v string)                   { c.setStr(KeyCountry, v) }
func (c *Contact) UpdateStreetAddress(v string)             { c.setStr(KeyStreetAddress, v) }
func (c *Contact) UpdateStreetAddressAdditional(v string)   { c.setStr(KeyStreetAddressAdditional, v) }
func (c *Contact) UpdatePostalCode(v string)                { c.setStr(KeyPostalCode, v) }
func (c *Contact) UpdateCity(v string)                      { c.setStr(KeyCity, v) }
func (c *Contact) UpdatePOBox(v string)                     { c.setStr(KeyPOBox, v) }
func (c *Contact) UpdateBirthday(v string)                  { c.setStr(KeyBirthday, v) }
func (c *Contact) UpdateWebsites(v []string)                { c.setList(KeyWebsites, v) }
func (c *Contact) UpdateRelationship(v string)              { c.setStr(KeyRelationship, v) }
func (c *Contact) UpdateNotes(v string)                     { c.setStr(KeyNotes, v) }

// Clone returns a deep copy.
func (c *Contact) Clone() *Contact { return &Contact{base: c.base.clone()} }
