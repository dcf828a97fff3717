package secrets

import (
	"time"

	"github.com/dmitrijs2005/gophvault/internal/fields"
	"github.com/dmitrijs2005/gophvault/internal/records"
)

// Named accessors decrypt the secret on every call. Getters return the same
// errors as Get; setters behave like Set.

func (s *LoginInformationSecret) GetTitle(derivedKey []byte) (string, error) {
	return s.getString(derivedKey, records.KeyTitle)
}

func (s *LoginInformationSecret) GetURL(derivedKey []byte) (string, error) {
	return s.getString(derivedKey, records.KeyURL)
}

func (s *LoginInformationSecret) GetEmail(derivedKey []byte) (string, error) {
	return s.getString(derivedKey, records.KeyEmail)
}

func (s *LoginInformationSecret) GetUsername(derivedKey []byte) (string, error) {
	return s.getString(derivedKey, records.KeyUsername)
}

func (s *LoginInformationSecret) GetPassword(derivedKey []byte) (string, error) {
	return s.getString(derivedKey, records.KeyPassword)
}

func (s *LoginInformationSecret) GetNotes(derivedKey []byte) (string, error) {
	return s.getString(derivedKey, records.KeyNotes)
}

func (s *LoginInformationSecret) GetMFA(derivedKey []byte) (string, error) {
	return s.getString(derivedKey, records.KeyMFA)
}

func (s *LoginInformationSecret) GetIcon(derivedKey []byte) ([]byte, error) {
	m, err := s.GetFields(derivedKey)
	if err != nil {
		return nil, err
	}
	return m.Bytes(records.KeyIcon), nil
}

func (s *LoginInformationSecret) GetCategory(derivedKey []byte) (string, error) {
	return s.getString(derivedKey, records.KeyCategory)
}

func (s *LoginInformationSecret) GetTags(derivedKey []byte) ([]string, error) {
	return s.getList(derivedKey, records.KeyTags)
}

func (s *LoginInformationSecret) SetTitle(v string, derivedKey []byte) error {
	return s.setString(records.KeyTitle, v, derivedKey)
}

func (s *LoginInformationSecret) SetURL(v string, derivedKey []byte) error {
	return s.setString(records.KeyURL, v, derivedKey)
}

func (s *LoginInformationSecret) SetEmail(v string, derivedKey []byte) error {
	return s.setString(records.KeyEmail, v, derivedKey)
}

func (s *LoginInformationSecret) SetUsername(v string, derivedKey []byte) error {
	return s.setString(records.KeyUsername, v, derivedKey)
}

func (s *LoginInformationSecret) SetPassword(v string, derivedKey []byte) error {
	return s.setString(records.KeyPassword, v, derivedKey)
}

func (s *LoginInformationSecret) SetNotes(v string, derivedKey []byte) error {
	return s.setString(records.KeyNotes, v, derivedKey)
}

func (s *LoginInformationSecret) SetMFA(v string, derivedKey []byte) error {
	return s.setString(records.KeyMFA, v, derivedKey)
}

func (s *LoginInformationSecret) SetIcon(v []byte, derivedKey []byte) error {
	return s.Set(records.KeyIcon, fields.Bytes(v), derivedKey)
}

func (s *LoginInformationSecret) SetCategory(v string, derivedKey []byte) error {
	return s.setString(records.KeyCategory, v, derivedKey)
}

func (s *LoginInformationSecret) SetTags(v []string, derivedKey []byte) error {
	return s.setList(records.KeyTags, v, derivedKey)
}

func (s *NoteSecret) GetTitle(derivedKey []byte) (string, error) {
	return s.getString(derivedKey, records.KeyTitle)
}

func (s *NoteSecret) GetText(derivedKey []byte) (string, error) {
	return s.getString(derivedKey, records.KeyText)
}

func (s *NoteSecret) SetTitle(v string, derivedKey []byte) error {
	return s.setString(records.KeyTitle, v, derivedKey)
}

func (s *NoteSecret) SetText(v string, derivedKey []byte) error {
	return s.setString(records.KeyText, v, derivedKey)
}

func (s *FileEntrySecret) GetFilename(derivedKey []byte) (string, error) {
	return s.getString(derivedKey, records.KeyFilename)
}

func (s *FileEntrySecret) GetContent(derivedKey []byte) ([]byte, error) {
	m, err := s.GetFields(derivedKey)
	if err != nil {
		return nil, err
	}
	return m.Bytes(records.KeyContent), nil
}

func (s *FileEntrySecret) SetFilename(v string, derivedKey []byte) error {
	return s.setString(records.KeyFilename, v, derivedKey)
}

func (s *FileEntrySecret) SetContent(v []byte, derivedKey []byte) error {
	return s.Set(records.KeyContent, fields.Bytes(v), derivedKey)
}

func (s *ContactSecret) GetFirstName(derivedKey []byte) (string, error) {
	return s.getString(derivedKey, records.KeyFirstName)
}

func (s *ContactSecret) GetLastName(derivedKey []byte) (string, error) {
	return s.getString(derivedKey, records.KeyLastName)
}

func (s *ContactSecret) GetMiddleName(derivedKey []byte) (string, error) {
	return s.getString(derivedKey, records.KeyMiddleName)
}

func (s *ContactSecret) GetNamePrefix(derivedKey []byte) (string, error) {
	return s.getString(derivedKey, records.KeyNamePrefix)
}

func (s *ContactSecret) GetNameSuffix(derivedKey []byte) (string, error) {
	return s.getString(derivedKey, records.KeyNameSuffix)
}

func (s *ContactSecret) GetNickname(derivedKey []byte) (string, error) {
	return s.getString(derivedKey, records.KeyNickname)
}

func (s *ContactSecret) GetCompany(derivedKey []byte) (string, error) {
	return s.getString(derivedKey, records.KeyCompany)
}

func (s *ContactSecret) GetJobTitle(derivedKey []byte) (string, error) {
	return s.getString(derivedKey, records.KeyJobTitle)
}

func (s *ContactSecret) GetDepartment(derivedKey []byte) (string, error) {
	return s.getString(derivedKey, records.KeyDepartment)
}

func (s *ContactSecret) GetEmails(derivedKey []byte) ([]string, error) {
	return s.getList(derivedKey, records.KeyEmails)
}

func (s *ContactSecret) GetEmailDescriptions(derivedKey []byte) ([]string, error) {
	return s.getList(derivedKey, records.KeyEmailDescriptions)
}

func (s *ContactSecret) GetPhoneNumbers(derivedKey []byte) ([]string, error) {
	return s.getList(derivedKey, records.KeyPhoneNumbers)
}

func (s *ContactSecret) GetPhoneNumberDescriptions(derivedKey []byte) ([]string, error) {
	return s.getList(derivedKey, records.KeyPhoneNumberDescriptions)
}

func (s *ContactSecret) GetCountry(derivedKey []byte) (string, error) {
	return s.getString(derivedKey, records.KeyCountry)
}

func (s *ContactSecret) GetStreetAddress(derivedKey []byte) (string, error) {
	return s.getString(derivedKey, records.KeyStreetAddress)
}

func (s *ContactSecret) GetStreetAddressAdditional(derivedKey []byte) (string, error) {
	return s.getString(derivedKey, records.KeyStreetAddressAdditional)
}

func (s *ContactSecret) GetPostalCode(derivedKey []byte) (string, error) {
	return s.getString(derivedKey, records.KeyPostalCode)
}

func (s *ContactSecret) GetCity(derivedKey []byte) (string, error) {
	return s.getString(derivedKey, records.KeyCity)
}

func (s *ContactSecret) GetPOBox(derivedKey []byte) (string, error) {
	return s.getString(derivedKey, records.KeyPOBox)
}

func (s *ContactSecret) GetBirthday(derivedKey []byte) (string, error) {
	return s.getString(derivedKey, records.KeyBirthday)
}

func (s *ContactSecret) GetWebsites(derivedKey []byte) ([]string, error) {
	return s.getList(derivedKey, records.KeyWebsites)
}

func (s *ContactSecret) GetRelationship(derivedKey []byte) (string, error) {
	return s.getString(derivedKey, records.KeyRelationship)
}

func (s *ContactSecret) GetNotes(derivedKey []byte) (string, error) {
	return s.getString(derivedKey, records.KeyNotes)
}

func (s *ContactSecret) SetFirstName(v string, derivedKey []byte) error {
	return s.setString(records.KeyFirstName, v, derivedKey)
}

func (s *ContactSecret) SetLastName(v string, derivedKey []byte) error {
	return s.setString(records.KeyLastName, v, derivedKey)
}

func (s *ContactSecret) SetMiddleName(v string, derivedKey []byte) error {
	return s.setString(records.KeyMiddleName, v, derivedKey)
}

func (s *ContactSecret) SetNamePrefix(v string, derivedKey []byte) error {
	return s.setString(records.KeyNamePrefix, v, derivedKey)
}

func (s *ContactSecret) SetNameSuffix(v string, derivedKey []byte) error {
	return s.setString(records.KeyNameSuffix, v, derivedKey)
}

func (s *ContactSecret) SetNickname(v string, derivedKey []byte) error {
	return s.setString(records.KeyNickname, v, derivedKey)
}

func (s *ContactSecret) SetCompany(v string, derivedKey []byte) error {
	return s.setString(records.KeyCompany, v, derivedKey)
}

func (s *ContactSecret) SetJobTitle(v string, derivedKey []byte) error {
	return s.setString(records.KeyJobTitle, v, derivedKey)
}

func (s *ContactSecret) SetDepartment(v string, derivedKey []byte) error {
	return s.setString(records.KeyDepartment, v, derivedKey)
}

func (s *ContactSecret) SetEmails(v []string, derivedKey []byte) error {
	return s.setList(records.KeyEmails, v, derivedKey)
}

func (s *ContactSecret) SetEmailDescriptions(v []string, derivedKey []byte) error {
	return s.setList(records.KeyEmailDescriptions, v, derivedKey)
}

func (s *ContactSecret) SetPhoneNumbers(v []string, derivedKey []byte) error {
	return s.setList(records.KeyPhoneNumbers, v, derivedKey)
}

func (s *ContactSecret) SetPhoneNumberDescriptions(v []string, derivedKey []byte) error {
	return s.setList(records.KeyPhoneNumberDescriptions, v, derivedKey)
}

func (s *ContactSecret) SetCountry(v string, derivedKey []byte) error {
	return s.setString(records.KeyCountry, v, derivedKey)
}

func (s *ContactSecret) SetStreetAddress(v string, derivedKey []byte) error {
	return s.setString(records.KeyStreetAddress, v, derivedKey)
}

func (s *ContactSecret) SetStreetAddressAdditional(v string, derivedKey []byte) error {
	return s.setString(records.KeyStreetAddressAdditional, v, derivedKey)
}

func (s *ContactSecret) SetPostalCode(v string, derivedKey []byte) error {
	return s.setString(records.KeyPostalCode, v, derivedKey)
}

func (s *ContactSecret) SetCity(v string, derivedKey []byte) error {
	return s.setString(records.KeyCity, v, derivedKey)
}

func (s *ContactSecret) SetPOBox(v string, derivedKey []byte) error {
	return s.setString(records.KeyPOBox, v, derivedKey)
}

func (s *ContactSecret) SetBirthday(v string, derivedKey []byte) error {
	return s.setString(records.KeyBirthday, v, derivedKey)
}

func (s *ContactSecret) SetWebsites(v []string, derivedKey []byte) error {
	return s.setList(records.KeyWebsites, v, derivedKey)
}

func (s *ContactSecret) SetRelationship(v string, derivedKey []byte) error {
	return s.setString(records.KeyRelationship, v, derivedKey)
}

func (s *ContactSecret) SetNotes(v string, derivedKey []byte) error {
	return s.setString(records.KeyNotes, v, derivedKey)
}

func (s *PaymentCardSecret) GetTitle(derivedKey []byte) (string, error) {
	return s.getString(derivedKey, records.KeyTitle)
}

func (s *PaymentCardSecret) GetNameOnCard(derivedKey []byte) (string, error) {
	return s.getString(derivedKey, records.KeyNameOnCard)
}

func (s *PaymentCardSecret) GetCardType(derivedKey []byte) (string, error) {
	return s.getString(derivedKey, records.KeyCardType)
}

func (s *PaymentCardSecret) GetNumber(derivedKey []byte) (string, error) {
	return s.getString(derivedKey, records.KeyNumber)
}

func (s *PaymentCardSecret) GetSecurityCode(derivedKey []byte) (string, error) {
	return s.getString(derivedKey, records.KeySecurityCode)
}

func (s *PaymentCardSecret) GetStartDate(derivedKey []byte) (string, error) {
	return s.getString(derivedKey, records.KeyStartDate)
}

func (s *PaymentCardSecret) GetExpirationDate(derivedKey []byte) (string, error) {
	return s.getString(derivedKey, records.KeyExpirationDate)
}

func (s *PaymentCardSecret) GetNotes(derivedKey []byte) (string, error) {
	return s.getString(derivedKey, records.KeyNotes)
}

func (s *PaymentCardSecret) SetTitle(v string, derivedKey []byte) error {
	return s.setString(records.KeyTitle, v, derivedKey)
}

func (s *PaymentCardSecret) SetNameOnCard(v string, derivedKey []byte) error {
	return s.setString(records.KeyNameOnCard, v, derivedKey)
}

func (s *PaymentCardSecret) SetCardType(v string, derivedKey []byte) error {
	return s.setString(records.KeyCardType, v, derivedKey)
}

func (s *PaymentCardSecret) SetNumber(v string, derivedKey []byte) error {
	return s.setString(records.KeyNumber, v, derivedKey)
}

func (s *PaymentCardSecret) SetSecurityCode(v string, derivedKey []byte) error {
	return s.setString(records.KeySecurityCode, v, derivedKey)
}

func (s *PaymentCardSecret) SetStartDate(v string, derivedKey []byte) error {
	return s.setString(records.KeyStartDate, v, derivedKey)
}

func (s *PaymentCardSecret) SetExpirationDate(v string, derivedKey []byte) error {
	return s.setString(records.KeyExpirationDate, v, derivedKey)
}

func (s *PaymentCardSecret) SetNotes(v string, derivedKey []byte) error {
	return s.setString(records.KeyNotes, v, derivedKey)
}

func (s *HistorySecret) GetOccurrenceTime(derivedKey []byte) (time.Time, error) {
	m, err := s.GetFields(derivedKey)
	if err != nil {
		return time.Time{}, err
	}
	return m.Time(records.KeyOccurrenceTime), nil
}

func (s *HistorySecret) GetEventType(derivedKey []byte) (string, error) {
	return s.getString(derivedKey, records.KeyEventType)
}

func (s *HistorySecret) GetDescription(derivedKey []byte) (string, error) {
	return s.getString(derivedKey, records.KeyDescription)
}

func (s *HistorySecret) GetIPAddress(derivedKey []byte) (string, error) {
	return s.getString(derivedKey, records.KeyIPAddress)
}

func (s *HistorySecret) GetUserAgent(derivedKey []byte) (string, error) {
	return s.getString(derivedKey, records.KeyUserAgent)
}

func (s *HistorySecret) SetOccurrenceTime(v time.Time, derivedKey []byte) error {
	return s.Set(records.KeyOccurrenceTime, fields.Time(v), derivedKey)
}

func (s *HistorySecret) SetEventType(v string, derivedKey []byte) error {
	return s.setString(records.KeyEventType, v, derivedKey)
}

func (s *HistorySecret) SetDescription(v string, derivedKey []byte) error {
	return s.setString(records.KeyDescription, v, derivedKey)
}

func (s *HistorySecret) SetIPAddress(v string, derivedKey []byte) error {
	return s.setString(records.KeyIPAddress, v, derivedKey)
}

func (s *HistorySecret) SetUserAgent(v string, derivedKey []byte) error {
	return s.setString(records.KeyUserAgent, v, derivedKey)
}
