package records

import "github.com/dmitrijs2005/gophvault/internal/fields"

const (
	KeyNameOnCard     = "name_on_card"
	KeyCardType       = "card_type"
	KeyNumber         = "number"
	KeySecurityCode   = "security_code"
	KeyStartDate      = "start_date"
	KeyExpirationDate = "expiration_date"
)

var paymentCardSchema = strs(
	KeyTitle, KeyNameOnCard, KeyCardType, KeyNumber, KeySecurityCode,
	KeyStartDate, KeyExpirationDate, KeyNotes,
)

// CardDetails carries the values of a new PaymentCard. Dates are kept as
// entered, e.g. "09/29".
type CardDetails struct {
	Title          string
	NameOnCard     string
	CardType       string
	Number         string
	SecurityCode   string
	StartDate      string
	ExpirationDate string
	Notes          string
}

// PaymentCard is a credit or debit card.
type PaymentCard struct {
	base
}

func NewPaymentCard(d CardDetails, opts ...Option) *PaymentCard {
	return &PaymentCard{base: newBase(KindPaymentCard, fields.Map{
		KeyTitle:          fields.String(d.Title),
		KeyNameOnCard:     fields.String(d.NameOnCard),
		KeyCardType:       fields.String(d.CardType),
		KeyNumber:         fields.String(d.Number),
		KeySecurityCode:   fields.String(d.SecurityCode),
		KeyStartDate:      fields.String(d.StartDate),
		KeyExpirationDate: fields.String(d.ExpirationDate),
		KeyNotes:          fields.String(d.Notes),
	}, opts)}
}

func FromPaymentCardFields(m fields.Map, opts ...Option) (*PaymentCard, error) {
	b, err := fromFields(KindPaymentCard, m, opts)
	if err != nil {
		return nil, err
	}
	return &PaymentCard{base: b}, nil
}

func (p *PaymentCard) Title() string          { return p.str(KeyTitle) }
func (p *PaymentCard) NameOnCard() string     { return p.str(KeyNameOnCard) }
func (p *PaymentCard) CardType() string       { return p.str(KeyCardType) }
func (p *PaymentCard) Number() string         { return p.str(KeyNumber) }
func (p *PaymentCard) SecurityCode() string   { return p.str(KeySecurityCode) }
func (p *PaymentCard) StartDate() string      { return p.str(KeyStartDate) }
func (p *PaymentCard) ExpirationDate() string { return p.str(KeyExpirationDate) }
func (p *PaymentCard) Notes() string          { return p.str(KeyNotes) }

func (p *PaymentCard) UpdateTitle(v string)          { p.setStr(KeyTitle, v) }
func (p *PaymentCard) UpdateNameOnCard(v string)     { p.setStr(KeyNameOnCard, v) }
func (p *PaymentCard) UpdateCardType(v string)       { p.setStr(KeyCardType, v) }
func (p *PaymentCard) UpdateNumber(v string)         { p.setStr(KeyNumber, v) }
func (p *PaymentCard) UpdateSecurityCode(v string)   { p.setStr(KeySecurityCode, v) }
func (p *PaymentCard) UpdateStartDate(v string)      { p.setStr(KeyStartDate, v) }
func (p *PaymentCard) UpdateExpirationDate(v string) { p.setStr(KeyExpirationDate, v) }
func (p *PaymentCard) UpdateNotes(v string)          { p.setStr(KeyNotes, v) }

func (p *PaymentCard) Clone() *PaymentCard { return &PaymentCard{base: p.base.clone()} }
