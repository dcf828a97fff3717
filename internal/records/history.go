package records

import (
	"time"

	"github.com/dmitrijs2005/gophvault/internal/fields"
)

const (
	KeyOccurrenceTime = "occurrence_time"
	KeyEventType      = "event_type"
	KeyDescription    = "description"
	KeyIPAddress      = "ip_address"
	KeyUserAgent      = "user_agent"
)

var historySchema = append(
	fields.Schema{{Key: KeyOccurrenceTime, Kind: fields.KindTime}},
	strs(KeyEventType, KeyDescription, KeyIPAddress, KeyUserAgent)...,
)

// History is an audit event: something that happened to the vault, when and
// from where.
type History struct {
	base
}

func NewHistory(occurred time.Time, eventType, description, ipAddress, userAgent string, opts ...Option) *History {
	return &History{base: newBase(KindHistory, fields.Map{
		KeyOccurrenceTime: fields.Time(occurred),
		KeyEventType:      fields.String(eventType),
		KeyDescription:    fields.String(description),
		KeyIPAddress:      fields.String(ipAddress),
		KeyUserAgent:      fields.String(userAgent),
	}, opts)}
}

func FromHistoryFields(m fields.Map, opts ...Option) (*History, error) {
	b, err := fromFields(KindHistory, m, opts)
	if err != nil {
		return nil, err
	}
	return &History{base: b}, nil
}

func (h *History) OccurrenceTime() time.Time { return h.at(KeyOccurrenceTime) }
func (h *History) EventType() string         { return h.str(KeyEventType) }
func (h *History) Description() string       { return h.str(KeyDescription) }
func (h *History) IPAddress() string         { return h.str(KeyIPAddress) }
func (h *History) UserAgent() string         { return h.str(KeyUserAgent) }

func (h *History) UpdateOccurrenceTime(v time.Time) { h.update(KeyOccurrenceTime, fields.Time(v)) }
func (h *History) UpdateEventType(v string)         { h.setStr(KeyEventType, v) }
func (h *History) UpdateDescription(v string)       { h.setStr(KeyDescription, v) }
func (h *History) UpdateIPAddress(v string)         { h.setStr(KeyIPAddress, v) }
func (h *History) UpdateUserAgent(v string)         { h.setStr(KeyUserAgent, v) }

func (h *History) Clone() *History { return &History{base: h.base.clone()} }
