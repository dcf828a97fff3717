package records

import (
	"strings"
	"time"

	"github.com/dmitrijs2005/gophvault/internal/checksum"
	"github.com/dmitrijs2005/gophvault/internal/clock"
	"github.com/dmitrijs2005/gophvault/internal/fields"
)

// Kind names a record type.
type Kind string

const (
	KindLoginInformation Kind = "login_information"
	KindNote             Kind = "note"
	KindFileEntry        Kind = "file_entry"
	KindContact          Kind = "contact"
	KindPaymentCard      Kind = "payment_card"
	KindHistory          Kind = "history"
)

// Kinds lists every record kind in a stable order.
var Kinds = []Kind{KindLoginInformation, KindNote, KindFileEntry, KindContact, KindPaymentCard, KindHistory}

// Timestamp keys shared by every schema.
const (
	KeyCreationTime     = "creation_time"
	KeyModificationTime = "modification_time"
)

// MultiValueSeparator joins the elements of multi-value fields.
const MultiValueSeparator = "\t"

// Record is the behaviour shared by all plaintext record kinds.
type Record interface {
	Kind() Kind
	Schema() fields.Schema
	Fields() fields.Map
	CreationTime() time.Time
	ModificationTime() time.Time
	Checksum() string
	CheckChecksum() bool
}

type options struct {
	clock  clock.Clock
	hasher checksum.Hasher
}

// Option configures record construction.
type Option func(*options)

// WithClock sets the clock used for timestamps.
func WithClock(c clock.Clock) Option {
	return func(o *options) { o.clock = c }
}

// WithHasher sets the hasher used for the self-checksum.
func WithHasher(h checksum.Hasher) Option {
	return func(o *options) { o.hasher = h }
}

func buildOptions(opts []Option) options {
	o := options{clock: clock.Real(), hasher: checksum.Blake3()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// SchemaFor returns the schema of kind, or nil for an unknown kind.
func SchemaFor(kind Kind) fields.Schema {
	s, ok := schemas[kind]
	if !ok {
		return nil
	}
	return append(fields.Schema(nil), s...)
}

var schemas = map[Kind]fields.Schema{
	KindLoginInformation: withTimestamps(loginSchema),
	KindNote:             withTimestamps(noteSchema),
	KindFileEntry:        withTimestamps(fileEntrySchema),
	KindContact:          withTimestamps(contactSchema),
	KindPaymentCard:      withTimestamps(paymentCardSchema),
	KindHistory:          withTimestamps(historySchema),
}

func withTimestamps(s fields.Schema) fields.Schema {
	out := append(fields.Schema(nil), s...)
	return append(out,
		fields.Field{Key: KeyCreationTime, Kind: fields.KindTime},
		fields.Field{Key: KeyModificationTime, Kind: fields.KindTime},
	)
}

func strs(keys ...string) fields.Schema {
	s := make(fields.Schema, len(keys))
	for i, k := range keys {
		s[i] = fields.Field{Key: k, Kind: fields.KindString}
	}
	return s
}

// base holds the state common to every record kind.
type base struct {
	kind     Kind
	schema   fields.Schema
	values   fields.Map
	created  time.Time
	modified time.Time
	sum      string
	opts     options
}

func newBase(kind Kind, values fields.Map, opts []Option) base {
	o := buildOptions(opts)
	now := o.clock.Now().UTC()
	b := base{
		kind:     kind,
		schema:   schemas[kind],
		values:   make(fields.Map),
		created:  now,
		modified: now,
		opts:     o,
	}
	b.fill(values)
	b.rehash()
	return b
}

func fromFields(kind Kind, m fields.Map, opts []Option) (base, error) {
	b := base{kind: kind, schema: schemas[kind], values: make(fields.Map), opts: buildOptions(opts)}
	if err := b.schema.Validate(m); err != nil {
		return base{}, err
	}
	b.fill(m)
	b.created = m.Time(KeyCreationTime)
	b.modified = m.Time(KeyModificationTime)
	b.rehash()
	return b, nil
}

// fill copies schema fields from m, defaulting missing ones to empty values.
func (b *base) fill(m fields.Map) {
	for _, f := range b.schema {
		if f.Key == KeyCreationTime || f.Key == KeyModificationTime {
			continue
		}
		v, ok := m[f.Key]
		if !ok || v.Kind() != f.Kind {
			v = zero(f.Kind)
		}
		if f.Kind == fields.KindBytes {
			raw, _ := v.AsBytes()
			v = fields.Bytes(raw)
		}
		b.values[f.Key] = v
	}
}

func zero(k fields.Kind) fields.Value {
	switch k {
	case fields.KindBytes:
		return fields.Bytes(nil)
	case fields.KindTime:
		return fields.Time(time.Time{})
	default:
		return fields.String("")
	}
}

func (b *base) Kind() Kind { return b.kind }

// Schema returns the ordered field list of the record kind.
func (b *base) Schema() fields.Schema { return append(fields.Schema(nil), b.schema...) }

func (b *base) CreationTime() time.Time     { return b.created }
func (b *base) ModificationTime() time.Time { return b.modified }
func (b *base) Checksum() string            { return b.sum }

// Fields returns every field, including both timestamps.
func (b *base) Fields() fields.Map {
	m := b.values.Clone()
	m[KeyCreationTime] = fields.Time(b.created)
	m[KeyModificationTime] = fields.Time(b.modified)
	return m
}

// CalculateChecksum hashes every field in schema order. Timestamps are
// hashed in RFC 3339 form with nanoseconds.
func (b *base) CalculateChecksum() string {
	m := b.Fields()
	parts := make([][]byte, 0, len(b.schema))
	for _, f := range b.schema {
		v := m[f.Key]
		switch f.Kind {
		case fields.KindString:
			s, _ := v.AsString()
			parts = append(parts, []byte(s))
		case fields.KindBytes:
			raw, _ := v.AsBytes()
			parts = append(parts, raw)
		case fields.KindTime:
			t, _ := v.AsTime()
			parts = append(parts, []byte(t.Format(time.RFC3339Nano)))
		}
	}
	return b.opts.hasher.Sum(parts...)
}

// CheckChecksum reports whether the stored checksum matches the content.
func (b *base) CheckChecksum() bool { return b.sum == b.CalculateChecksum() }

func (b *base) rehash() { b.sum = b.CalculateChecksum() }

// touch bumps the modification time, never moving it backwards.
func (b *base) touch() {
	now := b.opts.clock.Now().UTC()
	if now.Before(b.modified) {
		now = b.modified
	}
	if now.Before(b.created) {
		now = b.created
	}
	b.modified = now
}

func (b *base) update(key string, v fields.Value) {
	b.values[key] = v
	b.touch()
	b.rehash()
}

func (b *base) str(key string) string       { return b.values.String(key) }
func (b *base) raw(key string) []byte       { return b.values.Bytes(key) }
func (b *base) at(key string) time.Time     { return b.values.Time(key) }
func (b *base) list(key string) []string    { return SplitMulti(b.values.String(key)) }
func (b *base) setStr(key, s string)        { b.update(key, fields.String(s)) }
func (b *base) setRaw(key string, p []byte) { b.update(key, fields.Bytes(p)) }
func (b *base) setList(key string, l []string) {
	b.update(key, fields.String(JoinMulti(l)))
}

func (b *base) clone() base {
	c := *b
	c.values = b.values.Clone()
	return c
}

// JoinMulti joins a multi-value field. Elements must not contain tabs.
func JoinMulti(values []string) string {
	return strings.Join(values, MultiValueSeparator)
}

// SplitMulti splits a tab-joined field. An empty string yields an empty,
// non-nil slice.
func SplitMulti(s string) []string {
	if s == "" {
		return []string{}
	}
	return strings.Split(s, MultiValueSeparator)
}
