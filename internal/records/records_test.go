package records

import (
	"testing"
	"time"

	"github.com/dmitrijs2005/gophvault/internal/clock"
	"github.com/dmitrijs2005/gophvault/internal/common"
	"github.com/dmitrijs2005/gophvault/internal/fields"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2026, 4, 1, 8, 0, 0, 0, time.UTC)

func sampleContact(c clock.Clock) *Contact {
	return NewContact(ContactDetails{
		FirstName:    "Ada",
		LastName:     "Lovelace",
		Company:      "Analytical Engines",
		Emails:       []string{"ada@example.com", "countess@example.org"},
		PhoneNumbers: []string{"+44 20 0000 0000"},
		Websites:     nil,
		Birthday:     "1815-12-10",
		Notes:        "first programmer",
	}, WithClock(c))
}

func TestNewRecord_TimestampsAndChecksum(t *testing.T) {
	fc := clock.Fake(t0)
	c := sampleContact(fc)

	assert.Equal(t, KindContact, c.Kind())
	assert.Equal(t, t0, c.CreationTime())
	assert.Equal(t, t0, c.ModificationTime())
	assert.Len(t, c.Checksum(), 64)
	assert.True(t, c.CheckChecksum())

	assert.Equal(t, "Ada", c.FirstName())
	assert.Equal(t, []string{"ada@example.com", "countess@example.org"}, c.Emails())
	assert.Equal(t, []string{}, c.Websites())
	assert.Equal(t, "", c.MiddleName())
}

func TestUpdate_BumpsModificationTimeAndChecksum(t *testing.T) {
	fc := clock.Fake(t0)
	n := NewNote("groceries", "milk", WithClock(fc))
	before := n.Checksum()

	fc.Advance(time.Minute)
	n.UpdateText("milk\neggs")

	assert.Equal(t, t0, n.CreationTime())
	assert.Equal(t, t0.Add(time.Minute), n.ModificationTime())
	assert.NotEqual(t, before, n.Checksum())
	assert.True(t, n.CheckChecksum())
	assert.Equal(t, "milk\neggs", n.Text())
}

func TestUpdate_ModificationTimeNeverGoesBackwards(t *testing.T) {
	fc := clock.Fake(t0)
	p := NewPaymentCard(CardDetails{Title: "visa"}, WithClock(fc))

	fc.Set(t0.Add(-time.Hour))
	p.UpdateNumber("4111111111111111")

	assert.Equal(t, t0, p.ModificationTime())
	assert.False(t, p.ModificationTime().Before(p.CreationTime()))
}

func TestFieldsRoundTrip_AllKinds(t *testing.T) {
	fc := clock.Fake(t0)
	opts := []Option{WithClock(fc)}

	login := NewLoginInformation(LoginDetails{
		Title: "mail", URL: "https://mail.example.com", Username: "ada",
		Password: "s3cret", Icon: []byte{1, 2, 3}, Tags: []string{"work", "mail"},
	}, opts...)
	note := NewNote("n", "body", opts...)
	file := NewFileEntry("key.pem", []byte("-----BEGIN-----"), opts...)
	contact := sampleContact(fc)
	card := NewPaymentCard(CardDetails{Title: "visa", Number: "4111", ExpirationDate: "09/29"}, opts...)
	hist := NewHistory(t0.Add(-time.Hour), "login", "opened vault", "10.0.0.1", "vaultctl/1.0", opts...)

	tests := []struct {
		rec     Record
		rebuild func(fields.Map) (Record, error)
	}{
		{login, func(m fields.Map) (Record, error) { return FromLoginInformationFields(m, opts...) }},
		{note, func(m fields.Map) (Record, error) { return FromNoteFields(m, opts...) }},
		{file, func(m fields.Map) (Record, error) { return FromFileEntryFields(m, opts...) }},
		{contact, func(m fields.Map) (Record, error) { return FromContactFields(m, opts...) }},
		{card, func(m fields.Map) (Record, error) { return FromPaymentCardFields(m, opts...) }},
		{hist, func(m fields.Map) (Record, error) { return FromHistoryFields(m, opts...) }},
	}

	for _, tc := range tests {
		t.Run(string(tc.rec.Kind()), func(t *testing.T) {
			m := tc.rec.Fields()
			require.NoError(t, tc.rec.Schema().Validate(m))
			assert.Len(t, m, len(tc.rec.Schema()))

			got, err := tc.rebuild(m)
			require.NoError(t, err)
			assert.True(t, m.Equal(got.Fields()))
			assert.Equal(t, tc.rec.Checksum(), got.Checksum())
			assert.True(t, got.CreationTime().Equal(tc.rec.CreationTime()))
		})
	}
}

func TestFromFields_MissingAndUnknownKeys(t *testing.T) {
	n, err := FromNoteFields(fields.Map{
		KeyTitle: fields.String("only title"),
		"color":  fields.String("red"),
	})
	require.NoError(t, err)
	assert.Equal(t, "only title", n.Title())
	assert.Equal(t, "", n.Text())
	assert.True(t, n.CreationTime().IsZero())
	_, ok := n.Fields()["color"]
	assert.False(t, ok)
}

func TestFromFields_WrongKind(t *testing.T) {
	_, err := FromFileEntryFields(fields.Map{KeyContent: fields.String("not bytes")})
	require.ErrorIs(t, err, common.ErrFieldKind)
}

func TestClone_IsDeep(t *testing.T) {
	fc := clock.Fake(t0)
	f := NewFileEntry("a.bin", []byte{1, 2, 3}, WithClock(fc))
	c := f.Clone()

	c.UpdateContent([]byte{9})
	assert.Equal(t, []byte{1, 2, 3}, f.Content())
	assert.Equal(t, []byte{9}, c.Content())
	assert.NotEqual(t, f.Checksum(), c.Checksum())

	content := f.Content()
	content[0] = 42
	assert.Equal(t, []byte{1, 2, 3}, f.Content())
}

func TestHistory_OccurrenceTime(t *testing.T) {
	fc := clock.Fake(t0)
	occurred := time.Date(2026, 3, 31, 23, 59, 59, 999, time.FixedZone("CET", 3600))
	h := NewHistory(occurred, "unlock", "", "", "", WithClock(fc))

	assert.True(t, h.OccurrenceTime().Equal(occurred))
	assert.Equal(t, time.UTC, h.OccurrenceTime().Location())

	fc.Advance(time.Second)
	h.UpdateOccurrenceTime(t0)
	assert.Equal(t, t0, h.OccurrenceTime())
	assert.True(t, h.CheckChecksum())
}

func TestMultiValueHelpers(t *testing.T) {
	assert.Equal(t, "", JoinMulti(nil))
	assert.Equal(t, []string{}, SplitMulti(""))
	assert.Equal(t, []string{"a", "", "b"}, SplitMulti(JoinMulti([]string{"a", "", "b"})))
}

func TestSchemaFor(t *testing.T) {
	for _, k := range Kinds {
		s := SchemaFor(k)
		require.NotEmpty(t, s, k)
		_, ok := s.Lookup(KeyCreationTime)
		assert.True(t, ok)
		_, ok = s.Lookup(KeyModificationTime)
		assert.True(t, ok)
	}
	assert.Nil(t, SchemaFor("unknown"))
}

func TestCheckChecksum_DetectsTampering(t *testing.T) {
	n := NewNote("t", "x")
	n.values[KeyText] = fields.String("y")
	assert.False(t, n.CheckChecksum())
}
