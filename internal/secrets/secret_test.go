package secrets

import (
	"bytes"
	"testing"
	"time"

	"github.com/dmitrijs2005/gophvault/internal/clock"
	"github.com/dmitrijs2005/gophvault/internal/codec"
	"github.com/dmitrijs2005/gophvault/internal/common"
	"github.com/dmitrijs2005/gophvault/internal/cryptox"
	"github.com/dmitrijs2005/gophvault/internal/fields"
	"github.com/dmitrijs2005/gophvault/internal/records"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC)

type fixture struct {
	suite Suite
	clock *clock.FakeClock
	key   []byte
	alg   cryptox.Algorithm
}

func newFixture(t *testing.T, c codec.Codec, kind cryptox.CipherKind) fixture {
	t.Helper()
	fc := clock.Fake(t0)
	alg, err := cryptox.GenerateAlgorithm(kind, 256)
	require.NoError(t, err)
	return fixture{
		suite: Suite{Codec: c, Clock: fc},
		clock: fc,
		key:   bytes.Repeat([]byte{0x5a}, 32),
		alg:   alg,
	}
}

func (f fixture) contact() *records.Contact {
	return records.NewContact(records.ContactDetails{
		FirstName:         "Grace",
		LastName:          "Hopper",
		Emails:            []string{"grace@navy.mil", "grace@example.com"},
		EmailDescriptions: []string{"work", "home"},
		City:              "Arlington",
		Notes:             "compiler pioneer",
	}, f.suite.RecordOptions()...)
}

func wrongKey() []byte { return bytes.Repeat([]byte{0xa5}, 32) }

func TestContactSecret_RoundTrip(t *testing.T) {
	for _, c := range []codec.Codec{codec.CBOR(), codec.Proto()} {
		for _, kind := range []cryptox.CipherKind{cryptox.AESCTR, cryptox.ChaCha20} {
			t.Run(c.Name()+"/"+string(kind), func(t *testing.T) {
				f := newFixture(t, c, kind)
				orig := f.contact()

				s, err := NewContactSecret(f.suite, orig, "primary", f.alg, f.key)
				require.NoError(t, err)
				assert.Equal(t, "primary", s.KeyIdentifier())
				assert.True(t, s.CheckChecksum())
				assert.False(t, bytes.Contains(s.Ciphertext(), []byte("Hopper")))

				got, err := s.GetContact(f.key)
				require.NoError(t, err)
				assert.True(t, orig.Fields().Equal(got.Fields()))
				assert.Equal(t, orig.Emails(), got.Emails())
				assert.True(t, orig.CreationTime().Equal(got.CreationTime()))
				assert.True(t, orig.ModificationTime().Equal(got.ModificationTime()))
				assert.Equal(t, orig.Checksum(), got.Checksum())
			})
		}
	}
}

func TestAllKinds_RoundTrip(t *testing.T) {
	f := newFixture(t, codec.CBOR(), cryptox.AESCTR)
	opts := f.suite.RecordOptions()

	login := records.NewLoginInformation(records.LoginDetails{Title: "bank", Password: "p", Icon: []byte{0, 1}, Tags: []string{"a", "b"}}, opts...)
	ls, err := NewLoginInformationSecret(f.suite, login, "k", f.alg, f.key)
	require.NoError(t, err)
	gotLogin, err := ls.GetLoginInformation(f.key)
	require.NoError(t, err)
	assert.True(t, login.Fields().Equal(gotLogin.Fields()))

	note := records.NewNote("todo", "write tests", opts...)
	ns, err := NewNoteSecret(f.suite, note, "k", f.alg, f.key)
	require.NoError(t, err)
	gotNote, err := ns.GetNote(f.key)
	require.NoError(t, err)
	assert.Equal(t, "write tests", gotNote.Text())

	file := records.NewFileEntry("id_ed25519", []byte{0xde, 0xad, 0xbe, 0xef}, opts...)
	fs, err := NewFileEntrySecret(f.suite, file, "k", f.alg, f.key)
	require.NoError(t, err)
	content, err := fs.GetContent(f.key)
	require.NoError(t, err)
	assert.Equal(t, []byte{0xde, 0xad, 0xbe, 0xef}, content)

	card := records.NewPaymentCard(records.CardDetails{Number: "4111111111111111", SecurityCode: "123"}, opts...)
	cs, err := NewPaymentCardSecret(f.suite, card, "k", f.alg, f.key)
	require.NoError(t, err)
	cvc, err := cs.GetSecurityCode(f.key)
	require.NoError(t, err)
	assert.Equal(t, "123", cvc)

	occurred := t0.Add(-time.Minute)
	hist := records.NewHistory(occurred, "unlock", "vault opened", "127.0.0.1", "test", opts...)
	hs, err := NewHistorySecret(f.suite, hist, "k", f.alg, f.key)
	require.NoError(t, err)
	at, err := hs.GetOccurrenceTime(f.key)
	require.NoError(t, err)
	assert.True(t, at.Equal(occurred))
}

func TestCreate_InvalidKeyCheckedFirst(t *testing.T) {
	calls := 0
	f := newFixture(t, countingCodec{Codec: codec.CBOR(), calls: &calls}, cryptox.AESCTR)

	for _, key := range [][]byte{nil, {}, bytes.Repeat([]byte{1}, 16)} {
		_, err := NewContactSecret(f.suite, f.contact(), "primary", f.alg, key)
		require.ErrorIs(t, err, common.ErrInvalidKey)
	}
	assert.Zero(t, calls, "nothing may be serialized before the key is validated")
}

func TestCreate_NilRecord(t *testing.T) {
	f := newFixture(t, codec.CBOR(), cryptox.AESCTR)
	_, err := NewNoteSecret(f.suite, nil, "primary", f.alg, f.key)
	require.ErrorIs(t, err, common.ErrNilRecord)
}

func TestGet_WrongKeyIsMalformedPayload(t *testing.T) {
	for _, c := range []codec.Codec{codec.CBOR(), codec.Proto()} {
		t.Run(c.Name(), func(t *testing.T) {
			f := newFixture(t, c, cryptox.AESCTR)
			s, err := NewContactSecret(f.suite, f.contact(), "primary", f.alg, f.key)
			require.NoError(t, err)

			_, err = s.Get(wrongKey())
			require.ErrorIs(t, err, common.ErrMalformedPayload)

			_, err = s.Get(f.key[:8])
			require.ErrorIs(t, err, common.ErrInvalidKey)

			assert.True(t, s.CanBeDecryptedWithDerivedKey(f.key))
			assert.False(t, s.CanBeDecryptedWithDerivedKey(wrongKey()))
			assert.False(t, s.CanBeDecryptedWithDerivedKey(nil))
		})
	}
}

func TestChecksum_Sensitivity(t *testing.T) {
	f := newFixture(t, codec.CBOR(), cryptox.AESCTR)
	s, err := NewContactSecret(f.suite, f.contact(), "primary", f.alg, f.key)
	require.NoError(t, err)
	base := s.CalculateChecksum()

	for i := range s.ciphertext {
		c := s.Clone()
		c.ciphertext[i] ^= 0x01
		assert.NotEqual(t, base, c.CalculateChecksum(), "ciphertext byte %d", i)
		assert.False(t, c.CheckChecksum())
	}

	for i := range s.keyIdentifier {
		c := s.Clone()
		c.keyIdentifier[i] ^= 0x01
		assert.NotEqual(t, base, c.CalculateChecksum(), "key identifier byte %d", i)
	}

	for i := range s.algorithm.IV {
		c := s.Clone()
		c.algorithm.IV[i] ^= 0x01
		assert.NotEqual(t, base, c.CalculateChecksum(), "iv byte %d", i)
	}

	c := s.Clone()
	c.algorithm.KeySizeBits = 128
	assert.NotEqual(t, base, c.CalculateChecksum())

	c = s.Clone()
	c.checksum = "0" + c.checksum[1:]
	if c.checksum == base {
		c.checksum = "1" + c.checksum[1:]
	}
	assert.False(t, c.CheckChecksum())
	assert.True(t, s.CheckChecksum())
}

func TestSet_RewritesWithFreshIV(t *testing.T) {
	f := newFixture(t, codec.CBOR(), cryptox.ChaCha20)
	s, err := NewContactSecret(f.suite, f.contact(), "primary", f.alg, f.key)
	require.NoError(t, err)

	before := s.Checksum()
	iv0 := s.Algorithm().IV

	f.clock.Advance(time.Hour)
	require.NoError(t, s.SetFirstName("X", f.key))
	iv1 := s.Algorithm().IV

	require.NoError(t, s.SetFirstName("Y", f.key))
	iv2 := s.Algorithm().IV

	assert.NotEqual(t, iv0, iv1)
	assert.NotEqual(t, iv1, iv2)
	assert.NotEqual(t, before, s.Checksum())
	assert.True(t, s.CheckChecksum())
	assert.Equal(t, cryptox.ChaCha20, s.Algorithm().Kind)
	assert.Equal(t, 256, s.Algorithm().KeySizeBits)

	got, err := s.GetContact(f.key)
	require.NoError(t, err)
	assert.Equal(t, "Y", got.FirstName())
	assert.Equal(t, "Hopper", got.LastName(), "unrelated fields survive")
	assert.Equal(t, t0.Add(time.Hour), got.ModificationTime())
	assert.Equal(t, t0, got.CreationTime())
}

func TestSet_ModificationTime(t *testing.T) {
	f := newFixture(t, codec.CBOR(), cryptox.AESCTR)
	h := records.NewHistory(t0, "login", "", "", "", f.suite.RecordOptions()...)
	s, err := NewHistorySecret(f.suite, h, "primary", f.alg, f.key)
	require.NoError(t, err)

	f.clock.Advance(24 * time.Hour)
	newAt := t0.Add(-time.Hour)
	require.NoError(t, s.SetOccurrenceTime(newAt, f.key))

	got, err := s.GetHistory(f.key)
	require.NoError(t, err)
	assert.Equal(t, newAt, got.OccurrenceTime())
	assert.Equal(t, t0.Add(24*time.Hour), got.ModificationTime(), "time-valued content fields bump it")

	plain := records.NewHistory(t0, "login", "", "", "", f.suite.RecordOptions()...)
	plain.UpdateOccurrenceTime(newAt)
	assert.Equal(t, plain.ModificationTime(), got.ModificationTime(), "sealed and plaintext updates agree")

	pinned := t0.Add(2 * time.Hour)
	f.clock.Advance(time.Hour)
	require.NoError(t, s.Set(records.KeyModificationTime, fields.Time(pinned), f.key))
	got, err = s.GetHistory(f.key)
	require.NoError(t, err)
	assert.Equal(t, pinned, got.ModificationTime())

	require.NoError(t, s.Set(records.KeyCreationTime, fields.Time(t0.Add(-48*time.Hour)), f.key))
	got, err = s.GetHistory(f.key)
	require.NoError(t, err)
	assert.Equal(t, t0.Add(-48*time.Hour), got.CreationTime())
	assert.Equal(t, pinned, got.ModificationTime())
}

func TestCreate_RejectsInvalidUTF8(t *testing.T) {
	for _, c := range []codec.Codec{codec.CBOR(), codec.Proto()} {
		t.Run(c.Name(), func(t *testing.T) {
			f := newFixture(t, c, cryptox.AESCTR)
			_, err := NewNoteSecret(f.suite, records.NewNote("t", "bad\xffbytes", f.suite.RecordOptions()...), "primary", f.alg, f.key)
			require.ErrorIs(t, err, common.ErrFieldKind)

			s, err := NewNoteSecret(f.suite, records.NewNote("t", "fine", f.suite.RecordOptions()...), "primary", f.alg, f.key)
			require.NoError(t, err)
			snapshot := s.Seal()
			require.ErrorIs(t, s.SetText("bad\xff", f.key), common.ErrFieldKind)
			assert.Equal(t, snapshot, s.Seal())

			got, err := s.GetNote(f.key)
			require.NoError(t, err)
			assert.Equal(t, "fine", got.Text())
		})
	}
}

func TestGet_AcceptsOtherCodecPayload(t *testing.T) {
	f := newFixture(t, codec.CBOR(), cryptox.AESCTR)
	s, err := NewContactSecret(f.suite, f.contact(), "primary", f.alg, f.key)
	require.NoError(t, err)

	protoSuite := Suite{Codec: codec.Proto(), Clock: f.clock}
	r, err := RestoreContactSecret(protoSuite, s.Seal())
	require.NoError(t, err)
	assert.True(t, r.CanBeDecryptedWithDerivedKey(f.key))

	got, err := r.GetContact(f.key)
	require.NoError(t, err)
	assert.Equal(t, "Grace", got.FirstName())

	require.NoError(t, r.SetCity("Washington", f.key))
	raw, err := r.GetFields(f.key)
	require.NoError(t, err)
	assert.Equal(t, "Washington", raw.String(records.KeyCity))
}

func TestSet_FailClosed(t *testing.T) {
	f := newFixture(t, codec.CBOR(), cryptox.AESCTR)
	s, err := NewContactSecret(f.suite, f.contact(), "primary", f.alg, f.key)
	require.NoError(t, err)
	snapshot := s.Seal()

	tests := []struct {
		name string
		set  func() error
		want error
	}{
		{"wrong key", func() error { return s.SetFirstName("X", wrongKey()) }, common.ErrMalformedPayload},
		{"short key", func() error { return s.SetFirstName("X", f.key[:4]) }, common.ErrInvalidKey},
		{"nil key", func() error { return s.SetFirstName("X", nil) }, common.ErrInvalidKey},
		{"unknown field", func() error { return s.Set("shoe_size", fields.String("42"), f.key) }, common.ErrUnknownField},
		{"wrong kind", func() error { return s.Set(records.KeyFirstName, fields.Bytes([]byte("X")), f.key) }, common.ErrFieldKind},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.set()
			require.ErrorIs(t, err, tc.want)

			if diff := cmp.Diff(snapshot, s.Seal()); diff != "" {
				t.Fatalf("secret changed after failed Set (-want +got):\n%s", diff)
			}
			got, err := s.GetContact(f.key)
			require.NoError(t, err)
			assert.Equal(t, "Grace", got.FirstName())
		})
	}
}

func TestSet_RecoversFromPanic(t *testing.T) {
	f := newFixture(t, codec.CBOR(), cryptox.AESCTR)
	s, err := NewNoteSecret(f.suite, records.NewNote("a", "b", f.suite.RecordOptions()...), "primary", f.alg, f.key)
	require.NoError(t, err)
	snapshot := s.Seal()

	s.suite.Codec = panickyCodec{Codec: codec.CBOR()}
	err = s.SetText("boom", f.key)
	require.ErrorIs(t, err, common.ErrMalformedPayload)
	assert.Equal(t, snapshot, s.Seal())
}

func TestFromFields_EscapeHatch(t *testing.T) {
	f := newFixture(t, codec.Proto(), cryptox.AESCTR)
	m := fields.Map{
		records.KeyTitle: fields.String("custom"),
		"color":          fields.String("blue"),
	}
	s, err := NewNoteSecretFromFields(f.suite, m, "primary", f.alg, f.key)
	require.NoError(t, err)

	raw, err := s.GetFields(f.key)
	require.NoError(t, err)
	assert.True(t, m.Equal(raw))

	n, err := s.GetNote(f.key)
	require.NoError(t, err)
	assert.Equal(t, "custom", n.Title())
	assert.Equal(t, "", n.Text())

	require.NoError(t, s.Set("color", fields.String("green"), f.key))
	raw, err = s.GetFields(f.key)
	require.NoError(t, err)
	assert.Equal(t, "green", raw.String("color"))

	err = s.Set("color", fields.Bytes(nil), f.key)
	require.ErrorIs(t, err, common.ErrFieldKind)
}

func TestSealRestore(t *testing.T) {
	f := newFixture(t, codec.CBOR(), cryptox.AESCTR)
	s, err := NewPaymentCardSecret(f.suite, records.NewPaymentCard(records.CardDetails{Number: "5500"}, f.suite.RecordOptions()...), "primary", f.alg, f.key)
	require.NoError(t, err)

	sealed := s.Seal()
	r, err := RestorePaymentCardSecret(f.suite, sealed)
	require.NoError(t, err)
	assert.True(t, r.CheckChecksum())
	num, err := r.GetNumber(f.key)
	require.NoError(t, err)
	assert.Equal(t, "5500", num)

	sealed.Ciphertext[0] ^= 1
	tampered, err := RestorePaymentCardSecret(f.suite, sealed)
	require.NoError(t, err)
	assert.False(t, tampered.CheckChecksum())

	_, err = RestoreNoteSecret(f.suite, s.Seal())
	require.ErrorIs(t, err, common.ErrMalformedPayload)
}

func TestClone_Independent(t *testing.T) {
	f := newFixture(t, codec.CBOR(), cryptox.AESCTR)
	s, err := NewContactSecret(f.suite, f.contact(), "primary", f.alg, f.key)
	require.NoError(t, err)

	c := s.Clone()
	require.NoError(t, c.SetCity("Paris", f.key))

	city, err := s.GetCity(f.key)
	require.NoError(t, err)
	assert.Equal(t, "Arlington", city)
	assert.NotEqual(t, s.Checksum(), c.Checksum())
}

func TestNamedListAccessors(t *testing.T) {
	f := newFixture(t, codec.CBOR(), cryptox.AESCTR)
	s, err := NewContactSecret(f.suite, f.contact(), "primary", f.alg, f.key)
	require.NoError(t, err)

	emails, err := s.GetEmails(f.key)
	require.NoError(t, err)
	assert.Equal(t, []string{"grace@navy.mil", "grace@example.com"}, emails)

	require.NoError(t, s.SetWebsites([]string{"https://a", "https://b"}, f.key))
	sites, err := s.GetWebsites(f.key)
	require.NoError(t, err)
	assert.Equal(t, []string{"https://a", "https://b"}, sites)

	_, err = s.GetEmails(wrongKey())
	require.Error(t, err)
}

type countingCodec struct {
	codec.Codec
	calls *int
}

func (c countingCodec) Marshal(m fields.Map) ([]byte, error) {
	*c.calls++
	return c.Codec.Marshal(m)
}

type panickyCodec struct {
	codec.Codec
}

func (panickyCodec) Marshal(fields.Map) ([]byte, error) {
	panic("codec exploded")
}
