package backup

import (
	"bytes"
	"context"
	"errors"
	"io"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/gophvault/internal/clock"
	"github.com/dmitrijs2005/gophvault/internal/common"
	"github.com/dmitrijs2005/gophvault/internal/container"
	"github.com/dmitrijs2005/gophvault/internal/records"
)

type fakeObject struct {
	data     []byte
	modified time.Time
}

// fakeS3 keeps objects in memory and pages listings two keys at a time.
type fakeS3 struct {
	objects map[string]fakeObject
	clock   *clock.FakeClock
	putErr  error
}

func newFakeS3(c *clock.FakeClock) *fakeS3 {
	return &fakeS3{objects: map[string]fakeObject{}, clock: c}
}

func (f *fakeS3) PutObject(ctx context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.putErr != nil {
		return nil, f.putErr
	}
	data, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.objects[aws.ToString(in.Key)] = fakeObject{data: data, modified: f.clock.Now()}
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeS3) GetObject(ctx context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	o, ok := f.objects[aws.ToString(in.Key)]
	if !ok {
		return nil, errors.New("NoSuchKey")
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(o.data))}, nil
}

func (f *fakeS3) ListObjectsV2(ctx context.Context, in *s3.ListObjectsV2Input, _ ...func(*s3.Options)) (*s3.ListObjectsV2Output, error) {
	var keys []string
	for k := range f.objects {
		if strings.HasPrefix(k, aws.ToString(in.Prefix)) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	start := 0
	if in.ContinuationToken != nil {
		for i, k := range keys {
			if k == *in.ContinuationToken {
				start = i
			}
		}
	}
	end := min(start+2, len(keys))

	out := &s3.ListObjectsV2Output{}
	for _, k := range keys[start:end] {
		o := f.objects[k]
		out.Contents = append(out.Contents, types.Object{
			Key:          aws.String(k),
			Size:         aws.Int64(int64(len(o.data))),
			LastModified: aws.Time(o.modified),
		})
	}
	if end < len(keys) {
		out.IsTruncated = aws.Bool(true)
		out.NextContinuationToken = aws.String(keys[end])
	}
	return out, nil
}

type fakePresigner struct{ ttl time.Duration }

func (p *fakePresigner) PresignGetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
	var o s3.PresignOptions
	for _, fn := range optFns {
		fn(&o)
	}
	p.ttl = o.Expires
	return &v4.PresignedHTTPRequest{URL: "https://example.invalid/" + aws.ToString(in.Bucket) + "/" + aws.ToString(in.Key)}, nil
}

func sampleState(t *testing.T) container.State {
	t.Helper()
	c, err := container.New()
	require.NoError(t, err)
	require.NoError(t, c.AddNote(records.NewNote("todo", "backup", c.Suite().RecordOptions()...)))
	st, err := c.Export()
	require.NoError(t, err)
	return st
}

var t0 = time.Date(2026, 10, 18, 9, 30, 0, 0, time.UTC)

func newStore(t *testing.T) (*S3Store, *fakeS3, *clock.FakeClock) {
	t.Helper()
	fc := clock.Fake(t0)
	api := newFakeS3(fc)
	s := NewS3StoreWithClient(api, &fakePresigner{}, "vault", "", WithClock(fc))
	ids := 0
	s.newID = func() string {
		ids++
		return strings.Repeat(string(rune('a'+ids)), 8)
	}
	return s, api, fc
}

func TestUploadDownload_RoundTrip(t *testing.T) {
	s, _, _ := newStore(t)
	ctx := context.Background()
	st := sampleState(t)

	key, err := s.Upload(ctx, st)
	require.NoError(t, err)
	assert.Equal(t, "snapshots/2026/10/18/bbbbbbbb.cbor", key)

	got, err := s.Download(ctx, key)
	require.NoError(t, err)
	if diff := cmp.Diff(st, got, cmpopts.EquateEmpty()); diff != "" {
		t.Fatalf("downloaded state differs:\n%s", diff)
	}
}

func TestUpload_Error(t *testing.T) {
	s, api, _ := newStore(t)
	api.putErr = errors.New("denied")

	_, err := s.Upload(context.Background(), sampleState(t))
	require.ErrorContains(t, err, "failed to upload snapshot")
}

func TestDownload_Missing(t *testing.T) {
	s, _, _ := newStore(t)

	_, err := s.Download(context.Background(), "snapshots/none.cbor")
	require.ErrorContains(t, err, "failed to download snapshot")
}

func TestDownload_Corrupt(t *testing.T) {
	s, api, fc := newStore(t)
	api.objects["snapshots/x.cbor"] = fakeObject{data: []byte("not cbor"), modified: fc.Now()}

	_, err := s.Download(context.Background(), "snapshots/x.cbor")
	require.ErrorIs(t, err, common.ErrMalformedPayload)
}

func TestList_NewestFirstAcrossPages(t *testing.T) {
	s, _, fc := newStore(t)
	ctx := context.Background()
	st := sampleState(t)

	var keys []string
	for i := 0; i < 5; i++ {
		k, err := s.Upload(ctx, st)
		require.NoError(t, err)
		keys = append(keys, k)
		fc.Advance(time.Minute)
	}

	objects, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, objects, 5)
	assert.Equal(t, keys[4], objects[0].Key)
	assert.Equal(t, keys[0], objects[4].Key)

	latest, err := s.Latest(ctx)
	require.NoError(t, err)
	assert.Equal(t, keys[4], latest)
}

func TestLatest_Empty(t *testing.T) {
	s, _, _ := newStore(t)

	_, err := s.Latest(context.Background())
	require.ErrorIs(t, err, common.ErrNotFound)
}

func TestPresignDownload(t *testing.T) {
	p := &fakePresigner{}
	s := NewS3StoreWithClient(newFakeS3(clock.Fake(t0)), p, "vault", "backups")

	url, err := s.PresignDownload(context.Background(), "backups/k.cbor", 15*time.Minute)
	require.NoError(t, err)
	assert.Equal(t, "https://example.invalid/vault/backups/k.cbor", url)
	assert.Equal(t, 15*time.Minute, p.ttl)

	s.presign = nil
	_, err = s.PresignDownload(context.Background(), "k", time.Minute)
	require.Error(t, err)
}

func TestNewS3Store_AppliesConfig(t *testing.T) {
	origLoad := loadDefaultAWSConfig
	origNew := newS3ClientFromConfig
	t.Cleanup(func() {
		loadDefaultAWSConfig = origLoad
		newS3ClientFromConfig = origNew
	})

	loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		var lo awsconfig.LoadOptions
		for _, fn := range optFns {
			require.NoError(t, fn(&lo))
		}
		assert.Equal(t, "eu-central-1", lo.Region)
		require.NotNil(t, lo.Credentials, "static credentials expected")
		creds, err := lo.Credentials.Retrieve(ctx)
		require.NoError(t, err)
		assert.Equal(t, "minioadmin", creds.AccessKeyID)
		return aws.Config{Region: lo.Region}, nil
	}

	var opts s3.Options
	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		for _, fn := range optFns {
			fn(&opts)
		}
		return s3.NewFromConfig(cfg, optFns...)
	}

	s, err := NewS3Store(context.Background(), Config{
		Region:       "eu-central-1",
		Endpoint:     "http://127.0.0.1:9000",
		AccessKey:    "minioadmin",
		SecretKey:    "minioadmin",
		Bucket:       "vault",
		UsePathStyle: true,
	})
	require.NoError(t, err)
	require.NotNil(t, opts.BaseEndpoint)
	assert.Equal(t, "http://127.0.0.1:9000", *opts.BaseEndpoint)
	assert.True(t, opts.UsePathStyle)
	assert.Equal(t, DefaultPrefix, s.prefix)
}

func TestNewS3Store_RequiresBucket(t *testing.T) {
	_, err := NewS3Store(context.Background(), Config{Region: "us-east-1"})
	require.Error(t, err)
}

func TestNewS3Store_LoadError(t *testing.T) {
	orig := loadDefaultAWSConfig
	t.Cleanup(func() { loadDefaultAWSConfig = orig })
	loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		return aws.Config{}, errors.New("no config")
	}

	_, err := NewS3Store(context.Background(), Config{Bucket: "vault"})
	require.ErrorContains(t, err, "failed to load aws config")
}
