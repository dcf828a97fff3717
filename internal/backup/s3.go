package backup

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path"
	"sort"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/dmitrijs2005/gophvault/internal/clock"
	"github.com/dmitrijs2005/gophvault/internal/common"
	"github.com/dmitrijs2005/gophvault/internal/container"
	"github.com/dmitrijs2005/gophvault/internal/logging"
)

// DefaultPrefix is prepended to every snapshot key.
const DefaultPrefix = "snapshots/"

// Config describes the target bucket. Endpoint and static credentials are
// optional; when empty the default AWS credential chain is used.
type Config struct {
	Region       string
	Endpoint     string
	AccessKey    string
	SecretKey    string
	Bucket       string
	Prefix       string
	UsePathStyle bool
}

// ObjectAPI is the part of *s3.Client used by S3Store.
type ObjectAPI interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	GetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	ListObjectsV2(ctx context.Context, in *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
}

// Presigner is the part of *s3.PresignClient used by S3Store.
type Presigner interface {
	PresignGetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
}

// Object describes a stored snapshot.
type Object struct {
	Key          string
	Size         int64
	LastModified time.Time
}

type S3Store struct {
	api     ObjectAPI
	presign Presigner
	bucket  string
	prefix  string
	clock   clock.Clock
	log     logging.Logger
	newID   func() string
}

type Option func(*S3Store)

func WithClock(c clock.Clock) Option { return func(s *S3Store) { s.clock = c } }

func WithLogger(l logging.Logger) Option { return func(s *S3Store) { s.log = l } }

var (
	loadDefaultAWSConfig  = config.LoadDefaultConfig
	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}
)

// NewS3Store builds a client for cfg.
func NewS3Store(ctx context.Context, cfg Config, opts ...Option) (*S3Store, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("backup bucket is not configured")
	}

	loadOpts := []func(*config.LoadOptions) error{config.WithRegion(cfg.Region)}
	if cfg.AccessKey != "" {
		loadOpts = append(loadOpts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := loadDefaultAWSConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load aws config: %w", err)
	}

	client := newS3ClientFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		o.UsePathStyle = cfg.UsePathStyle
	})

	return NewS3StoreWithClient(client, s3.NewPresignClient(client), cfg.Bucket, cfg.Prefix, opts...), nil
}

// NewS3StoreWithClient wraps an existing client. presign may be nil.
func NewS3StoreWithClient(api ObjectAPI, presign Presigner, bucket, prefix string, opts ...Option) *S3Store {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	if !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	s := &S3Store{
		api:     api,
		presign: presign,
		bucket:  bucket,
		prefix:  prefix,
		clock:   clock.Real(),
		log:     logging.Nop(),
		newID:   func() string { return uuid.NewString() },
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

func (s *S3Store) objectKey(at time.Time) string {
	return s.prefix + path.Join(at.UTC().Format("2006/01/02"), s.newID()+".cbor")
}

// Upload stores a snapshot of st and returns its object key.
func (s *S3Store) Upload(ctx context.Context, st container.State) (string, error) {
	now := s.clock.Now()
	data, err := EncodeSnapshot(st, now)
	if err != nil {
		return "", err
	}

	key := s.objectKey(now)
	_, err = s.api.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
		ContentType:   aws.String("application/cbor"),
	})
	if err != nil {
		s.log.Error(ctx, "snapshot upload failed", "bucket", s.bucket, "error", err)
		return "", fmt.Errorf("failed to upload snapshot: %w", err)
	}

	s.log.Info(ctx, "snapshot uploaded", "bucket", s.bucket, "key", key, "bytes", len(data))
	return key, nil
}

// Download fetches and decodes the snapshot stored under key.
func (s *S3Store) Download(ctx context.Context, key string) (container.State, error) {
	out, err := s.api.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return container.State{}, fmt.Errorf("failed to download snapshot %s: %w", key, err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return container.State{}, fmt.Errorf("failed to read snapshot %s: %w", key, err)
	}

	snap, err := DecodeSnapshot(data)
	if err != nil {
		return container.State{}, err
	}
	return snap.State, nil
}

// List returns the stored snapshots, newest first.
func (s *S3Store) List(ctx context.Context) ([]Object, error) {
	var objects []Object

	p := s3.NewListObjectsV2Paginator(s.api, &s3.ListObjectsV2Input{
		Bucket: aws.String(s.bucket),
		Prefix: aws.String(s.prefix),
	})
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list snapshots: %w", err)
		}
		for _, o := range page.Contents {
			objects = append(objects, Object{
				Key:          aws.ToString(o.Key),
				Size:         aws.ToInt64(o.Size),
				LastModified: aws.ToTime(o.LastModified),
			})
		}
	}

	sort.SliceStable(objects, func(i, j int) bool {
		return objects[i].LastModified.After(objects[j].LastModified)
	})
	return objects, nil
}

// Latest returns the key of the newest snapshot.
func (s *S3Store) Latest(ctx context.Context) (string, error) {
	objects, err := s.List(ctx)
	if err != nil {
		return "", err
	}
	if len(objects) == 0 {
		return "", common.ErrNotFound
	}
	return objects[0].Key, nil
}

// PresignDownload returns a time-limited GET URL for key.
func (s *S3Store) PresignDownload(ctx context.Context, key string, ttl time.Duration) (string, error) {
	if s.presign == nil {
		return "", fmt.Errorf("presigning is not configured")
	}
	req, err := s.presign.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(ttl))
	if err != nil {
		return "", fmt.Errorf("failed to presign %s: %w", key, err)
	}
	return req.URL, nil
}
