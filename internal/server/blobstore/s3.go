package blobstore

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3Config carries the settings for an S3-compatible backend (MinIO in the
// development compose file).
type S3Config struct {
	RootUser     string
	RootPassword string
	Bucket       string
	Region       string
	BaseEndpoint string
}

// S3Store keeps blobs in an S3-compatible bucket. Public paths are direct
// object URLs, so the bucket is expected to allow anonymous reads.
type S3Store struct {
	client *s3.Client
	bucket string
	base   string
}

var loadDefaultAWSConfig = config.LoadDefaultConfig

// NewS3Store builds a client with static credentials and an overridden base
// endpoint.
func NewS3Store(ctx context.Context, cfg S3Config) (*S3Store, error) {
	awsCfg, err := loadDefaultAWSConfig(ctx,
		config.WithRegion(cfg.Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.RootUser,
			cfg.RootPassword,
			"",
		)))
	if err != nil {
		return nil, err
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(cfg.BaseEndpoint)
		o.UsePathStyle = true
	})

	return &S3Store{
		client: client,
		bucket: cfg.Bucket,
		base:   strings.TrimSuffix(cfg.BaseEndpoint, "/"),
	}, nil
}

func (s *S3Store) Save(ctx context.Context, r io.Reader, originalName string) (*StoredFile, error) {
	name := GenerateName(originalName)

	// buffered so the SDK can sign a seekable body
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}

	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(name),
		Body:   bytes.NewReader(data),
	})
	if err != nil {
		return nil, fmt.Errorf("put object: %w", err)
	}

	return &StoredFile{Name: name, PublicPath: s.PublicPath(name)}, nil
}

// Remove deletes the object. S3 DeleteObject succeeds for absent keys, which
// matches the non-fatal missing-blob contract.
func (s *S3Store) Remove(ctx context.Context, name string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(name),
	})
	if err != nil {
		return fmt.Errorf("delete object: %w", err)
	}
	return nil
}

func (s *S3Store) PublicPath(name string) string {
	return fmt.Sprintf("%s/%s/%s", s.base, s.bucket, name)
}
