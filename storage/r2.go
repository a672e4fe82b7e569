package storage

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/cityreport/api-go/config"
)

// previewExpiry bounds presigned preview links.
const previewExpiry = 15 * time.Minute

// R2Store keeps draft photos in a Cloudflare R2 bucket through the S3 API.
type R2Store struct {
	client *s3.Client
	cfg    config.R2Config
}

func NewR2Store(cfg config.R2Config) *R2Store {
	client := s3.New(s3.Options{
		BaseEndpoint: aws.String(fmt.Sprintf("https://%s.r2.cloudflarestorage.com", cfg.AccountID)),
		Credentials: credentials.NewStaticCredentialsProvider(
			cfg.AccessKeyID,
			cfg.SecretAccessKey,
			"",
		),
		Region: cfg.Region,
	})
	return &R2Store{client: client, cfg: cfg}
}

func (r *R2Store) Put(ctx context.Context, key, contentType string, data []byte) error {
	input := &s3.PutObjectInput{
		Bucket:      aws.String(r.cfg.BucketName),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	}
	if _, err := r.client.PutObject(ctx, input); err != nil {
		return fmt.Errorf("put %s: %w", key, err)
	}
	return nil
}

func (r *R2Store) Delete(ctx context.Context, key string) error {
	input := &s3.DeleteObjectInput{
		Bucket: aws.String(r.cfg.BucketName),
		Key:    aws.String(key),
	}
	if _, err := r.client.DeleteObject(ctx, input); err != nil {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}

// URL returns the public URL when the bucket has one, otherwise a short
// lived presigned GET.
func (r *R2Store) URL(ctx context.Context, key string) (string, error) {
	if r.cfg.PublicURL != "" {
		return fmt.Sprintf("%s/%s", r.cfg.PublicURL, key), nil
	}

	presigner := s3.NewPresignClient(r.client)
	req, err := presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(r.cfg.BucketName),
		Key:    aws.String(key),
	}, func(opts *s3.PresignOptions) {
		opts.Expires = previewExpiry
	})
	if err != nil {
		return "", fmt.Errorf("presign %s: %w", key, err)
	}
	return req.URL, nil
}

// New picks the R2 store when credentials are configured and the in-memory
// store otherwise.
func New(cfg config.R2Config) PhotoStore {
	if cfg.Enabled() {
		return NewR2Store(cfg)
	}
	return NewMemoryStore()
}
