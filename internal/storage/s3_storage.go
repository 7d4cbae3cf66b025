package storage

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/fhuszti/rated-posters-ms-go/internal/logger"
	"github.com/fhuszti/rated-posters-ms-go/internal/model"
	"github.com/fhuszti/rated-posters-ms-go/internal/port"
)

// S3Config holds configuration for AWS S3 or any S3-compatible service (R2, ...).
type S3Config struct {
	Endpoint  string // empty for AWS itself
	AccessKey string
	SecretKey string
	UseSSL    bool
	Bucket    string
	Region    string
}

type S3Storage struct {
	client    s3Client
	presigner s3Presigner
	bucket    string
	opts      URLOptions
}

// compile-time check: *S3Storage must satisfy port.PosterStore
var _ port.PosterStore = (*S3Storage)(nil)

func NewS3Storage(ctx context.Context, cfg S3Config, opts URLOptions) (*S3Storage, error) {
	region := cfg.Region
	if region == "" {
		region = "us-east-1"
	}

	loadOpts := []func(*config.LoadOptions) error{config.WithRegion(region)}
	if cfg.AccessKey != "" {
		loadOpts = append(loadOpts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}
	awsCfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if endpoint := normalizeEndpoint(cfg.Endpoint); endpoint != "" {
			scheme := "http"
			if cfg.UseSSL {
				scheme = "https"
			}
			o.BaseEndpoint = aws.String(scheme + "://" + endpoint)
			o.UsePathStyle = true
		}
	})

	logger.Infof(ctx, "initialising s3 client for bucket %q in %s...", cfg.Bucket, region)
	s := &S3Storage{
		client:    client,
		presigner: s3.NewPresignClient(client),
		bucket:    cfg.Bucket,
		opts:      opts.withDefaults(),
	}
	if err := s.ensureBucket(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// normalizeEndpoint removes protocol prefix and path from endpoint
func normalizeEndpoint(endpoint string) string {
	endpoint = strings.TrimPrefix(endpoint, "https://")
	endpoint = strings.TrimPrefix(endpoint, "http://")
	if idx := strings.Index(endpoint, "/"); idx != -1 {
		endpoint = endpoint[:idx]
	}
	return endpoint
}

func (s *S3Storage) ensureBucket(ctx context.Context) error {
	_, err := s.client.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(s.bucket)})
	if err == nil {
		return nil
	}

	logger.Infof(ctx, "bucket %q not reachable (%v), trying to create it...", s.bucket, err)
	if _, err := s.client.CreateBucket(ctx, &s3.CreateBucketInput{Bucket: aws.String(s.bucket)}); err != nil {
		return fmt.Errorf("failed to create bucket %q: %w", s.bucket, mapS3Err(err))
	}
	return nil
}

func (s *S3Storage) PosterURL(ctx context.Context, id model.ContentID) (string, error) {
	key := ObjectKey(s.opts.Folder, id)
	logger.Debugf(ctx, "checking for poster %q in bucket %q...", key, s.bucket)

	if _, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}); err != nil {
		return "", mapS3Err(err)
	}
	return s.objectURL(ctx, key)
}

func (s *S3Storage) Upload(ctx context.Context, id model.ContentID, data []byte) (string, error) {
	key := ObjectKey(s.opts.Folder, id)
	logger.Infof(ctx, "saving poster %q into bucket %q...", key, s.bucket)

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
		ContentType:   aws.String(ContentType),
		CacheControl:  aws.String(CacheControl),
	})
	if err != nil {
		return "", mapS3Err(err)
	}
	return s.objectURL(ctx, key)
}

func (s *S3Storage) Delete(ctx context.Context, id model.ContentID) error {
	key := ObjectKey(s.opts.Folder, id)
	logger.Infof(ctx, "removing poster %q from bucket %q...", key, s.bucket)

	// DeleteObject succeeds on missing keys
	if _, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}); err != nil {
		return mapS3Err(err)
	}
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	return mapS3Err(err)
}

func (s *S3Storage) objectURL(ctx context.Context, key string) (string, error) {
	if s.opts.PublicURL != "" {
		return joinURL(s.opts.PublicURL, key), nil
	}
	req, err := s.presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(s.opts.URLExpiry))
	if err != nil {
		return "", mapS3Err(err)
	}
	return req.URL, nil
}
