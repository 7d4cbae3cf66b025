package storage

import (
	"bytes"
	"context"
	"net/url"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/fhuszti/rated-posters-ms-go/internal/logger"
	"github.com/fhuszti/rated-posters-ms-go/internal/model"
	"github.com/fhuszti/rated-posters-ms-go/internal/port"
)

// URLOptions decides how stored posters are addressed.
type URLOptions struct {
	Folder string
	// PublicURL, when set, is prefixed to the object key (public bucket or CDN).
	PublicURL string
	// URLExpiry is the lifetime of presigned URLs when PublicURL is empty.
	URLExpiry time.Duration
}

func (o URLOptions) withDefaults() URLOptions {
	if o.Folder == "" {
		o.Folder = DefaultFolder
	}
	if o.URLExpiry <= 0 {
		o.URLExpiry = 24 * time.Hour
	}
	return o
}

type MinioStorage struct {
	client     minioClient
	bucketName string
	opts       URLOptions
}

type Strg struct {
	Client minioClient
	useSSL bool
}

// compile-time check: *MinioStorage must satisfy port.PosterStore
var _ port.PosterStore = (*MinioStorage)(nil)

func NewMinioClient(endpoint, accessKey, secretKey string, useSSL bool) (*Strg, error) {
	logger.Infof(context.Background(), "initialising minio client for %s...", endpoint)
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, mapMinioErr(err)
	}
	return &Strg{Client: client, useSSL: useSSL}, nil
}

// WithBucket binds the client to bucket, creating it when missing.
func (c *Strg) WithBucket(ctx context.Context, bucket string, opts URLOptions) (*MinioStorage, error) {
	ok, err := c.Client.BucketExists(ctx, bucket)
	if err != nil {
		return nil, mapMinioErr(err)
	}
	if !ok {
		logger.Infof(ctx, "bucket %q does not exist, creating it...", bucket)
		if err := c.Client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, mapMinioErr(err)
		}
	}
	return &MinioStorage{client: c.Client, bucketName: bucket, opts: opts.withDefaults()}, nil
}

func (s *MinioStorage) PosterURL(ctx context.Context, id model.ContentID) (string, error) {
	key := ObjectKey(s.opts.Folder, id)
	logger.Debugf(ctx, "checking for poster %q in bucket %q...", key, s.bucketName)

	if _, err := s.client.StatObject(ctx, s.bucketName, key, minio.StatObjectOptions{}); err != nil {
		return "", mapMinioErr(err)
	}
	return s.objectURL(ctx, key)
}

func (s *MinioStorage) Upload(ctx context.Context, id model.ContentID, data []byte) (string, error) {
	key := ObjectKey(s.opts.Folder, id)
	logger.Infof(ctx, "saving poster %q into bucket %q...", key, s.bucketName)

	_, err := s.client.PutObject(ctx, s.bucketName, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType:  ContentType,
		CacheControl: CacheControl,
	})
	if err != nil {
		return "", mapMinioErr(err)
	}
	return s.objectURL(ctx, key)
}

// Delete reports poster.ErrObjectNotFound for a missing poster; RemoveObject
// alone succeeds silently on absent keys.
func (s *MinioStorage) Delete(ctx context.Context, id model.ContentID) error {
	key := ObjectKey(s.opts.Folder, id)
	logger.Infof(ctx, "removing poster %q from bucket %q...", key, s.bucketName)

	if _, err := s.client.StatObject(ctx, s.bucketName, key, minio.StatObjectOptions{}); err != nil {
		return mapMinioErr(err)
	}
	return mapMinioErr(s.client.RemoveObject(ctx, s.bucketName, key, minio.RemoveObjectOptions{}))
}

func (s *MinioStorage) objectURL(ctx context.Context, key string) (string, error) {
	if s.opts.PublicURL != "" {
		return joinURL(s.opts.PublicURL, key), nil
	}
	presignedURL, err := s.client.PresignedGetObject(ctx, s.bucketName, key, s.opts.URLExpiry, url.Values{})
	if err != nil {
		return "", mapMinioErr(err)
	}
	return presignedURL.String(), nil
}
