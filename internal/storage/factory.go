package storage

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/fhuszti/rated-posters-ms-go/internal/config"
	"github.com/fhuszti/rated-posters-ms-go/internal/port"
)

const (
	DriverMinio = "minio"
	DriverS3    = "s3"
	DriverFS    = "fs"
)

type MinioConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	UseSSL    bool
}

type FSConfig struct {
	Dir string
	TTL time.Duration
}

// Config selects exactly one backing store.
type Config struct {
	Driver string
	Bucket string
	URL    URLOptions

	Minio MinioConfig
	S3    S3Config
	FS    FSConfig
}

// New builds the store named by cfg.Driver.
func New(ctx context.Context, cfg Config) (port.PosterStore, error) {
	switch strings.ToLower(cfg.Driver) {
	case "", DriverMinio:
		strg, err := NewMinioClient(cfg.Minio.Endpoint, cfg.Minio.AccessKey, cfg.Minio.SecretKey, cfg.Minio.UseSSL)
		if err != nil {
			return nil, err
		}
		s, err := strg.WithBucket(ctx, cfg.Bucket, cfg.URL)
		if err != nil {
			return nil, err
		}
		return s, nil
	case DriverS3:
		s3cfg := cfg.S3
		if s3cfg.Bucket == "" {
			s3cfg.Bucket = cfg.Bucket
		}
		s, err := NewS3Storage(ctx, s3cfg, cfg.URL)
		if err != nil {
			return nil, err
		}
		return s, nil
	case DriverFS:
		s, err := NewFSStorage(cfg.FS.Dir, cfg.URL.Folder, cfg.URL.PublicURL, cfg.FS.TTL)
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}

// ConfigFromSettings maps the environment settings onto a store Config.
func ConfigFromSettings(s *config.Settings) Config {
	return Config{
		Driver: s.StorageDriver,
		Bucket: s.StorageBucket,
		URL: URLOptions{
			Folder:    s.StorageFolder,
			PublicURL: s.StoragePublicURL,
			URLExpiry: s.StorageURLExpiry,
		},
		Minio: MinioConfig{
			Endpoint:  s.MinioEndpoint,
			AccessKey: s.MinioAccessKey,
			SecretKey: s.MinioSecretKey,
			UseSSL:    s.MinioUseSSL,
		},
		S3: S3Config{
			Endpoint:  s.S3Endpoint,
			AccessKey: s.S3AccessKey,
			SecretKey: s.S3SecretKey,
			UseSSL:    s.S3UseSSL,
			Bucket:    s.S3Bucket,
			Region:    s.S3Region,
		},
		FS: FSConfig{
			Dir: s.FSCacheDir,
			TTL: s.FSCacheTTL,
		},
	}
}
