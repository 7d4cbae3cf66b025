package config

import (
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	DriverMinio = "minio"
	DriverS3    = "s3"
	DriverFS    = "fs"
)

type Settings struct {
	ServerPort int

	StorageDriver    string
	StorageBucket    string
	StorageFolder    string
	StoragePublicURL string
	StorageURLExpiry time.Duration

	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioUseSSL    bool

	S3Bucket    string
	S3Endpoint  string
	S3Region    string
	S3AccessKey string
	S3SecretKey string
	S3UseSSL    bool

	FSCacheDir      string
	FSCacheTTL      time.Duration
	FSSweepInterval time.Duration

	PosterLayout    string
	FetchTimeout    time.Duration
	FetchMaxBytes   int64
	MaxSourcePixels int64

	RedisAddr      string
	RedisPassword  string
	SourceCacheTTL time.Duration
}

func Load() (*Settings, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Println("No .env file found; proceeding with OS environment variables")
	}

	v := viper.New()
	v.AutomaticEnv()

	v.SetConfigFile(".env")
	v.SetConfigType("env")

	if err := v.ReadInConfig(); err != nil {
		log.Printf("Warning: could not read .env file: %v", err)
	}

	if !v.IsSet("SERVER_PORT") {
		return nil, fmt.Errorf("SERVER_PORT is required")
	}
	port, err := strconv.Atoi(v.GetString("SERVER_PORT"))
	if err != nil || port <= 0 || port > 65535 {
		return nil, fmt.Errorf("SERVER_PORT must be a valid port, got %q", v.GetString("SERVER_PORT"))
	}

	s := &Settings{
		ServerPort: port,

		StorageDriver:    strings.ToLower(stringOr(v, "STORAGE_DRIVER", DriverMinio)),
		StorageBucket:    stringOr(v, "STORAGE_BUCKET", "posters"),
		StorageFolder:    stringOr(v, "STORAGE_FOLDER", "rated-posters"),
		StoragePublicURL: strings.TrimSuffix(v.GetString("STORAGE_PUBLIC_URL"), "/"),

		MinioEndpoint:  v.GetString("MINIO_ENDPOINT"),
		MinioAccessKey: v.GetString("MINIO_ACCESS_KEY"),
		MinioSecretKey: v.GetString("MINIO_SECRET_KEY"),
		MinioUseSSL:    v.GetBool("MINIO_USE_SSL"),

		S3Bucket:    v.GetString("S3_BUCKET"),
		S3Endpoint:  v.GetString("S3_ENDPOINT"),
		S3Region:    v.GetString("S3_REGION"),
		S3AccessKey: v.GetString("S3_ACCESS_KEY"),
		S3SecretKey: v.GetString("S3_SECRET_KEY"),
		S3UseSSL:    boolOr(v, "S3_USE_SSL", true),

		FSCacheDir: v.GetString("FS_CACHE_DIR"),

		PosterLayout: strings.ToLower(stringOr(v, "POSTER_LAYOUT", "split")),

		RedisAddr:     v.GetString("REDIS_ADDR"),
		RedisPassword: v.GetString("REDIS_PASSWORD"),
	}

	durations := []struct {
		key  string
		def  time.Duration
		dest *time.Duration
	}{
		{"STORAGE_URL_EXPIRY", 24 * time.Hour, &s.StorageURLExpiry},
		{"FS_CACHE_TTL", 7 * 24 * time.Hour, &s.FSCacheTTL},
		{"FS_SWEEP_INTERVAL", 24 * time.Hour, &s.FSSweepInterval},
		{"FETCH_TIMEOUT", 5 * time.Second, &s.FetchTimeout},
		{"SOURCE_CACHE_TTL", time.Hour, &s.SourceCacheTTL},
	}
	for _, d := range durations {
		val, err := durationOr(v, d.key, d.def)
		if err != nil {
			return nil, err
		}
		*d.dest = val
	}

	limits := []struct {
		key  string
		def  int64
		dest *int64
	}{
		{"FETCH_MAX_BYTES", 10 << 20, &s.FetchMaxBytes},
		{"MAX_SOURCE_PIXELS", 40_000_000, &s.MaxSourcePixels},
	}
	for _, l := range limits {
		*l.dest = l.def
		raw := v.GetString(l.key)
		if raw == "" {
			continue
		}
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("%s must be a positive integer, got %q", l.key, raw)
		}
		*l.dest = n
	}

	if err := s.validateDriver(v); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Settings) validateDriver(v *viper.Viper) error {
	var required []string
	switch s.StorageDriver {
	case DriverMinio:
		required = []string{"MINIO_ENDPOINT", "MINIO_ACCESS_KEY", "MINIO_SECRET_KEY"}
	case DriverS3:
		required = []string{"S3_BUCKET"}
	case DriverFS:
		required = []string{"FS_CACHE_DIR"}
	default:
		return fmt.Errorf("STORAGE_DRIVER must be one of %s, %s or %s, got %q", DriverMinio, DriverS3, DriverFS, s.StorageDriver)
	}
	for _, key := range required {
		if !v.IsSet(key) || v.GetString(key) == "" {
			return fmt.Errorf("%s is required", key)
		}
	}
	return nil
}

func stringOr(v *viper.Viper, key, def string) string {
	if s := v.GetString(key); s != "" {
		return s
	}
	return def
}

func boolOr(v *viper.Viper, key string, def bool) bool {
	if v.GetString(key) == "" {
		return def
	}
	return v.GetBool(key)
}

func durationOr(v *viper.Viper, key string, def time.Duration) (time.Duration, error) {
	raw := v.GetString(key)
	if raw == "" {
		return def, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("%s must be a positive duration, got %q", key, raw)
	}
	return d, nil
}
