package testutil

import (
	"context"
	"fmt"
	"strings"

	"github.com/minio/minio-go/v7"
)

// EmptyBucket removes every object of bucket and the bucket itself.
func EmptyBucket(client *minio.Client, bucket string) error {
	ctx := context.Background()

	exists, err := client.BucketExists(ctx, bucket)
	if err != nil || !exists {
		return err
	}
	for obj := range client.ListObjects(ctx, bucket, minio.ListObjectsOptions{Recursive: true}) {
		if obj.Err != nil {
			continue
		}
		_ = client.RemoveObject(ctx, bucket, obj.Key, minio.RemoveObjectOptions{})
	}
	if err := client.RemoveBucket(ctx, bucket); err != nil {
		return fmt.Errorf("could not remove bucket %q: %w", bucket, err)
	}
	return nil
}

// BucketName derives a valid, per-test bucket name.
func BucketName(testName string) string {
	name := strings.ToLower(testName)
	name = strings.NewReplacer("/", "-", "_", "-", " ", "-").Replace(name)
	if len(name) > 50 {
		name = name[:50]
	}
	return "rp-" + strings.Trim(name, "-")
}
