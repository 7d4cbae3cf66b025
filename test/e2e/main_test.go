package e2e

import (
	"fmt"
	"os"
	"testing"

	"github.com/minio/minio-go/v7"

	"github.com/fhuszti/rated-posters-ms-go/internal/storage"
	"github.com/fhuszti/rated-posters-ms-go/test/testutil"
)

var (
	strg        *storage.Strg
	minioClient *minio.Client
)

func TestMain(m *testing.M) {
	mi, err := testutil.StartMinIOContainer()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to start MinIO: %v\n", err)
		os.Exit(1)
	}
	strg, minioClient = mi.Strg, mi.Client

	exitCode := m.Run()

	mi.Cleanup()
	os.Exit(exitCode)
}
