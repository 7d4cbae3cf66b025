package storage

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"

	"github.com/fhuszti/rated-posters-ms-go/internal/usecase/poster"
)

type mockS3 struct {
	headBucketErr   error
	createBucketErr error
	headObjectErr   error
	putErr          error
	deleteErr       error

	createCalls int
	deleteCalls int
	put         *s3.PutObjectInput
	putBody     []byte
}

func (m *mockS3) HeadBucket(ctx context.Context, params *s3.HeadBucketInput, optFns ...func(*s3.Options)) (*s3.HeadBucketOutput, error) {
	return &s3.HeadBucketOutput{}, m.headBucketErr
}
func (m *mockS3) CreateBucket(ctx context.Context, params *s3.CreateBucketInput, optFns ...func(*s3.Options)) (*s3.CreateBucketOutput, error) {
	m.createCalls++
	return &s3.CreateBucketOutput{}, m.createBucketErr
}
func (m *mockS3) HeadObject(ctx context.Context, params *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error) {
	if m.headObjectErr != nil {
		return nil, m.headObjectErr
	}
	return &s3.HeadObjectOutput{}, nil
}
func (m *mockS3) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	m.put = params
	if params.Body != nil {
		m.putBody, _ = io.ReadAll(params.Body)
	}
	if m.putErr != nil {
		return nil, m.putErr
	}
	return &s3.PutObjectOutput{}, nil
}
func (m *mockS3) DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	m.deleteCalls++
	if m.deleteErr != nil {
		return nil, m.deleteErr
	}
	return &s3.DeleteObjectOutput{}, nil
}

type mockPresigner struct {
	expires time.Duration
	key     string
}

func (m *mockPresigner) PresignGetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
	opts := s3.PresignOptions{}
	for _, fn := range optFns {
		fn(&opts)
	}
	m.expires = opts.Expires
	m.key = *params.Key
	return &v4.PresignedHTTPRequest{URL: "https://bucket.s3.amazonaws.com/" + *params.Key + "?X-Amz-Signature=sig"}, nil
}

func makeS3Storage(m *mockS3, p *mockPresigner, opts URLOptions) *S3Storage {
	return &S3Storage{client: m, presigner: p, bucket: "posters", opts: opts.withDefaults()}
}

func TestS3PosterURL(t *testing.T) {
	p := &mockPresigner{}
	s := makeS3Storage(&mockS3{}, p, URLOptions{URLExpiry: 2 * time.Hour})

	got, err := s.PosterURL(context.Background(), "tt1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := "https://bucket.s3.amazonaws.com/rated-posters/tt1.jpg?X-Amz-Signature=sig"; got != want {
		t.Errorf("url = %q; want %q", got, want)
	}
	if p.expires != 2*time.Hour {
		t.Errorf("presign expiry = %v; want 2h", p.expires)
	}
}

func TestS3PosterURL_NotFound(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"typed NotFound", &types.NotFound{}},
		{"generic api error", &smithy.GenericAPIError{Code: "NoSuchKey"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := makeS3Storage(&mockS3{headObjectErr: tc.err}, &mockPresigner{}, URLOptions{})
			_, err := s.PosterURL(context.Background(), "tt1")
			if !errors.Is(err, poster.ErrObjectNotFound) {
				t.Errorf("error = %v; want ErrObjectNotFound", err)
			}
		})
	}
}

func TestS3PosterURL_Failure(t *testing.T) {
	s := makeS3Storage(&mockS3{headObjectErr: &smithy.GenericAPIError{Code: "AccessDenied"}}, &mockPresigner{}, URLOptions{})
	_, err := s.PosterURL(context.Background(), "tt1")
	if !errors.Is(err, poster.ErrStorage) {
		t.Errorf("error = %v; want ErrStorage", err)
	}
}

func TestS3Upload(t *testing.T) {
	m := &mockS3{}
	s := makeS3Storage(m, &mockPresigner{}, URLOptions{PublicURL: "https://pub.r2.dev"})

	got, err := s.Upload(context.Background(), "tt2", []byte("jpeg"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := "https://pub.r2.dev/rated-posters/tt2.jpg"; got != want {
		t.Errorf("url = %q; want %q", got, want)
	}
	if *m.put.Key != "rated-posters/tt2.jpg" || *m.put.Bucket != "posters" {
		t.Errorf("put %s/%s", *m.put.Bucket, *m.put.Key)
	}
	if *m.put.ContentType != "image/jpeg" {
		t.Errorf("content type = %q", *m.put.ContentType)
	}
	if string(m.putBody) != "jpeg" {
		t.Errorf("body = %q; want jpeg", m.putBody)
	}

	m.putErr = errors.New("slow down")
	if _, err := s.Upload(context.Background(), "tt2", []byte("jpeg")); !errors.Is(err, poster.ErrStorage) {
		t.Errorf("error = %v; want ErrStorage", err)
	}
}

func TestS3Delete(t *testing.T) {
	m := &mockS3{}
	s := makeS3Storage(m, &mockPresigner{}, URLOptions{})
	if err := s.Delete(context.Background(), "tt1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.deleteCalls != 1 {
		t.Errorf("DeleteObject calls = %d; want 1", m.deleteCalls)
	}

	missing := &mockS3{headObjectErr: &types.NotFound{}}
	err := makeS3Storage(missing, &mockPresigner{}, URLOptions{}).Delete(context.Background(), "tt1")
	if !errors.Is(err, poster.ErrObjectNotFound) {
		t.Errorf("error = %v; want ErrObjectNotFound", err)
	}
	if missing.deleteCalls != 0 {
		t.Errorf("DeleteObject called on a missing poster")
	}
}

func TestS3EnsureBucket(t *testing.T) {
	existing := &mockS3{}
	if err := makeS3Storage(existing, nil, URLOptions{}).ensureBucket(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if existing.createCalls != 0 {
		t.Error("CreateBucket called for an existing bucket")
	}

	missing := &mockS3{headBucketErr: &types.NotFound{}}
	if err := makeS3Storage(missing, nil, URLOptions{}).ensureBucket(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if missing.createCalls != 1 {
		t.Errorf("CreateBucket calls = %d; want 1", missing.createCalls)
	}

	denied := &mockS3{headBucketErr: errors.New("403"), createBucketErr: &smithy.GenericAPIError{Code: "AccessDenied"}}
	if err := makeS3Storage(denied, nil, URLOptions{}).ensureBucket(context.Background()); !errors.Is(err, poster.ErrStorage) {
		t.Errorf("error = %v; want ErrStorage", err)
	}
}
