package storage

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	smithyhttp "github.com/aws/smithy-go/transport/http"
	"github.com/minio/minio-go/v7"

	"github.com/fhuszti/rated-posters-ms-go/internal/usecase/poster"
)

func mapMinioErr(err error) error {
	if err == nil {
		return nil
	}
	resp := minio.ToErrorResponse(err)
	switch resp.Code {
	case "NoSuchKey":
		return poster.ErrObjectNotFound
	case "NoSuchBucket", "AccessDenied", "InvalidAccessKeyId", "SignatureDoesNotMatch":
		return fmt.Errorf("%w: %s: %v", poster.ErrStorage, resp.Code, err)
	default:
		// catch everything else
		return fmt.Errorf("%w: %v", poster.ErrStorage, err)
	}
}

func mapS3Err(err error) error {
	if err == nil {
		return nil
	}

	var notFound *types.NotFound
	var noSuchKey *types.NoSuchKey
	if errors.As(err, &notFound) || errors.As(err, &noSuchKey) {
		return poster.ErrObjectNotFound
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NotFound", "NoSuchKey":
			return poster.ErrObjectNotFound
		}
		return fmt.Errorf("%w: %s: %v", poster.ErrStorage, apiErr.ErrorCode(), err)
	}

	// HEAD responses carry no body, so only the status code is left
	var respErr *smithyhttp.ResponseError
	if errors.As(err, &respErr) && respErr.HTTPStatusCode() == http.StatusNotFound {
		return poster.ErrObjectNotFound
	}
	return fmt.Errorf("%w: %v", poster.ErrStorage, err)
}
