package poster

import (
	"fmt"
	"net/url"

	"github.com/fhuszti/rated-posters-ms-go/internal/model"
	"github.com/fhuszti/rated-posters-ms-go/internal/port"
)

func validateContentID(id model.ContentID) error {
	if err := id.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return nil
}

func validateCacheInput(in port.CacheRatedPosterInput) error {
	if in.PosterURL == "" {
		return fmt.Errorf("%w: poster url is required", ErrInvalidInput)
	}
	u, err := url.Parse(in.PosterURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: poster url %q must be an absolute http(s) URL", ErrInvalidInput, in.PosterURL)
	}
	return validateContentID(in.ContentID)
}
