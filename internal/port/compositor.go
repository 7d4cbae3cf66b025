package port

import "github.com/fhuszti/rated-posters-ms-go/internal/model"

// Compositor draws the rating badge onto a source poster and returns the encoded result.
type Compositor interface {
	Compose(src []byte, rating model.Rating) ([]byte, error)
}
