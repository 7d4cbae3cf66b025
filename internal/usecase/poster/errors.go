package poster

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidInput   = errors.New("invalid input")
	ErrObjectNotFound = errors.New("storage: object not found")
	ErrStorage        = errors.New("storage: operation failed")
	ErrDownload       = errors.New("failed to download poster image")
	ErrComposition    = errors.New("failed to create rated poster")
)

// wrapAs tags err with sentinel unless it already carries it.
func wrapAs(sentinel, err error) error {
	if err == nil || errors.Is(err, sentinel) {
		return err
	}
	return fmt.Errorf("%w: %v", sentinel, err)
}
