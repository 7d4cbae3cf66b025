package model

import (
	"errors"
	"fmt"
	"regexp"
)

// MaxContentIDLength bounds the identifier so it stays a reasonable object key.
const MaxContentIDLength = 128

var contentIDPattern = regexp.MustCompile(`^[A-Za-z0-9._:-]+$`)

var ErrInvalidContentID = errors.New("invalid content id")

// ContentID identifies a piece of media (e.g. "tt0111161" or "kitsu:1234").
// It is the key of the rated poster inside the store namespace.
type ContentID string

func (c ContentID) String() string {
	return string(c)
}

// Validate rejects empty identifiers and anything that could escape the store namespace.
func (c ContentID) Validate() error {
	s := string(c)
	switch {
	case s == "":
		return fmt.Errorf("%w: empty", ErrInvalidContentID)
	case len(s) > MaxContentIDLength:
		return fmt.Errorf("%w: longer than %d characters", ErrInvalidContentID, MaxContentIDLength)
	case s == "." || s == "..":
		return fmt.Errorf("%w: %q", ErrInvalidContentID, s)
	case !contentIDPattern.MatchString(s):
		return fmt.Errorf("%w: %q contains forbidden characters", ErrInvalidContentID, s)
	}
	return nil
}

// ParseContentID validates raw and returns it as a ContentID.
func ParseContentID(raw string) (ContentID, error) {
	id := ContentID(raw)
	if err := id.Validate(); err != nil {
		return "", err
	}
	return id, nil
}
