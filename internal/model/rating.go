package model

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

const (
	MinRating = 0.0
	MaxRating = 10.0

	// NotRated is the sentinel catalogs send when no rating is available.
	NotRated = "NR"
)

var ErrInvalidRating = errors.New("invalid rating")

// Rating is an optional score on a 0-10 scale.
// The zero value means "not rated".
type Rating struct {
	Value float64
	Rated bool
}

// NewRating builds a rated value in [MinRating, MaxRating].
func NewRating(v float64) (Rating, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < MinRating || v > MaxRating {
		return Rating{}, fmt.Errorf("%w: %v is outside [%v, %v]", ErrInvalidRating, v, MinRating, MaxRating)
	}
	return Rating{Value: v, Rated: true}, nil
}

// ParseRating accepts "NR", an empty string or a decimal number.
// "0" is a rated 0.0.
func ParseRating(raw string) (Rating, error) {
	s := strings.TrimSpace(raw)
	if s == "" || strings.EqualFold(s, NotRated) {
		return Rating{}, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return Rating{}, fmt.Errorf("%w: %q is not a number", ErrInvalidRating, raw)
	}
	return NewRating(v)
}

// Format renders the rating with exactly one decimal, or "NR".
func (r Rating) Format() string {
	if !r.Rated {
		return NotRated
	}
	return strconv.FormatFloat(r.Value, 'f', 1, 64)
}

func (r Rating) String() string {
	return r.Format()
}

// UnmarshalJSON accepts a number, a numeric string, "NR" or null.
// A bare JSON 0 is what catalogs send for unknown ratings and decodes as not
// rated; the string "0" stays a rated 0.0.
func (r *Rating) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*r = Rating{}
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidRating, err)
		}
		parsed, err := ParseRating(s)
		if err != nil {
			return err
		}
		*r = parsed
		return nil
	}

	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidRating, string(data))
	}
	if v == 0 {
		*r = Rating{}
		return nil
	}
	parsed, err := NewRating(v)
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// MarshalJSON writes a rated zero as "0" so it does not decode back as
// not rated.
func (r Rating) MarshalJSON() ([]byte, error) {
	if !r.Rated {
		return json.Marshal(NotRated)
	}
	if r.Value == 0 {
		return json.Marshal("0")
	}
	return json.Marshal(r.Value)
}
