// Package model contains domain models passed between layers.
package model

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

var (
	// ErrMissingField reports an upstream record that passed the image/prompt
	// filter but lacks a field needed to build a card.
	ErrMissingField = errors.New("upstream record missing required field")
	// ErrInvalidDimension reports a width or height that is not a whole number.
	ErrInvalidDimension = errors.New("dimension is not a whole number")
)

// PromptCard is one search result exposed to callers.
type PromptCard struct {
	ID         string `json:"id"`
	ImageURL   string `json:"image_url"`
	PromptText string `json:"prompt_text"`
	Width      int    `json:"width"`
	Height     int    `json:"height"`
}

// RawImage mirrors one entry of the upstream "images" list. Pointer fields
// distinguish absent keys from zero values.
type RawImage struct {
	ID     *string    `json:"id"`
	Src    *string    `json:"src"`
	Prompt *string    `json:"prompt"`
	Width  *Dimension `json:"width"`
	Height *Dimension `json:"height"`
}

// Dimension is an image side length as sent upstream. Besides plain integers
// it accepts whole floats (512.0) and numeric strings ("512").
type Dimension int

// UnmarshalJSON implements json.Unmarshaler.
func (d *Dimension) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if unquoted, err := strconv.Unquote(s); err == nil {
		s = strings.TrimSpace(unquoted)
	}
	if n, err := strconv.ParseInt(s, 10, 0); err == nil {
		*d = Dimension(n)
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f != math.Trunc(f) || f < math.MinInt32 || f > math.MaxInt32 {
		return fmt.Errorf("%w: %s", ErrInvalidDimension, string(b))
	}
	*d = Dimension(f)
	return nil
}

// NewPromptCard builds a card from raw. ok is false when the image address or
// the prompt text is absent or empty; such records are dropped silently.
// Values are copied verbatim.
func NewPromptCard(raw RawImage) (card PromptCard, ok bool, err error) {
	if raw.Src == nil || *raw.Src == "" || raw.Prompt == nil || *raw.Prompt == "" {
		return PromptCard{}, false, nil
	}

	var missing string
	switch {
	case raw.ID == nil:
		missing = "id"
	case raw.Width == nil:
		missing = "width"
	case raw.Height == nil:
		missing = "height"
	}
	if missing != "" {
		return PromptCard{}, false, fmt.Errorf("%w: %s", ErrMissingField, missing)
	}

	return PromptCard{
		ID:         *raw.ID,
		ImageURL:   *raw.Src,
		PromptText: *raw.Prompt,
		Width:      int(*raw.Width),
		Height:     int(*raw.Height),
	}, true, nil
}
