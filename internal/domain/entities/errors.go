package entities

import (
	"errors"
	"fmt"
)

// Call-contract violations. Malformed block syntax never produces one of these.
var (
	ErrNoSlides          = errors.New("deck must have at least one slide")
	ErrMissingTitle      = errors.New("deck title is required")
	ErrInvalidMode       = errors.New("mode must be dark or light")
	ErrInvalidSlideIndex = errors.New("slide index out of range")
)

// ColorError reports a colour that is not a #RRGGBB hex triplet
type ColorError struct {
	Field string
	Value string
}

func (e *ColorError) Error() string {
	return fmt.Sprintf("invalid color for %s: %q (expected #RRGGBB)", e.Field, e.Value)
}
