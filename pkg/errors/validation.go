package errors

import (
	"math"
	"strings"
	"unicode"
)

// ValidateViewport checks that all four bounds are finite and that each
// axis spans a positive range.
func ValidateViewport(xmin, xmax, ymin, ymax float64) error {
	for _, b := range []struct {
		name string
		v    float64
	}{{"xmin", xmin}, {"xmax", xmax}, {"ymin", ymin}, {"ymax", ymax}} {
		if math.IsNaN(b.v) || math.IsInf(b.v, 0) {
			return New(ErrCodeInvalidViewport, "%s must be a finite number", b.name)
		}
	}
	if xmin >= xmax {
		return New(ErrCodeInvalidViewport, "xmin (%g) must be less than xmax (%g)", xmin, xmax)
	}
	if ymin >= ymax {
		return New(ErrCodeInvalidViewport, "ymin (%g) must be less than ymax (%g)", ymin, ymax)
	}
	return nil
}

// ValidateResolution checks that both grid dimensions are at least 1.
func ValidateResolution(width, height int) error {
	if width < 1 {
		return New(ErrCodeInvalidResolution, "width must be at least 1, got %d", width)
	}
	if height < 1 {
		return New(ErrCodeInvalidResolution, "height must be at least 1, got %d", height)
	}
	return nil
}

// ValidateIterations checks that the iteration limit is positive.
func ValidateIterations(iters int) error {
	if iters < 1 {
		return New(ErrCodeInvalidIterations, "iterations must be at least 1, got %d", iters)
	}
	return nil
}

// ValidateRegionName validates a user-defined region name.
//
// Names are used as CLI flag values, URL query values and TOML table keys,
// so the rules are conservative:
//   - No empty names
//   - Maximum length of 64 characters
//   - Letters, digits, '-' and '_' only
func ValidateRegionName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return New(ErrCodeInvalidRegion, "region name cannot be empty")
	}
	if len(name) > 64 {
		return New(ErrCodeInvalidRegion, "region name too long (max 64 characters)")
	}
	for _, r := range name {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' || r == '_' {
			continue
		}
		return New(ErrCodeInvalidRegion, "region name %q contains invalid character %q", name, r)
	}
	return nil
}
