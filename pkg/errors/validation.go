package errors

import (
	"math"
	"strings"
	"unicode"
)

// MaxDimension bounds chart width and height. Larger frames are almost
// certainly a unit mistake and would make PNG rasterization allocate
// hundreds of megabytes.
const MaxDimension = 8192

// ValidateDimensions checks that a chart frame is positive, finite and
// within [MaxDimension].
func ValidateDimensions(width, height float64) error {
	for _, d := range []struct {
		name string
		v    float64
	}{{"width", width}, {"height", height}} {
		if math.IsNaN(d.v) || math.IsInf(d.v, 0) {
			return New(ErrCodeInvalidConfig, "%s must be finite", d.name)
		}
		if d.v <= 0 {
			return New(ErrCodeInvalidConfig, "%s must be positive, got %g", d.name, d.v)
		}
		if d.v > MaxDimension {
			return New(ErrCodeInvalidConfig, "%s too large (max %d), got %g", d.name, MaxDimension, d.v)
		}
	}
	return nil
}

// ValidateRatio checks that v lies in [0, 1].
func ValidateRatio(name string, v float64) error {
	if math.IsNaN(v) || v < 0 || v > 1 {
		return New(ErrCodeInvalidConfig, "%s must be within [0, 1], got %g", name, v)
	}
	return nil
}

// ValidateNonNegative checks that v is finite and not negative.
func ValidateNonNegative(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return New(ErrCodeInvalidConfig, "%s must be a non-negative number, got %g", name, v)
	}
	return nil
}

// ValidateKey validates a textual data key. Keys end up in SVG ids, HTTP
// query parameters and cache keys, so control characters are rejected.
//
// The validation rules are:
//   - No empty keys
//   - No control characters
//   - Maximum length of 256 characters
func ValidateKey(key string) error {
	if key == "" {
		return New(ErrCodeInvalidInput, "key cannot be empty")
	}
	if len(key) > 256 {
		return New(ErrCodeInvalidInput, "key too long (max 256 characters)")
	}
	for _, r := range key {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "key contains invalid control characters")
		}
	}
	return nil
}

// ValidateID validates a stored chart definition identifier.
// It rejects anything that could escape a URL path segment.
func ValidateID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidInput, "id cannot be empty")
	}
	if len(id) > 64 {
		return New(ErrCodeInvalidInput, "id too long (max 64 characters)")
	}
	if strings.ContainsAny(id, "/\\?#%") || strings.Contains(id, "..") {
		return New(ErrCodeInvalidInput, "id contains invalid characters")
	}
	for _, r := range id {
		if unicode.IsControl(r) || unicode.IsSpace(r) {
			return New(ErrCodeInvalidInput, "id contains invalid characters")
		}
	}
	return nil
}
