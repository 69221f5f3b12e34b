package models

import (
	"errors"
	"fmt"
)

// ErrMalformed matches every *DescriptionError with errors.Is.
var ErrMalformed = errors.New("malformed scene description")

// DescriptionError reports a scene description that failed to decode or
// validate. No rendering happens once one is returned.
type DescriptionError struct {
	Path string // Field path such as "spheres[2].radius", empty for the whole document
	Err  error
}

func (e *DescriptionError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("scene description: %v", e.Err)
	}
	return fmt.Sprintf("scene description: %s: %v", e.Path, e.Err)
}

func (e *DescriptionError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrMalformed.
func (e *DescriptionError) Is(target error) bool {
	return target == ErrMalformed
}

// invalid builds a DescriptionError for a failed validation rule.
func invalid(path, format string, args ...any) *DescriptionError {
	return &DescriptionError{Path: path, Err: fmt.Errorf(format, args...)}
}
