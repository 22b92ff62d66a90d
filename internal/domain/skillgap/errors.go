package skillgap

import (
	"errors"
	"fmt"
)

var (
	ErrValidation  = errors.New("validation failed")
	ErrUnknownRole = errors.New("unknown role")
)

// ValidationError reports malformed catalog or request input. It is only
// returned while building a Catalog, a Scorer or a Request.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func invalid(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

type UnknownRoleError struct {
	Role string
}

func (e *UnknownRoleError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("unknown role %q", e.Role)
}

func (e *UnknownRoleError) Is(target error) bool {
	return target == ErrUnknownRole
}
