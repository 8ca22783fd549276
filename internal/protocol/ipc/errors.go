package ipc

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownKind      = errors.New("ipc: unknown message kind")
	ErrMalformedMessage = errors.New("ipc: malformed message")
)

// UnknownKindError names the kind Compose could not map to a layout.
type UnknownKindError struct {
	Kind string
}

func (e *UnknownKindError) Error() string {
	return fmt.Sprintf("ipc: unknown message kind %q", e.Kind)
}

func (e *UnknownKindError) Is(target error) bool {
	return target == ErrUnknownKind
}

func malformed(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrMalformedMessage, fmt.Sprintf(format, args...))
}
