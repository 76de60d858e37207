package schema

import (
	"errors"
	"fmt"
)

// ErrAuthoring is matched by every AuthoringError via errors.Is.
var ErrAuthoring = errors.New("malformed block schema")

// AuthoringError reports a schema that cannot be built. These are
// programming mistakes in a block definition and surface at registration.
type AuthoringError struct {
	Block  string
	Reason string
}

func (e *AuthoringError) Error() string {
	if e.Block == "" {
		return "block schema: " + e.Reason
	}
	return fmt.Sprintf("block %s: %s", e.Block, e.Reason)
}

func (e *AuthoringError) Is(target error) bool {
	return target == ErrAuthoring
}

func authoringf(block, format string, args ...interface{}) error {
	return &AuthoringError{Block: block, Reason: fmt.Sprintf(format, args...)}
}
