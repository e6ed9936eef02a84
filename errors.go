package simplecal

import (
	"errors"
	"fmt"
)

// ErrInvalidIndex is matched by every InvalidIndexError
var ErrInvalidIndex = errors.New("invalid index")

// InvalidIndexError reports a delete position outside the collection.
// It means the caller's view of the collection is stale.
type InvalidIndexError struct {
	Index  int
	Length int
}

func (e *InvalidIndexError) Error() string {
	return fmt.Sprintf("invalid index %d for collection of length %d", e.Index, e.Length)
}

func (e *InvalidIndexError) Is(target error) bool {
	return target == ErrInvalidIndex
}

// ConfigurationError means the decomposition endpoint cannot be called at all
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return "configuration error: " + e.Reason
}

// ErrCredentialsMissing builds the ConfigurationError for an absent API key
func ErrCredentialsMissing() error {
	return &ConfigurationError{Reason: "credentials missing"}
}

// DecompositionError carries a one-line message suitable for the user
type DecompositionError struct {
	Message string
	Err     error
}

func (e *DecompositionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("decomposition failed: %s: %v", e.Message, e.Err)
	}
	return "decomposition failed: " + e.Message
}

func (e *DecompositionError) Unwrap() error { return e.Err }

// PersistenceWriteError wraps a failed snapshot save
type PersistenceWriteError struct {
	Err error
}

func (e *PersistenceWriteError) Error() string {
	return fmt.Sprintf("failed to save snapshot: %v", e.Err)
}

func (e *PersistenceWriteError) Unwrap() error { return e.Err }
