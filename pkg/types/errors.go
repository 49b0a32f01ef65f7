package types

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Record errors.
var (
	ErrNotFound      = errors.New("game not found")
	ErrInvalidID     = errors.New("id must be an integer")
	ErrEmptyTitle    = errors.New("title must not be empty")
	ErrInvalidStatus = errors.New("invalid status value")
	ErrIntegrity     = errors.New("data integrity violation")
	ErrSchema        = errors.New("games table has an unexpected layout")
)

// InputError reports operator input that failed to parse or validate.
// It is raised before any storage call is attempted.
type InputError struct {
	Field string
	Value string
	Err   error
}

func (e *InputError) Error() string {
	return fmt.Sprintf("invalid %s %q: %v", e.Field, e.Value, e.Err)
}

func (e *InputError) Unwrap() error { return e.Err }

// StorageError wraps a failure from the persistence engine. Op names the
// store operation that failed.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return e.Op + ": " + e.Err.Error()
}

func (e *StorageError) Unwrap() error { return e.Err }

// IsInputError reports whether err wraps an *InputError.
func IsInputError(err error) bool {
	var ie *InputError
	return errors.As(err, &ie)
}

// IsStorageError reports whether err wraps a *StorageError.
func IsStorageError(err error) bool {
	var se *StorageError
	return errors.As(err, &se)
}

// ParseID converts operator input into a record identifier. Surrounding
// whitespace is ignored. Any non-integer value yields an *InputError wrapping
// ErrInvalidID.
func ParseID(raw string) (int64, error) {
	s := strings.TrimSpace(raw)
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, &InputError{Field: "id", Value: raw, Err: ErrInvalidID}
	}
	return id, nil
}
