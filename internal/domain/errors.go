package domain

import (
	"errors"
	"fmt"
)

// ValidationError reports a missing or malformed query field.
type ValidationError struct {
	Field string
	Msg   string
	Err   error
}

func (e ValidationError) Error() string {
	if e.Msg != "" && e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Msg)
	}
	if e.Msg != "" {
		return e.Msg
	}
	if e.Field != "" {
		return fmt.Sprintf("invalid %s", e.Field)
	}
	return "validation error"
}

func (e ValidationError) Unwrap() error { return e.Err }

// StorageUnavailable reports that the catalog or the ledger could not be read.
type StorageUnavailable struct {
	Op  string
	Err error
}

func (e StorageUnavailable) Error() string {
	if e.Op == "" {
		return fmt.Sprintf("storage unavailable: %v", e.Err)
	}
	return fmt.Sprintf("storage unavailable: %s: %v", e.Op, e.Err)
}

func (e StorageUnavailable) Unwrap() error { return e.Err }

func IsValidation(err error) bool {
	var target ValidationError
	return errors.As(err, &target)
}

func IsStorageUnavailable(err error) bool {
	var target StorageUnavailable
	return errors.As(err, &target)
}
