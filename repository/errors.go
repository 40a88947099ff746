package repository

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mattn/go-sqlite3"
)

var (
	// ErrStorageUnavailable wraps any failure of the underlying store.
	ErrStorageUnavailable = errors.New("storage unavailable")
	// ErrDuplicateUsername is returned when a username is already taken.
	ErrDuplicateUsername = errors.New("username already exists")
	// ErrProtectedRecord is returned on attempts to delete the bootstrap administrator.
	ErrProtectedRecord = errors.New("bootstrap administrator cannot be deleted")
	// ErrInvalidRole is returned for roles other than admin and user.
	ErrInvalidRole = errors.New("invalid role")
	// ErrInvalidInput is returned when a required field is empty.
	ErrInvalidInput = errors.New("invalid input")
)

// mapStorageErr classifies a driver error. Constraint violations become domain
// errors, everything else is wrapped in ErrStorageUnavailable.
func mapStorageErr(op string, err error) error {
	if err == nil {
		return nil
	}
	switch {
	case isConstraint(err, sqlite3.ErrConstraintUnique, "UNIQUE constraint failed"):
		return fmt.Errorf("%s: %w", op, ErrDuplicateUsername)
	case isConstraint(err, sqlite3.ErrConstraintCheck, "CHECK constraint failed"):
		return fmt.Errorf("%s: %w", op, ErrInvalidRole)
	}
	return fmt.Errorf("%s: %w: %w", op, ErrStorageUnavailable, err)
}

func isConstraint(err error, code sqlite3.ErrNoExtended, msg string) bool {
	var se sqlite3.Error
	if errors.As(err, &se) {
		return se.ExtendedCode == code
	}
	return strings.Contains(err.Error(), msg)
}
