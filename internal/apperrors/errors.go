package apperrors

import (
	"errors"
	"fmt"
)

// Sentinel errors for the service layer. Handlers translate these to HTTP
// status codes; everything else surfaces as an internal error.
var (
	// ErrNotFound means no record or file exists for the given key.
	ErrNotFound = errors.New("not found")
	// ErrConflict means a medical history already exists for the patient.
	ErrConflict = errors.New("already exists")
	// ErrStorage means a file byte write or delete failed.
	ErrStorage = errors.New("storage failure")
)

// AccessDeniedError is returned when an authenticated principal is not
// authorized for the requested operation on the target record.
type AccessDeniedError struct {
	Reason string
}

func (e *AccessDeniedError) Error() string {
	return "access denied: " + e.Reason
}

// AccessDenied builds an AccessDeniedError with the given reason.
func AccessDenied(reason string) error {
	return &AccessDeniedError{Reason: reason}
}

// IsAccessDenied reports whether err is an authorization denial.
func IsAccessDenied(err error) bool {
	var denied *AccessDeniedError
	return errors.As(err, &denied)
}

// NotFoundf wraps ErrNotFound with a formatted message.
func NotFoundf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrNotFound, fmt.Sprintf(format, args...))
}

// Conflictf wraps ErrConflict with a formatted message.
func Conflictf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrConflict, fmt.Sprintf(format, args...))
}
