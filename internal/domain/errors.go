package domain

import (
	"errors"
	"fmt"
)

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

// InvalidRangeError reports a date window whose start falls after its end.
type InvalidRangeError struct {
	Start string
	End   string
}

func (e InvalidRangeError) Error() string {
	if e.Start == "" && e.End == "" {
		return "invalid date range"
	}
	return fmt.Sprintf("invalid date range: start %s is after end %s", e.Start, e.End)
}

// StorageUnavailableError wraps database connectivity or query failures.
// Callers must surface it instead of retrying silently.
type StorageUnavailableError struct {
	Op  string
	Err error
}

func (e StorageUnavailableError) Error() string {
	if e.Op == "" {
		return "storage unavailable"
	}
	return fmt.Sprintf("storage unavailable: %s", e.Op)
}

func (e StorageUnavailableError) Unwrap() error { return e.Err }

type NotFoundError struct {
	Resource string
	Err      error
}

func (e NotFoundError) Error() string {
	if e.Resource == "" {
		return "not found"
	}
	return fmt.Sprintf("%s not found", e.Resource)
}

func (e NotFoundError) Unwrap() error { return e.Err }

type ConflictError struct {
	Resource string
	Msg      string
	Err      error
}

func (e ConflictError) Error() string {
	switch {
	case e.Msg != "" && e.Resource != "":
		return fmt.Sprintf("%s conflict: %s", e.Resource, e.Msg)
	case e.Msg != "":
		return e.Msg
	case e.Resource != "":
		return fmt.Sprintf("%s conflict", e.Resource)
	default:
		return "conflict"
	}
}

func (e ConflictError) Unwrap() error { return e.Err }

// AuthError covers bad credentials and invalid or expired tokens.
// Expired marks the 401 that tells the client to clear its session.
type AuthError struct {
	Msg     string
	Expired bool
	Err     error
}

func (e AuthError) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	if e.Expired {
		return "token expired"
	}
	return "unauthorized"
}

func (e AuthError) Unwrap() error { return e.Err }

func IsValidation(err error) bool {
	var target ValidationError
	return errors.As(err, &target)
}

func IsInvalidRange(err error) bool {
	var target InvalidRangeError
	return errors.As(err, &target)
}

func IsStorageUnavailable(err error) bool {
	var target StorageUnavailableError
	return errors.As(err, &target)
}

func IsNotFound(err error) bool {
	var target NotFoundError
	return errors.As(err, &target)
}

func IsConflict(err error) bool {
	var target ConflictError
	return errors.As(err, &target)
}

func IsAuth(err error) bool {
	var target AuthError
	return errors.As(err, &target)
}

func IsAuthExpired(err error) bool {
	var target AuthError
	return errors.As(err, &target) && target.Expired
}
