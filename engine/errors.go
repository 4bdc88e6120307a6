package engine

import "errors"

var (
	// ErrNoModules is returned when a request names no modules at all.
	ErrNoModules = errors.New("no modules requested")
	// ErrInvalidModule is returned when any module id falls outside the
	// offered catalog. The whole call is rejected, never partially applied.
	ErrInvalidModule = errors.New("invalid module id")
	// ErrInvalidAction is returned for a decision other than approve/deny.
	ErrInvalidAction = errors.New("invalid decision action")
	// ErrNotFound is returned when the target access request does not exist.
	ErrNotFound = errors.New("access request not found")
)
