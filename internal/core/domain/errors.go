package domain

import "errors"

// Domain errors represent release workflow failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotImplemented indicates functionality is not yet available.
	ErrNotImplemented = errors.New("not implemented")

	// Precondition Errors. Nothing has been mutated when these occur.

	// ErrPrecondition indicates the repository is not in a releasable
	// state (dirty tree, wrong branch, missing marker file).
	ErrPrecondition = errors.New("precondition failed")

	// ErrNotSnapshot indicates the marker file does not denote a
	// snapshot version, so there is nothing to release.
	ErrNotSnapshot = errors.New("marker version is not a snapshot")

	// ErrTagExists indicates a derived tag name already exists.
	// A release must never silently overwrite a prior one.
	ErrTagExists = errors.New("tag already exists")

	// ErrToolFailed indicates an invoked external command (git, gpg,
	// svn) returned a non-zero exit status.
	ErrToolFailed = errors.New("external tool failed")

	// ErrPublishDeclined indicates the operator did not confirm the
	// publish step.
	ErrPublishDeclined = errors.New("publish not confirmed")
)

// MutationError wraps a failure that happened after the repository
// mutation phase began. It carries the advice needed to manually
// restore the clone; no automatic rollback is attempted.
type MutationError struct {
	Advice RollbackAdvice
	Err    error
}

// Error implements the error interface.
func (e *MutationError) Error() string {
	return e.Err.Error()
}

// Unwrap exposes the underlying failure for errors.Is/As.
func (e *MutationError) Unwrap() error {
	return e.Err
}
