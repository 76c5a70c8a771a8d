// Package renomerr defines the typed error taxonomy workflows and the CLI
// use to distinguish validation failures from execution failures
// (spec.md §7), grounded on the teacher's DuplicateOperationConfigurationError
// style of named error structs rather than ad-hoc errors.New calls.
package renomerr

import "fmt"

// InputInvalidError reports a validation failure caught before any
// filesystem mutation: a malformed path, missing descriptor, malformed
// identifier, name collision, or a new name equal to the current one.
type InputInvalidError struct {
	Reason string
}

func (errorValue InputInvalidError) Error() string {
	return fmt.Sprintf("invalid input: %s", errorValue.Reason)
}

// ProbeFailureError reports an IO error or an inconsistent project layout
// encountered during discovery, before any mutation.
type ProbeFailureError struct {
	Reason string
	Cause  error
}

func (errorValue ProbeFailureError) Error() string {
	if errorValue.Cause == nil {
		return fmt.Sprintf("probe failed: %s", errorValue.Reason)
	}
	return fmt.Sprintf("probe failed: %s: %v", errorValue.Reason, errorValue.Cause)
}

func (errorValue ProbeFailureError) Unwrap() error { return errorValue.Cause }

// ChangeFailureError reports that the Engine stopped mid-execution; the
// caller must decide whether to revert.
type ChangeFailureError struct {
	Cause error
}

func (errorValue ChangeFailureError) Error() string {
	return fmt.Sprintf("change execution failed: %v", errorValue.Cause)
}

func (errorValue ChangeFailureError) Unwrap() error { return errorValue.Cause }

// RevertFailureError reports that one or more inverses failed during a
// best-effort revert. The underlying transaction state may be only
// partially restored; callers should direct the operator to inspect
// .renom/backup/.
type RevertFailureError struct {
	Cause error
}

func (errorValue RevertFailureError) Error() string {
	return fmt.Sprintf("revert encountered failures, inspect .renom/backup/: %v", errorValue.Cause)
}

func (errorValue RevertFailureError) Unwrap() error { return errorValue.Cause }
