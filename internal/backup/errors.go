package backup

import (
	"errors"
	"fmt"
)

// Sentinel errors for the import/export taxonomy.
var (
	// ErrFormat marks a malformed or incomplete payload. The import
	// aborts with nothing applied.
	ErrFormat = errors.New("invalid backup format")

	// ErrIO marks an unreadable or unwritable destination.
	ErrIO = errors.New("backup i/o failed")
)

// VersionMismatchError reports a payload whose schema version differs
// from the running one. It is a gate, not a hard failure: callers
// resolve it by cancelling, migrating, or previewing.
type VersionMismatchError struct {
	PayloadVersion string
	RunningVersion string
}

func (e *VersionMismatchError) Error() string {
	return fmt.Sprintf("backup schema version %q does not match running version %q",
		e.PayloadVersion, e.RunningVersion)
}

// IsVersionMismatch reports whether err is a schema version mismatch.
func IsVersionMismatch(err error) bool {
	var vm *VersionMismatchError
	return errors.As(err, &vm)
}

func formatErr(reason string) error {
	return fmt.Errorf("%s: %w", reason, ErrFormat)
}
