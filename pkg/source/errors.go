package source

import "fmt"

// ScanError reports that a project could not be scanned, typically because
// the root or one of its directories is unreadable.
type ScanError struct {
	Root string
	Err  error
}

// Error returns the error message.
func (e *ScanError) Error() string {
	return fmt.Sprintf("failed to scan %q: %v", e.Root, e.Err)
}

// Unwrap returns the underlying cause.
func (e *ScanError) Unwrap() error {
	return e.Err
}
