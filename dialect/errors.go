package dialect

import "fmt"

// FormatDetectionError indicates that no encoding and delimiter combination
// produced a consistent table.
type FormatDetectionError struct {
	Message string
	Cause   error
}

func (e *FormatDetectionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("format detection failed: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("format detection failed: %s", e.Message)
}

func (e *FormatDetectionError) Unwrap() error {
	return e.Cause
}
