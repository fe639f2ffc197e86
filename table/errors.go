package table

import "fmt"

// ParseError reports a record that does not fit the table.
type ParseError struct {
	Line     int // 1-based physical line in the decoded input
	Expected int // Field count of the header
	Got      int // Field count of the record, 0 for syntax errors
	Snippet  string
	Cause    error
}

func (e *ParseError) Error() string {
	msg := fmt.Sprintf("line %d", e.Line)
	if e.Got > 0 {
		msg += fmt.Sprintf(": expected %d fields, got %d", e.Expected, e.Got)
	}
	if e.Snippet != "" {
		msg += fmt.Sprintf(" near %q", e.Snippet)
	}
	if e.Cause != nil {
		return fmt.Sprintf("table parse error: %s: %v", msg, e.Cause)
	}
	return "table parse error: " + msg
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}
