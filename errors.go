package catalogtl

import (
	"fmt"
	"strings"
)

// ProviderError indicates a translation service failure (HTTP error, rate limit, etc.).
type ProviderError struct {
	Message    string
	Cause      error
	StatusCode int  // HTTP status when the service answered, 0 otherwise
	Retryable  bool // Whether the operation can be retried
}

func (e *ProviderError) Error() string {
	msg := e.Message
	if e.StatusCode != 0 {
		msg = fmt.Sprintf("%s (status %d)", msg, e.StatusCode)
	}
	if e.Cause != nil {
		return fmt.Sprintf("provider error: %s: %v", msg, e.Cause)
	}
	return fmt.Sprintf("provider error: %s", msg)
}

func (e *ProviderError) Unwrap() error {
	return e.Cause
}

// InvalidLanguageError is returned for a target language that cannot be
// mapped to a supported code.
type InvalidLanguageError struct {
	Input string
}

func (e *InvalidLanguageError) Error() string {
	return fmt.Sprintf("unrecognized target language %q (try e.g. HU, DE, EN-GB, PT-BR, german, hungarian)", e.Input)
}

// TranslationServiceError identifies the batch that could not be translated.
type TranslationServiceError struct {
	Batch    int    // Batch index within the run
	Column   string // Column the batch belongs to
	FirstRow int    // Zero-based data row range covered by the batch
	LastRow  int
	Texts    int // Number of texts in the request
	Attempts int // Attempts made before giving up
	Cause    error
}

func (e *TranslationServiceError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "translation of batch %d (column %q, %d texts, rows %d-%d) failed",
		e.Batch+1, e.Column, e.Texts, e.FirstRow+1, e.LastRow+1)
	if e.Attempts > 1 {
		fmt.Fprintf(&b, " after %d attempts", e.Attempts)
	}
	if e.Cause != nil {
		fmt.Fprintf(&b, ": %v", e.Cause)
	}
	return b.String()
}

func (e *TranslationServiceError) Unwrap() error {
	return e.Cause
}

// ProcessorError indicates a content processing failure (parse error, etc.).
type ProcessorError struct {
	Message     string
	Cause       error
	ContentType string // The type of content that failed to process
}

func (e *ProcessorError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("processor error (%s): %s: %v", e.ContentType, e.Message, e.Cause)
	}
	return fmt.Sprintf("processor error (%s): %s", e.ContentType, e.Message)
}

func (e *ProcessorError) Unwrap() error {
	return e.Cause
}

// CountMismatchError indicates the service returned a different number of translations than expected.
type CountMismatchError struct {
	Expected int
	Got      int
}

func (e *CountMismatchError) Error() string {
	return fmt.Sprintf("translation count mismatch: expected %d, got %d", e.Expected, e.Got)
}

// MissingTranslationError reports a cell whose text was planned as cached
// but no translation could be found for it when writing back.
type MissingTranslationError struct {
	Column string
	Row    int // Zero-based data row
}

func (e *MissingTranslationError) Error() string {
	return fmt.Sprintf("no translation available for column %q row %d (cache entry evicted?)", e.Column, e.Row+1)
}
