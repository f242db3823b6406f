// Package cerrors is the structured error type shared across the engine.
// Every operation-level failure is a *CortexError carrying a Kind, a
// Category, a Severity, optional Details, and an optional recovery
// Suggestion, so the router can translate it into an MCP tool error without
// losing context.
package cerrors

import "fmt"

// CortexError is the structured error type for CortexAST.
type CortexError struct {
	Kind       Kind
	Message    string
	Category   Category
	Severity   Severity
	Details    map[string]string
	Cause      error
	Retryable  bool
	Suggestion string
}

func (e *CortexError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Kind, e.Message)
}

func (e *CortexError) Unwrap() error {
	return e.Cause
}

// Is enables errors.Is to match CortexError values by Kind.
func (e *CortexError) Is(target error) bool {
	t, ok := target.(*CortexError)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// WithDetail attaches a key-value detail and returns the error for chaining.
func (e *CortexError) WithDetail(key, value string) *CortexError {
	if e.Details == nil {
		e.Details = make(map[string]string)
	}
	e.Details[key] = value
	return e
}

// WithSuggestion attaches an actionable recovery hint.
func (e *CortexError) WithSuggestion(suggestion string) *CortexError {
	e.Suggestion = suggestion
	return e
}

// New creates a CortexError of the given kind. Category, severity, and
// retryability are derived from the kind.
func New(kind Kind, message string, cause error) *CortexError {
	return &CortexError{
		Kind:      kind,
		Message:   message,
		Category:  categoryFromKind(kind),
		Severity:  severityFromKind(kind),
		Cause:     cause,
		Retryable: retryableFromKind(kind),
	}
}

// Wrap creates a CortexError from an existing error, reusing its message.
func Wrap(kind Kind, err error) *CortexError {
	if err == nil {
		return nil
	}
	return New(kind, err.Error(), err)
}

// ConfigError builds a KindConfig error.
func ConfigError(message string, cause error) *CortexError {
	return New(KindConfig, message, cause)
}

// NotFound builds a KindNotFound error.
func NotFound(message string, cause error) *CortexError {
	return New(KindNotFound, message, cause)
}

// ParseFailure builds a KindParseFailure error.
func ParseFailure(message string, cause error) *CortexError {
	return New(KindParseFailure, message, cause)
}

// ResourceGuard builds a KindResourceGuard error.
func ResourceGuard(message string, cause error) *CortexError {
	return New(KindResourceGuard, message, cause)
}

// IndexCorruption builds a KindIndexCorruption error.
func IndexCorruption(message string, cause error) *CortexError {
	return New(KindIndexCorruption, message, cause)
}

// InvalidAction builds a KindInvalidAction error.
func InvalidAction(message string, cause error) *CortexError {
	return New(KindInvalidAction, message, cause)
}

// IsRetryable reports whether err is a *CortexError with Retryable set.
func IsRetryable(err error) bool {
	if ce, ok := err.(*CortexError); ok {
		return ce.Retryable
	}
	return false
}

// IsFatal reports whether err is a *CortexError with fatal severity.
func IsFatal(err error) bool {
	if ce, ok := err.(*CortexError); ok {
		return ce.Severity == SeverityFatal
	}
	return false
}

// GetKind extracts the Kind from a CortexError, or "" if err is not one.
func GetKind(err error) Kind {
	if ce, ok := err.(*CortexError); ok {
		return ce.Kind
	}
	return ""
}
