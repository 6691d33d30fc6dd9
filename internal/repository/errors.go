package repository

import "fmt"

// ValidationError reports an empty or missing required identifier (table,
// key column, or payload). Surfaced immediately, never retried.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation: %s %s", e.Field, e.Reason)
}

// ConversionError reports a fatal value conversion: the date-only extraction
// path, which has no safe string fallback.
type ConversionError struct {
	Value string
	Err   error
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("converting %q: %v", e.Value, e.Err)
}

func (e *ConversionError) Unwrap() error { return e.Err }

// ConfigurationError reports a missing or empty connection string from the
// connection provider.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return "configuration: " + e.Reason
}

// ProviderError wraps an engine-side failure (rejected statement, lost
// connectivity, permissions) with the target table and schema.
type ProviderError struct {
	Table  string
	Schema string
	Err    error
}

func (e *ProviderError) Error() string {
	target := e.Table
	if e.Schema != "" {
		target = e.Schema + "." + e.Table
	}
	return fmt.Sprintf("engine error on %s: %v", target, e.Err)
}

func (e *ProviderError) Unwrap() error { return e.Err }
