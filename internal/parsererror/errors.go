package parsererror

import "fmt"

// ParseError represents an error while reading a single statement field
type ParseError struct {
	Source string
	Field  string
	Value  string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: failed to parse %s='%s': %v",
		e.Source, e.Field, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ValidationError reports a configuration value or rule that cannot be used.
// Subject names what was checked, such as "log.level" or "rule 2 (invoice)".
type ValidationError struct {
	Subject string
	Reason  string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed for %s: %s", e.Subject, e.Reason)
}

// InvalidFormatError represents an input file that is not a usable statement,
// for example one with no header row.
type InvalidFormatError struct {
	FilePath             string
	ExpectedFormat       string
	ActualContentSnippet string // Optional: a snippet of the actual content for debugging
	Msg                  string
}

func (e *InvalidFormatError) Error() string {
	if e.ActualContentSnippet != "" {
		return fmt.Sprintf("invalid format in file '%s': %s. Expected: %s. Content snippet: '%s'",
			e.FilePath, e.Msg, e.ExpectedFormat, e.ActualContentSnippet)
	}
	return fmt.Sprintf("invalid format in file '%s': %s. Expected: %s",
		e.FilePath, e.Msg, e.ExpectedFormat)
}

// ExportError wraps a failure to write a report or archive.
type ExportError struct {
	FilePath string
	Format   string
	Err      error
}

func (e *ExportError) Error() string {
	return fmt.Sprintf("failed to write %s output '%s': %v", e.Format, e.FilePath, e.Err)
}

func (e *ExportError) Unwrap() error {
	return e.Err
}
