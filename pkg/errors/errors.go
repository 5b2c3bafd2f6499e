// Package errors provides custom error types for the propsync system.
// These errors enable programmatic error checking across the property
// reconciliation pipeline and carry enough diagnostic context to debug
// failures against external dbt invocations.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// New returns an error that formats as the given text.
// It's an alias for the standard library errors.New for convenience.
var New = errors.New

// Is and As are aliases for the standard library matchers so callers
// don't need a second errors import.
var (
	Is = errors.Is
	As = errors.As
)

// Common sentinel errors for the propsync system
var (
	// ErrNotFound indicates that a requested file or resource was not found
	ErrNotFound = errors.New("not found")

	// ErrUnsupportedType indicates an unsupported resource type was requested
	ErrUnsupportedType = errors.New("unsupported resource type")

	// ErrMacroMissing indicates the helper macro is not installed in the project
	ErrMacroMissing = errors.New("helper macro missing")

	// ErrDocumentEmpty indicates a property document parsed to an empty value
	ErrDocumentEmpty = errors.New("property document empty")

	// ErrTargetExists indicates a migration target file already exists
	ErrTargetExists = errors.New("target file already exists")

	// ErrAborted indicates the user declined an interactive confirmation
	ErrAborted = errors.New("aborted by user")
)

// SelectionError indicates an invalid resource selection. It is fatal and
// aborts the invocation before any I/O happens.
type SelectionError struct {
	ResourceType string
	Supported    []string
}

// Error implements the error interface
func (e *SelectionError) Error() string {
	return fmt.Sprintf("unsupported resource type %q, supported types are: %s",
		e.ResourceType, strings.Join(e.Supported, ", "))
}

// Is implements errors.Is support
func (e *SelectionError) Is(target error) bool {
	return target == ErrUnsupportedType
}

// NewSelectionError creates a new SelectionError
func NewSelectionError(resourceType string, supported []string) *SelectionError {
	return &SelectionError{ResourceType: resourceType, Supported: supported}
}

// IntrospectionError indicates that collecting a resource's column list
// from the warehouse failed. It is fatal for that resource only.
type IntrospectionError struct {
	Resource string
	Message  string
	Err      error
}

// Error implements the error interface
func (e *IntrospectionError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("introspection failed for %s: %s", e.Resource, e.Message)
	}
	return fmt.Sprintf("introspection failed for %s: %v", e.Resource, e.Err)
}

// Unwrap implements errors.Unwrap
func (e *IntrospectionError) Unwrap() error {
	return e.Err
}

// NewIntrospectionError creates a new IntrospectionError
func NewIntrospectionError(resource string, err error) *IntrospectionError {
	return &IntrospectionError{Resource: resource, Err: err}
}

// ParseError indicates that external tool output did not match any known
// format. RawOutput holds the unparsed text for diagnosis.
type ParseError struct {
	Format    string // "columns", "yaml", "json", ...
	File      string
	Message   string
	RawOutput string
	Err       error
}

// Error implements the error interface
func (e *ParseError) Error() string {
	if e.File != "" {
		return fmt.Sprintf("parse error in %s file %s: %s", e.Format, e.File, e.Message)
	}
	if e.RawOutput != "" {
		return fmt.Sprintf("%s parse error: %s\nRaw output:\n%s", e.Format, e.Message, e.RawOutput)
	}
	return fmt.Sprintf("%s parse error: %s", e.Format, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ParseError) Unwrap() error {
	return e.Err
}

// NewParseError creates a new ParseError
func NewParseError(format, message, rawOutput string) *ParseError {
	return &ParseError{Format: format, Message: message, RawOutput: rawOutput}
}

// DocumentError indicates a malformed property document. Callers treat an
// empty document the same as an absent one rather than failing.
type DocumentError struct {
	Path    string
	Message string
	Err     error
}

// Error implements the error interface
func (e *DocumentError) Error() string {
	return fmt.Sprintf("property document %s: %s", e.Path, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *DocumentError) Unwrap() error {
	return e.Err
}

// NewDocumentError creates a new DocumentError
func NewDocumentError(path, message string, err error) *DocumentError {
	return &DocumentError{Path: path, Message: message, Err: err}
}

// MigrationError indicates a per-resource failure during document
// migration. It is logged and skipped, never aborting the enclosing group.
type MigrationError struct {
	Operation string // "write", "delete", "rewrite"
	Resource  string
	Path      string
	Err       error
}

// Error implements the error interface
func (e *MigrationError) Error() string {
	if e.Resource != "" {
		return fmt.Sprintf("migration %s failed for %s (%s): %v", e.Operation, e.Resource, e.Path, e.Err)
	}
	return fmt.Sprintf("migration %s failed for %s: %v", e.Operation, e.Path, e.Err)
}

// Unwrap implements errors.Unwrap
func (e *MigrationError) Unwrap() error {
	return e.Err
}

// NewMigrationError creates a new MigrationError
func NewMigrationError(operation, resource, path string, err error) *MigrationError {
	return &MigrationError{Operation: operation, Resource: resource, Path: path, Err: err}
}

// ProcessError represents an error from an external process or command
type ProcessError struct {
	Operation string // What operation was being performed
	Command   string // The command that was executed
	Output    string // Stdout/stderr output from the process
	ExitCode  int    // Exit code if available
	Err       error  // Underlying error
}

// Error implements the error interface
func (e *ProcessError) Error() string {
	if e.Output != "" {
		return fmt.Sprintf("process error during %s (command: %s): %v\nOutput: %s", e.Operation, e.Command, e.Err, e.Output)
	}
	return fmt.Sprintf("process error during %s (command: %s): %v", e.Operation, e.Command, e.Err)
}

// Unwrap implements errors.Unwrap
func (e *ProcessError) Unwrap() error {
	return e.Err
}

// NewProcessError creates a new ProcessError
func NewProcessError(operation, command, output string, err error) *ProcessError {
	return &ProcessError{
		Operation: operation,
		Command:   command,
		Output:    output,
		Err:       err,
	}
}

// IOError represents an error during I/O operations
type IOError struct {
	Operation string // "read", "write", "create", "delete", "open", "close"
	Path      string
	Message   string
	Err       error
}

// Error implements the error interface
func (e *IOError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("IO error during %s of %s: %s", e.Operation, e.Path, e.Message)
	}
	return fmt.Sprintf("IO error during %s: %s", e.Operation, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *IOError) Unwrap() error {
	return e.Err
}

// NewIOError creates a new IOError
func NewIOError(operation, path string, err error) *IOError {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &IOError{
		Operation: operation,
		Path:      path,
		Message:   message,
		Err:       err,
	}
}

// Helper functions for error checking

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsUnsupportedType checks if an error is an unsupported resource type error
func IsUnsupportedType(err error) bool {
	return errors.Is(err, ErrUnsupportedType)
}

// IsMacroMissingErr checks if an error indicates the helper macro is absent
func IsMacroMissingErr(err error) bool {
	return errors.Is(err, ErrMacroMissing)
}

// IsDocumentEmpty checks if an error indicates an empty property document
func IsDocumentEmpty(err error) bool {
	return errors.Is(err, ErrDocumentEmpty)
}

// IsAborted checks if an error indicates a declined confirmation
func IsAborted(err error) bool {
	return errors.Is(err, ErrAborted)
}

// Helper wrapping functions for common patterns

// WrapIO wraps an error as an IOError
func WrapIO(operation, path string, err error) error {
	if err == nil {
		return nil
	}
	return NewIOError(operation, path, err)
}

// WrapIntrospection wraps an error as an IntrospectionError
func WrapIntrospection(resource string, err error) error {
	if err == nil {
		return nil
	}
	return NewIntrospectionError(resource, err)
}

// WrapParse wraps an error as a ParseError
func WrapParse(format, file string, err error) error {
	if err == nil {
		return nil
	}
	return &ParseError{Format: format, File: file, Message: err.Error(), Err: err}
}
