// Package errors provides structured error handling for lanscout operations.
// It defines error codes, error types, and utilities for creating and
// classifying errors raised by the scan pipeline.
package errors

import (
	"fmt"
)

// ErrorCode represents different types of errors that can occur.
type ErrorCode string

const (
	// General errors.
	CodeUnknown       ErrorCode = "UNKNOWN"
	CodeValidation    ErrorCode = "VALIDATION"
	CodeConfiguration ErrorCode = "CONFIGURATION"
	CodeTimeout       ErrorCode = "TIMEOUT"
	CodeCanceled      ErrorCode = "CANCELED"

	// Scan pipeline errors. Only CodeTargetInvalid is fatal; the per-unit
	// codes are recoverable and absorbed into sentinel values.
	CodeTargetInvalid ErrorCode = "TARGET_INVALID"
	CodeProbeFailed   ErrorCode = "PROBE_FAILED"
	CodeResolveFailed ErrorCode = "RESOLVE_FAILED"
	CodeConnectFailed ErrorCode = "CONNECT_FAILED"
	CodeDetectFailed  ErrorCode = "DETECT_FAILED"

	// Report rendering errors.
	CodeReportFailed ErrorCode = "REPORT_FAILED"
)

// ScanError represents an error that occurred during scanning operations.
type ScanError struct {
	Code      ErrorCode
	Message   string
	Target    string
	Operation string
	Cause     error
}

// Error implements the error interface.
func (e *ScanError) Error() string {
	if e.Target != "" {
		return fmt.Sprintf("[%s] %s (target: %s)", e.Code, e.Message, e.Target)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error for error unwrapping.
func (e *ScanError) Unwrap() error {
	return e.Cause
}

// NewScanError creates a new scan error with the specified code and message.
func NewScanError(code ErrorCode, message string) *ScanError {
	return &ScanError{
		Code:    code,
		Message: message,
	}
}

// NewScanErrorWithTarget creates a scan error for a specific target.
func NewScanErrorWithTarget(code ErrorCode, message, target string) *ScanError {
	return &ScanError{
		Code:    code,
		Message: message,
		Target:  target,
	}
}

// WrapScanError wraps an existing error as a scan error.
func WrapScanError(code ErrorCode, message string, err error) *ScanError {
	return &ScanError{
		Code:    code,
		Message: message,
		Cause:   err,
	}
}

// WrapScanErrorWithTarget wraps an error with target information.
func WrapScanErrorWithTarget(code ErrorCode, message, target string, err error) *ScanError {
	return &ScanError{
		Code:    code,
		Message: message,
		Target:  target,
		Cause:   err,
	}
}

// ConfigError represents configuration-related errors.
type ConfigError struct {
	Code    ErrorCode
	Message string
	Field   string
	Value   interface{}
	Cause   error
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("[%s] %s (field: %s)", e.Code, e.Message, e.Field)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error.
func (e *ConfigError) Unwrap() error {
	return e.Cause
}

// NewConfigFieldError creates a configuration error for a specific field.
func NewConfigFieldError(code ErrorCode, message, field string, value interface{}) *ConfigError {
	return &ConfigError{
		Code:    code,
		Message: message,
		Field:   field,
		Value:   value,
	}
}

// WrapConfigError wraps an existing error as a configuration error.
func WrapConfigError(code ErrorCode, message string, err error) *ConfigError {
	return &ConfigError{
		Code:    code,
		Message: message,
		Cause:   err,
	}
}

// ReportError represents a failure to render or persist a scan report.
// One renderer failing never blocks the others.
type ReportError struct {
	Code   ErrorCode
	Format string
	Path   string
	Cause  error
}

// Error implements the error interface.
func (e *ReportError) Error() string {
	return fmt.Sprintf("[%s] %s report failed (path: %s)", e.Code, e.Format, e.Path)
}

// Unwrap returns the underlying error.
func (e *ReportError) Unwrap() error {
	return e.Cause
}

// NewReportError creates a report error for a specific output format.
func NewReportError(format, path string, err error) *ReportError {
	return &ReportError{
		Code:   CodeReportFailed,
		Format: format,
		Path:   path,
		Cause:  err,
	}
}

// Utility functions for common error operations

// IsCode checks if an error has a specific error code.
func IsCode(err error, code ErrorCode) bool {
	return GetCode(err) == code
}

// GetCode extracts the error code from an error if it has one.
func GetCode(err error) ErrorCode {
	switch e := err.(type) {
	case *ScanError:
		return e.Code
	case *ConfigError:
		return e.Code
	case *ReportError:
		return e.Code
	}
	return CodeUnknown
}

// IsFatal determines if an error should abort the scan. Per-unit probe,
// resolve, connect, and detect failures are absorbed into the result data;
// only an unparseable target or broken configuration stops the run.
func IsFatal(err error) bool {
	switch GetCode(err) {
	case CodeTargetInvalid, CodeConfiguration:
		return true
	default:
		return false
	}
}

// Common error creation functions

// ErrInvalidTarget creates an error for invalid scan targets.
func ErrInvalidTarget(target string) *ScanError {
	return NewScanErrorWithTarget(CodeTargetInvalid, "invalid target specification", target)
}

// ErrProbeFailed creates an error for liveness probe failures.
func ErrProbeFailed(host string, err error) *ScanError {
	return WrapScanErrorWithTarget(CodeProbeFailed, "liveness probe failed", host, err)
}

// ErrResolveFailed creates an error for hardware address lookup failures.
func ErrResolveFailed(host string, err error) *ScanError {
	return WrapScanErrorWithTarget(CodeResolveFailed, "hardware address lookup failed", host, err)
}

// ErrConnectFailed creates an error for TCP connect failures.
func ErrConnectFailed(host string, port uint16, err error) *ScanError {
	e := WrapScanErrorWithTarget(CodeConnectFailed,
		fmt.Sprintf("connect to port %d failed", port), host, err)
	e.Operation = "connect"
	return e
}

// ErrConfigInvalid creates an error for invalid configuration.
func ErrConfigInvalid(field string, value interface{}) *ConfigError {
	return NewConfigFieldError(CodeValidation, "invalid configuration value", field, value)
}
