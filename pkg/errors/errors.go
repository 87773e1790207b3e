// Package errors provides the unified error type and factory functions for the
// lien deadline engine.  Every layer (domain, application, interfaces) uses
// AppError as the single carrier for structured error information so that a
// calling service can render consistent failures without string matching.
package errors

import (
	"errors"
	"fmt"
	"runtime"
	"strings"
)

// stackDepth is the maximum number of frames captured per error.
const stackDepth = 32

// captureStack returns a formatted call-stack string starting two frames above
// the caller (skipping captureStack itself and the factory function).
func captureStack(skip int) string {
	pcs := make([]uintptr, stackDepth)
	n := runtime.Callers(skip+2, pcs)
	if n == 0 {
		return ""
	}
	frames := runtime.CallersFrames(pcs[:n])
	var sb strings.Builder
	for {
		f, more := frames.Next()
		if !strings.Contains(f.File, "runtime/") {
			fmt.Fprintf(&sb, "\n\t%s:%d %s", f.File, f.Line, f.Function)
		}
		if !more {
			break
		}
	}
	return sb.String()
}

// ─────────────────────────────────────────────────────────────────────────────
// AppError is the canonical error type.
// ─────────────────────────────────────────────────────────────────────────────

// AppError is the single structured error type used throughout the module.
// It satisfies the standard error interface and supports error wrapping so
// that errors.Is / errors.As / errors.Unwrap work across layers.
//
// Usage:
//
//	return errors.InvalidDate("invoice_date", raw, parseErr)
//	return errors.UnsupportedJurisdiction("Puerto Rico", table.Codes())
type AppError struct {
	// Code is the typed error code that identifies the failure category.
	Code ErrorCode

	// Message is the primary human-readable description of the error.
	Message string

	// Detail carries supplementary context that aids debugging.
	Detail string

	// Field names the offending request field, when the error is tied to one.
	Field string

	// Supported lists the accepted values when the caller supplied an
	// unsupported one (e.g. every jurisdiction code in the rule table).
	Supported []string

	// Cause is the underlying error that triggered this AppError.
	Cause error

	// Stack contains the formatted call-stack captured at creation.  It is not
	// part of Error() output.
	Stack string
}

// Error implements the standard error interface.
// Format: "[<code>] <message>: <detail>"
func (e *AppError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("[%s] %s: %s", e.Code.String(), e.Message, e.Detail)
	}
	return fmt.Sprintf("[%s] %s", e.Code.String(), e.Message)
}

// Unwrap returns the underlying cause error.
func (e *AppError) Unwrap() error {
	return e.Cause
}

// ─────────────────────────────────────────────────────────────────────────────
// Fluent builder methods
// ─────────────────────────────────────────────────────────────────────────────

// WithDetail returns a shallow copy of the receiver with Detail set.  It is
// safe to call on a nil pointer (returns nil).
func (e *AppError) WithDetail(detail string) *AppError {
	if e == nil {
		return nil
	}
	clone := *e
	clone.Detail = detail
	return &clone
}

// WithCause returns a shallow copy of the receiver with Cause set to err.
func (e *AppError) WithCause(err error) *AppError {
	if e == nil {
		return nil
	}
	clone := *e
	clone.Cause = err
	return &clone
}

// WithField returns a shallow copy of the receiver with Field set.
func (e *AppError) WithField(field string) *AppError {
	if e == nil {
		return nil
	}
	clone := *e
	clone.Field = field
	return &clone
}

// ─────────────────────────────────────────────────────────────────────────────
// Primary factory functions
// ─────────────────────────────────────────────────────────────────────────────

// New constructs a fresh AppError with the given code and message.
func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Stack:   captureStack(1),
	}
}

// Newf is New with fmt.Sprintf formatting of the message.
func Newf(code ErrorCode, format string, args ...interface{}) *AppError {
	return &AppError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Stack:   captureStack(1),
	}
}

// Wrap constructs an AppError that wraps an existing error.  If err is nil,
// Wrap returns nil.  When err is already an *AppError and code is CodeUnknown
// the original code is preserved.
func Wrap(err error, code ErrorCode, message string) *AppError {
	if err == nil {
		return nil
	}
	if code == CodeUnknown {
		var ae *AppError
		if errors.As(err, &ae) {
			code = ae.Code
		}
	}
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   err,
		Stack:   captureStack(1),
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Domain factories
// ─────────────────────────────────────────────────────────────────────────────

// InvalidDate reports a date field that could not be parsed.  The offending
// field name is carried on the error so the caller can point at it.
func InvalidDate(field, value string, cause error) *AppError {
	return &AppError{
		Code:    CodeInvalidDate,
		Message: fmt.Sprintf("%s must be an ISO-8601 date (YYYY-MM-DD)", field),
		Detail:  fmt.Sprintf("got %q", value),
		Field:   field,
		Cause:   cause,
		Stack:   captureStack(1),
	}
}

// UnsupportedJurisdiction reports an input that does not resolve to any
// jurisdiction of the rule table.  supported is copied.
func UnsupportedJurisdiction(input string, supported []string) *AppError {
	codes := make([]string, len(supported))
	copy(codes, supported)
	return &AppError{
		Code:      CodeUnsupportedJurisdiction,
		Message:   fmt.Sprintf("jurisdiction %q is not supported", input),
		Detail:    "supported: " + strings.Join(codes, ","),
		Field:     "jurisdiction",
		Supported: codes,
		Stack:     captureStack(1),
	}
}

// RuleCatalog reports a rule catalog that violates the rule data invariants.
func RuleCatalog(format string, args ...interface{}) *AppError {
	return &AppError{
		Code:    CodeRuleCatalog,
		Message: fmt.Sprintf(format, args...),
		Stack:   captureStack(1),
	}
}

// InvalidParam constructs a CodeInvalidParam AppError.
func InvalidParam(message string) *AppError {
	return &AppError{
		Code:    CodeInvalidParam,
		Message: message,
		Stack:   captureStack(1),
	}
}

// Internal constructs a CodeInternal AppError.
func Internal(message string) *AppError {
	return &AppError{
		Code:    CodeInternal,
		Message: message,
		Stack:   captureStack(1),
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Error-chain inspection helpers
// ─────────────────────────────────────────────────────────────────────────────

// IsCode reports whether any error in err's chain is an *AppError with the
// given code.
func IsCode(err error, code ErrorCode) bool {
	var ae *AppError
	for err != nil {
		if errors.As(err, &ae) && ae.Code == code {
			return true
		}
		err = errors.Unwrap(err)
	}
	return false
}

// GetCode extracts the ErrorCode from the first *AppError found in err's
// chain.  CodeOK is returned for nil and CodeUnknown when no AppError exists.
func GetCode(err error) ErrorCode {
	if err == nil {
		return CodeOK
	}
	var ae *AppError
	if errors.As(err, &ae) {
		return ae.Code
	}
	return CodeUnknown
}

// SupportedValues returns the Supported list of the first *AppError in err's
// chain, or nil.
func SupportedValues(err error) []string {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae.Supported
	}
	return nil
}

// FieldOf returns the offending field of the first *AppError in err's chain.
func FieldOf(err error) string {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae.Field
	}
	return ""
}

// Is and As re-export the standard library helpers so callers importing this
// package under the name "errors" keep access to them.
func Is(err, target error) bool { return errors.Is(err, target) }

// As is errors.As.
func As(err error, target interface{}) bool { return errors.As(err, target) }
