package errors

import (
	stderrors "errors"
	"fmt"
)

// Category represents the type of error.
type Category string

const (
	CategoryConfig     Category = "config"
	CategoryValidation Category = "validation"
	CategoryCLI        Category = "cli"
)

// AssetError is a structured error with the offending config field and a
// suggestion for fixing it.
type AssetError struct {
	// Code is a unique error identifier (e.g., "E101").
	Code string

	// Category is the error type.
	Category Category

	// Message is a short description of the error.
	Message string

	// Detail is a longer explanation of the error.
	Detail string

	// Field is the configuration field at fault, if any (e.g., "theme.root").
	Field string

	// Suggestion is a hint on how to fix the error.
	Suggestion string

	// Wrapped is the underlying error, if any.
	Wrapped error
}

// Error implements the error interface.
func (e *AssetError) Error() string {
	msg := e.Message
	if e.Code != "" {
		msg = e.Code + ": " + msg
	}
	if e.Field != "" {
		msg += " (" + e.Field + ")"
	}
	return msg
}

// Unwrap returns the wrapped error for errors.Is/As support.
func (e *AssetError) Unwrap() error {
	return e.Wrapped
}

// WithField names the configuration field at fault.
func (e *AssetError) WithField(field string) *AssetError {
	e.Field = field
	return e
}

// WithSuggestion adds a fix suggestion to the error.
func (e *AssetError) WithSuggestion(s string) *AssetError {
	e.Suggestion = s
	return e
}

// WithDetail adds a detailed explanation to the error.
func (e *AssetError) WithDetail(d string) *AssetError {
	e.Detail = d
	return e
}

// Wrap wraps another error.
func (e *AssetError) Wrap(err error) *AssetError {
	e.Wrapped = err
	return e
}

// New creates an AssetError from a registered error code.
func New(code string) *AssetError {
	template, ok := Lookup(code)
	if !ok {
		return &AssetError{
			Code:    code,
			Message: "Unknown error",
		}
	}
	return &AssetError{
		Code:     code,
		Category: template.Category,
		Message:  template.Message,
		Detail:   template.Detail,
	}
}

// Newf creates a new AssetError with a formatted message (no code).
func Newf(category Category, format string, args ...any) *AssetError {
	return &AssetError{
		Category: category,
		Message:  fmt.Sprintf(format, args...),
	}
}

// FromError wraps a standard error in an AssetError.
func FromError(err error, code string) *AssetError {
	if err == nil {
		return nil
	}
	var ae *AssetError
	if stderrors.As(err, &ae) {
		return ae
	}
	return New(code).Wrap(err)
}

// Join combines errors; it is errors.Join from the standard library.
func Join(errs ...error) error {
	return stderrors.Join(errs...)
}

// Is reports whether err carries the given code anywhere in its chain,
// including inside a Join.
func Is(err error, code string) bool {
	if err == nil {
		return false
	}
	if ae, ok := err.(*AssetError); ok && ae.Code == code {
		return true
	}
	switch u := err.(type) {
	case interface{ Unwrap() []error }:
		for _, e := range u.Unwrap() {
			if Is(e, code) {
				return true
			}
		}
	case interface{ Unwrap() error }:
		return Is(u.Unwrap(), code)
	}
	return false
}
