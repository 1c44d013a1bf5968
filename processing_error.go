package formkit

import (
	"errors"
	"fmt"
)

// Processing error categories.
const (
	ErrorTypeValidation    = "validation"
	ErrorTypeVariant       = "variant"
	ErrorTypeConfiguration = "configuration"
	ErrorTypeConcurrency   = "concurrency"
)

// GenericErrorMessage is the user facing message of every processing error
// raised by a Processor.
const GenericErrorMessage = "There's an issue trying to validate the form, please try again."

// ProcessingError describes a problem that stopped or prevented a validation
// run. It carries a message safe to show to users and a technical message for
// diagnostics. Values are immutable.
type ProcessingError struct {
	errorType string
	message   string
	technical string
	cause     error
}

// NewProcessingError builds a processing error without a cause.
func NewProcessingError(errorType, message, technicalMessage string) ProcessingError {
	return ProcessingError{errorType: errorType, message: message, technical: technicalMessage}
}

func newProcessingError(errorType string, cause error, format string, args ...any) ProcessingError {
	return ProcessingError{
		errorType: errorType,
		message:   GenericErrorMessage,
		technical: fmt.Sprintf(format, args...),
		cause:     cause,
	}
}

// Type returns the error category, one of the ErrorType constants.
func (e ProcessingError) Type() string { return e.errorType }

// Message returns the message safe to show to users.
func (e ProcessingError) Message() string { return e.message }

// TechnicalMessage names the field or variant involved.
func (e ProcessingError) TechnicalMessage() string { return e.technical }

// Error returns the category and the technical message.
func (e ProcessingError) Error() string {
	if e.technical == "" {
		return e.errorType + ": " + e.message
	}
	return e.errorType + ": " + e.technical
}

// Unwrap returns the sentinel cause, nil for errors built with
// NewProcessingError.
func (e ProcessingError) Unwrap() error { return e.cause }

// AsProcessingError extracts a ProcessingError from err.
func AsProcessingError(err error) (ProcessingError, bool) {
	var pe ProcessingError
	if errors.As(err, &pe) {
		return pe, true
	}
	return ProcessingError{}, false
}
