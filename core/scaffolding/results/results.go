// Package results provides the operation result wrapper used between the
// repository layer and the response-building layer. It separates business
// outcomes (success, duplicate, not found, internal fault) from transport
// concerns: repositories return an OperationResult, the bridge decides what
// that means on the wire.
package results

// ErrorCode identifies the business error classes an operation can report.
// Error codes are string-based for debuggability and natural JSON
// serialization.
type ErrorCode string

const (
	// FieldValidationError indicates input data failed validation before
	// reaching persistence.
	FieldValidationError ErrorCode = "FIELD_VALIDATION_ERROR"

	// DuplicateResource indicates a uniqueness conflict at the store.
	DuplicateResource ErrorCode = "DUPLICATE_RESOURCE"

	// NotFound indicates the referenced entity does not exist.
	NotFound ErrorCode = "NOT_FOUND"

	// InternalServerError indicates an unclassified storage or runtime fault.
	// The raw cause is logged, never surfaced.
	InternalServerError ErrorCode = "INTERNAL_SERVER_ERROR"
)

// Void is the value type for operations that succeed without producing one.
type Void struct{}

// OperationResult is the immutable outcome of one operation: either a value,
// or an error code with a sanitized message. Construct only through Success,
// SuccessVoid, or Error.
type OperationResult[T any] struct {
	value        T
	errorCode    ErrorCode
	errorMessage string
}

// Success creates a successful result carrying value.
func Success[T any](value T) OperationResult[T] {
	return OperationResult[T]{value: value}
}

// SuccessVoid creates a successful result with no value, for operations that
// do not return one.
func SuccessVoid() OperationResult[Void] {
	return OperationResult[Void]{}
}

// Error creates a failed result with the given code and message.
func Error[T any](code ErrorCode, message string) OperationResult[T] {
	return OperationResult[T]{errorCode: code, errorMessage: message}
}

// IsSuccess reports whether the operation succeeded. Success holds exactly
// when no error code is present.
func (r OperationResult[T]) IsSuccess() bool {
	return r.errorCode == ""
}

// Value returns the carried value. Zero for failed or void results.
func (r OperationResult[T]) Value() T {
	return r.value
}

// Code returns the error code, or the empty string on success.
func (r OperationResult[T]) Code() ErrorCode {
	return r.errorCode
}

// Message returns the sanitized error message, or the empty string on success.
func (r OperationResult[T]) Message() string {
	return r.errorMessage
}
