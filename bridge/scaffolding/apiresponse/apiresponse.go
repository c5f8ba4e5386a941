// Package apiresponse provides the JSON envelope returned by every user
// endpoint plus the mapping from operation error codes to HTTP statuses.
package apiresponse

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/dev2ever/userservice/core/scaffolding/results"
)

// ErrorBody carries the failure half of an envelope.
type ErrorBody struct {
	Message string            `json:"message"`
	Code    results.ErrorCode `json:"code"`
}

// ApiResponse is the uniform wire envelope. A success envelope has data and
// no error; a failure envelope has an error and no data. The two factories
// below are the only way to build one, which keeps that invariant.
type ApiResponse[T any] struct {
	Success bool       `json:"success"`
	Data    *T         `json:"data,omitempty"`
	Err     *ErrorBody `json:"error,omitempty"`

	status int
}

// OK wraps data in a success envelope answering 200.
func OK[T any](data T) *ApiResponse[T] {
	return &ApiResponse[T]{Success: true, Data: &data, status: http.StatusOK}
}

// Created wraps data in a success envelope answering 201.
func Created[T any](data T) *ApiResponse[T] {
	return &ApiResponse[T]{Success: true, Data: &data, status: http.StatusCreated}
}

// SuccessEmpty builds a data-less success envelope answering 200. Used by
// operations that have nothing to return, such as delete.
func SuccessEmpty() *ApiResponse[results.Void] {
	return &ApiResponse[results.Void]{Success: true, status: http.StatusOK}
}

// Error builds a failure envelope with an explicit status.
func Error[T any](code results.ErrorCode, message string, status int) *ApiResponse[T] {
	return &ApiResponse[T]{
		Err:    &ErrorBody{Message: message, Code: code},
		status: status,
	}
}

// DynamicError converts a failed operation result into a failure envelope,
// choosing the HTTP status from the error code:
//
//	DUPLICATE_RESOURCE    409
//	NOT_FOUND             404
//	INTERNAL_SERVER_ERROR 500
//	anything else         400
//
// Feeding it a successful result is a programming error and panics.
func DynamicError[T any](res results.OperationResult[T]) *ApiResponse[T] {
	if res.IsSuccess() {
		panic("apiresponse: dynamic error built from a successful result")
	}
	return Error[T](res.Code(), res.Message(), StatusFor(res.Code()))
}

// StatusFor maps an error code to its HTTP status.
func StatusFor(code results.ErrorCode) int {
	switch code {
	case results.DuplicateResource:
		return http.StatusConflict
	case results.NotFound:
		return http.StatusNotFound
	case results.InternalServerError:
		return http.StatusInternalServerError
	default:
		return http.StatusBadRequest
	}
}

// Encode implements the web Encoder interface.
func (r *ApiResponse[T]) Encode() ([]byte, string, error) {
	data, err := json.Marshal(r)
	if err != nil {
		return nil, "", fmt.Errorf("apiresponse: encode: %w", err)
	}
	return data, "application/json; charset=utf-8", nil
}

// HTTPStatus reports the status the envelope answers with.
func (r *ApiResponse[T]) HTTPStatus() int {
	return r.status
}

// =============================================================================

// NoContent answers 204 with no body. Used for reads that find nothing.
type NoContent struct{}

func (NoContent) Encode() ([]byte, string, error) { return nil, "", nil }

func (NoContent) HTTPStatus() int { return http.StatusNoContent }
