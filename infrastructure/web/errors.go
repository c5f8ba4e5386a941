package web

import "encoding/json"

// ErrorResponse is a minimal error response type that implements Encoder.
// It is used by the framework itself; application handlers respond with
// richer envelopes of their own.
type ErrorResponse struct {
	Error string `json:"error"`
}

func NewError(msg string) ErrorResponse {
	return ErrorResponse{Error: msg}
}

func (e ErrorResponse) Encode() ([]byte, string, error) {
	data, err := json.Marshal(e)
	return data, "application/json", err
}

func (e ErrorResponse) HTTPStatus() int {
	return 500
}
