// Package envelope provides the uniform response wrapper that every API endpoint returns.
package envelope

import (
	"net/http"
	"time"
)

// MessageSuccess is the default message of successful responses.
const MessageSuccess = "success"

// now is replaced in tests.
var now = time.Now

// Enveloped is implemented by every Response, regardless of its payload type.
// Handlers return this interface, so they can not send a bare payload by accident.
type Enveloped interface {
	// StatusCode returns the HTTP status code that matches the envelope code.
	StatusCode() int
}

// Response is the uniform wrapper around every API result.
type Response[T any] struct {
	// Code mirrors the HTTP status: 200 on success, 4xx/5xx on failure.
	Code int `json:"code"`
	// Message is a human-readable description of the outcome.
	Message string `json:"message"`
	// Data is the optional payload, nil on errors and empty successes.
	Data *T `json:"data"`
	// Timestamp is the creation time in epoch milliseconds.
	Timestamp int64 `json:"timestamp"`
}

func newResponse[T any](code int, message string, data *T) Response[T] {
	return Response[T]{
		Code:      code,
		Message:   message,
		Data:      data,
		Timestamp: now().UnixMilli(),
	}
}

// Success returns an envelope with code 200, the default message and no data.
func Success() Response[any] {
	return newResponse[any](http.StatusOK, MessageSuccess, nil)
}

// SuccessData returns an envelope with code 200, the default message and the given data.
func SuccessData[T any](data T) Response[T] {
	return newResponse(http.StatusOK, MessageSuccess, &data)
}

// SuccessMessage returns an envelope with code 200, a custom message and the given data.
func SuccessMessage[T any](message string, data T) Response[T] {
	return newResponse(http.StatusOK, message, &data)
}

// Error returns an envelope with code 500, the given message and no data.
func Error(message string) Response[any] {
	return ErrorCode(http.StatusInternalServerError, message)
}

// ErrorCode returns an envelope with the given code and message and no data.
func ErrorCode(code int, message string) Response[any] {
	return newResponse[any](code, message, nil)
}

// StatusCode returns the envelope code if it is a usable HTTP status code, 500 otherwise.
func (r Response[T]) StatusCode() int {
	if r.Code < 100 || r.Code > 599 {
		return http.StatusInternalServerError
	}
	return r.Code
}

// OK reports whether the envelope describes a successful outcome.
func (r Response[T]) OK() bool {
	return r.Code >= 200 && r.Code < 300
}
