// Package failure carries the HTTP status of an error from the service layer to the
// response writer.
package failure

import (
	"errors"
	"net/http"
)

// Failure is an error whose Code is an HTTP status. Its Message is safe to show to clients.
type Failure struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

var (
	ForbiddenError    = &Failure{Code: http.StatusForbidden, Message: "you don't have the required permissions"}
	StaleVersionError = &Failure{Code: http.StatusConflict, Message: "record was modified by someone else, reload and retry"}
)

func (e *Failure) Error() string {
	return e.Message
}

func newFailure(code int, msg string) error {
	return &Failure{Code: code, Message: msg}
}

// BadRequest keeps the message of err under a 400. A nil err stays nil.
func BadRequest(err error) error {
	if err == nil {
		return nil
	}

	return newFailure(http.StatusBadRequest, err.Error())
}

func BadRequestFromString(msg string) error {
	return newFailure(http.StatusBadRequest, msg)
}

func Unauthorized(msg string) error {
	return newFailure(http.StatusUnauthorized, msg)
}

// NotFound is answered when an entity lookup by id misses; msg names the entity.
func NotFound(msg string) error {
	return newFailure(http.StatusNotFound, msg)
}

// Conflict reports a duplicate or a state the request cannot apply to.
func Conflict(msg string) error {
	return newFailure(http.StatusConflict, msg)
}

// Unprocessable reports a well formed request that breaks a business rule, such as a
// reservation outside its convention window or a forbidden process transition.
func Unprocessable(msg string) error {
	return newFailure(http.StatusUnprocessableEntity, msg)
}

// GetCode returns the status carried by err, or 500 when err holds no Failure.
func GetCode(err error) int {
	var fail *Failure
	if errors.As(err, &fail) {
		return fail.Code
	}

	return http.StatusInternalServerError
}
