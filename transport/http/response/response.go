package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"solireserve/shared/constant"
	"solireserve/shared/failure"
	"solireserve/shared/logger"
)

type Data[T any] struct {
	Data *T `json:"data,omitempty"`
}

// Error is the body of every non 2xx answer. Code repeats the HTTP status so that clients
// reading a proxied body still get it.
type Error struct {
	Error *string `json:"error,omitempty"`
	Code  int     `json:"code,omitempty"`
}

type Message struct {
	Message *string `json:"message,omitempty"`
}

func WithMessage(writer http.ResponseWriter, code int, message string) {
	write(writer, code, Message{Message: &message})
}

func WithJSON(writer http.ResponseWriter, code int, payload any) {
	write(writer, code, Data[any]{Data: &payload})
}

// WithError maps err to its status through failure.GetCode. Unexpected errors (anything
// that is not a *failure.Failure) are logged and answered with a generic 500 message so
// driver and storage details stay out of the body.
func WithError(writer http.ResponseWriter, err error) {
	code := failure.GetCode(err)
	message := err.Error()

	var f *failure.Failure
	if !errors.As(err, &f) {
		logger.ErrorWithStack(err)

		message = constant.ResponseErrorInternal
	}

	write(writer, code, Error{Error: &message, Code: code})
}

// WithRequestLimitExceeded answers 429 and tells the client when the window reopens.
func WithRequestLimitExceeded(writer http.ResponseWriter, retryAfterSecs int) {
	writer.Header().Set(constant.RequestHeaderRetryAfter, strconv.Itoa(retryAfterSecs))
	WithMessage(writer, http.StatusTooManyRequests, constant.ResponseErrorRequestLimitExceeded)
}

func WithPreparingShutdown(writer http.ResponseWriter) {
	WithMessage(writer, http.StatusServiceUnavailable, constant.ResponseErrorPrepareShutdown)
}

func WithUnhealthy(writer http.ResponseWriter) {
	WithMessage(writer, http.StatusServiceUnavailable, constant.ResponseErrorUnhealthy)
}

func write(writer http.ResponseWriter, code int, payload any) {
	body, err := json.Marshal(payload)
	if err != nil {
		logger.ErrorWithStack(err)
		writer.WriteHeader(http.StatusInternalServerError)

		return
	}

	writer.Header().Set(constant.RequestHeaderContentType, constant.ContentTypeJSON)
	writer.WriteHeader(code)

	if _, err = writer.Write(body); err != nil {
		logger.ErrorWithStack(err)
	}
}
