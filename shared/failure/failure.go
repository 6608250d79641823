package failure

import (
	"errors"
	"net/http"
)

// Failure is a wrapper for error messages and codes using standard HTTP response codes.
type Failure struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

var InvalidPageParam = &Failure{Code: http.StatusBadRequest, Message: "invalid page parameter"}
var InvalidLimitParam = &Failure{Code: http.StatusBadRequest, Message: "invalid limit parameter"}
var SessionExpired = &Failure{Code: http.StatusUnauthorized, Message: "Your session has expired, please sign in again"}

// Error returns the message only, so it can be shown to the operator verbatim.
func (e *Failure) Error() string {
	return e.Message
}

// New returns a Failure carrying an arbitrary HTTP status, as relayed from the backend.
func New(code int, msg string) error {
	return &Failure{
		Code:    code,
		Message: msg,
	}
}

// BadRequest returns a new Failure with code for bad requests.
func BadRequest(err error) error {
	if err != nil {
		return &Failure{
			Code:    http.StatusBadRequest,
			Message: err.Error(),
		}
	}

	return nil
}

// BadRequestFromString returns a new Failure with code for bad requests with message set from string.
func BadRequestFromString(msg string) error {
	return &Failure{
		Code:    http.StatusBadRequest,
		Message: msg,
	}
}

// Unauthorized returns a new Failure with code for unauthorized requests.
func Unauthorized(msg string) error {
	return &Failure{
		Code:    http.StatusUnauthorized,
		Message: msg,
	}
}

// InternalError returns a new Failure with code for internal error and message derived from an error interface.
func InternalError(err error) error {
	if err != nil {
		return &Failure{
			Code:    http.StatusInternalServerError,
			Message: err.Error(),
		}
	}

	return nil
}

// BadGateway is used when the backend could not be reached at all.
func BadGateway(msg string) error {
	return &Failure{
		Code:    http.StatusBadGateway,
		Message: msg,
	}
}

// NotFound returns a new Failure with code for entity not found.
func NotFound(entityName string) error {
	return &Failure{
		Code:    http.StatusNotFound,
		Message: entityName,
	}
}

// GetCode returns the error code of an error interface.
func GetCode(err error) int {
	var fail *Failure
	if errors.As(err, &fail) {
		return fail.Code
	}

	return http.StatusInternalServerError
}

// IsNotFound reports whether err carries a 404.
func IsNotFound(err error) bool {
	return err != nil && GetCode(err) == http.StatusNotFound
}

// Message returns the operator-facing text of err, unwrapping to the innermost Failure if any.
func Message(err error) string {
	var fail *Failure
	if errors.As(err, &fail) {
		return fail.Message
	}

	return err.Error()
}
