package response

import (
	"backoffice/shared/constant"
	"backoffice/shared/failure"
	"backoffice/shared/logger"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
)

type Data[T any] struct {
	Data *T `json:"data,omitempty"`
}

type Error struct {
	Error *string `json:"error,omitempty"`
}

type Message struct {
	Message *string `json:"message,omitempty"`
}

// WithMessage sends a response with a simple text message
func WithMessage(writer http.ResponseWriter, code int, message string) {
	response(writer, code, Message{Message: &message})
}

// WithJSON sends a response containing a JSON object
func WithJSON(writer http.ResponseWriter, code int, jsonPayload interface{}) {
	response(writer, code, Data[any]{Data: &jsonPayload})
}

// WithError sends the operator-facing message of err under "error", matching the backend's error body.
func WithError(writer http.ResponseWriter, err error) {
	code := failure.GetCode(err)
	errMsg := failure.Message(err)

	response(writer, code, Error{Error: &errMsg})
}

// WithRequestLimitExceeded sends a default response for when the request limit is exceeded
func WithRequestLimitExceeded(writer http.ResponseWriter) {
	WithMessage(writer, http.StatusTooManyRequests, constant.ResponseErrorRequestLimitExceeded)
}

// WithPreparingShutdown sends a default response for when the server is preparing to shut down
func WithPreparingShutdown(writer http.ResponseWriter) {
	WithMessage(writer, http.StatusServiceUnavailable, constant.ResponseErrorPrepareShutdown)
}

// WithUnhealthy sends a default response for when the server is unhealthy
func WithUnhealthy(writer http.ResponseWriter) {
	WithMessage(writer, http.StatusServiceUnavailable, constant.ResponseErrorUnhealthy)
}

// SeeOther redirects a form post back to a page, so a reload does not resubmit it.
func SeeOther(writer http.ResponseWriter, request *http.Request, target string) {
	http.Redirect(writer, request, target, http.StatusSeeOther)
}

// ToLogin sends a browser to the login page, remembering where it was going.
func ToLogin(writer http.ResponseWriter, request *http.Request) {
	target := constant.RouteLogin
	if request.Method == http.MethodGet && request.URL.Path != constant.RouteLogin {
		target += "?" + url.Values{constant.RequestParamNext: {request.URL.RequestURI()}}.Encode()
	}

	SeeOther(writer, request, target)
}

// LocalPath returns target when it is a path on this console, else fallback.
// Used for ?next= and Referer so redirects never leave the site.
func LocalPath(target, fallback string) string {
	u, err := url.Parse(target)
	if err != nil || u.Scheme != "" || u.Host != "" || !strings.HasPrefix(u.Path, "/") || strings.HasPrefix(u.Path, "//") {
		return fallback
	}

	return u.RequestURI()
}

// Referer returns the local page the request came from, else fallback.
func Referer(request *http.Request, fallback string) string {
	ref, err := url.Parse(request.Referer())
	if err != nil || ref.Path == "" || (ref.Host != "" && ref.Host != request.Host) {
		return fallback
	}

	return LocalPath(ref.RequestURI(), fallback)
}

// WantsJSON reports whether the caller is a script rather than a page navigation.
func WantsJSON(request *http.Request) bool {
	return strings.Contains(request.Header.Get(constant.RequestHeaderAccept), constant.ContentTypeJSON)
}

func response(writer http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		logger.ErrorWithStack(err)

		return
	}

	writer.Header().Set(constant.RequestHeaderContentType, constant.ContentTypeJSON)
	writer.WriteHeader(code)
	_, err = writer.Write(response)

	if err != nil {
		logger.ErrorWithStack(err)
	}
}
