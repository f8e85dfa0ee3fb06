package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/ITlusions/ITL.ControlPlane.SDK-sub001/kit/platform/errors"
)

// ErrorCodeHeader carries the machine-readable error code of a failed call.
const ErrorCodeHeader = "X-Controlplane-Error-Code"

// ErrorHandler is the error handler in http package.
//
// It writes the uniform JSON error envelope and never leaks wrapped internal
// errors to the client; only the code and the top-level message go out.
type ErrorHandler int

// HandleHTTPError encodes err with the appropriate status code and format,
// sets the X-Controlplane-Error-Code header on the response and sets the
// response status to the corresponding status code.
func (h ErrorHandler) HandleHTTPError(ctx context.Context, err error, w http.ResponseWriter) {
	if err == nil {
		return
	}

	code := errors.ErrorCode(err)
	httpCode, ok := statusCodeControlPlaneError[code]
	if !ok {
		httpCode = http.StatusBadRequest
	}
	w.Header().Set(ErrorCodeHeader, code)
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(httpCode)
	var e struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}
	e.Code = code
	e.Message = "An internal error has occurred"
	if err, ok := err.(*errors.Error); ok {
		if code == errors.EInternal {
			// internal failures wrap storage and driver errors whose
			// detail must not reach the client
			if err.Msg != "" {
				e.Message = err.Msg
			}
		} else {
			e.Message = err.Error()
		}
	}
	b, _ := json.Marshal(e)
	_, _ = w.Write(b)
}

// statusCodeControlPlaneError maps error codes to HTTP status codes.
// Conflicts map to 409 per resource manager conventions.
var statusCodeControlPlaneError = map[string]int{
	errors.EInternal:            http.StatusInternalServerError,
	errors.ENotImplemented:      http.StatusNotImplemented,
	errors.EInvalid:             http.StatusBadRequest,
	errors.EUnprocessableEntity: http.StatusUnprocessableEntity,
	errors.EEmptyValue:          http.StatusBadRequest,
	errors.EConflict:            http.StatusConflict,
	errors.ENotFound:            http.StatusNotFound,
	errors.EUnavailable:         http.StatusServiceUnavailable,
	errors.EForbidden:           http.StatusForbidden,
	errors.ETooManyRequests:     http.StatusTooManyRequests,
	errors.EUnauthorized:        http.StatusUnauthorized,
	errors.EMethodNotAllowed:    http.StatusMethodNotAllowed,
	errors.ETooLarge:            http.StatusRequestEntityTooLarge,
}
