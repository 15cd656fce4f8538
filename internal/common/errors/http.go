// internal/common/errors/http.go
package errors

import "net/http"

// HTTPStatusMapping maps internal error codes to HTTP response codes.
var HTTPStatusMapping = map[ErrorCode]int{
	ErrCodeUnauthenticated:    http.StatusUnauthorized,
	ErrCodePermissionDenied:   http.StatusForbidden,
	ErrCodeFailedPrecondition: http.StatusPreconditionFailed,
	ErrCodeNotFound:           http.StatusNotFound,
	ErrCodeInvalidArgument:    http.StatusBadRequest,
	ErrCodeInternal:           http.StatusInternalServerError,
}

// HTTPStatus returns the HTTP status code for any error.
func HTTPStatus(err error) int {
	if status, ok := HTTPStatusMapping[CodeOf(err)]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// HTTPBody is the wire shape of an error response.
type HTTPBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// ToHTTPBody normalizes an error into the wire shape. Internal details are
// withheld so store failures never leak connection strings to callers.
func ToHTTPBody(err error) HTTPBody {
	code := CodeOf(err)
	if code == ErrCodeInternal {
		return HTTPBody{Code: string(code), Message: "Internal error"}
	}

	var stdErr *StandardError
	if As(err, &stdErr) {
		return HTTPBody{Code: string(code), Message: stdErr.Message, Details: stdErr.Details}
	}
	return HTTPBody{Code: string(code), Message: err.Error()}
}
