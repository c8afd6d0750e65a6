package baserow

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingBaseURL indicates the client configuration has no base URL.
	ErrMissingBaseURL = errors.New("base url is required")
	// ErrMissingCredentials indicates a login was attempted without an
	// email or password configured.
	ErrMissingCredentials = errors.New("missing credentials")
	// ErrMissingToken indicates an authenticated call was attempted with
	// neither a database token nor a JWT configured.
	ErrMissingToken = errors.New("no authentication token configured")
	// ErrMissingRefreshToken indicates RefreshToken was called before a
	// refresh token was obtained via TokenAuth.
	ErrMissingRefreshToken = errors.New("no refresh token available")
	// ErrInvalidPageSize is returned before any request is made when the
	// configured page size is zero or negative.
	ErrInvalidPageSize = errors.New("page size must be positive")
	// ErrInvalidPage is returned before any request is made when the
	// configured page number is zero or negative.
	ErrInvalidPage = errors.New("page number must be positive")
	// ErrInvalidFileURL indicates the URL passed to UploadFileViaURL is
	// not a valid absolute http(s) URL.
	ErrInvalidFileURL = errors.New("invalid file url")
)

// APIError is returned for any non-2xx response. It carries the raw
// status and body; the client does not interpret Baserow's error payload
// shapes beyond authentication.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("baserow: request failed with status %d: %s", e.StatusCode, e.Body)
}

// AuthError is the dedicated error type for failed token authentication.
type AuthError struct {
	StatusCode int
	Message    string
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("baserow: authentication failed (status %d): %s", e.StatusCode, e.Message)
}

// DecodeError wraps a failure to shape a response into the caller's
// target type. The HTTP exchange itself succeeded; errors.As against
// *DecodeError distinguishes shaping failures from transport and
// protocol errors.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("baserow: decoding response: %v", e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}
