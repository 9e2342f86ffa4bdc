package errors

import "errors"

// IsNetworkError reports whether err is a transport failure
func IsNetworkError(err error) bool {
	return errors.Is(err, ErrNetwork)
}

// IsTimeoutError reports whether err is a timeout
func IsTimeoutError(err error) bool {
	return errors.Is(err, ErrTimeout)
}

// IsParseError reports whether err came from decoding the response
func IsParseError(err error) bool {
	return errors.Is(err, ErrInvalidResponse)
}

// IsAPIError reports whether err is a non-2xx answer
func IsAPIError(err error) bool {
	return errors.Is(err, ErrBadStatus)
}

// IsInferenceError reports whether err belongs to the single failure class of
// a generate request: transport, timeout, status or parse.
func IsInferenceError(err error) bool {
	return IsNetworkError(err) || IsTimeoutError(err) || IsAPIError(err) || IsParseError(err)
}

// GetHTTPStatus returns the HTTP status carried by err, or 0
func GetHTTPStatus(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}

// GetEndpoint returns the endpoint carried by err, or ""
func GetEndpoint(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Endpoint
	}
	var netErr *NetworkError
	if errors.As(err, &netErr) {
		return netErr.Endpoint
	}
	return ""
}

// GetResponseBody returns the response body excerpt carried by err, or ""
func GetResponseBody(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Body
	}
	return ""
}
