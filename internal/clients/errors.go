package clients

import (
	"errors"
	"fmt"
	"net/http"
)

// Error kinds returned by TrackingClient. Match them with errors.Is.
var (
	ErrFetch                = errors.New("failed to load shipments")
	ErrCreate               = errors.New("failed to create shipment")
	ErrUpdate               = errors.New("failed to update shipment")
	ErrDelete               = errors.New("failed to delete shipment")
	ErrAnalyticsUnavailable = errors.New("shipment analytics unavailable")
)

// RequestError is a transport failure or a non-2xx answer from the tracking
// service. Message carries the server text when there was one.
type RequestError struct {
	Kind       error
	Op         string
	StatusCode int // 0 when the request never got an answer
	Message    string
	Err        error
}

func (e *RequestError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: %s (status %d)", e.Op, e.Message, e.StatusCode)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Message)
}

// Is matches the error kind
func (e *RequestError) Is(target error) bool {
	return target == e.Kind
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

// IsNotFound reports whether err is a RequestError answered with 404, such
// as a repeated delete
func IsNotFound(err error) bool {
	var reqErr *RequestError
	return errors.As(err, &reqErr) && reqErr.StatusCode == http.StatusNotFound
}

func transportError(kind error, op string, err error) *RequestError {
	return &RequestError{
		Kind:    kind,
		Op:      op,
		Message: kind.Error(),
		Err:     err,
	}
}
