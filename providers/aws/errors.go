package aws

import (
	"errors"
	"fmt"
	"strings"

	"github.com/aws/smithy-go"
)

// ErrorKind classifies a failed EC2 call so callers can assert on
// outcomes instead of parsing message text.
type ErrorKind string

const (
	ErrNotFound     ErrorKind = "not_found"
	ErrMalformedID  ErrorKind = "malformed_id"
	ErrAccessDenied ErrorKind = "access_denied"
	ErrThrottled    ErrorKind = "throttled"
	ErrUnknown      ErrorKind = "unknown"
)

// OpError wraps a failed EC2 call with the operation name and a kind.
type OpError struct {
	Op   string
	Kind ErrorKind
	Err  error
}

func (e *OpError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
}

func (e *OpError) Unwrap() error { return e.Err }

// classify maps an AWS API error code onto an ErrorKind.
func classify(op string, err error) *OpError {
	kind := ErrUnknown

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch code := apiErr.ErrorCode(); {
		case strings.HasSuffix(code, ".NotFound"):
			kind = ErrNotFound
		case strings.HasSuffix(code, ".Malformed"):
			kind = ErrMalformedID
		case code == "UnauthorizedOperation" || code == "AuthFailure":
			kind = ErrAccessDenied
		case code == "RequestLimitExceeded":
			kind = ErrThrottled
		}
	}

	return &OpError{Op: op, Kind: kind, Err: err}
}
