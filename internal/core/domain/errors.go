package domain

import (
	"errors"
	"strings"
)

var ErrPostNotFound = errors.New("post not found")
var ErrUserNotFound = errors.New("user not found")
var ErrEmailTaken = errors.New("email already registered")
var ErrForbidden = errors.New("not authorized")
var ErrInvalidCredentials = errors.New("invalid email or password")

// ErrUnauthenticated means no usable credential accompanied the request.
var ErrUnauthenticated = errors.New("not authenticated")

// ErrInvalidToken covers every token verification failure uniformly: expired,
// tampered and malformed tokens are indistinguishable to the caller.
var ErrInvalidToken = errors.New("invalid token")

// ErrTokenVerification is raised by the hard access gate when a credential was
// supplied but failed verification. It carries a different classification than
// ErrUnauthenticated even though both block access.
var ErrTokenVerification = errors.New("token verification failed")

// FieldViolation is one violated input rule.
type FieldViolation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError aggregates every violated field rule of a single request.
// It is reported to the caller as a multi-entry payload with a 422
// classification, distinct from single-cause domain failures.
type ValidationError struct {
	Violations []FieldViolation
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		msgs = append(msgs, v.Message)
	}
	return "invalid input: " + strings.Join(msgs, "; ")
}

// AsValidationError unwraps err into a *ValidationError if it is one.
func AsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	ok := errors.As(err, &ve)
	return ve, ok
}
