package auth

import "errors"

// ErrInvalidCredentials means no remote user matched the email, or the
// password did not equal that user's username.
var ErrInvalidCredentials = errors.New("invalid credentials")

// ValidationError covers malformed or missing login input, rejected
// before any remote call is made.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}
