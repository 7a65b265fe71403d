package domain

import "errors"

var (
	// ErrUserExists is returned when registration hits an email that is
	// already taken.
	ErrUserExists = errors.New("already registered")

	// ErrUserNotFound is returned when no account matches the given email.
	ErrUserNotFound = errors.New("user not found")

	// ErrInvalidCredentials covers login requests with an empty email or
	// password. The message stays generic so callers cannot tell which
	// field was wrong.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrWrongEmailOrAnswer merges "unknown email" and "wrong security
	// answer" into one recovery failure, again to avoid leaking which
	// part did not match.
	ErrWrongEmailOrAnswer = errors.New("wrong email or answer")
)

// ValidationError reports a missing or malformed input field. The message is
// part of the API contract: clients assert on the exact text, so it is carried
// verbatim from the service to the response envelope.
type ValidationError struct {
	Message string
}

func (e ValidationError) Error() string { return e.Message }

// AsValidation unwraps err into a ValidationError when it is one.
func AsValidation(err error) (ValidationError, bool) {
	var ve ValidationError
	ok := errors.As(err, &ve)
	return ve, ok
}
