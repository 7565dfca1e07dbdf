package identity

import "errors"

var (
	// ErrDuplicateEmail indicates the email is already registered.
	ErrDuplicateEmail = errors.New("email already registered")
	// ErrPasswordTooShort indicates the password failed the minimum length rule.
	ErrPasswordTooShort = errors.New("password must be at least 8 characters")
	// ErrInvalidCredentials is returned uniformly for unknown email, wrong
	// password, or a non-demo account without a stored hash.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrNotFound indicates the user does not exist.
	ErrNotFound = errors.New("user not found")
	// ErrValidation wraps malformed or missing input.
	ErrValidation = errors.New("validation failed")
)
