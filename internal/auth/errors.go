package auth

import "errors"

var (
	// ErrUnauthenticated covers every credential failure: missing header,
	// malformed scheme, bad signature, expiry. Handlers surface all of them
	// as the same generic denial.
	ErrUnauthenticated = errors.New("auth: unauthenticated")

	// ErrForbidden means the credential is valid but the actor may not act
	// on the requested tenant or lacks the required role.
	ErrForbidden = errors.New("auth: forbidden")

	// ErrNotFound covers tenants that do not exist and tenants that are not
	// publicly resolvable. The two cases are indistinguishable on purpose.
	ErrNotFound = errors.New("auth: not found")

	// ErrInvalidToken indicates the token failed validation.
	ErrInvalidToken = errors.New("auth: invalid token")

	// ErrEmailTaken is returned by registration when the email is already in use.
	ErrEmailTaken = errors.New("auth: email already registered")

	// ErrInvalidInput flags malformed request payloads.
	ErrInvalidInput = errors.New("auth: invalid input")
)
