package application

import "errors"

// Failure taxonomy shared by every application service. Handlers map these
// onto HTTP statuses; nothing below is ever retried.
var (
	// ErrUnauthenticated means no credential was presented at all.
	ErrUnauthenticated = errors.New("authentication required")

	// ErrInvalidToken covers every way a presented token can fail:
	// bad signature, expired, malformed, missing subject. Deliberately
	// undifferentiated so rejections leak nothing about the cause.
	ErrInvalidToken = errors.New("could not validate credentials")

	// ErrInvalidCredentials is the login failure (unknown email or wrong
	// password, also undifferentiated).
	ErrInvalidCredentials = errors.New("incorrect email or password")

	// ErrUserNotFound means a valid token whose subject no longer maps to
	// a stored user. Tokens are stateless and outlive user deletion.
	ErrUserNotFound = errors.New("user not found")

	// ErrNotFound means the target aggregate does not exist.
	ErrNotFound = errors.New("not found")

	// ErrForbidden means the caller is not the owner of the target.
	ErrForbidden = errors.New("not authorized")

	// ErrEmailTaken rejects registration with an already-used email.
	ErrEmailTaken = errors.New("email already registered")

	// ErrSubjectExists rejects a duplicate subject name.
	ErrSubjectExists = errors.New("subject already exists")

	// ErrDispatchPartial reports a fan-out batch that only partially
	// persisted. The triggering write has already committed; this is a
	// secondary signal, never fatal to the caller.
	ErrDispatchPartial = errors.New("notification dispatch partially failed")
)
