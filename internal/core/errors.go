package core

import "errors"

// Domain error taxonomy. The storage and auth layers return these sentinels
// (usually wrapped) and the HTTP boundary maps them to status codes with
// errors.Is.
var (
	// ErrConflict: a write collided with an existing identity (duplicate email).
	ErrConflict = errors.New("already exists")

	// ErrInvalidCredentials covers both unknown email and wrong password.
	// Callers must not be able to tell which factor failed.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrInvalidToken: missing, malformed, badly signed or expired token,
	// or a token without a subject claim.
	ErrInvalidToken = errors.New("invalid token")

	// ErrUnavailable: a backing dependency (the database) is unreachable.
	// Distinct from auth failures so clients can tell "wrong credentials"
	// from "service down".
	ErrUnavailable = errors.New("service unavailable")

	// ErrDelegate: the RAG pipeline failed somewhere inside an external
	// call. The cause is wrapped but callers treat it as one opaque failure.
	ErrDelegate = errors.New("answer generation failed")
)
