package supabase

import "errors"

var (
	// ErrRowNotFound is returned when a single-row select matches nothing.
	// For freshly created accounts this usually means replication lag, not a
	// missing account; callers decide whether to retry.
	ErrRowNotFound = errors.New("row not found")

	// ErrConflict is returned on a uniqueness violation during insert. It is
	// recoverable: the create path retries once with a disambiguated value.
	ErrConflict = errors.New("row conflict")

	// ErrInvalidCredentials is returned by password sign-in failures.
	ErrInvalidCredentials = errors.New("invalid credentials")
)
