package session

import "context"

// Store authenticates credentials and tracks the sessions minted for them.
type Store interface {
	// Authenticate verifies the credentials against the user repository and,
	// on success, mints and stores a new authenticated session. An unknown
	// username and a wrong password both fail with ErrInvalidCredentials so
	// that responses cannot be used for username enumeration.
	Authenticate(ctx context.Context, creds Credentials) (*Session, error)

	// Lookup returns a copy of the stored session, or (nil, nil) when the id
	// is unknown. Absence is not an error.
	Lookup(ctx context.Context, id string) (*Session, error)

	// Remove deletes the session, reporting whether one existed. It is
	// idempotent.
	Remove(ctx context.Context, id string) (bool, error)
}
