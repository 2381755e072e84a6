package session

import "errors"

var (
	// ErrInvalidCredentials covers both an unknown username and a password
	// mismatch. The two cases are deliberately indistinguishable.
	ErrInvalidCredentials = errors.New("session.invalid_credentials")

	// ErrNoSessionLoaded indicates the login environment was not installed
	// on the request. This is a pipeline misconfiguration (Manager.Wrap is
	// missing), never a normal "no cookie" outcome.
	ErrNoSessionLoaded = errors.New("session.login_environment_not_loaded")

	// ErrIDGeneration indicates the random source failed while minting a
	// session identifier.
	ErrIDGeneration = errors.New("session.id_generation_failed")
)
