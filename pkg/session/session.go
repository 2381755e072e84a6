package session

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
)

// Session is the server-held record of a successful login, keyed by an opaque
// identifier. It is immutable after creation; logging out deletes it.
type Session struct {
	Username      string `json:"username"`
	UserID        string `json:"user_id"`
	ID            string `json:"session_id"`
	Authenticated bool   `json:"authenticated"`
}

// sessionIDBytes is the entropy of a session identifier. Collisions are
// treated as negligible at this size; a colliding id would overwrite the
// prior session.
const sessionIDBytes = 16

// newSessionID generates an unguessable session identifier from a
// cryptographically secure source.
func newSessionID() (string, error) {
	b := make([]byte, sessionIDBytes)
	if _, err := rand.Read(b); err != nil {
		return "", errors.Join(ErrIDGeneration, err)
	}
	return base64.StdEncoding.EncodeToString(b), nil
}
