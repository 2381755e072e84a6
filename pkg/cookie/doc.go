// Package cookie provides an HTTP cookie manager with HMAC-SHA256 value
// signing and key rotation.
//
// A Manager is constructed with one or more secrets; the first secret signs
// new cookies while all secrets participate in verification, so keys can be
// rotated without invalidating every client at once. Signature comparison is
// constant-time.
//
// Usage:
//
//	mgr, err := cookie.New([]string{"at-least-32-characters-long-secret"})
//	if err != nil {
//	    // handle error
//	}
//
//	mgr.SetSigned(w, "sid", token)
//	value, err := mgr.GetSigned(r, "sid")
//
// GetSigned returns ErrInvalidSignature for tampered values and
// ErrCookieNotFound when the cookie is absent; callers that only care about
// "do I have a trustworthy value" can treat both the same way.
package cookie
