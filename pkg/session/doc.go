// Package session implements cookie-backed login sessions for HTTP services:
// it authenticates username/password credentials, mints opaque session
// identifiers, carries them in signed cookies, and exposes the caller's
// authentication state to downstream handlers through the request context.
//
// # Architecture
//
// Four pieces cooperate, leaves first:
//
//   - UserRepo maps usernames to accounts (InMemoryUserRepo ships in the box).
//   - Store authenticates credentials against the UserRepo and tracks minted
//     sessions (MemoryStore is the in-memory implementation).
//   - Manager owns the cookie signing keys and the login cookie template, and
//     installs both on every request via Wrap.
//   - Controller translates between the cookie on the wire and the Session in
//     the store. Its Middleware resolves the session once per request, before
//     routing, and injects it into the context.
//
// A forged or tampered cookie never reaches the store: signature verification
// happens during cookie extraction, and an invalid signature is
// indistinguishable from a missing cookie.
//
// # Usage
//
//	users := session.NewInMemoryUserRepo()
//	store := session.NewMemoryStore(users)
//	manager, err := session.NewManager([]string{signingKey})
//	if err != nil {
//	    // handle error
//	}
//	controller := session.NewController(store)
//
//	var h http.Handler = mux
//	h = controller.Middleware(h) // before-stage: resolve + inject
//	h = manager.Wrap(h)          // outermost: install signing + config
//
//	func whoami(w http.ResponseWriter, r *http.Request) {
//	    if sess, _ := session.FromContext(r.Context()); sess != nil {
//	        // authenticated
//	    }
//	}
//
// # Error Handling
//
// "Cookie absent", "session not in store", and "user unknown during login"
// are not errors; they surface as nil sessions or false booleans. The error
// values the package does return:
//
//   - ErrInvalidCredentials – login failed (unknown user or wrong password)
//   - ErrNoSessionLoaded    – Manager.Wrap missing from the pipeline
//   - ErrIDGeneration       – the random source failed
package session
