// Package sessionapi is the HTTP surface of the session subsystem:
//
//	GET    /session  -> 200 + session JSON, or 404 when anonymous
//	POST   /session  -> login; 200 + session JSON + signed Set-Cookie,
//	                    403 on invalid credentials, 500 otherwise
//	DELETE /session  -> logout; always 200
//
// The routes are returned as a mountable chi handler; the caller's router
// owns the path prefix. The pipeline must run session.Manager.Wrap and
// session.Controller.Middleware before these handlers.
package sessionapi
