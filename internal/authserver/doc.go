// Package authserver is a small development authentication server that
// speaks the login contract the gateway consumes.
//
// HTTP API
//
//	POST /login {"email": "...", "password": "..."}
//	    200 {"token": "<HS256 JWT>"} for a known user and matching password
//	    400 {"message": "..."} for a malformed body or missing fields
//	    401 {"message": "Invalid credentials"} otherwise
//
//	GET /healthz
//	    200 "ok"
//
// Passwords are held only as bcrypt hashes. Issued tokens carry sub (the
// email), iat, exp and a random jti. All state is in memory.
package authserver
