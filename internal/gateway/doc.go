// Package gateway provides an HTTP implementation of the domain.AuthGateway
// interface used by signin.
//
// The gateway posts the user's credentials to the authentication server's
// login endpoint and returns the issued access token. It never validates the
// credentials itself.
//
// Every error it returns is a classified domain failure:
//   - transport problems (refused connections, DNS, TLS, timeouts) and
//     malformed success responses are Network failures
//   - non-2xx responses are Server failures carrying the server's message
//
// Each request carries a random X-Request-ID so client and server logs can be
// correlated.
package gateway
