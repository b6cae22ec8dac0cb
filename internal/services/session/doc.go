// Package session inspects and clears the locally stored access token.
package session
