package types

import "time"

// SessionInfo describes the locally stored access token.
//
// JWT claims are decoded without verifying the signature; they are for
// display only.
type SessionInfo struct {
	Present     bool      `json:"present"`
	Fingerprint string    `json:"fingerprint,omitempty"`
	JWT         bool      `json:"jwt"`
	Subject     string    `json:"subject,omitempty"`
	IssuedAt    time.Time `json:"issued_at,omitzero"`
	ExpiresAt   time.Time `json:"expires_at,omitzero"`
	Expired     bool      `json:"expired"`
}
