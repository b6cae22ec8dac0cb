package types

// AccessTokenKey is the well-known key the access token is persisted under.
const AccessTokenKey = "ACCESS_TOKEN"

// Credentials are the user-entered sign-in fields. They are held only while a
// sign-in is in progress and are never persisted.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthToken is the opaque access token issued by the authentication server.
type AuthToken string

// String returns the string form of the token.
func (t AuthToken) String() string { return string(t) }
