// Package login signs a user in.
//
// It calls the authentication gateway and, on success, hands the issued token
// to the credential store under domain.AccessTokenKey.
package login
