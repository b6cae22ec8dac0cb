// Package main runs the development authentication server used by signin
// during local runs and tests. See internal/authserver for the HTTP API.
//
// Usage
//
//	authd --addr :8080 --secret s3cret --user alice@example.com:hunter22
//
// Users are given on the command line and kept in memory; their passwords
// are bcrypt-hashed at startup. Without --secret a random signing key is
// generated, so tokens do not survive a restart.
package main
