// Package crypto holds the small hashing helpers signin needs outside the
// store's sealing code.
package crypto
