// Package store provides the credential store backends used by signin.
//
// Every backend implements domain.CredentialStore and reports failures as
// domain Storage failures, so callers never see raw I/O or Redis errors.
//
// The package includes:
//   - FileTokenStore, a JSON map on disk, optionally sealed with a passphrase
//   - RedisTokenStore, one Redis string per key
//   - MemoryTokenStore, a process-local map for tests and throwaway sessions
package store
