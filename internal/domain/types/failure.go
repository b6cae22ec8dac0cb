package types

import (
	"errors"
	"fmt"
)

// FailureKind classifies a Failure.
type FailureKind int

const (
	// Validation failures are detected locally before any request is made.
	Validation FailureKind = iota + 1
	// Network failures cover transport problems: timeouts, refused
	// connections and malformed responses.
	Network
	// Server failures are well-formed error responses from the server.
	Server
	// Storage failures happen while persisting or reading the local session.
	Storage
)

// String returns the lowercase name of the kind.
func (k FailureKind) String() string {
	switch k {
	case Validation:
		return "validation"
	case Network:
		return "network"
	case Server:
		return "server"
	case Storage:
		return "storage"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Failure is the classified error every component returns across its
// boundary. Message is safe to show to the user; Err keeps the underlying
// cause for logs.
type Failure struct {
	Kind    FailureKind
	Message string
	// Status is the HTTP status of a Server failure, zero otherwise.
	Status int
	Err    error
}

func (f *Failure) Error() string {
	if f.Err != nil {
		return fmt.Sprintf("%s failure: %s: %v", f.Kind, f.Message, f.Err)
	}
	return fmt.Sprintf("%s failure: %s", f.Kind, f.Message)
}

func (f *Failure) Unwrap() error { return f.Err }

// NewValidationFailure returns a Validation failure.
func NewValidationFailure(message string) *Failure {
	return &Failure{Kind: Validation, Message: message}
}

// NewNetworkFailure returns a Network failure wrapping cause.
func NewNetworkFailure(message string, cause error) *Failure {
	return &Failure{Kind: Network, Message: message, Err: cause}
}

// NewServerFailure returns a Server failure for an HTTP status.
func NewServerFailure(status int, message string) *Failure {
	return &Failure{Kind: Server, Message: message, Status: status}
}

// NewStorageFailure returns a Storage failure wrapping cause.
func NewStorageFailure(message string, cause error) *Failure {
	return &Failure{Kind: Storage, Message: message, Err: cause}
}

// AsFailure extracts the Failure from err's chain.
func AsFailure(err error) (*Failure, bool) {
	var f *Failure
	if errors.As(err, &f) {
		return f, true
	}
	return nil, false
}
