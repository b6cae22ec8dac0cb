// Package flow implements the sign-in state machine.
//
// A Controller accumulates the email and password a user types, validates
// them on submit, runs the login service and exposes the resulting
// domain.FlowState:
//
//	Empty --submit--> Loading --ok--> Loaded
//	                          \--fail--> Error --edit/dismiss--> Empty
//
// Signals are applied one at a time in the order they arrive. At most one
// login attempt is outstanding per controller; a submit received while
// Loading is ignored. The login call runs on its own goroutine with the
// credentials captured at submission, so edits made while it is in flight
// only affect the next attempt.
//
// One controller serves one sign-in session. After Dispose, late results are
// dropped and further signals are rejected with ErrDisposed.
package flow
