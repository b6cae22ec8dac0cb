package flow

// Signal is an input to a Controller. The set is closed: EmailChanged,
// PasswordChanged, SubmitRequested and ErrorDismissed.
type Signal interface {
	isSignal()
}

// EmailChanged replaces the email field.
type EmailChanged struct{ Value string }

// PasswordChanged replaces the password field.
type PasswordChanged struct{ Value string }

// SubmitRequested asks the controller to sign in with the current fields.
type SubmitRequested struct{}

// ErrorDismissed clears a displayed error without editing a field.
type ErrorDismissed struct{}

func (EmailChanged) isSignal()    {}
func (PasswordChanged) isSignal() {}
func (SubmitRequested) isSignal() {}
func (ErrorDismissed) isSignal()  {}
