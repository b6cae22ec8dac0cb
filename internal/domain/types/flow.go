package types

// Lifecycle is the request lifecycle of a sign-in attempt. Exactly one value
// is active at a time.
type Lifecycle int

const (
	LifecycleEmpty Lifecycle = iota
	LifecycleLoading
	LifecycleLoaded
	LifecycleError
)

// String returns the lowercase name of the lifecycle.
func (l Lifecycle) String() string {
	switch l {
	case LifecycleEmpty:
		return "empty"
	case LifecycleLoading:
		return "loading"
	case LifecycleLoaded:
		return "loaded"
	case LifecycleError:
		return "error"
	default:
		return "unknown"
	}
}

// FlowState is the observable state of one sign-in flow.
//
// Message is non-empty exactly when Lifecycle is LifecycleError.
type FlowState struct {
	Email     string
	Password  string
	Lifecycle Lifecycle
	Message   string
}

// Credentials returns the sign-in fields currently held by the state.
func (s FlowState) Credentials() Credentials {
	return Credentials{Email: s.Email, Password: s.Password}
}
