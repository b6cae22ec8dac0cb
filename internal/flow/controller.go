package flow

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"signin/internal/domain"
)

var (
	// ErrBusy is returned by Dispatch when a submit is ignored because a
	// login attempt is already in flight.
	ErrBusy = errors.New("flow: sign-in already in progress")
	// ErrDisposed is returned by Dispatch after Dispose.
	ErrDisposed = errors.New("flow: controller disposed")
)

// minSubscriberBuffer keeps publish from ever blocking on a subscriber.
const minSubscriberBuffer = 1

// attempt is the single-slot handle of the in-flight login call.
type attempt struct {
	id     uint64
	cancel context.CancelFunc
	done   chan struct{}
}

// Controller is the sign-in state machine. It is safe for concurrent use;
// signals are serialised on an internal mutex.
type Controller struct {
	login   domain.LoginService
	logger  *slog.Logger
	timeout time.Duration

	mu       sync.Mutex
	state    domain.FlowState
	inflight *attempt
	attempts uint64
	disposed bool
	subs     map[int]chan domain.FlowState
	nextSub  int
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the controller's logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithTimeout bounds each login attempt. Zero means no deadline.
func WithTimeout(d time.Duration) Option {
	return func(c *Controller) { c.timeout = d }
}

// New returns a controller in the Empty state with empty fields.
func New(login domain.LoginService, opts ...Option) *Controller {
	c := &Controller{
		login:  login,
		logger: slog.New(slog.DiscardHandler),
		state:  domain.FlowState{Lifecycle: domain.LifecycleEmpty},
		subs:   make(map[int]chan domain.FlowState),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// State returns a snapshot of the current state.
func (c *Controller) State() domain.FlowState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Dispatch applies sig. The state is updated before Dispatch returns; only
// the outcome of a submitted login arrives later.
//
// A failed validation is not an error here: it is reported through the
// state as LifecycleError.
func (c *Controller) Dispatch(sig Signal) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.disposed {
		return ErrDisposed
	}

	switch s := sig.(type) {
	case EmailChanged:
		c.state.Email = s.Value
		c.dismissErrorLocked()
	case PasswordChanged:
		c.state.Password = s.Value
		c.dismissErrorLocked()
	case ErrorDismissed:
		c.dismissErrorLocked()
	case SubmitRequested:
		return c.submitLocked()
	default:
		return fmt.Errorf("flow: unknown signal %T", sig)
	}
	c.publishLocked()
	return nil
}

// dismissErrorLocked returns an Error state to Empty. Other lifecycles are
// left alone, so an edit during Loading does not disturb the attempt.
func (c *Controller) dismissErrorLocked() {
	if c.state.Lifecycle == domain.LifecycleError {
		c.state.Lifecycle = domain.LifecycleEmpty
		c.state.Message = ""
	}
}

func (c *Controller) submitLocked() error {
	if c.inflight != nil {
		c.logger.Debug("submit ignored, sign-in in progress", "attempt", c.inflight.id)
		return ErrBusy
	}

	creds := c.state.Credentials()
	if f := Validate(creds); f != nil {
		c.logger.Debug("submit rejected", "reason", f.Message)
		c.failLocked(f)
		c.publishLocked()
		return nil
	}

	var (
		ctx    context.Context
		cancel context.CancelFunc
	)
	if c.timeout > 0 {
		ctx, cancel = context.WithTimeout(context.Background(), c.timeout)
	} else {
		ctx, cancel = context.WithCancel(context.Background())
	}
	c.attempts++
	a := &attempt{id: c.attempts, cancel: cancel, done: make(chan struct{})}
	c.inflight = a

	c.state.Lifecycle = domain.LifecycleLoading
	c.state.Message = ""
	c.publishLocked()

	c.logger.Info("sign-in submitted", "attempt", a.id, "email", creds.Email)
	go c.run(ctx, a, creds)
	return nil
}

// run performs one login attempt and applies its outcome if the attempt is
// still current.
func (c *Controller) run(ctx context.Context, a *attempt, creds domain.Credentials) {
	defer close(a.done)
	defer a.cancel()

	err := c.login.Login(ctx, creds)

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.disposed || c.inflight != a {
		c.logger.Debug("discarding late sign-in result", "attempt", a.id)
		return
	}
	c.inflight = nil

	if err != nil {
		f, ok := domain.AsFailure(err)
		if !ok {
			f = domain.NewNetworkFailure("Unable to reach the server", err)
		}
		c.logger.Info("sign-in failed", "attempt", a.id, "kind", f.Kind.String(), "message", f.Message)
		c.failLocked(f)
	} else {
		c.logger.Info("sign-in succeeded", "attempt", a.id)
		c.state.Lifecycle = domain.LifecycleLoaded
		c.state.Message = ""
	}
	c.publishLocked()
}

func (c *Controller) failLocked(f *domain.Failure) {
	msg := f.Message
	if msg == "" {
		msg = "Sign-in failed"
	}
	c.state.Lifecycle = domain.LifecycleError
	c.state.Message = msg
}

// Wait blocks until no login attempt is in flight and returns the state at
// that point.
func (c *Controller) Wait(ctx context.Context) (domain.FlowState, error) {
	c.mu.Lock()
	a := c.inflight
	c.mu.Unlock()

	if a != nil {
		select {
		case <-a.done:
		case <-ctx.Done():
			return c.State(), ctx.Err()
		}
	}
	return c.State(), nil
}

// Subscribe returns a channel that receives the current state immediately
// and then every state the controller publishes. When the subscriber falls
// behind, the oldest queued state is dropped so the latest is always
// delivered. The channel is closed by cancel or Dispose.
func (c *Controller) Subscribe(buffer int) (<-chan domain.FlowState, func()) {
	if buffer < minSubscriberBuffer {
		buffer = minSubscriberBuffer
	}
	ch := make(chan domain.FlowState, buffer)

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.disposed {
		close(ch)
		return ch, func() {}
	}
	id := c.nextSub
	c.nextSub++
	c.subs[id] = ch
	ch <- c.state

	return ch, func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		if sub, ok := c.subs[id]; ok {
			delete(c.subs, id)
			close(sub)
		}
	}
}

// publishLocked fans the current state out to subscribers without blocking.
// Only publishLocked sends, always under c.mu, so after draining one slot the
// send below has room.
func (c *Controller) publishLocked() {
	for _, ch := range c.subs {
		select {
		case ch <- c.state:
		default:
			select {
			case <-ch:
			default:
			}
			ch <- c.state
		}
	}
}

// Dispose tears the controller down. The in-flight attempt, if any, is
// cancelled and its result discarded. Dispose is idempotent.
func (c *Controller) Dispose() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.disposed {
		return
	}
	c.disposed = true
	if c.inflight != nil {
		c.inflight.cancel()
		c.inflight = nil
	}
	for id, ch := range c.subs {
		delete(c.subs, id)
		close(ch)
	}
	c.logger.Debug("flow controller disposed")
}
