package flow

import (
	"context"
	"errors"
	"testing"
	"time"

	"signin/internal/domain"
)

type gatedLogin struct {
	started chan struct{}
	release chan error
}

func (g *gatedLogin) Login(context.Context, domain.Credentials) error {
	close(g.started)
	// The result is delivered whether or not the context was cancelled.
	return <-g.release
}

func TestDispose_WhileLoadingDropsLateResult(t *testing.T) {
	g := &gatedLogin{started: make(chan struct{}), release: make(chan error)}
	c := New(g)

	ch, _ := c.Subscribe(8)

	_ = c.Dispatch(EmailChanged{Value: "a@b.com"})
	_ = c.Dispatch(PasswordChanged{Value: "secret"})
	if err := c.Dispatch(SubmitRequested{}); err != nil {
		t.Fatalf("submit: %v", err)
	}
	<-g.started

	c.mu.Lock()
	a := c.inflight
	c.mu.Unlock()
	if a == nil {
		t.Fatal("no attempt in flight")
	}

	before := c.State()
	c.Dispose()
	c.Dispose()

	g.release <- nil
	select {
	case <-a.done:
	case <-time.After(2 * time.Second):
		t.Fatal("attempt goroutine did not finish")
	}

	if after := c.State(); after != before {
		t.Fatalf("state changed after dispose: %+v -> %+v", before, after)
	}
	if err := c.Dispatch(EmailChanged{Value: "x"}); !errors.Is(err, ErrDisposed) {
		t.Fatalf("dispatch after dispose err = %v", err)
	}
	for st := range ch {
		if st.Lifecycle == domain.LifecycleLoaded {
			t.Fatal("late result was published")
		}
	}
}

func TestSubscribe_AfterDisposeIsClosed(t *testing.T) {
	c := New(&gatedLogin{})
	c.Dispose()
	ch, cancel := c.Subscribe(1)
	defer cancel()
	if _, ok := <-ch; ok {
		t.Fatal("subscription on disposed controller should be closed")
	}
}
