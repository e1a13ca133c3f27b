package client

import (
	"context"
	"sync"
)

// Pending is a request in flight. It settles exactly once with either a
// response or an error; Cancel aborts the request if it has not settled
// yet and is a no-op afterwards.
type Pending struct {
	done   chan struct{}
	cancel context.CancelFunc

	once sync.Once
	resp *Response
	err  error
}

func newPending(cancel context.CancelFunc) *Pending {
	return &Pending{
		done:   make(chan struct{}),
		cancel: cancel,
	}
}

// settle records the outcome. Only the first call wins. The backing context
// is always released so deadline timers do not leak.
func (p *Pending) settle(resp *Response, err error) {
	p.once.Do(func() {
		p.resp = resp
		p.err = err
		close(p.done)
	})
	p.cancel()
}

// Done returns a channel that is closed when the request settles.
func (p *Pending) Done() <-chan struct{} {
	return p.done
}

// Result blocks until the request settles and returns the outcome. It is
// safe to call repeatedly and from multiple goroutines; every call returns
// the same values.
func (p *Pending) Result() (*Response, error) {
	<-p.done
	return p.resp, p.err
}

// Cancel aborts the request. The pending result then settles with an
// abort-class error unless it had already settled.
func (p *Pending) Cancel() {
	p.cancel()
}
