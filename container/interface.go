/*
 * MIT License
 *
 * Copyright (c) 2022 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 *
 */

// Package container implements the multi-connection runtime: it owns a set
// of engines and listeners, attaches each engine to a transport, and
// dispatches their events to application handlers with per-connection
// exclusivity. It is the scheduler sitting above the engine and transport
// packages.
package container

import (
	"context"
	"time"

	libcrt "github.com/nabbar/golib/certificates"

	"github.com/nabbar/amqpio/engine"
	"github.com/nabbar/amqpio/event"
)

// Token is an opaque, caller-supplied correlation value threaded through
// Interrupt, Schedule, Inject and CloseListener, and returned unchanged on
// the event each produces. The container never interprets it.
type Token any

// Handler consumes the events of one batch, in order, for one connection.
// It must not block indefinitely and must not touch any other connection's
// state; if it needs to await external work it should return and resume
// later via Inject.
type Handler func(ev event.Event)

// ProtocolFactory builds the protocol object driving a freshly assigned
// connection identity. The protocol object itself (the AMQP wire codec) is
// supplied by the caller; the container only needs this factory seam to
// remain independent of any concrete protocol implementation.
type ProtocolFactory func(id uint64) engine.Protocol

// Batch is the currently dispensed, exclusively held sequence of events for
// one connection, or a container-global sequence for container-scoped
// events (interrupt, timer, inactive, stopped, timeout). Every Batch
// returned by Wait must eventually be passed to Done.
type Batch interface {
	// ConnectionID returns the owning connection identity and true, or
	// (0, false) for a container-global batch.
	ConnectionID() (id uint64, ok bool)

	// Events returns the events carried by this batch, in delivery order.
	Events() []event.Event
}

// Config configures a Container. ProtocolFactory is required; every other
// field is optional.
type Config struct {
	// ProtocolFactory builds the protocol object for each new connection.
	ProtocolFactory ProtocolFactory

	// TLS supplies the *tls.Config used for "amqps" URLs. If nil, a
	// default TLSConfig is constructed on first use.
	TLS libcrt.TLSConfig

	// Hooks, if set, are invoked as the container's population changes;
	// used by the metrics package to keep gauges current without the
	// container importing it directly.
	Hooks Hooks

	// GlobalHandler, if set, is invoked by Serve for every event carried by
	// a container-global batch (interrupt, timer, inactive, timeout, and
	// the final stopped). Per-connection events always go to the Handler
	// supplied to Connect/Listen instead.
	GlobalHandler Handler
}

// Hooks lets an observer (typically the metrics package) track container
// population without coupling the container to any particular reporting
// library. Every field may be nil.
type Hooks struct {
	OnConnectionOpened func(id uint64)
	OnConnectionClosed func(id uint64)
	OnListenerOpened   func(addr string)
	OnListenerClosed   func(addr string)
	OnBatchDispatched  func()
}

// Container is the runtime described above: it owns engines and listeners,
// serializes event delivery per connection, and exposes the wait/done
// batch-drawing discipline workers use to pump it.
type Container interface {
	// Connect begins an outbound connection to rawURL ("amqp://" or
	// "amqps://" scheme). It returns the connection identity immediately;
	// connection-init is emitted as the first event of that connection's
	// first batch.
	Connect(ctx context.Context, rawURL string, handler Handler, token Token) (uint64, error)

	// Listen creates a listener accepting inbound connections on rawURL.
	// listener-open is emitted once bound; listener-accept is emitted for
	// every inbound connection; listener-close on teardown or error.
	Listen(ctx context.Context, rawURL string, handler Handler, token Token) error

	// CloseListener closes every listener created with the given token.
	CloseListener(token Token)

	// Wait blocks until a batch is runnable or timeout elapses (timeout
	// < 0 means indefinite), and returns it.
	Wait(timeout time.Duration) (Batch, error)

	// Done releases the per-connection exclusivity a batch from Wait held.
	Done(b Batch)

	// Interrupt causes exactly one Wait call to return a container-interrupt
	// event carrying token.
	Interrupt(token Token)

	// Schedule emits a container-timer event carrying token no earlier
	// than delay after this call returns.
	Schedule(delay time.Duration, token Token)

	// Inject schedules a container-inject event carrying token, serialized
	// with connectionID's other events.
	Inject(connectionID uint64, token Token)

	// InjectAll calls Inject with token on every currently known connection.
	InjectAll(token Token)

	// Stop marks the container stopped: no further Connect/Listen is
	// accepted, every connection is aborted, every listener is closed, and
	// every subsequent Wait eventually observes container-stopped.
	Stop()

	// Stopped reports whether Stop has been called, for liveness probes.
	Stopped() bool

	// Serve runs workers concurrent goroutines, each repeatedly calling
	// Wait, invoking every event's batch Handler, and calling Done, until a
	// container-stopped batch is observed or ctx is cancelled. It returns
	// once every worker has exited.
	Serve(ctx context.Context, workers int) error
}

// New returns a Container ready to use. cfg.ProtocolFactory must be set.
func New(cfg Config) (Container, error) {
	c, err := newContainer(cfg)
	if err != nil {
		return nil, err
	}
	return c, nil
}
