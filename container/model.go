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

package container

import (
	"context"
	"sync"

	libatm "github.com/nabbar/golib/atomic"

	"github.com/nabbar/amqpio/engine"
	"github.com/nabbar/amqpio/event"
)

// connState tracks one connection's exclusivity and pending queue. Every
// field reachable after construction is guarded by mu, except eng (which is
// only ever touched from the goroutine running its transport.Loop and from
// Inject, both of which are safe per the engine's own contract).
type connState struct {
	id    uint64
	token Token

	eng     engine.Engine
	handler Handler

	mu      sync.Mutex
	pending []event.Event
	busy    bool
	queued  bool
	final   bool
}

func newConnState(id uint64, eng engine.Engine, handler Handler, token Token) *connState {
	return &connState{id: id, eng: eng, handler: handler, token: token}
}

// push appends ev to the connection's pending queue and reports whether the
// connection newly became runnable (i.e. the caller must enqueue its id).
func (cs *connState) push(ev event.Event) (becameRunnable bool) {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	cs.pending = append(cs.pending, ev)
	if cs.busy || cs.queued {
		return false
	}
	cs.queued = true
	return true
}

// draw removes and returns the pending queue, marking the connection busy.
func (cs *connState) draw() []event.Event {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	cs.queued = false
	cs.busy = true
	evs := cs.pending
	cs.pending = nil
	return evs
}

// release clears busy and reports whether more events accumulated while
// busy (in which case the caller must re-enqueue the connection's id).
func (cs *connState) release() (becameRunnable bool) {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	cs.busy = false
	if len(cs.pending) == 0 {
		return false
	}
	cs.queued = true
	return true
}

func (cs *connState) markFinal() {
	cs.mu.Lock()
	cs.final = true
	cs.mu.Unlock()
}

func (cs *connState) isFinal() bool {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	return cs.final
}

type listenerState struct {
	addr  string
	token Token
	close func()
}

// containerImpl is the reference Container implementation. Batches are
// scheduled through two channels: runnableCh carries connection ids whose
// pending queue just became non-empty, globalCh carries container-scoped
// events (interrupt, timer, inject-all fan-out target refresh, inactive,
// stopped). Channel order gives the FIFO-by-runnable-time guarantee within
// each of the two domains; ties between the two domains are broken by
// whichever branch of Wait's select fires first, which the contract allows.
type containerImpl struct {
	cfg Config

	baseCtx context.Context
	cancel  context.CancelFunc

	conns     libatm.MapTyped[uint64, *connState]
	listeners libatm.MapTyped[uint64, *listenerState]

	seq libatm.Value[uint64]

	runnableCh chan uint64
	globalCh   chan event.Event

	stopped       libatm.Value[bool]
	fullyStopped  libatm.Value[bool]
	inactiveFired libatm.Value[bool]

	connCount     libatm.Value[int64]
	listenerCount libatm.Value[int64]
}

func newContainer(cfg Config) (*containerImpl, error) {
	if cfg.ProtocolFactory == nil {
		return nil, ErrorNoProtocolFactory.Error(nil)
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &containerImpl{
		cfg:        cfg,
		baseCtx:    ctx,
		cancel:     cancel,
		conns:      libatm.NewMapTyped[uint64, *connState](),
		listeners:  libatm.NewMapTyped[uint64, *listenerState](),
		runnableCh: make(chan uint64, 256),
		globalCh:   make(chan event.Event, 256),
	}, nil
}

func (c *containerImpl) nextID() uint64 {
	for {
		old := c.seq.Load()
		next := old + 1
		if c.seq.CompareAndSwap(old, next) {
			return next
		}
	}
}

func addInt64(v libatm.Value[int64], delta int64) int64 {
	for {
		old := v.Load()
		next := old + delta
		if v.CompareAndSwap(old, next) {
			return next
		}
	}
}

// enqueueRunnable posts id on runnableCh without blocking the caller even if
// the channel is momentarily full.
func (c *containerImpl) enqueueRunnable(id uint64) {
	select {
	case c.runnableCh <- id:
	default:
		go func() { c.runnableCh <- id }()
	}
}

func (c *containerImpl) pushGlobal(ev event.Event) {
	select {
	case c.globalCh <- ev:
	default:
		go func() { c.globalCh <- ev }()
	}
}

// onEvent is the Handler every engine's transport.Loop is wired to. It never
// calls the application handler itself: delivery happens only through
// Wait/Done so that per-connection exclusivity (no two handler invocations
// for the same connection overlap) holds regardless of how many goroutines
// are driving transports concurrently.
func (c *containerImpl) onEvent(id uint64, ev event.Event) {
	cs, ok := c.conns.Load(id)
	if !ok {
		return
	}
	if cs.push(ev) {
		c.enqueueRunnable(id)
	}
	if ev.Kind == event.TransportClosed {
		cs.markFinal()
	}
}

// forget drops a finalized connection from the registry and re-checks
// inactivity. Only called once a connection's transport-closed event has
// actually been drawn and released by a batch, so the final event itself is
// never lost.
func (c *containerImpl) forget(id uint64) {
	if _, ok := c.conns.Load(id); !ok {
		return
	}
	c.conns.Delete(id)
	addInt64(c.connCount, -1)
	if c.cfg.Hooks.OnConnectionClosed != nil {
		c.cfg.Hooks.OnConnectionClosed(id)
	}
	c.checkInactivity()
}
