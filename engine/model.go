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

package engine

import (
	"sync"

	liberr "github.com/nabbar/golib/errors"

	"github.com/nabbar/amqpio/event"
)

// engineImpl is the reference Engine implementation. Every exported method
// takes the instance lock: the type is safe to call from whichever single
// goroutine a Transport Adapter dedicates to this connection, but (per
// contract) never from two goroutines concurrently.
type engineImpl struct {
	mu sync.Mutex

	id    uint64
	proto Protocol
	cond  event.ConditionHolder

	initialized bool

	rbuf    []byte
	rClosed bool

	wpending []byte
	wClosed  bool

	disconnected bool
}

func (e *engineImpl) ID() uint64 {
	return e.id
}

func (e *engineImpl) Init() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.initialized {
		return nil
	}
	if e.proto == nil {
		return ErrorProtocolNil.Error(nil)
	}
	if err := e.proto.Init(); err != nil {
		return ErrorInitFailed.Error(err)
	}

	e.initialized = true
	e.rbuf = make([]byte, DefaultBufferSize)
	return nil
}

func (e *engineImpl) ReadBuffer() []byte {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.rClosed || e.disconnected {
		return nil
	}
	return e.rbuf
}

func (e *engineImpl) ReadDone(n int) liberr.Error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.rClosed {
		return ErrorReadClosed.Error(nil)
	}
	if n < 0 || n > len(e.rbuf) {
		return ErrorReadOverflow.Error(nil)
	}

	if n > 0 {
		if _, err := e.proto.Feed(e.rbuf[:n]); err != nil {
			e.cond.Set(event.Condition{Name: "protocol-error", Description: err.Error()})
			e.disconnectLocked()
		}
	}

	return nil
}

func (e *engineImpl) ReadClose() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.rClosed = true
}

func (e *engineImpl) WriteBuffer() []byte {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.wClosed {
		return nil
	}

	if len(e.wpending) == 0 && e.proto != nil && e.proto.HasOutput() {
		buf := make([]byte, DefaultBufferSize)
		n := e.proto.Produce(buf)
		e.wpending = buf[:n]
	}

	return e.wpending
}

func (e *engineImpl) WriteDone(n int) liberr.Error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if n < 0 || n > len(e.wpending) {
		return ErrorWriteOverflow.Error(nil)
	}

	e.wpending = e.wpending[n:]
	return nil
}

func (e *engineImpl) WriteClose() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.wClosed = true
	e.wpending = nil
}

func (e *engineImpl) Disconnected() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.disconnectLocked()
}

// disconnectLocked is idempotent ("disconnected is idempotent;
// finished is reachable only through it"). Must be called with e.mu held.
func (e *engineImpl) disconnectLocked() {
	if e.disconnected {
		return
	}

	e.disconnected = true
	e.rClosed = true
	e.wClosed = true
	e.wpending = nil

	cond := e.cond.Get()
	if e.proto != nil {
		e.proto.Close(cond)

		ev := event.New(event.TransportClosed).WithConnection(e.id)
		if cond.IsSet() {
			ev = ev.WithCondition(cond)
		}
		e.proto.Events().Push(ev)
	}
}

func (e *engineImpl) Dispatch() (event.Event, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.proto == nil {
		return event.Event{}, false
	}
	return e.proto.Events().Pop()
}

func (e *engineImpl) Finished() bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !(e.rClosed && e.wClosed && e.disconnected) {
		return false
	}
	if e.proto == nil {
		return true
	}
	return e.proto.Events().Len() == 0 && e.proto.Quiesced()
}

func (e *engineImpl) Condition() event.ConditionHolder {
	return e.cond
}

func (e *engineImpl) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()

	finished := e.disconnected && e.rClosed && e.wClosed &&
		(e.proto == nil || (e.proto.Events().Len() == 0 && e.proto.Quiesced()))

	switch {
	case finished:
		return StateFinal
	case e.disconnected:
		return StateDisconnected
	case e.rClosed && e.wClosed:
		return StateDisconnected
	case e.wClosed:
		return StateWriteClosed
	case e.rClosed:
		return StateReadClosed
	default:
		return StateOpen
	}
}
