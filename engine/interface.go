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

// Package engine implements the Connection Engine: a non-blocking,
// bytes-in/bytes-out state machine that couples a byte stream to a protocol
// object via zero-copy buffer handoff and an event pump. It defines the
// contract that lets any I/O implementation drive AMQP without knowing the
// protocol.
package engine

import (
	liberr "github.com/nabbar/golib/errors"

	"github.com/nabbar/amqpio/event"
)

// DefaultBufferSize is the chunk size used for both the read and write
// scratch buffers when a Protocol implementation does not impose its own.
const DefaultBufferSize = 4096

// Protocol is the contract the engine requires from the external protocol
// object (out of scope for this package: AMQP wire codec, SASL, link/session/
// delivery bookkeeping). The engine never interprets AMQP itself; it only
// shuttles bytes through Feed/Produce and drains whatever the protocol
// object pushed onto its Collector.
//
// Implementations are provided by collaborators outside this module; the
// engine package ships none beyond what its own tests need to exercise the
// pump cycle.
type Protocol interface {
	// Init prepares the protocol object for use. Called at most once per
	// engine, before any Feed/Produce call.
	Init() error

	// Feed advances the decoder with n bytes of input already copied into
	// the protocol object's own scratch space (the engine hands it p,
	// which is a view into the engine's read buffer valid only for the
	// duration of the call). Events produced as a side effect are pushed
	// onto Events().
	Feed(p []byte) (n int, err error)

	// Produce fills buf with as many encoder-ready output bytes as fit,
	// returning the count written. Called whenever the engine's write
	// buffer is empty and needs refilling.
	Produce(buf []byte) (n int)

	// HasOutput reports whether Produce would currently write anything,
	// without requiring a full Produce call against a throwaway buffer.
	HasOutput() bool

	// Events returns the collector events are pushed onto and drained
	// from. The engine never allocates its own collector: ownership
	// stays with the protocol object, matching the source's connection
	// ↔ collector aggregate.
	Events() *event.Collector

	// Close notifies the protocol object that the transport is gone. cond
	// is the transport-condition already observed by the engine, zero
	// valued if none was set.
	Close(cond event.Condition)

	// Quiesced reports whether the protocol object has no more internal
	// work pending (no partial frames awaiting completion, no deferred
	// settlements) and can safely be considered final once read/write/
	// disconnected are all true.
	Quiesced() bool
}

// State names the engine-level lifecycle stage ("State
// machine"): Open -> ReadClosed/WriteClosed -> Disconnected -> Final.
type State uint8

const (
	StateOpen State = iota
	StateReadClosed
	StateWriteClosed
	StateDisconnected
	StateFinal
)

func (s State) String() string {
	switch s {
	case StateOpen:
		return "open"
	case StateReadClosed:
		return "read-closed"
	case StateWriteClosed:
		return "write-closed"
	case StateDisconnected:
		return "disconnected"
	case StateFinal:
		return "final"
	default:
		return "unknown"
	}
}

// Engine is the Connection Engine contract. All operations
// are synchronous and non-blocking; none may be called concurrently with
// another on the same Engine — the caller (a Transport Adapter) enforces at
// most one outstanding read and one outstanding write.
type Engine interface {
	// ID is the opaque connection identity the owning Container assigned.
	ID() uint64

	// Init initializes protocol state. Idempotent: calling it again after
	// a successful call is a no-op.
	Init() error

	// ReadBuffer returns the region to fill. A zero-length result means
	// the engine cannot accept input until Dispatch is run (or it is
	// read-closed/disconnected).
	ReadBuffer() []byte

	// ReadDone advances the decoder by n bytes actually read. n == 0 is
	// legal. Errors are never returned out of band past the precondition
	// check: protocol decode errors are converted into a transport-closed
	// event via the same path as I/O errors ("Error
	// policy").
	ReadDone(n int) liberr.Error

	// ReadClose signals EOF on input. Idempotent.
	ReadClose()

	// WriteBuffer returns the region to drain. A zero-length result means
	// nothing to write right now.
	WriteBuffer() []byte

	// WriteDone advances the encoder cursor by n bytes actually written.
	WriteDone(n int) liberr.Error

	// WriteClose signals no more output can be sent. Idempotent.
	WriteClose()

	// Disconnected closes both directions; any transport-condition set
	// beforehand is attached as the transport-closed event's cause.
	// Idempotent.
	Disconnected()

	// Dispatch returns the next event, or ok == false when none remain.
	// The returned Event's ownership is the engine's: it is only valid
	// until the next Dispatch call.
	Dispatch() (event.Event, bool)

	// Finished reports true iff read-closed AND write-closed AND no more
	// events AND the protocol object is quiesced. Monotonic.
	Finished() bool

	// Condition returns the mutable handle to the engine's
	// transport-condition.
	Condition() event.ConditionHolder

	// State reports the current engine-level lifecycle stage.
	State() State
}

// New returns an Engine bound to the given connection identity and protocol
// object. The protocol object is not initialized until Init is called.
func New(id uint64, proto Protocol) Engine {
	return &engineImpl{
		id:    id,
		proto: proto,
		cond:  event.NewConditionHolder(),
	}
}
