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

// Package transport implements the Transport Adapter: the
// driver loop that binds a net.Conn to a Connection Engine, alternating
// between filling/draining the engine's buffers and pumping its event
// queue, and converting cancellation or I/O failure into the engine's
// disconnected() call.
package transport

import (
	"context"
	"crypto/tls"
	"net"
	"strings"

	libcrt "github.com/nabbar/golib/certificates"

	"github.com/nabbar/amqpio/engine"
	"github.com/nabbar/amqpio/event"
)

// HandlerFunc receives every event an engine dispatches, in order. A Loop
// never interprets events itself: it only exists to keep the engine's
// buffers filled and drained. Whatever consumes HandlerFunc (a direct
// application callback, or — as the Container uses it — an internal
// batch-scheduling hook) is responsible for the per-connection
// serialization the rest of the system assumes.
type HandlerFunc func(ev event.Event)

// Loop drives exactly one Engine over exactly one net.Conn. A Loop is not
// safe for concurrent use: Run must only ever be called once.
type Loop struct {
	conn    net.Conn
	eng     engine.Engine
	handler HandlerFunc
}

// New returns a Loop ready to drive eng over conn. handler may be nil, in
// which case dispatched events are discarded (still useful to drain an
// engine down to Finished()).
func New(conn net.Conn, eng engine.Engine, handler HandlerFunc) *Loop {
	return &Loop{conn: conn, eng: eng, handler: handler}
}

type ioResult struct {
	n   int
	err error
}

// Run executes the canonical driver loop until the engine
// reports Finished, or ctx is cancelled — in which case the engine is
// aborted and the loop still runs to completion so the transport-closed
// event reaches handler before Run returns. The underlying net.Conn is
// always closed before Run returns.
func (l *Loop) Run(ctx context.Context) error {
	defer l.conn.Close()

	readCh := make(chan ioResult, 1)
	writeCh := make(chan ioResult, 1)

	var readInFlight, writeInFlight bool

	pump := func() {
		for {
			ev, ok := l.eng.Dispatch()
			if !ok {
				return
			}
			if l.handler != nil {
				l.handler(ev)
			}
		}
	}

	startRead := func() {
		if readInFlight {
			return
		}
		buf := l.eng.ReadBuffer()
		if len(buf) == 0 {
			return
		}
		readInFlight = true
		go func() {
			n, err := l.conn.Read(buf)
			readCh <- ioResult{n: n, err: err}
		}()
	}

	startWrite := func() {
		if writeInFlight {
			return
		}
		buf := l.eng.WriteBuffer()
		if len(buf) == 0 {
			return
		}
		writeInFlight = true
		go func() {
			n, err := l.conn.Write(buf)
			writeCh <- ioResult{n: n, err: err}
		}()
	}

	abort := func() {
		l.eng.Condition().Set(event.ConditionAborted)
		l.eng.Disconnected()
	}

	pump()

	for !l.eng.Finished() {
		startWrite()
		startRead()

		select {
		case <-ctx.Done():
			abort()
		case r := <-writeCh:
			writeInFlight = false
			if r.err != nil {
				l.eng.Condition().Set(event.Condition{Name: "io-error", Description: r.err.Error()})
				l.eng.Disconnected()
			} else {
				_ = l.eng.WriteDone(r.n)
			}
		case r := <-readCh:
			readInFlight = false
			switch {
			case r.err != nil:
				l.eng.Condition().Set(event.Condition{Name: "io-error", Description: r.err.Error()})
				l.eng.Disconnected()
			case r.n > 0:
				_ = l.eng.ReadDone(r.n)
			default:
				l.eng.ReadClose()
			}
		}

		pump()
	}

	return nil
}

// Dial opens network, either plain (scheme "amqp") or TLS-wrapped (scheme
// "amqps") using tlsCfg, and returns the resulting net.Conn ready to be
// handed to New. serverName is used for the TLS handshake's SNI / hostname
// verification; it is ignored for plain connections.
func Dial(ctx context.Context, scheme, network, addr string, tlsCfg libcrt.TLSConfig, serverName string) (net.Conn, error) {
	var d net.Dialer

	conn, err := d.DialContext(ctx, network, addr)
	if err != nil {
		return nil, ErrorDialFailed.Error(err)
	}

	switch strings.ToLower(scheme) {
	case "amqp", "":
		return conn, nil
	case "amqps":
		if tlsCfg == nil {
			tlsCfg = libcrt.New()
		}
		tc := tls.Client(conn, tlsCfg.TLS(serverName))
		if err = tc.HandshakeContext(ctx); err != nil {
			_ = conn.Close()
			return nil, ErrorDialFailed.Error(err)
		}
		return tc, nil
	default:
		_ = conn.Close()
		return nil, ErrorUnknownScheme.Error(nil)
	}
}
