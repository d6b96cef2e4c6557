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
	"net"
	"net/url"
	"strings"

	libcrt "github.com/nabbar/golib/certificates"

	"github.com/nabbar/amqpio/engine"
	"github.com/nabbar/amqpio/event"
	"github.com/nabbar/amqpio/transport"
)

// resolveURL splits a connection/listen URL into the pieces Dial/Listen
// need. Only amqp/amqps are supported; an empty scheme defaults to amqp,
// and an empty port defaults to 5672.
func resolveURL(raw string) (scheme, addr, host string, err error) {
	u, perr := url.Parse(raw)
	if perr != nil {
		return "", "", "", ErrorInvalidURL.Error(perr)
	}

	scheme = strings.ToLower(u.Scheme)
	switch scheme {
	case "":
		scheme = "amqp"
	case "amqp", "amqps":
	default:
		return "", "", "", ErrorInvalidURL.Error(nil)
	}

	host = u.Hostname()
	if host == "" {
		return "", "", "", ErrorInvalidURL.Error(nil)
	}

	port := u.Port()
	if port == "" {
		port = "5672"
	}

	return scheme, net.JoinHostPort(host, port), host, nil
}

func (c *containerImpl) tlsConfig() libcrt.TLSConfig {
	if c.cfg.TLS != nil {
		return c.cfg.TLS
	}
	return libcrt.New()
}

// drainEngine pulls every event an engine still has queued and routes it
// through onEvent. Used on paths where no transport.Loop is running to pump
// the engine itself (protocol init failure, dial failure before Loop
// starts): the caller disconnected the engine directly, so nothing else
// would ever drain its final transport-closed event.
func (c *containerImpl) drainEngine(id uint64, eng engine.Engine) {
	for {
		ev, ok := eng.Dispatch()
		if !ok {
			return
		}
		c.onEvent(id, ev)
	}
}

func (c *containerImpl) failInit(id uint64, eng engine.Engine, cause error) {
	eng.Condition().Set(event.Condition{Name: "init-error", Description: cause.Error()})
	eng.Disconnected()
	c.drainEngine(id, eng)
}

// Connect begins an outbound connection. It never blocks: name resolution
// and dialing happen on a background goroutine, and every outcome —
// success or failure — surfaces as events on the returned connection's
// batches, starting with connection-init.
func (c *containerImpl) Connect(ctx context.Context, rawURL string, handler Handler, token Token) (uint64, error) {
	if c.stopped.Load() {
		return 0, ErrorStopped.Error(nil)
	}

	scheme, addr, host, err := resolveURL(rawURL)
	if err != nil {
		return 0, err
	}

	id := c.nextID()
	proto := c.cfg.ProtocolFactory(id)
	eng := engine.New(id, proto)
	cs := newConnState(id, eng, handler, token)

	c.conns.Store(id, cs)
	addInt64(c.connCount, 1)
	if c.cfg.Hooks.OnConnectionOpened != nil {
		c.cfg.Hooks.OnConnectionOpened(id)
	}

	if err := eng.Init(); err != nil {
		c.failInit(id, eng, err)
		return id, nil
	}

	if becameRunnable := cs.push(event.New(event.ConnectionInit).WithConnection(id)); becameRunnable {
		c.enqueueRunnable(id)
	}

	dialCtx := ctx
	if dialCtx == nil {
		dialCtx = c.baseCtx
	}
	dialCtx, cancel := context.WithCancel(dialCtx)

	go func() {
		defer cancel()

		conn, derr := transport.Dial(dialCtx, scheme, "tcp", addr, c.tlsConfig(), host)
		if derr != nil {
			eng.Condition().Set(event.Condition{Name: "io-error", Description: derr.Error()})
			eng.Disconnected()
			c.drainEngine(id, eng)
			return
		}

		loop := transport.New(conn, eng, func(ev event.Event) { c.onEvent(id, ev) })
		_ = loop.Run(dialCtx)
	}()

	return id, nil
}
