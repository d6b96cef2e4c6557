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
	"crypto/tls"
	"net"

	"github.com/nabbar/amqpio/engine"
	"github.com/nabbar/amqpio/event"
	"github.com/nabbar/amqpio/transport"
)

// Listen creates a listener accepting inbound connections on rawURL.
func (c *containerImpl) Listen(ctx context.Context, rawURL string, handler Handler, token Token) error {
	if c.stopped.Load() {
		return ErrorStopped.Error(nil)
	}

	scheme, addr, host, err := resolveURL(rawURL)
	if err != nil {
		return err
	}

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return ErrorListenFailed.Error(err)
	}
	if scheme == "amqps" {
		ln = tls.NewListener(ln, c.tlsConfig().TLS(host))
	}

	lsID := c.nextID()
	ls := &listenerState{addr: ln.Addr().String(), token: token, close: func() { _ = ln.Close() }}
	c.listeners.Store(lsID, ls)
	addInt64(c.listenerCount, 1)
	if c.cfg.Hooks.OnListenerOpened != nil {
		c.cfg.Hooks.OnListenerOpened(ls.addr)
	}
	c.pushGlobal(event.New(event.ListenerOpen).WithListener(ls.addr))

	acceptCtx := ctx
	if acceptCtx == nil {
		acceptCtx = c.baseCtx
	}

	go c.acceptLoop(acceptCtx, lsID, ln, ls, handler)
	return nil
}

func (c *containerImpl) acceptLoop(ctx context.Context, lsID uint64, ln net.Listener, ls *listenerState, handler Handler) {
	defer func() {
		c.listeners.Delete(lsID)
		addInt64(c.listenerCount, -1)
		if c.cfg.Hooks.OnListenerClosed != nil {
			c.cfg.Hooks.OnListenerClosed(ls.addr)
		}
		c.checkInactivity()
	}()

	for {
		conn, err := ln.Accept()
		if err != nil {
			cond := event.Condition{Name: "listener-error", Description: err.Error()}
			c.pushGlobal(event.New(event.ListenerClose).WithListener(ls.addr).WithCondition(cond))
			return
		}

		id := c.nextID()
		proto := c.cfg.ProtocolFactory(id)
		eng := engine.New(id, proto)
		cs := newConnState(id, eng, handler, ls.token)

		c.conns.Store(id, cs)
		addInt64(c.connCount, 1)
		if c.cfg.Hooks.OnConnectionOpened != nil {
			c.cfg.Hooks.OnConnectionOpened(id)
		}

		if ierr := eng.Init(); ierr != nil {
			_ = conn.Close()
			c.failInit(id, eng, ierr)
			continue
		}

		ev := event.New(event.ListenerAccept).WithConnection(id).WithListener(ls.addr)
		if becameRunnable := cs.push(ev); becameRunnable {
			c.enqueueRunnable(id)
		}

		go func(conn net.Conn, id uint64, eng engine.Engine) {
			loop := transport.New(conn, eng, func(ev event.Event) { c.onEvent(id, ev) })
			_ = loop.Run(ctx)
		}(conn, id, eng)
	}
}

// CloseListener closes every listener created with the given token.
func (c *containerImpl) CloseListener(token Token) {
	var toClose []*listenerState
	c.listeners.Range(func(_ uint64, ls *listenerState) bool {
		if ls.token == token {
			toClose = append(toClose, ls)
		}
		return true
	})
	for _, ls := range toClose {
		ls.close()
	}
}
