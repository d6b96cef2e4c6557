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
	"time"

	"github.com/nabbar/amqpio/event"
)

// Interrupt causes exactly one Wait call to return a container-interrupt
// event carrying token. Safe to call from any goroutine.
func (c *containerImpl) Interrupt(token Token) {
	c.pushGlobal(event.New(event.ContainerInterrupt).WithToken(token))
}

// Schedule emits a container-timer event carrying token no earlier than
// delay after this call returns. The underlying runtime timer heap already
// gives sub-millisecond delay resolution, so no separate timer wheel is
// maintained here.
func (c *containerImpl) Schedule(delay time.Duration, token Token) {
	time.AfterFunc(delay, func() {
		c.pushGlobal(event.New(event.ContainerTimer).WithToken(token))
	})
}

// Inject schedules a container-inject event carrying token, serialized with
// connectionID's other events in call order.
func (c *containerImpl) Inject(connectionID uint64, token Token) {
	cs, ok := c.conns.Load(connectionID)
	if !ok {
		return
	}

	ev := event.New(event.ContainerInject).WithConnection(connectionID).WithToken(token)
	if becameRunnable := cs.push(ev); becameRunnable {
		c.enqueueRunnable(connectionID)
	}
}

// InjectAll calls Inject with token on every currently known connection.
func (c *containerImpl) InjectAll(token Token) {
	c.conns.Range(func(id uint64, _ *connState) bool {
		c.Inject(id, token)
		return true
	})
}
