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

import "github.com/nabbar/amqpio/event"

// Stop transitions the container to draining: no further Connect/Listen is
// accepted, every listener is closed, and every engine is aborted directly
// (abrupt close). Final events are still delivered through the normal
// batch path so handlers observe transport-closed for each connection;
// once the last connection finalizes and the last listener closes, a
// container-inactive event is emitted followed by container-stopped, and
// every Wait call after that point returns container-stopped immediately.
func (c *containerImpl) Stop() {
	if !c.stopped.CompareAndSwap(false, true) {
		return
	}

	c.cancel()

	c.listeners.Range(func(_ uint64, ls *listenerState) bool {
		ls.close()
		return true
	})

	c.conns.Range(func(_ uint64, cs *connState) bool {
		cs.eng.Condition().Set(event.ConditionAborted)
		cs.eng.Disconnected()
		return true
	})

	c.checkInactivity()
}

// Stopped reports whether Stop has already been called.
func (c *containerImpl) Stopped() bool {
	return c.stopped.Load()
}

// checkInactivity fires container-inactive the moment the population drops
// to zero, and resets so a later Connect/Listen can trigger it again. If
// the container is already stopped when the population drains, it also
// fires the terminal container-stopped event exactly once.
func (c *containerImpl) checkInactivity() {
	if c.connCount.Load() == 0 && c.listenerCount.Load() == 0 {
		if c.inactiveFired.CompareAndSwap(false, true) {
			c.pushGlobal(event.New(event.ContainerInactive))
			if c.stopped.Load() && c.fullyStopped.CompareAndSwap(false, true) {
				c.pushGlobal(event.New(event.ContainerStopped))
			}
		}
	} else {
		c.inactiveFired.Store(false)
	}
}
