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

type batchImpl struct {
	global bool
	connID uint64
	events []event.Event
	cs     *connState
}

func (b *batchImpl) ConnectionID() (uint64, bool) {
	if b.global {
		return 0, false
	}
	return b.connID, true
}

func (b *batchImpl) Events() []event.Event {
	return b.events
}

func globalBatch(ev event.Event) Batch {
	return &batchImpl{global: true, events: []event.Event{ev}}
}

// Wait blocks until a connection batch becomes runnable, a container-global
// event is pending, or timeout elapses. A negative timeout waits forever.
func (c *containerImpl) Wait(timeout time.Duration) (Batch, error) {
	if c.fullyStopped.Load() {
		return globalBatch(event.New(event.ContainerStopped)), nil
	}

	var timeoutCh <-chan time.Time
	if timeout >= 0 {
		t := time.NewTimer(timeout)
		defer t.Stop()
		timeoutCh = t.C
	}

	for {
		select {
		case ev := <-c.globalCh:
			if c.cfg.Hooks.OnBatchDispatched != nil {
				c.cfg.Hooks.OnBatchDispatched()
			}
			return globalBatch(ev), nil

		case id := <-c.runnableCh:
			cs, ok := c.conns.Load(id)
			if !ok {
				continue
			}
			evs := cs.draw()
			if len(evs) == 0 {
				continue
			}
			if c.cfg.Hooks.OnBatchDispatched != nil {
				c.cfg.Hooks.OnBatchDispatched()
			}
			return &batchImpl{connID: id, events: evs, cs: cs}, nil

		case <-timeoutCh:
			return globalBatch(event.New(event.ContainerTimeout)), nil
		}
	}
}

// Done releases the exclusivity a batch held. If more events accumulated on
// the connection while its batch was outstanding, the connection is
// immediately re-marked runnable; if the connection reached its final
// transport-closed event with nothing left pending, it is retired from the
// registry.
func (c *containerImpl) Done(b Batch) {
	bi, ok := b.(*batchImpl)
	if !ok || bi.global {
		return
	}

	if becameRunnable := bi.cs.release(); becameRunnable {
		c.enqueueRunnable(bi.cs.id)
		return
	}

	if bi.cs.isFinal() {
		c.forget(bi.cs.id)
	}
}
