/*
 * MIT License
 *
 * Copyright (c) 2020 Nicolas JUHEL
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

package event

import "sync"

// Collector is a single-producer, single-consumer FIFO event queue. A
// protocol object pushes events as it processes incoming bytes; an Engine
// drains them one at a time through Dispatch. It is not
// meant to be shared across goroutines: both sides of an Engine run under
// the single-writer discipline the Container guarantees.
type Collector struct {
	mu   sync.Mutex
	list []Event
}

// NewCollector returns an empty Collector.
func NewCollector() *Collector {
	return &Collector{list: make([]Event, 0, 16)}
}

// Push appends ev to the tail of the queue.
func (c *Collector) Push(ev Event) {
	c.mu.Lock()
	c.list = append(c.list, ev)
	c.mu.Unlock()
}

// Pop removes and returns the event at the head of the queue. The second
// return value is false if the queue is empty, mirroring
// pn_connection_engine_dispatch's "returns NULL when there is nothing left"
// contract.
func (c *Collector) Pop() (Event, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.list) == 0 {
		return Event{}, false
	}

	ev := c.list[0]
	c.list[0] = Event{}
	c.list = c.list[1:]
	return ev, true
}

// Len reports the number of events currently queued.
func (c *Collector) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.list)
}

// Peek returns the head event without removing it.
func (c *Collector) Peek() (Event, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.list) == 0 {
		return Event{}, false
	}
	return c.list[0], true
}
