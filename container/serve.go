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
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/nabbar/amqpio/event"
)

const serveWaitTimeout = 250 * time.Millisecond

// Serve runs workers worker goroutines, each pumping Wait/handler/Done
// until ctx is cancelled or a container-stopped batch is observed. A short
// Wait timeout is used instead of an indefinite one purely so each worker
// notices ctx cancellation promptly; it has no effect on event delivery
// ordering.
func (c *containerImpl) Serve(ctx context.Context, workers int) error {
	if workers < 1 {
		workers = 1
	}

	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < workers; i++ {
		g.Go(func() error {
			return c.serveWorker(gctx)
		})
	}
	return g.Wait()
}

func (c *containerImpl) serveWorker(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		b, err := c.Wait(serveWaitTimeout)
		if err != nil {
			return err
		}

		stop := c.dispatchBatch(b)
		c.Done(b)
		if stop {
			return nil
		}
	}
}

// dispatchBatch runs the appropriate handler over every event in b and
// reports whether a container-stopped event was observed.
func (c *containerImpl) dispatchBatch(b Batch) (stopped bool) {
	connID, isConn := b.ConnectionID()

	var h Handler
	if isConn {
		if cs, ok := c.conns.Load(connID); ok {
			h = cs.handler
		}
	} else {
		h = c.cfg.GlobalHandler
	}

	for _, ev := range b.Events() {
		if h != nil {
			h(ev)
		}
		if ev.Kind == event.ContainerStopped {
			stopped = true
		}
	}
	return stopped
}
