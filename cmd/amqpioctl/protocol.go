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

package main

import "github.com/nabbar/amqpio/event"

// pingProtocol is a placeholder protocol object: the real AMQP wire codec
// is supplied by whatever application links this engine in. It only proves
// out the wiring end to end by turning every inbound byte into a delivery
// event, which is enough to exercise connect/listen/dispatch over a real
// socket without depending on a protocol implementation.
type pingProtocol struct {
	id  uint64
	col *event.Collector
}

func newPingProtocol(id uint64) *pingProtocol {
	return &pingProtocol{id: id, col: event.NewCollector()}
}

func (p *pingProtocol) Init() error {
	return nil
}

func (p *pingProtocol) Feed(b []byte) (int, error) {
	for i := range b {
		p.col.Push(event.New(event.Delivery).WithConnection(p.id).WithDelivery("raw", b[i:i+1], true))
	}
	return len(b), nil
}

func (p *pingProtocol) Produce(buf []byte) int { return 0 }
func (p *pingProtocol) HasOutput() bool        { return false }
func (p *pingProtocol) Events() *event.Collector {
	return p.col
}
func (p *pingProtocol) Close(cond event.Condition) {}
func (p *pingProtocol) Quiesced() bool             { return true }
