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

// Condition is the (name, description) error-cause pair carried by either
// a transport (I/O error) or a protocol entity (connection, session, link,
// listener). Both fields are UTF-8 strings; a zero-value Condition (empty
// Name) means "not set".
type Condition struct {
	Name        string
	Description string
}

// IsSet reports whether the condition carries an error cause.
func (c Condition) IsSet() bool {
	return c.Name != ""
}

func (c Condition) String() string {
	if !c.IsSet() {
		return ""
	}
	if c.Description == "" {
		return c.Name
	}
	return c.Name + ": " + c.Description
}

// ConditionAborted is the well-known condition attached to engines closed
// by cancellation.
var ConditionAborted = Condition{Name: "aborted", Description: "operation cancelled by caller"}

// conditionHolder is a small mutex-guarded box used by the engine to expose
// a mutable handle to its transport-condition.
// It is intentionally simpler than the adapted `atomic` registries used
// elsewhere in this module: a single Condition value never needs lock-free
// fan-out, only safe mutation from the adapter thread and safe reads from
// dispatch.
type conditionHolder struct {
	mu   sync.Mutex
	cond Condition
}

func (h *conditionHolder) Get() Condition {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.cond
}

func (h *conditionHolder) Set(c Condition) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.cond = c
}

// ConditionHolder is the mutable handle returned by Engine.Condition().
type ConditionHolder interface {
	Get() Condition
	Set(c Condition)
}

// NewConditionHolder returns an empty ConditionHolder.
func NewConditionHolder() ConditionHolder {
	return &conditionHolder{}
}
