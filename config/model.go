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

package config

import (
	"context"
	"sync"
	"sync/atomic"

	libatm "github.com/nabbar/golib/atomic"
	cfgtps "github.com/nabbar/golib/config/types"
	libctx "github.com/nabbar/golib/context"
)

// registry keys for the function slots stored in model.fct.
const (
	fctVersion uint8 = iota
	fctViper
	fctStartBefore
	fctStartAfter
	fctReloadBefore
	fctReloadAfter
	fctStopBefore
	fctStopAfter
	fctLoggerDef
	fctMonitorPool
)

// FuncEvent is a lifecycle hook called before/after Start, Reload and Stop.
type FuncEvent func() error

// model is the concrete Config implementation. It keeps the component
// registry, the shared application context and the pluggable function
// slots (version, viper, logger, monitor pool, lifecycle hooks) behind a
// single instance shared by every registered component.
type model struct {
	m sync.Mutex

	ctx libctx.Config[string]
	cpt libatm.MapTyped[string, cfgtps.Component]

	seq atomic.Uint64
	cnl libatm.MapTyped[uint64, context.CancelFunc]

	fct libatm.Map[uint8]
}
