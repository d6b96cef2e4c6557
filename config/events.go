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
	"os"

	liberr "github.com/nabbar/golib/errors"
)

// Start runs the before-hook, starts every registered component in
// dependency order, then runs the after-hook. The before hook runs before
// any component is touched; a hook error aborts the sequence immediately.
func (o *model) Start() liberr.Error {
	if e := o.runFuncEvent(fctStartBefore); e != nil {
		return ErrorComponentStart.Error(e)
	}

	if err := o.ComponentStart(); err != nil {
		return err
	}

	if e := o.runFuncEvent(fctStartAfter); e != nil {
		return ErrorComponentStart.Error(e)
	}

	return nil
}

// Reload runs the before-hook, reloads every registered component in
// dependency order, then runs the after-hook.
func (o *model) Reload() liberr.Error {
	if e := o.runFuncEvent(fctReloadBefore); e != nil {
		return ErrorComponentReload.Error(e)
	}

	if err := o.ComponentReload(); err != nil {
		return err
	}

	if e := o.runFuncEvent(fctReloadAfter); e != nil {
		return ErrorComponentReload.Error(e)
	}

	return nil
}

// Stop runs the before-hook, stops every registered component in reverse
// dependency order, then runs the after-hook. Hook errors are swallowed:
// Stop never fails, it is a best-effort cleanup.
func (o *model) Stop() {
	_ = o.runFuncEvent(fctStopBefore)
	o.ComponentStop()
	_ = o.runFuncEvent(fctStopAfter)
}

// Shutdown stops all components, runs every registered cancel function and
// exits the process with the given code.
func (o *model) Shutdown(code int) {
	o.Stop()
	o.cancel()
	os.Exit(code)
}
