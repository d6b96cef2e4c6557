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

package engine

import (
	"fmt"

	liberr "github.com/nabbar/golib/errors"
)

// Error codes for the engine package.
const (
	// ErrorProtocolNil indicates Init was called with no protocol object
	// bound to the engine.
	ErrorProtocolNil liberr.CodeError = iota + liberr.MinPkgEngine

	// ErrorInitFailed indicates the bound protocol object's Init returned
	// an error.
	ErrorInitFailed

	// ErrorReadOverflow indicates ReadDone was called with n greater than
	// the outstanding read buffer's length.
	ErrorReadOverflow

	// ErrorWriteOverflow indicates WriteDone was called with n greater
	// than the outstanding write buffer's length.
	ErrorWriteOverflow

	// ErrorReadClosed indicates ReadDone was called after ReadClose.
	ErrorReadClosed
)

func init() {
	if liberr.ExistInMapMessage(ErrorProtocolNil) {
		panic(fmt.Errorf("error code collision with package engine"))
	}
	liberr.RegisterIdFctMessage(ErrorProtocolNil, getMessage)
}

func getMessage(code liberr.CodeError) (message string) {
	switch code {
	case ErrorProtocolNil:
		return "engine has no protocol object bound"
	case ErrorInitFailed:
		return "protocol object initialization failed"
	case ErrorReadOverflow:
		return "read_done n exceeds outstanding read buffer"
	case ErrorWriteOverflow:
		return "write_done n exceeds outstanding write buffer"
	case ErrorReadClosed:
		return "read_done called after read_close"
	}

	return liberr.NullMessage
}
