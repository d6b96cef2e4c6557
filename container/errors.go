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
	"fmt"

	liberr "github.com/nabbar/golib/errors"
)

// Error codes for the container package.
const (
	// ErrorStopped indicates an operation was rejected because Stop has
	// already been called.
	ErrorStopped liberr.CodeError = iota + liberr.MinPkgContainer

	// ErrorInvalidURL indicates a connect/listen URL could not be parsed or
	// used no supported scheme.
	ErrorInvalidURL

	// ErrorNoProtocolFactory indicates New was called without a
	// ProtocolFactory, so no connection could ever be driven.
	ErrorNoProtocolFactory

	// ErrorListenFailed indicates the listening socket could not be bound.
	ErrorListenFailed

	// ErrorUnknownBatch indicates Done was called with a batch this
	// container never produced via Wait.
	ErrorUnknownBatch
)

func init() {
	if liberr.ExistInMapMessage(ErrorStopped) {
		panic(fmt.Errorf("error code collision with package container"))
	}
	liberr.RegisterIdFctMessage(ErrorStopped, getMessage)
}

func getMessage(code liberr.CodeError) (message string) {
	switch code {
	case ErrorStopped:
		return "container has been stopped"
	case ErrorInvalidURL:
		return "invalid or unsupported connection URL"
	case ErrorNoProtocolFactory:
		return "no protocol factory configured"
	case ErrorListenFailed:
		return "failed to bind listening socket"
	case ErrorUnknownBatch:
		return "batch does not belong to this container"
	}

	return liberr.NullMessage
}
