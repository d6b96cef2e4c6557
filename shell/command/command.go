/*
 * MIT License
 *
 * Copyright (c) 2024 Nicolas JUHEL
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

package command

import "io"

// FuncRun is the body executed by a Command. Output goes to out, errors to
// errs; args are the remaining command-line tokens after the command name.
type FuncRun func(out io.Writer, errs io.Writer, args []string)

// CommandInfo is the name/description pair advertised by a command without
// requiring its (possibly heavier) runnable form.
type CommandInfo interface {
	Name() string
	Describe() string
}

// Command is a named, runnable shell action exposed by a component or by the
// container runtime (list/connect/listen/inject... style operations).
type Command interface {
	CommandInfo
	Run(out io.Writer, errs io.Writer, args []string)
}

type info struct {
	name string
	desc string
}

func (i *info) Name() string     { return i.name }
func (i *info) Describe() string { return i.desc }

// Info returns the name/description pair for a command, without binding it
// to a runnable function.
func Info(name, desc string) CommandInfo {
	return &info{name: name, desc: desc}
}

type cmd struct {
	info
	fn FuncRun
}

func (c *cmd) Run(out io.Writer, errs io.Writer, args []string) {
	if c.fn == nil {
		return
	}
	c.fn(out, errs, args)
}

// New builds a Command with the given name, description and body. fn may be
// nil, in which case Run is a no-op.
func New(name, desc string, fn FuncRun) Command {
	return &cmd{info: info{name: name, desc: desc}, fn: fn}
}
