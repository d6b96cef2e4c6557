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

// Package event defines the typed event taxonomy delivered from a Connection
// Engine (and from the Container itself) to application handlers.
//
// Events are immutable tagged records: a Kind plus typed accessors for the
// subject the event pertains to (connection, session, link, delivery,
// listener). An Event is only valid until the next call to Engine.Dispatch
// on the same engine, mirroring the proton connection_engine contract this
// package is modeled on.
package event

// Kind identifies the transition an Event describes. The numeric values are
// stable within a process but are not a wire format; do not persist them.
type Kind uint8

const (
	// KindUnknown is the zero value; no Event should carry it.
	KindUnknown Kind = iota

	// Connection lifecycle.
	ConnectionInit
	ConnectionBound
	ConnectionRemoteOpen
	ConnectionRemoteClose
	ConnectionWake
	TransportClosed

	// Session/link.
	SessionRemoteOpen
	SessionRemoteClose
	LinkRemoteOpen
	LinkRemoteClose
	LinkRemoteDetach
	LinkFlow

	// Data.
	Delivery

	// Container.
	ListenerOpen
	ListenerAccept
	ListenerClose
	ContainerTimer
	ContainerInterrupt
	ContainerInject
	ContainerInactive
	ContainerStopped

	// ContainerTimeout is delivered by Container.Wait when its timeout
	// elapses with no runnable batch and no global event pending. Distinct
	// from ContainerTimer, which is the result of a scheduled
	// Container.Schedule call.
	ContainerTimeout
)

var kindNames = map[Kind]string{
	KindUnknown:           "unknown",
	ConnectionInit:        "connection-init",
	ConnectionBound:       "connection-bound",
	ConnectionRemoteOpen:  "connection-remote-open",
	ConnectionRemoteClose: "connection-remote-close",
	ConnectionWake:        "connection-wake",
	TransportClosed:       "transport-closed",
	SessionRemoteOpen:     "session-remote-open",
	SessionRemoteClose:    "session-remote-close",
	LinkRemoteOpen:        "link-remote-open",
	LinkRemoteClose:       "link-remote-close",
	LinkRemoteDetach:      "link-remote-detach",
	LinkFlow:              "link-flow",
	Delivery:              "delivery",
	ListenerOpen:          "listener-open",
	ListenerAccept:        "listener-accept",
	ListenerClose:         "listener-close",
	ContainerTimer:        "container-timer",
	ContainerInterrupt:    "container-interrupt",
	ContainerInject:       "container-inject",
	ContainerInactive:     "container-inactive",
	ContainerStopped:      "container-stopped",
	ContainerTimeout:      "container-timeout",
}

// String implements fmt.Stringer, used by the logger's field formatting.
func (k Kind) String() string {
	if n, ok := kindNames[k]; ok {
		return n
	}
	return "unknown"
}

// IsConnectionScoped reports whether events of this Kind belong to exactly
// one connection's serialization domain, for per-connection batch
// scheduling. Container-global kinds (timer, interrupt, inactive, stopped)
// are not.
func (k Kind) IsConnectionScoped() bool {
	switch k {
	case ContainerTimer, ContainerInterrupt, ContainerInactive, ContainerStopped, ContainerTimeout:
		return false
	default:
		return true
	}
}
