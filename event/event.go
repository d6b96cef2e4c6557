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

// Subject identifies which entity of the protocol object an Event pertains
// to. At most one of the fields below is meaningful for a given Kind; the
// zero value of a field (empty string, 0 handle) means "not applicable".
type Subject struct {
	// ConnectionID is the Container-assigned identity of the owning
	// connection. Set for every connection-scoped event.
	ConnectionID uint64

	// Channel is the AMQP channel number identifying a session. Only
	// meaningful for SessionRemoteOpen/SessionRemoteClose and any link or
	// delivery event (which are always session-scoped).
	Channel uint16

	// Handle is the link handle within its session. Only meaningful for
	// link and delivery events.
	Handle uint32

	// LinkName is the symbolic link name carried by attach/detach.
	LinkName string

	// DeliveryTag identifies a delivery within its link.
	DeliveryTag string

	// ListenerAddr is the bound address of a listener. Only meaningful for
	// Listener* kinds.
	ListenerAddr string
}

// Event is an immutable tagged record identifying a single protocol
// transition. It is only valid until the next call to
// Engine.Dispatch on the same engine: do not retain a pointer to one, copy
// the fields you need instead.
type Event struct {
	Kind      Kind
	Subject   Subject
	Condition Condition

	// Credit is the new link credit, only meaningful for LinkFlow.
	Credit uint32

	// Payload is the delivery body bytes, only meaningful for Delivery.
	// Nil for every other Kind.
	Payload []byte

	// Settled reports whether the delivery carrying Payload has already
	// reached a terminal disposition (accepted/rejected/released).
	Settled bool

	// Token carries the caller-supplied correlation value passed to
	// Container.Schedule/Interrupt/Inject; nil for every Kind that is not
	// container-scoped.
	Token any
}

// New builds an Event of the given Kind with no subject set. Callers
// typically follow up with WithConnection/WithSession/... before handing
// the Event to a collector.
func New(k Kind) Event {
	return Event{Kind: k}
}

// WithConnection returns a copy of e scoped to the given connection identity.
func (e Event) WithConnection(id uint64) Event {
	e.Subject.ConnectionID = id
	return e
}

// WithSession returns a copy of e scoped to the given channel within its
// already-set connection.
func (e Event) WithSession(channel uint16) Event {
	e.Subject.Channel = channel
	return e
}

// WithLink returns a copy of e scoped to the given link handle/name within
// its already-set session.
func (e Event) WithLink(handle uint32, name string) Event {
	e.Subject.Handle = handle
	e.Subject.LinkName = name
	return e
}

// WithDelivery returns a copy of e scoped to the given delivery tag, with
// the settled flag and payload attached.
func (e Event) WithDelivery(tag string, payload []byte, settled bool) Event {
	e.Subject.DeliveryTag = tag
	e.Payload = payload
	e.Settled = settled
	return e
}

// WithCondition returns a copy of e carrying the given error condition.
func (e Event) WithCondition(c Condition) Event {
	e.Condition = c
	return e
}

// WithListener returns a copy of e scoped to the given listener address.
func (e Event) WithListener(addr string) Event {
	e.Subject.ListenerAddr = addr
	return e
}

// WithToken returns a copy of e carrying the given correlation token.
func (e Event) WithToken(t any) Event {
	e.Token = t
	return e
}
