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

// Package metrics exposes the Prometheus instrumentation for a running
// container: connection/listener population gauges and an event-dispatch
// counter, wired to container.Hooks rather than requiring the container
// itself to import a reporting library.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/nabbar/amqpio/container"
)

// Metrics is a small Prometheus collector bundle for one container
// instance. The zero value is not usable; build one with New.
type Metrics struct {
	ConnectionsActive prometheus.Gauge
	ListenersActive   prometheus.Gauge
	BatchesDispatched prometheus.Counter
	ConnectionsTotal  prometheus.Counter
}

// New builds a Metrics bundle and, if reg is non-nil, registers every
// collector with it.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		ConnectionsActive: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "amqpio_connections_active",
			Help: "Number of connections currently owned by the container.",
		}),
		ListenersActive: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "amqpio_listeners_active",
			Help: "Number of listening sockets currently owned by the container.",
		}),
		BatchesDispatched: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "amqpio_batches_dispatched_total",
			Help: "Total number of event batches handed out by Wait.",
		}),
		ConnectionsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "amqpio_connections_total",
			Help: "Total number of connections ever opened by the container.",
		}),
	}

	if reg != nil {
		reg.MustRegister(
			m.ConnectionsActive,
			m.ListenersActive,
			m.BatchesDispatched,
			m.ConnectionsTotal,
		)
	}

	return m
}

// Hooks returns a container.Hooks value wired to update m as the
// container's population changes. Pass the result as Config.Hooks when
// constructing the container.
func (m *Metrics) Hooks() container.Hooks {
	return container.Hooks{
		OnConnectionOpened: func(uint64) {
			m.ConnectionsActive.Inc()
			m.ConnectionsTotal.Inc()
		},
		OnConnectionClosed: func(uint64) {
			m.ConnectionsActive.Dec()
		},
		OnListenerOpened: func(string) {
			m.ListenersActive.Inc()
		},
		OnListenerClosed: func(string) {
			m.ListenersActive.Dec()
		},
		OnBatchDispatched: func() {
			m.BatchesDispatched.Inc()
		},
	}
}
