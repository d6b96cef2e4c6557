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

// Package admin exposes a tiny gin-routed HTTP surface for operating an
// amqpio process: a liveness probe and the Prometheus scrape endpoint.
package admin

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server wraps a gin.Engine bound to one *http.Server.
type Server struct {
	engine *gin.Engine
	http   *http.Server
}

// New builds a Server listening on addr, exposing GET /healthz and
// GET /metrics. gatherer is typically a prometheus.Registry also passed to
// metrics.New; if nil, the default global registry is scraped instead.
// stopped, if non-nil, is polled on every /healthz request and reports
// unhealthy (503) once the container it observes has stopped; if nil,
// /healthz always reports healthy.
func New(addr string, gatherer prometheus.Gatherer, stopped func() bool) *Server {
	gin.SetMode(gin.ReleaseMode)
	e := gin.New()
	e.Use(gin.Recovery())

	e.GET("/healthz", func(c *gin.Context) {
		if stopped != nil && stopped() {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "stopped"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	handlerOpts := promhttp.HandlerOpts{}
	var h http.Handler
	if gatherer != nil {
		h = promhttp.HandlerFor(gatherer, handlerOpts)
	} else {
		h = promhttp.Handler()
	}
	e.GET("/metrics", gin.WrapH(h))

	return &Server{
		engine: e,
		http:   &http.Server{Addr: addr, Handler: e},
	}
}

// Start runs the HTTP server; it blocks until Shutdown is called or the
// listener fails, mirroring net/http.Server.ListenAndServe's contract.
func (s *Server) Start() error {
	err := s.http.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// Shutdown gracefully stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}
