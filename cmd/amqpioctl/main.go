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

// Command amqpioctl runs a container: it optionally listens for inbound
// connections, optionally dials an outbound one, serves Prometheus metrics
// and a liveness probe over HTTP, and logs every dispatched event.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	liblog "github.com/nabbar/golib/logger"

	"github.com/nabbar/amqpio/admin"
	"github.com/nabbar/amqpio/container"
	"github.com/nabbar/amqpio/engine"
	"github.com/nabbar/amqpio/event"
	"github.com/nabbar/amqpio/metrics"

	prmreg "github.com/prometheus/client_golang/prometheus"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var (
		listenURL  string
		connectURL string
		adminAddr  string
		workers    int
	)

	cmd := &cobra.Command{
		Use:   "amqpioctl",
		Short: "Run an AMQP 1.0 IO-integration container",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), runOptions{
				listenURL:  listenURL,
				connectURL: connectURL,
				adminAddr:  adminAddr,
				workers:    workers,
			})
		},
	}

	cmd.Flags().StringVar(&listenURL, "listen", "", "amqp(s):// URL to accept inbound connections on")
	cmd.Flags().StringVar(&connectURL, "connect", "", "amqp(s):// URL to dial an outbound connection to")
	cmd.Flags().StringVar(&adminAddr, "admin", ":9699", "bind address for the /healthz and /metrics endpoints")
	cmd.Flags().IntVar(&workers, "workers", 4, "number of Serve worker goroutines")

	return cmd
}

type runOptions struct {
	listenURL  string
	connectURL string
	adminAddr  string
	workers    int
}

func run(ctx context.Context, opt runOptions) error {
	log := liblog.New(ctx)

	reg := prmreg.NewRegistry()
	m := metrics.New(reg)

	ctr, err := container.New(container.Config{
		ProtocolFactory: func(id uint64) engine.Protocol { return newPingProtocol(id) },
		Hooks:           m.Hooks(),
		GlobalHandler: func(ev event.Event) {
			log.Info("global event", ev.Kind.String())
		},
	})
	if err != nil {
		return err
	}

	handler := func(ev event.Event) {
		log.Info("connection event", ev.Kind.String())
	}

	if opt.listenURL != "" {
		if err := ctr.Listen(ctx, opt.listenURL, handler, nil); err != nil {
			return err
		}
		log.Info("listening", opt.listenURL)
	}

	if opt.connectURL != "" {
		if _, err := ctr.Connect(ctx, opt.connectURL, handler, nil); err != nil {
			return err
		}
		log.Info("connecting", opt.connectURL)
	}

	adm := admin.New(opt.adminAddr, reg, ctr.Stopped)
	go func() {
		if err := adm.Start(); err != nil {
			log.Error("admin server stopped", err)
		}
	}()

	sigCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() { errCh <- ctr.Serve(sigCtx, opt.workers) }()

	select {
	case <-sigCtx.Done():
	case err := <-errCh:
		if err != nil {
			log.Error("serve stopped", err)
		}
	}

	ctr.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = adm.Shutdown(shutdownCtx)

	return nil
}
