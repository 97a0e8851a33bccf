// Copyright Inflight.io, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/inflightio/inflight/api"
	"github.com/inflightio/inflight/await"
	"github.com/inflightio/inflight/hold"
	"github.com/inflightio/inflight/monitor"
)

const shutdownTimeout = 5 * time.Second

// startHTTPServer serves the daemon API until a shutdown signal arrives or
// the listener fails. A listener failure cancels the group context, which
// unblocks the signal wait so the error reaches the caller.
func startHTTPServer(addr string, manager await.Manager, coordinator *hold.Coordinator, mon *monitor.Monitor) error {
	srv := &http.Server{
		Addr:    addr,
		Handler: api.NewHTTPRouter(manager, coordinator),
	}

	errg, ctx := errgroup.WithContext(context.Background())
	errg.Go(func() error {
		log.Infof("Listening on %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	errg.Go(func() error {
		awaitShutdownSignal(ctx)

		if mon != nil {
			mon.Stop()
		}
		// draining the registry first wakes every parked handler, so the
		// server can finish their responses before it closes
		manager.Stop()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return errg.Wait()
}

// Trap SIGINT and SIGTERM signals and begin draining. Returns without a
// signal when ctx is canceled because the listener already failed.
func awaitShutdownSignal(ctx context.Context) {
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sig)

	select {
	case sigReceived := <-sig:
		log.WithField("signal", sigReceived.String()).Info("Received signal")
	case <-ctx.Done():
	}
}
