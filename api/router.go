// Copyright Inflight.io, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package api provides the HTTP surface of inflightd: the hold/release
// rendezvous endpoints and the administrative endpoints for browsing and
// force-releasing parked goroutines.
package api

import (
	"net/http"

	"github.com/go-chi/chi"

	"github.com/inflightio/inflight/await"
	"github.com/inflightio/inflight/hold"
)

// NewHTTPRouter returns the inflightd HTTP router.
func NewHTTPRouter(manager await.Manager, coordinator *hold.Coordinator) *chi.Mux {
	r := chi.NewRouter()
	r.Use(accessLogDecorator)

	r.Get("/ping", func(w http.ResponseWriter, r *http.Request) { PingHandler(w, r) })
	r.Post("/hold/{key}", func(w http.ResponseWriter, r *http.Request) { HoldHandler(w, r, coordinator) })
	r.Post("/release/{key}", func(w http.ResponseWriter, r *http.Request) { ReleaseHandler(w, r, coordinator) })
	r.Get("/admin/inflight", func(w http.ResponseWriter, r *http.Request) { BrowseHandler(w, r, manager) })
	r.Get("/admin/inflight/{exchangeid}", func(w http.ResponseWriter, r *http.Request) { FindWaiterHandler(w, r, manager) })
	r.Post("/admin/inflight/{exchangeid}/interrupt", func(w http.ResponseWriter, r *http.Request) { InterruptHandler(w, r, manager) })
	r.Get("/admin/state", func(w http.ResponseWriter, r *http.Request) { StateHandler(w, r, manager, coordinator) })
	return r
}
