// Copyright Inflight.io, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/render"

	"github.com/inflightio/inflight/api/model"
	"github.com/inflightio/inflight/hold"
)

// HoldHandler parks the request goroutine under the key until the paired
// release arrives or the waiter is force-released. Route and node ids may
// be passed as query parameters to position the wait in diagnostics.
func HoldHandler(w http.ResponseWriter, r *http.Request, coordinator *hold.Coordinator) {
	key := chi.URLParam(r, "key")
	routeID := r.URL.Query().Get("route")
	nodeID := r.URL.Query().Get("node")

	outcome, err := coordinator.Hold(r.Context(), key, routeID, nodeID)
	if err != nil {
		switch err {
		case hold.ErrKeyAlreadyHeld:
			renderErrorResponse(w, r, http.StatusConflict, ErrorTypeKeyAlreadyHeld, "a goroutine is already parked for key: %s", key)
		default:
			renderErrorResponse(w, r, http.StatusInternalServerError, ErrorTypeInternalServerError, "hold failed: %s", err)
		}
		return
	}

	resp := model.HoldResponse{
		Key:        outcome.Key,
		ExchangeID: outcome.ExchangeID,
		Outcome:    holdOutcome(outcome.Err),
		DurationMs: outcome.Waited.Milliseconds(),
	}
	if outcome.Err != nil {
		resp.ErrorMessage = outcome.Err.Error()
	}

	render.Status(r, holdStatusCode(outcome.Err))
	render.JSON(w, r, resp)
}
