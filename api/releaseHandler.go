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

// ReleaseHandler wakes the goroutine parked under the key.
func ReleaseHandler(w http.ResponseWriter, r *http.Request, coordinator *hold.Coordinator) {
	key := chi.URLParam(r, "key")

	if err := coordinator.Release(key); err != nil {
		renderErrorResponse(w, r, http.StatusNotFound, ErrorTypeKeyNotHeld, "no goroutine is parked for key: %s", key)
		return
	}

	render.JSON(w, r, model.StatusResponse{Status: "released"})
}
