// Copyright Inflight.io, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/render"

	"github.com/inflightio/inflight/api/model"
	"github.com/inflightio/inflight/await"
)

// InterruptHandler force-releases the goroutine parked on the exchange.
// The interrupt is accepted whether or not the exchange is still parked;
// releasing an exchange that completed in the meantime is a no-op.
func InterruptHandler(w http.ResponseWriter, r *http.Request, manager await.Manager) {
	exchangeID := chi.URLParam(r, "exchangeid")

	manager.InterruptByExchangeID(exchangeID)

	render.Status(r, http.StatusAccepted)
	render.JSON(w, r, model.StatusResponse{Status: "interrupt requested"})
}
