// Copyright Inflight.io, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/render"

	"github.com/inflightio/inflight/await"
)

// FindWaiterHandler describes the goroutine parked on the exchange with
// the given external identifier.
func FindWaiterHandler(w http.ResponseWriter, r *http.Request, manager await.Manager) {
	exchangeID := chi.URLParam(r, "exchangeid")

	for _, waiter := range manager.Browse() {
		if waiter.Exchange().ExchangeID() == exchangeID {
			render.JSON(w, r, waiterView(waiter))
			return
		}
	}

	renderErrorResponse(w, r, http.StatusNotFound, ErrorTypeWaiterNotFound, "no goroutine is blocked on exchangeId: %s", exchangeID)
}
