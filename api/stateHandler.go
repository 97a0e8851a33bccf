// Copyright Inflight.io, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"net/http"

	"github.com/inflightio/inflight/api/model"
	"github.com/inflightio/inflight/await"
	"github.com/inflightio/inflight/hold"
)

// StateHandler dumps the internal state of the registry and coordinator.
func StateHandler(w http.ResponseWriter, r *http.Request, manager await.Manager, coordinator *hold.Coordinator) {
	state := model.StateDescription{
		Size:            manager.Size(),
		InterruptOnStop: manager.InterruptGoroutinesOnStop(),
		ActiveKeys:      coordinator.ActiveKeys(),
		Waiters:         waiterViews(manager.Browse()),
	}

	w.Write(state.AsJSON())
}
