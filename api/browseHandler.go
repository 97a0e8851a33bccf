// Copyright Inflight.io, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"net/http"

	"github.com/go-chi/render"

	"github.com/inflightio/inflight/api/model"
	"github.com/inflightio/inflight/await"
)

// BrowseHandler lists all goroutines currently parked on the registry.
func BrowseHandler(w http.ResponseWriter, r *http.Request, manager await.Manager) {
	waiters := manager.Browse()

	render.JSON(w, r, model.BrowseResponse{
		Count:   len(waiters),
		Waiters: waiterViews(waiters),
	})
}
