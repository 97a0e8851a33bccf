// Copyright Inflight.io, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/render"

	"github.com/inflightio/inflight/api/model"
	"github.com/inflightio/inflight/await"
)

const (
	// ForcedReleaseHTTPCode is returned when a hold ended without its
	// paired release because the waiter was forcibly released.
	ForcedReleaseHTTPCode = http.StatusBadGateway

	// ErrorTypeInternalServerError error type for internal server error
	ErrorTypeInternalServerError = "InternalServerError"
	// ErrorTypeKeyAlreadyHeld error type for a hold on a taken key
	ErrorTypeKeyAlreadyHeld = "KeyAlreadyHeld"
	// ErrorTypeKeyNotHeld error type for a release of an unheld key
	ErrorTypeKeyNotHeld = "KeyNotHeld"
	// ErrorTypeWaiterNotFound error type for a lookup of an unknown exchange
	ErrorTypeWaiterNotFound = "WaiterNotFound"
)

func renderErrorResponse(w http.ResponseWriter, r *http.Request, status int, errorType string, format string, args ...interface{}) {
	render.Status(r, status)
	render.JSON(w, r, &model.ErrorResponse{
		ErrorType:    errorType,
		ErrorMessage: fmt.Sprintf(format, args...),
	})
}

// waiterView flattens one parked goroutine into its wire representation.
func waiterView(waiter await.AwaitGoroutine) model.WaiterView {
	return model.WaiterView{
		ExchangeID:  waiter.Exchange().ExchangeID(),
		GoroutineID: waiter.BlockedGoroutineID(),
		RouteID:     waiter.RouteID(),
		NodeID:      waiter.NodeID(),
		DurationMs:  waiter.WaitDuration().Milliseconds(),
	}
}

func waiterViews(waiters []await.AwaitGoroutine) []model.WaiterView {
	views := make([]model.WaiterView, 0, len(waiters))
	for _, waiter := range waiters {
		views = append(views, waiterView(waiter))
	}
	return views
}

// holdStatusCode maps the failure recorded on a held exchange to the HTTP
// status of the hold response.
func holdStatusCode(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case await.IsForcedRelease(err):
		return ForcedReleaseHTTPCode
	case await.IsInterrupted(err):
		return http.StatusRequestTimeout
	case errors.Is(err, await.ErrManagerStopped):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// holdOutcome names the way a hold ended.
func holdOutcome(err error) string {
	switch {
	case err == nil:
		return "released"
	case await.IsForcedRelease(err):
		return "interrupted"
	case await.IsInterrupted(err):
		return "canceled"
	case errors.Is(err, await.ErrManagerStopped):
		return "rejected"
	default:
		return "failed"
	}
}
