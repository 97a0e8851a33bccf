// Copyright Inflight.io, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package model provides the wire types of the inflightd HTTP API.
package model

import (
	"encoding/json"

	log "github.com/sirupsen/logrus"
)

// ErrorResponse is a standard error response, providing information
// about the error.
type ErrorResponse struct {
	ErrorMessage string `json:"errorMessage"`
	ErrorType    string `json:"errorType"`
}

// StatusResponse is a standard status-only response.
type StatusResponse struct {
	Status string `json:"status"`
}

// WaiterView describes one parked goroutine of the await registry.
type WaiterView struct {
	ExchangeID  string `json:"exchangeId"`
	GoroutineID uint64 `json:"goroutineId"`
	RouteID     string `json:"routeId"`
	NodeID      string `json:"nodeId"`
	DurationMs  int64  `json:"durationMs"`
}

// BrowseResponse lists the currently parked goroutines.
type BrowseResponse struct {
	Count   int          `json:"count"`
	Waiters []WaiterView `json:"waiters"`
}

// HoldResponse reports how a hold ended.
type HoldResponse struct {
	Key          string `json:"key"`
	ExchangeID   string `json:"exchangeId"`
	Outcome      string `json:"outcome"`
	DurationMs   int64  `json:"durationMs"`
	ErrorMessage string `json:"errorMessage,omitempty"`
}

// StateDescription describes the internal state of the daemon for
// debugging purposes.
type StateDescription struct {
	Size            int          `json:"size"`
	InterruptOnStop bool         `json:"interruptOnStop"`
	ActiveKeys      []string     `json:"activeKeys"`
	Waiters         []WaiterView `json:"waiters"`
}

// AsJSON returns state description as JSON bytes
func (s *StateDescription) AsJSON() []byte {
	bytes, err := json.Marshal(s)
	if err != nil {
		log.Panicf("Failed to marshal internal state: %s", err)
	}
	return bytes
}
