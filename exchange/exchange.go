// Copyright Inflight.io, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package exchange provides the in-flight exchange model tracked by the
// await registry.
package exchange

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Step is one recorded execution step of an exchange: the route and node
// the exchange was passing through when the step was taken.
type Step struct {
	RouteID string
	NodeID  string
	At      time.Time
}

// Exchange is one in-flight unit of work. Exchanges are identity objects;
// two exchanges with equal contents are still distinct work, so they are
// always handled by pointer.
type Exchange struct {
	id      string
	created time.Time

	mutex   sync.Mutex
	err     error
	history []Step
}

// New creates an exchange with a generated external identifier.
func New() *Exchange {
	return NewWithID(uuid.New().String())
}

// NewWithID creates an exchange with a caller-chosen external identifier.
func NewWithID(id string) *Exchange {
	return &Exchange{
		id:      id,
		created: time.Now(),
	}
}

// ExchangeID returns the stable external identifier of the exchange.
func (e *Exchange) ExchangeID() string { return e.id }

// Created returns the exchange creation time.
func (e *Exchange) Created() time.Time { return e.created }

// SetError records a failure on the exchange. A later write displaces an
// earlier one; downstream processing observes the final state.
func (e *Exchange) SetError(err error) {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	e.err = err
}

// Err returns the failure recorded on the exchange, or nil.
func (e *Exchange) Err() error {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	return e.err
}

// RecordStep appends an execution step to the exchange history.
func (e *Exchange) RecordStep(routeID, nodeID string) {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	e.history = append(e.history, Step{RouteID: routeID, NodeID: nodeID, At: time.Now()})
}

// History returns a copy of the recorded steps, oldest first.
func (e *Exchange) History() []Step {
	e.mutex.Lock()
	defer e.mutex.Unlock()

	steps := make([]Step, len(e.history))
	copy(steps, e.history)
	return steps
}

// LastStep returns the route and node ids of the most recent execution
// step, or ok=false when no history was recorded.
func (e *Exchange) LastStep() (routeID, nodeID string, ok bool) {
	e.mutex.Lock()
	defer e.mutex.Unlock()

	if len(e.history) == 0 {
		return "", "", false
	}
	last := e.history[len(e.history)-1]
	return last.RouteID, last.NodeID, true
}

func (e *Exchange) String() string {
	return fmt.Sprintf("Exchange[%s]", e.id)
}
