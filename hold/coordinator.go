// Copyright Inflight.io, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package hold pairs rendezvous keys with in-flight exchanges so that
// independent callers can meet on the await registry: one call parks under
// a key, another call releases that key.
package hold

import (
	"context"
	"errors"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/inflightio/inflight/await"
	"github.com/inflightio/inflight/exchange"
)

// ErrKeyAlreadyHeld means that a goroutine is already parked under this key
var ErrKeyAlreadyHeld = errors.New("ErrKeyAlreadyHeld")

// ErrKeyNotHeld means that no goroutine is parked under this key
var ErrKeyNotHeld = errors.New("ErrKeyNotHeld")

// Outcome describes how a hold ended.
type Outcome struct {
	Key        string
	ExchangeID string
	// Released is true when the paired release arrived; false when the
	// waiter was force-released, canceled or rejected.
	Released bool
	// Err is the failure recorded on the exchange, nil on a normal release.
	Err    error
	Waited time.Duration
}

// holdContext pairs the parked exchange with the gate that releases it.
type holdContext struct {
	exchange *exchange.Exchange
	gate     *await.ReleaseGate
}

// Coordinator owns the key-to-exchange pairing. The await manager only
// tracks exchanges; the coordinator is what lets an external caller name a
// wait by key instead of holding on to the gate.
type Coordinator struct {
	manager await.Manager

	mutex sync.Mutex
	holds map[string]*holdContext
}

// NewCoordinator creates an empty Coordinator parking on manager.
func NewCoordinator(manager await.Manager) *Coordinator {
	return &Coordinator{
		manager: manager,
		holds:   make(map[string]*holdContext),
	}
}

// Hold parks the calling goroutine under key until Release(key) is called,
// an operator force-releases the exchange, or ctx is canceled. The route
// and node ids, when non-empty, are recorded as the exchange's execution
// step so diagnostics can name the caller's position. Returns
// ErrKeyAlreadyHeld without parking when the key is taken.
func (c *Coordinator) Hold(ctx context.Context, key, routeID, nodeID string) (*Outcome, error) {
	exch := exchange.New()
	if routeID != "" || nodeID != "" {
		exch.RecordStep(routeID, nodeID)
	}
	gate := await.NewReleaseGate()

	c.mutex.Lock()
	if _, taken := c.holds[key]; taken {
		c.mutex.Unlock()
		return nil, ErrKeyAlreadyHeld
	}
	c.holds[key] = &holdContext{exchange: exch, gate: gate}
	c.mutex.Unlock()

	log.Debugf("Parking hold %s as exchangeId: %s", key, exch.ExchangeID())
	start := time.Now()
	c.manager.Await(ctx, exch, gate)

	c.mutex.Lock()
	delete(c.holds, key)
	c.mutex.Unlock()

	err := exch.Err()
	return &Outcome{
		Key:        key,
		ExchangeID: exch.ExchangeID(),
		Released:   err == nil,
		Err:        err,
		Waited:     time.Since(start),
	}, nil
}

// Release wakes the goroutine parked under key.
func (c *Coordinator) Release(key string) error {
	c.mutex.Lock()
	hold, found := c.holds[key]
	c.mutex.Unlock()

	if !found {
		return ErrKeyNotHeld
	}
	c.manager.Release(hold.exchange, hold.gate)
	return nil
}

// ActiveKeys returns a snapshot of the keys currently held. The order of keys is unspecified.
func (c *Coordinator) ActiveKeys() []string {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	keys := make([]string, 0, len(c.holds))
	for key := range c.holds {
		keys = append(keys, key)
	}
	return keys
}

// Len returns the number of keys currently held.
func (c *Coordinator) Len() int {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return len(c.holds)
}
