// Copyright Inflight.io, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package await

import (
	"bytes"
	"fmt"
	"runtime"
	"strconv"
	"time"
)

// Exchange is the registry's view of one in-flight unit of work.
// Implementations must be pointer types: wait records are keyed by the
// interface value itself, so equality has to mean reference identity
// rather than structural equality.
type Exchange interface {
	// ExchangeID returns the stable external identifier of the exchange.
	ExchangeID() string
	// SetError records a failure on the exchange for the resumed
	// goroutine to observe.
	SetError(err error)
	// LastStep returns the route and node ids of the most recent
	// execution step, or ok=false when no history was recorded.
	LastStep() (routeID, nodeID string, ok bool)
}

// AwaitGoroutine is a read-only view of one parked goroutine, as exposed
// by Browse.
type AwaitGoroutine interface {
	// BlockedGoroutineID identifies the parked goroutine. It is captured
	// for diagnostics only; nothing can be addressed by it.
	BlockedGoroutineID() uint64
	Exchange() Exchange
	// WaitDuration returns how long the goroutine has been parked so far.
	WaitDuration() time.Duration
	RouteID() string
	NodeID() string
}

// awaitEntry is the wait record the manager keeps per parked exchange.
// Route and node ids are sampled from the exchange's last execution step
// at registration time, so the dump of a blocked goroutine names the
// position it was parked at even if history grows afterwards.
type awaitEntry struct {
	goroutineID uint64
	exchange    Exchange
	gate        *ReleaseGate
	start       time.Time
	routeID     string
	nodeID      string
}

func newAwaitEntry(exch Exchange, gate *ReleaseGate) *awaitEntry {
	entry := &awaitEntry{
		goroutineID: currentGoroutineID(),
		exchange:    exch,
		gate:        gate,
		start:       time.Now(),
	}
	if routeID, nodeID, ok := exch.LastStep(); ok {
		entry.routeID = routeID
		entry.nodeID = nodeID
	}
	return entry
}

func (e *awaitEntry) BlockedGoroutineID() uint64 { return e.goroutineID }

func (e *awaitEntry) Exchange() Exchange { return e.exchange }

func (e *awaitEntry) WaitDuration() time.Duration { return time.Since(e.start) }

func (e *awaitEntry) RouteID() string { return e.routeID }

func (e *awaitEntry) NodeID() string { return e.nodeID }

func (e *awaitEntry) String() string {
	return fmt.Sprintf("awaitEntry[goroutine=%d, exchangeId=%s]", e.goroutineID, e.exchange.ExchangeID())
}

// currentGoroutineID parses the goroutine id out of the stack header line
// ("goroutine 123 [running]:"). The runtime offers no cheaper way to name
// the current goroutine; the id feeds diagnostics only, so 0 on a parse
// failure is acceptable.
func currentGoroutineID() uint64 {
	buf := make([]byte, 64)
	buf = buf[:runtime.Stack(buf, false)]
	buf = bytes.TrimPrefix(buf, []byte("goroutine "))
	if i := bytes.IndexByte(buf, ' '); i > 0 {
		if id, err := strconv.ParseUint(string(buf[:i]), 10, 64); err == nil {
			return id
		}
	}
	return 0
}
