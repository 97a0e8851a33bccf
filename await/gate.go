// Copyright Inflight.io, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package await

import (
	"sync/atomic"
)

// ReleaseGate is a single-use release signal. It starts armed; the first
// Fire transitions it to fired and the transition is never reversed.
// Waiters park on the Fired channel, which is closed on that transition,
// so a gate that fired before the waiter arrives still releases it.
type ReleaseGate struct {
	fired atomic.Bool
	ch    chan struct{}
}

// NewReleaseGate creates an armed gate.
func NewReleaseGate() *ReleaseGate {
	return &ReleaseGate{ch: make(chan struct{})}
}

// Fire releases the gate. Only the first call has an effect; firing an
// already-fired gate is a no-op.
func (g *ReleaseGate) Fire() {
	if g.fired.CompareAndSwap(false, true) {
		close(g.ch)
	}
}

// Fired returns the channel waiters park on. It is closed once the gate
// has fired.
func (g *ReleaseGate) Fired() <-chan struct{} {
	return g.ch
}

// IsFired reports whether the gate has fired.
func (g *ReleaseGate) IsFired() bool {
	return g.fired.Load()
}
