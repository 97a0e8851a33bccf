// Copyright Inflight.io, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package monitor

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/inflightio/inflight/await"
	"github.com/inflightio/inflight/exchange"
)

func TestStalledReportsLongWaits(t *testing.T) {
	manager := await.NewManager()
	m := NewMonitor(manager, Options{Every: time.Second, WarnAfter: time.Millisecond})

	exch := exchange.NewWithID("e-stuck")
	gate := await.NewReleaseGate()
	var errg errgroup.Group
	errg.Go(func() error {
		manager.Await(context.Background(), exch, gate)
		return nil
	})
	require.Eventually(t, func() bool { return manager.Size() == 1 }, time.Second, time.Millisecond)

	require.Eventually(t, func() bool { return len(m.stalled()) == 1 }, time.Second, time.Millisecond)
	assert.Equal(t, "e-stuck", m.stalled()[0].Exchange().ExchangeID())

	manager.Release(exch, gate)
	require.NoError(t, errg.Wait())
	assert.Empty(t, m.stalled())
}

func TestStalledIgnoresFreshWaits(t *testing.T) {
	manager := await.NewManager()
	m := NewMonitor(manager, Options{Every: time.Second, WarnAfter: time.Hour})

	exch := exchange.New()
	gate := await.NewReleaseGate()
	var errg errgroup.Group
	errg.Go(func() error {
		manager.Await(context.Background(), exch, gate)
		return nil
	})
	require.Eventually(t, func() bool { return manager.Size() == 1 }, time.Second, time.Millisecond)

	assert.Empty(t, m.stalled())

	manager.Release(exch, gate)
	require.NoError(t, errg.Wait())
}

func TestStartStop(t *testing.T) {
	m := NewMonitor(await.NewManager(), Options{})
	m.Start()
	m.Stop() // must drain without hanging
}

func TestDefaults(t *testing.T) {
	m := NewMonitor(await.NewManager(), Options{})
	assert.Equal(t, DefaultEvery, m.every)
	assert.Equal(t, DefaultWarnAfter, m.warnAfter)
}
