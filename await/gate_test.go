// Copyright Inflight.io, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package await

import (
	"github.com/stretchr/testify/assert"
	"golang.org/x/sync/errgroup"
	"testing"
)

func TestFire(t *testing.T) {
	g := NewReleaseGate()
	assert.False(t, g.IsFired())
	g.Fire()
	assert.True(t, g.IsFired())
}

func TestFireTwice(t *testing.T) {
	g := NewReleaseGate()
	g.Fire()
	g.Fire() // second fire must not panic on the closed channel
	assert.True(t, g.IsFired())
}

func TestFiredWakesWaiter(t *testing.T) {
	g := NewReleaseGate()

	var errg errgroup.Group
	errg.Go(func() error {
		<-g.Fired()
		return nil
	})
	g.Fire()

	assert.NoError(t, errg.Wait())
}

func TestFiredWakesLateWaiter(t *testing.T) {
	g := NewReleaseGate()
	g.Fire()

	// waiter arriving after the fire must not park
	<-g.Fired()
	assert.True(t, g.IsFired())
}

func TestConcurrentFire(t *testing.T) {
	g := NewReleaseGate()

	var errg errgroup.Group
	for i := 0; i < 16; i++ {
		errg.Go(func() error {
			g.Fire()
			return nil
		})
	}

	assert.NoError(t, errg.Wait())
	assert.True(t, g.IsFired())
}
