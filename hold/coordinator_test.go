// Copyright Inflight.io, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package hold

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/inflightio/inflight/await"
)

func waitForHeld(t *testing.T, c *Coordinator, n int) {
	require.Eventually(t, func() bool { return c.Len() == n }, time.Second, time.Millisecond)
}

func TestHoldRelease(t *testing.T) {
	c := NewCoordinator(await.NewManager())

	outcomes := make(chan *Outcome, 1)
	var errg errgroup.Group
	errg.Go(func() error {
		outcome, err := c.Hold(context.Background(), "order-17", "route-a", "node-1")
		outcomes <- outcome
		return err
	})
	waitForHeld(t, c, 1)

	require.NoError(t, c.Release("order-17"))
	require.NoError(t, errg.Wait())

	outcome := <-outcomes
	assert.True(t, outcome.Released)
	assert.NoError(t, outcome.Err)
	assert.Equal(t, "order-17", outcome.Key)
	assert.NotEmpty(t, outcome.ExchangeID)
	assert.Equal(t, 0, c.Len())
}

func TestHoldSameKeyTwice(t *testing.T) {
	c := NewCoordinator(await.NewManager())

	var errg errgroup.Group
	errg.Go(func() error {
		_, err := c.Hold(context.Background(), "dup", "", "")
		return err
	})
	waitForHeld(t, c, 1)

	_, err := c.Hold(context.Background(), "dup", "", "")
	assert.Equal(t, ErrKeyAlreadyHeld, err)

	require.NoError(t, c.Release("dup"))
	require.NoError(t, errg.Wait())
}

func TestReleaseUnknownKey(t *testing.T) {
	c := NewCoordinator(await.NewManager())
	assert.Equal(t, ErrKeyNotHeld, c.Release("nobody-waits"))
}

func TestKeyReusableAfterRelease(t *testing.T) {
	c := NewCoordinator(await.NewManager())

	for i := 0; i < 2; i++ {
		var errg errgroup.Group
		errg.Go(func() error {
			_, err := c.Hold(context.Background(), "reused", "", "")
			return err
		})
		waitForHeld(t, c, 1)
		require.NoError(t, c.Release("reused"))
		require.NoError(t, errg.Wait())
	}
	assert.Equal(t, 0, c.Len())
}

func TestHoldInterruptedByManager(t *testing.T) {
	mgr := await.NewManager()
	c := NewCoordinator(mgr)

	outcomes := make(chan *Outcome, 1)
	var errg errgroup.Group
	errg.Go(func() error {
		outcome, err := c.Hold(context.Background(), "stuck", "route-a", "node-1")
		outcomes <- outcome
		return err
	})
	waitForHeld(t, c, 1)

	waiters := mgr.Browse()
	require.Len(t, waiters, 1)
	mgr.InterruptByExchangeID(waiters[0].Exchange().ExchangeID())
	require.NoError(t, errg.Wait())

	outcome := <-outcomes
	assert.False(t, outcome.Released)
	assert.True(t, await.IsForcedRelease(outcome.Err))
	assert.Equal(t, 0, c.Len())
}

func TestHoldCanceledContext(t *testing.T) {
	c := NewCoordinator(await.NewManager())
	ctx, cancel := context.WithCancel(context.Background())

	outcomes := make(chan *Outcome, 1)
	var errg errgroup.Group
	errg.Go(func() error {
		outcome, err := c.Hold(ctx, "canceled", "", "")
		outcomes <- outcome
		return err
	})
	waitForHeld(t, c, 1)

	cancel()
	require.NoError(t, errg.Wait())

	outcome := <-outcomes
	assert.False(t, outcome.Released)
	assert.True(t, await.IsInterrupted(outcome.Err))
	assert.Equal(t, 0, c.Len())
}

func TestActiveKeys(t *testing.T) {
	c := NewCoordinator(await.NewManager())
	assert.Empty(t, c.ActiveKeys())

	var errg errgroup.Group
	for _, key := range []string{"a", "b"} {
		key := key
		errg.Go(func() error {
			_, err := c.Hold(context.Background(), key, "", "")
			return err
		})
	}
	waitForHeld(t, c, 2)
	assert.ElementsMatch(t, []string{"a", "b"}, c.ActiveKeys())

	require.NoError(t, c.Release("a"))
	require.NoError(t, c.Release("b"))
	require.NoError(t, errg.Wait())
}
