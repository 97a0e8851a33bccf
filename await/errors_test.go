// Copyright Inflight.io, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package await

import (
	"context"
	"errors"
	"fmt"
	"github.com/stretchr/testify/assert"
	"testing"
)

func TestForcedReleaseError(t *testing.T) {
	err := &ForcedReleaseError{ExchangeID: "e-1"}
	assert.True(t, IsForcedRelease(err))
	assert.False(t, IsInterrupted(err))
	assert.Contains(t, err.Error(), "e-1")
}

func TestInterruptedError(t *testing.T) {
	err := &InterruptedError{ExchangeID: "e-1", Cause: context.Canceled}
	assert.True(t, IsInterrupted(err))
	assert.False(t, IsForcedRelease(err))
	assert.ErrorIs(t, err, context.Canceled)
	assert.Contains(t, err.Error(), "e-1")
}

func TestErrorKindsThroughWrapping(t *testing.T) {
	wrapped := fmt.Errorf("hold failed: %w", &ForcedReleaseError{ExchangeID: "e-1"})
	assert.True(t, IsForcedRelease(wrapped))

	rejected := fmt.Errorf("%w: exchangeId: e-2", ErrManagerStopped)
	assert.True(t, errors.Is(rejected, ErrManagerStopped))
	assert.False(t, IsForcedRelease(rejected))
	assert.False(t, IsInterrupted(rejected))
}
