// Copyright Inflight.io, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package await

import (
	"errors"
	"fmt"
)

// ErrManagerStopped is recorded on an exchange whose Await was rejected
// because the manager had already been stopped.
var ErrManagerStopped = errors.New("ErrManagerStopped")

// InterruptedError is recorded on an exchange when the parked goroutine's
// context was canceled before the release signal arrived.
type InterruptedError struct {
	ExchangeID string
	Cause      error
}

func (e *InterruptedError) Error() string {
	return fmt.Sprintf("interrupted while waiting for asynchronous callback for exchangeId: %s: %v", e.ExchangeID, e.Cause)
}

func (e *InterruptedError) Unwrap() error { return e.Cause }

// ForcedReleaseError is recorded on an exchange whose parked goroutine was
// released by an operator interrupt or by the shutdown sequence instead of
// the asynchronous callback.
type ForcedReleaseError struct {
	ExchangeID string
}

func (e *ForcedReleaseError) Error() string {
	return fmt.Sprintf("forced release while waiting for asynchronous callback for exchangeId: %s", e.ExchangeID)
}

// IsInterrupted reports whether err records a cancellation of the parked
// goroutine's context.
func IsInterrupted(err error) bool {
	var interrupted *InterruptedError
	return errors.As(err, &interrupted)
}

// IsForcedRelease reports whether err records a forced release by an
// operator or the shutdown sequence.
func IsForcedRelease(err error) bool {
	var forced *ForcedReleaseError
	return errors.As(err, &forced)
}
