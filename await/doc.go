// Copyright Inflight.io, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

/*
Package await provides the registry and synchronization primitives for
goroutines that park themselves while an exchange waits for an
asynchronous callback.

# Gates

ReleaseGate is a single-use release signal shared between one parked
goroutine and the producer of its asynchronous result:

[waiter]   gate := await.NewReleaseGate()
[waiter]   manager.Await(ctx, exchange, gate)
[waiter]   // parked until the gate fires or ctx is canceled

[producer] manager.Release(exchange, gate)
[producer] // never blocks; waking the waiter is fire-and-forget

A gate fires exactly once. Firing it again is a harmless no-op, so the
normal release path and an administrative interrupt can race without
corrupting state.

# Manager

Manager keeps one wait record per parked exchange, keyed by the identity
of the exchange itself. Records are inserted immediately before parking
and removed on every wake path, so the diagnostic views (Size, Browse,
FindByExchangeID) only ever describe goroutines that are parked or in
the process of waking.

Interrupt force-releases a single waiter: it logs a diagnostic dump of
the blocked goroutine, records a forced-release error on the exchange
and fires the gate. Stop drains the whole registry, by default
interrupting every waiter that is still parked.
*/
package await
