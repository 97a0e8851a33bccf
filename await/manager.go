// Copyright Inflight.io, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package await

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"

	log "github.com/sirupsen/logrus"
)

type managerState int

const (
	managerStateOn managerState = iota
	managerStateOff
)

const dumpSeparator = "-------------------------------------------------------------------------------------------------------------------------------------"

// TraceFormatter renders a human-readable execution history trace for an
// exchange, included in the diagnostic dump when the exchange's waiter is
// force-released. Empty output means there is nothing to render. Rendering
// is best-effort: errors are logged and never block the release.
type TraceFormatter func(exch Exchange) (string, error)

// Manager tracks goroutines parked while their exchange waits for an
// asynchronous callback, and is the administrative surface for observing
// and force-releasing them.
type Manager interface {
	// Await parks the calling goroutine until the gate fires or ctx is
	// canceled, registering a wait record for the duration of the park.
	// On cancellation an InterruptedError is recorded on the exchange.
	// The record is removed on every return path.
	Await(ctx context.Context, exch Exchange, gate *ReleaseGate)
	// Release fires the gate to wake the goroutine parked on it. Safe to
	// call whether or not the waiter already woke; never blocks.
	Release(exch Exchange, gate *ReleaseGate)
	// Size returns the number of currently parked goroutines.
	Size() int
	// Browse returns a point-in-time snapshot of all parked goroutines.
	Browse() []AwaitGoroutine
	// FindByExchangeID finds a parked exchange by its external identifier.
	FindByExchangeID(id string) (Exchange, bool)
	// Interrupt force-releases the goroutine parked on the exchange after
	// dumping its diagnostics. No-op when the exchange is not registered.
	Interrupt(exch Exchange)
	// InterruptByExchangeID resolves id to a parked exchange and
	// interrupts it. No-op when no parked exchange carries the id.
	InterruptByExchangeID(id string)
	// InterruptGoroutinesOnStop reports whether Stop force-releases the
	// goroutines still parked at shutdown.
	InterruptGoroutinesOnStop() bool
	// Start is the lifecycle hook of the owning container. The manager
	// accepts waits from construction, so it has nothing to do.
	Start()
	// Stop drains the registry. Goroutines still parked are dumped to the
	// log and, unless disabled, force-released one by one. Records are
	// cleared regardless. Await calls arriving after Stop are rejected.
	Stop()
}

type managerImpl struct {
	mutex           *sync.RWMutex
	inflight        inflightMap
	state           managerState
	interruptOnStop bool
	formatTrace     TraceFormatter
	stopOnce        sync.Once
}

// Option configures the manager returned by NewManager.
type Option func(*managerImpl)

// WithInterruptGoroutinesOnStop controls whether Stop force-releases the
// goroutines still parked at shutdown. Enabled by default. When disabled
// the records are still cleared but the goroutines stay parked until their
// gates fire or their contexts are canceled.
func WithInterruptGoroutinesOnStop(enabled bool) Option {
	return func(m *managerImpl) {
		m.interruptOnStop = enabled
	}
}

// WithTraceFormatter installs the collaborator that renders execution
// history traces for interrupt diagnostics.
func WithTraceFormatter(formatTrace TraceFormatter) Option {
	return func(m *managerImpl) {
		m.formatTrace = formatTrace
	}
}

// NewManager creates an empty, started Manager.
func NewManager(options ...Option) Manager {
	m := &managerImpl{
		mutex:           &sync.RWMutex{},
		inflight:        newInflightMap(),
		state:           managerStateOn,
		interruptOnStop: true,
	}
	for _, option := range options {
		option(m)
	}
	return m
}

func (m *managerImpl) Await(ctx context.Context, exch Exchange, gate *ReleaseGate) {
	log.Tracef("Waiting for asynchronous callback before continuing routing exchangeId: %s", exch.ExchangeID())

	if !m.register(exch, newAwaitEntry(exch, gate)) {
		log.Warnf("Rejecting wait on stopped await manager for exchangeId: %s", exch.ExchangeID())
		exch.SetError(fmt.Errorf("%w: exchangeId: %s", ErrManagerStopped, exch.ExchangeID()))
		return
	}
	defer m.remove(exch)

	select {
	case <-gate.Fired():
		log.Tracef("Asynchronous callback received, will continue routing exchangeId: %s", exch.ExchangeID())
	case <-ctx.Done():
		log.Tracef("Interrupted while waiting for asynchronous callback for exchangeId: %s", exch.ExchangeID())
		exch.SetError(&InterruptedError{ExchangeID: exch.ExchangeID(), Cause: ctx.Err()})
	}
}

func (m *managerImpl) Release(exch Exchange, gate *ReleaseGate) {
	log.Tracef("Releasing waiting goroutine for exchangeId: %s", exch.ExchangeID())
	gate.Fire()
}

func (m *managerImpl) Size() int {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return m.inflight.Size()
}

func (m *managerImpl) Browse() []AwaitGoroutine {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	waiters := make([]AwaitGoroutine, 0, m.inflight.Size())
	m.inflight.Visit(func(entry *awaitEntry) {
		waiters = append(waiters, entry)
	})
	return waiters
}

func (m *managerImpl) FindByExchangeID(id string) (Exchange, bool) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	if entry, found := m.findEntryByExchangeID(id); found {
		return entry.exchange, true
	}
	return nil, false
}

func (m *managerImpl) Interrupt(exch Exchange) {
	m.mutex.RLock()
	entry, found := m.inflight.Get(exch)
	m.mutex.RUnlock()

	if !found {
		log.Debugf("Cannot interrupt exchangeId: %s, no goroutine is blocked on it", exch.ExchangeID())
		return
	}
	m.interruptEntry(entry)
}

func (m *managerImpl) InterruptByExchangeID(id string) {
	m.mutex.RLock()
	entry, found := m.findEntryByExchangeID(id)
	m.mutex.RUnlock()

	if !found {
		log.Debugf("Cannot interrupt exchangeId: %s, no goroutine is blocked on it", id)
		return
	}
	m.interruptEntry(entry)
}

func (m *managerImpl) InterruptGoroutinesOnStop() bool {
	return m.interruptOnStop
}

func (m *managerImpl) Start() {
	log.Debug("Await manager started")
}

func (m *managerImpl) Stop() {
	m.stopOnce.Do(m.drain)
}

// register inserts the wait record, unless the manager has been stopped.
// Awaiting an exchange that is already registered is a caller contract
// violation; the stale record is displaced so the registry keeps exactly
// one record per exchange.
func (m *managerImpl) register(exch Exchange, entry *awaitEntry) bool {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if m.state != managerStateOn {
		return false
	}
	if prev, replaced := m.inflight.Put(exch, entry); replaced {
		log.Warnf("Duplicate wait for exchangeId: %s; record of blocked goroutine %d displaced by goroutine %d",
			exch.ExchangeID(), prev.goroutineID, entry.goroutineID)
	}
	return true
}

func (m *managerImpl) remove(exch Exchange) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.inflight.Remove(exch)
}

// findEntryByExchangeID must be called with the mutex held.
func (m *managerImpl) findEntryByExchangeID(id string) (*awaitEntry, bool) {
	var match *awaitEntry
	m.inflight.Visit(func(entry *awaitEntry) {
		if match == nil && entry.exchange.ExchangeID() == id {
			match = entry
		}
	})
	return match, match != nil
}

// interruptEntry dumps diagnostics for the blocked goroutine, then records
// a forced-release error and fires the gate. The error write and the fire
// are deferred so that no failure in diagnostics can leave the goroutine
// parked, and the error is always observable before the waiter wakes.
func (m *managerImpl) interruptEntry(entry *awaitEntry) {
	exch := entry.exchange
	defer func() {
		exch.SetError(&ForcedReleaseError{ExchangeID: exch.ExchangeID()})
		entry.gate.Fire()
	}()

	var sb strings.Builder
	sb.WriteString("Interrupted while waiting for asynchronous callback, will release the following blocked goroutine which was waiting for exchange to finish processing with exchangeId: ")
	sb.WriteString(exch.ExchangeID())
	sb.WriteString(dumpBlockedGoroutine(entry))

	if m.formatTrace != nil {
		trace, err := m.formatTrace(exch)
		if err != nil {
			log.Warnf("Error rendering history trace for exchangeId: %s. This error is ignored. Error: %v", exch.ExchangeID(), err)
		} else {
			sb.WriteString(trace)
		}
	}

	log.Warn(sb.String())
}

// drain empties the registry at shutdown. Every snapshot entry is
// re-resolved through the live registry before it is interrupted, so a
// waiter that woke normally while the drain was in progress is skipped
// rather than handed a forced-release error. Interruption failures are
// logged and skipped so one bad waiter cannot keep the rest parked.
func (m *managerImpl) drain() {
	m.mutex.Lock()
	m.state = managerStateOff
	entries := m.inflight.AsArray()
	m.mutex.Unlock()

	if len(entries) > 0 {
		log.Warnf("Stopping await manager while there are still %d goroutine(s) blocked waiting on asynchronous callbacks.", len(entries))

		var sb strings.Builder
		for _, entry := range entries {
			sb.WriteString(dumpBlockedGoroutine(entry))
		}

		if m.interruptOnStop {
			log.Warnf("The following goroutines are blocked and will be interrupted so they are released:%s", sb.String())
			for _, entry := range entries {
				m.Interrupt(entry.exchange)
			}
		} else {
			log.Warnf("The following goroutines are blocked and will stay parked until released by other means:%s", sb.String())
		}
	} else {
		log.Debug("Stopping await manager with no blocked goroutines.")
	}

	m.mutex.Lock()
	m.inflight.Clear()
	m.mutex.Unlock()
}

// dumpBlockedGoroutine renders one wait record the way blocked threads are
// dumped in a thread dump, for the interrupt and shutdown warnings.
func dumpBlockedGoroutine(entry *awaitEntry) string {
	var sb strings.Builder
	sb.WriteString("\nBlocked Goroutine\n")
	sb.WriteString(dumpSeparator)
	sb.WriteString("\n")
	sb.WriteString(dumpLabel("Id:") + strconv.FormatUint(entry.goroutineID, 10) + "\n")
	sb.WriteString(dumpLabel("ExchangeId:") + entry.exchange.ExchangeID() + "\n")
	sb.WriteString(dumpLabel("RouteId:") + entry.routeID + "\n")
	sb.WriteString(dumpLabel("NodeId:") + entry.nodeID + "\n")
	sb.WriteString(dumpLabel("Duration:") + fmt.Sprintf("%d msec.", entry.WaitDuration().Milliseconds()) + "\n")
	return sb.String()
}

func dumpLabel(label string) string {
	return fmt.Sprintf("\t%-20s", label)
}
