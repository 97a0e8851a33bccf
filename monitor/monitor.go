// Copyright Inflight.io, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package monitor periodically scans the await registry and reports
// goroutines that have been parked longer than an operator threshold. The
// monitor only reports; it never releases anything.
package monitor

import (
	"time"

	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"

	"github.com/inflightio/inflight/await"
)

const (
	// DefaultEvery is the default scan interval.
	DefaultEvery = 30 * time.Second
	// DefaultWarnAfter is the default wait duration above which a parked
	// goroutine is reported.
	DefaultWarnAfter = 5 * time.Minute
)

// Options configure the stall monitor.
type Options struct {
	Every     time.Duration
	WarnAfter time.Duration
}

// Monitor scans the registry on a fixed schedule.
type Monitor struct {
	manager   await.Manager
	every     time.Duration
	warnAfter time.Duration
	cron      *cron.Cron
}

// NewMonitor creates a stopped Monitor scanning manager. Zero options fall
// back to the defaults.
func NewMonitor(manager await.Manager, opts Options) *Monitor {
	if opts.Every <= 0 {
		opts.Every = DefaultEvery
	}
	if opts.WarnAfter <= 0 {
		opts.WarnAfter = DefaultWarnAfter
	}

	m := &Monitor{
		manager:   manager,
		every:     opts.Every,
		warnAfter: opts.WarnAfter,
		cron:      cron.New(),
	}
	m.cron.Schedule(cron.Every(opts.Every), cron.FuncJob(m.scan))
	return m
}

// Start begins scanning on the configured interval.
func (m *Monitor) Start() {
	m.cron.Start()
	log.Debugf("monitor: started, scanning every %s for waits over %s", m.every, m.warnAfter)
}

// Stop halts scanning and waits for an in-flight scan to finish.
func (m *Monitor) Stop() {
	<-m.cron.Stop().Done()
	log.Debug("monitor: stopped")
}

func (m *Monitor) scan() {
	for _, waiter := range m.stalled() {
		log.Warnf("monitor: goroutine %d blocked %d msec. waiting on exchangeId: %s (routeId: %s, nodeId: %s)",
			waiter.BlockedGoroutineID(), waiter.WaitDuration().Milliseconds(),
			waiter.Exchange().ExchangeID(), waiter.RouteID(), waiter.NodeID())
	}
}

// stalled returns the waiters parked longer than the warn threshold.
func (m *Monitor) stalled() []await.AwaitGoroutine {
	var stalled []await.AwaitGoroutine
	for _, waiter := range m.manager.Browse() {
		if waiter.WaitDuration() >= m.warnAfter {
			stalled = append(stalled, waiter)
		}
	}
	return stalled
}
