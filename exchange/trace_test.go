// Copyright Inflight.io, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package exchange

import (
	"github.com/stretchr/testify/assert"
	"strings"
	"testing"
	"unicode/utf8"
)

func TestDumpHistoryTraceEmpty(t *testing.T) {
	assert.Equal(t, "", DumpHistoryTrace(NewWithID("e-1")))
}

func TestDumpHistoryTrace(t *testing.T) {
	exch := NewWithID("e-1")
	exch.RecordStep("route-a", "node-1")
	exch.RecordStep("route-a", "node-2")
	exch.RecordStep("route-b", "node-3")

	trace := DumpHistoryTrace(exch)
	assert.Contains(t, trace, "Message History")
	assert.Contains(t, trace, "RouteId")
	assert.Contains(t, trace, "NodeId")
	assert.Contains(t, trace, "Elapsed (ms)")
	assert.Contains(t, trace, "route-a")
	assert.Contains(t, trace, "node-3")
	assert.Contains(t, trace, "ExchangeId: e-1")

	// one row per step, oldest first
	first := strings.Index(trace, "node-1")
	last := strings.Index(trace, "node-3")
	assert.Greater(t, last, first)
}

func TestTraceCellClipsLongValues(t *testing.T) {
	long := strings.Repeat("x", 100)
	cell := traceCell(long)
	assert.Len(t, cell, traceCellWidth)
	assert.True(t, strings.HasSuffix(cell, "..."))

	short := traceCell("abc")
	assert.Len(t, short, traceCellWidth)
	assert.True(t, strings.HasPrefix(short, "abc"))
}

func TestTraceCellClipsMultiByteValues(t *testing.T) {
	long := strings.Repeat("ü", 80)
	cell := traceCell(long)
	assert.True(t, utf8.ValidString(cell))
	assert.Equal(t, traceCellWidth, utf8.RuneCountInString(cell))
	assert.True(t, strings.HasSuffix(cell, "..."))
}
