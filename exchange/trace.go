// Copyright Inflight.io, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package exchange

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	traceSeparator = "---------------------------------------------------------------------------------------------------------------------------------------"
	traceCellWidth = 38
)

// DumpHistoryTrace renders the execution history of an exchange as a
// fixed-width table resembling a stack trace, oldest step first. Elapsed
// is the time spent in each step, measured to the next step or, for the
// last step, to now. Returns the empty string when there is no history.
func DumpHistoryTrace(exch *Exchange) string {
	steps := exch.History()
	if len(steps) == 0 {
		return ""
	}

	var sb strings.Builder
	sb.WriteString("\nMessage History\n")
	sb.WriteString(traceSeparator)
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("%-40s %-40s %12s\n", "RouteId", "NodeId", "Elapsed (ms)"))

	now := time.Now()
	for i, step := range steps {
		end := now
		if i+1 < len(steps) {
			end = steps[i+1].At
		}
		sb.WriteString(fmt.Sprintf("[%s] [%s] [%10d]\n",
			traceCell(step.RouteID), traceCell(step.NodeID), end.Sub(step.At).Milliseconds()))
	}

	sb.WriteString(traceSeparator)
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("ExchangeId: %s\n", exch.ExchangeID()))
	return sb.String()
}

// traceCell pads or clips a value to the fixed table cell width. Width is
// counted in runes so a multi-byte id is never cut mid-rune.
func traceCell(value string) string {
	if utf8.RuneCountInString(value) > traceCellWidth {
		value = string([]rune(value)[:traceCellWidth-3]) + "..."
	}
	return fmt.Sprintf("%-*s", traceCellWidth, value)
}
