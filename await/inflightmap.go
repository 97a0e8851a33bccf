// Copyright Inflight.io, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package await

// inflightMap stores wait records indexed by exchange identity. It does no
// locking of its own; the manager serializes access with its lock.
type inflightMap struct {
	entries map[Exchange]*awaitEntry
}

// newInflightMap creates empty inflightMap
func newInflightMap() inflightMap {
	return inflightMap{
		entries: make(map[Exchange]*awaitEntry),
	}
}

// Put places the record into inflightMap. The record it displaced is
// returned when the exchange was already registered, which only happens
// when two goroutines await the same exchange.
func (m *inflightMap) Put(exch Exchange, entry *awaitEntry) (prev *awaitEntry, replaced bool) {
	prev, replaced = m.entries[exch]
	m.entries[exch] = entry
	return
}

// Get finds the record registered for the exchange
func (m *inflightMap) Get(exch Exchange) (entry *awaitEntry, found bool) {
	entry, found = m.entries[exch]
	return
}

// Remove discards the record registered for the exchange, if any
func (m *inflightMap) Remove(exch Exchange) {
	delete(m.entries, exch)
}

// Visit iterates through records, calling cb for each of them
func (m *inflightMap) Visit(cb func(*awaitEntry)) {
	for _, entry := range m.entries {
		cb(entry)
	}
}

// Size returns the number of records contained in the datastructure
func (m *inflightMap) Size() int {
	return len(m.entries)
}

// AsArray returns shallow copy of all records as a single array. The order of records is unspecified.
func (m *inflightMap) AsArray() []*awaitEntry {
	entries := make([]*awaitEntry, 0, len(m.entries))

	m.Visit(func(entry *awaitEntry) {
		entries = append(entries, entry)
	})

	return entries
}

func (m *inflightMap) Clear() {
	m.entries = make(map[Exchange]*awaitEntry)
}
