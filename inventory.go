package rulesbot

import (
	"context"
	"sort"
)

// Location describes where an inventory symbol is documented.
type Location struct {
	Project     string `json:"project"`
	Version     string `json:"version"`
	URL         string `json:"url"`
	DisplayName string `json:"displayName"`
}

// InventoryEntry is a single symbol of an object inventory.
// Kind is encoded as "domain:role", e.g. "py:class".
type InventoryEntry struct {
	Kind     string
	Name     string
	Location Location
}

// Inventory maps symbol kinds to names to documentation locations.
// It is built once and never mutated afterwards, so it is safe for
// concurrent reads without locking.
type Inventory struct {
	byKind map[string]map[string]Location
	names  map[string][]string
	kinds  []string
}

// NewInventory builds an Inventory from entries. A later entry with the same
// kind and name replaces an earlier one.
func NewInventory(entries []InventoryEntry) *Inventory {
	inv := &Inventory{
		byKind: make(map[string]map[string]Location),
		names:  make(map[string][]string),
	}
	for _, e := range entries {
		m, ok := inv.byKind[e.Kind]
		if !ok {
			m = make(map[string]Location)
			inv.byKind[e.Kind] = m
		}
		m[e.Name] = e.Location
	}
	for kind, m := range inv.byKind {
		names := make([]string, 0, len(m))
		for name := range m {
			names = append(names, name)
		}
		sort.Strings(names)
		inv.names[kind] = names
		inv.kinds = append(inv.kinds, kind)
	}
	sort.Strings(inv.kinds)
	return inv
}

// Lookup returns the name to location mapping for kind.
// The returned map must not be modified.
func (inv *Inventory) Lookup(kind string) map[string]Location {
	return inv.byKind[kind]
}

// Kinds returns all kinds present in the inventory in sorted order.
func (inv *Inventory) Kinds() []string {
	return inv.kinds
}

// Names returns the names registered for kind in sorted order.
// The returned slice must not be modified.
func (inv *Inventory) Names(kind string) []string {
	return inv.names[kind]
}

// Len returns the total number of symbols across all kinds.
func (inv *Inventory) Len() int {
	n := 0
	for _, m := range inv.byKind {
		n += len(m)
	}
	return n
}

// InventoryLoader fetches and parses an object inventory feed.
type InventoryLoader interface {
	// Load retrieves the inventory published under baseURL.
	// Any error is fatal for the caller: there is no partial inventory.
	Load(ctx context.Context, baseURL string) (*Inventory, error)
}
