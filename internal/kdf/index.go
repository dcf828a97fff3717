package kdf

import (
	"fmt"

	"github.com/dmitrijs2005/gophvault/internal/common"
)

// Index keeps entries in insertion order with constant-time lookup by
// identifier.
type Index struct {
	order []string
	byID  map[string]Entry
}

// NewIndex builds an index from entries, rejecting duplicates.
func NewIndex(entries ...Entry) (*Index, error) {
	idx := &Index{byID: make(map[string]Entry, len(entries))}
	for _, e := range entries {
		if err := idx.Add(e); err != nil {
			return nil, err
		}
	}
	return idx, nil
}

// Add inserts e. Identifiers must be unique.
func (x *Index) Add(e Entry) error {
	if err := e.Validate(); err != nil {
		return err
	}
	if x.byID == nil {
		x.byID = make(map[string]Entry)
	}
	if _, ok := x.byID[e.Identifier]; ok {
		return fmt.Errorf("%w: %s", common.ErrDuplicateKeyIdentifier, e.Identifier)
	}
	x.byID[e.Identifier] = e.Clone()
	x.order = append(x.order, e.Identifier)
	return nil
}

// Remove deletes the entry with the given identifier and reports whether it
// existed.
func (x *Index) Remove(id string) bool {
	if _, ok := x.byID[id]; !ok {
		return false
	}
	delete(x.byID, id)
	for i, v := range x.order {
		if v == id {
			x.order = append(x.order[:i], x.order[i+1:]...)
			break
		}
	}
	return true
}

// Find returns a copy of the entry with the given identifier.
func (x *Index) Find(id string) (Entry, bool) {
	e, ok := x.byID[id]
	if !ok {
		return Entry{}, false
	}
	return e.Clone(), true
}

// Len returns the number of entries.
func (x *Index) Len() int { return len(x.order) }

// Entries returns copies of all entries in insertion order.
func (x *Index) Entries() []Entry {
	out := make([]Entry, 0, len(x.order))
	for _, id := range x.order {
		out = append(out, x.byID[id].Clone())
	}
	return out
}

// Clone returns an independent copy.
func (x *Index) Clone() *Index {
	c := &Index{order: append([]string(nil), x.order...), byID: make(map[string]Entry, len(x.byID))}
	for k, v := range x.byID {
		c.byID[k] = v.Clone()
	}
	return c
}
