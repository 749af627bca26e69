package streamjson

import (
	"bytes"
	"container/list"

	"github.com/google/btree"
)

// dictDegree is the branching factor handed to the underlying B-tree. It
// plays the role spec.md §4.5 assigns to a red-black tree: an O(log n)
// balanced, order-statistic index keyed on raw key bytes. A B-tree and a
// red-black tree offer the same asymptotic guarantee; btree.BTreeG is a
// real, independently maintained library already present in the example
// pack's dependency graph (moby/moby), so it is used here in place of a
// hand-rolled tree.
const dictDegree = 32

type dictEntry struct {
	key []byte
	val *Value
	elt *list.Element // non-nil iff the dict maintains insertion order
}

func lessEntry(a, b *dictEntry) bool {
	return bytes.Compare(a.key, b.key) < 0
}

// DupKeyPolicy selects how the DOM builder (C6) resolves a second
// occurrence of an object key (spec.md §4.5).
type DupKeyPolicy int

const (
	// DupKeyUseFirst drops the new value and keeps the first one seen.
	DupKeyUseFirst DupKeyPolicy = iota
	// DupKeyUseLast finalizes the old value and installs the new one.
	DupKeyUseLast
	// DupKeyAbort reports ErrDupKey instead of installing either value.
	DupKeyAbort
)

// KeyOrder selects the iteration order returned by Dict.Keys.
type KeyOrder int

const (
	// KeySorted returns keys in raw unsigned-byte lexicographic order.
	KeySorted KeyOrder = iota
	// KeyInsertion returns keys in insertion order; the dict must have
	// been created with maintainOrder, otherwise the order is
	// unspecified (it falls back to sorted order).
	KeyInsertion
)

// Dict is the dictionary engine described by spec.md §4.5: two coexisting
// indexes over the same entries — a balanced lookup index keyed on raw key
// bytes, and an optional intrusive insertion-order list.
type Dict struct {
	maintainOrder bool
	tree          *btree.BTreeG[*dictEntry]
	order         *list.List // of *dictEntry, nil unless maintainOrder
}

func newDict(maintainOrder bool) *Dict {
	d := &Dict{
		maintainOrder: maintainOrder,
		tree:          btree.NewG(dictDegree, lessEntry),
	}
	if maintainOrder {
		d.order = list.New()
	}
	return d
}

// Size returns the number of live entries.
func (d *Dict) Size() int { return d.tree.Len() }

// Get looks up key without mutating the dict.
func (d *Dict) Get(key []byte) *Value {
	e, ok := d.tree.Get(&dictEntry{key: key})
	if !ok {
		return nil
	}
	return e.val
}

// GetOrAdd returns the existing value for key, or inserts a new NULL value
// with IsNew set and returns that.
func (d *Dict) GetOrAdd(key []byte) *Value {
	if e, ok := d.tree.Get(&dictEntry{key: key}); ok {
		e.val.clearNew()
		return e.val
	}

	entry := &dictEntry{
		key: append([]byte(nil), key...),
		val: &Value{isNew: true},
	}
	if d.maintainOrder {
		entry.elt = d.order.PushBack(entry)
	}
	d.tree.ReplaceOrInsert(entry)
	return entry.val
}

// Remove unlinks key from both indexes and finalizes its value.
func (d *Dict) Remove(key []byte) bool {
	e, ok := d.tree.Delete(&dictEntry{key: key})
	if !ok {
		return false
	}
	if e.elt != nil {
		d.order.Remove(e.elt)
	}
	e.val.Fini()
	return true
}

// Keys returns the dict's keys in the requested order. Byte slices are
// fresh copies safe for the caller to retain.
func (d *Dict) Keys(order KeyOrder) [][]byte {
	keys := make([][]byte, 0, d.Size())
	if order == KeyInsertion && d.maintainOrder {
		for el := d.order.Front(); el != nil; el = el.Next() {
			keys = append(keys, append([]byte(nil), el.Value.(*dictEntry).key...))
		}
		return keys
	}
	d.tree.Ascend(func(e *dictEntry) bool {
		keys = append(keys, append([]byte(nil), e.key...))
		return true
	})
	return keys
}

// entryOrder returns the dict's entries in insertion order if maintained,
// else sorted order; used by the serializer's PREFER_DICT_ORDER mode.
func (d *Dict) entryOrder(preferInsertion bool) []*dictEntry {
	entries := make([]*dictEntry, 0, d.Size())
	if preferInsertion && d.maintainOrder {
		for el := d.order.Front(); el != nil; el = el.Next() {
			entries = append(entries, el.Value.(*dictEntry))
		}
		return entries
	}
	d.tree.Ascend(func(e *dictEntry) bool {
		entries = append(entries, e)
		return true
	})
	return entries
}

func (d *Dict) fini() {
	d.tree.Ascend(func(e *dictEntry) bool {
		e.val.Fini()
		return true
	})
}

func (d *Dict) clone() *Dict {
	nd := newDict(d.maintainOrder)
	for _, e := range d.entryOrder(true) {
		ne := &dictEntry{key: append([]byte(nil), e.key...), val: e.val.Clone()}
		if nd.maintainOrder {
			ne.elt = nd.order.PushBack(ne)
		}
		nd.tree.ReplaceOrInsert(ne)
	}
	return nd
}

func (d *Dict) deepEqual(o *Dict) bool {
	if d == nil || o == nil {
		return d == o
	}
	if d.Size() != o.Size() {
		return false
	}
	equal := true
	d.tree.Ascend(func(e *dictEntry) bool {
		ov := o.Get(e.key)
		if ov == nil || !e.val.DeepEqual(ov) {
			equal = false
			return false
		}
		return true
	})
	return equal
}
