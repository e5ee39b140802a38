// Package tree implements a copy-on-write, persistent tree keyed by
// checksum32 surrogate keys. Nodes are hash-ordered rather than
// user-ordered: lookups are exact, or follow the entry whose surrogate is
// the largest one less than or equal to the target (the first entry when
// there is none), never a user range scan.
package tree

import (
	"fmt"

	"github.com/prokopschield/udp-storage-server-2023/serializer"
)

// nodeWire is the canonical tuple a Node's hash resolves to.
type nodeWire struct {
	Depth    int
	Children []childWire
}

type childWire struct {
	Key uint32
	ID  string
}

// Entry is one slot in a Node: either a Leaf (depth 0) or a lazily
// loaded child Node (depth > 0), never both.
type Entry struct {
	Key   uint32
	Leaf  *Leaf
	Child *LazyChild
}

// LazyChild carries a child's identifier and, once loaded, the
// materialized Node it names. A child that has not been loaded yet keeps
// its stored identifier as its hash rather than recomputing it.
type LazyChild struct {
	id   string
	node *Node
	ser  *serializer.Serializer
}

// Load resolves the child, materializing it from its identifier the
// first time and caching the result for subsequent calls.
func (lc *LazyChild) Load() (*Node, error) {
	if lc.node != nil {
		return lc.node, nil
	}
	n, err := FromIdentifier(lc.id, lc.ser)
	if err != nil {
		return nil, err
	}
	lc.node = n
	return n, nil
}

// HashOrID returns the child's hash without loading it when possible: an
// unmodified, still-lazy child's stored identifier already is its hash.
func (lc *LazyChild) HashOrID() (string, error) {
	if lc.node == nil {
		return lc.id, nil
	}
	return lc.node.Hash()
}

// Node is one level of the tree. Depth 0 nodes hold leaves directly;
// deeper nodes hold children. Fan-out is unbounded: nodes never split.
type Node struct {
	Depth   int
	Entries []Entry

	ser *serializer.Serializer
}

// New returns the empty tree rooted at a fresh, depth-0 node.
func New(ser *serializer.Serializer) *Node {
	return &Node{ser: ser}
}

// internalOffset returns the index of the last entry whose key is <= k,
// or -1 if every entry's key is greater than k.
func internalOffset(entries []Entry, k uint32) int {
	off := -1
	for i, e := range entries {
		if e.Key <= k {
			off = i
		} else {
			break
		}
	}
	return off
}

// Set serializes key and value, and returns a new root with the
// resulting leaf inserted or replaced. The receiver is left untouched;
// every node on the path to the change is copied.
func (n *Node) Set(key, value any) (*Node, error) {
	leaf, err := NewLeaf(n.ser, key, value)
	if err != nil {
		return nil, err
	}
	return setLeaf(n, leaf.KeyU32, leaf)
}

func setLeaf(n *Node, kPrime uint32, leaf *Leaf) (*Node, error) {
	if n == nil || len(n.Entries) == 0 {
		ser := leaf.ser
		if n != nil {
			ser = n.ser
		}
		return &Node{Depth: 0, Entries: []Entry{{Key: kPrime, Leaf: leaf}}, ser: ser}, nil
	}

	off := internalOffset(n.Entries, kPrime)

	if n.Depth == 0 {
		entries := make([]Entry, len(n.Entries))
		copy(entries, n.Entries)

		if off >= 0 && entries[off].Key == kPrime {
			entries[off] = Entry{Key: kPrime, Leaf: leaf}
		} else {
			insertAt := off + 1
			entries = append(entries, Entry{})
			copy(entries[insertAt+1:], entries[insertAt:])
			entries[insertAt] = Entry{Key: kPrime, Leaf: leaf}
		}

		return &Node{Depth: 0, Entries: entries, ser: n.ser}, nil
	}

	if off < 0 {
		off = 0
	}
	target := n.Entries[off]

	if target.Leaf != nil {
		// Malformed invariant: a depth>0 node holding a leaf directly.
		// Repair by growing an intermediate node that holds both the
		// existing leaf and the new one.
		var entries []Entry
		switch {
		case kPrime == target.Key:
			entries = []Entry{{Key: kPrime, Leaf: leaf}}
		case kPrime < target.Key:
			entries = []Entry{{Key: kPrime, Leaf: leaf}, {Key: target.Key, Leaf: target.Leaf}}
		default:
			entries = []Entry{{Key: target.Key, Leaf: target.Leaf}, {Key: kPrime, Leaf: leaf}}
		}
		intermediate := &Node{Depth: n.Depth - 1, Entries: entries, ser: n.ser}

		rebuilt := make([]Entry, len(n.Entries))
		copy(rebuilt, n.Entries)
		rebuilt[off] = Entry{Key: kPrime, Child: &LazyChild{node: intermediate, ser: n.ser}}
		return &Node{Depth: n.Depth, Entries: rebuilt, ser: n.ser}, nil
	}

	childNode, err := target.Child.Load()
	if err != nil {
		return nil, err
	}

	newChild, err := setLeaf(childNode, kPrime, leaf)
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, len(n.Entries))
	copy(entries, n.Entries)
	// The replaced slot's key becomes the new leaf's surrogate, not the
	// child's own minimum key; this mirrors the tree's original behavior.
	entries[off] = Entry{Key: kPrime, Child: &LazyChild{node: newChild, ser: n.ser}}

	return &Node{Depth: n.Depth, Entries: entries, ser: n.ser}, nil
}

// GetGEByU32 returns the leaf reached by following the entry whose key
// is the largest one <= k at every level, or nil if the tree is empty.
// This is not the same as finding k exactly; see GetByU32.
func (n *Node) GetGEByU32(k uint32) (*Leaf, error) {
	if n == nil || len(n.Entries) == 0 {
		return nil, nil
	}

	off := internalOffset(n.Entries, k)
	if off < 0 {
		off = 0
	}
	entry := n.Entries[off]

	if n.Depth == 0 {
		return entry.Leaf, nil
	}

	child, err := entry.Child.Load()
	if err != nil {
		return nil, err
	}
	return child.GetGEByU32(k)
}

// GetByU32 returns the leaf whose surrogate key equals k exactly, or nil
// if there is none.
func (n *Node) GetByU32(k uint32) (*Leaf, error) {
	leaf, err := n.GetGEByU32(k)
	if err != nil {
		return nil, err
	}
	if leaf != nil && leaf.KeyU32 == k {
		return leaf, nil
	}
	return nil, nil
}

// Get serializes key the same way Set would and looks it up by the
// resulting surrogate.
func (n *Node) Get(key any) (*Leaf, error) {
	ref, err := n.ser.Serialize(key)
	if err != nil {
		return nil, fmt.Errorf("tree: serialize key: %w", err)
	}
	return n.GetByU32(refSurrogate(ref))
}

// Hash returns the handle this node's canonical tuple serializes to.
func (n *Node) Hash() (string, error) {
	wire := nodeWire{Depth: n.Depth}

	for _, e := range n.Entries {
		var (
			id  string
			err error
		)
		if n.Depth == 0 {
			id, err = e.Leaf.Hash()
		} else {
			id, err = e.Child.HashOrID()
		}
		if err != nil {
			return "", err
		}
		wire.Children = append(wire.Children, childWire{Key: e.Key, ID: id})
	}

	handle, err := n.ser.Serialize(wire)
	if err != nil {
		return "", fmt.Errorf("tree: hash node: %w", err)
	}
	return handle, nil
}

// FromIdentifier materializes the node stored under handle. At depth 0
// every leaf is loaded eagerly and checked against its indexed surrogate;
// deeper children stay lazy.
func FromIdentifier(handle string, ser *serializer.Serializer) (*Node, error) {
	var wire nodeWire
	if err := ser.Deserialize(handle, &wire); err != nil {
		return nil, fmt.Errorf("tree: load node %q: %w", handle, err)
	}

	entries := make([]Entry, len(wire.Children))

	if wire.Depth == 0 {
		for i, c := range wire.Children {
			leaf, err := LeafFromIdentifier(c.ID, ser)
			if err != nil {
				return nil, err
			}
			if leaf.KeyU32 != c.Key {
				return nil, fmt.Errorf("%w: leaf surrogate %d does not match indexed key %d", ErrIntegrity, leaf.KeyU32, c.Key)
			}
			entries[i] = Entry{Key: c.Key, Leaf: leaf}
		}
	} else {
		for i, c := range wire.Children {
			entries[i] = Entry{Key: c.Key, Child: &LazyChild{id: c.ID, ser: ser}}
		}
	}

	return &Node{Depth: wire.Depth, Entries: entries, ser: ser}, nil
}
