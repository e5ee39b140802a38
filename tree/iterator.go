package tree

import "io"

// Iterator walks a tree depth-first, left to right, yielding every leaf
// in surrogate order. It loads lazy children only as the walk reaches
// them.
type Iterator struct {
	stack []iterFrame
	done  bool
}

type iterFrame struct {
	entries []Entry
	idx     int
	depth   int
}

// NewIterator returns an Iterator over n.
func NewIterator(n *Node) *Iterator {
	it := &Iterator{}
	if n != nil && len(n.Entries) > 0 {
		it.stack = []iterFrame{{entries: n.Entries, depth: n.Depth}}
	}
	return it
}

// Next returns the next leaf in surrogate order, or io.EOF once the walk
// is exhausted.
func (it *Iterator) Next() (*Leaf, error) {
	if it.done {
		return nil, io.EOF
	}

	for len(it.stack) > 0 {
		top := &it.stack[len(it.stack)-1]

		if top.idx >= len(top.entries) {
			it.stack = it.stack[:len(it.stack)-1]
			continue
		}

		entry := top.entries[top.idx]
		top.idx++

		if top.depth == 0 {
			return entry.Leaf, nil
		}

		child, err := entry.Child.Load()
		if err != nil {
			it.done = true
			return nil, err
		}
		if len(child.Entries) > 0 {
			it.stack = append(it.stack, iterFrame{entries: child.Entries, depth: child.Depth})
		}
	}

	it.done = true
	return nil, io.EOF
}
