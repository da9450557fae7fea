package interpreter

import "hash/fnv"

// Persistent Hash Array Mapped Trie (HAMT) of variable bindings.
// Every update returns a new version sharing structure with the old one,
// so cloning a context is a pointer copy.

const (
	hamtBits = 5
	hamtSize = 1 << hamtBits // 32
	hamtMask = hamtSize - 1
)

// Bindings is an immutable map from variable name to bound term.
type Bindings struct {
	root  *hamtNode
	count int
}

// hamtNode is a node in the HAMT
type hamtNode struct {
	bitmap uint32        // which indices are populated
	nodes  []interface{} // hamtEntry or *hamtNode
}

// hamtEntry holds a binding
type hamtEntry struct {
	hash  uint32
	name  string
	value Term
}

// EmptyBindings returns an empty binding set
func EmptyBindings() *Bindings {
	return &Bindings{}
}

// BindingsFrom creates bindings from a plain map
func BindingsFrom(vars map[string]Term) *Bindings {
	b := EmptyBindings()
	for name, value := range vars {
		b = b.Put(name, value)
	}
	return b
}

// Len returns the number of bindings
func (b *Bindings) Len() int {
	return b.count
}

// Get returns the term bound to name
func (b *Bindings) Get(name string) (Term, bool) {
	if b.root == nil {
		return nil, false
	}
	v := b.root.get(hashString(name), name, 0)
	return v, v != nil
}

// Put returns new bindings with name bound to value
func (b *Bindings) Put(name string, value Term) *Bindings {
	hash := hashString(name)

	root := b.root
	if root == nil {
		root = &hamtNode{}
	}
	newRoot, added := root.put(hash, name, value, 0)

	newCount := b.count
	if added {
		newCount++
	}

	return &Bindings{
		root:  newRoot,
		count: newCount,
	}
}

// Names returns all bound names
func (b *Bindings) Names() []string {
	names := make([]string, 0, b.count)
	if b.root != nil {
		b.root.collectNames(&names)
	}
	return names
}

// --- hamtNode methods ---

func (n *hamtNode) get(hash uint32, name string, shift uint) Term {
	if shift >= 32 {
		// Collision bucket search
		for _, node := range n.nodes {
			if entry, ok := node.(hamtEntry); ok && entry.name == name {
				return entry.value
			}
		}
		return nil
	}

	idx := (hash >> shift) & hamtMask
	bit := uint32(1) << idx

	if n.bitmap&bit == 0 {
		return nil
	}

	pos := popcount(n.bitmap & (bit - 1))

	switch v := n.nodes[pos].(type) {
	case hamtEntry:
		if v.hash == hash && v.name == name {
			return v.value
		}
		return nil
	case *hamtNode:
		return v.get(hash, name, shift+hamtBits)
	}

	return nil
}

func (n *hamtNode) put(hash uint32, name string, value Term, shift uint) (*hamtNode, bool) {
	newNode := &hamtNode{
		bitmap: n.bitmap,
		nodes:  make([]interface{}, len(n.nodes)),
	}
	copy(newNode.nodes, n.nodes)

	// Exhausted hash bits: the node is a collision bucket
	if shift >= 32 {
		for i, node := range newNode.nodes {
			if entry, ok := node.(hamtEntry); ok && entry.name == name {
				newNode.nodes[i] = hamtEntry{hash: hash, name: name, value: value}
				return newNode, false
			}
		}
		newNode.nodes = append(newNode.nodes, hamtEntry{hash: hash, name: name, value: value})
		return newNode, true
	}

	idx := (hash >> shift) & hamtMask
	bit := uint32(1) << idx

	if n.bitmap&bit == 0 {
		newNode.bitmap |= bit
		pos := popcount(newNode.bitmap & (bit - 1))

		newNode.nodes = append(newNode.nodes, nil)
		copy(newNode.nodes[pos+1:], newNode.nodes[pos:])
		newNode.nodes[pos] = hamtEntry{hash: hash, name: name, value: value}

		return newNode, true
	}

	pos := popcount(n.bitmap & (bit - 1))

	switch v := newNode.nodes[pos].(type) {
	case hamtEntry:
		if v.hash == hash && v.name == name {
			newNode.nodes[pos] = hamtEntry{hash: hash, name: name, value: value}
			return newNode, false
		}

		// Push both entries down into a child node
		child := &hamtNode{}
		child, _ = child.put(v.hash, v.name, v.value, shift+hamtBits)
		child, _ = child.put(hash, name, value, shift+hamtBits)

		newNode.nodes[pos] = child
		return newNode, true

	case *hamtNode:
		newChild, added := v.put(hash, name, value, shift+hamtBits)
		newNode.nodes[pos] = newChild
		return newNode, added
	}

	return newNode, false
}

func (n *hamtNode) collectNames(names *[]string) {
	for _, node := range n.nodes {
		switch v := node.(type) {
		case hamtEntry:
			*names = append(*names, v.name)
		case *hamtNode:
			v.collectNames(names)
		}
	}
}

func hashString(s string) uint32 {
	h := fnv.New32a()
	h.Write([]byte(s))
	return h.Sum32()
}

// popcount counts set bits
func popcount(x uint32) int {
	x = x - ((x >> 1) & 0x55555555)
	x = (x & 0x33333333) + ((x >> 2) & 0x33333333)
	x = (x + (x >> 4)) & 0x0f0f0f0f
	x = x + (x >> 8)
	x = x + (x >> 16)
	return int(x & 0x3f)
}
