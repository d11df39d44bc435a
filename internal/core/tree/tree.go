// Package tree implements an ordered index as a red-black tree with parent
// links. Cursors are plain node pointers: Next and Prev climb parent links,
// so a cursor stays usable across inserts and deletes elsewhere in the tree
// as long as its own node is not deleted.
package tree

type color uint8

const (
	red color = iota
	black
)

// Node is one entry of a Tree.
type Node[T any] struct {
	parent, left, right *Node[T]
	color               color
	owner               *Tree[T]
	value               T
}

// Value returns the item stored in the node.
func (n *Node[T]) Value() T { return n.value }

// Next returns the in-order successor of n, or nil at the end.
func (n *Node[T]) Next() *Node[T] {
	if n.right != nil {
		n = n.right
		for n.left != nil {
			n = n.left
		}
		return n
	}
	for n.parent != nil {
		if n.parent.left == n {
			return n.parent
		}
		n = n.parent
	}
	return nil
}

// Prev returns the in-order predecessor of n, or nil at the beginning.
func (n *Node[T]) Prev() *Node[T] {
	if n.left != nil {
		n = n.left
		for n.right != nil {
			n = n.right
		}
		return n
	}
	for n.parent != nil {
		if n.parent.right == n {
			return n.parent
		}
		n = n.parent
	}
	return nil
}

// Tree is an ordered index over items of type T. It does not require unique
// keys: an item inserted later that compares equal to existing items is
// placed after them in iteration order.
type Tree[T any] struct {
	root *Node[T]
	cmp  func(a, b T) int
	size int
}

// New returns an empty tree ordered by cmp, which follows the usual
// strcmp/cmp.Compare convention.
func New[T any](cmp func(a, b T) int) *Tree[T] {
	return &Tree[T]{cmp: cmp}
}

// Len returns the number of items in the tree.
func (t *Tree[T]) Len() int { return t.size }

// Min returns the first node, or nil if the tree is empty.
func (t *Tree[T]) Min() *Node[T] {
	n := t.root
	if n == nil {
		return nil
	}
	for n.left != nil {
		n = n.left
	}
	return n
}

// Max returns the last node, or nil if the tree is empty.
func (t *Tree[T]) Max() *Node[T] {
	n := t.root
	if n == nil {
		return nil
	}
	for n.right != nil {
		n = n.right
	}
	return n
}

// Find returns the first node met on the search path that compares equal to
// probe, or nil.
func (t *Tree[T]) Find(probe T) *Node[T] {
	n := t.root
	for n != nil {
		c := t.cmp(probe, n.value)
		switch {
		case c < 0:
			n = n.left
		case c > 0:
			n = n.right
		default:
			return n
		}
	}
	return nil
}

// Contains reports whether n is currently a member of t.
func (t *Tree[T]) Contains(n *Node[T]) bool {
	return n != nil && n.owner == t
}

// Ascend calls fn for every item in order until fn returns false.
func (t *Tree[T]) Ascend(fn func(T) bool) {
	for n := t.Min(); n != nil; n = n.Next() {
		if !fn(n.value) {
			return
		}
	}
}

// Descend calls fn for every item in reverse order until fn returns false.
func (t *Tree[T]) Descend(fn func(T) bool) {
	for n := t.Max(); n != nil; n = n.Prev() {
		if !fn(n.value) {
			return
		}
	}
}

// Insert adds v and returns its node.
func (t *Tree[T]) Insert(v T) *Node[T] {
	n := &Node[T]{value: v, owner: t, color: red}
	t.link(n)
	t.size++

	// i climbs the tree while red-red violations remain; n stays put
	i := n
	for i.parent != nil && i.parent.color == red {
		// parent is red, so it is not the root and the grandparent exists
		g := i.parent.parent
		if i.parent == g.left {
			uncle := g.right
			if uncle != nil && uncle.color == red {
				i.parent.color = black
				uncle.color = black
				g.color = red
				i = g
				continue
			}
			if i == i.parent.right {
				i = i.parent
				t.rotateLeft(i)
			}
			i.parent.color = black
			g.color = red
			t.rotateRight(g)
		} else {
			uncle := g.left
			if uncle != nil && uncle.color == red {
				i.parent.color = black
				uncle.color = black
				g.color = red
				i = g
				continue
			}
			if i == i.parent.left {
				i = i.parent
				t.rotateRight(i)
			}
			i.parent.color = black
			g.color = red
			t.rotateLeft(g)
		}
	}
	t.root.color = black
	return n
}

// link places i as a leaf. Equal keys descend right, which keeps insertion
// order among equal items.
func (t *Tree[T]) link(i *Node[T]) {
	var p *Node[T]
	n := t.root
	for n != nil {
		p = n
		if t.cmp(i.value, n.value) < 0 {
			n = n.left
		} else {
			n = n.right
		}
	}
	i.parent = p
	switch {
	case p == nil:
		t.root = i
	case t.cmp(i.value, p.value) < 0:
		p.left = i
	default:
		p.right = i
	}
}

// Delete removes n from the tree. n must be a node of t, normally one
// returned by Find or Insert; anything else is a programming error and
// panics.
func (t *Tree[T]) Delete(n *Node[T]) {
	if n == nil || n.owner != t {
		panic("tree: delete of a node that is not in this tree")
	}

	splice := n
	if n.left != nil && n.right != nil {
		splice = n.Next()
	}
	orphan := splice.left
	if orphan == nil {
		orphan = splice.right
	}
	orphanParent := splice.parent
	if orphan != nil {
		orphan.parent = orphanParent
	}
	t.replaceChild(splice.parent, splice, orphan)
	needFixup := splice.color == black

	if splice != n {
		// move splice into n's position, taking over n's color
		t.replaceChild(n.parent, n, splice)
		splice.parent = n.parent
		splice.left = n.left
		splice.right = n.right
		splice.color = n.color
		if orphanParent == n {
			orphanParent = splice
		}
		if n.left != nil {
			n.left.parent = splice
		}
		if n.right != nil {
			n.right.parent = splice
		}
	}

	n.parent, n.left, n.right, n.owner = nil, nil, nil, nil
	t.size--

	if needFixup {
		t.deleteFixup(orphan, orphanParent)
	}
}

func (t *Tree[T]) deleteFixup(x, xp *Node[T]) {
	for xp != nil && isBlack(x) {
		if x == xp.left {
			s := xp.right
			if s.color == red {
				s.color = black
				xp.color = red
				t.rotateLeft(xp)
				s = xp.right
			}
			if isBlack(s.left) && isBlack(s.right) {
				s.color = red
				x = xp
				xp = x.parent
				continue
			}
			if isBlack(s.right) {
				s.left.color = black
				s.color = red
				t.rotateRight(s)
				s = xp.right
			}
			s.color = xp.color
			xp.color = black
			if s.right != nil {
				s.right.color = black
			}
			t.rotateLeft(xp)
			x, xp = t.root, nil
		} else {
			s := xp.left
			if s.color == red {
				s.color = black
				xp.color = red
				t.rotateRight(xp)
				s = xp.left
			}
			if isBlack(s.left) && isBlack(s.right) {
				s.color = red
				x = xp
				xp = x.parent
				continue
			}
			if isBlack(s.left) {
				s.right.color = black
				s.color = red
				t.rotateLeft(s)
				s = xp.left
			}
			s.color = xp.color
			xp.color = black
			if s.left != nil {
				s.left.color = black
			}
			t.rotateRight(xp)
			x, xp = t.root, nil
		}
	}
	if x != nil {
		x.color = black
	}
}

func isBlack[T any](n *Node[T]) bool {
	return n == nil || n.color == black
}

func (t *Tree[T]) replaceChild(parent, old, repl *Node[T]) {
	switch {
	case parent == nil:
		t.root = repl
	case parent.left == old:
		parent.left = repl
	default:
		parent.right = repl
	}
}

func (t *Tree[T]) rotateLeft(n *Node[T]) {
	o := n.right
	n.right = o.left
	if o.left != nil {
		o.left.parent = n
	}
	o.parent = n.parent
	t.replaceChild(n.parent, n, o)
	o.left = n
	n.parent = o
}

func (t *Tree[T]) rotateRight(n *Node[T]) {
	o := n.left
	n.left = o.right
	if o.right != nil {
		o.right.parent = n
	}
	o.parent = n.parent
	t.replaceChild(n.parent, n, o)
	o.right = n
	n.parent = o
}
