package avl

// Tree is a self-balancing binary search tree over values of type T.
// The zero value is not usable; construct with New.
type Tree[T any] struct {
	cmp  func(a, b T) int
	root *node[T]
	size int
}

type node[T any] struct {
	data    T
	left    *node[T]
	right   *node[T]
	height  int
	balance int
}

// New creates an empty tree ordered by cmp. cmp must return a value
// less than, equal to, or greater than zero when a orders before, equal
// to, or after b.
func New[T any](cmp func(a, b T) int) (*Tree[T], error) {
	if cmp == nil {
		return nil, ErrNilCompare
	}
	return &Tree[T]{cmp: cmp}, nil
}

// Size returns the number of values in the tree.
func (t *Tree[T]) Size() int {
	return t.size
}

// Height returns the height of the root, or -1 for an empty tree.
// A single-node tree has height 0.
func (t *Tree[T]) Height() int {
	return height(t.root)
}

// Insert adds v to the tree, rebalancing on the way back up. A value
// comparing equal to one already stored is not added and does not
// change the size.
func (t *Tree[T]) Insert(v T) {
	t.root = t.insert(t.root, v)
}

func (t *Tree[T]) insert(n *node[T], v T) *node[T] {
	if n == nil {
		t.size++
		return &node[T]{data: v}
	}
	switch c := t.cmp(v, n.data); {
	case c < 0:
		n.left = t.insert(n.left, v)
	case c > 0:
		n.right = t.insert(n.right, v)
	default:
		return n
	}
	return t.rebalance(n)
}

// Delete removes the stored value comparing equal to v and returns it.
// A node with two children is replaced by its in-order successor.
func (t *Tree[T]) Delete(v T) (T, error) {
	var zero T
	if t.root == nil {
		return zero, ErrEmptyTree
	}
	root, removed, err := t.delete(t.root, v)
	if err != nil {
		return zero, err
	}
	t.root = root
	t.size--
	return removed, nil
}

func (t *Tree[T]) delete(n *node[T], v T) (*node[T], T, error) {
	var zero T
	if n == nil {
		return nil, zero, ErrNotFound
	}
	switch c := t.cmp(v, n.data); {
	case c < 0:
		left, removed, err := t.delete(n.left, v)
		if err != nil {
			return nil, zero, err
		}
		n.left = left
		return t.rebalance(n), removed, nil
	case c > 0:
		right, removed, err := t.delete(n.right, v)
		if err != nil {
			return nil, zero, err
		}
		n.right = right
		return t.rebalance(n), removed, nil
	default:
		removed := n.data
		switch {
		case n.left == nil && n.right == nil:
			return nil, removed, nil
		case n.left == nil:
			return n.right, removed, nil
		case n.right == nil:
			return n.left, removed, nil
		default:
			right, succ := t.spliceLeftmost(n.right)
			n.right = right
			n.data = succ
			return t.rebalance(n), removed, nil
		}
	}
}

// spliceLeftmost removes the leftmost node of the subtree rooted at n
// and returns the new subtree root along with the removed value.
func (t *Tree[T]) spliceLeftmost(n *node[T]) (*node[T], T) {
	if n.left == nil {
		return n.right, n.data
	}
	left, succ := t.spliceLeftmost(n.left)
	n.left = left
	return t.rebalance(n), succ
}

// Find returns the stored value comparing equal to v.
func (t *Tree[T]) Find(v T) (T, error) {
	var zero T
	if t.root == nil {
		return zero, ErrEmptyTree
	}
	n := t.root
	for n != nil {
		switch c := t.cmp(v, n.data); {
		case c < 0:
			n = n.left
		case c > 0:
			n = n.right
		default:
			return n.data, nil
		}
	}
	return zero, ErrNotFound
}

// Contains reports whether a value comparing equal to v is stored.
func (t *Tree[T]) Contains(v T) bool {
	_, err := t.Find(v)
	return err == nil
}

// Predecessor returns the largest stored value ordering strictly before
// v; v itself must be in the tree. The boolean is false when v is the
// smallest value.
func (t *Tree[T]) Predecessor(v T) (T, bool, error) {
	var zero T
	if t.root == nil {
		return zero, false, ErrEmptyTree
	}
	var lowestRightAncestor *node[T]
	n := t.root
	for n != nil {
		switch c := t.cmp(v, n.data); {
		case c < 0:
			n = n.left
		case c > 0:
			lowestRightAncestor = n
			n = n.right
		default:
			if n.left == nil {
				if lowestRightAncestor == nil {
					return zero, false, nil
				}
				return lowestRightAncestor.data, true, nil
			}
			p := n.left
			for p.right != nil {
				p = p.right
			}
			return p.data, true, nil
		}
	}
	return zero, false, ErrNotFound
}

// Floor returns the largest stored value that does not order after
// probe, which need not itself be stored. An exact match is returned
// directly without descending further.
func (t *Tree[T]) Floor(probe T) (T, bool) {
	var best *node[T]
	n := t.root
	for n != nil {
		switch c := t.cmp(probe, n.data); {
		case c < 0:
			n = n.left
		case c > 0:
			best = n
			n = n.right
		default:
			return n.data, true
		}
	}
	if best == nil {
		var zero T
		return zero, false
	}
	return best.data, true
}

// KSmallest returns the k smallest values in ascending order, visiting
// only the subtrees needed to produce them.
func (t *Tree[T]) KSmallest(k int) ([]T, error) {
	if k < 0 || k > t.size {
		return nil, ErrKRange
	}
	out := make([]T, 0, k)
	t.kSmallest(t.root, k, &out)
	return out, nil
}

func (t *Tree[T]) kSmallest(n *node[T], k int, out *[]T) {
	if n == nil || len(*out) >= k {
		return
	}
	t.kSmallest(n.left, k, out)
	if len(*out) >= k {
		return
	}
	*out = append(*out, n.data)
	t.kSmallest(n.right, k, out)
}

// InOrder returns every stored value in ascending order.
func (t *Tree[T]) InOrder() []T {
	out := make([]T, 0, t.size)
	var walk func(*node[T])
	walk = func(n *node[T]) {
		if n == nil {
			return
		}
		walk(n.left)
		out = append(out, n.data)
		walk(n.right)
	}
	walk(t.root)
	return out
}

func height[T any](n *node[T]) int {
	if n == nil {
		return -1
	}
	return n.height
}

func (t *Tree[T]) update(n *node[T]) {
	lh, rh := height(n.left), height(n.right)
	if lh > rh {
		n.height = lh + 1
	} else {
		n.height = rh + 1
	}
	n.balance = lh - rh
}

func (t *Tree[T]) rotateLeft(n *node[T]) *node[T] {
	r := n.right
	n.right = r.left
	r.left = n
	t.update(n)
	t.update(r)
	return r
}

func (t *Tree[T]) rotateRight(n *node[T]) *node[T] {
	l := n.left
	n.left = l.right
	l.right = n
	t.update(n)
	t.update(l)
	return l
}

// rebalance recomputes height and balance factor for n and rotates if
// the AVL invariant is violated, applying the double rotation when the
// child leans the opposite way.
func (t *Tree[T]) rebalance(n *node[T]) *node[T] {
	t.update(n)
	switch {
	case n.balance > 1:
		if n.left.balance < 0 {
			n.left = t.rotateLeft(n.left)
		}
		n = t.rotateRight(n)
	case n.balance < -1:
		if n.right.balance > 0 {
			n.right = t.rotateRight(n.right)
		}
		n = t.rotateLeft(n)
	}
	return n
}
