// Package avl implements a generic self-balancing binary search tree
// ordered by a user-supplied comparison function.
//
// The tree keeps the AVL invariant: for every node the heights of the
// two subtrees differ by at most one. Heights and balance factors are
// recomputed bottom-up after every insert and delete, rotating (single
// or double) wherever the balance factor leaves [-1, 1].
//
// Operations:
//
//   - Insert: O(log n); inserting a value that compares equal to an
//     existing one is a no-op.
//   - Delete: O(log n); a node with two children is replaced by its
//     in-order successor, never the predecessor.
//   - Find, Contains, Predecessor, Floor: O(log n).
//   - KSmallest: O(k + log n); visits only the subtrees needed to
//     produce the first k values.
//
// Errors:
//
//   - ErrNilCompare: the tree was constructed without an ordering.
//   - ErrEmptyTree: a lookup or delete ran against an empty tree.
//   - ErrNotFound: the value is not in a non-empty tree.
//   - ErrKRange: KSmallest was asked for k < 0 or k > Size().
package avl
