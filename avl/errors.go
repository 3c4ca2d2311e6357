package avl

import "errors"

var (
	// ErrNilCompare indicates the tree was built without an ordering function.
	ErrNilCompare = errors.New("avl: ordering function must not be nil")
	// ErrEmptyTree indicates a lookup or delete against an empty tree.
	ErrEmptyTree = errors.New("avl: tree is empty")
	// ErrNotFound indicates the value is not present in a non-empty tree.
	ErrNotFound = errors.New("avl: value not found")
	// ErrKRange indicates KSmallest was called with k < 0 or k > Size().
	ErrKRange = errors.New("avl: k is out of range")
)
