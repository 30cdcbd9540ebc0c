// Copyright 2026 The Cellward Authors
// SPDX-License-Identifier: Apache-2.0

package wardlist

import (
	"github.com/cellward/cellward/lib/arena"
	"github.com/cellward/cellward/lib/ward"
)

// node is one element: a payload and two index links. The whole node
// sits in a single cell, so reading or rewriting links presents the
// same token as reading the payload.
type node[T any] struct {
	value T
	prev  arena.Index
	next  arena.Index
}

// listHeader is the list's own bookkeeping, held in a cell tied to
// the same anchor as the nodes.
type listHeader struct {
	head   arena.Index
	tail   arena.Index
	length int
}

// List is a doubly-linked list whose storage is entirely cell-backed.
// The zero value is not usable; call [New].
type List[T any] struct {
	nodes  *arena.Arena[node[T]]
	header *ward.Cell[listHeader]
}

// New returns an empty list.
func New[T any]() *List[T] {
	nodes := arena.New[node[T]]()
	return &List[T]{
		nodes:  nodes,
		header: ward.NewCell(nodes.Anchor(), listHeader{}),
	}
}

// ProjectionAnchor implements [ward.Projectable]. It is exported so
// the scope entry points can project the list; the list's own methods
// already open scopes internally, so callers who project the list
// themselves must not call those methods inside.
func (l *List[T]) ProjectionAnchor() *ward.Anchor {
	return l.nodes.ProjectionAnchor()
}

// Len returns the number of elements.
func (l *List[T]) Len() int {
	length, _ := ward.WithRead(l, func(view *List[T], token *ward.Token) (int, error) {
		return view.LenWith(token), nil
	})
	return length
}

// IsEmpty reports whether the list has no elements.
func (l *List[T]) IsEmpty() bool {
	return l.Len() == 0
}

// PushFront inserts value at the front.
func (l *List[T]) PushFront(value T) {
	_ = ward.Run(l, func(view *List[T], token *ward.Token) error {
		view.pushFront(token, value)
		return nil
	})
}

// PushBack inserts value at the back.
func (l *List[T]) PushBack(value T) {
	_ = ward.Run(l, func(view *List[T], token *ward.Token) error {
		view.pushBack(token, value)
		return nil
	})
}

// PopFront removes and returns the front element. The second return
// is false when the list is empty.
func (l *List[T]) PopFront() (T, bool) {
	result, _ := ward.With(l, func(view *List[T], token *ward.Token) (popped[T], error) {
		value, ok := view.popFront(token)
		return popped[T]{value: value, ok: ok}, nil
	})
	return result.value, result.ok
}

// PopBack removes and returns the back element. The second return is
// false when the list is empty.
func (l *List[T]) PopBack() (T, bool) {
	result, _ := ward.With(l, func(view *List[T], token *ward.Token) (popped[T], error) {
		value, ok := view.popBack(token)
		return popped[T]{value: value, ok: ok}, nil
	})
	return result.value, result.ok
}

// Front returns the front element without removing it.
func (l *List[T]) Front() (T, bool) {
	return l.peek(func(header listHeader) arena.Index { return header.head })
}

// Back returns the back element without removing it.
func (l *List[T]) Back() (T, bool) {
	return l.peek(func(header listHeader) arena.Index { return header.tail })
}

// At returns the element at position (zero-based), walking from the
// front. The second return is false when position is out of range.
func (l *List[T]) At(position int) (T, bool) {
	result, _ := ward.WithRead(l, func(view *List[T], token *ward.Token) (popped[T], error) {
		value, ok := view.AtWith(token, position)
		return popped[T]{value: value, ok: ok}, nil
	})
	return result.value, result.ok
}

// Set replaces the element at position. Returns false when position
// is out of range.
func (l *List[T]) Set(position int, value T) bool {
	ok, _ := ward.With(l, func(view *List[T], token *ward.Token) (bool, error) {
		return view.SetWith(token, position, value), nil
	})
	return ok
}

// Values returns the elements front to back.
func (l *List[T]) Values() []T {
	values, _ := ward.WithRead(l, func(view *List[T], token *ward.Token) ([]T, error) {
		header := view.header.Get(token)
		values := make([]T, 0, header.length)
		for current := header.head; !current.IsNone(); {
			n := view.nodes.Cell(current).Get(token)
			values = append(values, n.value)
			current = n.next
		}
		return values, nil
	})
	return values
}

// Each calls visit for every element, front to back. visit must not
// call methods of the same list: Each holds the list's projection
// for the whole walk.
func (l *List[T]) Each(visit func(T)) {
	_, _ = ward.WithRead(l, func(view *List[T], token *ward.Token) (struct{}, error) {
		header := view.header.Get(token)
		for current := header.head; !current.IsNone(); {
			n := view.nodes.Cell(current).Get(token)
			visit(n.value)
			current = n.next
		}
		return struct{}{}, nil
	})
}

// Clear removes all elements.
func (l *List[T]) Clear() {
	_ = ward.Run(l, func(view *List[T], token *ward.Token) error {
		for {
			if _, ok := view.popBack(token); !ok {
				return nil
			}
		}
	})
}

// Append moves every element of other to the back of l, leaving
// other empty. Both lists are projected under one shared brand, so a
// single token performs the cross-aggregate move. Appending a list
// to itself is the overlapping-projection violation and faults.
func (l *List[T]) Append(other *List[T]) {
	_, _ = ward.With2(l, other, func(destination, source *List[T], token *ward.Token) (struct{}, error) {
		for {
			value, ok := source.popFront(token)
			if !ok {
				return struct{}{}, nil
			}
			destination.pushBack(token, value)
		}
	})
}

// popped carries a value/ok pair through the scope result position.
type popped[T any] struct {
	value T
	ok    bool
}

func (l *List[T]) peek(pick func(listHeader) arena.Index) (T, bool) {
	result, _ := ward.WithRead(l, func(view *List[T], token *ward.Token) (popped[T], error) {
		index := pick(view.header.Get(token))
		if index.IsNone() {
			return popped[T]{}, nil
		}
		return popped[T]{value: view.nodes.Cell(index).Get(token).value, ok: true}, nil
	})
	return result.value, result.ok
}

// Token-level operations. These run inside a scope someone else
// opened — the value-level methods above open it, or a caller who
// needs several operations under one projection (or, like Append,
// two lists under one brand) opens it once and passes the token
// through.

// LenWith returns the number of elements under the caller's token.
func (l *List[T]) LenWith(token *ward.Token) int {
	return l.header.Get(token).length
}

// PushFrontWith inserts value at the front under the caller's token.
func (l *List[T]) PushFrontWith(token *ward.Token, value T) {
	l.pushFront(token, value)
}

// PushBackWith inserts value at the back under the caller's token.
func (l *List[T]) PushBackWith(token *ward.Token, value T) {
	l.pushBack(token, value)
}

// PopFrontWith removes and returns the front element under the
// caller's token.
func (l *List[T]) PopFrontWith(token *ward.Token) (T, bool) {
	return l.popFront(token)
}

// PopBackWith removes and returns the back element under the
// caller's token.
func (l *List[T]) PopBackWith(token *ward.Token) (T, bool) {
	return l.popBack(token)
}

// AtWith returns the element at position under the caller's token.
func (l *List[T]) AtWith(token *ward.Token, position int) (T, bool) {
	index := l.indexAt(token, position)
	if index.IsNone() {
		var zero T
		return zero, false
	}
	return l.nodes.Cell(index).Get(token).value, true
}

// SetWith replaces the element at position under the caller's token.
// Returns false when position is out of range.
func (l *List[T]) SetWith(token *ward.Token, position int, value T) bool {
	index := l.indexAt(token, position)
	if index.IsNone() {
		return false
	}
	l.nodes.Cell(index).Update(token, func(n *node[T]) { n.value = value })
	return true
}

func (l *List[T]) pushFront(token *ward.Token, value T) {
	index := l.nodes.Alloc(token, node[T]{value: value})
	l.header.Update(token, func(header *listHeader) {
		if header.head.IsNone() {
			header.head, header.tail = index, index
		} else {
			l.nodes.Cell(header.head).Update(token, func(n *node[T]) { n.prev = index })
			l.nodes.Cell(index).Update(token, func(n *node[T]) { n.next = header.head })
			header.head = index
		}
		header.length++
	})
}

func (l *List[T]) pushBack(token *ward.Token, value T) {
	index := l.nodes.Alloc(token, node[T]{value: value})
	l.header.Update(token, func(header *listHeader) {
		if header.tail.IsNone() {
			header.head, header.tail = index, index
		} else {
			l.nodes.Cell(header.tail).Update(token, func(n *node[T]) { n.next = index })
			l.nodes.Cell(index).Update(token, func(n *node[T]) { n.prev = header.tail })
			header.tail = index
		}
		header.length++
	})
}

func (l *List[T]) popFront(token *ward.Token) (T, bool) {
	head := l.header.Get(token).head
	if head.IsNone() {
		var zero T
		return zero, false
	}
	next := l.nodes.Cell(head).Get(token).next
	l.header.Update(token, func(header *listHeader) {
		header.head = next
		if next.IsNone() {
			header.tail = arena.Index{}
		} else {
			l.nodes.Cell(next).Update(token, func(n *node[T]) { n.prev = arena.Index{} })
		}
		header.length--
	})
	return l.nodes.Free(token, head).value, true
}

func (l *List[T]) popBack(token *ward.Token) (T, bool) {
	tail := l.header.Get(token).tail
	if tail.IsNone() {
		var zero T
		return zero, false
	}
	prev := l.nodes.Cell(tail).Get(token).prev
	l.header.Update(token, func(header *listHeader) {
		header.tail = prev
		if prev.IsNone() {
			header.head = arena.Index{}
		} else {
			l.nodes.Cell(prev).Update(token, func(n *node[T]) { n.next = arena.Index{} })
		}
		header.length--
	})
	return l.nodes.Free(token, tail).value, true
}

func (l *List[T]) indexAt(token *ward.Token, position int) arena.Index {
	if position < 0 {
		return arena.Index{}
	}
	current := l.header.Get(token).head
	for position > 0 && !current.IsNone() {
		current = l.nodes.Cell(current).Get(token).next
		position--
	}
	return current
}
