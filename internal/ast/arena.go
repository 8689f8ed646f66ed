package ast

import (
	"errors"
	"fmt"

	"fortio.org/safecast"
)

// ErrArenaExhausted is reported by Builder.Err once any arena refused an
// allocation because the shared node budget ran out.
var ErrArenaExhausted = errors.New("ast: arena node budget exhausted")

// Budget caps the number of slots handed out by all arenas that share it.
// A zero limit means unlimited.
type Budget struct {
	limit     uint32
	used      uint32
	exhausted bool
}

func NewBudget(limit uint32) *Budget {
	return &Budget{limit: limit}
}

func (b *Budget) take() bool {
	if b == nil {
		return true
	}
	if b.limit != 0 && b.used >= b.limit {
		b.exhausted = true
		return false
	}
	b.used++
	return true
}

// Used returns how many slots were handed out so far.
func (b *Budget) Used() uint32 {
	if b == nil {
		return 0
	}
	return b.used
}

// Exhausted reports whether an allocation was ever refused.
func (b *Budget) Exhausted() bool {
	return b != nil && b.exhausted
}

// Arena is an append-only store addressed by 1-based uint32 handles.
// Handle 0 is the null handle. Values are never freed one by one; the whole
// arena goes away on Release. Handles stay valid when the backing slice
// grows, so nodes may reference each other freely.
type Arena[T any] struct {
	data     []T
	budget   *Budget
	released bool
}

// NewArena creates and returns an *Arena[T] whose internal slice is allocated with a capacity of capHint.
// capHint is a hint for the initial capacity of the arena's underlying storage; zero is allowed.
func NewArena[T any](capHint uint) *Arena[T] {
	return &Arena[T]{
		data: make([]T, 0, capHint),
	}
}

func newBudgetedArena[T any](capHint uint, budget *Budget) *Arena[T] {
	a := NewArena[T](capHint)
	a.budget = budget
	return a
}

// Allocate stores value and returns its handle (1-based).
// Returns 0 when the arena was released or the budget is exhausted.
func (a *Arena[T]) Allocate(value T) uint32 {
	if a.released || !a.budget.take() {
		return 0
	}
	if len(a.data) == cap(a.data) {
		a.grow()
	}
	a.data = append(a.data, value)
	idx, err := safecast.Conv[uint32](len(a.data))
	if err != nil {
		panic(fmt.Errorf("arena overflow: %w", err))
	}
	return idx
}

// grow doubles the backing store.
func (a *Arena[T]) grow() {
	newCap := 2 * cap(a.data)
	if newCap == 0 {
		newCap = 16
	}
	next := make([]T, len(a.data), newCap)
	copy(next, a.data)
	a.data = next
}

func (a *Arena[T]) Get(index uint32) *T {
	if index == 0 || int(index) > len(a.data) {
		return nil
	}
	return &a.data[index-1]
}

// Range returns count consecutive values starting at handle start. READONLY.
func (a *Arena[T]) Range(start, count uint32) []T {
	if start == 0 || count == 0 {
		return nil
	}
	lo := int(start - 1)
	hi := lo + int(count)
	if hi > len(a.data) {
		return nil
	}
	return a.data[lo:hi:hi]
}

// Slice returns the live values in handle order (handle h is index h-1).
// The slice is a read-only view: it is invalidated by the next Allocate.
func (a *Arena[T]) Slice() []T {
	return a.data
}

func (a *Arena[T]) Len() uint32 {
	n, err := safecast.Conv[uint32](len(a.data))
	if err != nil {
		panic(fmt.Errorf("arena overflow: %w", err))
	}
	return n
}

func (a *Arena[T]) Cap() int {
	return cap(a.data)
}

// Release drops the backing store. Every handle becomes dangling:
// Get returns nil and Allocate fails from now on.
func (a *Arena[T]) Release() {
	a.data = nil
	a.released = true
}
