package site

import (
	"fmt"
	"slices"

	"github.com/google/uuid"
)

// Key is a stable handle for a launch or landing within its site. Unlike a
// position, a key stays valid while other records are added or removed.
type Key string

// NewKey generates a fresh random key.
func NewKey() Key {
	return Key(uuid.NewString())
}

// collection is an ordered arena: records addressed by key, display order
// kept as a separate key sequence. Every mutating method returns a new
// collection and leaves the receiver untouched.
type collection[T comparable] struct {
	items map[Key]T
	order []Key
}

func (c collection[T]) clone() collection[T] {
	items := make(map[Key]T, len(c.items)+1)
	for k, v := range c.items {
		items[k] = v
	}

	return collection[T]{items: items, order: slices.Clone(c.order)}
}

func (c collection[T]) len() int {
	return len(c.order)
}

func (c collection[T]) keyAt(kind string, index int) (Key, error) {
	if index < 0 || index >= len(c.order) {
		return "", fmt.Errorf("%w: %s %d, have %d", ErrIndexOutOfRange, kind, index, len(c.order))
	}

	return c.order[index], nil
}

func (c collection[T]) add(key Key, item T) collection[T] {
	next := c.clone()
	next.items[key] = item
	next.order = append(next.order, key)

	return next
}

func (c collection[T]) update(key Key, item T) collection[T] {
	next := c.clone()
	next.items[key] = item

	return next
}

func (c collection[T]) remove(key Key) collection[T] {
	next := c.clone()
	delete(next.items, key)
	next.order = slices.DeleteFunc(next.order, func(k Key) bool { return k == key })

	return next
}

func (c collection[T]) has(key Key) bool {
	_, ok := c.items[key]
	return ok
}

func (c collection[T]) values() []T {
	out := make([]T, 0, len(c.order))
	for _, k := range c.order {
		out = append(out, c.items[k])
	}

	return out
}

func (c collection[T]) keys() []Key {
	return slices.Clone(c.order)
}

func (c collection[T]) equal(other collection[T]) bool {
	return slices.Equal(c.values(), other.values())
}
