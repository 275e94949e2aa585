package storage

import (
	"errors"
	"sync"
)

// ErrNotFound is returned when an entity with the given ID is not found.
var ErrNotFound = errors.New("entity not found")

// ErrEmptyID is returned when trying to store an entity with an empty ID.
var ErrEmptyID = errors.New("empty entity ID")

// ErrDuplicateID is returned by Insert when the ID is already taken.
var ErrDuplicateID = errors.New("entity ID already exists")

// Entity is anything that can be kept in a Repository.
type Entity interface {
	Key() string
}

// Cloner is implemented by entities that hold slices or maps. LocalStorage
// clones them on the way in and on the way out so callers never share
// backing arrays with the stored copy.
type Cloner[T any] interface {
	Clone() T
}

func clone[T Entity](e T) T {
	if c, ok := any(e).(Cloner[T]); ok {
		return c.Clone()
	}
	return e
}

// Repository is the main interface for our storage layer.
type Repository[T Entity] interface {
	List() []T
	Get(id string) (T, error)
	Insert(entity T) error
	Update(entity T) error
	Delete(id string) error
	Len() int
}

// LocalStorage provides an in-memory implementation of Repository.
// Entities are held by value and List returns them in insertion order.
type LocalStorage[T Entity] struct {
	mu    sync.RWMutex
	m     map[string]T
	order []string
}

// NewLocalStorage instantiates a new LocalStorage with an empty map.
func NewLocalStorage[T Entity]() *LocalStorage[T] {
	return &LocalStorage[T]{
		m: map[string]T{},
	}
}

// List returns a snapshot of every entity in insertion order.
func (l *LocalStorage[T]) List() []T {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]T, 0, len(l.order))
	for _, id := range l.order {
		out = append(out, clone(l.m[id]))
	}
	return out
}

// Get retrieves an entity by ID.
// Returns ErrNotFound if the entity is not found.
func (l *LocalStorage[T]) Get(id string) (T, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	e, ok := l.m[id]
	if !ok {
		var zero T
		return zero, ErrNotFound
	}
	return clone(e), nil
}

// Insert adds a new entity.
// Returns ErrEmptyID for a blank key and ErrDuplicateID if the key is taken.
func (l *LocalStorage[T]) Insert(entity T) error {
	id := entity.Key()
	if id == "" {
		return ErrEmptyID
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.m[id]; ok {
		return ErrDuplicateID
	}
	l.m[id] = clone(entity)
	l.order = append(l.order, id)
	return nil
}

// Update replaces an existing entity, keeping its position.
// Returns ErrNotFound if the entity is not found.
func (l *LocalStorage[T]) Update(entity T) error {
	id := entity.Key()

	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.m[id]; !ok {
		return ErrNotFound
	}
	l.m[id] = clone(entity)
	return nil
}

// Delete removes an entity by ID.
// Returns ErrNotFound if the entity is not found.
func (l *LocalStorage[T]) Delete(id string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.m[id]; !ok {
		return ErrNotFound
	}
	delete(l.m, id)
	for i, k := range l.order {
		if k == id {
			l.order = append(l.order[:i], l.order[i+1:]...)
			break
		}
	}
	return nil
}

func (l *LocalStorage[T]) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.m)
}
