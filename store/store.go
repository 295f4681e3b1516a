// Package store provides the persistence collaborator boundary for
// declarative graph and mapping definitions. The engine core only ever
// sees these interfaces; the storage medium is the caller's business
package store

import "errors"

// ErrNotFound is returned when no record exists for an id
var ErrNotFound = errors.New("store: not found")

// Store is a list/get/put/delete keyed record store
type Store[T any] interface {
	List() ([]string, error)
	Get(id string) (T, error)
	Put(id string, value T) error
	Delete(id string) error
}
