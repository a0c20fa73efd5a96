// Package store provides the persistence adapter used by the booking engine:
// a byte store of named collections, each holding one JSON document (an
// ordered list of records). Backends exist for memory, local files, Redis and
// Postgres; the engine only sees the Store interface.
package store

import (
	"context"
	"errors"
)

// Collection names used by the booking engine.
const (
	CollectionUsers        = "users"
	CollectionSlots        = "slots"
	CollectionAppointments = "appointments"
)

// ErrUnavailable is returned when the underlying medium rejects a read or
// write (connection lost, quota exceeded, disabled storage). It is not
// retryable from the engine's point of view.
var ErrUnavailable = errors.New("storage unavailable")

// Store is the persistence adapter contract. Load returns the raw document
// for a collection, or nil if the collection has never been written; callers
// treat an absent collection as an empty list. Save replaces the collection's
// document as a single unit.
type Store interface {
	Load(ctx context.Context, collection string) ([]byte, error)
	Save(ctx context.Context, collection string, data []byte) error
}

// Pinger is implemented by backends with an external medium, for readiness
// probes.
type Pinger interface {
	Ping(ctx context.Context) error
}
