// Package rowstore talks to the external tabular store that persists the
// catalog: one named table per resource, rows addressed by position within
// the current listing. The external system normalizes every field to a
// string, so Row is a flat string map.
package rowstore

import (
	"context"
	"errors"
)

// Row is one record as the store returns it, all values stringly typed.
type Row map[string]string

var (
	// ErrRowNotFound means the addressed index is beyond the current row count.
	ErrRowNotFound = errors.New("row not found")
	// ErrUnavailable wraps any transport or auth failure against the store.
	ErrUnavailable = errors.New("row store unavailable")
)

// Store is the adapter contract the services program against. Every call is
// a network round-trip; there is no local caching and no atomicity across
// concurrent writers.
type Store interface {
	ListRows(ctx context.Context, table string) ([]Row, error)
	AppendRow(ctx context.Context, table string, fields Row) (Row, error)
	ReplaceRow(ctx context.Context, table string, index int, fields Row) (Row, error)
	RemoveRow(ctx context.Context, table string, index int) error
}
