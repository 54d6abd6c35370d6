package storage

import "context"

// Transactor runs a function inside a single database transaction.
// Storage methods called with the ctx passed to fn join that transaction.
// The transaction is committed if fn returns nil and rolled back otherwise,
// including when fn panics.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Pinger reports whether the storage backend is reachable
type Pinger interface {
	Ping(ctx context.Context) error
}
