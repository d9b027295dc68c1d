package shared

import "context"

// TxManager runs fn inside a unit of work. Repositories called with the
// ctx passed to fn take part in the same transaction.
type TxManager interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// NoopTxManager calls fn directly. Used by in-memory fakes.
type NoopTxManager struct{}

// WithinTx implements TxManager
func (NoopTxManager) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
