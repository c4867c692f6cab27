package sqlstore

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// withTx runs fn on a dedicated connection. The transaction is rolled back on
// any error or panic and the connection is always returned to the pool.
// Rollback failures are dropped so the original error reaches the caller.
func (db *DB) withTx(ctx context.Context, fn func(tx *sqlx.Tx) error) (err error) {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if err = fn(tx); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
