// Package dbx holds the database/sql plumbing shared by the Postgres
// repositories: the DBTX handle, transaction scoping with retry on
// serialization conflicts, and Postgres error classification.
package dbx

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// DBTX is the subset of database/sql used by the repositories.
// Both *sql.DB and *sql.Tx satisfy it.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Beginner starts transactions. *sql.DB satisfies it.
type Beginner interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error)
}

// TxOptions selects the isolation level of a transaction and how many times
// it is attempted when Postgres aborts it with a serialization failure or a
// deadlock. MaxAttempts below 1 means a single attempt.
type TxOptions struct {
	Isolation   sql.IsolationLevel
	ReadOnly    bool
	MaxAttempts int
}

// OwnerCheckTx is used for read-check-then-write sequences such as
// "load the record, verify the owner, update it". Repeatable read pins the
// snapshot the ownership check saw; a concurrent writer makes Postgres abort
// one side, which is then retried from the start.
var OwnerCheckTx = TxOptions{Isolation: sql.LevelRepeatableRead, MaxAttempts: 3}

// WithTx runs fn inside a transaction and commits when it returns nil. On an
// error or a panic the transaction is rolled back; panics are rethrown. If
// the error (from fn or from commit) is retryable, fn runs again in a fresh
// transaction, so fn must not keep side effects outside tx.
func WithTx(ctx context.Context, db Beginner, opts TxOptions, fn func(ctx context.Context, tx DBTX) error) error {
	attempts := max(opts.MaxAttempts, 1)

	var err error
	for attempt := 1; attempt <= attempts; attempt++ {
		err = runOnce(ctx, db, opts, fn)
		if err == nil || !IsRetryable(err) || ctx.Err() != nil {
			return err
		}
	}
	return fmt.Errorf("transaction gave up after %d attempts: %w", attempts, err)
}

func runOnce(ctx context.Context, db Beginner, opts TxOptions, fn func(ctx context.Context, tx DBTX) error) (err error) {
	tx, err := db.BeginTx(ctx, &sql.TxOptions{Isolation: opts.Isolation, ReadOnly: opts.ReadOnly})
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
				err = errors.Join(err, fmt.Errorf("rollback: %w", rbErr))
			}
			return
		}
		if cErr := tx.Commit(); cErr != nil {
			err = fmt.Errorf("commit: %w", cErr)
		}
	}()

	return fn(ctx, tx)
}
