package testutil

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/alexanderramin/grindstone/internal/db"
)

// FaultyUoW runs real transactions but injects Err into one write: the
// FailOn-th ExecContext (counted from 1) or the first whose SQL contains
// Match, whichever is set. Reads are never failed. The transaction is rolled
// back, so tests can assert that nothing from the failed call persisted.
type FaultyUoW struct {
	DB     *sql.DB
	FailOn int32
	Match  string
	Err    error

	execs atomic.Int32
}

// Execs reports how many writes were attempted across all transactions.
func (u *FaultyUoW) Execs() int {
	return int(u.execs.Load())
}

func (u *FaultyUoW) WithinTx(ctx context.Context, fn func(ctx context.Context, tx db.DBTX) error) error {
	tx, err := u.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	if err := fn(ctx, &faultyTx{DBTX: tx, uow: u}); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

type faultyTx struct {
	db.DBTX
	uow *FaultyUoW
}

func (f *faultyTx) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	n := f.uow.execs.Add(1)
	if f.uow.FailOn > 0 && n == f.uow.FailOn {
		return nil, f.uow.Err
	}
	if f.uow.Match != "" && strings.Contains(query, f.uow.Match) {
		return nil, f.uow.Err
	}
	return f.DBTX.ExecContext(ctx, query, args...)
}
