package testutil

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/alexanderramin/sitedesk/internal/db"
)

// FailingWriteUoW runs transactions like the real unit of work but makes the
// FailOn-th write into Table return Err, so tests can break a schedule
// import after some of its nodes are already written. Reads and writes to
// other tables pass through.
type FailingWriteUoW struct {
	DB     *sql.DB
	Table  string
	FailOn int
	Err    error
}

func (u *FailingWriteUoW) WithinTx(ctx context.Context, fn func(ctx context.Context, tx db.DBTX) error) error {
	tx, err := u.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	w := &failingWrites{DBTX: tx, table: u.Table, failOn: u.FailOn, err: u.Err}
	if err := fn(ctx, w); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

type failingWrites struct {
	db.DBTX
	table  string
	failOn int
	seen   int
	err    error
}

func (f *failingWrites) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	if writesTo(query, f.table) {
		f.seen++
		if f.seen == f.failOn {
			return nil, f.err
		}
	}
	return f.DBTX.ExecContext(ctx, query, args...)
}

// writesTo reports whether query inserts into, updates or deletes from table.
func writesTo(query, table string) bool {
	q := strings.ToLower(strings.Join(strings.Fields(query), " "))
	for _, prefix := range []string{"insert into ", "update ", "delete from "} {
		if strings.HasPrefix(q, prefix+table+" ") || strings.HasPrefix(q, prefix+table+"(") {
			return true
		}
	}
	return false
}
