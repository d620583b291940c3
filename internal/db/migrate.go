package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// Tolerate "duplicate column name" errors from ALTER TABLE
			// since the migration system re-runs all statements.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	if err := migrateBackfillOrderNumbers(db); err != nil {
		return fmt.Errorf("backfilling purchase order numbers: %w", err)
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS projects (
		id          TEXT PRIMARY KEY,
		short_id    TEXT NOT NULL DEFAULT '',
		name        TEXT NOT NULL,
		client      TEXT NOT NULL DEFAULT '',
		start_date  TEXT NOT NULL,
		target_date TEXT,
		status      TEXT NOT NULL DEFAULT 'active'
		            CHECK(status IN ('active','on_hold','completed')),
		created_at  TEXT NOT NULL,
		updated_at  TEXT NOT NULL
	)`,

	`CREATE UNIQUE INDEX IF NOT EXISTS idx_projects_short_id ON projects(short_id) WHERE short_id != ''`,

	`CREATE TABLE IF NOT EXISTS wbs_nodes (
		id            TEXT PRIMARY KEY,
		project_id    TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		parent_id     TEXT REFERENCES wbs_nodes(id) ON DELETE CASCADE,
		kind          TEXT NOT NULL
		              CHECK(kind IN ('group','item','task','leaf')),
		order_index   INTEGER NOT NULL DEFAULT 0,
		row_index     INTEGER,
		code          TEXT NOT NULL DEFAULT '',
		name          TEXT NOT NULL,
		unit          TEXT NOT NULL DEFAULT '',
		quantity      REAL NOT NULL DEFAULT 0 CHECK(quantity >= 0),
		done_quantity REAL NOT NULL DEFAULT 0 CHECK(done_quantity >= 0),
		start_date    TEXT,
		end_date      TEXT,
		status        TEXT NOT NULL DEFAULT 'not_started'
		              CHECK(status IN ('not_started','in_progress','completed','on_hold')),
		created_at    TEXT NOT NULL,
		updated_at    TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_wbs_nodes_project ON wbs_nodes(project_id)`,
	`CREATE INDEX IF NOT EXISTS idx_wbs_nodes_parent ON wbs_nodes(parent_id)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_wbs_nodes_row ON wbs_nodes(project_id, row_index) WHERE row_index IS NOT NULL`,

	`CREATE TABLE IF NOT EXISTS purchase_orders (
		id         TEXT PRIMARY KEY,
		project_id TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		number     TEXT NOT NULL DEFAULT '',
		vendor     TEXT NOT NULL,
		material   TEXT NOT NULL,
		unit       TEXT NOT NULL DEFAULT '',
		quantity   REAL NOT NULL DEFAULT 0 CHECK(quantity >= 0),
		rate       REAL NOT NULL DEFAULT 0 CHECK(rate >= 0),
		status     TEXT NOT NULL DEFAULT 'draft'
		           CHECK(status IN ('draft','issued','partially_received','received','cancelled')),
		order_date TEXT NOT NULL,
		due_date   TEXT,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_purchase_orders_project ON purchase_orders(project_id)`,
	`CREATE INDEX IF NOT EXISTS idx_purchase_orders_status ON purchase_orders(status)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_purchase_orders_number ON purchase_orders(project_id, number) WHERE number != ''`,

	// Site location and free-text remarks were added after the first release.
	`ALTER TABLE projects ADD COLUMN location TEXT NOT NULL DEFAULT ''`,
	`ALTER TABLE purchase_orders ADD COLUMN remarks TEXT NOT NULL DEFAULT ''`,
}

// migrateBackfillOrderNumbers gives orders created before numbering existed
// a project-scoped number (PO-0001, PO-0002, ...) in order-date order,
// continuing after the highest number already used. Idempotent.
func migrateBackfillOrderNumbers(db *sql.DB) error {
	ctx := context.Background()

	var count int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM purchase_orders WHERE number = ''`).Scan(&count); err != nil {
		return fmt.Errorf("checking purchase order numbers: %w", err)
	}
	if count == 0 {
		return nil
	}

	rows, err := db.QueryContext(ctx,
		`SELECT id, project_id FROM purchase_orders WHERE number = '' ORDER BY project_id, order_date, created_at`)
	if err != nil {
		return fmt.Errorf("listing unnumbered orders: %w", err)
	}
	type pending struct{ id, projectID string }
	var todo []pending
	for rows.Next() {
		var p pending
		if err := rows.Scan(&p.id, &p.projectID); err != nil {
			rows.Close()
			return fmt.Errorf("scanning order: %w", err)
		}
		todo = append(todo, p)
	}
	rows.Close()

	next := map[string]int{}
	for _, p := range todo {
		n, ok := next[p.projectID]
		if !ok {
			if n, err = NextOrderSeq(ctx, db, p.projectID); err != nil {
				return err
			}
		}
		if _, err := db.ExecContext(ctx,
			`UPDATE purchase_orders SET number = ? WHERE id = ? AND number = ''`, OrderNumber(n), p.id); err != nil {
			return fmt.Errorf("numbering order %s: %w", p.id, err)
		}
		next[p.projectID] = n + 1
	}
	return nil
}

// OrderNumber formats a project-scoped order sequence.
func OrderNumber(seq int) string {
	return fmt.Sprintf("PO-%04d", seq)
}

// NextOrderSeq returns one past the highest PO-NNNN number used in project.
func NextOrderSeq(ctx context.Context, q DBTX, projectID string) (int, error) {
	var max sql.NullInt64
	err := q.QueryRowContext(ctx,
		`SELECT MAX(CAST(SUBSTR(number, 4) AS INTEGER)) FROM purchase_orders
		 WHERE project_id = ? AND number GLOB 'PO-[0-9]*'`, projectID).Scan(&max)
	if err != nil {
		return 0, fmt.Errorf("reading highest order number: %w", err)
	}
	return int(max.Int64) + 1, nil
}
