package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/sitedesk/internal/db"
	"github.com/alexanderramin/sitedesk/internal/domain"
)

const wbsNodeColumns = `id, project_id, parent_id, kind, order_index, row_index, code, name, unit,
		quantity, done_quantity, start_date, end_date, status, created_at, updated_at`

// SQLiteWBSNodeRepo implements WBSNodeRepo using a SQLite database.
type SQLiteWBSNodeRepo struct {
	db db.DBTX
}

func NewSQLiteWBSNodeRepo(conn db.DBTX) *SQLiteWBSNodeRepo {
	return &SQLiteWBSNodeRepo{db: conn}
}

func (r *SQLiteWBSNodeRepo) Create(ctx context.Context, n *domain.WBSNode) error {
	query := `INSERT INTO wbs_nodes (` + wbsNodeColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		n.ID,
		n.ProjectID,
		n.ParentID, // *string: nil becomes SQL NULL
		string(n.Kind),
		n.OrderIndex,
		nullableIntToValue(n.RowIndex),
		n.Code,
		n.Name,
		n.Unit,
		n.Quantity,
		n.DoneQuantity,
		nullableTimeToString(n.StartDate, dateLayout),
		nullableTimeToString(n.EndDate, dateLayout),
		string(n.Status),
		n.CreatedAt.Format(time.RFC3339),
		n.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting wbs node: %w", err)
	}
	return nil
}

func (r *SQLiteWBSNodeRepo) GetByID(ctx context.Context, id string) (*domain.WBSNode, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+wbsNodeColumns+` FROM wbs_nodes WHERE id = ?`, id)
	n, err := scanWBSNode(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("wbs node: %w", ErrNotFound)
	}
	return n, err
}

// ListByProject returns every node of the project ordered for tree
// rebuilding: parents before children, siblings by order_index.
func (r *SQLiteWBSNodeRepo) ListByProject(ctx context.Context, projectID string) ([]*domain.WBSNode, error) {
	query := `SELECT ` + wbsNodeColumns + ` FROM wbs_nodes WHERE project_id = ?
		ORDER BY CASE kind WHEN 'group' THEN 0 WHEN 'item' THEN 1 WHEN 'task' THEN 2 ELSE 3 END, order_index`
	rows, err := r.db.QueryContext(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("listing wbs nodes by project: %w", err)
	}
	defer rows.Close()

	var nodes []*domain.WBSNode
	for rows.Next() {
		n, err := scanWBSNode(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning wbs node row: %w", err)
		}
		nodes = append(nodes, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating wbs nodes: %w", err)
	}
	return nodes, nil
}

func (r *SQLiteWBSNodeRepo) Update(ctx context.Context, n *domain.WBSNode) error {
	query := `UPDATE wbs_nodes SET parent_id = ?, kind = ?, order_index = ?, row_index = ?, code = ?,
		name = ?, unit = ?, quantity = ?, done_quantity = ?, start_date = ?, end_date = ?,
		status = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		n.ParentID,
		string(n.Kind),
		n.OrderIndex,
		nullableIntToValue(n.RowIndex),
		n.Code,
		n.Name,
		n.Unit,
		n.Quantity,
		n.DoneQuantity,
		nullableTimeToString(n.StartDate, dateLayout),
		nullableTimeToString(n.EndDate, dateLayout),
		string(n.Status),
		n.UpdatedAt.Format(time.RFC3339),
		n.ID,
	)
	if err != nil {
		return fmt.Errorf("updating wbs node: %w", err)
	}
	return requireAffected(res, "wbs node")
}

// DeleteByProject removes the project's whole schedule.
func (r *SQLiteWBSNodeRepo) DeleteByProject(ctx context.Context, projectID string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM wbs_nodes WHERE project_id = ?`, projectID); err != nil {
		return fmt.Errorf("deleting wbs nodes: %w", err)
	}
	return nil
}

// scanWBSNode returns sql.ErrNoRows unwrapped so callers can map it.
func scanWBSNode(s scanner) (*domain.WBSNode, error) {
	var n domain.WBSNode
	var kindStr, statusStr, createdAtStr, updatedAtStr string
	var parentID, startStr, endStr sql.NullString
	var rowIndex sql.NullInt64

	err := s.Scan(
		&n.ID, &n.ProjectID, &parentID, &kindStr, &n.OrderIndex, &rowIndex,
		&n.Code, &n.Name, &n.Unit, &n.Quantity, &n.DoneQuantity,
		&startStr, &endStr, &statusStr, &createdAtStr, &updatedAtStr,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning wbs node: %w", err)
	}

	n.Kind = domain.NodeKind(kindStr)
	n.Status = domain.ScheduleStatus(statusStr)
	if parentID.Valid {
		n.ParentID = &parentID.String
	}
	n.RowIndex = nullableInt(rowIndex)
	n.StartDate = parseNullableTime(startStr, dateLayout)
	n.EndDate = parseNullableTime(endStr, dateLayout)
	if err := parseTimestamps(createdAtStr, updatedAtStr, &n.CreatedAt, &n.UpdatedAt); err != nil {
		return nil, err
	}
	return &n, nil
}
