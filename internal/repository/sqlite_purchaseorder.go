package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/sitedesk/internal/db"
	"github.com/alexanderramin/sitedesk/internal/domain"
)

const purchaseOrderColumns = `id, project_id, number, vendor, material, unit, quantity, rate, status,
		order_date, due_date, remarks, created_at, updated_at`

// SQLitePurchaseOrderRepo implements PurchaseOrderRepo using a SQLite database.
type SQLitePurchaseOrderRepo struct {
	db db.DBTX
}

func NewSQLitePurchaseOrderRepo(conn db.DBTX) *SQLitePurchaseOrderRepo {
	return &SQLitePurchaseOrderRepo{db: conn}
}

func (r *SQLitePurchaseOrderRepo) Create(ctx context.Context, po *domain.PurchaseOrder) error {
	query := `INSERT INTO purchase_orders (` + purchaseOrderColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		po.ID,
		po.ProjectID,
		po.Number,
		po.Vendor,
		po.Material,
		po.Unit,
		po.Quantity,
		po.Rate,
		string(po.Status),
		po.OrderDate.Format(dateLayout),
		nullableTimeToString(po.DueDate, dateLayout),
		po.Remarks,
		po.CreatedAt.Format(time.RFC3339),
		po.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting purchase order: %w", err)
	}
	return nil
}

func (r *SQLitePurchaseOrderRepo) GetByID(ctx context.Context, id string) (*domain.PurchaseOrder, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+purchaseOrderColumns+` FROM purchase_orders WHERE id = ?`, id)
	po, err := scanPurchaseOrder(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("purchase order: %w", ErrNotFound)
	}
	return po, err
}

// GetByNumber looks an order up by its project-scoped number, ignoring case.
func (r *SQLitePurchaseOrderRepo) GetByNumber(ctx context.Context, projectID, number string) (*domain.PurchaseOrder, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+purchaseOrderColumns+` FROM purchase_orders WHERE project_id = ? AND UPPER(number) = UPPER(?)`,
		projectID, strings.TrimSpace(number))
	po, err := scanPurchaseOrder(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("purchase order %s: %w", number, ErrNotFound)
	}
	return po, err
}

func (r *SQLitePurchaseOrderRepo) List(ctx context.Context, projectID string, f OrderFilter, limit, offset int) ([]*domain.PurchaseOrder, error) {
	where, args := orderWhere(projectID, f)
	query := `SELECT ` + purchaseOrderColumns + ` FROM purchase_orders WHERE ` + where +
		` ORDER BY order_date DESC, created_at DESC, id LIMIT ? OFFSET ?`
	args = append(args, limit, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing purchase orders: %w", err)
	}
	defer rows.Close()

	var orders []*domain.PurchaseOrder
	for rows.Next() {
		po, err := scanPurchaseOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning purchase order row: %w", err)
		}
		orders = append(orders, po)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating purchase orders: %w", err)
	}
	return orders, nil
}

func (r *SQLitePurchaseOrderRepo) Count(ctx context.Context, projectID string, f OrderFilter) (int, error) {
	where, args := orderWhere(projectID, f)
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM purchase_orders WHERE `+where, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting purchase orders: %w", err)
	}
	return n, nil
}

// NextNumber allocates the next PO-NNNN number for the project. Callers
// that need it to stay unique must create the order in the same unit of
// work.
func (r *SQLitePurchaseOrderRepo) NextNumber(ctx context.Context, projectID string) (string, error) {
	seq, err := db.NextOrderSeq(ctx, r.db, projectID)
	if err != nil {
		return "", err
	}
	return db.OrderNumber(seq), nil
}

func (r *SQLitePurchaseOrderRepo) Update(ctx context.Context, po *domain.PurchaseOrder) error {
	query := `UPDATE purchase_orders SET number = ?, vendor = ?, material = ?, unit = ?, quantity = ?,
		rate = ?, status = ?, order_date = ?, due_date = ?, remarks = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		po.Number,
		po.Vendor,
		po.Material,
		po.Unit,
		po.Quantity,
		po.Rate,
		string(po.Status),
		po.OrderDate.Format(dateLayout),
		nullableTimeToString(po.DueDate, dateLayout),
		po.Remarks,
		po.UpdatedAt.Format(time.RFC3339),
		po.ID,
	)
	if err != nil {
		return fmt.Errorf("updating purchase order: %w", err)
	}
	return requireAffected(res, "purchase order")
}

func (r *SQLitePurchaseOrderRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM purchase_orders WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting purchase order: %w", err)
	}
	return requireAffected(res, "purchase order")
}

func orderWhere(projectID string, f OrderFilter) (string, []any) {
	clauses := []string{"project_id = ?"}
	args := []any{projectID}
	if s := strings.TrimSpace(f.Search); s != "" {
		clauses = append(clauses, `(number LIKE ? ESCAPE '\' OR vendor LIKE ? ESCAPE '\' OR material LIKE ? ESCAPE '\')`)
		p := likePattern(s)
		args = append(args, p, p, p)
	}
	if f.Status != "" {
		clauses = append(clauses, "status = ?")
		args = append(args, string(f.Status))
	}
	return strings.Join(clauses, " AND "), args
}

// scanPurchaseOrder returns sql.ErrNoRows unwrapped so callers can map it.
func scanPurchaseOrder(s scanner) (*domain.PurchaseOrder, error) {
	var po domain.PurchaseOrder
	var statusStr, orderDateStr, createdAtStr, updatedAtStr string
	var dueStr sql.NullString

	err := s.Scan(
		&po.ID, &po.ProjectID, &po.Number, &po.Vendor, &po.Material, &po.Unit,
		&po.Quantity, &po.Rate, &statusStr, &orderDateStr, &dueStr, &po.Remarks,
		&createdAtStr, &updatedAtStr,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning purchase order: %w", err)
	}

	po.Status = domain.OrderStatus(statusStr)
	if po.OrderDate, err = time.Parse(dateLayout, orderDateStr); err != nil {
		return nil, fmt.Errorf("parsing order_date: %w", err)
	}
	po.DueDate = parseNullableTime(dueStr, dateLayout)
	if err := parseTimestamps(createdAtStr, updatedAtStr, &po.CreatedAt, &po.UpdatedAt); err != nil {
		return nil, err
	}
	return &po, nil
}
