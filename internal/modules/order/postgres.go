package order

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/lib/pq"

	"github.com/georgemunganga/gluto-backend/internal/apperr"
)

type postgresRepo struct{ db *sql.DB }

func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

const orderColumns = `id, order_number, full_name, email, phone_number, company_name, position_title,
	address, inquiry_priority, items, total_amount, status, created_at, updated_at`

// Create stores the order row; lines are kept in one JSONB column so the
// snapshot is written atomically with the header.
func (r *postgresRepo) Create(ctx context.Context, o *Order) error {
	items, err := json.Marshal(o.Items)
	if err != nil {
		return apperr.Store("encode order items", err)
	}
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO orders (`+orderColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)`,
		o.ID, o.OrderNumber, o.FullName, o.Email, o.PhoneNumber, o.CompanyName, o.PositionTitle,
		o.Address, o.InquiryPriority, string(items), o.TotalAmount, o.Status, o.CreatedAt, o.UpdatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return apperr.Conflict("order number %s already exists", o.OrderNumber)
		}
		return apperr.Store("insert order", err)
	}
	return nil
}

func scanOrder(scan func(...any) error) (*Order, error) {
	o := &Order{}
	var items []byte
	err := scan(&o.ID, &o.OrderNumber, &o.FullName, &o.Email, &o.PhoneNumber, &o.CompanyName,
		&o.PositionTitle, &o.Address, &o.InquiryPriority, &items, &o.TotalAmount, &o.Status,
		&o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(items, &o.Items); err != nil {
		return nil, err
	}
	return o, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*Order, error) {
	o, err := scanOrder(r.db.QueryRowContext(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE id=$1`, id).Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("order", id)
	}
	if err != nil {
		return nil, apperr.Store("find order", err)
	}
	return o, nil
}

func (r *postgresRepo) List(ctx context.Context, status Status) ([]*Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders`
	args := []any{}
	if status != "" {
		query += ` WHERE status=$1`
		args = append(args, status)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperr.Store("list orders", err)
	}
	defer rows.Close()

	out := []*Order{}
	for rows.Next() {
		o, err := scanOrder(rows.Scan)
		if err != nil {
			return nil, apperr.Store("scan order", err)
		}
		out = append(out, o)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Store("list orders", err)
	}
	return out, nil
}

func (r *postgresRepo) UpdateStatus(ctx context.Context, id string, from, to Status, at time.Time) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE orders SET status=$1, updated_at=$2 WHERE id=$3 AND status=$4`,
		to, at, id, from)
	if err != nil {
		return apperr.Store("update order status", err)
	}
	if n, _ := res.RowsAffected(); n > 0 {
		return nil
	}
	if _, err := r.GetByID(ctx, id); err != nil {
		return err
	}
	return apperr.InvalidTransition("order %s is no longer %s", id, from)
}
