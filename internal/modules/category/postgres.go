package category

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"github.com/georgemunganga/gluto-backend/internal/apperr"
)

type postgresRepo struct{ db *sql.DB }

func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

const categoryColumns = `id, name, description, parent_id, is_active, created_at, updated_at`

func (r *postgresRepo) Create(ctx context.Context, c *Category) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO categories (id, name, description, parent_id, is_active, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		c.ID, c.Name, c.Description, c.ParentID, c.IsActive, c.CreatedAt, c.UpdatedAt)
	return translate("insert category", c.Name, err)
}

func scanCategory(scan func(...any) error) (*Category, error) {
	c := &Category{}
	var parent sql.NullString
	if err := scan(&c.ID, &c.Name, &c.Description, &parent, &c.IsActive, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	if parent.Valid {
		c.ParentID = &parent.String
	}
	return c, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*Category, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+categoryColumns+` FROM categories WHERE id=$1`, id)
	c, err := scanCategory(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("category", id)
	}
	if err != nil {
		return nil, apperr.Store("find category", err)
	}
	return c, nil
}

func (r *postgresRepo) List(ctx context.Context, activeOnly bool) ([]*Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories`
	if activeOnly {
		query += ` WHERE is_active=true`
	}
	query += ` ORDER BY name ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, apperr.Store("list categories", err)
	}
	defer rows.Close()

	var out []*Category
	for rows.Next() {
		c, err := scanCategory(rows.Scan)
		if err != nil {
			return nil, apperr.Store("scan category", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Store("list categories", err)
	}
	return out, nil
}

func (r *postgresRepo) Update(ctx context.Context, c *Category) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE categories
		SET name=$1, description=$2, parent_id=$3, is_active=$4, updated_at=$5
		WHERE id=$6`,
		c.Name, c.Description, c.ParentID, c.IsActive, c.UpdatedAt, c.ID)
	if err != nil {
		return translate("update category", c.Name, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperr.NotFound("category", c.ID)
	}
	return nil
}

func translate(op, name string, err error) error {
	if err == nil {
		return nil
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		return apperr.Conflict("category name %q already exists", name)
	}
	return apperr.Store(op, err)
}
