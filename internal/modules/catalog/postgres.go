package catalog

import (
	"context"
	"database/sql"
	"errors"

	"github.com/georgemunganga/gluto-backend/internal/apperr"
)

type postgresRepo struct{ db *sql.DB }

func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

const productColumns = `id, name, description, price, availability, category_id, origin, weight,
	packaging, lead_time, shelf_life, ean_upc, image_url, is_active, created_at, updated_at`

func (r *postgresRepo) Create(ctx context.Context, p *Product) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO products (`+productColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16)`,
		p.ID, p.Name, p.Description, p.Price, p.Availability, p.CategoryID, p.Origin, p.Weight,
		p.Packaging, p.LeadTime, p.ShelfLife, p.EanUpc, p.ImageURL, p.IsActive, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return apperr.Store("insert product", err)
	}
	return nil
}

func scanProduct(scan func(...any) error) (*Product, error) {
	p := &Product{}
	err := scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Availability, &p.CategoryID,
		&p.Origin, &p.Weight, &p.Packaging, &p.LeadTime, &p.ShelfLife, &p.EanUpc,
		&p.ImageURL, &p.IsActive, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*Product, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+productColumns+` FROM products WHERE id=$1`, id)
	p, err := scanProduct(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("product", id)
	}
	if err != nil {
		return nil, apperr.Store("find product", err)
	}
	return p, nil
}

func (r *postgresRepo) ListActive(ctx context.Context, categoryID string) ([]*Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE is_active=true`
	args := []any{}
	if categoryID != "" {
		query += ` AND category_id=$1`
		args = append(args, categoryID)
	}
	query += ` ORDER BY seq ASC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperr.Store("list products", err)
	}
	defer rows.Close()

	out := []*Product{}
	for rows.Next() {
		p, err := scanProduct(rows.Scan)
		if err != nil {
			return nil, apperr.Store("scan product", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Store("list products", err)
	}
	return out, nil
}

func (r *postgresRepo) Update(ctx context.Context, p *Product) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE products
		SET name=$1, description=$2, price=$3, availability=$4, category_id=$5, origin=$6,
		    weight=$7, packaging=$8, lead_time=$9, shelf_life=$10, ean_upc=$11, image_url=$12,
		    is_active=$13, updated_at=$14
		WHERE id=$15`,
		p.Name, p.Description, p.Price, p.Availability, p.CategoryID, p.Origin,
		p.Weight, p.Packaging, p.LeadTime, p.ShelfLife, p.EanUpc, p.ImageURL,
		p.IsActive, p.UpdatedAt, p.ID)
	if err != nil {
		return apperr.Store("update product", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperr.NotFound("product", p.ID)
	}
	return nil
}
