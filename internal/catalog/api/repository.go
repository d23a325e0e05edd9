package api

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/odyssey-erp/productdesk/internal/catalog"
)

const uniqueViolation = "23505"

// Repository persists products.
type Repository interface {
	List(ctx context.Context) ([]catalog.Product, error)
	Create(ctx context.Context, in catalog.Input, missingLetter string) (catalog.Product, error)
	Update(ctx context.Context, id int64, in catalog.Input, missingLetter string) (catalog.Product, error)
	Delete(ctx context.Context, id int64) error
}

type repository struct {
	db *pgxpool.Pool
}

// NewRepository returns a Postgres backed Repository.
func NewRepository(db *pgxpool.Pool) Repository {
	return &repository{db: db}
}

const productColumns = `id, name, price::double precision, sku, missing_letter`

func (r *repository) List(ctx context.Context) ([]catalog.Product, error) {
	rows, err := r.db.Query(ctx, `SELECT `+productColumns+` FROM products ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	products := make([]catalog.Product, 0)
	for rows.Next() {
		var p catalog.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Price, &p.SKU, &p.MissingLetter); err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (r *repository) Create(ctx context.Context, in catalog.Input, missingLetter string) (catalog.Product, error) {
	query := `INSERT INTO products (name, price, sku, missing_letter, created_at, updated_at)
VALUES ($1, $2, $3, $4, NOW(), NOW()) RETURNING ` + productColumns
	var p catalog.Product
	err := r.db.QueryRow(ctx, query, in.Name, in.Price, in.SKU, missingLetter).
		Scan(&p.ID, &p.Name, &p.Price, &p.SKU, &p.MissingLetter)
	if err != nil {
		return catalog.Product{}, mapWriteError(err)
	}
	return p, nil
}

func (r *repository) Update(ctx context.Context, id int64, in catalog.Input, missingLetter string) (catalog.Product, error) {
	query := `UPDATE products SET name = $1, price = $2, sku = $3, missing_letter = $4, updated_at = NOW()
WHERE id = $5 RETURNING ` + productColumns
	var p catalog.Product
	err := r.db.QueryRow(ctx, query, in.Name, in.Price, in.SKU, missingLetter, id).
		Scan(&p.ID, &p.Name, &p.Price, &p.SKU, &p.MissingLetter)
	if err != nil {
		return catalog.Product{}, mapWriteError(err)
	}
	return p, nil
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrProductNotFound
	}
	return nil
}

func mapWriteError(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrProductNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return fmt.Errorf("%w (%s)", ErrSKUTaken, pgErr.ConstraintName)
	}
	return err
}
