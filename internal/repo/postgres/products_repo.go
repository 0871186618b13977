package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rodcosta/shophub/internal/domain/product"
	"github.com/rodcosta/shophub/internal/observability"
)

type ProductsRepo struct {
	pool *pgxpool.Pool
	prom *observability.Prom
}

// constructor function

func NewProductsRepo(pool *pgxpool.Pool, prom *observability.Prom) *ProductsRepo {
	return &ProductsRepo{pool: pool, prom: prom}
}

func (r *ProductsRepo) observe(op string, fn func() error) error {
	if r.prom != nil {
		return r.prom.ObserveDB(op, fn)
	}
	return fn()
}

func (r *ProductsRepo) Create(ctx context.Context, req product.CreateProductRequest) (product.Product, error) {
	p := product.NewFromCreateRequest(req)

	err := r.observe("products.create", func() error {
		_, err := r.pool.Exec(ctx,
			`INSERT INTO products(id, name, price, image_url, description, created_at, updated_at)
			 VALUES($1,$2,$3,$4,$5,$6,$7)`,
			p.ID, p.Name, p.Price, p.ImageURL, p.Description, p.CreatedAt, p.UpdatedAt)
		return err
	})

	if err != nil {
		return product.Product{}, err
	}

	return p, nil
}

func (r *ProductsRepo) List(ctx context.Context) ([]product.Product, error) {
	var out []product.Product

	err := r.observe("products.list", func() error {
		rows, err := r.pool.Query(ctx,
			`SELECT id, name, price, image_url, description, created_at, updated_at
			 FROM products
			 ORDER BY created_at ASC, id ASC`)

		if err != nil {
			return err
		}

		defer rows.Close()

		out = make([]product.Product, 0)

		for rows.Next() {
			var p product.Product

			err = rows.Scan(&p.ID, &p.Name, &p.Price, &p.ImageURL, &p.Description, &p.CreatedAt, &p.UpdatedAt)

			if err != nil {
				return err
			}

			out = append(out, p)
		}

		return rows.Err()
	})

	if err != nil {
		return nil, err
	}

	return out, nil
}

func (r *ProductsRepo) GetByID(ctx context.Context, id string) (product.Product, error) {
	var p product.Product

	err := r.observe("products.get_by_id", func() error {
		return r.pool.QueryRow(ctx,
			`SELECT id, name, price, image_url, description, created_at, updated_at
			 FROM products WHERE id = $1`, id,
		).Scan(&p.ID, &p.Name, &p.Price, &p.ImageURL, &p.Description, &p.CreatedAt, &p.UpdatedAt)
	})

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return product.Product{}, product.ErrNotFound
		}

		return product.Product{}, err
	}

	return p, nil
}

func (r *ProductsRepo) Update(ctx context.Context, id string, req product.UpdateProductRequest) (product.Product, error) {
	var p product.Product

	err := r.observe("products.update", func() error {
		return r.pool.QueryRow(
			ctx,
			`UPDATE products
				SET name = $2,
						price = $3,
						image_url = $4,
						description = $5,
						updated_at = NOW()
			WHERE id = $1
			RETURNING id, name, price, image_url, description, created_at, updated_at`,
			id,
			req.Name,
			req.Price,
			req.ImageURL,
			req.Description,
		).Scan(
			&p.ID,
			&p.Name,
			&p.Price,
			&p.ImageURL,
			&p.Description,
			&p.CreatedAt,
			&p.UpdatedAt,
		)
	})

	if err != nil {
		// if there are no rows matching the id
		if errors.Is(err, pgx.ErrNoRows) {
			return product.Product{}, product.ErrNotFound
		}
		// if it is any other type of error
		return product.Product{}, err
	}

	return p, nil
}

func (r *ProductsRepo) Delete(ctx context.Context, id string) error {
	return r.observe("products.delete", func() error {
		tag, err := r.pool.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)

		if err != nil {
			return err
		}

		// if no rows were deleted as a result return a not found error
		if tag.RowsAffected() == 0 {
			return product.ErrNotFound
		}

		return nil
	})
}
