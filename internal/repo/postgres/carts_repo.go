package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rodcosta/shophub/internal/domain/cart"
	"github.com/rodcosta/shophub/internal/domain/product"
	"github.com/rodcosta/shophub/internal/observability"
)

type CartsRepo struct {
	pool *pgxpool.Pool
	prom *observability.Prom
}

func NewCartsRepo(pool *pgxpool.Pool, prom *observability.Prom) *CartsRepo {
	return &CartsRepo{pool: pool, prom: prom}
}

func (r *CartsRepo) observe(op string, fn func() error) error {
	if r.prom != nil {
		return r.prom.ObserveDB(op, fn)
	}
	return fn()
}

// AddItem upserts one cart line inside a transaction. The product row is read
// first so a dangling product id surfaces as product.ErrNotFound, and the
// conflict target makes concurrent adds increment instead of duplicate.
func (r *CartsRepo) AddItem(ctx context.Context, userID, productID string, quantity int) (cart.Item, error) {
	var item cart.Item

	err := r.observe("carts.add_item", func() error {
		tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})

		if err != nil {
			return err
		}

		defer func() { _ = tx.Rollback(ctx) }()

		var name string
		var price float64

		err = tx.QueryRow(ctx,
			`SELECT name, price FROM products WHERE id = $1`, productID,
		).Scan(&name, &price)

		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return product.ErrNotFound
			}
			return err
		}

		err = tx.QueryRow(ctx,
			`INSERT INTO cart_items (user_id, product_id, quantity, updated_at)
			 VALUES ($1, $2, $3, NOW())
			 ON CONFLICT (user_id, product_id)
			 DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity,
			               updated_at = NOW()
			 RETURNING user_id, product_id, quantity, updated_at`,
			userID, productID, quantity,
		).Scan(&item.UserID, &item.ProductID, &item.Quantity, &item.UpdatedAt)

		if err != nil {
			return err
		}

		item.ProductName = name
		item.UnitPrice = price

		return tx.Commit(ctx)
	})

	if err != nil {
		return cart.Item{}, err
	}

	return item, nil
}

func (r *CartsRepo) RemoveItem(ctx context.Context, userID, productID string) error {
	return r.observe("carts.remove_item", func() error {
		tag, err := r.pool.Exec(ctx,
			`DELETE FROM cart_items WHERE user_id = $1 AND product_id = $2`,
			userID, productID)

		if err != nil {
			return err
		}

		if tag.RowsAffected() == 0 {
			return cart.ErrItemNotFound
		}

		return nil
	})
}

func (r *CartsRepo) ListByUser(ctx context.Context, userID string) ([]cart.Item, error) {
	var out []cart.Item

	err := r.observe("carts.list_by_user", func() error {
		rows, err := r.pool.Query(ctx,
			`SELECT ci.user_id, ci.product_id, p.name, p.price, ci.quantity, ci.updated_at
			 FROM cart_items ci
			 JOIN products p ON p.id = ci.product_id
			 WHERE ci.user_id = $1
			 ORDER BY ci.updated_at ASC, ci.product_id ASC`,
			userID)

		if err != nil {
			return err
		}

		defer rows.Close()

		out = make([]cart.Item, 0)

		for rows.Next() {
			var it cart.Item

			err = rows.Scan(&it.UserID, &it.ProductID, &it.ProductName, &it.UnitPrice, &it.Quantity, &it.UpdatedAt)

			if err != nil {
				return err
			}

			out = append(out, it)
		}

		return rows.Err()
	})

	if err != nil {
		return nil, err
	}

	return out, nil
}

// Clear is idempotent: clearing an already empty cart succeeds.
func (r *CartsRepo) Clear(ctx context.Context, userID string) error {
	return r.observe("carts.clear", func() error {
		_, err := r.pool.Exec(ctx, `DELETE FROM cart_items WHERE user_id = $1`, userID)
		return err
	})
}
