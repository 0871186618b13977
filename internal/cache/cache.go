package cache

import (
	"context"

	"github.com/rodcosta/shophub/internal/domain/product"
)

// ProductList caches the unfiltered catalog listing. Implementations must be
// safe for concurrent use; a miss is never an error.
type ProductList interface {
	Get(ctx context.Context) ([]product.Product, bool)
	Set(ctx context.Context, products []product.Product)
	Invalidate(ctx context.Context)
}
