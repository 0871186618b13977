package cache

import (
	"context"
	"sync"
	"time"

	"github.com/rodcosta/shophub/internal/domain/product"
)

// MemoryProductList is the fallback when Redis is not configured. Single
// process only; every mutation on products must call Invalidate.
type MemoryProductList struct {
	mu  sync.RWMutex
	ttl time.Duration

	items []product.Product
	exp   time.Time
	set   bool
}

func NewMemoryProductList(ttl time.Duration) *MemoryProductList {
	if ttl <= 0 {
		ttl = 5 * time.Second
	}

	return &MemoryProductList{ttl: ttl}
}

func (c *MemoryProductList) Get(_ context.Context) ([]product.Product, bool) {
	now := time.Now()

	c.mu.RLock()
	items, exp, set := c.items, c.exp, c.set
	c.mu.RUnlock()

	if !set {
		return nil, false
	}

	if now.After(exp) {
		c.Invalidate(context.Background())
		return nil, false
	}

	out := make([]product.Product, len(items))
	copy(out, items)

	return out, true
}

func (c *MemoryProductList) Set(_ context.Context, products []product.Product) {
	items := make([]product.Product, len(products))
	copy(items, products)

	c.mu.Lock()
	c.items = items
	c.exp = time.Now().Add(c.ttl)
	c.set = true
	c.mu.Unlock()
}

func (c *MemoryProductList) Invalidate(_ context.Context) {
	c.mu.Lock()
	c.items = nil
	c.set = false
	c.mu.Unlock()
}
