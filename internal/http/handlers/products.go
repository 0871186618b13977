package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rodcosta/shophub/internal/cache"
	"github.com/rodcosta/shophub/internal/config"
	"github.com/rodcosta/shophub/internal/domain/product"
	"github.com/rodcosta/shophub/internal/utils"
)

type ProductStore interface {
	Create(ctx context.Context, req product.CreateProductRequest) (product.Product, error)
	List(ctx context.Context) ([]product.Product, error)
	GetByID(ctx context.Context, id string) (product.Product, error)
	Update(ctx context.Context, id string, req product.UpdateProductRequest) (product.Product, error)
	Delete(ctx context.Context, id string) error
}

type ProductsHandler struct {
	repo  ProductStore
	cache cache.ProductList
}

func NewProductsHandler(repo ProductStore, listCache cache.ProductList) *ProductsHandler {
	return &ProductsHandler{repo: repo, cache: listCache}
}

func (h *ProductsHandler) CreateProduct(ctx *gin.Context) {
	var req product.CreateProductRequest

	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	p, err := h.repo.Create(cctx, req)

	if err != nil {
		RespondInternal(ctx, "Could not create product")
		return
	}

	h.invalidate(cctx)

	ctx.JSON(http.StatusCreated, p)
}

func (h *ProductsHandler) ListProducts(ctx *gin.Context) {
	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	if h.cache != nil {
		if items, ok := h.cache.Get(cctx); ok {
			RespondJSONWithETag(ctx, http.StatusOK, gin.H{
				"items": items,
				"count": len(items),
			})
			return
		}
	}

	products, err := h.repo.List(cctx)

	if err != nil {
		RespondInternal(ctx, "Could not list products")
		return
	}

	if h.cache != nil {
		h.cache.Set(cctx, products)
	}

	RespondJSONWithETag(ctx, http.StatusOK, gin.H{
		"items": products,
		"count": len(products),
	})
}

func (h *ProductsHandler) GetProductByID(ctx *gin.Context) {
	id := ctx.Param("id")

	if !utils.IsUUID(id) {
		RespondBadRequest(ctx, "invalid_id", "product id must be a valid UUID")
		return
	}

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	p, err := h.repo.GetByID(cctx, id)

	if err != nil {
		if errors.Is(err, product.ErrNotFound) {
			RespondNotFound(ctx, "Product not found")
			return
		}
		RespondInternal(ctx, "Could not fetch product")
		return
	}

	ctx.JSON(http.StatusOK, p)
}

func (h *ProductsHandler) UpdateProduct(ctx *gin.Context) {
	id := ctx.Param("id")

	if !utils.IsUUID(id) {
		RespondBadRequest(ctx, "invalid_id", "product id must be a valid UUID")
		return
	}

	var req product.UpdateProductRequest

	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	p, err := h.repo.Update(cctx, id, req)

	if err != nil {
		if errors.Is(err, product.ErrNotFound) {
			RespondNotFound(ctx, "Product not found")
			return
		}
		RespondInternal(ctx, "Could not update product")
		return
	}

	h.invalidate(cctx)

	ctx.JSON(http.StatusOK, p)
}

func (h *ProductsHandler) DeleteProduct(ctx *gin.Context) {
	id := ctx.Param("id")

	if !utils.IsUUID(id) {
		RespondBadRequest(ctx, "invalid_id", "product id must be a valid UUID")
		return
	}

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	err := h.repo.Delete(cctx, id)

	if err != nil {
		if errors.Is(err, product.ErrNotFound) {
			RespondNotFound(ctx, "Product not found")
			return
		}
		RespondInternal(ctx, "Could not remove product")
		return
	}

	h.invalidate(cctx)

	ctx.Status(http.StatusNoContent)
}

func (h *ProductsHandler) invalidate(ctx context.Context) {
	if h.cache != nil {
		h.cache.Invalidate(ctx)
	}
}
