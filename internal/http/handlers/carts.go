package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rodcosta/shophub/internal/config"
	"github.com/rodcosta/shophub/internal/domain/cart"
	"github.com/rodcosta/shophub/internal/domain/product"
	"github.com/rodcosta/shophub/internal/utils"
)

type CartStore interface {
	AddItem(ctx context.Context, userID, productID string, quantity int) (cart.Item, error)
	RemoveItem(ctx context.Context, userID, productID string) error
	ListByUser(ctx context.Context, userID string) ([]cart.Item, error)
	Clear(ctx context.Context, userID string) error
}

type CartsHandler struct {
	repo CartStore
}

func NewCartsHandler(repo CartStore) *CartsHandler {
	return &CartsHandler{repo: repo}
}

func (h *CartsHandler) AddItem(ctx *gin.Context) {
	var req cart.AddItemRequest

	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	item, err := h.repo.AddItem(cctx, req.UserID, req.ProductID, req.Quantity)

	if err != nil {
		if errors.Is(err, product.ErrNotFound) {
			RespondNotFound(ctx, "Product not found")
			return
		}
		RespondInternal(ctx, "Could not add item to cart")
		return
	}

	ctx.JSON(http.StatusCreated, item)
}

func (h *CartsHandler) RemoveItem(ctx *gin.Context) {
	var req cart.RemoveItemRequest

	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	err := h.repo.RemoveItem(cctx, req.UserID, req.ProductID)

	if err != nil {
		if errors.Is(err, cart.ErrItemNotFound) {
			RespondNotFound(ctx, "Item not in cart")
			return
		}
		RespondInternal(ctx, "Could not remove item from cart")
		return
	}

	ctx.Status(http.StatusNoContent)
}

func (h *CartsHandler) GetCart(ctx *gin.Context) {
	userID := ctx.Param("usuarioId")

	if !utils.IsUUID(userID) {
		RespondBadRequest(ctx, "invalid_id", "user id must be a valid UUID")
		return
	}

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	items, err := h.repo.ListByUser(cctx, userID)

	if err != nil {
		RespondInternal(ctx, "Could not fetch cart")
		return
	}

	ctx.JSON(http.StatusOK, cart.New(userID, items))
}

// ClearCart empties the cart; clearing an empty cart is still a 204.
func (h *CartsHandler) ClearCart(ctx *gin.Context) {
	userID := ctx.Param("usuarioId")

	if !utils.IsUUID(userID) {
		RespondBadRequest(ctx, "invalid_id", "user id must be a valid UUID")
		return
	}

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	err := h.repo.Clear(cctx, userID)

	if err != nil {
		RespondInternal(ctx, "Could not clear cart")
		return
	}

	ctx.Status(http.StatusNoContent)
}
