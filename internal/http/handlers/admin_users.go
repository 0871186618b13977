package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rodcosta/shophub/internal/config"
	"github.com/rodcosta/shophub/internal/domain/user"
	"github.com/rodcosta/shophub/internal/utils"
)

type UserAdminStore interface {
	List(ctx context.Context) ([]user.User, error)
	Update(ctx context.Context, id string, req user.UpdateRequest) (user.User, error)
	Delete(ctx context.Context, id string) error
}

type AdminUsersHandler struct {
	repo UserAdminStore
}

func NewAdminUsersHandler(repo UserAdminStore) *AdminUsersHandler {
	return &AdminUsersHandler{repo: repo}
}

type UpdateUserRequest struct {
	Name  *string `json:"name" binding:"omitempty,min=1,max=120"`
	Email *string `json:"email" binding:"omitempty"`
	Age   *int    `json:"age" binding:"omitempty,min=1,max=150"`
}

// ListUsers returns every account. The password digest never leaves the
// domain type's JSON encoding, so no per-record stripping is needed here.
func (h *AdminUsersHandler) ListUsers(ctx *gin.Context) {
	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	users, err := h.repo.List(cctx)

	if err != nil {
		RespondInternal(ctx, "Could not list users")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"items": users,
		"count": len(users),
	})
}

func (h *AdminUsersHandler) UpdateUser(ctx *gin.Context) {
	id := ctx.Param("id")

	if !utils.IsUUID(id) {
		RespondBadRequest(ctx, "invalid_id", "user id must be a valid UUID")
		return
	}

	var req UpdateUserRequest

	if !BindJSON(ctx, &req) {
		return
	}

	if req.Email != nil && !looksLikeEmail(*req.Email) {
		RespondBadRequest(ctx, "invalid_email", "Email must contain '@' and '.'")
		return
	}

	update := user.UpdateRequest{
		Name:  req.Name,
		Email: req.Email,
		Age:   req.Age,
	}

	if update.Empty() {
		RespondBadRequest(ctx, "empty_update", "No fields to update")
		return
	}

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	u, err := h.repo.Update(cctx, id, update)

	if err != nil {
		switch {
		case errors.Is(err, user.ErrNotFound):
			RespondNotFound(ctx, "User not found")
		case errors.Is(err, user.ErrEmailTaken):
			RespondBadRequest(ctx, "email_taken", "Email is already in use.")
		default:
			RespondInternal(ctx, "Could not update user")
		}
		return
	}

	ctx.JSON(http.StatusOK, u)
}

func (h *AdminUsersHandler) DeleteUser(ctx *gin.Context) {
	id := ctx.Param("id")

	if !utils.IsUUID(id) {
		RespondBadRequest(ctx, "invalid_id", "user id must be a valid UUID")
		return
	}

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	err := h.repo.Delete(cctx, id)

	if err != nil {
		switch {
		case errors.Is(err, user.ErrNotFound):
			RespondNotFound(ctx, "User not found")
		case errors.Is(err, user.ErrAdminProtected):
			RespondForbidden(ctx, "admin_protected", "Administrators cannot be removed.")
		default:
			RespondInternal(ctx, "Could not remove user")
		}
		return
	}

	ctx.Status(http.StatusNoContent)
}
