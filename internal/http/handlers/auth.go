package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rodcosta/shophub/internal/auth"
	"github.com/rodcosta/shophub/internal/config"
	"github.com/rodcosta/shophub/internal/domain/user"
	"github.com/rodcosta/shophub/internal/observability"
	"github.com/rodcosta/shophub/internal/security"
)

type UserReader interface {
	GetByEmail(ctx context.Context, email string) (user.User, error)
}

type UserWriter interface {
	Create(ctx context.Context, req user.CreateRequest) (user.User, error)
}

type AuthHandler struct {
	users      UserReader
	userWriter UserWriter
	jwt        *auth.Manager
	prom       *observability.Prom
}

func NewAuthHandler(users UserReader, userWriter UserWriter, jwtManager *auth.Manager, prom *observability.Prom) *AuthHandler {
	return &AuthHandler{
		users:      users,
		userWriter: userWriter,
		jwt:        jwtManager,
		prom:       prom,
	}
}

type RegisterRequest struct {
	Name     string `json:"name" binding:"required,min=1,max=120"`
	Age      int    `json:"age" binding:"required,min=1,max=150"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// The stored interface only promises '@' and '.', not RFC 5322; keep the
// permissive check rather than tightening it under existing clients.
func looksLikeEmail(email string) bool {
	return strings.Contains(email, "@") && strings.Contains(email, ".")
}

// register creates the record and hands back the sanitized user. Duplicate
// emails surface from the unique index, not from a pre-insert lookup.
func (h *AuthHandler) register(ctx *gin.Context, isAdmin bool) {
	var req RegisterRequest

	if !BindJSON(ctx, &req) {
		return
	}

	if !looksLikeEmail(req.Email) {
		RespondBadRequest(ctx, "invalid_email", "Email must contain '@' and '.'")
		return
	}

	hash, err := security.HashPassword(req.Password)

	if err != nil {
		RespondInternal(ctx, "Could not create user")
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)

	defer cancel()

	age := req.Age

	u, err := h.userWriter.Create(cctx, user.CreateRequest{
		Name:     req.Name,
		Age:      &age,
		Email:    req.Email,
		Password: hash,
		IsAdmin:  isAdmin,
	})

	if err != nil {
		if errors.Is(err, user.ErrEmailTaken) {
			RespondBadRequest(ctx, "email_taken", "Email is already in use.")
			return
		}

		RespondInternal(ctx, "Could not create user")
		return
	}

	ctx.JSON(http.StatusCreated, u)
}

// SignUp registers a regular account. The admin flag is never settable here.
func (h *AuthHandler) SignUp(ctx *gin.Context) {
	h.register(ctx, false)
}

// SignUpAdmin registers an administrator. The route is mounted behind the
// admin guard; the only other way an admin exists is the startup seed.
func (h *AuthHandler) SignUpAdmin(ctx *gin.Context) {
	h.register(ctx, true)
}

func (h *AuthHandler) Login(ctx *gin.Context) {
	var req LoginRequest

	if !BindJSON(ctx, &req) {
		return
	}
	// short timeout for DB lookup
	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	foundUser, err := h.users.GetByEmail(cctx, req.Email)
	if err != nil {
		h.observe("login", "invalid_credentials")
		RespondUnAuthorized(ctx, "invalid_credentials", "Email or password is incorrect.")
		return
	}

	err = security.CheckPassword(foundUser.PasswordHash, req.Password)

	if err != nil {
		h.observe("login", "invalid_credentials")
		RespondUnAuthorized(ctx, "invalid_credentials", "Email or password is incorrect.")
		return
	}

	token, err := h.jwt.GenerateAccessToken(foundUser.ID, foundUser.Email, foundUser.IsAdmin)

	if err != nil {
		RespondInternal(ctx, "Could not generate access token")
		return
	}

	h.observe("login", "ok")

	ctx.JSON(http.StatusOK, gin.H{
		"token": token,
		"user":  foundUser,
	})
}

// AdminLogin gates token issuance on the stored admin flag. Failure order:
// unknown email 401, non-admin 403, bad password 401 with a distinct code.
func (h *AuthHandler) AdminLogin(ctx *gin.Context) {
	var req LoginRequest

	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	foundUser, err := h.users.GetByEmail(cctx, req.Email)
	if err != nil {
		h.observe("admin_login", "invalid_credentials")
		RespondUnAuthorized(ctx, "invalid_credentials", "Email or password is incorrect.")
		return
	}

	if !foundUser.IsAdmin {
		h.observe("admin_login", "forbidden")
		RespondForbidden(ctx, "not_admin", "Access restricted to administrators.")
		return
	}

	err = security.CheckPassword(foundUser.PasswordHash, req.Password)

	if err != nil {
		h.observe("admin_login", "invalid_password")
		RespondUnAuthorized(ctx, "invalid_password", "Email or password is incorrect.")
		return
	}

	token, err := h.jwt.GenerateAccessToken(foundUser.ID, foundUser.Email, true)

	if err != nil {
		RespondInternal(ctx, "Could not generate access token")
		return
	}

	h.observe("admin_login", "ok")

	ctx.JSON(http.StatusOK, gin.H{
		"token": token,
		"user":  foundUser,
	})
}

func (h *AuthHandler) observe(flow, result string) {
	if h.prom != nil {
		h.prom.AuthResults.WithLabelValues(flow, result).Inc()
	}
}
