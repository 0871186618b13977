package middlewares

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rodcosta/shophub/internal/auth"
	"github.com/rodcosta/shophub/internal/config"
	"github.com/rodcosta/shophub/internal/domain/user"
	"github.com/rodcosta/shophub/internal/observability"
)

// Keep these interfaces small so tests can fake them easily.
type TokenVerifier interface {
	VerifyAccessToken(token string) (*auth.Claims, error)
}

type UserReader interface {
	GetByID(ctx context.Context, id string) (user.User, error)
}

type AdminGuard struct {
	jwt   TokenVerifier
	users UserReader
	prom  *observability.Prom
}

func NewAdminGuard(jwt TokenVerifier, users UserReader, prom *observability.Prom) *AdminGuard {
	return &AdminGuard{jwt: jwt, users: users, prom: prom}
}

// RequireAdmin verifies the bearer token and then re-checks the admin flag
// against the current store record. The isAdmin claim inside the token is
// never trusted here: an account demoted after issuance loses admin access
// immediately, not at token expiry.
func (g *AdminGuard) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			g.observe("unauthorized")
			abortUnauthorized(c, "Missing or invalid Authorization header")
			return
		}

		raw := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer"))
		if raw == "" {
			g.observe("unauthorized")
			abortUnauthorized(c, "Missing or invalid access token")
			return
		}

		claims, err := g.jwt.VerifyAccessToken(raw)
		if err != nil {
			g.observe("unauthorized")
			abortUnauthorized(c, "Invalid or expired access token")
			return
		}

		cctx, cancel := config.WithTimeout(2 * time.Second)
		defer cancel()

		// one store lookup per guarded request
		u, err := g.users.GetByID(cctx, claims.UserID)

		if err != nil {
			g.observe("unauthorized")
			abortUnauthorized(c, "Unknown subject")
			return
		}

		if !u.IsAdmin {
			g.observe("forbidden")
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error": gin.H{
					"code":    "forbidden",
					"message": "Admin role required",
				},
			})
			return
		}

		// Stash the verified identity on the context
		c.Set(ctxUserIDKey, u.ID)
		c.Set(ctxEmailKey, u.Email)
		c.Set(ctxIsAdminKey, true)

		g.observe("allowed")
		c.Next()
	}
}

func (g *AdminGuard) observe(result string) {
	if g.prom != nil {
		g.prom.AuthResults.WithLabelValues("admin_guard", result).Inc()
	}
}

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"error": gin.H{
			"code":    "unauthorized",
			"message": message,
		},
	})
}

// Optional helpers so handlers don’t need to know the magic keys.

func UserIDFromContext(c *gin.Context) (string, bool) {
	v, ok := c.Get(ctxUserIDKey)
	if !ok {
		return "", false
	}
	id, ok := v.(string)
	return id, ok
}

func EmailFromContext(c *gin.Context) (string, bool) {
	v, ok := c.Get(ctxEmailKey)
	if !ok {
		return "", false
	}
	email, ok := v.(string)
	return email, ok
}
