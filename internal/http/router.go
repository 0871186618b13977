package http

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rodcosta/shophub/internal/auth"
	"github.com/rodcosta/shophub/internal/cache"
	"github.com/rodcosta/shophub/internal/config"
	"github.com/rodcosta/shophub/internal/http/handlers"
	"github.com/rodcosta/shophub/internal/http/middlewares"
	"github.com/rodcosta/shophub/internal/observability"
	"github.com/rodcosta/shophub/internal/repo/postgres"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

const maxBodyBytes = 1 << 20 // 1 MiB

func NewRouter(log *slog.Logger, pool *pgxpool.Pool, rdb *redis.Client, cfg config.Config) *gin.Engine {
	cfgEnv := os.Getenv("APP_ENV")

	if cfgEnv != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	// own registry so repeated router construction (tests) cannot double-register
	reg := prometheus.NewRegistry()
	prom := observability.NewProm(reg)

	// middleware

	r.Use(gin.Recovery())
	r.Use(middlewares.RequestID())
	r.Use(middlewares.RequestLogger(log))
	r.Use(otelgin.Middleware("shophub-api"))
	r.Use(prom.GinHandleMiddleware())
	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.MaxBodyBytes(maxBodyBytes))
	r.Use(middlewares.RequireJSON())

	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(middlewares.CORSMiddleware(cfg.CORSAllowedOrigins))
	}

	// health
	ping := func() error {
		ctx, cancel := context.WithTimeout(context.Background(), 1*time.Second)
		defer cancel()

		if pool != nil {
			if err := pool.Ping(ctx); err != nil {
				return err
			}
		}

		if rdb != nil {
			return rdb.Ping(ctx).Err()
		}

		return nil
	}

	h := handlers.NewHealthHandler(ping)
	r.GET("/healthz", h.Healthz)
	r.GET("/readyz", h.Readyz)
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))
	r.GET("/docs", handlers.SwaggerUI)
	r.GET("/docs/openapi.yaml", handlers.OpenAPISpec)

	// wire up repositories
	usersRepo := postgres.NewUsersRepo(pool, prom)
	productsRepo := postgres.NewProductsRepo(pool, prom)
	cartsRepo := postgres.NewCartsRepo(pool, prom)

	// catalog list cache: shared Redis when configured, per-process otherwise
	var listCache cache.ProductList
	if rdb != nil {
		listCache = cache.NewRedisProductList(rdb, 30*time.Second, prom)
	} else {
		listCache = cache.NewMemoryProductList(30 * time.Second)
	}

	jwtManager := auth.NewManager(cfg.JWTSecret, cfg.AccessTTL())

	// wire up handlers
	authHandler := handlers.NewAuthHandler(usersRepo, usersRepo, jwtManager, prom)
	adminUsersHandler := handlers.NewAdminUsersHandler(usersRepo)
	productsHandler := handlers.NewProductsHandler(productsRepo, listCache)
	cartsHandler := handlers.NewCartsHandler(cartsRepo)

	guard := middlewares.NewAdminGuard(jwtManager, usersRepo, prom)

	// login endpoints take the brunt of credential stuffing
	loginLimiter := middlewares.NewRateLimiter(10, time.Minute)

	// public user routes
	r.POST("/adicionarUsuario", authHandler.SignUp)
	r.POST("/login", loginLimiter.RateLimiterMiddleware(middlewares.KeyByIP), authHandler.Login)
	r.POST("/admin/login", loginLimiter.RateLimiterMiddleware(middlewares.KeyByIP), authHandler.AdminLogin)

	// product routes
	r.POST("/produtos", productsHandler.CreateProduct)
	r.GET("/produtos", productsHandler.ListProducts)
	r.GET("/produtos/:id", productsHandler.GetProductByID)
	r.PUT("/produtos/:id", productsHandler.UpdateProduct)
	r.DELETE("/produtos/:id", productsHandler.DeleteProduct)

	// cart routes
	r.POST("/adicionarItem", cartsHandler.AddItem)
	r.POST("/removerItem", cartsHandler.RemoveItem)
	r.GET("/carrinho/:usuarioId", cartsHandler.GetCart)
	r.DELETE("/carrinho/:usuarioId", cartsHandler.ClearCart)

	// admin-guarded user administration
	admin := r.Group("/", guard.RequireAdmin())
	admin.GET("/usuarios", adminUsersHandler.ListUsers)
	admin.PUT("/usuarios/:id", adminUsersHandler.UpdateUser)
	admin.DELETE("/usuarios/:id", adminUsersHandler.DeleteUser)
	admin.POST("/adicionarUsuarioAdm", authHandler.SignUpAdmin)

	return r
}
