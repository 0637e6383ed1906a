package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/yourusername/todo-api/internal/accounts"
	"github.com/yourusername/todo-api/internal/auth"
	"github.com/yourusername/todo-api/internal/config"
	"github.com/yourusername/todo-api/internal/requestid"
	"github.com/yourusername/todo-api/internal/storage"
	"github.com/yourusername/todo-api/internal/todos"
)

// dependencies はハンドラーが利用するサービス群です。
type dependencies struct {
	store    *storage.Store
	auth     *auth.Manager
	accounts *accounts.Service
	todos    *todos.Service
}

func newDependencies(cfg *config.Config, store *storage.Store) (*dependencies, error) {
	hasher := auth.NewHasher(cfg.BcryptCost)
	tokens, err := auth.NewTokenService(auth.TokenConfig{
		SecretKey: cfg.SecretKey,
		Algorithm: cfg.Algorithm,
		ExpiresIn: time.Duration(cfg.AccessTokenExpireMinutes) * time.Minute,
	})
	if err != nil {
		return nil, err
	}

	return &dependencies{
		store:    store,
		auth:     auth.NewManager(store, hasher, tokens),
		accounts: accounts.NewService(store, hasher),
		todos:    todos.NewService(store),
	}, nil
}

// newRouter はミドルウェアとルーティングを設定した gin.Engine を返します。
func newRouter(cfg *config.Config, deps *dependencies) *gin.Engine {
	// デフォルトミドルウェア: Logger, Recovery
	router := gin.Default()
	router.Use(requestid.Middleware())

	// CORSミドルウェアの設定（トークンは Authorization ヘッダーで受け取るためクッキーは不要）
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.AllowedOrigins()
	corsConfig.AllowHeaders = []string{
		"Origin",
		"Content-Type",
		"Accept",
		"Authorization",
		requestid.Header,
	}
	corsConfig.ExposeHeaders = []string{requestid.Header}
	router.Use(cors.New(corsConfig))

	setupRoutes(router, deps)
	return router
}

// handleRoot はルートエンドポイントのハンドラーです。
func handleRoot(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Hello World!"})
}

// handleHealth はデータベースへの疎通も含めたヘルスチェックのハンドラーを返します。
func handleHealth(store *storage.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		status, code := "ok", http.StatusOK
		if err := store.Ping(ctx); err != nil {
			status, code = "unavailable", http.StatusServiceUnavailable
		}
		c.JSON(code, gin.H{
			"status":  status,
			"service": "todo-api",
			"version": "0.1.0",
		})
	}
}

// setupRoutes は /v1 配下のルートと認証の配線を行います。
func setupRoutes(router *gin.Engine, deps *dependencies) {
	router.GET("/", handleRoot)
	router.GET("/health", handleHealth(deps.store))

	requireToken := deps.auth.RequireToken()

	v1 := router.Group("/v1")
	{
		v1.POST("/auth/token", deps.auth.Login)

		users := v1.Group("/users")
		{
			users.POST("", accounts.RegisterHandler(deps.accounts))
			users.GET("", accounts.ListHandler(deps.accounts))
			users.GET("/:id", accounts.GetHandler(deps.accounts))
			users.PUT("/:id", requireToken, accounts.UpdateHandler(deps.accounts))
			users.DELETE("/:id", requireToken, accounts.DeleteHandler(deps.accounts))
		}

		// タスクはすべて認証済みアカウントのものだけを扱う
		tasks := v1.Group("/todos", requireToken)
		{
			tasks.POST("", todos.CreateHandler(deps.todos))
			tasks.GET("", todos.ListHandler(deps.todos))
			tasks.GET("/:id", todos.GetHandler(deps.todos))
			tasks.PATCH("/:id", todos.PatchHandler(deps.todos))
			tasks.DELETE("/:id", todos.DeleteHandler(deps.todos))
		}
	}
}
