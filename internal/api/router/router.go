package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"familygifthub/backend/config"
	"familygifthub/backend/internal/api/handler"
	"familygifthub/backend/internal/api/middleware"
	"familygifthub/backend/internal/repository"
	"familygifthub/backend/pkg/jwt"
	"familygifthub/backend/pkg/redis"
)

// 创建/加入家庭为无认证入口，按来源 IP 限流
const (
	joinRateLimit  = 10
	joinRateWindow = time.Minute
)

// Setup 初始化并返回 Gin 路由引擎
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, repo *repository.Repository, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(1 << 20)) // 1MB

	api := r.Group("/api")
	{
		// ── 健康检查 ──
		api.GET("/health", func(c *gin.Context) {
			c.JSON(200, gin.H{"status": "ok"})
		})

		// ── 无需认证：创建/加入家庭 ──
		limited := api.Group("")
		limited.Use(middleware.RateLimit(rdb, joinRateLimit, joinRateWindow))
		{
			limited.POST("/families", h.Auth.CreateFamily)
			limited.POST("/auth/join", h.Auth.JoinFamily)
		}

		// ── 需要认证的路由 ──
		authorized := api.Group("")
		authorized.Use(middleware.JWTAuth(jwtMgr, repo))
		{
			authorized.GET("/me", h.Auth.Me)

			// 自己的心愿单
			authorized.GET("/lists/me", h.Gift.ListMyGifts)
			authorized.POST("/lists/me/items", h.Gift.CreateGift)

			// 礼物编辑与预留
			gifts := authorized.Group("/gifts")
			{
				gifts.PATCH("/:id", h.Gift.UpdateGift)
				gifts.DELETE("/:id", h.Gift.DeleteGift)
				gifts.POST("/:id/reserve", h.Gift.Reserve)
				gifts.POST("/:id/unreserve", h.Gift.Unreserve)
			}

			// 全家视图与导出
			family := authorized.Group("/family")
			{
				family.GET("/lists", h.Family.GetFamilyLists)
				family.GET("/export", h.Family.Export)
			}

			// 链接预览（添加礼物时预填）
			authorized.GET("/link-preview", h.Gift.LinkPreview)
		}
	}

	return r
}
