package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"steprally/grouphub/internal/config"
	"steprally/grouphub/internal/handler/middleware"
	jwtpkg "steprally/grouphub/pkg/jwt"
)

func SetupRouter(
	cfg *config.Config,
	logger *zap.Logger,
	jwtManager *jwtpkg.Manager,
	groupHandler *GroupHandler,
) *gin.Engine {
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.CORS(cfg.CORS))

	// Health check
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Public group browsing needs no auth.
	r.GET("/api/v1/groups/public", groupHandler.ListPublic)

	// Everything else is behind the platform access token.
	protected := r.Group("/api/v1")
	protected.Use(middleware.JWTAuth(jwtManager))
	{
		protected.POST("/groups", groupHandler.Create)
		protected.GET("/groups/mine", groupHandler.ListMine)
		protected.POST("/groups/join", groupHandler.JoinByCode)

		protected.GET("/groups/:id", groupHandler.Get)
		protected.PUT("/groups/:id", groupHandler.Update)
		protected.DELETE("/groups/:id", groupHandler.Delete)

		protected.POST("/groups/:id/join", groupHandler.Join)
		protected.POST("/groups/:id/leave", groupHandler.Leave)
		protected.POST("/groups/:id/join-code", groupHandler.RegenerateJoinCode)

		protected.GET("/groups/:id/members", groupHandler.Members)
		protected.POST("/groups/:id/members", groupHandler.Invite)
		protected.DELETE("/groups/:id/members/:userId", groupHandler.RemoveMember)
		protected.PUT("/groups/:id/members/:userId/role", groupHandler.ChangeRole)

		protected.GET("/groups/:id/leaderboard", groupHandler.Leaderboard)
	}

	return r
}
