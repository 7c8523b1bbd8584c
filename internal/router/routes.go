package router

import (
	"github.com/enslabs/clubs-admin-api/internal/audit"
	"github.com/enslabs/clubs-admin-api/internal/auth"
	"github.com/enslabs/clubs-admin-api/internal/club"
	"github.com/enslabs/clubs-admin-api/internal/config"
	"github.com/enslabs/clubs-admin-api/internal/ensname"
	"github.com/enslabs/clubs-admin-api/internal/grails"
	"github.com/enslabs/clubs-admin-api/internal/membership"
	"github.com/enslabs/clubs-admin-api/internal/meta"
	"github.com/enslabs/clubs-admin-api/internal/shared/cache"
	"github.com/enslabs/clubs-admin-api/internal/shared/database"
	"github.com/enslabs/clubs-admin-api/internal/shared/middleware"
	"github.com/enslabs/clubs-admin-api/internal/shared/storage"
	"github.com/enslabs/clubs-admin-api/internal/shared/token"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// Dependencies carries the external collaborators the routes need. Redis may
// be nil (rate limiting and caching degrade to no-ops); Market doubles as the
// signature verifier for login.
type Dependencies struct {
	Redis   *redis.Client
	Storage storage.Uploader
	Market  *grails.Client
}

// Setup configures all application-specific routes using dependency injection
func Setup(router *gin.Engine, cfg *config.Config, db *database.DB, deps Dependencies) {
	// Meta handler (health check)
	metaHandler := meta.NewHandler(cfg, db)
	router.GET("/health", metaHandler.Health)

	// repositories
	clubRepository := club.NewClubRepository()
	membershipRepository := membership.NewMembershipRepository()
	nameDirectory := ensname.NewRepository()
	auditRepository := audit.NewAuditRepository()

	// shared services
	tokenManager := token.NewJWTManager(cfg)
	cacheService := cache.NewService(deps.Redis)
	nonceStore := auth.NewNonceStore(deps.Redis)

	// services
	authService := auth.NewAuthService(cfg, nonceStore, deps.Market, tokenManager)
	clubService := club.NewClubService(db.DB, clubRepository, deps.Storage)
	membershipService := membership.NewMembershipService(db.DB, membershipRepository, clubRepository, nameDirectory)
	nameService := ensname.NewService(db.DB, nameDirectory, deps.Market, cacheService, cfg.Grails.CacheTTL)
	auditService := audit.NewAuditService(db.DB, auditRepository)

	// handlers
	authHandler := auth.NewAuthHandler(authService)
	clubHandler := club.NewClubHandler(clubService)
	membershipHandler := membership.NewMembershipHandler(membershipService)
	nameHandler := ensname.NewHandler(nameService)
	auditHandler := audit.NewAuditHandler(auditService)

	rateLimited := middleware.RateLimit(deps.Redis, middleware.RateLimitConfig{
		RequestsPerMinute: cfg.Server.RequestsPerMinute,
		KeyPrefix:         "api:ratelimit:",
	})
	adminSession := middleware.AdminSession(cfg, tokenManager)

	// API v1 routes
	authV1 := router.Group("/api/v1/auth")
	authV1.Use(rateLimited)
	{
		authV1.POST("/nonce", authHandler.Nonce)
		authV1.POST("/login", authHandler.Login)
		authV1.GET("/me", adminSession, authHandler.Me)
	}

	namesV1 := router.Group("/api/v1/names")
	namesV1.Use(adminSession, rateLimited)
	{
		namesV1.GET("/:name", nameHandler.Lookup)
	}

	clubsV1 := router.Group("/api/v1/clubs")
	clubsV1.Use(adminSession, middleware.RateLimitPerActor(deps.Redis, cfg.Server.RequestsPerMinute))
	{
		clubsV1.GET("", clubHandler.List)
		clubsV1.POST("", clubHandler.Create)
		clubsV1.GET("/:name", clubHandler.Get)
		clubsV1.PATCH("/:name", clubHandler.Update)
		clubsV1.DELETE("/:name", clubHandler.Delete)

		clubsV1.GET("/:name/members", membershipHandler.ListMembers)
		clubsV1.POST("/:name/members", membershipHandler.AddNames)
		clubsV1.DELETE("/:name/members", membershipHandler.RemoveNames)
		clubsV1.GET("/:name/invalid-names", membershipHandler.ScanInvalidNames)

		clubsV1.PUT("/:name/images/:kind", clubHandler.UploadImage)
		clubsV1.DELETE("/:name/images/:kind", clubHandler.DeleteImage)
	}

	activityV1 := router.Group("/api/v1/activity")
	activityV1.Use(adminSession, rateLimited)
	{
		activityV1.GET("", auditHandler.Activity)
	}
}
