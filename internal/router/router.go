package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/coursehive/coursehive-backend/internal/config"
	"github.com/coursehive/coursehive-backend/internal/handler"
	"github.com/coursehive/coursehive-backend/internal/middleware"
	"github.com/coursehive/coursehive-backend/internal/response"
	"github.com/coursehive/coursehive-backend/internal/service"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Auth     *handler.AuthHandler
	Catalog  *handler.CatalogHandler
	Course   *handler.CourseHandler
	Purchase *handler.PurchaseHandler
	UserMgmt *handler.UserManagementHandler
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
func SetupRouter(
	authService *service.AuthService,
	handlers *Handlers,
	cfg *config.Config,
) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.Default()

	// ─── CORS ──────────────────────────────────────────────────────────
	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*) so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Apply request ID middleware globally so every response includes metadata.
	router.Use(response.RequestIDMiddleware())

	// Apply brotli middleware globally.
	router.Use(middleware.Brotli())

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	})

	// Rate limiter for signup/signin routes (30 requests per minute per IP).
	authLimiter := middleware.NewRateLimiter(30, time.Minute)

	// ─── 1. Public Catalog (No Auth, Browser-Cacheable) ────────────────
	catalog := router.Group("/api/v1/course")
	catalog.Use(middleware.CacheControl(60))
	{
		catalog.GET("/preview", handlers.Catalog.Preview)
		catalog.GET("/:courseId", handlers.Catalog.GetCourse)
	}

	// ─── 2. User Group ─────────────────────────────────────────────────
	userAPI := router.Group("/api/v1/user")
	{
		userAPI.POST("/signup", authLimiter.Middleware(), handlers.Auth.UserSignup)
		userAPI.POST("/signin", authLimiter.Middleware(), handlers.Auth.UserSignin)

		authed := userAPI.Group("")
		authed.Use(middleware.RequireUserJWT(authService))
		{
			authed.GET("/me", handlers.Auth.UserProfile)
			authed.GET("/purchases", handlers.Purchase.ListPurchases)
			authed.POST("/courses/:courseId/purchase", handlers.Purchase.PurchaseCourse)
		}
	}

	// ─── 3. Admin Group ────────────────────────────────────────────────
	adminAPI := router.Group("/api/v1/admin")
	{
		adminAPI.POST("/signup", authLimiter.Middleware(), handlers.Auth.AdminSignup)
		adminAPI.POST("/signin", authLimiter.Middleware(), handlers.Auth.AdminSignin)

		authed := adminAPI.Group("")
		authed.Use(middleware.RequireAdminJWT(authService))
		{
			authed.GET("/verify", handlers.Auth.VerifyAdminToken)
			authed.GET("/me", handlers.Auth.AdminProfile)
			authed.GET("/users", handlers.UserMgmt.ListUsers)
			authed.GET("/course/bulk", handlers.Course.ListOwnCourses)
			authed.POST("/course", handlers.Course.CreateCourse)
			authed.PUT("/courses/:courseId", handlers.Course.UpdateCourse)
			authed.DELETE("/courses/:courseId", handlers.Course.DeleteCourse)
		}
	}

	return router
}
