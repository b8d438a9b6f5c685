package routes

import (
	"time"

	"commit/config"
	"commit/handlers"
	"commit/middleware"
	"commit/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const apiPrefix = "/api/v2"

// RegisterAuthRoutes registers account endpoints.
func RegisterAuthRoutes(api *gin.RouterGroup, hb *handlers.HandlerBundle) {
	auth := api.Group("/auth")
	{
		auth.POST("/register", hb.RegisterHandler)
		auth.POST("/login", hb.LoginHandler)
		auth.POST("/refresh", hb.RefreshHandler)

		// Protected routes (Require Authentication)
		protected := auth.Group("")
		protected.Use(middleware.JWTAuthMiddleware(hb.Auth, false))
		protected.GET("/me", hb.MeHandler)
		protected.PUT("/profile", hb.UpdateProfileHandler)
		protected.POST("/change-password", hb.ChangePasswordHandler)
		protected.POST("/logout", hb.LogoutHandler)
	}
}

// RegisterProviderRoutes registers the public provider catalogue. A valid
// token is accepted but not required.
func RegisterProviderRoutes(api *gin.RouterGroup, hb *handlers.HandlerBundle) {
	providers := api.Group("/providers")
	providers.Use(middleware.JWTAuthMiddleware(hb.Auth, true))
	{
		providers.GET("", hb.ListProvidersHandler)
		providers.GET("/:id", hb.GetProviderHandler)
	}
}

// RegisterBookingRoutes registers booking endpoints.
func RegisterBookingRoutes(api *gin.RouterGroup, hb *handlers.HandlerBundle) {
	bookings := api.Group("/bookings")
	bookings.Use(middleware.JWTAuthMiddleware(hb.Auth, false))
	{
		bookings.GET("", hb.ListBookingsHandler)
	}
}

// RegisterChatRoutes registers the assistant endpoints.
func RegisterChatRoutes(api *gin.RouterGroup, hb *handlers.HandlerBundle) {
	chat := api.Group("/chat")
	chat.Use(middleware.JWTAuthMiddleware(hb.Auth, false))
	{
		chat.POST("/start", hb.StartChatHandler)
		chat.POST("/message", hb.SendMessageHandler)
		chat.GET("/history/:sessionID", hb.ChatHistoryHandler)
		chat.POST("/end/:sessionID", hb.EndChatHandler)
	}
}

// RegisterStatusRoutes registers / and /health.
func RegisterStatusRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.GET("/", hb.RootHandler)
	r.GET("/health", hb.HealthHandler)
}

// RegisterRoutes centralizes all route registrations.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	RegisterStatusRoutes(r, hb)

	api := r.Group(apiPrefix)
	RegisterAuthRoutes(api, hb)
	RegisterProviderRoutes(api, hb)
	RegisterBookingRoutes(api, hb)
	RegisterChatRoutes(api, hb)
}

// NewRouter builds the gin engine with the global middleware stack.
func NewRouter(cfg *config.Config, hb *handlers.HandlerBundle, logger *zap.Logger) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	origins := cfg.AllowedOrigins()
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(utils.ErrorHandler(!cfg.IsProduction()))
	r.Use(middleware.RequestLogger(logger))
	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middleware.RateLimitMiddleware(cfg.MaxRequestsPerMin))

	RegisterRoutes(r, hb)
	return r
}
