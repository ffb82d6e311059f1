package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"todos-be/internal/cache"
	"todos-be/internal/config"
	"todos-be/internal/controllers"
	"todos-be/internal/jwt"
	"todos-be/internal/middleware"
	"todos-be/internal/models"
	"todos-be/internal/service"
	"todos-be/internal/store"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

func main() {
	// Load configuration
	cfg := config.Load()
	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET environment variable is required")
	}

	// Select the persistence backend: MongoDB, then the relational
	// fallback, then volatile memory.
	st := store.Open(context.Background(), cfg)
	defer st.Close()

	// Initialize Redis cache (optional - continue if Redis is unavailable)
	var cacheClient cache.Cache
	if cfg.RedisURL != "" {
		var err error
		cacheClient, err = cache.NewRedisCache(cfg.RedisURL)
		if err != nil {
			log.Printf("Warning: Failed to connect to Redis (%v). Continuing without cache.", err)
			cacheClient = nil
		} else {
			log.Println("Connected to Redis cache")
		}
	}

	// Initialize JWT service
	jwtService := jwt.NewJWTService(
		cfg.JWTSecret,
		time.Duration(cfg.JWTTTL)*time.Hour,
	)

	// Initialize services
	authService := service.NewAuthService(st.Users, jwtService, cacheClient)
	todoService := service.NewTodoService(st.Todos, cacheClient)
	userService := service.NewUserService(st.Users, st.Todos, cacheClient)

	// Initialize controllers
	authController := controllers.NewAuthController(authService)
	todoController := controllers.NewTodoController(todoService)
	userController := controllers.NewUserController(userService)

	// Initialize rate limiters
	generalRateLimiter := middleware.NewRateLimiter(rate.Limit(cfg.RateLimitRPS), cfg.RateLimitBurst)
	authRateLimiter := middleware.NewRateLimiter(rate.Limit(cfg.RateLimitAuthRPS), cfg.RateLimitAuthBurst)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())

	// Health check endpoint (no rate limiting)
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, models.OK(gin.H{
			"status":  "ok",
			"backend": st.Backend,
		}))
	})

	// API v1 routes group with general rate limiting
	api := router.Group("/api/v1")
	api.Use(generalRateLimiter.LimitMiddleware())
	{
		// Auth routes with stricter rate limiting
		auth := api.Group("/auth")
		auth.Use(authRateLimiter.LimitMiddleware())
		{
			auth.POST("/register", authController.Register)
			auth.POST("/login", authController.Login)
		}

		// Protected routes - require JWT authentication
		protected := api.Group("")
		protected.Use(middleware.AuthMiddleware(jwtService, st.Users, cacheClient))
		{
			protected.GET("/auth/me", authController.Me)
			protected.PATCH("/auth/me", authController.UpdateMe)

			protected.GET("/todos", todoController.List)
			protected.POST("/todos", todoController.Create)
			protected.GET("/todos/stats", todoController.Stats)
			protected.GET("/todos/:id", todoController.Get)
			protected.PATCH("/todos/:id", todoController.Update)
			protected.DELETE("/todos/:id", todoController.Delete)

			// Admin-only user management
			admin := protected.Group("/users")
			admin.Use(middleware.AdminOnly())
			{
				admin.GET("", userController.List)
				admin.GET("/:id", userController.Get)
				admin.PATCH("/:id", userController.Update)
				admin.DELETE("/:id", userController.Delete)
			}
		}
	}

	log.Printf("Server starting on http://localhost:%s (store: %s)", cfg.Port, st.Backend)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}
