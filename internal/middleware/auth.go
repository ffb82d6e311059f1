package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"todos-be/internal/cache"
	"todos-be/internal/entities"
	"todos-be/internal/jwt"
	"todos-be/internal/models"
	"todos-be/internal/repository"
)

const userContextKey = "current_user"

const userCacheTTL = 5 * time.Minute

// CurrentUser returns the authenticated user attached by AuthMiddleware.
func CurrentUser(c *gin.Context) (*entities.User, bool) {
	value, ok := c.Get(userContextKey)
	if !ok {
		return nil, false
	}
	user, ok := value.(*entities.User)
	return user, ok
}

// AuthMiddleware verifies the bearer token and attaches the full user
// record to the request. Inactive accounts are rejected even when
// their token is still valid. cacheClient may be nil.
func AuthMiddleware(jwtService *jwt.JWTService, users repository.UserRepository, cacheClient cache.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, models.Fail("Authorization header is required"))
			return
		}

		tokenParts := strings.Split(authHeader, " ")
		if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, models.Fail("Authorization header must be in the format 'Bearer {token}'"))
			return
		}

		claims, err := jwtService.ValidateToken(tokenParts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, models.Fail("Invalid or expired token"))
			return
		}

		user, err := loadUser(c, claims.UserID, users, cacheClient)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, models.Fail("User no longer exists"))
			return
		}
		if !user.IsActive {
			c.AbortWithStatusJSON(http.StatusUnauthorized, models.Fail("Account is disabled"))
			return
		}

		c.Set(userContextKey, user)
		c.Next()
	}
}

func loadUser(c *gin.Context, id string, users repository.UserRepository, cacheClient cache.Cache) (*entities.User, error) {
	cacheKey := "user:" + id

	if cacheClient != nil {
		var cached entities.User
		if err := cacheClient.GetJSON(c.Request.Context(), cacheKey, &cached); err == nil {
			return &cached, nil
		}
	}

	user, err := users.FindByID(c.Request.Context(), id)
	if err != nil {
		return nil, err
	}

	if cacheClient != nil {
		_ = cacheClient.SetJSON(c.Request.Context(), cacheKey, user, userCacheTTL)
	}
	return user, nil
}

// AdminOnly rejects requests from non-admin users. Must run after
// AuthMiddleware.
func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, models.Fail("Authentication required"))
			return
		}
		if !user.IsAdmin() {
			c.AbortWithStatusJSON(http.StatusForbidden, models.Fail("Admin access required"))
			return
		}
		c.Next()
	}
}
