package middleware

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	authpkg "github.com/cornellb28/orderbbs-app/auth"
)

// AdminIdentity is the typed result RequireAdmin places into the gin
// context under "admin" on success.
type AdminIdentity struct {
	AdminID string
	Email   string
	// Service is true when the request authenticated with the service API
	// key rather than an admin session.
	Service bool
}

// GetAdmin returns the identity set by RequireAdmin, if any.
func GetAdmin(c *gin.Context) (*AdminIdentity, bool) {
	v, ok := c.Get("admin")
	if !ok {
		return nil, false
	}
	id, ok := v.(*AdminIdentity)
	return id, ok
}

// RequireAdmin is the single authorization guard for the admin surface:
// either the service API key header, or a Bearer JWT whose admin is still
// on the active allow-list. 401 for missing or bad credentials, 403 for a
// valid token whose admin has been removed or deactivated.
func RequireAdmin(repo authpkg.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		if key := os.Getenv("SERVICE_API_KEY"); key != "" && c.GetHeader("X-Service-Key") == key {
			c.Set("admin", &AdminIdentity{Service: true})
			c.Next()
			return
		}

		authHeader := c.GetHeader("Authorization")
		if len(authHeader) < 8 || authHeader[:7] != "Bearer " {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing or invalid Authorization header"})
			return
		}
		tokenString := authHeader[7:]

		secret := os.Getenv("JWT_SECRET")
		if secret == "" {
			secret = "dev-insecure-secret-change-me"
		}

		claims, err := authpkg.ParseAndValidate(secret, tokenString)
		if err != nil || claims.Role != "admin" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}

		adminID, err := uuid.Parse(claims.AdminID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()
		ok, err := repo.IsActiveAdmin(ctx, adminID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "authorization check failed"})
			return
		}
		if !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
			return
		}

		c.Set("admin", &AdminIdentity{AdminID: claims.AdminID, Email: claims.Email})
		c.Next()
	}
}

// RequireCron guards the scheduled sweep endpoints: a trusted invoker
// header, or a shared secret passed as ?secret= for manual runs.
func RequireCron() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader("X-Cron-Invoker") == "1" {
			c.Next()
			return
		}
		secret := os.Getenv("CRON_SECRET")
		if secret != "" && c.Query("secret") == secret {
			c.Next()
			return
		}
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
	}
}
