package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/smallbiznis/storeadmin/internal/config"
	"github.com/smallbiznis/storeadmin/internal/identity"
	obscontext "github.com/smallbiznis/storeadmin/internal/observability/context"
)

// IdentityMiddleware resolves the caller and stores it on the request context.
// Anonymous requests pass through; services decide what needs an identity.
func IdentityMiddleware(provider identity.Provider) gin.HandlerFunc {
	return func(c *gin.Context) {
		if provider == nil {
			c.Next()
			return
		}
		id, ok := provider.Identify(c.Request)
		if ok {
			ctx := identity.WithIdentity(c.Request.Context(), id)
			ctx = obscontext.WithActorID(ctx, id.UserID)
			c.Request = c.Request.WithContext(ctx)
		}
		c.Next()
	}
}

// CORSMiddleware lets configured storefront origins read the public API.
// Mutations are never exposed cross-origin.
func CORSMiddleware(holder *config.CORSConfigHolder) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := strings.TrimSpace(c.GetHeader("Origin"))
		if origin == "" {
			c.Next()
			return
		}

		c.Header("Vary", "Origin")
		if !holder.Get().Allows(origin) {
			c.Next()
			return
		}

		c.Header("Access-Control-Allow-Origin", origin)
		c.Header("Access-Control-Allow-Methods", "GET, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type")
		c.Header("Access-Control-Max-Age", "600")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
