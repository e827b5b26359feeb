package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"cashbook/internal/access"
)

const scopeKey = "scope"

// ScopeMiddleware resolves the access scope for the authenticated user and
// stores it in the Gin context. It must run after AuthMiddleware. Every
// scoping decision downstream uses this one resolved value; handlers never
// consult roles or campus assignments themselves.
func ScopeMiddleware(resolver *access.Resolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := c.Get("userID")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			c.Abort()
			return
		}

		scope, err := resolver.Resolve(userID.(uint))
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			c.Abort()
			return
		}

		c.Set(scopeKey, scope)
		c.Next()
	}
}

// GetScope extracts the resolved access scope from the Gin context.
func GetScope(c *gin.Context) (*access.Scope, bool) {
	v, exists := c.Get(scopeKey)
	if !exists {
		return nil, false
	}
	scope, ok := v.(*access.Scope)
	return scope, ok
}
