package middleware

import "github.com/gin-gonic/gin"

// NoStoreMiddleware marks API responses as uncacheable. Clients refetch the
// full list after every mutation, so any intermediary caching would serve
// stale state.
func NoStoreMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Cache-Control", "no-store")
		c.Next()
	}
}
