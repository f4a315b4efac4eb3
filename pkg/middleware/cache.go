package middleware

import (
	"time"

	cache "github.com/chenyahui/gin-cache"
	"github.com/chenyahui/gin-cache/persist"
	"github.com/gin-gonic/gin"
)

// NewCacheMiddleware caches responses keyed by the request URI and the
// resolved principal. Access-controlled routes sit behind this, so a
// cached response is only ever replayed to the identity that earned it.
// Must run after the auth middleware.
func NewCacheMiddleware(store persist.CacheStore, expire time.Duration) gin.HandlerFunc {
	return cache.Cache(store, expire, cache.WithCacheStrategyByRequest(func(c *gin.Context) (bool, cache.Strategy) {
		p := Principal(c)

		key := c.Request.RequestURI + "|" + p.UserID
		if p.IsAdmin {
			key += "|admin"
		}
		if p.ScopedFileID != "" {
			key += "|" + p.ScopedFileID
		}

		return true, cache.Strategy{CacheKey: key}
	}))
}
