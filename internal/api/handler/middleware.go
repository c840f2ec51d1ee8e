package handler

import (
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"citizendesk/backend/internal/auth"
	"citizendesk/backend/internal/config"
)

const actorKey = "actor"

// AuthRequired validates the Bearer token (or, for websocket upgrades, the
// token query parameter) and stores the actor on the context.
func (h *Handler) AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := ""
		authHeader := c.GetHeader("Authorization")
		if strings.HasPrefix(authHeader, "Bearer ") {
			tokenString = authHeader[7:]
		} else {
			tokenString = c.Query("token")
		}
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization token missing"})
			return
		}

		actor, err := h.Tokens.Verify(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token or expired"})
			return
		}

		c.Set(actorKey, actor)
		c.Next()
	}
}

// RequireAction gates a route on the role capability table.
func RequireAction(action auth.Action) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor := MustActor(c)
		if !auth.Can(actor.Role, action) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
			return
		}
		c.Next()
	}
}

// MustActor returns the authenticated actor set by AuthRequired.
func MustActor(c *gin.Context) *auth.Actor {
	return c.MustGet(actorKey).(*auth.Actor)
}

// RateLimiter keeps one token bucket per client IP for the public front.
type RateLimiter struct {
	limiters map[string]*rate.Limiter
	mu       sync.Mutex
}

func NewRateLimiter() *RateLimiter {
	rl := &RateLimiter{limiters: make(map[string]*rate.Limiter)}
	rl.startCleanup()
	return rl
}

func (rl *RateLimiter) limiterFor(ip string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	limiter, ok := rl.limiters[ip]
	if !ok {
		perSecond := float64(config.PublicRateLimit) / config.PublicRateEvery.Seconds()
		limiter = rate.NewLimiter(rate.Limit(perSecond), config.PublicRateBurst)
		rl.limiters[ip] = limiter
	}
	return limiter
}

// Middleware rejects clients that exceed the public rate limit.
func (rl *RateLimiter) Middleware(h *Handler) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.limiterFor(c.ClientIP()).Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests,
				gin.H{"error": h.Localizer.Get(h.lang(c), "rate.limited")})
			return
		}
		c.Next()
	}
}

// startCleanup periodically resets the limiter map so idle IPs do not
// accumulate forever.
func (rl *RateLimiter) startCleanup() {
	ticker := time.NewTicker(1 * time.Hour)
	go func() {
		for range ticker.C {
			rl.mu.Lock()
			rl.limiters = make(map[string]*rate.Limiter)
			rl.mu.Unlock()
		}
	}()
}
