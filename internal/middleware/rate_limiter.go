package middleware

import (
	"net/http"
	"sync"
	"time"

	"minegocio/internal/apierror"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// windowEntry tracks request counts per IP inside a sliding window.
type windowEntry struct {
	count     int
	windowEnd time.Time
	mu        sync.Mutex
}

var (
	loginMap   = make(map[string]*windowEntry)
	loginMapMu sync.Mutex

	apiMap   = make(map[string]*windowEntry)
	apiMapMu sync.Mutex
)

// LoginRateLimiter limits login attempts to 20 per minute per IP, slowing
// down credential stuffing without locking out a shared store network.
func LoginRateLimiter() gin.HandlerFunc {
	return limit(loginMap, &loginMapMu, 20, time.Minute,
		"Demasiados intentos de login. Intente en 1 minuto.")
}

// RateLimiter is the general-purpose per-IP limiter for the whole API.
func RateLimiter(max int, window time.Duration) gin.HandlerFunc {
	return limit(apiMap, &apiMapMu, max, window,
		"Demasiadas solicitudes. Intente nuevamente en un momento.")
}

func limit(entries map[string]*windowEntry, mapMu *sync.Mutex, max int, window time.Duration, msg string) gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()

		mapMu.Lock()
		entry, exists := entries[ip]
		if !exists {
			entry = &windowEntry{}
			entries[ip] = entry
		}
		mapMu.Unlock()

		entry.mu.Lock()
		defer entry.mu.Unlock()

		now := time.Now()
		if now.After(entry.windowEnd) {
			entry.count = 0
			entry.windowEnd = now.Add(window)
		}

		entry.count++
		if entry.count > max {
			c.Header("Retry-After", entry.windowEnd.Format(time.RFC1123))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, apierror.New(msg))
			return
		}
		c.Next()
	}
}

// Expired entries are purged periodically so IPs that never return do not
// accumulate forever.
const purgeInterval = 5 * time.Minute

func init() {
	go purgeExpiredEntries()
}

func purgeExpiredEntries() {
	ticker := time.NewTicker(purgeInterval)
	defer ticker.Stop()

	for range ticker.C {
		now := time.Now()
		purged := purgeMap(loginMap, &loginMapMu, now) + purgeMap(apiMap, &apiMapMu, now)
		if purged > 0 {
			log.Debug().Int("entries_purged", purged).Msg("rate limiter maps purged")
		}
	}
}

func purgeMap(entries map[string]*windowEntry, mapMu *sync.Mutex, now time.Time) int {
	mapMu.Lock()
	defer mapMu.Unlock()

	purged := 0
	for ip, entry := range entries {
		entry.mu.Lock()
		if now.After(entry.windowEnd) {
			delete(entries, ip)
			purged++
		}
		entry.mu.Unlock()
	}
	return purged
}
