package middleware

import (
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sangkips/storepos-api/internal/config"
)

// Headers the till front end always sends, whatever the deployment adds.
var requiredAllowHeaders = []string{"Authorization", "Content-Type", IdempotencyKeyHeader, "X-Request-ID"}

// Headers the till reads back: replay marker, rate limit state and the
// report filename.
var posExposeHeaders = []string{
	"Content-Length",
	"Content-Disposition",
	"X-Request-ID",
	"X-Idempotency-Replayed",
	"X-RateLimit-Limit",
	"X-RateLimit-Remaining",
	"Retry-After",
}

// CORSMiddleware builds the CORS policy for the till and back-office
// front ends from cfg.
func CORSMiddleware(cfg *config.CORSConfig) gin.HandlerFunc {
	corsConfig := cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     cfg.AllowedMethods,
		AllowHeaders:     mergeHeaders(cfg.AllowedHeaders, requiredAllowHeaders),
		ExposeHeaders:    posExposeHeaders,
		AllowCredentials: cfg.AllowCredentials,
		MaxAge:           cfg.MaxAge,
	}

	if len(corsConfig.AllowOrigins) == 0 {
		corsConfig.AllowOrigins = []string{"http://localhost:3000"}
	}
	if len(corsConfig.AllowMethods) == 0 {
		corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	}

	return cors.New(corsConfig)
}

// mergeHeaders appends each required header missing from configured,
// compared case-insensitively.
func mergeHeaders(configured, required []string) []string {
	out := append([]string(nil), configured...)
	for _, want := range required {
		found := false
		for _, h := range out {
			if strings.EqualFold(h, want) {
				found = true
				break
			}
		}
		if !found {
			out = append(out, want)
		}
	}
	return out
}
