package middleware

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/temcen/cravequest/internal/config"
)

// CORS builds the cross-origin policy from config. Rate-limit and request-id
// headers are exposed so browser clients can read them.
func CORS(cfg *config.Config) gin.HandlerFunc {
	corsCfg := cfg.Security.CORS

	return cors.New(cors.Config{
		AllowOrigins: corsCfg.AllowedOrigins,
		AllowMethods: corsCfg.AllowedMethods,
		AllowHeaders: corsCfg.AllowedHeaders,
		ExposeHeaders: []string{
			requestIDHeader,
			"X-RateLimit-Limit",
			"X-RateLimit-Remaining",
			"X-RateLimit-Reset",
		},
		AllowCredentials: corsCfg.AllowCredentials,
		MaxAge:           corsCfg.MaxAge,
	})
}
