package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"shopping-backend/internal/shared/problem"
)

// Recovery converts a panic into the generic internal-error problem.
// The panic value stays in the server log only.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				log.Error().
					Str("request_id", c.GetString("request_id")).
					Interface("error", err).
					Msg("Panic recovered")

				problem.Internal(c)
			}
		}()

		c.Next()
	}
}
