package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Logger emits one structured log event per request. Beyond the usual
// method/path/status/latency fields it pulls the scheduling route
// parameters out of the Gin context when present, so requests against a
// specific month/year schedule or a specific doctor/team resource can be
// filtered on those fields instead of re-parsed out of the path string.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		status := c.Writer.Status()
		level := zerolog.InfoLevel
		switch {
		case status >= 500:
			level = zerolog.ErrorLevel
		case status >= 400:
			level = zerolog.WarnLevel
		}

		requestID, _ := c.Get("request_id")

		evt := log.WithLevel(level).
			Interface("request_id", requestID).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("client_ip", c.ClientIP())

		if month := c.Param("month"); month != "" {
			evt = evt.Str("schedule_month", month)
		}
		if year := c.Param("year"); year != "" {
			evt = evt.Str("schedule_year", year)
		}
		if id := c.Param("id"); id != "" {
			evt = evt.Str("resource_id", id)
		}

		if claims, ok := GetUserClaims(c); ok {
			evt = evt.Str("actor_role", claims.Role)
			if claims.TeamID != "" {
				evt = evt.Str("actor_team_id", claims.TeamID)
			}
		}

		evt.Msg("request handled")
	}
}
