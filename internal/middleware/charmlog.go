// Package middleware holds echo middleware shared by the control server.
package middleware

import (
	"time"

	"github.com/charmbracelet/log"
	"github.com/labstack/echo/v4"
)

// CharmLog logs every request at debug level, and failed requests at warn.
func CharmLog() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}

			req := c.Request()
			res := c.Response()
			fields := []any{
				"method", req.Method,
				"path", req.URL.Path,
				"status", res.Status,
				"duration", time.Since(start),
			}
			if err != nil || res.Status >= 400 {
				log.Warn("request", append(fields, "err", err)...)
			} else {
				log.Debug("request", fields...)
			}
			return nil
		}
	}
}
