package middleware

import (
	"github.com/labstack/echo/v4"
)

// ContentSecurityPolicy allows only same-origin resources. Pages load their
// stylesheet from /static and post forms back to the viewer.
const ContentSecurityPolicy = "default-src 'self'; img-src 'self' data:; form-action 'self'; frame-ancestors 'none'; base-uri 'none'"

// SecurityHeaders sets the response headers every viewer page carries.
// Strict-Transport-Security is only sent when hsts is true, since the
// viewer usually runs on plain http during development.
func SecurityHeaders(hsts bool) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			h := c.Response().Header()

			h.Set("X-Content-Type-Options", "nosniff")
			h.Set("X-Frame-Options", "DENY")
			h.Set("X-XSS-Protection", "0")
			h.Set("Content-Security-Policy", ContentSecurityPolicy)
			if hsts {
				h.Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
			}
			h.Set("Referrer-Policy", "same-origin")
			h.Set("Permissions-Policy", "camera=(), microphone=(), geolocation=()")

			// Pages show patient records.
			h.Set("Cache-Control", "no-store")

			return next(c)
		}
	}
}
