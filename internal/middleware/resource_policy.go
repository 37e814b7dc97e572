package middleware

import (
	"github.com/gofiber/fiber/v2"
)

// CrossOriginResource marks responses as embeddable from any origin.
// Helmet sets same-origin by default, which blocks the frontend from loading uploads.
func CrossOriginResource() fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := c.Next()
		c.Set("Cross-Origin-Resource-Policy", "cross-origin")
		return err
	}
}
