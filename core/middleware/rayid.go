package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// RayIDHeader is the response header carrying the request's ray id.
const RayIDHeader = "X-Ray-ID"

// RayID assigns every request a unique id, stored in the context locals and
// echoed in the response headers so log lines can be correlated with a
// specific request.
func RayID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		rid := c.Get(RayIDHeader)
		if rid == "" {
			rid = uuid.NewString()
		}
		c.Locals("ray_id", rid)
		c.Set(RayIDHeader, rid)
		return c.Next()
	}
}
