package handlers

import "github.com/gofiber/fiber/v2"

// DatabaseHealth reports which backend is serving and how many projects it
// holds. The triple is served raw, without the usual envelope, because the
// front end polls it as a plain status beacon.
// GET /api/health/db
func (h *ApplicationHandler) DatabaseHealth(c *fiber.Ctx) error {
	return c.JSON(h.Store.Health())
}
