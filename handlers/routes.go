package handlers

import "github.com/gofiber/fiber/v2"

// RegisterRoutes wires the API surface. The admin handler guards every write
// route except the leaderboard submission, which stays open to players. The
// POST /update and /delete forms mirror PUT and DELETE for hosts that block
// those verbs.
func RegisterRoutes(app *fiber.App, h *ApplicationHandler, admin fiber.Handler) {
	api := app.Group("/api")

	api.Get("/health/db", h.DatabaseHealth)

	projects := api.Group("/projects")
	projects.Get("/", h.ListProjects)
	projects.Get("/admin", admin, h.AdminListProjects)
	projects.Post("/", admin, h.CreateProject)
	projects.Put("/:id", admin, h.UpdateProject)
	projects.Post("/:id/update", admin, h.UpdateProject)
	projects.Delete("/:id", admin, h.DeleteProject)
	projects.Post("/:id/delete", admin, h.DeleteProject)

	highlights := api.Group("/highlights")
	highlights.Get("/", h.ListHighlights)
	highlights.Get("/admin", admin, h.AdminListHighlights)
	highlights.Post("/", admin, h.CreateHighlight)
	highlights.Put("/:id", admin, h.UpdateHighlight)
	highlights.Post("/:id/update", admin, h.UpdateHighlight)
	highlights.Delete("/:id", admin, h.DeleteHighlight)
	highlights.Post("/:id/delete", admin, h.DeleteHighlight)

	stones := api.Group("/power-stones")
	stones.Get("/", h.ListPowerStones)
	stones.Get("/admin", admin, h.AdminListPowerStones)
	stones.Post("/", admin, h.CreatePowerStone)
	stones.Put("/:slot", admin, h.UpdatePowerStone)
	stones.Post("/:slot/update", admin, h.UpdatePowerStone)
	stones.Delete("/:slot", admin, h.DeletePowerStone)
	stones.Post("/:slot/delete", admin, h.DeletePowerStone)

	bulletins := api.Group("/bulletins")
	bulletins.Get("/", h.GetBulletins)
	bulletins.Get("/admin", admin, h.AdminListBulletins)
	bulletins.Post("/", admin, h.CreateBulletin)
	bulletins.Put("/:id", admin, h.UpdateBulletin)
	bulletins.Post("/:id/update", admin, h.UpdateBulletin)
	bulletins.Delete("/:id", admin, h.DeleteBulletin)
	bulletins.Post("/:id/delete", admin, h.DeleteBulletin)

	leaderboard := api.Group("/leaderboard")
	leaderboard.Get("/", h.GetLeaderboard)
	leaderboard.Post("/", h.SubmitScore)

	api.Post("/upload", admin, h.UploadFile)
	api.Get("/pdf-proxy", h.ProxyPDF)
}
