package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"sangamam/backend/internal/seed"
	"sangamam/backend/models"
	"sangamam/backend/utils"
)

// HighlightPayload is the body for creating or replacing a gallery
// highlight. Order is a pointer so an explicit 0 can be told apart from an
// absent field; absent means "append after the current gallery".
type HighlightPayload struct {
	ID    string `json:"id"`
	Src   string `json:"src" validate:"required"`
	Title string `json:"title" validate:"required"`
	Order *int   `json:"order" validate:"omitempty,gte=0"`
}

// ListHighlights serves the public gallery. An empty store falls back to the
// seed gallery so a fresh deployment still renders.
// GET /api/highlights
func (h *ApplicationHandler) ListHighlights(c *fiber.Ctx) error {
	highlights, err := h.Store.ListHighlights()
	if err != nil {
		return h.respondStoreError(c, "list highlights", err)
	}
	if len(highlights) == 0 {
		highlights = seed.Highlights()
	}
	return utils.RespondWithJSON(c, fiber.StatusOK, highlights)
}

// AdminListHighlights returns the stored gallery without the seed fallback.
// GET /api/highlights/admin
func (h *ApplicationHandler) AdminListHighlights(c *fiber.Ctx) error {
	highlights, err := h.Store.ListHighlights()
	if err != nil {
		return h.respondStoreError(c, "list highlights", err)
	}
	if highlights == nil {
		highlights = []models.Highlight{}
	}
	return utils.RespondWithJSON(c, fiber.StatusOK, highlights)
}

// CreateHighlight upserts a highlight by its id.
// POST /api/highlights
func (h *ApplicationHandler) CreateHighlight(c *fiber.Ctx) error {
	return h.saveHighlight(c, "", fiber.StatusCreated)
}

// UpdateHighlight upserts the highlight named in the path.
// PUT /api/highlights/:id (also POST /api/highlights/:id/update)
func (h *ApplicationHandler) UpdateHighlight(c *fiber.Ctx) error {
	return h.saveHighlight(c, c.Params("id"), fiber.StatusOK)
}

func (h *ApplicationHandler) saveHighlight(c *fiber.Ctx, id string, status int) error {
	var payload HighlightPayload
	if err := c.BodyParser(&payload); err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, fmt.Sprintf("Cannot parse JSON: %v", err))
	}
	if id != "" {
		payload.ID = id
	}
	if ok, err := h.requireValid(c, payload); !ok {
		return err
	}
	if payload.ID == "" {
		payload.ID = uuid.NewString()
	}

	var order int
	if payload.Order != nil {
		order = *payload.Order
	} else {
		// No explicit position: place the new image after everything
		// already stored.
		n, err := h.Store.CountHighlights()
		if err != nil {
			return h.respondStoreError(c, "count highlights", err)
		}
		order = int(n) + 1
	}

	highlight, err := h.Store.UpsertHighlight(models.Highlight{
		ID:    payload.ID,
		Src:   payload.Src,
		Title: payload.Title,
		Order: order,
	})
	if err != nil {
		return h.respondStoreError(c, "upsert highlight", err)
	}

	h.Logger.WithField("highlight_id", highlight.ID).Info("Highlight saved")
	return c.Status(status).JSON(fiber.Map{
		"status":  "success",
		"message": "Highlight saved successfully",
		"data":    highlight,
	})
}

// DeleteHighlight removes a highlight by id.
// DELETE /api/highlights/:id (also POST /api/highlights/:id/delete)
func (h *ApplicationHandler) DeleteHighlight(c *fiber.Ctx) error {
	id := c.Params("id")
	removed, err := h.Store.DeleteHighlight(id)
	if err != nil {
		return h.respondStoreError(c, "delete highlight", err)
	}
	if !removed {
		return utils.RespondWithError(c, fiber.StatusNotFound, fmt.Sprintf("Highlight with ID %s not found", id))
	}

	h.Logger.WithField("highlight_id", id).Info("Highlight deleted")
	return c.JSON(fiber.Map{
		"status":  "success",
		"message": fmt.Sprintf("Highlight with ID %s deleted", id),
	})
}
