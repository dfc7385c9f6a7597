package handlers

import (
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"sangamam/backend/internal/seed"
	"sangamam/backend/models"
	"sangamam/backend/utils"
)

// PowerStonePayload is the body for filling one of the six display slots.
// Slot is a pointer so 0 and "absent" both fail the range check instead of
// silently landing in slot 0.
type PowerStonePayload struct {
	ID    string `json:"id"`
	Slot  *int   `json:"slot" validate:"required,gte=1,lte=6"`
	Src   string `json:"src" validate:"required"`
	Title string `json:"title"`
}

// ListPowerStones serves the public six-slot set, seeded when empty.
// GET /api/power-stones
func (h *ApplicationHandler) ListPowerStones(c *fiber.Ctx) error {
	stones, err := h.Store.ListPowerStones()
	if err != nil {
		return h.respondStoreError(c, "list power stones", err)
	}
	if len(stones) == 0 {
		stones = seed.PowerStones()
	}
	return utils.RespondWithJSON(c, fiber.StatusOK, stones)
}

// AdminListPowerStones returns the stored slots without the seed fallback.
// GET /api/power-stones/admin
func (h *ApplicationHandler) AdminListPowerStones(c *fiber.Ctx) error {
	stones, err := h.Store.ListPowerStones()
	if err != nil {
		return h.respondStoreError(c, "list power stones", err)
	}
	if stones == nil {
		stones = []models.PowerStone{}
	}
	return utils.RespondWithJSON(c, fiber.StatusOK, stones)
}

// CreatePowerStone upserts a stone by the slot in the body.
// POST /api/power-stones
func (h *ApplicationHandler) CreatePowerStone(c *fiber.Ctx) error {
	return h.savePowerStone(c, nil, fiber.StatusCreated)
}

// UpdatePowerStone upserts the slot named in the path.
// PUT /api/power-stones/:slot (also POST /api/power-stones/:slot/update)
func (h *ApplicationHandler) UpdatePowerStone(c *fiber.Ctx) error {
	slot, ok := parseSlot(c.Params("slot"))
	if !ok {
		return utils.RespondWithError(c, fiber.StatusBadRequest, "Slot must be a number between 1 and 6")
	}
	return h.savePowerStone(c, &slot, fiber.StatusOK)
}

func (h *ApplicationHandler) savePowerStone(c *fiber.Ctx, pathSlot *int, status int) error {
	var payload PowerStonePayload
	if err := c.BodyParser(&payload); err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, fmt.Sprintf("Cannot parse JSON: %v", err))
	}
	if pathSlot != nil {
		payload.Slot = pathSlot
	}
	if ok, err := h.requireValid(c, payload); !ok {
		return err
	}
	slot := *payload.Slot
	if payload.ID == "" {
		payload.ID = models.PowerStoneID(slot)
	}

	stone, err := h.Store.UpsertPowerStone(models.PowerStone{
		ID:    payload.ID,
		Slot:  slot,
		Src:   payload.Src,
		Title: payload.Title,
	})
	if err != nil {
		return h.respondStoreError(c, "upsert power stone", err)
	}

	h.Logger.WithField("slot", stone.Slot).Info("Power stone saved")
	return c.Status(status).JSON(fiber.Map{
		"status":  "success",
		"message": "Power stone saved successfully",
		"data":    stone,
	})
}

// DeletePowerStone empties a slot.
// DELETE /api/power-stones/:slot (also POST /api/power-stones/:slot/delete)
func (h *ApplicationHandler) DeletePowerStone(c *fiber.Ctx) error {
	slot, ok := parseSlot(c.Params("slot"))
	if !ok {
		return utils.RespondWithError(c, fiber.StatusBadRequest, "Slot must be a number between 1 and 6")
	}

	removed, err := h.Store.DeletePowerStone(slot)
	if err != nil {
		return h.respondStoreError(c, "delete power stone", err)
	}
	if !removed {
		return utils.RespondWithError(c, fiber.StatusNotFound, fmt.Sprintf("No power stone in slot %d", slot))
	}

	h.Logger.WithField("slot", slot).Info("Power stone deleted")
	return c.JSON(fiber.Map{
		"status":  "success",
		"message": fmt.Sprintf("Power stone in slot %d deleted", slot),
	})
}

func parseSlot(raw string) (int, bool) {
	slot, err := strconv.Atoi(raw)
	if err != nil || !models.IsPowerStoneSlot(slot) {
		return 0, false
	}
	return slot, true
}
