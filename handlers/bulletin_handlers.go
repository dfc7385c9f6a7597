package handlers

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"sangamam/backend/internal/seed"
	"sangamam/backend/models"
	"sangamam/backend/utils"
)

// BulletinPayload is the body for publishing a newsletter issue.
type BulletinPayload struct {
	ID    string `json:"id"`
	Lang  string `json:"lang" validate:"required,oneof=ta en kn ml te"`
	Title string `json:"title" validate:"required"`
	PDF   string `json:"pdf" validate:"required"`
	Date  string `json:"date" validate:"required,datetime=2006-01-02"`
}

// BulletinGroup is the public per-language shape: the newest issue plus the
// archive behind it, bookkeeping fields stripped.
type BulletinGroup struct {
	Latest   *models.BulletinSummary  `json:"latest"`
	Archives []models.BulletinSummary `json:"archives"`
}

func groupBulletins(bulletins []models.Bulletin) BulletinGroup {
	group := BulletinGroup{Archives: []models.BulletinSummary{}}
	for i, b := range bulletins {
		summary := b.Summary()
		if i == 0 {
			group.Latest = &summary
		} else {
			group.Archives = append(group.Archives, summary)
		}
	}
	return group
}

// GetBulletins serves the public newsletter index. A recognized ?lang=
// yields that language's group; anything else yields every language side by
// side. A language with no stored issues falls back to its seed issue.
// GET /api/bulletins?lang=en
func (h *ApplicationHandler) GetBulletins(c *fiber.Ctx) error {
	lang := c.Query("lang")
	if models.IsBulletinLang(lang) {
		bulletins, err := h.Store.ListBulletins(lang)
		if err != nil {
			return h.respondStoreError(c, "list bulletins", err)
		}
		if len(bulletins) == 0 {
			bulletins = seed.Bulletins(lang)
			models.SortBulletins(bulletins)
		}
		return utils.RespondWithJSON(c, fiber.StatusOK, groupBulletins(bulletins))
	}

	all, err := h.Store.ListBulletins("")
	if err != nil {
		return h.respondStoreError(c, "list bulletins", err)
	}
	byLang := make(map[string][]models.Bulletin)
	for _, b := range all {
		byLang[b.Lang] = append(byLang[b.Lang], b)
	}

	out := make(map[string]BulletinGroup, len(models.BulletinLangs))
	for _, l := range models.BulletinLangs {
		bulletins := byLang[l]
		if len(bulletins) == 0 {
			bulletins = seed.Bulletins(l)
			models.SortBulletins(bulletins)
		}
		out[l] = groupBulletins(bulletins)
	}
	return utils.RespondWithJSON(c, fiber.StatusOK, out)
}

// AdminListBulletins returns every stored issue with full bookkeeping
// fields and no seed fallback.
// GET /api/bulletins/admin
func (h *ApplicationHandler) AdminListBulletins(c *fiber.Ctx) error {
	bulletins, err := h.Store.ListBulletins("")
	if err != nil {
		return h.respondStoreError(c, "list bulletins", err)
	}
	if bulletins == nil {
		bulletins = []models.Bulletin{}
	}
	return utils.RespondWithJSON(c, fiber.StatusOK, bulletins)
}

// CreateBulletin upserts an issue by its id.
// POST /api/bulletins
func (h *ApplicationHandler) CreateBulletin(c *fiber.Ctx) error {
	return h.saveBulletin(c, "", fiber.StatusCreated)
}

// UpdateBulletin upserts the issue named in the path.
// PUT /api/bulletins/:id (also POST /api/bulletins/:id/update)
func (h *ApplicationHandler) UpdateBulletin(c *fiber.Ctx) error {
	return h.saveBulletin(c, c.Params("id"), fiber.StatusOK)
}

func (h *ApplicationHandler) saveBulletin(c *fiber.Ctx, id string, status int) error {
	var payload BulletinPayload
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

	bulletin, err := h.Store.UpsertBulletin(models.Bulletin{
		ID:        payload.ID,
		Lang:      payload.Lang,
		Title:     payload.Title,
		PDF:       payload.PDF,
		Date:      payload.Date,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		return h.respondStoreError(c, "upsert bulletin", err)
	}

	h.Logger.WithFields(map[string]interface{}{
		"bulletin_id": bulletin.ID,
		"lang":        bulletin.Lang,
	}).Info("Bulletin saved")
	return c.Status(status).JSON(fiber.Map{
		"status":  "success",
		"message": "Bulletin saved successfully",
		"data":    bulletin,
	})
}

// DeleteBulletin removes an issue by id.
// DELETE /api/bulletins/:id (also POST /api/bulletins/:id/delete)
func (h *ApplicationHandler) DeleteBulletin(c *fiber.Ctx) error {
	id := c.Params("id")
	removed, err := h.Store.DeleteBulletin(id)
	if err != nil {
		return h.respondStoreError(c, "delete bulletin", err)
	}
	if !removed {
		return utils.RespondWithError(c, fiber.StatusNotFound, fmt.Sprintf("Bulletin with ID %s not found", id))
	}

	h.Logger.WithField("bulletin_id", id).Info("Bulletin deleted")
	return c.JSON(fiber.Map{
		"status":  "success",
		"message": fmt.Sprintf("Bulletin with ID %s deleted", id),
	})
}
