package handlers

import (
	"fmt"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"sangamam/backend/models"
	"sangamam/backend/utils"
)

const (
	defaultLeaderboardLimit = 10
	maxLeaderboardLimit     = 100
)

// ScoreSubmission is the body of a leaderboard submission. Score is a
// pointer so a submitted 0 passes the required check.
type ScoreSubmission struct {
	Game     string `json:"game" validate:"required,oneof=snake whack flight memory"`
	Nickname string `json:"nickname" validate:"required,min=2,max=24"`
	Score    *int   `json:"score" validate:"required,gte=0,lte=1000000"`
}

// GetLeaderboard serves the ranking, best scores first.
// GET /api/leaderboard?game=snake&limit=10
func (h *ApplicationHandler) GetLeaderboard(c *fiber.Ctx) error {
	game := c.Query("game")
	if !models.IsGame(game) {
		game = ""
	}

	limit := defaultLeaderboardLimit
	if raw := c.Query("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}
	if limit > maxLeaderboardLimit {
		limit = maxLeaderboardLimit
	}

	entries, err := h.Store.ListLeaderboard(game, limit)
	if err != nil {
		return h.respondStoreError(c, "list leaderboard", err)
	}
	if entries == nil {
		entries = []models.LeaderboardEntry{}
	}
	return utils.RespondWithJSON(c, fiber.StatusOK, entries)
}

// SubmitScore appends a leaderboard entry. This is the one write endpoint
// that is open to the public; everything beyond validation is the store's
// problem.
// POST /api/leaderboard
func (h *ApplicationHandler) SubmitScore(c *fiber.Ctx) error {
	var payload ScoreSubmission
	if err := c.BodyParser(&payload); err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, fmt.Sprintf("Cannot parse JSON: %v", err))
	}
	if ok, err := h.requireValid(c, payload); !ok {
		return err
	}

	entry, err := h.Store.InsertLeaderboardEntry(models.LeaderboardEntry{
		ID:        uuid.NewString(),
		Game:      payload.Game,
		Nickname:  payload.Nickname,
		Score:     *payload.Score,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		return h.respondStoreError(c, "insert leaderboard entry", err)
	}

	h.Logger.WithFields(map[string]interface{}{
		"game":  entry.Game,
		"score": entry.Score,
	}).Info("Score submitted")
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"status":  "success",
		"message": "Score submitted successfully",
		"data":    entry,
	})
}
