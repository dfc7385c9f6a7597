package utils

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"plain name kept", "photo.png", "photo.png"},
		{"dots and hyphens kept", "annual-day.2024.jpg", "annual-day.2024.jpg"},
		{"spaces become underscores", "camp photo.png", "camp_photo.png"},
		{"shell characters become underscores", "we ird$name.png", "we_ird_name.png"},
		{"path components stripped", "../../etc/passwd.png", "passwd.png"},
		{"surrounding whitespace trimmed", "  spaced.png  ", "spaced.png"},
		{"tamil runes become underscores", "தமிழ்.pdf", "_____.pdf"},
		{"empty name", "", "file"},
		{"bare dot-dot", "..", "file"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SanitizeFilename(tt.input))
		})
	}
}

func TestFormatValidationErrors(t *testing.T) {
	type payload struct {
		Title string `validate:"required"`
		Score int    `validate:"max=100"`
	}

	err := validator.New().Struct(payload{Score: 200})
	require.Error(t, err)

	msgs := FormatValidationErrors(err)
	require.Len(t, msgs, 2)
	assert.Equal(t, "Field 'Title' failed on the 'required' tag", msgs[0])
	assert.Equal(t, "Field 'Score' failed on the 'max' tag (value: 100)", msgs[1])

	assert.Empty(t, FormatValidationErrors(nil))
}

func TestResponseEnvelopes(t *testing.T) {
	app := fiber.New()
	app.Get("/ok", func(c *fiber.Ctx) error {
		return RespondWithJSON(c, fiber.StatusOK, fiber.Map{"hello": "world"})
	})
	app.Get("/bad", func(c *fiber.Ctx) error {
		return RespondWithError(c, fiber.StatusTeapot, "short and stout")
	})

	t.Run("success envelope", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/ok", nil), -1)
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, map[string]interface{}{
			"status": "success",
			"data":   map[string]interface{}{"hello": "world"},
		}, body)
	})

	t.Run("error envelope", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/bad", nil), -1)
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, fiber.StatusTeapot, resp.StatusCode)

		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, map[string]interface{}{
			"status":  "error",
			"message": "short and stout",
		}, body)
	})
}
