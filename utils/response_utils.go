package utils

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// RespondWithError sends a JSON error response.
func RespondWithError(c *fiber.Ctx, statusCode int, message string) error {
	return c.Status(statusCode).JSON(fiber.Map{
		"status":  "error",
		"message": message,
	})
}

// RespondWithJSON sends a JSON success response.
func RespondWithJSON(c *fiber.Ctx, statusCode int, data interface{}) error {
	return c.Status(statusCode).JSON(fiber.Map{
		"status": "success",
		"data":   data,
	})
}

// FormatValidationErrors formats validation errors from validator/v10.
func FormatValidationErrors(err error) []string {
	var errors []string
	if err != nil {
		for _, err := range err.(validator.ValidationErrors) {
			var element string
			element = fmt.Sprintf("Field '%s' failed on the '%s' tag", err.Field(), err.Tag())
			if err.Param() != "" {
				element = fmt.Sprintf("%s (value: %s)", element, err.Param())
			}
			errors = append(errors, element)
		}
	}
	return errors
}

var unsafeFilenameChars = regexp.MustCompile(`[^a-zA-Z0-9.-]`)

// SanitizeFilename reduces a client-supplied filename to a safe basename:
// path components are stripped and every character outside [a-zA-Z0-9.-]
// becomes an underscore. Names that sanitize away entirely come back as
// "file" so callers always have something to store.
func SanitizeFilename(name string) string {
	base := filepath.Base(strings.TrimSpace(name))
	base = unsafeFilenameChars.ReplaceAllString(base, "_")
	if base == "" || base == "." || base == ".." {
		return "file"
	}
	return base
}
