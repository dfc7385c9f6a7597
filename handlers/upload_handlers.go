package handlers

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"sangamam/backend/utils"
)

// maxUploadBytes caps admin image uploads at 5 MiB.
const maxUploadBytes = 5 << 20

// uploadBucket is the public storage bucket backing remote uploads.
const uploadBucket = "uploads"

var allowedImageExts = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".webp": "image/webp",
}

// UploadFile receives one admin image and stores it either in Supabase
// storage (absolute public URL) or under the local upload directory
// (relative URL), whichever is configured. With neither available the
// endpoint answers 501.
// POST /api/upload
func (h *ApplicationHandler) UploadFile(c *fiber.Ctx) error {
	file, err := c.FormFile("file")
	if err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, "A multipart field named 'file' is required")
	}
	if file.Size > maxUploadBytes {
		return utils.RespondWithError(c, fiber.StatusRequestEntityTooLarge, "File exceeds the 5 MiB limit")
	}

	name := utils.SanitizeFilename(file.Filename)
	ext := strings.ToLower(filepath.Ext(name))
	if _, ok := allowedImageExts[ext]; !ok {
		return utils.RespondWithError(c, fiber.StatusBadRequest, "Only jpg, jpeg, png, gif and webp files are accepted")
	}
	if !contentTypeMatches(ext, file.Header.Get("Content-Type")) {
		return utils.RespondWithError(c, fiber.StatusBadRequest, "Content type does not match the file extension")
	}

	// Timestamp prefix keeps concurrent admins from clobbering each other's
	// uploads of same-named files.
	storedName := fmt.Sprintf("%d_%s", time.Now().UnixMilli(), name)

	if h.Config.SupabaseConfigured() {
		url, err := h.uploadToStorage(file, storedName)
		if err != nil {
			h.Logger.WithField("error", err.Error()).Error("Storage upload failed")
			return utils.RespondWithError(c, fiber.StatusInternalServerError, "Could not store the uploaded file")
		}
		h.Logger.WithField("file", storedName).Info("File uploaded to storage")
		return utils.RespondWithJSON(c, fiber.StatusCreated, fiber.Map{"url": url})
	}

	if dir := h.Config.UploadDir; dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			h.Logger.WithField("error", err.Error()).Error("Local upload failed")
			return utils.RespondWithError(c, fiber.StatusInternalServerError, "Could not store the uploaded file")
		}
		if err := c.SaveFile(file, filepath.Join(dir, storedName)); err != nil {
			h.Logger.WithField("error", err.Error()).Error("Local upload failed")
			return utils.RespondWithError(c, fiber.StatusInternalServerError, "Could not store the uploaded file")
		}
		h.Logger.WithField("file", storedName).Info("File uploaded to local disk")
		return utils.RespondWithJSON(c, fiber.StatusCreated, fiber.Map{"url": "/uploads/" + storedName})
	}

	return utils.RespondWithError(c, fiber.StatusNotImplemented, "No upload storage is configured")
}

// uploadToStorage posts the file bytes to Supabase storage and returns the
// public URL.
func (h *ApplicationHandler) uploadToStorage(file *multipart.FileHeader, name string) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open upload: %w", err)
	}
	defer src.Close()

	content, err := io.ReadAll(src)
	if err != nil {
		return "", fmt.Errorf("failed to read upload: %w", err)
	}

	endpoint := fmt.Sprintf("%s/storage/v1/object/%s/%s", h.Config.SupabaseURL, uploadBucket, name)
	req, err := http.NewRequest(http.MethodPost, endpoint, bytes.NewReader(content))
	if err != nil {
		return "", fmt.Errorf("failed to build storage request: %w", err)
	}
	contentType := file.Header.Get("Content-Type")
	if contentType == "" {
		contentType = allowedImageExts[strings.ToLower(filepath.Ext(name))]
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+h.Config.SupabaseKey)

	resp, err := h.httpClient().Do(req)
	if err != nil {
		return "", fmt.Errorf("storage request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("storage answered %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return fmt.Sprintf("%s/storage/v1/object/public/%s/%s", h.Config.SupabaseURL, uploadBucket, name), nil
}

// contentTypeMatches accepts an absent content type and otherwise requires
// the declared type to agree with the file extension.
func contentTypeMatches(ext, declared string) bool {
	if declared == "" {
		return true
	}
	declared = strings.ToLower(strings.TrimSpace(strings.Split(declared, ";")[0]))
	want := allowedImageExts[ext]
	if declared == want {
		return true
	}
	// Some clients label JPEGs image/jpg.
	return want == "image/jpeg" && declared == "image/jpg"
}
