package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"sangamam/backend/config"
	"sangamam/backend/internal/store"
	"sangamam/backend/utils"
)

var validate = validator.New()

// ApplicationHandler holds shared dependencies for handlers.
type ApplicationHandler struct {
	Store  store.Store
	Config config.Config
	Logger *logrus.Logger
	// HTTPClient is used for outbound requests (PDF proxy, storage
	// uploads). Tests inject one pointed at a local double; nil means
	// http.DefaultClient.
	HTTPClient *http.Client
}

// NewApplicationHandler creates a new ApplicationHandler with the given dependencies.
func NewApplicationHandler(st store.Store, cfg config.Config, logger *logrus.Logger) *ApplicationHandler {
	return &ApplicationHandler{
		Store:  st,
		Config: cfg,
		Logger: logger,
	}
}

func (h *ApplicationHandler) httpClient() *http.Client {
	if h.HTTPClient != nil {
		return h.HTTPClient
	}
	return http.DefaultClient
}

// respondStoreError converts persistence failures into the API error space.
// Anything that is not a recognized sentinel collapses to a generic 500 so
// backend diagnostics stay in the logs.
func (h *ApplicationHandler) respondStoreError(c *fiber.Ctx, operation string, err error) error {
	switch {
	case errors.Is(err, store.ErrUnavailable):
		return utils.RespondWithError(c, fiber.StatusServiceUnavailable, "No storage backend is configured")
	case errors.Is(err, store.ErrDuplicateKey):
		return utils.RespondWithError(c, fiber.StatusConflict, "A record with that key already exists")
	}
	h.Logger.WithFields(logrus.Fields{
		"operation": operation,
		"error":     err.Error(),
	}).Error("Store operation failed")
	return utils.RespondWithError(c, fiber.StatusInternalServerError, "An internal error occurred")
}

// requireValid runs struct validation and, on failure, answers the request
// with a 400 listing the offending fields. Returns true when the payload
// passed.
func (h *ApplicationHandler) requireValid(c *fiber.Ctx, payload interface{}) (bool, error) {
	if err := validate.Struct(payload); err != nil {
		var verr validator.ValidationErrors
		if errors.As(err, &verr) {
			return false, utils.RespondWithError(c, fiber.StatusBadRequest,
				strings.Join(utils.FormatValidationErrors(err), ", "))
		}
		return false, utils.RespondWithError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	return true, nil
}
