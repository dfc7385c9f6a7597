package handlers

import (
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"sangamam/backend/models"
	"sangamam/backend/utils"
)

// ProjectPayload is the body for creating or replacing a project. The id is
// optional on POST; a fresh one is generated when absent.
type ProjectPayload struct {
	ID          string `json:"id"`
	Type        string `json:"type" validate:"required,oneof=flagship existing upcoming"`
	Title       string `json:"title" validate:"required"`
	Description string `json:"description" validate:"required"`
	Image       string `json:"image" validate:"required"`
}

// ListProjects serves the public project list.
// GET /api/projects?type=flagship&limit=10
func (h *ApplicationHandler) ListProjects(c *fiber.Ctx) error {
	projectType := c.Query("type")
	if !models.IsProjectType(projectType) {
		// Unrecognized filter values mean no filter.
		projectType = ""
	}

	projects, err := h.Store.ListProjects(projectType)
	if err != nil {
		return h.respondStoreError(c, "list projects", err)
	}
	if limit, err := strconv.Atoi(c.Query("limit")); err == nil && limit > 0 && limit < len(projects) {
		projects = projects[:limit]
	}
	if projects == nil {
		projects = []models.Project{}
	}
	return utils.RespondWithJSON(c, fiber.StatusOK, projects)
}

// AdminListProjects returns every stored project, unfiltered.
// GET /api/projects/admin
func (h *ApplicationHandler) AdminListProjects(c *fiber.Ctx) error {
	projects, err := h.Store.ListProjects("")
	if err != nil {
		return h.respondStoreError(c, "list projects", err)
	}
	if projects == nil {
		projects = []models.Project{}
	}
	return utils.RespondWithJSON(c, fiber.StatusOK, projects)
}

// CreateProject upserts a project by its id.
// POST /api/projects
func (h *ApplicationHandler) CreateProject(c *fiber.Ctx) error {
	return h.saveProject(c, "", fiber.StatusCreated)
}

// UpdateProject upserts the project named in the path.
// PUT /api/projects/:id (also POST /api/projects/:id/update)
func (h *ApplicationHandler) UpdateProject(c *fiber.Ctx) error {
	return h.saveProject(c, c.Params("id"), fiber.StatusOK)
}

func (h *ApplicationHandler) saveProject(c *fiber.Ctx, id string, status int) error {
	var payload ProjectPayload
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

	project, err := h.Store.UpsertProject(models.Project{
		ID:          payload.ID,
		Type:        payload.Type,
		Title:       payload.Title,
		Description: payload.Description,
		Image:       payload.Image,
	})
	if err != nil {
		return h.respondStoreError(c, "upsert project", err)
	}

	h.Logger.WithField("project_id", project.ID).Info("Project saved")
	return c.Status(status).JSON(fiber.Map{
		"status":  "success",
		"message": "Project saved successfully",
		"data":    project,
	})
}

// DeleteProject removes a project by id.
// DELETE /api/projects/:id (also POST /api/projects/:id/delete)
func (h *ApplicationHandler) DeleteProject(c *fiber.Ctx) error {
	id := c.Params("id")
	removed, err := h.Store.DeleteProject(id)
	if err != nil {
		return h.respondStoreError(c, "delete project", err)
	}
	if !removed {
		return utils.RespondWithError(c, fiber.StatusNotFound, fmt.Sprintf("Project with ID %s not found", id))
	}

	h.Logger.WithField("project_id", id).Info("Project deleted")
	return c.JSON(fiber.Map{
		"status":  "success",
		"message": fmt.Sprintf("Project with ID %s deleted", id),
	})
}
