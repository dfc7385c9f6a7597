package handlers

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sangamam/backend/models"
)

func TestCreateProject(t *testing.T) {
	ta := newTestApp(t)

	tests := []struct {
		name           string
		requestBody    interface{}
		expectedStatus int
		checkResponse  func(t *testing.T, resp apiResponse)
	}{
		{
			name: "valid project",
			requestBody: map[string]interface{}{
				"type": "flagship", "title": "Annual Science Camp",
				"description": "Two weeks of experiments for the kids.",
				"image":       "/uploads/camp.jpg",
			},
			expectedStatus: fiber.StatusCreated,
			checkResponse: func(t *testing.T, resp apiResponse) {
				var p models.Project
				require.NoError(t, json.Unmarshal(resp.Data, &p))
				assert.NotEmpty(t, p.ID, "an id is generated when the client sends none")
				assert.Equal(t, "Annual Science Camp", p.Title)
			},
		},
		{
			name: "missing title",
			requestBody: map[string]interface{}{
				"type": "flagship", "description": "d", "image": "i",
			},
			expectedStatus: fiber.StatusBadRequest,
			checkResponse: func(t *testing.T, resp apiResponse) {
				assert.Equal(t, "error", resp.Status)
				assert.Contains(t, resp.Message, "'Title'")
			},
		},
		{
			name: "unknown type",
			requestBody: map[string]interface{}{
				"type": "sideproject", "title": "T", "description": "d", "image": "i",
			},
			expectedStatus: fiber.StatusBadRequest,
		},
		{
			name:           "invalid JSON",
			requestBody:    "{not json",
			expectedStatus: fiber.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := ta.request(t, fiber.MethodPost, "/api/projects", tt.requestBody, true)
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)
			if tt.checkResponse != nil {
				tt.checkResponse(t, decodeResponse(t, resp))
			} else {
				resp.Body.Close()
			}
		})
	}

	// None of the rejected payloads may have left a record behind.
	resp := ta.request(t, fiber.MethodGet, "/api/projects/admin", nil, true)
	var stored []models.Project
	decodeData(t, resp, &stored)
	assert.Len(t, stored, 1)
}

func TestProjectUpsertAndFilters(t *testing.T) {
	ta := newTestApp(t)

	create := func(id, projectType, title string) {
		t.Helper()
		resp := ta.request(t, fiber.MethodPost, "/api/projects", map[string]interface{}{
			"id": id, "type": projectType, "title": title, "description": "d", "image": "i",
		}, true)
		require.Equal(t, fiber.StatusCreated, resp.StatusCode)
		resp.Body.Close()
	}

	create("library", "flagship", "Heritage Library")
	create("arts", "upcoming", "Arts Festival")

	// PUT replaces by the path id.
	resp := ta.request(t, fiber.MethodPut, "/api/projects/library", map[string]interface{}{
		"type": "flagship", "title": "Heritage Library and Reading Room", "description": "d", "image": "i",
	}, true)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	resp.Body.Close()

	var projects []models.Project
	resp = ta.request(t, fiber.MethodGet, "/api/projects", nil, false)
	decodeData(t, resp, &projects)
	require.Len(t, projects, 2, "the upsert replaced, it did not append")
	assert.Equal(t, "Arts Festival", projects[0].Title, "projects list sorts by title")

	resp = ta.request(t, fiber.MethodGet, "/api/projects?type=flagship", nil, false)
	decodeData(t, resp, &projects)
	require.Len(t, projects, 1)
	assert.Equal(t, "Heritage Library and Reading Room", projects[0].Title)

	// An unrecognized filter value means no filter.
	resp = ta.request(t, fiber.MethodGet, "/api/projects?type=on-hold", nil, false)
	decodeData(t, resp, &projects)
	assert.Len(t, projects, 2)

	resp = ta.request(t, fiber.MethodGet, "/api/projects?limit=1", nil, false)
	decodeData(t, resp, &projects)
	assert.Len(t, projects, 1)

	// The POST fallback form mirrors PUT for hosts that block it.
	resp = ta.request(t, fiber.MethodPost, "/api/projects/arts/update", map[string]interface{}{
		"type": "upcoming", "title": "Arts and Culture Festival", "description": "d", "image": "i",
	}, true)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = ta.request(t, fiber.MethodGet, "/api/projects?type=upcoming", nil, false)
	decodeData(t, resp, &projects)
	require.Len(t, projects, 1)
	assert.Equal(t, "Arts and Culture Festival", projects[0].Title)
}

func TestDeleteProject(t *testing.T) {
	ta := newTestApp(t)

	resp := ta.request(t, fiber.MethodPost, "/api/projects", map[string]interface{}{
		"id": "gone", "type": "existing", "title": "T", "description": "d", "image": "i",
	}, true)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = ta.request(t, fiber.MethodDelete, "/api/projects/gone", nil, true)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	env := decodeResponse(t, resp)
	assert.Equal(t, "success", env.Status)
	assert.Contains(t, env.Message, "gone")

	var stored []models.Project
	resp = ta.request(t, fiber.MethodGet, "/api/projects/admin", nil, true)
	decodeData(t, resp, &stored)
	assert.Empty(t, stored)

	resp = ta.request(t, fiber.MethodDelete, "/api/projects/gone", nil, true)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	resp.Body.Close()

	// And the POST fallback form.
	resp = ta.request(t, fiber.MethodPost, "/api/projects", map[string]interface{}{
		"id": "gone-2", "type": "existing", "title": "T", "description": "d", "image": "i",
	}, true)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	resp.Body.Close()
	resp = ta.request(t, fiber.MethodPost, "/api/projects/gone-2/delete", nil, true)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	resp.Body.Close()
}

func TestProjectAdminGuard(t *testing.T) {
	ta := newTestApp(t)
	body := map[string]interface{}{"type": "flagship", "title": "T", "description": "d", "image": "i"}

	// Reads stay public.
	resp := ta.request(t, fiber.MethodGet, "/api/projects", nil, false)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	resp.Body.Close()

	// Writes and the admin listing challenge for credentials.
	resp = ta.request(t, fiber.MethodPost, "/api/projects", body, false)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, `Basic realm="admin"`, resp.Header.Get(fiber.HeaderWWWAuthenticate))
	env := decodeResponse(t, resp)
	assert.Equal(t, "Administrator credentials required", env.Message)

	resp = ta.request(t, fiber.MethodGet, "/api/projects/admin", nil, false)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()

	// Wrong password fails the same way.
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(fiber.MethodPost, "/api/projects", strings.NewReader(string(raw)))
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(testAdminUser, "wrong")
	wrong, err := ta.app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, wrong.StatusCode)
	wrong.Body.Close()
}
