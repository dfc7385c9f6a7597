package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"sangamam/backend/config"
	"sangamam/backend/internal/store"
	"sangamam/backend/middleware"
)

const (
	testAdminUser = "admin"
	testAdminPass = "secret"
)

type testApp struct {
	app     *fiber.App
	handler *ApplicationHandler
}

// newTestApp builds the full routed API on top of a throwaway file store.
// Tests tune h.Config (upload dir, storage endpoint, proxy allow-list)
// before firing requests.
func newTestApp(t *testing.T) *testApp {
	t.Helper()
	log := logrus.New()
	log.SetOutput(io.Discard)

	cfg := config.Config{
		AdminUsername: testAdminUser,
		AdminPassword: testAdminPass,
	}
	h := NewApplicationHandler(store.NewFileStore(t.TempDir(), log), cfg, log)

	app := fiber.New(fiber.Config{BodyLimit: 8 << 20})
	RegisterRoutes(app, h, middleware.AdminAuth(cfg.AdminUsername, cfg.AdminPassword, log))
	return &testApp{app: app, handler: h}
}

// request fires a JSON request. body may be nil, a raw string, or a value to
// marshal. asAdmin attaches the test admin credentials.
func (ta *testApp) request(t *testing.T, method, target string, body interface{}, asAdmin bool) *http.Response {
	t.Helper()
	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = strings.NewReader(b)
	default:
		raw, err := json.Marshal(b)
		if err != nil {
			t.Fatalf("marshal request body: %v", err)
		}
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, target, reader)
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if asAdmin {
		req.SetBasicAuth(testAdminUser, testAdminPass)
	}
	resp, err := ta.app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", method, target, err)
	}
	return resp
}

// apiResponse is the common JSON envelope.
type apiResponse struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func decodeResponse(t *testing.T, resp *http.Response) apiResponse {
	t.Helper()
	defer resp.Body.Close()
	var out apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode response envelope: %v", err)
	}
	return out
}

// decodeData unwraps the envelope and unmarshals its data payload into out.
func decodeData(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	env := decodeResponse(t, resp)
	if err := json.Unmarshal(env.Data, out); err != nil {
		t.Fatalf("decode data payload: %v", err)
	}
}
