package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/notaryweb/internal/db"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) (*API, func()) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:handler-%d?mode=memory&cache=shared", time.Now().UnixNano())
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		t.Fatalf("failed to access sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.Migrate(gdb); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	if err := db.EnsureUser(gdb, "tester", "secret"); err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}

	api := NewAPI(Dependencies{DB: gdb, UploadDir: t.TempDir(), SessionTTL: time.Hour})
	return api, func() {
		sqlDB.Close()
	}
}

// newTestEngine mounts only the routes exercised in this package.
func newTestEngine(api *API) *gin.Engine {
	r := gin.New()
	r.Use(sessions.Sessions("test_session", cookie.NewStore([]byte("handler-test-secret"))))
	r.POST("/auth/login", api.Login)
	r.GET("/auth/me", api.Me)

	for _, res := range api.Resources() {
		res.RegisterPublic(r)
	}
	admin := r.Group("/admin", api.AuthRequired())
	for _, res := range api.Resources() {
		res.RegisterAdmin(admin)
	}
	return r
}

func jsonRequest(method, path string, payload any, cookies []*http.Cookie) *http.Request {
	var body bytes.Buffer
	if payload != nil {
		_ = json.NewEncoder(&body).Encode(payload)
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	return req
}

func loginCookies(t *testing.T, r *gin.Engine) []*http.Cookie {
	t.Helper()
	w := httptest.NewRecorder()
	r.ServeHTTP(w, jsonRequest(http.MethodPost, "/auth/login", map[string]string{"username": "tester", "password": "secret"}, nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected login to succeed, got %d: %s", w.Code, w.Body.String())
	}
	return w.Result().Cookies()
}

func TestSessionExpiresAfterTTL(t *testing.T) {
	api, cleanup := setupTestDB(t)
	defer cleanup()

	now := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	api.now = func() time.Time { return now }
	r := newTestEngine(api)
	cookies := loginCookies(t, r)

	now = now.Add(59 * time.Minute)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, jsonRequest(http.MethodGet, "/auth/me", nil, cookies))
	if w.Code != http.StatusOK {
		t.Fatalf("expected session to be valid before ttl, got %d", w.Code)
	}

	now = now.Add(2 * time.Minute)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, jsonRequest(http.MethodGet, "/admin/links", nil, cookies))
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected expired session to be rejected, got %d", w.Code)
	}
}

func TestLoginRequiresBody(t *testing.T) {
	api, cleanup := setupTestDB(t)
	defer cleanup()
	r := newTestEngine(api)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/auth/login", nil))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for empty body, got %d", w.Code)
	}
}

func TestPublicListsAlwaysReturnArrays(t *testing.T) {
	api, cleanup := setupTestDB(t)
	defer cleanup()
	r := newTestEngine(api)

	for _, path := range []string{"/banners", "/services", "/links", "/pages", "/review-images", "/announcements"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		if w.Code != http.StatusOK {
			t.Fatalf("%s: expected 200, got %d", path, w.Code)
		}

		var body map[string]json.RawMessage
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatalf("%s: invalid json: %v", path, err)
		}
		key := path[1:]
		if string(body[key]) != "[]" {
			t.Fatalf("%s: expected empty array under %q, got %s", path, key, w.Body.String())
		}
	}
}

func TestAnnouncementsOrderedByPosition(t *testing.T) {
	api, cleanup := setupTestDB(t)
	defer cleanup()
	r := newTestEngine(api)
	cookies := loginCookies(t, r)

	for _, item := range []map[string]any{
		{"title": "Feriado", "message": "Fechado dia 20", "order": 2},
		{"title": "Horário", "message": "Aberto até 17h", "order": 1},
		{"title": "Rascunho", "message": "oculto", "active": false},
	} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, jsonRequest(http.MethodPost, "/admin/announcements", item, cookies))
		if w.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
		}
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/announcements", nil))

	var body struct {
		Announcements []db.Announcement `json:"announcements"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(body.Announcements) != 2 {
		t.Fatalf("expected 2 active announcements, got %d", len(body.Announcements))
	}
	if body.Announcements[0].Title != "Horário" || body.Announcements[1].Title != "Feriado" {
		t.Fatalf("unexpected order: %s, %s", body.Announcements[0].Title, body.Announcements[1].Title)
	}
}

func TestUpdateKeepsOmittedFields(t *testing.T) {
	api, cleanup := setupTestDB(t)
	defer cleanup()
	r := newTestEngine(api)
	cookies := loginCookies(t, r)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, jsonRequest(http.MethodPost, "/admin/services", map[string]any{
		"title": "Escritura", "summary": "Compra e venda", "icon": "house",
	}, cookies))
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	var created struct {
		Service db.OfficeService `json:"service"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &created)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, jsonRequest(http.MethodPatch, fmt.Sprintf("/admin/services/%d", created.Service.ID), map[string]any{"summary": "Inventário"}, cookies))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var updated struct {
		Service db.OfficeService `json:"service"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &updated)
	if updated.Service.Title != "Escritura" || updated.Service.Icon != "house" || updated.Service.Summary != "Inventário" {
		t.Fatalf("unexpected merge result: %+v", updated.Service)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, jsonRequest(http.MethodPatch, "/admin/services/404", map[string]any{"summary": "x"}, cookies))
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for missing id, got %d", w.Code)
	}
}
