package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"crater-gateway/internal/config"
	"crater-gateway/internal/metrics"
)

func newAuthRouter(cfg *config.Config) (*gin.Engine, *metrics.Store) {
	gin.SetMode(gin.TestMode)
	store := metrics.NewStore()
	router := gin.New()
	router.Use(BasicAuth(cfg, store))
	router.POST("/", func(c *gin.Context) {
		c.String(http.StatusOK, "scored")
	})
	router.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	return router, store
}

func authConfig(enabled bool) *config.Config {
	return &config.Config{Auth: config.AuthConfig{Enabled: enabled, Username: "user", Password: "pass"}}
}

func TestBasicAuthDisabled(t *testing.T) {
	router, _ := newAuthRouter(authConfig(false))

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodPost, "/", nil))

	if recorder.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", recorder.Code)
	}
}

func TestBasicAuthMissingHeader(t *testing.T) {
	router, _ := newAuthRouter(authConfig(true))

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodPost, "/", strings.NewReader("<crater-request/>")))

	if recorder.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", recorder.Code)
	}
	body := recorder.Body.String()
	if !strings.Contains(body, "Error: Missing Authorization header!") {
		t.Fatalf("unexpected body: %s", body)
	}
	if !strings.Contains(body, `code="401"`) {
		t.Fatalf("missing status code attribute: %s", body)
	}
	// 인증 전에는 client id가 해석되지 않았으므로 client 요소가 없다.
	if strings.Contains(body, "<client") {
		t.Fatalf("client element should be absent: %s", body)
	}
	if got := recorder.Header().Get("Content-Type"); got != "text/xml" {
		t.Fatalf("unexpected content type: %s", got)
	}
}

func TestBasicAuthWrongCredentials(t *testing.T) {
	router, _ := newAuthRouter(authConfig(true))

	request := httptest.NewRequest(http.MethodPost, "/", nil)
	request.Header.Set("Authorization", "Basic d3Jvbmc6d3Jvbmc=")
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)

	if recorder.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", recorder.Code)
	}
	if !strings.Contains(recorder.Body.String(), "Error: Invalid Authorization header!") {
		t.Fatalf("unexpected body: %s", recorder.Body.String())
	}
}

func TestBasicAuthCaseSensitive(t *testing.T) {
	router, _ := newAuthRouter(authConfig(true))

	// 스킴 대소문자까지 정확히 일치해야 한다.
	request := httptest.NewRequest(http.MethodPost, "/", nil)
	request.Header.Set("Authorization", "basic dXNlcjpwYXNz")
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)

	if recorder.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", recorder.Code)
	}
}

func TestBasicAuthValidCredentials(t *testing.T) {
	router, _ := newAuthRouter(authConfig(true))

	request := httptest.NewRequest(http.MethodPost, "/", nil)
	request.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)

	if recorder.Code != http.StatusOK || recorder.Body.String() != "scored" {
		t.Fatalf("expected pass-through, got %d %s", recorder.Code, recorder.Body.String())
	}
}

func TestBasicAuthOpenPaths(t *testing.T) {
	router, store := newAuthRouter(authConfig(true))

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/health", nil))

	if recorder.Code != http.StatusOK {
		t.Fatalf("health should bypass auth, got %d", recorder.Code)
	}
	if store.Snapshot()["total_requests"] != 0 {
		t.Fatalf("open path should not count as rejection: %v", store.Snapshot())
	}
}

func TestBasicAuthRecordsRejections(t *testing.T) {
	router, store := newAuthRouter(authConfig(true))

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodPost, "/", nil))
	if recorder.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", recorder.Code)
	}

	request := httptest.NewRequest(http.MethodPost, "/", nil)
	request.Header.Set("Authorization", "Basic d3Jvbmc6d3Jvbmc=")
	recorder = httptest.NewRecorder()
	router.ServeHTTP(recorder, request)
	if recorder.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", recorder.Code)
	}

	snapshot := store.Snapshot()
	if snapshot["total_requests"] != 2 {
		t.Fatalf("expected total_requests 2, got %v", snapshot["total_requests"])
	}
	if snapshot["total_errors"] != 2 || snapshot["total_auth_errors"] != 2 {
		t.Fatalf("rejections not recorded: %v", snapshot)
	}

	// 통과한 요청은 게이트에서 집계하지 않는다.
	request = httptest.NewRequest(http.MethodPost, "/", nil)
	request.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
	recorder = httptest.NewRecorder()
	router.ServeHTTP(recorder, request)
	if recorder.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", recorder.Code)
	}
	if store.Snapshot()["total_requests"] != 2 {
		t.Fatalf("pass-through should not be counted here: %v", store.Snapshot())
	}
}
