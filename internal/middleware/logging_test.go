package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestRequestLoggerLogsErrors(t *testing.T) {
	gin.SetMode(gin.TestMode)
	var buffer bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buffer, &slog.HandlerOptions{Level: slog.LevelDebug}))

	router := gin.New()
	router.Use(RequestID(), RequestLogger(logger))
	router.POST("/", func(c *gin.Context) {
		c.Status(http.StatusBadRequest)
	})

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodPost, "/", nil))

	logged := buffer.String()
	if !strings.Contains(logged, "http_request") || !strings.Contains(logged, "status=400") {
		t.Fatalf("unexpected log output: %s", logged)
	}
}

func TestRequestLoggerSkipsHealthNoise(t *testing.T) {
	gin.SetMode(gin.TestMode)
	var buffer bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buffer, &slog.HandlerOptions{Level: slog.LevelDebug}))

	router := gin.New()
	router.Use(RequestLogger(logger))
	router.GET("/health", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/health", nil))

	if buffer.Len() != 0 {
		t.Fatalf("expected no log output, got %s", buffer.String())
	}
}
