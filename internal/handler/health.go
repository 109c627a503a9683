package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"crater-gateway/internal/config"
	"crater-gateway/internal/metrics"
	"crater-gateway/internal/routing"
)

// HealthResponse: 상태 확인 응답입니다.
type HealthResponse struct {
	Status       string             `json:"status"`
	AuthEnabled  bool               `json:"auth_enabled"`
	HTTP2Enabled bool               `json:"http2_enabled"`
	RoutedItems  int                `json:"routed_items"`
	Stats        map[string]float64 `json:"stats"`
}

// RegisterHealthRoutes: 상태 확인 라우트를 등록합니다.
func RegisterHealthRoutes(router *gin.Engine, cfg *config.Config, store *metrics.Store, table *routing.Table) {
	router.GET("/health", func(c *gin.Context) {
		// Liveness: 백엔드 상태와 무관하게 shallow로 유지합니다.
		response := HealthResponse{
			Status:       "ok",
			AuthEnabled:  cfg.Auth.Enabled,
			HTTP2Enabled: cfg.HTTP.HTTP2Enabled,
			RoutedItems:  table.Len(),
			Stats:        store.Snapshot(),
		}
		c.JSON(http.StatusOK, response)
	})

	// Prometheus 메트릭 (장기 히스토리 분석용)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
}
