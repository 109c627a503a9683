package handler

import (
	"log/slog"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"crater-gateway/internal/config"
	"crater-gateway/internal/metrics"
	"crater-gateway/internal/middleware"
	"crater-gateway/internal/routing"
)

// NewRouter 는 HTTP 라우터를 구성한다. 인증 게이트는 본문을 읽는 핸들러보다
// 앞에 선다.
func NewRouter(
	cfg *config.Config,
	logger *slog.Logger,
	scoreHandler *ScoreHandler,
	store *metrics.Store,
	table *routing.Table,
) *gin.Engine {
	setGinMode(cfg.Logging.Level)

	router := gin.New()
	router.Use(
		middleware.RequestID(),
		middleware.RequestLogger(logger),
		gzip.Gzip(gzip.DefaultCompression),
		gin.Recovery(),
		cors.New(corsConfig()),
		middleware.BasicAuth(cfg, store),
	)

	RegisterHealthRoutes(router, cfg, store, table)
	scoreHandler.RegisterRoutes(router)

	return router
}

func corsConfig() cors.Config {
	corsCfg := cors.DefaultConfig()
	corsCfg.AllowAllOrigins = true
	corsCfg.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsCfg.AllowHeaders = []string{"Authorization", "Content-Type", middleware.RequestIDHeader}
	return corsCfg
}

func setGinMode(level string) {
	if strings.EqualFold(strings.TrimSpace(level), "debug") {
		gin.SetMode(gin.DebugMode)
		return
	}
	gin.SetMode(gin.ReleaseMode)
}
