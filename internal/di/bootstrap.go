package di

import (
	"fmt"
	"time"

	"crater-gateway/internal/backend"
	"crater-gateway/internal/config"
	"crater-gateway/internal/dispatch"
	"crater-gateway/internal/handler"
	"crater-gateway/internal/logging"
	"crater-gateway/internal/metrics"
	"crater-gateway/internal/routing"
	"crater-gateway/internal/server"
)

// InitializeApp 은 애플리케이션 의존성을 초기화하고 App 인스턴스를 반환한다.
func InitializeApp() (*App, error) {
	cfg, err := config.ProvideConfig()
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	logger, err := logging.NewLogger(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}

	metricsStore := metrics.NewStore()

	routingTable, err := routing.NewTable(cfg)
	if err != nil {
		return nil, fmt.Errorf("routing table: %w", err)
	}

	registry := backend.DefaultRegistry()
	caller := dispatch.NewCaller(time.Duration(cfg.Rater.TimeoutSeconds) * time.Second)
	dispatcher := dispatch.NewDispatcher(routingTable, registry, caller, logger)

	scoreHandler := handler.NewScoreHandler(dispatcher, metricsStore, logger)

	router := handler.NewRouter(cfg, logger, scoreHandler, metricsStore, routingTable)
	httpServer := server.NewHTTPServer(cfg, router)

	return NewApp(httpServer, logger, cfg, metricsStore, routingTable), nil
}
