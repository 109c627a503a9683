package di

import (
	"log/slog"
	"net/http"

	"crater-gateway/internal/config"
	"crater-gateway/internal/metrics"
	"crater-gateway/internal/routing"
)

// App: 애플리케이션 구성 요소를 묶는다.
type App struct {
	Server       *http.Server
	Logger       *slog.Logger
	Config       *config.Config
	MetricsStore *metrics.Store
	RoutingTable *routing.Table
}

// NewApp: App 인스턴스를 생성합니다.
func NewApp(
	server *http.Server,
	logger *slog.Logger,
	cfg *config.Config,
	metricsStore *metrics.Store,
	routingTable *routing.Table,
) *App {
	return &App{
		Server:       server,
		Logger:       logger,
		Config:       cfg,
		MetricsStore: metricsStore,
		RoutingTable: routingTable,
	}
}
