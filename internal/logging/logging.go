// Package logging 은 게이트웨이 전역 slog 로거를 구성한다. 기본은 컬러
// 콘솔 출력이고, LOG_DIR 가 지정되면 회전 파일 출력을 함께 쓴다.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/lmittmann/tint"
	"gopkg.in/natefinch/lumberjack.v2"

	"crater-gateway/internal/config"
)

const defaultLogFileName = "gateway.log"

// NewLogger: 로거를 생성합니다.
func NewLogger(cfg config.LoggingConfig) (*slog.Logger, error) {
	level := parseLevel(cfg.Level)

	logDir := strings.TrimSpace(cfg.LogDir)
	if logDir == "" {
		logger := newTintLogger(os.Stdout, level, false)
		slog.SetDefault(logger)
		return logger, nil
	}

	logFile, err := newRotatingFile(cfg, logDir)
	if err != nil {
		return nil, err
	}

	writer := io.MultiWriter(os.Stdout, logFile)
	logger := newTintLogger(writer, level, true)
	slog.SetDefault(logger)
	logger.Info("file_logging_enabled",
		"path", logFile.Filename,
		"level", level.String(),
		"max_size_mb", cfg.MaxSizeMB,
		"max_backups", cfg.MaxBackups,
		"max_age_days", cfg.MaxAgeDays,
		"compress", cfg.Compress,
	)
	return logger, nil
}

func newRotatingFile(cfg config.LoggingConfig, logDir string) (*lumberjack.Logger, error) {
	if cfg.MaxSizeMB <= 0 || cfg.MaxBackups <= 0 || cfg.MaxAgeDays <= 0 {
		return nil, fmt.Errorf(
			"invalid log config: size=%d backups=%d age_days=%d",
			cfg.MaxSizeMB,
			cfg.MaxBackups,
			cfg.MaxAgeDays,
		)
	}

	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, fmt.Errorf("create log dir failed: %w", err)
	}

	return &lumberjack.Logger{
		Filename:   filepath.Join(logDir, defaultLogFileName),
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAgeDays,
		Compress:   cfg.Compress,
	}, nil
}

func newTintLogger(writer io.Writer, level slog.Level, noColor bool) *slog.Logger {
	return slog.New(tint.NewHandler(writer, &tint.Options{
		Level:      level,
		TimeFormat: time.RFC3339,
		AddSource:  true,
		NoColor:    noColor,
	}))
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
