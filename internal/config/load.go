package config

import (
	"errors"
	"log/slog"
	"sync"

	"github.com/joho/godotenv"
)

var (
	configOnce  sync.Once
	configValue *Config
)

// Load 는 환경 변수 기반 설정을 로드한다.
func Load() *Config {
	configOnce.Do(func() {
		_ = godotenv.Load()
		configValue = buildConfig()
	})
	return configValue
}

// ProvideConfig 는 설정을 로드하고 검증한다.
func ProvideConfig() (*Config, error) {
	cfg := Load()
	if cfg == nil {
		return nil, errors.New("config not initialized")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate 는 설정 유효성을 검사한다.
// 인증이 켜져 있으면 자격 증명이 모두 있어야 한다 (부팅 시 실패).
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	if c.Auth.Enabled && (c.Auth.Username == "" || c.Auth.Password == "") {
		return errors.New("missing C_RATER_USERNAME or C_RATER_PASSWORD environment variable")
	}
	if c.Rater.TimeoutSeconds <= 0 {
		return errors.New("RATER_TIMEOUT must be positive")
	}
	return nil
}

// LogEnvStatus 는 환경 설정 상태를 로그로 남긴다.
func LogEnvStatus(cfg *Config, logger *slog.Logger) {
	if logger == nil || cfg == nil {
		return
	}

	logger.Debug(
		"env_status",
		"env_file", fileExists(".env"),
		"auth_enabled", cfg.Auth.Enabled,
		"auth_user", maskSecret(cfg.Auth.Username),
		"default_endpoint", cfg.Rater.DefaultEndpoint,
		"azure_token", maskSecret(cfg.Rater.AzureQ2Token),
		"routing_file", cfg.Routing.File,
		"timeout", cfg.Rater.TimeoutSeconds,
	)
}

func buildConfig() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:      getEnvString("LOG_LEVEL", "info"),
			LogDir:     getEnvString("LOG_DIR", ""),
			MaxSizeMB:  getEnvInt("LOG_FILE_MAX_SIZE_MB", 1),
			MaxBackups: getEnvInt("LOG_FILE_MAX_BACKUPS", 30),
			MaxAgeDays: getEnvInt("LOG_FILE_MAX_AGE_DAYS", 7),
			Compress:   getEnvBool("LOG_FILE_COMPRESS", true),
		},
		HTTP: HTTPConfig{
			Host:         getEnvString("HTTP_HOST", "127.0.0.1"),
			Port:         getEnvInt("HTTP_PORT", 40721),
			HTTP2Enabled: getEnvBool("HTTP2_ENABLED", true),
		},
		Auth: AuthConfig{
			Enabled:  getEnvBool("AUTH_ENABLED", false),
			Username: getEnvString("C_RATER_USERNAME", ""),
			Password: getEnvString("C_RATER_PASSWORD", ""),
		},
		Rater: RaterConfig{
			DefaultEndpoint: getEnvString("RATER_ENDPOINT", ""),
			TimeoutSeconds:  getEnvInt("RATER_TIMEOUT", 30),
			AzureQ2Token:    getEnvString("AZURE_Q2_API_TOKEN", ""),
		},
		Routing: RoutingConfig{
			File: getEnvString("ROUTING_FILE", ""),
		},
	}
}
