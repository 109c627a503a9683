package config

import (
	"encoding/base64"
	"fmt"
)

// LoggingConfig: 로깅 설정입니다.
type LoggingConfig struct {
	Level      string
	LogDir     string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

// HTTPConfig: HTTP 서버 설정입니다.
type HTTPConfig struct {
	Host         string
	Port         int
	HTTP2Enabled bool
}

// AuthConfig: 요청 인증 설정입니다.
// Enabled가 false면 게이트는 모든 요청을 통과시킨다.
type AuthConfig struct {
	Enabled  bool
	Username string
	Password string
}

// HeaderValue: 기대하는 Authorization 헤더 값을 반환한다.
func (a AuthConfig) HeaderValue() string {
	credentials := fmt.Sprintf("%s:%s", a.Username, a.Password)
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(credentials))
}

// RaterConfig: 채점 백엔드 호출 설정입니다.
type RaterConfig struct {
	// DefaultEndpoint가 비어있지 않으면 라우팅 테이블에 없는 문항을
	// automl 기본 라우트로 보낸다 (단일 엔드포인트 시절 호환).
	DefaultEndpoint string
	TimeoutSeconds  int
	AzureQ2Token    string
}

// RoutingConfig: 문항 라우팅 테이블 설정입니다.
type RoutingConfig struct {
	File string // YAML 라우팅 파일 경로 (비어있으면 내장 기본값만 사용)
}

// Config: 애플리케이션 전체 설정입니다.
type Config struct {
	Logging LoggingConfig
	HTTP    HTTPConfig
	Auth    AuthConfig
	Rater   RaterConfig
	Routing RoutingConfig
}
