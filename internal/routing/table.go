// Package routing 은 문항 식별자를 채점 백엔드 라우트로 묶는 정적 테이블을
// 제공한다. 테이블은 기동 시 한 번 만들어지고 이후 읽기 전용이다.
package routing

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"crater-gateway/internal/apierror"
	"crater-gateway/internal/config"
)

// BackendType 는 백엔드 어댑터를 고르는 태그다.
type BackendType string

const (
	// BackendAutoML 는 flat label 응답을 주는 채점 백엔드다.
	BackendAutoML BackendType = "automl"
	// BackendAzure 는 Azure ML classic execute 백엔드다.
	BackendAzure BackendType = "azure"
)

// Route 는 문항 하나의 백엔드 바인딩이다.
type Route struct {
	Type        BackendType `yaml:"type" validate:"required,oneof=automl azure"`
	URL         string      `yaml:"url" validate:"required,url"`
	BearerToken string      `yaml:"bearerToken"`
}

// 내장 기본 라우트. 라우팅 파일이 없어도 동작하는 최소 구성이다.
const (
	defaultAutoMLURL = "https://us-central1-esaaf-auto-score-test.cloudfunctions.net/getPrediction"
	defaultAzureURL  = "https://ussouthcentral.services.azureml.net/workspaces/b5a5025f397d41c981a3b74d5cd1ad0a/services/08f14473eb02419e90172079a51a8f9d/execute?api-version=2.0"
)

type routingFile struct {
	Items map[string]Route `yaml:"items"`
}

// Table 는 불변 라우팅 테이블이다. 조회는 순수 읽기이며 동시 접근에 안전하다.
type Table struct {
	routes   map[string]Route
	fallback *Route
}

// NewTable 는 내장 기본값, 라우팅 파일, 환경 재정의 순으로 테이블을 만든다.
func NewTable(cfg *config.Config) (*Table, error) {
	routes := map[string]Route{
		"1": {Type: BackendAutoML, URL: defaultAutoMLURL},
		"2": {Type: BackendAzure, URL: defaultAzureURL, BearerToken: cfg.Rater.AzureQ2Token},
	}

	if cfg.Routing.File != "" {
		loaded, err := loadRoutingFile(cfg.Routing.File)
		if err != nil {
			return nil, err
		}
		for itemID, route := range loaded {
			routes[itemID] = route
		}
	}

	validate := validator.New()
	for itemID, route := range routes {
		if err := validate.Struct(route); err != nil {
			return nil, fmt.Errorf("invalid route for item %s: %w", itemID, err)
		}
	}

	table := &Table{routes: routes}
	if cfg.Rater.DefaultEndpoint != "" {
		// 단일 엔드포인트 시절 호환: 매핑되지 않은 문항은 automl 기본
		// 라우트로 간다.
		fallback := Route{Type: BackendAutoML, URL: cfg.Rater.DefaultEndpoint}
		if err := validate.Struct(fallback); err != nil {
			return nil, fmt.Errorf("invalid default endpoint: %w", err)
		}
		table.fallback = &fallback
	}

	return table, nil
}

// Resolve 는 문항의 라우트를 반환한다.
func (t *Table) Resolve(itemID string) (Route, error) {
	if route, ok := t.routes[itemID]; ok {
		return route, nil
	}
	if t.fallback != nil {
		return *t.fallback, nil
	}
	return Route{}, apierror.NewUnknownItem(itemID)
}

// Len 는 명시적으로 매핑된 문항 수를 반환한다.
func (t *Table) Len() int {
	return len(t.routes)
}

func loadRoutingFile(path string) (map[string]Route, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read routing file: %w", err)
	}
	var parsed routingFile
	if err := yaml.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("parse routing file: %w", err)
	}
	return parsed.Items, nil
}
