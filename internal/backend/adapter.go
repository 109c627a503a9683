// Package backend 는 채점 백엔드별 요청/응답 변환 어댑터와 그 레지스트리를
// 제공한다. 어댑터는 순수 함수 쌍이며 상태를 갖지 않는다. 백엔드 추가는
// 레지스트리 등록 한 건으로 끝나고 디스패처는 손대지 않는다.
package backend

import (
	"bytes"
	"strconv"

	json "github.com/goccy/go-json"

	"crater-gateway/internal/apierror"
	"crater-gateway/internal/crater"
	"crater-gateway/internal/routing"
)

// Params 는 어댑터 입력이다.
type Params struct {
	ClientID   string
	ItemID     string
	ResponseID string
	AnswerText string
}

// Request 는 어댑터가 만든 발신 요청이다.
type Request struct {
	Payload any
	Headers map[string]string
}

// Adapter 는 백엔드 한 종류의 변환 계약이다.
type Adapter interface {
	Type() routing.BackendType
	BuildRequest(route routing.Route, params Params) Request
	ParseResponse(responseID string, raw []byte) (crater.NormalizedScore, error)
}

// Registry 는 백엔드 유형 태그에서 어댑터로 가는 고정 매핑이다.
type Registry struct {
	adapters map[routing.BackendType]Adapter
}

// NewRegistry 는 어댑터 목록으로 레지스트리를 만든다.
func NewRegistry(adapters ...Adapter) *Registry {
	mapping := make(map[routing.BackendType]Adapter, len(adapters))
	for _, adapter := range adapters {
		mapping[adapter.Type()] = adapter
	}
	return &Registry{adapters: mapping}
}

// DefaultRegistry 는 내장 어댑터 전부를 등록한 레지스트리를 만든다.
func DefaultRegistry() *Registry {
	return NewRegistry(AutoMLAdapter{}, AzureAdapter{})
}

// Lookup 는 백엔드 유형의 어댑터를 반환한다.
func (r *Registry) Lookup(backendType routing.BackendType) (Adapter, error) {
	adapter, ok := r.adapters[backendType]
	if !ok {
		return nil, apierror.NewNoAdapter(string(backendType))
	}
	return adapter, nil
}

// decodeJSONMap 는 숫자를 원문 그대로 보존하며 JSON 객체를 해석한다.
// 점수 값은 수신한 표기 그대로 통과시켜야 하므로 float 변환을 피한다.
func decodeJSONMap(raw []byte) (map[string]any, error) {
	decoder := json.NewDecoder(bytes.NewReader(raw))
	decoder.UseNumber()
	var payload map[string]any
	if err := decoder.Decode(&payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// stringifyScalar 는 스칼라 JSON 값을 속성 문자열로 바꾼다.
// 스칼라가 아니면 두 번째 반환값이 false다.
func stringifyScalar(value any) (string, bool) {
	switch v := value.(type) {
	case string:
		return v, true
	case json.Number:
		return v.String(), true
	case bool:
		return strconv.FormatBool(v), true
	default:
		return "", false
	}
}
