// Package dispatch 는 채점 요청의 동시 분산과 전량 성공 합류를 담당한다.
// 응답 하나라도 실패하면 전체 요청이 실패하고, 성공 시 결과 순서는 입력
// 순서를 그대로 따른다.
package dispatch

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	json "github.com/goccy/go-json"

	"crater-gateway/internal/apierror"
	"crater-gateway/internal/backend"
	"crater-gateway/internal/routing"
)

const maxResponseBytes = 1 << 20

// Caller 는 모든 백엔드 호출이 공유하는 발신 HTTP 클라이언트다.
type Caller struct {
	client *http.Client
}

// NewCaller 는 전체 요청 시한이 걸린 클라이언트를 만든다.
func NewCaller(timeout time.Duration) *Caller {
	return &Caller{client: &http.Client{Timeout: timeout}}
}

// Post 는 JSON 본문을 보내고 2xx 응답 본문을 돌려준다. 전송 실패와
// 비 2xx 상태는 모두 transport 계열 오류로 접는다.
func (c *Caller) Post(ctx context.Context, backendType routing.BackendType, url string, request backend.Request) ([]byte, error) {
	body, err := json.Marshal(request.Payload)
	if err != nil {
		return nil, apierror.NewTransport(fmt.Sprintf("Request to %s question rater failed!", backendType))
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, apierror.NewTransport(fmt.Sprintf("Request to %s question rater failed!", backendType))
	}
	httpReq.Header.Set("Content-Type", "application/json")
	for name, value := range request.Headers {
		httpReq.Header.Set(name, value)
	}

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, apierror.NewTransport(fmt.Sprintf("Request to %s question rater failed!", backendType))
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, apierror.NewTransport(fmt.Sprintf("Request to %s question rater failed with status %d!", backendType, resp.StatusCode))
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, apierror.NewTransport(fmt.Sprintf("Request to %s question rater failed!", backendType))
	}
	return raw, nil
}
