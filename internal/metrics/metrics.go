package metrics

import (
	"sync/atomic"
	"time"
)

// Store 는 채점 요청 통계를 저장한다.
type Store struct {
	totalRequests   int64
	totalErrors     int64
	totalAuthErrors int64
	totalItems      int64
	totalResponses  int64
	totalDurationMs int64
}

// NewStore 는 통계 저장소를 생성한다.
func NewStore() *Store {
	return &Store{}
}

// RecordSuccess 는 성공 요청 통계를 기록한다.
func (s *Store) RecordSuccess(duration time.Duration, items, responses int) {
	atomic.AddInt64(&s.totalRequests, 1)
	atomic.AddInt64(&s.totalItems, int64(items))
	atomic.AddInt64(&s.totalResponses, int64(responses))
	atomic.AddInt64(&s.totalDurationMs, duration.Milliseconds())
}

// RecordError 는 실패 요청 통계를 기록한다.
func (s *Store) RecordError(duration time.Duration, unauthorized bool) {
	atomic.AddInt64(&s.totalRequests, 1)
	atomic.AddInt64(&s.totalErrors, 1)
	if unauthorized {
		atomic.AddInt64(&s.totalAuthErrors, 1)
	}
	atomic.AddInt64(&s.totalDurationMs, duration.Milliseconds())
}

// Snapshot 는 통계 스냅샷을 반환한다.
func (s *Store) Snapshot() map[string]float64 {
	totalRequests := atomic.LoadInt64(&s.totalRequests)
	totalErrors := atomic.LoadInt64(&s.totalErrors)
	totalAuthErrors := atomic.LoadInt64(&s.totalAuthErrors)
	totalItems := atomic.LoadInt64(&s.totalItems)
	totalResponses := atomic.LoadInt64(&s.totalResponses)
	durationMs := atomic.LoadInt64(&s.totalDurationMs)

	avgDuration := 0.0
	if totalRequests > 0 {
		avgDuration = float64(durationMs) / float64(totalRequests)
	}

	return map[string]float64{
		"total_requests":         float64(totalRequests),
		"total_errors":           float64(totalErrors),
		"total_auth_errors":      float64(totalAuthErrors),
		"total_items_scored":     float64(totalItems),
		"total_responses_scored": float64(totalResponses),
		"total_duration_ms":      float64(durationMs),
		"avg_duration_ms":        avgDuration,
	}
}
