package dispatch

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"crater-gateway/internal/backend"
	"crater-gateway/internal/crater"
	"crater-gateway/internal/routing"
)

// Dispatcher 는 검증된 요청의 문항/응답을 백엔드로 흩뿌리고 결과를 모은다.
type Dispatcher struct {
	table    *routing.Table
	registry *backend.Registry
	caller   *Caller
	logger   *slog.Logger
}

// NewDispatcher 는 디스패처를 만든다.
func NewDispatcher(table *routing.Table, registry *backend.Registry, caller *Caller, logger *slog.Logger) *Dispatcher {
	return &Dispatcher{
		table:    table,
		registry: registry,
		caller:   caller,
		logger:   logger,
	}
}

// Score 는 요청의 모든 응답을 동시에 채점한다. 하나라도 실패하면 나머지를
// 취소하고 첫 오류를 반환한다. 성공 시 결과 인덱스는 입력 인덱스와 같다.
func (d *Dispatcher) Score(ctx context.Context, req *crater.ScoringRequest) ([]crater.ItemResult, error) {
	results := make([]crater.ItemResult, len(req.Items))

	group, groupCtx := errgroup.WithContext(ctx)
	for i, item := range req.Items {
		i, item := i, item
		group.Go(func() error {
			return d.scoreItem(groupCtx, req.ClientID, item, &results[i])
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (d *Dispatcher) scoreItem(ctx context.Context, clientID string, item crater.ItemRequest, out *crater.ItemResult) error {
	route, err := d.table.Resolve(item.ItemID)
	if err != nil {
		return err
	}
	adapter, err := d.registry.Lookup(route.Type)
	if err != nil {
		return err
	}

	scores := make([]crater.NormalizedScore, len(item.Responses))
	group, groupCtx := errgroup.WithContext(ctx)
	for j, response := range item.Responses {
		j, response := j, response
		group.Go(func() error {
			params := backend.Params{
				ClientID:   clientID,
				ItemID:     item.ItemID,
				ResponseID: response.ResponseID,
				AnswerText: response.AnswerText,
			}
			return d.scoreResponse(groupCtx, adapter, route, params, &scores[j])
		})
	}
	if err := group.Wait(); err != nil {
		return err
	}

	*out = crater.ItemResult{ItemID: item.ItemID, Responses: scores}
	return nil
}

func (d *Dispatcher) scoreResponse(ctx context.Context, adapter backend.Adapter, route routing.Route, params backend.Params, out *crater.NormalizedScore) error {
	request := adapter.BuildRequest(route, params)

	raw, err := d.caller.Post(ctx, route.Type, route.URL, request)
	if err != nil {
		d.logger.Warn("backend call failed",
			"backend", string(route.Type),
			"item_id", params.ItemID,
			"response_id", params.ResponseID,
			"error", err)
		return err
	}

	score, err := adapter.ParseResponse(params.ResponseID, raw)
	if err != nil {
		return err
	}

	d.logger.Debug("response scored",
		"backend", string(route.Type),
		"item_id", params.ItemID,
		"response_id", params.ResponseID,
		"score", score.Score)
	*out = score
	return nil
}
