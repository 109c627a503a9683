package handler

import (
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"crater-gateway/internal/apierror"
	"crater-gateway/internal/crater"
	"crater-gateway/internal/dispatch"
	"crater-gateway/internal/metrics"
	"crater-gateway/internal/middleware"
)

const maxRequestBytes = 4 << 20

// ScoreHandler 는 채점 요청 한 건을 처리한다.
// 검증, 분산 채점, 결과 조립이 모두 이 핸들러를 거친다.
type ScoreHandler struct {
	dispatcher *dispatch.Dispatcher
	store      *metrics.Store
	logger     *slog.Logger
}

// NewScoreHandler 는 핸들러를 생성한다.
func NewScoreHandler(dispatcher *dispatch.Dispatcher, store *metrics.Store, logger *slog.Logger) *ScoreHandler {
	return &ScoreHandler{
		dispatcher: dispatcher,
		store:      store,
		logger:     logger,
	}
}

// RegisterRoutes 는 채점 라우트를 등록한다.
func (h *ScoreHandler) RegisterRoutes(router *gin.Engine) {
	router.POST("/", h.Score)
}

// Score 는 XML 채점 요청을 받아 XML 결과 문서로 회신한다.
// 성공이든 실패든 회신은 항상 crater-results 문서다.
func (h *ScoreHandler) Score(c *gin.Context) {
	startedAt := time.Now()

	raw, err := io.ReadAll(io.LimitReader(c.Request.Body, maxRequestBytes))
	if err != nil {
		raw = nil
	}

	req, clientID, err := crater.Decode(string(raw))
	if err != nil {
		h.fail(c, startedAt, clientID, err)
		return
	}

	items, err := h.dispatcher.Score(c.Request.Context(), req)
	if err != nil {
		h.fail(c, startedAt, req.ClientID, err)
		return
	}

	body, err := crater.AssembleSuccess(req.ClientID, items)
	if err != nil {
		h.fail(c, startedAt, req.ClientID, err)
		return
	}

	responses := 0
	for _, item := range items {
		responses += len(item.Responses)
	}
	h.store.RecordSuccess(time.Since(startedAt), len(items), responses)
	c.Data(http.StatusOK, crater.ContentTypeXML, []byte(body))
}

func (h *ScoreHandler) fail(c *gin.Context, startedAt time.Time, clientID string, err error) {
	apiErr := apierror.FromError(err)
	h.store.RecordError(time.Since(startedAt), apiErr.Status == http.StatusUnauthorized)
	h.logger.Warn("score_request_failed",
		"request_id", middleware.GetRequestID(c),
		"client_id", clientID,
		"status", apiErr.Status,
		"error", apiErr.Message)

	status, body := crater.ErrorDocument(clientID, apiErr)
	c.Data(status, crater.ContentTypeXML, []byte(body))
}
