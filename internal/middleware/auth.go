package middleware

import (
	"crypto/subtle"
	"time"

	"github.com/gin-gonic/gin"

	"crater-gateway/internal/apierror"
	"crater-gateway/internal/config"
	"crater-gateway/internal/crater"
	"crater-gateway/internal/metrics"
)

// BasicAuth 는 채점 요청 인증 미들웨어다. 기대값과의 정확 일치만 허용하며
// 본문을 읽기 전에 판정한다. 실패 회신도 결과 문서 형태를 지키고, 거절
// 건수는 통계 저장소에 남는다.
func BasicAuth(cfg *config.Config, store *metrics.Store) gin.HandlerFunc {
	expected := []byte(cfg.Auth.HeaderValue())

	return func(c *gin.Context) {
		if !cfg.Auth.Enabled {
			c.Next()
			return
		}

		if !shouldProtectPath(c.Request.URL.Path) {
			c.Next()
			return
		}

		startedAt := time.Now()
		provided := c.GetHeader("Authorization")
		if provided == "" {
			rejectUnauthorized(c, store, startedAt, apierror.NewMissingAuthorization())
			return
		}
		if subtle.ConstantTimeCompare([]byte(provided), expected) != 1 {
			rejectUnauthorized(c, store, startedAt, apierror.NewInvalidAuthorization())
			return
		}

		c.Next()
	}
}

func rejectUnauthorized(c *gin.Context, store *metrics.Store, startedAt time.Time, err *apierror.Error) {
	store.RecordError(time.Since(startedAt), true)
	status, body := crater.ErrorDocument("", err)
	c.Data(status, crater.ContentTypeXML, []byte(body))
	c.Abort()
}

// 상태 확인과 메트릭 경로는 인증 없이 열어둔다.
func shouldProtectPath(path string) bool {
	switch path {
	case "/health", "/metrics":
		return false
	default:
		return true
	}
}
