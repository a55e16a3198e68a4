package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"gb-more-from-widget/metrics"
)

// HTTPMetrics 는 요청 수와 처리 시간을 라우트 패턴 단위로 기록한다.
func HTTPMetrics(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		m.ObserveHTTP(c.Request.Method, c.FullPath(), c.Writer.Status(), time.Since(start))
	}
}
