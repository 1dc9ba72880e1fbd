package httpx

import (
	"net/http"
	"time"

	"github.com/Gunvolt24/wildink/internal/ports"
	"github.com/Gunvolt24/wildink/pkg/ctxmeta"
	"github.com/gin-gonic/gin"
)

// RequestLogger — access-лог витрины; уровень зависит от статуса ответа.
// Служебные маршруты не логируются.
func RequestLogger(log ports.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if isQuietPath(path) {
			return
		}
		if path == "" {
			path = c.Request.URL.Path
		}

		ctx := c.Request.Context()
		status := c.Writer.Status()
		trace, _ := ctxmeta.TraceIDFromContext(ctx)
		span, _ := ctxmeta.SpanIDFromContext(ctx)

		logf := log.Infof
		switch {
		case status >= http.StatusInternalServerError:
			logf = log.Errorf
		case status >= http.StatusBadRequest:
			logf = log.Warnf
		}

		logf(ctx, "http %s %s status=%d duration=%s size=%d ip=%s trace=%s span=%s",
			c.Request.Method, path, status, time.Since(start), c.Writer.Size(), c.ClientIP(), trace, span)
	}
}

func isQuietPath(path string) bool {
	switch path {
	case "/metrics", "/ping":
		return true
	}
	return false
}
