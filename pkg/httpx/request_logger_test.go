package httpx_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/Gunvolt24/wildink/pkg/httpx"
	"github.com/gin-gonic/gin"
)

// логгер, запоминающий уровни
type levelLogger struct {
	mu     sync.Mutex
	levels []string
}

func (l *levelLogger) add(level string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.levels = append(l.levels, level)
}

func (l *levelLogger) Infof(context.Context, string, ...any)  { l.add("info") }
func (l *levelLogger) Warnf(context.Context, string, ...any)  { l.add("warn") }
func (l *levelLogger) Errorf(context.Context, string, ...any) { l.add("error") }

func TestRequestLogger_LevelByStatus(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		status int
		want   string
	}{
		{http.StatusOK, "info"},
		{http.StatusNotFound, "warn"},
		{http.StatusBadGateway, "error"},
	}

	for _, tc := range cases {
		log := &levelLogger{}
		r := gin.New()
		r.Use(httpx.RequestLogger(log))
		r.GET("/api/catalog", func(c *gin.Context) { c.Status(tc.status) })

		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/catalog", http.NoBody))

		if len(log.levels) != 1 || log.levels[0] != tc.want {
			t.Fatalf("status %d: want [%s], got %v", tc.status, tc.want, log.levels)
		}
	}
}

func TestRequestLogger_SkipsServiceRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)

	log := &levelLogger{}
	r := gin.New()
	r.Use(httpx.RequestLogger(log))
	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
	r.GET("/metrics", func(c *gin.Context) { c.Status(http.StatusOK) })

	for _, p := range []string{"/ping", "/metrics"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, p, http.NoBody))
	}

	if len(log.levels) != 0 {
		t.Fatalf("service routes must not be logged, got %v", log.levels)
	}
}
