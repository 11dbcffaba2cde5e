package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	userPort "inkwell/internal/ports/user"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type staticVerifier map[string]string

func (v staticVerifier) VerifyAccessToken(_ context.Context, raw string) (*userPort.TokenClaims, error) {
	uid, ok := v[raw]
	if !ok {
		return nil, errors.New("bad token")
	}
	return &userPort.TokenClaims{UserID: uid, TokenID: "jti-" + uid}, nil
}

func newEngine(mw ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(mw...)
	r.GET("/who/:id", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(UserIDKey))
	})
	return r
}

func get(r http.Handler, path, auth string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestJWTAuthMiddleware(t *testing.T) {
	r := newEngine(JWTAuthMiddleware(staticVerifier{"good": "u1"}))

	w := get(r, "/who/1", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"code":401,"message":"Authentication credentials were not provided","data":null}`, w.Body.String())

	w = get(r, "/who/1", "Bearer nope")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = get(r, "/who/1", "bearer good")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "u1", w.Body.String())
}

func TestOptionalAuth(t *testing.T) {
	r := newEngine(OptionalAuth(staticVerifier{"good": "u1"}))

	w := get(r, "/who/1", "Bearer nope")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Body.String())

	w = get(r, "/who/1", "Bearer good")
	assert.Equal(t, "u1", w.Body.String())
}

func TestLoggerLevels(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	r := newEngine(Logger(zap.New(core)))

	get(r, "/who/1?x=1", "")
	get(r, "/missing", "")

	entries := logs.All()
	if assert.Len(t, entries, 2) {
		assert.Equal(t, zap.InfoLevel, entries[0].Level)
		assert.Equal(t, "/who/1?x=1", entries[0].ContextMap()["path"])
		assert.Equal(t, zap.WarnLevel, entries[1].Level)
	}
}

func TestMetricsUseRoutePattern(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)
	r := newEngine(m.Handler())

	get(r, "/who/1", "")
	get(r, "/who/2", "")
	get(r, "/missing", "")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.requests.WithLabelValues("/who/:id", http.MethodGet, "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requests.WithLabelValues("unmatched", http.MethodGet, "404")))
}
