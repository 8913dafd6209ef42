package observability

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"lazverb/internal/config"
	contextutils "lazverb/internal/utils"
)

func setupRecordingTracer(t *testing.T) *tracetest.SpanRecorder {
	t.Helper()
	recorder := tracetest.NewSpanRecorder()
	previous := otel.GetTracerProvider()
	otel.SetTracerProvider(sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder)))
	t.Cleanup(func() { otel.SetTracerProvider(previous) })
	return recorder
}

func setupGinWithSessions() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(sessions.Sessions("test-session", cookie.NewStore([]byte("test-secret-key"))))
	return router
}

func TestGinMiddleware_BasicFunctionality(t *testing.T) {
	setupRecordingTracer(t)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(GinMiddleware("test-service"))
	router.GET("/v1/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp["status"])
}

func TestGinMiddlewareWithErrorHandling_MarksFailedSpans(t *testing.T) {
	recorder := setupRecordingTracer(t)

	router := setupGinWithSessions()
	router.Use(GinMiddlewareWithErrorHandling("test-service")...)
	router.GET("/ok", func(c *gin.Context) { c.Status(http.StatusOK) })
	router.GET("/not-found", func(c *gin.Context) {
		_ = c.Error(contextutils.ErrInfinitiveNotFound)
		c.Status(http.StatusNotFound)
	})
	router.GET("/boom", func(c *gin.Context) { c.Status(http.StatusInternalServerError) })

	for _, path := range []string{"/ok", "/not-found", "/boom"} {
		router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	spans := recorder.Ended()
	require.Len(t, spans, 3)

	assert.NotEqual(t, codes.Error, spans[0].Status().Code)

	assert.Equal(t, codes.Error, spans[1].Status().Code)
	attrs := spanAttributes(spans[1])
	assert.Equal(t, string(contextutils.ErrorCodeInfinitiveNotFound), attrs["error.code"])
	assert.Equal(t, string(contextutils.SeverityInfo), attrs["error.severity"])
	assert.Equal(t, "false", attrs["error.server_error"])

	assert.Equal(t, codes.Error, spans[2].Status().Code)
	assert.Equal(t, "true", spanAttributes(spans[2])["error.server_error"])
}

func spanAttributes(span sdktrace.ReadOnlySpan) map[string]string {
	attrs := map[string]string{}
	for _, kv := range span.Attributes() {
		attrs[string(kv.Key)] = kv.Value.Emit()
	}
	return attrs
}

func TestGinMiddlewareWithErrorHandling_WithoutSessions(t *testing.T) {
	recorder := setupRecordingTracer(t)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(GinMiddlewareWithErrorHandling("test-service")...)
	router.GET("/bad", func(c *gin.Context) { c.Status(http.StatusBadRequest) })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/bad", nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	require.Len(t, recorder.Ended(), 1)
	assert.Equal(t, "warn", spanAttributes(recorder.Ended()[0])["error.severity"])
}

func TestGinMiddlewareWithErrorHandling_SessionRegions(t *testing.T) {
	recorder := setupRecordingTracer(t)

	router := setupGinWithSessions()
	router.Use(GinMiddlewareWithErrorHandling("test-service")...)
	router.GET("/bad", func(c *gin.Context) {
		session := sessions.Default(c)
		session.Set(config.SessionRegionKey, "HO,PZ")
		c.Status(http.StatusBadRequest)
	})

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/bad", nil))

	require.Len(t, recorder.Ended(), 1)
	assert.Equal(t, "HO,PZ", spanAttributes(recorder.Ended()[0])["session.regions"])
}

func TestDetermineErrorSeverity(t *testing.T) {
	assert.Equal(t, "error", determineErrorSeverity(http.StatusInternalServerError, nil))
	assert.Equal(t, "warn", determineErrorSeverity(http.StatusBadRequest, nil))
	assert.Equal(t, "info", determineErrorSeverity(http.StatusOK, nil))

	ginErrs := []*gin.Error{{Err: contextutils.ErrTimeout}}
	assert.Equal(t, string(contextutils.ErrTimeout.Severity), determineErrorSeverity(http.StatusBadRequest, ginErrs))
}
