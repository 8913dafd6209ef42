package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"lazverb/internal/observability"
)

func TestDefaultErrorRecoveryConfig(t *testing.T) {
	config := DefaultErrorRecoveryConfig()

	assert.False(t, config.EnableCircuitBreaker)
	assert.Equal(t, 5, config.CircuitBreakerThreshold)
	assert.Equal(t, 30*time.Second, config.CircuitBreakerTimeout)
}

func TestErrorRecoveryMiddleware_PanicRecovery(t *testing.T) {
	gin.SetMode(gin.TestMode)
	core, logs := observer.New(zap.ErrorLevel)

	router := gin.New()
	router.Use(ErrorRecoveryMiddleware(&observability.Logger{Logger: zap.New(core)}, nil))
	router.GET("/panic", func(_ *gin.Context) {
		panic("test panic")
	})

	req, _ := http.NewRequest("GET", "/panic", nil)
	req.Header.Set("Accept-Language", "tr")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "INTERNAL_SERVER_ERROR", body["code"])
	assert.Equal(t, "fatal", body["severity"])
	assert.Equal(t, body["message_tr"], body["message"])
	assert.Equal(t, 1, logs.FilterMessage("Panic recovered").Len())
}

func TestErrorRecoveryMiddleware_NormalRequest(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(ErrorRecoveryMiddleware(nil, nil))
	router.GET("/normal", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "success"})
	})

	req, _ := http.NewRequest("GET", "/normal", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestErrorRecoveryMiddleware_CircuitBreakerSheds(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(ErrorRecoveryMiddleware(nil, &ErrorRecoveryConfig{
		EnableCircuitBreaker:    true,
		CircuitBreakerThreshold: 2,
		CircuitBreakerTimeout:   time.Hour,
	}))
	router.GET("/fail", func(c *gin.Context) { c.Status(http.StatusInternalServerError) })

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req, _ := http.NewRequest("GET", "/fail", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}
	assert.Equal(t, []int{500, 500, 503}, codes)
}

func TestCircuitBreaker_CanExecute(t *testing.T) {
	config := &ErrorRecoveryConfig{
		EnableCircuitBreaker:    true,
		CircuitBreakerThreshold: 2,
		CircuitBreakerTimeout:   100 * time.Millisecond,
	}

	cb := newCircuitBreaker(config)

	assert.True(t, cb.canExecute())
	assert.Equal(t, circuitClosed, cb.state)

	cb.recordFailure()
	cb.recordFailure()

	assert.False(t, cb.canExecute())
	assert.Equal(t, circuitOpen, cb.state)

	time.Sleep(150 * time.Millisecond)

	assert.True(t, cb.canExecute())
	assert.Equal(t, circuitHalfOpen, cb.state)

	cb.record(http.StatusOK)

	assert.True(t, cb.canExecute())
	assert.Equal(t, circuitClosed, cb.state)
}
