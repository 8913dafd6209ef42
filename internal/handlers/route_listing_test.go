package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRouteListingHandler_CollectRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	noop := func(_ *gin.Context) {}
	router.GET("/health", noop)
	router.GET("/debug/pprof", noop)
	v1 := router.Group("/v1")
	{
		v1.GET("/verbs", noop)
		v1.GET("/verbs/:infinitive", noop)
		v1.PUT("/preferences/region", noop)
		v1.GET("/preferences/region", noop)
	}

	handler := NewRouteListingHandler("lazverb")
	handler.CollectRoutes(router)

	keys := make([]string, 0, len(handler.routes))
	for _, route := range handler.routes {
		keys = append(keys, route.Method+" "+route.Path)
	}
	assert.Equal(t, []string{
		"GET /health",
		"GET /v1/preferences/region",
		"PUT /v1/preferences/region",
		"GET /v1/verbs",
		"GET /v1/verbs/:infinitive",
	}, keys)
}

func TestRouteListingHandler_GetRouteListingJSON(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/v1/meta", func(_ *gin.Context) {})
	router.PUT("/v1/preferences/region", func(_ *gin.Context) {})

	handler := NewRouteListingHandler("lazverb")
	handler.CollectRoutes(router)
	router.GET("/", handler.GetRouteListingJSON)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Service string         `json:"service"`
		Methods map[string]int `json:"methods"`
		Routes  []RouteInfo    `json:"routes"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "lazverb", body.Service)
	assert.Equal(t, map[string]int{"GET": 1, "PUT": 1}, body.Methods)
	assert.Len(t, body.Routes, 2)
}
