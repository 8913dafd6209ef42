package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"

	"lazverb/internal/grammar"
	"lazverb/internal/observability"
	"lazverb/internal/serviceinterfaces"
	"lazverb/internal/version"
)

// MetaHandler serves health and vocabulary endpoints
type MetaHandler struct {
	dictionary serviceinterfaces.Lifecycle
}

// NewMetaHandler creates a MetaHandler; dictionary reports readiness and may be nil
func NewMetaHandler(dictionary serviceinterfaces.Lifecycle) *MetaHandler {
	return &MetaHandler{dictionary: dictionary}
}

type regionInfo struct {
	Code grammar.Region `json:"code"`
	Name string         `json:"name"`
}

// Health handles GET /health
func (h *MetaHandler) Health(c *gin.Context) {
	status, code := "ok", http.StatusOK
	if h.dictionary != nil && !h.dictionary.IsReady() {
		status, code = "starting", http.StatusServiceUnavailable
	}
	c.JSON(code, gin.H{
		"status":  status,
		"service": "lazverb",
		"version": version.Get(),
	})
}

// Meta handles GET /v1/meta
func (h *MetaHandler) Meta(c *gin.Context) {
	_, span := observability.TraceHandlerFunction(c.Request.Context(), "meta")
	defer observability.FinishSpan(span, nil)

	c.JSON(http.StatusOK, gin.H{
		"regions": lo.Map(grammar.Regions, func(r grammar.Region, _ int) regionInfo {
			return regionInfo{Code: r, Name: r.Name()}
		}),
		"persons": lo.Map(grammar.Persons, func(p grammar.Person, _ int) string { return p.String() }),
		"classes": grammar.Classes,
		"tenses":  grammar.Tenses,
		"aspects": grammar.Aspects,
		"moods":   []string{"optative", "imperative", "neg_imperative"},
		"markers": []string{"applicative", "causative", "simple_causative"},
	})
}
