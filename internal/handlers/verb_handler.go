package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"

	"lazverb/internal/config"
	"lazverb/internal/grammar"
	"lazverb/internal/lexicon"
	"lazverb/internal/models"
	"lazverb/internal/observability"
	"lazverb/internal/services"
	contextutils "lazverb/internal/utils"
)

// VerbHandler serves the verb listing and lookup endpoints
type VerbHandler struct {
	conjugation services.ConjugationServiceInterface
	// catalog is nil when no database is configured; listings then come from the dictionary
	catalog services.CatalogServiceInterface
	logger  *observability.Logger
}

// NewVerbHandler creates a new VerbHandler instance
func NewVerbHandler(conjugation services.ConjugationServiceInterface, catalog services.CatalogServiceInterface, logger *observability.Logger) *VerbHandler {
	return &VerbHandler{conjugation: conjugation, catalog: catalog, logger: logger}
}

// ListVerbs handles GET /v1/verbs?q=&class=&region=&page=&page_size=
func (h *VerbHandler) ListVerbs(c *gin.Context) {
	ctx, span := observability.TraceHandlerFunction(c.Request.Context(), "list_verbs")
	defer observability.FinishSpan(span, nil)

	filters := ParseFilters(c, "q", "class", "region")
	page, size := ParsePagination(c, 1, config.DefaultPageSize, config.MaxPageSize)
	filter := models.VerbFilter{Query: filters["q"], Page: page, PageSize: size}

	if class, ok := filters["class"]; ok {
		classes, err := grammar.ParseVerbClass(class)
		if err != nil {
			HandleValidationError(c, "class", class, err.Error())
			return
		}
		filter.Classes = classes
	}
	if region, ok := filters["region"]; ok {
		parsed, err := grammar.ParseRegion(region)
		if err != nil {
			HandleValidationError(c, "region", region, err.Error())
			return
		}
		filter.Region = parsed
	}

	source := "dictionary"
	var result *models.VerbPage
	if h.catalog != nil {
		var err error
		if result, err = h.catalog.Search(ctx, filter); err != nil {
			h.logger.Error(ctx, "Catalog search failed", err, map[string]interface{}{"query": filter.Query})
			HandleAppError(c, err)
			return
		}
		source = "catalog"
	} else {
		result = services.SearchDictionary(h.conjugation.Dictionary(), filter)
	}

	verbs := result.Verbs
	if verbs == nil {
		verbs = []models.VerbRecord{}
	}
	WritePaginated(c, "verbs", verbs, NewPagination(result.Page, result.PageSize, result.Total), gin.H{"source": source})
}

// GetVerb handles GET /v1/verbs/:infinitive and returns the dictionary entries in every class
func (h *VerbHandler) GetVerb(c *gin.Context) {
	_, span := observability.TraceHandlerFunction(c.Request.Context(), "get_verb")
	defer observability.FinishSpan(span, nil)

	infinitive := c.Param("infinitive")
	span.SetAttributes(observability.AttributeInfinitive(infinitive))

	dict := h.conjugation.Dictionary()
	entries := lo.FilterMap(dict.Classes(infinitive), func(class grammar.VerbClass, _ int) (lexicon.Entry, bool) {
		return dict.Lookup(class, infinitive)
	})
	if len(entries) == 0 {
		HandleAppError(c, contextutils.ErrInfinitiveNotFound.WithDetails("no verb table contains %q", infinitive))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"infinitive": entries[0].Infinitive,
		"classes":    lo.Map(entries, func(e lexicon.Entry, _ int) grammar.VerbClass { return e.Class }),
		"entries":    entries,
	})
}
