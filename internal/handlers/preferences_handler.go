package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"lazverb/internal/grammar"
	"lazverb/internal/observability"
	contextutils "lazverb/internal/utils"
)

// PreferencesHandler stores per-session defaults
type PreferencesHandler struct {
	logger *observability.Logger
}

// NewPreferencesHandler creates a new PreferencesHandler instance
func NewPreferencesHandler(logger *observability.Logger) *PreferencesHandler {
	return &PreferencesHandler{logger: logger}
}

type regionPreference struct {
	// Regions are region codes or names; an empty list clears the preference
	Regions []string `json:"regions" validate:"max=4,dive,required"`
}

// GetRegion handles GET /v1/preferences/region
func (h *PreferencesHandler) GetRegion(c *gin.Context) {
	regions, ok := GetRegionsFromSession(c)
	if !ok {
		regions = []grammar.Region{}
	}
	c.JSON(http.StatusOK, gin.H{"regions": regions})
}

// PutRegion handles PUT /v1/preferences/region
func (h *PreferencesHandler) PutRegion(c *gin.Context) {
	ctx, span := observability.TraceHandlerFunction(c.Request.Context(), "put_region_preference")
	defer observability.FinishSpan(span, nil)

	var body regionPreference
	if err := c.ShouldBindJSON(&body); err != nil {
		HandleAppError(c, contextutils.ErrInvalidInput.WithDetails("invalid JSON body: %v", err))
		return
	}
	if err := contextutils.ValidateStruct(body); err != nil {
		HandleAppError(c, contextutils.ErrInvalidInput.WithDetails("%s", validationDetails(err)))
		return
	}

	var regions []grammar.Region
	if len(body.Regions) > 0 {
		var err error
		if regions, err = grammar.ParseRegionList(body.Regions); err != nil {
			HandleValidationError(c, "regions", body.Regions, err.Error())
			return
		}
	}

	if err := SaveRegionsToSession(c, regions); err != nil {
		h.logger.Error(ctx, "Failed to save session", err)
		HandleAppError(c, contextutils.WrapError(err, "failed to save session"))
		return
	}
	span.SetAttributes(observability.AttributeRegions(body.Regions))

	if regions == nil {
		regions = []grammar.Region{}
	}
	c.JSON(http.StatusOK, gin.H{"regions": regions})
}
