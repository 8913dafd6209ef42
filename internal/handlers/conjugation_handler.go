package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"

	"lazverb/internal/engine"
	"lazverb/internal/grammar"
	"lazverb/internal/observability"
	"lazverb/internal/services"
	contextutils "lazverb/internal/utils"
)

// ConjugationHandler serves /v1/conjugate
type ConjugationHandler struct {
	service services.ConjugationServiceInterface
	logger  *observability.Logger
}

// NewConjugationHandler creates a new ConjugationHandler instance
func NewConjugationHandler(service services.ConjugationServiceInterface, logger *observability.Logger) *ConjugationHandler {
	return &ConjugationHandler{service: service, logger: logger}
}

// conjugateQuery is the query string of GET /v1/conjugate
type conjugateQuery struct {
	Infinitive         string `form:"infinitive" validate:"required"`
	Subject            string `form:"subject" validate:"required"`
	Object             string `form:"obj"`
	Tense              string `form:"tense"`
	Aspect             string `form:"aspect"`
	Optative           string `form:"optative" validate:"omitempty,oneof=true false 1 0"`
	Imperative         string `form:"imperative" validate:"omitempty,oneof=true false 1 0"`
	NegativeImperative string `form:"neg_imperative" validate:"omitempty,oneof=true false 1 0"`
	Applicative        string `form:"applicative" validate:"omitempty,oneof=true false 1 0"`
	Causative          string `form:"causative" validate:"omitempty,oneof=true false 1 0"`
	SimpleCausative    string `form:"simple_causative" validate:"omitempty,oneof=true false 1 0"`
	// Region is comma separated
	Region string `form:"region"`
}

func flag(v string) bool {
	b, _ := strconv.ParseBool(v)
	return b
}

func (q conjugateQuery) request() engine.Request {
	req := engine.Request{
		Infinitive:         q.Infinitive,
		Subject:            q.Subject,
		Object:             q.Object,
		Tense:              q.Tense,
		Aspect:             q.Aspect,
		Optative:           flag(q.Optative),
		Imperative:         flag(q.Imperative),
		NegativeImperative: flag(q.NegativeImperative),
		Applicative:        flag(q.Applicative),
		Causative:          flag(q.Causative),
		SimpleCausative:    flag(q.SimpleCausative),
	}
	if q.Region != "" {
		req.Regions = lo.Filter(lo.Map(strings.Split(q.Region, ","), func(s string, _ int) string {
			return strings.TrimSpace(s)
		}), func(s string, _ int) bool { return s != "" })
	}
	return req
}

// Conjugate handles GET /v1/conjugate. Without a region parameter the session default applies.
func (h *ConjugationHandler) Conjugate(c *gin.Context) {
	ctx, span := observability.TraceHandlerFunction(c.Request.Context(), "conjugate")
	defer observability.FinishSpan(span, nil)

	var q conjugateQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		HandleAppError(c, contextutils.ErrInvalidInput.WithDetails("%v", err))
		return
	}
	if err := contextutils.ValidateStruct(q); err != nil {
		// missing fields and malformed flags are plain invalid input
		HandleAppError(c, contextutils.ErrInvalidInput.WithDetails("%s", validationDetails(err)))
		return
	}

	req := q.request()
	if len(req.Regions) == 0 {
		if regions, ok := GetRegionsFromSession(c); ok {
			req.Regions = lo.Map(regions, func(r grammar.Region, _ int) string { return string(r) })
		}
	}

	result, err := h.service.Conjugate(ctx, req)
	if err != nil {
		HandleAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"result": result,
	})
}

func validationDetails(err error) string {
	var appErr *contextutils.AppError
	if contextutils.AsError(err, &appErr) && appErr.Details != "" {
		return appErr.Details
	}
	return err.Error()
}
