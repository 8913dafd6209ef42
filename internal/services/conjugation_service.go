// Package services holds the application services behind the HTTP handlers and the CLI.
package services

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"lazverb/internal/config"
	"lazverb/internal/engine"
	"lazverb/internal/lexicon"
	"lazverb/internal/observability"
	"lazverb/internal/serviceinterfaces"
	contextutils "lazverb/internal/utils"
)

// ConjugationServiceInterface defines the interface for conjugation services
type ConjugationServiceInterface = serviceinterfaces.ConjugationService

// ConjugationService serves conjugation requests from an engine that can be swapped atomically
// when the dictionary is reloaded
type ConjugationService struct {
	engine  atomic.Pointer[engine.Engine]
	opts    []engine.Option
	timeout time.Duration
	logger  *observability.Logger
	metrics *observability.ConjugationMetrics
}

// NewConjugationService creates a service over dict using the dictionary and server settings of cfg
func NewConjugationService(dict *lexicon.Dictionary, cfg *config.Config, logger *observability.Logger) *ConjugationService {
	s := &ConjugationService{
		opts:    []engine.Option{engine.WithNoObjectVerbs(cfg.Dictionary.NoObjectVerbs...)},
		timeout: cfg.Server.RequestTimeout,
		logger:  logger,
		metrics: observability.GetConjugationMetrics(),
	}
	s.UseDictionary(dict)
	return s
}

// UseDictionary swaps in a new snapshot. In-flight requests finish on the old one.
func (s *ConjugationService) UseDictionary(dict *lexicon.Dictionary) {
	s.engine.Store(engine.New(dict, s.opts...))
}

// Dictionary returns the snapshot requests are served from
func (s *ConjugationService) Dictionary() *lexicon.Dictionary {
	return s.engine.Load().Dictionary()
}

// Conjugate runs one request under the configured timeout
func (s *ConjugationService) Conjugate(ctx context.Context, req engine.Request) (result *engine.Result, err error) {
	ctx, span := observability.TraceConjugationFunction(ctx, "conjugate",
		observability.AttributeInfinitive(req.Infinitive),
		observability.AttributeRegions(req.Regions),
	)
	defer observability.FinishSpan(span, &err)

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	start := time.Now()
	result, err = s.engine.Load().Conjugate(ctx, req)
	elapsed := time.Since(start)

	category := categoryOf(req)
	if err != nil {
		outcome := string(contextutils.GetErrorCode(err))
		if errors.Is(err, contextutils.ErrNoOutputProduced) {
			outcome = "empty"
		}
		s.metrics.RecordConjugation(ctx, category, outcome, 0, elapsed)
		s.logger.Debug(ctx, "Conjugation produced no forms", map[string]interface{}{
			"infinitive": req.Infinitive,
			"category":   category,
			"outcome":    outcome,
		})
		return nil, err
	}

	span.SetAttributes(
		observability.AttributeCategory(string(result.Category)),
		observability.AttributeFormCount(len(result.Forms)),
	)
	s.metrics.RecordConjugation(ctx, string(result.Category), "ok", len(result.Forms), elapsed)
	s.logger.Debug(ctx, "Conjugated", map[string]interface{}{
		"infinitive": result.Infinitive,
		"category":   string(result.Category),
		"classes":    result.Classes,
		"forms":      len(result.Forms),
		"elapsed_ms": elapsed.Milliseconds(),
	})
	return result, nil
}

// categoryOf labels a request for metrics before it has been validated
func categoryOf(req engine.Request) string {
	switch {
	case req.Imperative:
		return "imperative"
	case req.NegativeImperative:
		return "negative_imperative"
	case req.Aspect != "":
		return req.Aspect
	case req.Tense != "":
		return req.Tense
	}
	return "unknown"
}
