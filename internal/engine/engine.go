// Package engine validates conjugation requests, selects the applicable verb classes and
// dispatches to the per-class conjugators.
package engine

import (
	"context"
	"fmt"

	"github.com/samber/lo"

	"lazverb/internal/conjugators"
	"lazverb/internal/grammar"
	"lazverb/internal/lexicon"
	"lazverb/internal/morph"
	contextutils "lazverb/internal/utils"
)

// Verbs that never take an object regardless of their dictionary flags
var noObjectVerbs = []string{"coxons", "cozun", "gyožin"}

// Engine conjugates verbs from an immutable dictionary snapshot
type Engine struct {
	dict          *lexicon.Dictionary
	noObjectVerbs map[string]bool
}

// Option configures an Engine
type Option func(*Engine)

// WithNoObjectVerbs adds infinitives that reject objects
func WithNoObjectVerbs(verbs ...string) Option {
	return func(e *Engine) {
		for _, v := range verbs {
			e.noObjectVerbs[morph.Normalize(v)] = true
		}
	}
}

// New returns an engine over dict
func New(dict *lexicon.Dictionary, opts ...Option) *Engine {
	e := &Engine{dict: dict, noObjectVerbs: make(map[string]bool)}
	WithNoObjectVerbs(noObjectVerbs...)(e)
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Dictionary returns the snapshot the engine conjugates from
func (e *Engine) Dictionary() *lexicon.Dictionary {
	return e.dict
}

// Diagnostic records why a class produced nothing
type Diagnostic struct {
	Class   grammar.VerbClass `json:"class"`
	Message string            `json:"message"`
}

// Result is the outcome of one request
type Result struct {
	Infinitive  string                                            `json:"infinitive"`
	Category    conjugators.Category                              `json:"category"`
	Classes     []grammar.VerbClass                               `json:"classes"`
	Forms       []conjugators.Form                                `json:"-"`
	ByRegion    map[grammar.Region][]string                       `json:"conjugations"`
	ByClass     map[grammar.VerbClass]map[grammar.Region][]string `json:"conjugations_by_group"`
	Diagnostics []Diagnostic                                      `json:"diagnostics,omitempty"`
}

// Conjugate validates req and conjugates it in every applicable class
func (e *Engine) Conjugate(ctx context.Context, req Request) (*Result, error) {
	p, err := validate(req)
	if err != nil {
		return nil, err
	}

	entries, err := e.selectEntries(p)
	if err != nil {
		return nil, err
	}

	b := newResultBuilder(morph.Normalize(p.infinitive), p.category, p.regions)
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, contextutils.ErrTimeout.WithDetails("%v", err)
		}
		e.dispatch(b, entry, p)
	}
	return b.build()
}

// selectEntries looks the infinitive up in every class and applies the class restrictions
func (e *Engine) selectEntries(p plan) ([]lexicon.Entry, error) {
	var entries []lexicon.Entry
	for _, class := range e.dict.Classes(p.infinitive) {
		if entry, ok := e.dict.Lookup(class, p.infinitive); ok {
			entries = append(entries, entry)
		}
	}
	if len(entries) == 0 {
		return nil, contextutils.ErrInfinitiveNotFound.WithDetails("%q is not in the dictionary", p.infinitive)
	}

	classes := lo.Map(entries, func(entry lexicon.Entry, _ int) grammar.VerbClass { return entry.Class })
	core := morph.Decompose(morph.Normalize(p.infinitive)).Core

	if p.hasObject() {
		noObject := e.noObjectVerbs[morph.Normalize(p.infinitive)] || e.noObjectVerbs[core] ||
			lo.ContainsBy(entries, func(entry lexicon.Entry) bool { return entry.HasFlag(lexicon.FlagNoObject) })
		if noObject {
			return nil, contextutils.ErrVerbClassForbidsObject.WithDetails("%q does not take an object", p.infinitive)
		}
		if len(classes) == 1 && classes[0] == grammar.Middle {
			return nil, contextutils.ErrVerbClassForbidsObject.WithDetails("middle verb %q does not take an object", p.infinitive)
		}
		if lo.Contains(classes, grammar.Transitive) {
			entries = lo.Filter(entries, func(entry lexicon.Entry, _ int) bool { return entry.Class != grammar.Middle })
		}
	}

	if p.markers.Any() {
		if len(classes) == 1 && classes[0] == grammar.Intransitive {
			return nil, contextutils.ErrVerbClassForbidsMarker.WithDetails("intransitive verb %q does not take markers", p.infinitive)
		}
		entries = lo.Filter(entries, func(entry lexicon.Entry, _ int) bool { return entry.Class != grammar.Intransitive })
	} else if lo.ContainsBy(entries, func(entry lexicon.Entry) bool { return entry.HasFlag(lexicon.FlagRequiresMarker) }) {
		return nil, contextutils.ErrInvalidInput.WithDetails("%q requires an applicative or causative marker", p.infinitive)
	}
	return entries, nil
}

func (e *Engine) dispatch(b *resultBuilder, entry lexicon.Entry, p plan) {
	b.addClass(entry.Class)
	c, ok := conjugators.Lookup(entry.Class, p.category)
	if !ok {
		b.diagnose(entry.Class, fmt.Sprintf("%s: %s", conjugators.ErrNoConjugator.Message, p.category))
		return
	}
	produced := 0
	for _, subject := range p.subjects {
		for _, object := range p.objects {
			forms, err := c.Conjugate(entry, conjugators.Args{
				Subject:  subject,
				Object:   object,
				Markers:  p.markers,
				Optative: p.optative,
				Tense:    p.tense,
			})
			if err != nil {
				b.diagnose(entry.Class, err.Error())
				continue
			}
			produced += b.add(forms)
		}
	}
	if produced == 0 {
		b.diagnose(entry.Class, fmt.Sprintf("no %s forms for the requested persons and regions", p.category))
	}
}
