package engine

import (
	"strings"

	"github.com/samber/lo"

	"lazverb/internal/conjugators"
	"lazverb/internal/grammar"
	contextutils "lazverb/internal/utils"
)

// Request is a conjugation request as received from a transport
type Request struct {
	Infinitive         string   `json:"infinitive"`
	Subject            string   `json:"subject"`
	Object             string   `json:"obj,omitempty"`
	Tense              string   `json:"tense,omitempty"`
	Aspect             string   `json:"aspect,omitempty"`
	Optative           bool     `json:"optative,omitempty"`
	Imperative         bool     `json:"imperative,omitempty"`
	NegativeImperative bool     `json:"neg_imperative,omitempty"`
	Applicative        bool     `json:"applicative,omitempty"`
	Causative          bool     `json:"causative,omitempty"`
	SimpleCausative    bool     `json:"simple_causative,omitempty"`
	Regions            []string `json:"region,omitempty"`
}

// plan is a validated request
type plan struct {
	infinitive string
	subjects   []grammar.Person
	objects    []grammar.Person
	category   conjugators.Category
	tense      grammar.Tense
	markers    grammar.Markers
	optative   bool
	regions    []grammar.Region
}

func (p plan) hasObject() bool {
	return lo.ContainsBy(p.objects, func(o grammar.Person) bool { return o.Valid() })
}

const allToken = "all"

// validate checks the request in a fixed order and fails on the first problem found
func validate(req Request) (plan, error) {
	var p plan

	p.infinitive = strings.TrimSpace(req.Infinitive)
	if p.infinitive == "" {
		return p, contextutils.ErrInvalidInput.WithDetails("infinitive is required")
	}
	if strings.TrimSpace(req.Subject) == "" {
		return p, contextutils.ErrInvalidInput.WithDetails("subject is required")
	}

	// marker conflicts win over every later check
	p.markers = grammar.Markers{
		Applicative:     req.Applicative,
		Causative:       req.Causative,
		SimpleCausative: req.SimpleCausative,
	}
	switch {
	case p.markers.Causative && p.markers.SimpleCausative:
		return p, contextutils.ErrConflictingMarkers.WithDetails("causative and simple_causative are exclusive")
	case p.markers.Applicative && p.markers.Causative:
		return p, contextutils.ErrConflictingMarkers.WithDetails("applicative and causative are exclusive")
	}

	tenseToken := strings.TrimSpace(req.Tense)
	aspectToken := strings.TrimSpace(req.Aspect)
	if tenseToken == "" && aspectToken == "" && !req.Imperative && !req.NegativeImperative {
		return p, contextutils.ErrInvalidInput.WithDetails("one of tense, aspect, imperative or neg_imperative is required")
	}
	if req.Imperative || req.NegativeImperative {
		switch {
		case req.Imperative && req.NegativeImperative:
			return p, contextutils.ErrInvalidInput.WithDetails("imperative and neg_imperative are exclusive")
		case tenseToken != "" || aspectToken != "":
			return p, contextutils.ErrInvalidInput.WithDetails("imperative moods cannot be combined with a tense or aspect")
		case req.Optative:
			return p, contextutils.ErrInvalidInput.WithDetails("optative cannot be combined with an imperative mood")
		}
	}

	if err := p.resolveCategory(req, tenseToken, aspectToken); err != nil {
		return p, err
	}

	var err error
	if p.subjects, err = parsePersons(req.Subject, false); err != nil {
		return p, contextutils.ErrInvalidInput.WithDetails("subject: %v", err)
	}
	if p.objects, err = parsePersons(req.Object, true); err != nil {
		return p, contextutils.ErrInvalidInput.WithDetails("obj: %v", err)
	}
	if p.regions, err = grammar.ParseRegionList(req.Regions); err != nil {
		return p, contextutils.ErrInvalidInput.WithDetails("region: %v", err)
	}

	if p.markers.Any() {
		if !p.hasObject() {
			return p, contextutils.ErrMarkerRequiresObject.WithDetails("markers need an object")
		}
		p.objects = lo.Filter(p.objects, func(o grammar.Person, _ int) bool { return o.Valid() })
	}
	p.optative = req.Optative
	return p, nil
}

func (p *plan) resolveCategory(req Request, tenseToken, aspectToken string) error {
	switch {
	case req.Imperative:
		p.category = conjugators.CategoryImperative
		return nil
	case req.NegativeImperative:
		p.category = conjugators.CategoryNegativeImperative
		return nil
	}

	p.tense = grammar.Present
	if tenseToken != "" {
		t, err := grammar.ParseTense(tenseToken)
		if err != nil {
			return contextutils.ErrInvalidTenseOrAspect.WithDetails("%v", err)
		}
		p.tense = t
	}
	p.category = conjugators.CategoryForTense(p.tense)
	if aspectToken != "" {
		a, err := grammar.ParseAspect(aspectToken)
		if err != nil {
			return contextutils.ErrInvalidTenseOrAspect.WithDetails("%v", err)
		}
		p.category = conjugators.CategoryForAspect(a)
	}
	return nil
}

// parsePersons expands "all"; objects additionally include the objectless combination
func parsePersons(token string, object bool) ([]grammar.Person, error) {
	if strings.EqualFold(strings.TrimSpace(token), allToken) {
		persons := append([]grammar.Person(nil), grammar.Persons...)
		if object {
			persons = append([]grammar.Person{grammar.NoPerson}, persons...)
		}
		return persons, nil
	}
	person, err := grammar.ParsePerson(token)
	if err != nil {
		return nil, err
	}
	if !object && !person.Valid() {
		return nil, contextutils.ErrInvalidInput.WithDetails("subject %q is not a person", token)
	}
	return []grammar.Person{person}, nil
}
